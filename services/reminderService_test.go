package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var candidateColumns = []string{
	"prayer_id", "title", "requester", "email", "is_anonymous", "last_activity_at",
}

// Test ComputeReminderCandidates
func TestComputeReminderCandidates(t *testing.T) {
	t.Run("zero threshold disables the engine", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		candidates, err := ComputeReminderCandidates(context.Background(), 0)

		assert.NoError(t, err)
		assert.Nil(t, candidates)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stale prayers come back as candidates", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		lastActivity := time.Now().AddDate(0, 0, -30)
		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(candidateColumns).
			AddRow(1, "Healing for Mom", "Jane", "jane@example.com", false, lastActivity).
			AddRow(2, "New job", "Bob", nil, true, lastActivity))

		candidates, err := ComputeReminderCandidates(context.Background(), 14)

		assert.NoError(t, err)
		assert.Len(t, candidates, 2)
		assert.Equal(t, "Jane", candidates[0].DisplayRequester())
		assert.Equal(t, "Anonymous", candidates[1].DisplayRequester())
	})

	t.Run("activity clock resets on the latest approved update", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		// The filter lives in the generated WHERE clause, so pin its pieces:
		// last activity must be the later of creation and the latest approved
		// update, only approved updates may reset the clock, and only
		// current/ongoing prayers are considered. An age-only predicate (the
		// archive job's measure) fails this match.
		greatest := regexp.QuoteMeta("GREATEST(prayer.created_at, COALESCE(u.last_update_at, prayer.created_at))")
		pattern := greatest +
			`.*` + regexp.QuoteMeta(`MAX("created_at")`) +
			`.*` + regexp.QuoteMeta(`"approval_status" = 'approved'`) +
			`.*"prayer"\."status" IN \('current',\s?'ongoing'\)` +
			`.*` + greatest + ` < '`
		mock.ExpectQuery(pattern).WillReturnRows(sqlmock.NewRows(candidateColumns))

		candidates, err := ComputeReminderCandidates(context.Background(), 14)

		assert.NoError(t, err)
		assert.Empty(t, candidates)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// Test SendReminders
func TestSendReminders(t *testing.T) {
	t.Run("candidates without an email are skipped, not failed", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		lastActivity := time.Now().AddDate(0, 0, -30)
		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(candidateColumns).
			AddRow(2, "New job", "Bob", nil, false, lastActivity))

		result, err := SendReminders(context.Background(), 14)

		assert.NoError(t, err)
		assert.Equal(t, 0, result.Processed)
		assert.Empty(t, result.Errors)
	})

	t.Run("dispatch failure is collected and the batch continues", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		// The email service is not initialized under test, so every dispatch
		// fails. Both candidates must still be attempted.
		lastActivity := time.Now().AddDate(0, 0, -30)
		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(candidateColumns).
			AddRow(1, "Healing for Mom", "Jane", "jane@example.com", false, lastActivity).
			AddRow(4, "Safe travels", "Ann", "ann@example.com", false, lastActivity))

		result, err := SendReminders(context.Background(), 14)

		assert.NoError(t, err)
		assert.Equal(t, 0, result.Processed)
		assert.Len(t, result.Errors, 2)
	})
}
