package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

var updateColumns = []string{
	"prayer_update_id", "prayer_id", "content", "author", "is_anonymous",
	"mark_as_answered", "approval_status", "reviewed_at", "denied_at",
	"denial_reason", "created_at",
}

// Test GetPendingItems
func TestGetPendingItems(t *testing.T) {
	t.Run("empty queues", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		// One query per moderated entity, in handler order.
		for i := 0; i < 5; i++ {
			mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"created_at"}))
		}

		c, w := SetupTestContext()
		c.Request = httptest.NewRequest("GET", "/admin/pending", nil)

		GetPendingItems(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "deletionRequests")
		assert.Contains(t, w.Body.String(), "statusChangeRequests")
	})

	t.Run("pending prayer shows up in the queue", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(prayerColumns).
			AddRow(1, "Healing for Mom", "desc", "Jane", "", nil,
				false, "current", nil, "pending", nil, nil, nil, time.Now()))
		for i := 0; i < 4; i++ {
			mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"created_at"}))
		}

		c, w := SetupTestContext()
		c.Request = httptest.NewRequest("GET", "/admin/pending", nil)

		GetPendingItems(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Healing for Mom")
	})
}

// Test ApprovePrayer
func TestApprovePrayer(t *testing.T) {
	tests := []struct {
		name           string
		prayerID       string
		rowsAffected   int64
		existsAfter    bool
		expectedStatus int
	}{
		{
			name:           "successful approval",
			prayerID:       "1",
			rowsAffected:   1,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "conflict - already resolved",
			prayerID:       "1",
			rowsAffected:   0,
			existsAfter:    true,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "not found",
			prayerID:       "99",
			rowsAffected:   0,
			existsAfter:    false,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid prayer ID",
			prayerID:       "abc",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			switch tt.expectedStatus {
			case http.StatusOK:
				mock.ExpectExec("UPDATE").WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))
				mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(prayerColumns).
					AddRow(1, "Healing for Mom", "desc", "Jane", "", nil,
						false, "current", nil, "approved", time.Now(), nil, nil, time.Now()))
			case http.StatusConflict, http.StatusNotFound:
				count := 0
				if tt.existsAfter {
					count = 1
				}
				mock.ExpectExec("UPDATE").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(count))
			}

			c, w := SetupTestContext()
			c.Params = append(c.Params, gin.Param{Key: "prayer_id", Value: tt.prayerID})
			c.Request = httptest.NewRequest("POST", "/admin/prayers/"+tt.prayerID+"/approve", nil)

			ApprovePrayer(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				// The moderation payload includes the wall projection, never
				// the stored email.
				assert.Contains(t, w.Body.String(), "Healing for Mom")
				assert.NotContains(t, w.Body.String(), "email")
			}
		})
	}
}

// Test DenyPrayer
func TestDenyPrayer(t *testing.T) {
	tests := []struct {
		name           string
		reason         string
		touchesDB      bool
		expectedStatus int
	}{
		{
			name:           "successful denial",
			reason:         "Duplicate of an existing request",
			touchesDB:      true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing reason",
			reason:         "  ",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.touchesDB {
				mock.ExpectExec("UPDATE").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(prayerColumns).
					AddRow(1, "Healing for Mom", "desc", "Jane", "", "jane@example.com",
						false, "current", nil, "denied", nil, time.Now(), tt.reason, time.Now()))
			}

			c, w := SetupTestContext()
			c.Params = append(c.Params, gin.Param{Key: "prayer_id", Value: "1"})

			bodyBytes, _ := json.Marshal(map[string]interface{}{"reason": tt.reason})
			c.Request = httptest.NewRequest("POST", "/admin/prayers/1/deny", bytes.NewBuffer(bodyBytes))
			c.Request.Header.Set("Content-Type", "application/json")

			DenyPrayer(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// Test ApprovePrayerUpdate
func TestApprovePrayerUpdate(t *testing.T) {
	t.Run("successful approval runs in a transaction", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(updateColumns).
			AddRow(3, 1, "She is home again.", "Jane", false, true, "pending", nil, nil, nil, time.Now()))
		mock.ExpectExec("UPDATE").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(prayerColumns).
			AddRow(1, "Healing for Mom", "desc", "Jane", "", nil,
				false, "current", nil, "approved", nil, nil, nil, time.Now()))
		mock.ExpectExec("UPDATE").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		c, w := SetupTestContext()
		c.Params = append(c.Params, gin.Param{Key: "update_id", Value: "3"})
		c.Request = httptest.NewRequest("POST", "/admin/updates/3/approve", nil)

		ApprovePrayerUpdate(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"prayerId":1`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("conflict when another moderator was first", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(updateColumns).
			AddRow(3, 1, "She is home again.", "Jane", false, false, "approved", time.Now(), nil, nil, time.Now()))
		mock.ExpectExec("UPDATE").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		c, w := SetupTestContext()
		c.Params = append(c.Params, gin.Param{Key: "update_id", Value: "3"})
		c.Request = httptest.NewRequest("POST", "/admin/updates/3/approve", nil)

		ApprovePrayerUpdate(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// Test ApproveDeletionRequest
func TestApproveDeletionRequestEndpoint(t *testing.T) {
	requestColumns := []string{
		"deletion_request_id", "prayer_id", "requested_by", "reason",
		"approval_status", "reviewed_at", "denied_at", "denial_reason", "created_at",
	}

	t.Run("successful approval deletes the prayer", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(requestColumns).
			AddRow(4, 1, "Jane", nil, "pending", nil, nil, nil, time.Now()))
		mock.ExpectExec("UPDATE").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE").WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec("DELETE").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		c, w := SetupTestContext()
		c.Params = append(c.Params, gin.Param{Key: "request_id", Value: "4"})
		c.Request = httptest.NewRequest("POST", "/admin/deletion-requests/4/approve", nil)

		ApproveDeletionRequest(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// Test UpdatePrayerStatus
func TestUpdatePrayerStatus(t *testing.T) {
	tests := []struct {
		name           string
		status         string
		rowsAffected   int64
		touchesDB      bool
		expectedStatus int
	}{
		{
			name:           "successful direct status write",
			status:         "answered",
			rowsAffected:   1,
			touchesDB:      true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid status",
			status:         "resolved",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "prayer not published",
			status:         "archived",
			rowsAffected:   0,
			touchesDB:      true,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.touchesDB {
				mock.ExpectExec("UPDATE").WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))
			}

			c, w := SetupTestContext()
			c.Params = append(c.Params, gin.Param{Key: "prayer_id", Value: "1"})

			bodyBytes, _ := json.Marshal(map[string]interface{}{"status": tt.status})
			c.Request = httptest.NewRequest("PATCH", "/admin/prayers/1/status", bytes.NewBuffer(bodyBytes))
			c.Request.Header.Set("Content-Type", "application/json")

			UpdatePrayerStatus(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
