package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/PrayerWall/initializers"
	"github.com/PrayerWall/models"
)

// ReminderCandidate is a prayer whose last activity is older than the
// reminder interval. Last activity is the later of the prayer's creation and
// its latest approved update, derived at query time.
type ReminderCandidate struct {
	Prayer_ID        int
	Title            string
	Requester        string
	Email            *string
	Is_Anonymous     bool
	Last_Activity_At time.Time
}

func (c ReminderCandidate) DisplayRequester() string {
	if c.Is_Anonymous {
		return models.AnonymousLabel
	}
	return c.Requester
}

// ComputeReminderCandidates selects approved prayers in {current, ongoing}
// that have seen no activity for more than thresholdDays. A fresh approved
// update resets the clock: an old prayer with a recent update is not a
// candidate. This is the defining difference from the archive job.
func ComputeReminderCandidates(ctx context.Context, thresholdDays int) ([]ReminderCandidate, error) {
	if thresholdDays <= 0 {
		return nil, nil
	}

	cutoff := time.Now().AddDate(0, 0, -thresholdDays)

	lastUpdates := goqu.From("prayer_update").
		Select(
			goqu.C("prayer_id"),
			goqu.MAX(goqu.C("created_at")).As("last_update_at"),
		).
		Where(goqu.C("approval_status").Eq(models.ApprovalApproved)).
		GroupBy(goqu.C("prayer_id")).
		As("u")

	var candidates []ReminderCandidate
	err := initializers.DB.From("prayer").
		LeftJoin(lastUpdates, goqu.On(goqu.Ex{"prayer.prayer_id": goqu.I("u.prayer_id")})).
		Select(
			goqu.I("prayer.prayer_id"),
			goqu.I("prayer.title"),
			goqu.I("prayer.requester"),
			goqu.I("prayer.email"),
			goqu.I("prayer.is_anonymous"),
			goqu.L("GREATEST(prayer.created_at, COALESCE(u.last_update_at, prayer.created_at))").As("last_activity_at"),
		).
		Where(
			goqu.I("prayer.approval_status").Eq(models.ApprovalApproved),
			goqu.I("prayer.status").In(models.StatusCurrent, models.StatusOngoing),
			goqu.L("GREATEST(prayer.created_at, COALESCE(u.last_update_at, prayer.created_at)) < ?", cutoff),
		).
		Order(goqu.I("prayer.prayer_id").Asc()).
		ScanStructsContext(ctx, &candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to compute reminder candidates: %w", err)
	}

	return candidates, nil
}

// SendReminders emails each candidate's requester. Candidates are processed
// independently: a dispatch failure is collected into the result and the
// batch moves on. Candidates without an email on file are skipped with a
// logged note.
//
// No "last reminded" state is persisted; candidates are recomputed from
// activity timestamps on every run (see DESIGN.md).
func SendReminders(ctx context.Context, thresholdDays int) (JobResult, error) {
	result := newJobResult()

	candidates, err := ComputeReminderCandidates(ctx, thresholdDays)
	if err != nil {
		return result, err
	}

	svc := GetEmailService()

	for _, candidate := range candidates {
		select {
		case <-ctx.Done():
			result.Errors = append(result.Errors, fmt.Sprintf("run aborted: %v", ctx.Err()))
			return result, nil
		default:
		}

		if candidate.Email == nil || *candidate.Email == "" {
			log.Printf("Prayer %d has no requester email, skipping reminder", candidate.Prayer_ID)
			continue
		}

		err := svc.SendReminderEmail(*candidate.Email, candidate.DisplayRequester(), candidate.Title, candidate.Last_Activity_At)
		if err != nil {
			dispatchErr := &NotificationDispatchError{Recipient: *candidate.Email, Err: err}
			log.Printf("Reminder for prayer %d: %v", candidate.Prayer_ID, dispatchErr)
			result.Errors = append(result.Errors, fmt.Sprintf("prayer %d: %v", candidate.Prayer_ID, err))
			continue
		}

		result.Processed++
		result.IDs = append(result.IDs, candidate.Prayer_ID)
	}

	if result.Processed > 0 || len(result.Errors) > 0 {
		log.Printf("Reminder run: %d sent, %d failed", result.Processed, len(result.Errors))
	}
	return result, nil
}
