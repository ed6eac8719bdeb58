package services

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/PrayerWall/initializers"
	"github.com/PrayerWall/models"
)

// statusRecord builds the column set for a visible-status write. Every path
// that changes a prayer's status goes through here, which is what keeps the
// invariant date_answered IS NOT NULL <=> status = 'answered'.
func statusRecord(status string) goqu.Record {
	rec := goqu.Record{"status": status}
	if status == models.StatusAnswered {
		rec["date_answered"] = goqu.L("NOW()")
	} else {
		rec["date_answered"] = nil
	}
	return rec
}

// SetPrayerStatus is the direct admin status write. Only approved prayers
// have a meaningful visible status.
func SetPrayerStatus(prayerID int, status string) error {
	if !models.ValidStatus(status) {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("invalid status %q", status)}
	}

	result, err := initializers.DB.Update("prayer").
		Set(statusRecord(status)).
		Where(
			goqu.C("prayer_id").Eq(prayerID),
			goqu.C("approval_status").Eq(models.ApprovalApproved),
		).
		Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to update prayer status: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// applyUpdateApproval recomputes the parent prayer's status when one of its
// updates is approved. Runs inside the approval transaction.
//
// An update marked as answered forces the parent to answered. An ordinary
// update on an answered or archived prayer re-surfaces it as current. Every
// other approval leaves the parent alone.
func applyUpdateApproval(tx *goqu.TxDatabase, prayer models.Prayer, update models.PrayerUpdate) error {
	var newStatus string
	switch {
	case update.Mark_As_Answered:
		newStatus = models.StatusAnswered
	case prayer.Status == models.StatusAnswered || prayer.Status == models.StatusArchived:
		newStatus = models.StatusCurrent
	default:
		return nil
	}

	_, err := tx.Update("prayer").
		Set(statusRecord(newStatus)).
		Where(goqu.C("prayer_id").Eq(prayer.Prayer_ID)).
		Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to apply update approval to prayer %d: %w", prayer.Prayer_ID, err)
	}
	return nil
}
