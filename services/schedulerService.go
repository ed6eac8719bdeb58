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

// JobResult is the structured outcome of one scheduled run.
type JobResult struct {
	Processed int      `json:"processed"`
	IDs       []int    `json:"ids,omitempty"`
	Errors    []string `json:"errors"`
}

func newJobResult() JobResult {
	return JobResult{Errors: []string{}}
}

// ArchiveOldPrayers ages approved current prayers into archived once they
// exceed thresholdDays. Aging is measured from prayer creation, not last
// activity; updates do not keep a prayer out of the archive (that is the
// reminder engine's measure, not this one's). A threshold of zero or less
// disables the job.
//
// Safe to run concurrently with itself: the bulk update re-filters on
// status = 'current', so an overlapping run does redundant no-op work at
// worst. No notification is sent for this transition.
func ArchiveOldPrayers(ctx context.Context, thresholdDays int) (JobResult, error) {
	result := newJobResult()

	if thresholdDays <= 0 {
		return result, nil
	}

	cutoff := time.Now().AddDate(0, 0, -thresholdDays)

	var ids []int
	err := initializers.DB.From("prayer").
		Select("prayer_id").
		Where(
			goqu.C("status").Eq(models.StatusCurrent),
			goqu.C("approval_status").Eq(models.ApprovalApproved),
			goqu.C("created_at").Lt(cutoff),
		).
		Order(goqu.C("prayer_id").Asc()).
		ScanValsContext(ctx, &ids)
	if err != nil {
		return result, fmt.Errorf("failed to select prayers to archive: %w", err)
	}

	if len(ids) == 0 {
		return result, nil
	}

	updated, err := initializers.DB.Update("prayer").
		Set(statusRecord(models.StatusArchived)).
		Where(
			goqu.C("prayer_id").In(ids),
			goqu.C("status").Eq(models.StatusCurrent),
		).
		Executor().ExecContext(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to archive prayers: %w", err)
	}

	rows, _ := updated.RowsAffected()
	result.Processed = int(rows)
	result.IDs = ids

	log.Printf("Archived %d prayer(s) older than %d day(s): %v", result.Processed, thresholdDays, ids)
	return result, nil
}
