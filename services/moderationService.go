package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/doug-martin/goqu/v9"

	"github.com/PrayerWall/initializers"
	"github.com/PrayerWall/models"
)

// Every moderated entity is resolved through a conditional update that
// requires approval_status = 'pending' in the same statement as the state
// change. The datastore itself rejects the second concurrent resolver, so no
// lock manager is needed; zero rows affected is re-checked against existence
// to tell a stale entity apart from a missing one.

func approvalRecord() goqu.Record {
	return goqu.Record{
		"approval_status": models.ApprovalApproved,
		"reviewed_at":     goqu.L("NOW()"),
	}
}

func denialRecord(reason string) goqu.Record {
	return goqu.Record{
		"approval_status": models.ApprovalDenied,
		"denied_at":       goqu.L("NOW()"),
		"denial_reason":   reason,
	}
}

func resolvePending(table string, idColumn string, id int, record goqu.Record) error {
	result, err := initializers.DB.Update(table).
		Set(record).
		Where(
			goqu.C(idColumn).Eq(id),
			goqu.C("approval_status").Eq(models.ApprovalPending),
		).
		Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to resolve %s %d: %w", table, id, err)
	}

	rows, _ := result.RowsAffected()
	if rows > 0 {
		return nil
	}

	var count int64
	found, err := initializers.DB.From(table).
		Select(goqu.COUNT("*")).
		Where(goqu.C(idColumn).Eq(id)).
		ScanVal(&count)
	if err != nil {
		return fmt.Errorf("failed to check %s %d: %w", table, id, err)
	}
	if !found || count == 0 {
		return ErrNotFound
	}
	return &StaleStateError{Entity: table, ID: id}
}

func resolvePendingTx(tx *goqu.TxDatabase, table string, idColumn string, id int, record goqu.Record) error {
	result, err := tx.Update(table).
		Set(record).
		Where(
			goqu.C(idColumn).Eq(id),
			goqu.C("approval_status").Eq(models.ApprovalPending),
		).
		Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to resolve %s %d: %w", table, id, err)
	}

	rows, _ := result.RowsAffected()
	if rows > 0 {
		return nil
	}
	return &StaleStateError{Entity: table, ID: id}
}

func requireReason(reason string) (string, error) {
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return "", &ValidationError{Field: "reason", Message: "denial requires a reason"}
	}
	return trimmed, nil
}

func optionalReason(reason string) *string {
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// SubmitPrayer enqueues a new prayer as pending. Subscriber consolidation
// runs inline but never fails the submission; the moderator alert is
// fire-and-forget.
func SubmitPrayer(sub models.PrayerSubmission) (models.Prayer, error) {
	prayer := models.Prayer{
		Title:           strings.TrimSpace(sub.Title),
		Description:     strings.TrimSpace(sub.Description),
		Requester:       strings.TrimSpace(sub.Requester),
		Prayer_For:      strings.TrimSpace(sub.Prayer_For),
		Is_Anonymous:    sub.Is_Anonymous,
		Status:          models.StatusCurrent,
		Approval_Status: models.ApprovalPending,
	}
	if email := NormalizeEmail(sub.Email); email != "" {
		prayer.Email = &email
	}

	insert := initializers.DB.Insert("prayer").Rows(prayer).Returning("prayer_id")
	if _, err := insert.Executor().ScanVal(&prayer.Prayer_ID); err != nil {
		return prayer, fmt.Errorf("failed to insert prayer: %w", err)
	}

	if prayer.Email != nil {
		if created, err := EnsureSubscribed(*prayer.Email, prayer.Requester); err != nil {
			log.Printf("Subscriber consolidation failed for prayer %d: %v", prayer.Prayer_ID, err)
		} else if created {
			log.Printf("Subscribed %s on prayer %d submission", *prayer.Email, prayer.Prayer_ID)
		}
	}

	go NotifyAdminsOfSubmission("prayer request", prayer.Title, prayer.DisplayRequester())

	return prayer, nil
}

// SubmitPrayerUpdate enqueues an update on a published prayer.
func SubmitPrayerUpdate(prayerID int, sub models.PrayerUpdateSubmission) (models.PrayerUpdate, error) {
	update := models.PrayerUpdate{
		Prayer_ID:        prayerID,
		Content:          strings.TrimSpace(sub.Content),
		Author:           strings.TrimSpace(sub.Author),
		Is_Anonymous:     sub.Is_Anonymous,
		Mark_As_Answered: sub.Mark_As_Answered,
		Approval_Status:  models.ApprovalPending,
	}

	prayer, err := getApprovedPrayer(prayerID)
	if err != nil {
		return update, err
	}

	insert := initializers.DB.Insert("prayer_update").Rows(update).Returning("prayer_update_id")
	if _, err := insert.Executor().ScanVal(&update.Prayer_Update_ID); err != nil {
		return update, fmt.Errorf("failed to insert prayer update: %w", err)
	}

	go NotifyAdminsOfSubmission("prayer update", prayer.Title, update.DisplayAuthor())

	return update, nil
}

// SubmitDeletionRequest enqueues a request to remove a published prayer.
func SubmitDeletionRequest(prayerID int, sub models.DeletionRequestSubmission) (models.DeletionRequest, error) {
	request := models.DeletionRequest{
		Prayer_ID:       prayerID,
		Requested_By:    strings.TrimSpace(sub.Requested_By),
		Reason:          optionalReason(sub.Reason),
		Approval_Status: models.ApprovalPending,
	}

	prayer, err := getApprovedPrayer(prayerID)
	if err != nil {
		return request, err
	}

	insert := initializers.DB.Insert("deletion_request").Rows(request).Returning("deletion_request_id")
	if _, err := insert.Executor().ScanVal(&request.Deletion_Request_ID); err != nil {
		return request, fmt.Errorf("failed to insert deletion request: %w", err)
	}

	go NotifyAdminsOfSubmission("deletion request", prayer.Title, request.Requested_By)

	return request, nil
}

// SubmitUpdateDeletionRequest enqueues a request to remove a single update.
func SubmitUpdateDeletionRequest(updateID int, sub models.DeletionRequestSubmission) (models.UpdateDeletionRequest, error) {
	request := models.UpdateDeletionRequest{
		Prayer_Update_ID: updateID,
		Requested_By:     strings.TrimSpace(sub.Requested_By),
		Reason:           optionalReason(sub.Reason),
		Approval_Status:  models.ApprovalPending,
	}

	var update models.PrayerUpdate
	found, err := initializers.DB.From("prayer_update").
		Where(goqu.C("prayer_update_id").Eq(updateID)).
		ScanStruct(&update)
	if err != nil {
		return request, fmt.Errorf("failed to fetch prayer update %d: %w", updateID, err)
	}
	if !found {
		return request, ErrNotFound
	}

	insert := initializers.DB.Insert("update_deletion_request").Rows(request).Returning("update_deletion_request_id")
	if _, err := insert.Executor().ScanVal(&request.Update_Deletion_Request_ID); err != nil {
		return request, fmt.Errorf("failed to insert update deletion request: %w", err)
	}

	go NotifyAdminsOfSubmission("update deletion request", update.Content, request.Requested_By)

	return request, nil
}

// SubmitStatusChangeRequest enqueues a request to rewrite a prayer's status.
func SubmitStatusChangeRequest(prayerID int, sub models.StatusChangeSubmission) (models.StatusChangeRequest, error) {
	request := models.StatusChangeRequest{
		Prayer_ID:        prayerID,
		Requested_By:     strings.TrimSpace(sub.Requested_By),
		Requested_Status: sub.Requested_Status,
		Reason:           optionalReason(sub.Reason),
		Approval_Status:  models.ApprovalPending,
	}

	if !models.ValidStatus(sub.Requested_Status) {
		return request, &ValidationError{Field: "requestedStatus", Message: fmt.Sprintf("invalid status %q", sub.Requested_Status)}
	}

	prayer, err := getApprovedPrayer(prayerID)
	if err != nil {
		return request, err
	}

	insert := initializers.DB.Insert("status_change_request").Rows(request).Returning("status_change_request_id")
	if _, err := insert.Executor().ScanVal(&request.Status_Change_Request_ID); err != nil {
		return request, fmt.Errorf("failed to insert status change request: %w", err)
	}

	go NotifyAdminsOfSubmission("status change request", prayer.Title, request.Requested_By)

	return request, nil
}

func getApprovedPrayer(prayerID int) (models.Prayer, error) {
	var prayer models.Prayer
	found, err := initializers.DB.From("prayer").
		Where(goqu.C("prayer_id").Eq(prayerID)).
		ScanStruct(&prayer)
	if err != nil {
		return prayer, fmt.Errorf("failed to fetch prayer %d: %w", prayerID, err)
	}
	if !found {
		return prayer, ErrNotFound
	}
	if prayer.Approval_Status != models.ApprovalApproved {
		return prayer, &ValidationError{Field: "prayerId", Message: "prayer is not published"}
	}
	return prayer, nil
}

// ApprovePrayer publishes a pending prayer and broadcasts it to the
// subscriber list. The broadcast never rolls back the approval.
func ApprovePrayer(prayerID int) (models.Prayer, error) {
	if err := resolvePending("prayer", "prayer_id", prayerID, approvalRecord()); err != nil {
		return models.Prayer{}, err
	}

	var prayer models.Prayer
	if _, err := initializers.DB.From("prayer").
		Where(goqu.C("prayer_id").Eq(prayerID)).
		ScanStruct(&prayer); err != nil {
		return prayer, fmt.Errorf("failed to reload prayer %d: %w", prayerID, err)
	}

	go NotifySubscribersOfApprovedPrayer(prayer)

	return prayer, nil
}

// DenyPrayer rejects a pending prayer. The reason is mandatory and is sent
// to the submitter when an email is on file, silently skipped otherwise.
func DenyPrayer(prayerID int, reason string) (models.Prayer, error) {
	trimmed, err := requireReason(reason)
	if err != nil {
		return models.Prayer{}, err
	}

	if err := resolvePending("prayer", "prayer_id", prayerID, denialRecord(trimmed)); err != nil {
		return models.Prayer{}, err
	}

	var prayer models.Prayer
	if _, err := initializers.DB.From("prayer").
		Where(goqu.C("prayer_id").Eq(prayerID)).
		ScanStruct(&prayer); err != nil {
		return prayer, fmt.Errorf("failed to reload prayer %d: %w", prayerID, err)
	}

	go NotifySubmitterOfDenial(prayer.Email, prayer.DisplayRequester(), prayer.Title, trimmed)

	return prayer, nil
}

// ApproveUpdate publishes a pending update and applies its consequences to
// the parent prayer's status in the same transaction.
func ApproveUpdate(updateID int) (models.PrayerUpdate, error) {
	var update models.PrayerUpdate
	var prayer models.Prayer

	err := initializers.DB.WithTx(func(tx *goqu.TxDatabase) error {
		found, err := tx.From("prayer_update").
			Where(goqu.C("prayer_update_id").Eq(updateID)).
			ScanStruct(&update)
		if err != nil {
			return fmt.Errorf("failed to fetch prayer update %d: %w", updateID, err)
		}
		if !found {
			return ErrNotFound
		}

		if err := resolvePendingTx(tx, "prayer_update", "prayer_update_id", updateID, approvalRecord()); err != nil {
			return err
		}

		pfound, err := tx.From("prayer").
			Where(goqu.C("prayer_id").Eq(update.Prayer_ID)).
			ScanStruct(&prayer)
		if err != nil {
			return fmt.Errorf("failed to fetch prayer %d: %w", update.Prayer_ID, err)
		}
		if !pfound {
			return ErrNotFound
		}

		return applyUpdateApproval(tx, prayer, update)
	})
	if err != nil {
		return update, err
	}

	update.Approval_Status = models.ApprovalApproved
	go NotifySubscribersOfApprovedUpdate(prayer, update)

	return update, nil
}

// DenyUpdate rejects a pending update. Updates carry no contact address, so
// there is no submitter notice.
func DenyUpdate(updateID int, reason string) error {
	trimmed, err := requireReason(reason)
	if err != nil {
		return err
	}
	return resolvePending("prayer_update", "prayer_update_id", updateID, denialRecord(trimmed))
}

// ApproveDeletionRequest marks the request approved and destructively
// deletes the target prayer and its updates, all in one transaction.
func ApproveDeletionRequest(requestID int) error {
	return initializers.DB.WithTx(func(tx *goqu.TxDatabase) error {
		var request models.DeletionRequest
		found, err := tx.From("deletion_request").
			Where(goqu.C("deletion_request_id").Eq(requestID)).
			ScanStruct(&request)
		if err != nil {
			return fmt.Errorf("failed to fetch deletion request %d: %w", requestID, err)
		}
		if !found {
			return ErrNotFound
		}

		if err := resolvePendingTx(tx, "deletion_request", "deletion_request_id", requestID, approvalRecord()); err != nil {
			return err
		}

		if _, err := tx.Delete("prayer_update").
			Where(goqu.C("prayer_id").Eq(request.Prayer_ID)).
			Executor().Exec(); err != nil {
			return fmt.Errorf("failed to delete updates of prayer %d: %w", request.Prayer_ID, err)
		}

		if _, err := tx.Delete("prayer").
			Where(goqu.C("prayer_id").Eq(request.Prayer_ID)).
			Executor().Exec(); err != nil {
			return fmt.Errorf("failed to delete prayer %d: %w", request.Prayer_ID, err)
		}

		return nil
	})
}

func DenyDeletionRequest(requestID int, reason string) error {
	trimmed, err := requireReason(reason)
	if err != nil {
		return err
	}
	return resolvePending("deletion_request", "deletion_request_id", requestID, denialRecord(trimmed))
}

// ApproveUpdateDeletionRequest deletes the targeted update after marking the
// request approved.
func ApproveUpdateDeletionRequest(requestID int) error {
	return initializers.DB.WithTx(func(tx *goqu.TxDatabase) error {
		var request models.UpdateDeletionRequest
		found, err := tx.From("update_deletion_request").
			Where(goqu.C("update_deletion_request_id").Eq(requestID)).
			ScanStruct(&request)
		if err != nil {
			return fmt.Errorf("failed to fetch update deletion request %d: %w", requestID, err)
		}
		if !found {
			return ErrNotFound
		}

		if err := resolvePendingTx(tx, "update_deletion_request", "update_deletion_request_id", requestID, approvalRecord()); err != nil {
			return err
		}

		if _, err := tx.Delete("prayer_update").
			Where(goqu.C("prayer_update_id").Eq(request.Prayer_Update_ID)).
			Executor().Exec(); err != nil {
			return fmt.Errorf("failed to delete prayer update %d: %w", request.Prayer_Update_ID, err)
		}

		return nil
	})
}

func DenyUpdateDeletionRequest(requestID int, reason string) error {
	trimmed, err := requireReason(reason)
	if err != nil {
		return err
	}
	return resolvePending("update_deletion_request", "update_deletion_request_id", requestID, denialRecord(trimmed))
}

// ApproveStatusChangeRequest writes the requested status onto the target
// prayer through the lifecycle rules, in the same transaction as the
// request resolution.
func ApproveStatusChangeRequest(requestID int) error {
	return initializers.DB.WithTx(func(tx *goqu.TxDatabase) error {
		var request models.StatusChangeRequest
		found, err := tx.From("status_change_request").
			Where(goqu.C("status_change_request_id").Eq(requestID)).
			ScanStruct(&request)
		if err != nil {
			return fmt.Errorf("failed to fetch status change request %d: %w", requestID, err)
		}
		if !found {
			return ErrNotFound
		}

		if !models.ValidStatus(request.Requested_Status) {
			return &ValidationError{Field: "requestedStatus", Message: fmt.Sprintf("invalid status %q", request.Requested_Status)}
		}

		if err := resolvePendingTx(tx, "status_change_request", "status_change_request_id", requestID, approvalRecord()); err != nil {
			return err
		}

		result, err := tx.Update("prayer").
			Set(statusRecord(request.Requested_Status)).
			Where(
				goqu.C("prayer_id").Eq(request.Prayer_ID),
				goqu.C("approval_status").Eq(models.ApprovalApproved),
			).
			Executor().Exec()
		if err != nil {
			return fmt.Errorf("failed to update status of prayer %d: %w", request.Prayer_ID, err)
		}

		rows, _ := result.RowsAffected()
		if rows == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func DenyStatusChangeRequest(requestID int, reason string) error {
	trimmed, err := requireReason(reason)
	if err != nil {
		return err
	}
	return resolvePending("status_change_request", "status_change_request_id", requestID, denialRecord(trimmed))
}
