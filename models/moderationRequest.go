package models

import "time"

// DeletionRequest asks for destructive removal of a prayer (and its updates).
type DeletionRequest struct {
	Deletion_Request_ID int        `json:"deletionRequestId" goqu:"skipinsert"`
	Prayer_ID           int        `json:"prayerId"`
	Requested_By        string     `json:"requestedBy"`
	Reason              *string    `json:"reason"`
	Approval_Status     string     `json:"approvalStatus"`
	Reviewed_At         *time.Time `json:"reviewedAt"`
	Denied_At           *time.Time `json:"deniedAt"`
	Denial_Reason       *string    `json:"denialReason"`
	Created_At          time.Time  `json:"createdAt" goqu:"skipinsert"`
}

// UpdateDeletionRequest targets a single prayer update instead of the prayer.
type UpdateDeletionRequest struct {
	Update_Deletion_Request_ID int        `json:"updateDeletionRequestId" goqu:"skipinsert"`
	Prayer_Update_ID           int        `json:"prayerUpdateId"`
	Requested_By               string     `json:"requestedBy"`
	Reason                     *string    `json:"reason"`
	Approval_Status            string     `json:"approvalStatus"`
	Reviewed_At                *time.Time `json:"reviewedAt"`
	Denied_At                  *time.Time `json:"deniedAt"`
	Denial_Reason              *string    `json:"denialReason"`
	Created_At                 time.Time  `json:"createdAt" goqu:"skipinsert"`
}

// StatusChangeRequest asks for a prayer's visible status to be rewritten.
type StatusChangeRequest struct {
	Status_Change_Request_ID int        `json:"statusChangeRequestId" goqu:"skipinsert"`
	Prayer_ID                int        `json:"prayerId"`
	Requested_By             string     `json:"requestedBy"`
	Requested_Status         string     `json:"requestedStatus"`
	Reason                   *string    `json:"reason"`
	Approval_Status          string     `json:"approvalStatus"`
	Reviewed_At              *time.Time `json:"reviewedAt"`
	Denied_At                *time.Time `json:"deniedAt"`
	Denial_Reason            *string    `json:"denialReason"`
	Created_At               time.Time  `json:"createdAt" goqu:"skipinsert"`
}

type DeletionRequestSubmission struct {
	Requested_By string `json:"requestedBy" binding:"required"`
	Reason       string `json:"reason"`
}

type StatusChangeSubmission struct {
	Requested_By     string `json:"requestedBy" binding:"required"`
	Requested_Status string `json:"requestedStatus" binding:"required"`
	Reason           string `json:"reason"`
}

// DenialRequest carries the mandatory reason for any deny action.
type DenialRequest struct {
	Reason string `json:"reason"`
}

// StatusWrite is the admin direct status edit body.
type StatusWrite struct {
	Status string `json:"status" binding:"required"`
}
