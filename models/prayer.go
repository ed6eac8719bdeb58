package models

import "time"

// Approval lifecycle shared by every moderated entity. Transitions only go
// pending -> approved or pending -> denied.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalDenied   = "denied"
)

// Visible status of an approved prayer.
const (
	StatusCurrent  = "current"
	StatusOngoing  = "ongoing"
	StatusAnswered = "answered"
	StatusArchived = "archived"
)

// AnonymousLabel is what every display path must show in place of a stored
// requester/author name when the record is anonymous.
const AnonymousLabel = "Anonymous"

func ValidStatus(status string) bool {
	switch status {
	case StatusCurrent, StatusOngoing, StatusAnswered, StatusArchived:
		return true
	}
	return false
}

type Prayer struct {
	Prayer_ID       int        `json:"prayerId" goqu:"skipinsert"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Requester       string     `json:"-"`
	Prayer_For      string     `json:"prayerFor"`
	Email           *string    `json:"-"`
	Is_Anonymous    bool       `json:"isAnonymous"`
	Status          string     `json:"status"`
	Date_Answered   *time.Time `json:"dateAnswered"`
	Approval_Status string     `json:"approvalStatus"`
	Reviewed_At     *time.Time `json:"reviewedAt"`
	Denied_At       *time.Time `json:"deniedAt"`
	Denial_Reason   *string    `json:"denialReason"`
	Created_At      time.Time  `json:"createdAt" goqu:"skipinsert"`
}

// DisplayRequester resolves the requester name for any user-facing output,
// including notification payloads.
func (p Prayer) DisplayRequester() string {
	if p.Is_Anonymous {
		return AnonymousLabel
	}
	return p.Requester
}

type PrayerSubmission struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Requester    string `json:"requester" binding:"required"`
	Prayer_For   string `json:"prayerFor"`
	Email        string `json:"email" binding:"omitempty,email"`
	Is_Anonymous bool   `json:"isAnonymous"`
}

// WallPrayer is the public projection of an approved prayer. The requester
// name is resolved through DisplayRequester before it ever leaves the API.
type WallPrayer struct {
	Prayer_ID     int        `json:"prayerId"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Requester     string     `json:"requester"`
	Prayer_For    string     `json:"prayerFor"`
	Status        string     `json:"status"`
	Date_Answered *time.Time `json:"dateAnswered"`
	Created_At    time.Time  `json:"createdAt"`
}

func (p Prayer) ToWallPrayer() WallPrayer {
	return WallPrayer{
		Prayer_ID:     p.Prayer_ID,
		Title:         p.Title,
		Description:   p.Description,
		Requester:     p.DisplayRequester(),
		Prayer_For:    p.Prayer_For,
		Status:        p.Status,
		Date_Answered: p.Date_Answered,
		Created_At:    p.Created_At,
	}
}
