package models

import "time"

type PrayerUpdate struct {
	Prayer_Update_ID int        `json:"prayerUpdateId" goqu:"skipinsert"`
	Prayer_ID        int        `json:"prayerId"`
	Content          string     `json:"content"`
	Author           string     `json:"-"`
	Is_Anonymous     bool       `json:"isAnonymous"`
	Mark_As_Answered bool       `json:"markAsAnswered"`
	Approval_Status  string     `json:"approvalStatus"`
	Reviewed_At      *time.Time `json:"reviewedAt"`
	Denied_At        *time.Time `json:"deniedAt"`
	Denial_Reason    *string    `json:"denialReason"`
	Created_At       time.Time  `json:"createdAt" goqu:"skipinsert"`
}

// DisplayAuthor resolves the author name for any user-facing output.
func (u PrayerUpdate) DisplayAuthor() string {
	if u.Is_Anonymous {
		return AnonymousLabel
	}
	return u.Author
}

type PrayerUpdateSubmission struct {
	Content          string `json:"content" binding:"required"`
	Author           string `json:"author" binding:"required"`
	Is_Anonymous     bool   `json:"isAnonymous"`
	Mark_As_Answered bool   `json:"markAsAnswered"`
}
