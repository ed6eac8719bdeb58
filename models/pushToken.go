package models

import "time"

// PushToken is a moderator device registered for new-submission alerts.
type PushToken struct {
	Push_Token_ID int       `json:"pushTokenId" goqu:"skipinsert"`
	Subscriber_ID int       `json:"subscriberId"`
	PushToken     string    `json:"pushToken" db:"push_token"`
	Platform      string    `json:"platform"`
	Created_At    time.Time `json:"createdAt" goqu:"skipinsert"`
}

type PushTokenCreate struct {
	Subscriber_ID int    `json:"subscriberId" binding:"required"`
	PushToken     string `json:"pushToken" binding:"required" db:"push_token"`
	Platform      string `json:"platform" binding:"required,oneof=ios android web"`
}
