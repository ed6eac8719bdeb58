package models

import "time"

// Subscriber is the single source of truth for who receives broadcast
// notifications. Rows are keyed by normalized (trimmed, lowercased) email.
type Subscriber struct {
	Subscriber_ID int       `json:"subscriberId" goqu:"skipinsert"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Is_Active     bool      `json:"isActive"`
	Is_Admin      bool      `json:"isAdmin"`
	Created_At    time.Time `json:"createdAt" goqu:"skipinsert"`
}

type SubscriberEdit struct {
	Name      *string `json:"name"`
	Is_Active *bool   `json:"isActive"`
	Is_Admin  *bool   `json:"isAdmin"`
}
