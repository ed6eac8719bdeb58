package services

import (
	"errors"
	"fmt"
)

// ErrNotFound means the target entity does not exist at all, as opposed to
// existing but already being resolved.
var ErrNotFound = errors.New("record not found")

// StaleStateError means the entity was not pending when resolution was
// attempted: a concurrent moderator got there first. Retryable by refresh.
type StaleStateError struct {
	Entity string
	ID     int
}

func (e *StaleStateError) Error() string {
	return fmt.Sprintf("%s %d was already resolved by someone else", e.Entity, e.ID)
}

// ValidationError rejects a request before any store mutation happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotificationDispatchError wraps a failure from the notification channel.
// It is logged or collected, never propagated as a failure of the action
// that triggered the dispatch.
type NotificationDispatchError struct {
	Recipient string
	Err       error
}

func (e *NotificationDispatchError) Error() string {
	return fmt.Sprintf("notification to %s failed: %v", e.Recipient, e.Err)
}

func (e *NotificationDispatchError) Unwrap() error {
	return e.Err
}
