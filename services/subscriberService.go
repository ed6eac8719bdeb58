package services

import (
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"

	"github.com/PrayerWall/initializers"
	"github.com/PrayerWall/models"
)

// NormalizeEmail is the single normalization used by every path that touches
// the subscriber table. Two code paths writing the same address must agree
// on this or rows get duplicated.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EnsureSubscribed opts an email into broadcast notifications if it is not
// already known. Existing rows are left untouched: is_active and is_admin
// are authoritative once set. Returns whether a row was created.
func EnsureSubscribed(email string, name string) (bool, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return false, nil
	}

	var existing models.Subscriber
	found, err := initializers.DB.From("subscriber").
		Where(goqu.C("email").Eq(normalized)).
		ScanStruct(&existing)
	if err != nil {
		return false, fmt.Errorf("failed to look up subscriber: %w", err)
	}

	if found {
		return false, nil
	}

	// ON CONFLICT DO NOTHING so a concurrent submission with the same email
	// cannot create a second row; the unique key on email is the arbiter.
	insert := initializers.DB.Insert("subscriber").
		Rows(models.Subscriber{
			Email:     normalized,
			Name:      strings.TrimSpace(name),
			Is_Active: true,
			Is_Admin:  false,
		}).
		OnConflict(goqu.DoNothing())

	result, err := insert.Executor().Exec()
	if err != nil {
		return false, fmt.Errorf("failed to insert subscriber: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// ActiveSubscriberEmails is the broadcast recipient list.
func ActiveSubscriberEmails() ([]string, error) {
	var emails []string
	err := initializers.DB.From("subscriber").
		Select("email").
		Where(goqu.C("is_active").IsTrue()).
		Order(goqu.C("email").Asc()).
		ScanVals(&emails)
	if err != nil {
		return nil, fmt.Errorf("failed to get active subscribers: %w", err)
	}
	return emails, nil
}

// AdminRecipients is the moderator alert list.
func AdminRecipients() ([]string, error) {
	var emails []string
	err := initializers.DB.From("subscriber").
		Select("email").
		Where(goqu.C("is_admin").IsTrue(), goqu.C("is_active").IsTrue()).
		Order(goqu.C("email").Asc()).
		ScanVals(&emails)
	if err != nil {
		return nil, fmt.Errorf("failed to get admin recipients: %w", err)
	}
	return emails, nil
}
