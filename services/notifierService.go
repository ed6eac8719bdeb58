package services

import (
	"log"
	"strconv"

	"github.com/PrayerWall/models"
)

// Notification fan-out for moderation events. Every function here is
// best-effort: failures are logged and swallowed, so a slow or broken
// notification channel can never stall or revert a moderation decision.
// Callers launch these in their own goroutine.

// NotifyAdminsOfSubmission alerts the moderators that a new item entered the
// queue, by email and by push to registered moderator devices.
func NotifyAdminsOfSubmission(kind string, title string, submitter string) {
	if svc := GetEmailService(); svc != nil {
		recipients, err := AdminRecipients()
		if err != nil {
			log.Printf("Failed to get admin recipients: %v", err)
		} else if len(recipients) > 0 {
			if err := svc.SendAdminSubmissionAlert(recipients, kind, title, submitter); err != nil {
				log.Printf("%v", &NotificationDispatchError{Recipient: "admins", Err: err})
			}
		}
	}

	if push := GetPushNotificationService(); push != nil {
		payload := NotificationPayload{
			Title: "New " + kind,
			Body:  title,
			Data:  map[string]string{"kind": kind},
		}
		if err := push.SendToModerators(payload); err != nil {
			log.Printf("Failed to push moderator alert: %v", err)
		}
	}
}

// NotifySubmitterOfDenial tells the submitter why their entry was rejected.
// Silently skipped when no email is on file.
func NotifySubmitterOfDenial(email *string, name string, title string, reason string) {
	if email == nil || *email == "" {
		return
	}

	svc := GetEmailService()
	if svc == nil {
		log.Println("Email service not available, skipping denial notice")
		return
	}

	if err := svc.SendDenialNotice(*email, name, title, reason); err != nil {
		log.Printf("%v", &NotificationDispatchError{Recipient: *email, Err: err})
	}
}

// NotifySubscribersOfApprovedPrayer broadcasts a freshly published prayer to
// the opted-in subscriber list.
func NotifySubscribersOfApprovedPrayer(prayer models.Prayer) {
	svc := GetEmailService()
	if svc == nil {
		log.Println("Email service not available, skipping broadcast for prayer " + strconv.Itoa(prayer.Prayer_ID))
		return
	}

	recipients, err := ActiveSubscriberEmails()
	if err != nil {
		log.Printf("Failed to get broadcast recipients: %v", err)
		return
	}
	if len(recipients) == 0 {
		return
	}

	if err := svc.SendBroadcastNewPrayer(recipients, prayer); err != nil {
		log.Printf("%v", &NotificationDispatchError{Recipient: "subscribers", Err: err})
	}
}

// NotifySubscribersOfApprovedUpdate broadcasts a published update.
func NotifySubscribersOfApprovedUpdate(prayer models.Prayer, update models.PrayerUpdate) {
	svc := GetEmailService()
	if svc == nil {
		log.Println("Email service not available, skipping broadcast for update " + strconv.Itoa(update.Prayer_Update_ID))
		return
	}

	recipients, err := ActiveSubscriberEmails()
	if err != nil {
		log.Printf("Failed to get broadcast recipients: %v", err)
		return
	}
	if len(recipients) == 0 {
		return
	}

	if err := svc.SendBroadcastPrayerUpdate(recipients, prayer, update); err != nil {
		log.Printf("%v", &NotificationDispatchError{Recipient: "subscribers", Err: err})
	}
}
