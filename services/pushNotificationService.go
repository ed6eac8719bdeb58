package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/doug-martin/goqu/v9"
	"google.golang.org/api/option"

	"github.com/PrayerWall/initializers"
	"github.com/PrayerWall/models"
)

type PushNotificationService struct {
	fcmClient *messaging.Client
}

type NotificationPayload struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

var pushService *PushNotificationService

func InitPushNotificationService() {
	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
	if serviceAccountPath == "" {
		log.Println("WARNING: FIREBASE_SERVICE_ACCOUNT_PATH not set. Moderator push alerts will not be available.")
		return
	}

	app, err := firebase.NewApp(context.Background(), nil, option.WithCredentialsFile(serviceAccountPath))
	if err != nil {
		log.Printf("Failed to initialize Firebase app: %v", err)
		return
	}

	client, err := app.Messaging(context.Background())
	if err != nil {
		log.Printf("Failed to get Firebase messaging client: %v", err)
		return
	}

	pushService = &PushNotificationService{fcmClient: client}
	log.Println("Push notification service initialized successfully with FCM")
}

func GetPushNotificationService() *PushNotificationService {
	return pushService
}

// SendToModerators pushes the payload to every device registered by an
// active admin subscriber. Per-token failures are logged and skipped.
func (s *PushNotificationService) SendToModerators(payload NotificationPayload) error {
	if s == nil || s.fcmClient == nil {
		return fmt.Errorf("push service not initialized")
	}

	var tokens []models.PushToken
	err := initializers.DB.From("push_token").
		Select(
			goqu.I("push_token.push_token_id"),
			goqu.I("push_token.subscriber_id"),
			goqu.I("push_token.push_token"),
			goqu.I("push_token.platform"),
			goqu.I("push_token.created_at"),
		).
		Join(
			goqu.T("subscriber"),
			goqu.On(goqu.Ex{"push_token.subscriber_id": goqu.I("subscriber.subscriber_id")}),
		).
		Where(
			goqu.I("subscriber.is_admin").IsTrue(),
			goqu.I("subscriber.is_active").IsTrue(),
		).
		ScanStructs(&tokens)
	if err != nil {
		return fmt.Errorf("failed to get moderator push tokens: %v", err)
	}

	if len(tokens) == 0 {
		return nil
	}

	for _, token := range tokens {
		if err := s.sendToToken(token, payload); err != nil {
			log.Printf("Failed to send push to token %s: %v", token.PushToken, err)
		}
	}

	return nil
}

func (s *PushNotificationService) sendToToken(pushToken models.PushToken, payload NotificationPayload) error {
	message := &messaging.Message{
		Token: pushToken.PushToken,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: payload.Data,
	}

	if pushToken.Platform == "android" {
		message.Android = &messaging.AndroidConfig{Priority: "high"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	response, err := s.fcmClient.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send FCM message: %v", err)
	}

	log.Printf("Sent FCM notification. Message ID: %s", response)
	return nil
}
