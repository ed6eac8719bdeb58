package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/PrayerWall/initializers"
	"github.com/PrayerWall/models"
)

type EmailService struct {
	client *resend.Client
}

var emailService *EmailService

// InitEmailService initializes the email service with Resend API
func InitEmailService() {
	apiKey := os.Getenv("RESEND_API_KEY")

	if apiKey == "" {
		log.Println("WARNING: RESEND_API_KEY not set. Email service will not be available.")
		return
	}

	emailService = &EmailService{
		client: resend.NewClient(apiKey),
	}

	log.Println("Email service initialized successfully with Resend")
}

// GetEmailService returns the singleton email service instance
func GetEmailService() *EmailService {
	return emailService
}

// Send dispatches a single email to the given recipients. This is the whole
// outbound surface: subject, text body, optional HTML body, optional
// reply-to. Provider retries and template niceties are Resend's problem.
func (s *EmailService) Send(recipients []string, subject string, textBody string, htmlBody string, replyTo string) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("email service not initialized")
	}

	if len(recipients) == 0 {
		return fmt.Errorf("no recipients")
	}

	params := &resend.SendEmailRequest{
		From:    os.Getenv("RESEND_FROM_EMAIL"),
		To:      recipients,
		Subject: subject,
		Text:    textBody,
	}
	if htmlBody != "" {
		params.Html = htmlBody
	}
	if replyTo != "" {
		params.ReplyTo = replyTo
	}

	sent, err := s.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	log.Printf("Sent email %q to %d recipient(s). Email ID: %s", subject, len(recipients), sent.Id)
	return nil
}

const emailStyle = `
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            text-align: center;
            padding: 20px 0;
            border-bottom: 2px solid #90a8c5;
        }
        .header h1 {
            color: #90a8c5;
            margin: 0;
        }
        .content {
            padding: 30px 0;
        }
        .footer {
            text-align: center;
            padding: 20px 0;
            border-top: 1px solid #ddd;
            font-size: 12px;
            color: #666;
        }
    </style>
`

// publicLink resolves a site path against PUBLIC_BASE_URL. Returns "" when no
// base URL is configured, in which case the emails omit the link line.
func publicLink(path string) string {
	base := initializers.AppConfig.PublicBaseURL
	if base == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + path
}

func wrapHTML(heading string, inner string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>%s</head>
<body>
    <div class="header">
        <h1>Prayer Wall</h1>
    </div>

    <div class="content">
        <h2>%s</h2>
%s
    </div>

    <div class="footer">
        <p>This is an automated message from the Prayer Wall.</p>
    </div>
</body>
</html>
`, emailStyle, heading, inner)
}

// SendAdminSubmissionAlert tells the moderators a new item entered the queue.
func (s *EmailService) SendAdminSubmissionAlert(recipients []string, kind string, title string, submitter string) error {
	subject := fmt.Sprintf("New %s awaiting moderation", kind)

	textBody := fmt.Sprintf(`
A new %s is awaiting moderation on the Prayer Wall.

Title: %s
Submitted by: %s

Please review it in the moderation queue.
`, kind, title, submitter)

	inner := fmt.Sprintf(`
        <p>A new %s is awaiting moderation.</p>
        <p><strong>Title:</strong> %s<br><strong>Submitted by:</strong> %s</p>
        <p>Please review it in the moderation queue.</p>
`, kind, title, submitter)

	if link := publicLink("/admin/pending"); link != "" {
		textBody += fmt.Sprintf("\nModeration queue: %s\n", link)
		inner += fmt.Sprintf(`        <p><a href="%s">Open the moderation queue</a></p>
`, link)
	}

	return s.Send(recipients, subject, textBody, wrapHTML("New Submission", inner), "")
}

// SendDenialNotice tells a submitter why their entry was denied.
func (s *EmailService) SendDenialNotice(toEmail string, name string, title string, reason string) error {
	subject := "Your Prayer Wall submission was not published"

	textBody := fmt.Sprintf(`
Hi %s,

Your submission "%s" was reviewed but could not be published.

Reason: %s

You are welcome to revise and submit again.
`, name, title, reason)

	inner := fmt.Sprintf(`
        <p>Hi %s,</p>
        <p>Your submission <strong>"%s"</strong> was reviewed but could not be published.</p>
        <p><strong>Reason:</strong> %s</p>
        <p>You are welcome to revise and submit again.</p>
`, name, title, reason)

	return s.Send([]string{toEmail}, subject, textBody, wrapHTML("Submission Not Published", inner), "")
}

// SendBroadcastNewPrayer announces a freshly approved prayer to the opted-in
// subscriber list. The requester name comes through DisplayRequester, so
// anonymous submissions stay anonymous here too.
func (s *EmailService) SendBroadcastNewPrayer(recipients []string, prayer models.Prayer) error {
	subject := fmt.Sprintf("New prayer request: %s", prayer.Title)

	textBody := fmt.Sprintf(`
A new prayer request was posted to the Prayer Wall.

%s
Requested by: %s

%s
`, prayer.Title, prayer.DisplayRequester(), prayer.Description)

	inner := fmt.Sprintf(`
        <p><strong>%s</strong><br>Requested by: %s</p>
        <p>%s</p>
`, prayer.Title, prayer.DisplayRequester(), prayer.Description)

	if link := publicLink("/prayers"); link != "" {
		textBody += fmt.Sprintf("\nSee the prayer wall: %s\n", link)
		inner += fmt.Sprintf(`        <p><a href="%s">See the prayer wall</a></p>
`, link)
	}

	return s.Send(recipients, subject, textBody, wrapHTML("New Prayer Request", inner), "")
}

// SendBroadcastPrayerUpdate announces an approved update on an existing prayer.
func (s *EmailService) SendBroadcastPrayerUpdate(recipients []string, prayer models.Prayer, update models.PrayerUpdate) error {
	subject := fmt.Sprintf("Update on: %s", prayer.Title)

	answeredLine := ""
	if update.Mark_As_Answered {
		answeredLine = "This prayer has been marked as answered. Praise!"
	}

	textBody := fmt.Sprintf(`
There is an update on the prayer "%s".

%s
- %s

%s
`, prayer.Title, update.Content, update.DisplayAuthor(), answeredLine)

	inner := fmt.Sprintf(`
        <p>There is an update on the prayer <strong>"%s"</strong>.</p>
        <p>%s<br>&mdash; %s</p>
        <p>%s</p>
`, prayer.Title, update.Content, update.DisplayAuthor(), answeredLine)

	if link := publicLink("/prayers"); link != "" {
		textBody += fmt.Sprintf("\nSee the prayer wall: %s\n", link)
		inner += fmt.Sprintf(`        <p><a href="%s">See the prayer wall</a></p>
`, link)
	}

	return s.Send(recipients, subject, textBody, wrapHTML("Prayer Update", inner), "")
}

// SendReminderEmail nudges a requester whose prayer has gone quiet.
func (s *EmailService) SendReminderEmail(toEmail string, name string, title string, lastActivity time.Time) error {
	subject := fmt.Sprintf("How is it going with: %s?", title)

	textBody := fmt.Sprintf(`
Hi %s,

Your prayer "%s" has had no updates since %s.

Has anything changed? Post an update so others know how to keep praying,
or let us know it has been answered.
`, name, title, lastActivity.Format("January 2, 2006"))

	inner := fmt.Sprintf(`
        <p>Hi %s,</p>
        <p>Your prayer <strong>"%s"</strong> has had no updates since %s.</p>
        <p>Has anything changed? Post an update so others know how to keep praying, or let us know it has been answered.</p>
`, name, title, lastActivity.Format("January 2, 2006"))

	if link := publicLink("/prayers"); link != "" {
		textBody += fmt.Sprintf("\nPost an update: %s\n", link)
		inner += fmt.Sprintf(`        <p><a href="%s">Post an update</a></p>
`, link)
	}

	return s.Send([]string{toEmail}, subject, textBody, wrapHTML("Prayer Check-In", inner), "")
}
