package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rajatverma/meetwise/internal/database"
	"github.com/resend/resend-go/v2"
)

// ResendNotifier emails the organizer a confirmation after a meeting is
// scheduled, via the Resend API.
type ResendNotifier struct {
	client      *resend.Client
	fromAddress string
	recipient   string
}

// NewResendNotifier creates a new Resend email notifier. Returns nil when no
// API key is configured; scheduling works without confirmations.
func NewResendNotifier(apiKey, from, recipient string) *ResendNotifier {
	if apiKey == "" {
		return nil
	}
	return &ResendNotifier{
		client:      resend.NewClient(apiKey),
		fromAddress: from,
		recipient:   recipient,
	}
}

// IsConfigured returns true if the notifier can send mail
func (r *ResendNotifier) IsConfigured() bool {
	return r.client != nil && r.fromAddress != "" && r.recipient != ""
}

// MeetingScheduled sends a confirmation email for a freshly scheduled meeting
func (r *ResendNotifier) MeetingScheduled(ctx context.Context, m *database.MeetingRecord) error {
	if !r.IsConfigured() {
		return fmt.Errorf("notifier not configured")
	}

	subject := fmt.Sprintf("Meeting Scheduled: %s", m.Title)
	html := r.formatEmailHTML(m)

	params := &resend.SendEmailRequest{
		From:    r.fromAddress,
		To:      []string{r.recipient},
		Subject: subject,
		Html:    html,
	}

	_, err := r.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}

	fmt.Printf("Confirmation email sent to %s for meeting: %s\n", r.recipient, m.Title)
	return nil
}

// formatEmailHTML creates the HTML email body
func (r *ResendNotifier) formatEmailHTML(m *database.MeetingRecord) string {
	startStr := m.StartTime
	if t, err := time.Parse(time.RFC3339, m.StartTime); err == nil {
		startStr = t.Format("Monday, January 2, 2006 at 3:04 PM")
	}

	attendeesHTML := ""
	if len(m.Attendees) > 0 {
		attendeesHTML = fmt.Sprintf(`<p style="margin: 8px 0;"><strong>Attendees:</strong> %s</p>`, strings.Join(m.Attendees, ", "))
	}

	descriptionHTML := ""
	if m.Description != "" {
		descriptionHTML = fmt.Sprintf(`<p style="margin: 16px 0;">%s</p>`, m.Description)
	}

	agendaHTML := ""
	if m.Agenda != "" {
		agendaHTML = fmt.Sprintf(`<p style="margin: 16px 0; white-space: pre-line;"><strong>Agenda:</strong><br>%s</p>`, m.Agenda)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
  <div style="background-color: white; border-radius: 8px; padding: 24px; box-shadow: 0 2px 4px rgba(0,0,0,0.1);">
    <h2 style="margin: 0 0 16px 0; color: #333;">%s</h2>

    <div style="background: #f8f9fa; padding: 16px; border-radius: 8px; margin: 16px 0; border-left: 4px solid #28a745;">
      <p style="margin: 8px 0;"><strong>When:</strong> %s (%s)</p>
      %s
      <p style="margin: 8px 0;"><strong>Event ID:</strong> %s</p>
    </div>

    %s
    %s

    <hr style="margin-top: 32px; border: none; border-top: 1px solid #eee;">
    <p style="color: #999; font-size: 12px; margin-top: 16px;">
      meetwise - Meeting Scheduling Assistant<br>
      <span style="color: #ccc;">Sent at %s</span>
    </p>
  </div>
</body>
</html>`,
		m.Title,
		startStr,
		m.Timezone,
		attendeesHTML,
		m.EventID,
		descriptionHTML,
		agendaHTML,
		time.Now().Format("Jan 2, 2006 3:04 PM"),
	)
}
