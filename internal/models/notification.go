package models

import "time"

// Notification channel types
const (
	NotificationTypeWebhook = "webhook"
	NotificationTypeEmail   = "email"
	NotificationTypeSMS     = "sms"
)

// NotificationConfig selects which channels receive shortage alerts and how
// to reach them. The channel transport itself is configured independently of
// the detection core; this is only the handoff target.
type NotificationConfig struct {
	Channels       []string  `json:"channels"`
	WebhookURL     string    `json:"webhook_url,omitempty"`
	EmailRecipient string    `json:"email_recipient,omitempty"`
	SMSRecipient   string    `json:"sms_recipient,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}
