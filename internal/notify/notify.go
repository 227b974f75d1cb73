// Package notify delivers reminder notifications to users through an
// external channel. The core treats delivery as fire-and-forget: a
// failure is returned to the caller once and never retried.
package notify

// Notifier is the outbound notification contract consumed by the
// reminder sweep.
type Notifier interface {
	// SendEmail queues one email for delivery.
	SendEmail(to, subject, body string) error

	// SendPushNotification queues one push message for the user.
	SendPushNotification(userID, message string) error
}

// EmailMessage is the wire format of a queued email.
type EmailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// PushMessage is the wire format of a queued push notification.
type PushMessage struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}
