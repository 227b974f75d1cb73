package notify

import "log/slog"

// Ensure LogNotifier implements Notifier
var _ Notifier = (*LogNotifier)(nil)

// LogNotifier writes notifications to the log instead of a broker.
// Used when no AMQP_URL is configured, e.g. local development.
type LogNotifier struct{}

// SendEmail logs the email instead of delivering it.
func (LogNotifier) SendEmail(to, subject, body string) error {
	slog.Info("Email notification (log only)", "to", to, "subject", subject)
	return nil
}

// SendPushNotification logs the push message instead of delivering it.
func (LogNotifier) SendPushNotification(userID, message string) error {
	slog.Info("Push notification (log only)", "user_id", userID, "message", message)
	return nil
}
