package notify

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

const (
	emailQueue = "email_notifications"
	pushQueue  = "push_notifications"
)

// Ensure AMQPNotifier implements Notifier
var _ Notifier = (*AMQPNotifier)(nil)

// AMQPNotifier publishes notification messages to RabbitMQ queues. The
// mailer and push workers that drain the queues live outside this
// service.
type AMQPNotifier struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewAMQPNotifier connects to RabbitMQ and declares the two
// notification queues.
func NewAMQPNotifier(url string) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	for _, name := range []string{emailQueue, pushQueue} {
		_, err := ch.QueueDeclare(
			name,
			true,  // durable (survives broker restarts)
			false, // auto-delete when unused
			false, // exclusive
			false, // no-wait
			nil,
		)
		if err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to declare queue %s: %w", name, err)
		}
	}

	return &AMQPNotifier{conn: conn, channel: ch}, nil
}

// SendEmail queues one email message.
func (n *AMQPNotifier) SendEmail(to, subject, body string) error {
	return n.publish(emailQueue, EmailMessage{To: to, Subject: subject, Body: body})
}

// SendPushNotification queues one push message.
func (n *AMQPNotifier) SendPushNotification(userID, message string) error {
	return n.publish(pushQueue, PushMessage{UserID: userID, Message: message})
}

func (n *AMQPNotifier) publish(queue string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	err = n.channel.Publish(
		"",    // default exchange (direct routing to the queue)
		queue, // routing key
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", queue, err)
	}
	return nil
}

// Close releases the channel and connection.
func (n *AMQPNotifier) Close() {
	n.channel.Close()
	n.conn.Close()
}
