// Package notifier publishes notification events for the delivery service.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jkowalczyk/price-tracker/internal/platform/models"
)

//go:generate mockery --name Publisher --filename publisher.go

// Publisher publishes messages to routing key.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message []byte) error
}

// Notification is a notification event message.
type Notification struct {
	Recipients []string                    `json:"recipients"`
	Title      string                      `json:"title"`
	URL        string                      `json:"url"`
	Category   models.NotificationCategory `json:"category"`
}

// RabbitMQNotifier sends notification events through RabbitMQ.
type RabbitMQNotifier struct {
	publisher  Publisher
	routingKey string
}

// NewRabbitMQNotifier returns new RabbitMQNotifier publishing to provided routing key.
func NewRabbitMQNotifier(publisher Publisher, routingKey string) *RabbitMQNotifier {
	return &RabbitMQNotifier{
		publisher:  publisher,
		routingKey: routingKey,
	}
}

// Send publishes notification event for recipients.
func (n *RabbitMQNotifier) Send(ctx context.Context, recipients []string, content models.NotificationContent) error {
	message, err := json.Marshal(Notification{
		Recipients: recipients,
		Title:      content.Title,
		URL:        content.URL,
		Category:   content.Category,
	})
	if err != nil {
		return fmt.Errorf("can't marshal %s notification: %w", content.Category, err)
	}

	return n.publisher.Publish(ctx, n.routingKey, message)
}
