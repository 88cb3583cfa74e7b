// Package notify publishes best-effort change notifications over Redis
// pub/sub so downstream consumers can react to store changes. Failures
// are logged and never surfaced to the write path.
package notify

import (
	"context"
	"time"

	"github.com/eventboard/reporting-service/internal/models"
	"github.com/google/uuid"
)

// Message is the versioned envelope published on the events channel.
type Message struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Version   string      `json:"version"`
	Payload   interface{} `json:"payload"`
}

// Publisher handles publishing event-change notifications.
type Publisher struct {
	redisClient *RedisClient
	channel     string
}

// NewPublisher creates a new notification publisher for the channel.
func NewPublisher(redisClient *RedisClient, channel string) *Publisher {
	return &Publisher{
		redisClient: redisClient,
		channel:     channel,
	}
}

// Publish wraps the payload in a Message envelope and publishes it.
func (p *Publisher) Publish(ctx context.Context, messageType string, payload interface{}) error {
	message := Message{
		ID:        uuid.New().String(),
		Type:      messageType,
		Timestamp: time.Now().UTC(),
		Version:   "1.0",
		Payload:   payload,
	}

	return p.redisClient.Publish(ctx, p.channel, message)
}

// PublishEventCreated publishes an event created notification.
func (p *Publisher) PublishEventCreated(ctx context.Context, event *models.Event) error {
	payload := map[string]interface{}{
		"event_id":  event.ID.String(),
		"title":     event.Title,
		"occurs_at": event.OccursAt,
		"location":  event.Location,
	}
	return p.Publish(ctx, "event_created", payload)
}

// PublishEventDeleted publishes an event deleted notification.
func (p *Publisher) PublishEventDeleted(ctx context.Context, eventID uuid.UUID) error {
	payload := map[string]interface{}{
		"event_id": eventID.String(),
	}
	return p.Publish(ctx, "event_deleted", payload)
}
