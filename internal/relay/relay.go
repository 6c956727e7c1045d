// Package relay decouples chat message fan-out from any particular
// transport. Publishers push messages onto an item-scoped topic and every
// subscriber of that topic receives them.
package relay

import (
	"context"

	"lostfound-backend/internal/models"
)

// Bus broadcasts chat messages to topic subscribers.
type Bus interface {
	// Publish sends a message to all current subscribers of the topic.
	Publish(ctx context.Context, topic string, message *models.ChatMessage) error

	// Subscribe returns a stream of messages published to the topic.
	// The stream is closed when ctx is cancelled.
	Subscribe(ctx context.Context, topic string) (<-chan *models.ChatMessage, error)
}

// ItemTopic returns the relay topic for an item's chat channel.
func ItemTopic(itemID string) string {
	return "chat.item." + itemID
}
