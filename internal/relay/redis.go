package relay

import (
	"context"
	"encoding/json"
	"fmt"

	"lostfound-backend/internal/models"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

// RedisBus is a Bus backed by Redis pub/sub, for deployments running more
// than one instance of the service.
type RedisBus struct {
	client *redis.Client
}

// NewRedisBus creates a new Redis-backed bus
func NewRedisBus(client *redis.Client) *RedisBus {
	return &RedisBus{client: client}
}

// Publish sends a message to all current subscribers of the topic
func (b *RedisBus) Publish(ctx context.Context, topic string, message *models.ChatMessage) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	if err := b.client.Publish(ctx, topic, data).Err(); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// Subscribe returns a stream of messages published to the topic
func (b *RedisBus) Subscribe(ctx context.Context, topic string) (<-chan *models.ChatMessage, error) {
	pubsub := b.client.Subscribe(ctx, topic)

	// Wait for the subscription to be confirmed before returning, so a
	// message published right after Subscribe is not missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to topic: %w", err)
	}

	out := make(chan *models.ChatMessage, subscriberBuffer)

	go func() {
		defer close(out)
		defer pubsub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-pubsub.Channel():
				if !ok {
					return
				}
				var message models.ChatMessage
				if err := json.Unmarshal([]byte(msg.Payload), &message); err != nil {
					log.Error().Err(err).Str("topic", topic).Msg("Failed to decode relay message")
					continue
				}
				select {
				case out <- &message:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
