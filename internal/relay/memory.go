package relay

import (
	"context"
	"sync"

	"lostfound-backend/internal/models"

	"github.com/rs/zerolog/log"
)

const subscriberBuffer = 16

// MemoryBus is an in-process Bus for single-instance deployments.
type MemoryBus struct {
	mu          sync.RWMutex
	subscribers map[string][]chan *models.ChatMessage
}

// NewMemoryBus creates a new in-process bus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		subscribers: make(map[string][]chan *models.ChatMessage),
	}
}

// Publish sends a message to all current subscribers of the topic.
// Subscribers that cannot keep up have the message dropped rather than
// blocking the publisher.
func (b *MemoryBus) Publish(ctx context.Context, topic string, message *models.ChatMessage) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers[topic] {
		select {
		case ch <- message:
		default:
			log.Warn().Str("topic", topic).Msg("Dropping message for slow subscriber")
		}
	}
	return nil
}

// Subscribe returns a stream of messages published to the topic
func (b *MemoryBus) Subscribe(ctx context.Context, topic string) (<-chan *models.ChatMessage, error) {
	ch := make(chan *models.ChatMessage, subscriberBuffer)

	b.mu.Lock()
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		subs := b.subscribers[topic]
		for i, sub := range subs {
			if sub == ch {
				b.subscribers[topic] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
		if len(b.subscribers[topic]) == 0 {
			delete(b.subscribers, topic)
		}
		b.mu.Unlock()
		close(ch)
	}()

	return ch, nil
}
