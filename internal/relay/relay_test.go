package relay

import (
	"context"
	"testing"
	"time"

	"lostfound-backend/internal/models"
)

func TestMemoryBusFanOut(t *testing.T) {
	bus := NewMemoryBus()
	ctx := context.Background()
	topic := ItemTopic("item1")

	sub1, err := bus.Subscribe(ctx, topic)
	if err != nil {
		t.Fatalf("failed to subscribe: %v", err)
	}
	sub2, err := bus.Subscribe(ctx, topic)
	if err != nil {
		t.Fatalf("failed to subscribe: %v", err)
	}

	msg := &models.ChatMessage{ID: "m1", ItemID: "item1", Message: "hello"}
	if err := bus.Publish(ctx, topic, msg); err != nil {
		t.Fatalf("failed to publish: %v", err)
	}

	for i, sub := range []<-chan *models.ChatMessage{sub1, sub2} {
		select {
		case got := <-sub:
			if got.ID != "m1" || got.Message != "hello" {
				t.Errorf("subscriber %d: unexpected message %+v", i, got)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d: timed out waiting for message", i)
		}
	}
}

func TestMemoryBusTopicIsolation(t *testing.T) {
	bus := NewMemoryBus()
	ctx := context.Background()

	sub, err := bus.Subscribe(ctx, ItemTopic("item1"))
	if err != nil {
		t.Fatalf("failed to subscribe: %v", err)
	}

	bus.Publish(ctx, ItemTopic("item2"), &models.ChatMessage{ID: "m1"})

	select {
	case got := <-sub:
		t.Errorf("expected no message on other topic, got %+v", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestMemoryBusUnsubscribeOnCancel(t *testing.T) {
	bus := NewMemoryBus()
	ctx, cancel := context.WithCancel(context.Background())
	topic := ItemTopic("item1")

	sub, err := bus.Subscribe(ctx, topic)
	if err != nil {
		t.Fatalf("failed to subscribe: %v", err)
	}

	cancel()

	// The stream must close once the subscriber context is cancelled.
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-sub:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for stream to close")
		}
	}
}
