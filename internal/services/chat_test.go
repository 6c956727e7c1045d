package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"lostfound-backend/internal/models"
	"lostfound-backend/internal/relay"
)

type fakeMessageStore struct {
	saved []*models.ChatMessage
	err   error
}

func (f *fakeMessageStore) Save(ctx context.Context, message *models.ChatMessage) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, message)
	return nil
}

func (f *fakeMessageStore) GetByItemBetween(ctx context.Context, itemID, userA, userB string) ([]*models.ChatMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.ChatMessage
	for _, m := range f.saved {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}

func TestChatSendPersistsAndRelays(t *testing.T) {
	store := &fakeMessageStore{}
	bus := relay.NewMemoryBus()
	svc := NewChatService(store, bus)
	ctx := context.Background()

	stream, err := svc.Subscribe(ctx, "item1")
	if err != nil {
		t.Fatalf("failed to subscribe: %v", err)
	}

	message, err := svc.Send(ctx, "u1", "u2", "item1", "is this your wallet?")
	if err != nil {
		t.Fatalf("failed to send: %v", err)
	}
	if message.ID == "" || message.Timestamp.IsZero() {
		t.Error("expected generated id and timestamp")
	}

	if len(store.saved) != 1 {
		t.Fatalf("expected 1 persisted message, got %d", len(store.saved))
	}

	select {
	case got := <-stream:
		if got.SenderID != "u1" || got.ReceiverID != "u2" || got.Message != "is this your wallet?" {
			t.Errorf("unexpected relayed message: %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for relayed message")
	}
}

func TestChatSendRejectsEmptyFields(t *testing.T) {
	svc := NewChatService(&fakeMessageStore{}, relay.NewMemoryBus())

	if _, err := svc.Send(context.Background(), "u1", "", "item1", "hi"); err == nil {
		t.Error("expected error for missing receiver")
	}
	if _, err := svc.Send(context.Background(), "u1", "u2", "", "hi"); err == nil {
		t.Error("expected error for missing item")
	}
	if _, err := svc.Send(context.Background(), "u1", "u2", "item1", ""); err == nil {
		t.Error("expected error for empty message")
	}
}

func TestChatSendStoreFailure(t *testing.T) {
	store := &fakeMessageStore{err: errors.New("write failed")}
	svc := NewChatService(store, relay.NewMemoryBus())

	if _, err := svc.Send(context.Background(), "u1", "u2", "item1", "hi"); err == nil {
		t.Error("expected persistence error to propagate")
	}
}

func TestChatHistoryEmpty(t *testing.T) {
	svc := NewChatService(&fakeMessageStore{}, relay.NewMemoryBus())

	messages, err := svc.History(context.Background(), "item1", "u1", "u2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if messages == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(messages) != 0 {
		t.Errorf("expected 0 messages, got %d", len(messages))
	}
}
