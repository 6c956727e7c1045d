package services

import (
	"context"
	"fmt"
	"time"

	"lostfound-backend/internal/models"
	"lostfound-backend/internal/relay"

	"github.com/google/uuid"
)

// MessageStore is the persistence surface the chat service needs.
type MessageStore interface {
	Save(ctx context.Context, message *models.ChatMessage) error
	GetByItemBetween(ctx context.Context, itemID, userA, userB string) ([]*models.ChatMessage, error)
}

// ChatService persists chat messages and relays them to subscribers
type ChatService struct {
	messageRepo MessageStore
	bus         relay.Bus
}

// NewChatService creates a new chat service
func NewChatService(messageRepo MessageStore, bus relay.Bus) *ChatService {
	return &ChatService{
		messageRepo: messageRepo,
		bus:         bus,
	}
}

// Send persists a chat message and publishes it to the item's relay topic
func (s *ChatService) Send(ctx context.Context, senderID, receiverID, itemID, text string) (*models.ChatMessage, error) {
	if receiverID == "" || itemID == "" || text == "" {
		return nil, fmt.Errorf("receiver_id, item_id and message are required")
	}

	message := &models.ChatMessage{
		ID:         uuid.New().String(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		ItemID:     itemID,
		Message:    text,
		Timestamp:  time.Now(),
	}

	if err := s.messageRepo.Save(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to persist message: %w", err)
	}

	if err := s.bus.Publish(ctx, relay.ItemTopic(itemID), message); err != nil {
		return nil, fmt.Errorf("failed to relay message: %w", err)
	}

	return message, nil
}

// History retrieves the chat history for an item between two users,
// ordered by ascending timestamp
func (s *ChatService) History(ctx context.Context, itemID, userA, userB string) ([]*models.ChatMessage, error) {
	messages, err := s.messageRepo.GetByItemBetween(ctx, itemID, userA, userB)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []*models.ChatMessage{}
	}
	return messages, nil
}

// Subscribe streams messages published to the item's chat topic until ctx
// is cancelled
func (s *ChatService) Subscribe(ctx context.Context, itemID string) (<-chan *models.ChatMessage, error) {
	return s.bus.Subscribe(ctx, relay.ItemTopic(itemID))
}
