package repository

import (
	"context"
	"fmt"

	"lostfound-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const messageCollection = "messages"

// MessageRepository handles chat message persistence
type MessageRepository struct {
	db *mongo.Database
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{db: db}
}

// Save inserts a chat message
func (r *MessageRepository) Save(ctx context.Context, message *models.ChatMessage) error {
	collection := r.db.Collection(messageCollection)
	if _, err := collection.InsertOne(ctx, message); err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

// GetByItemBetween retrieves the chat history for an item between two
// users, ordered by ascending timestamp.
func (r *MessageRepository) GetByItemBetween(ctx context.Context, itemID, userA, userB string) ([]*models.ChatMessage, error) {
	collection := r.db.Collection(messageCollection)

	filter := bson.M{
		"item_id": itemID,
		"$or": bson.A{
			bson.M{"sender_id": userA, "receiver_id": userB},
			bson.M{"sender_id": userB, "receiver_id": userA},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []*models.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}

	return messages, nil
}
