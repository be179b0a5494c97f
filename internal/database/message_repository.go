package database

import (
	"context"
	"fmt"
	"time"

	"hirehub/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageDocument represents the MongoDB document structure for chat messages
type MessageDocument struct {
	ID             string                 `bson:"_id"`
	ConversationID string                 `bson:"conversationId"`
	Participants   []string               `bson:"participants"`
	Sender         string                 `bson:"sender"`
	Text           string                 `bson:"text"`
	Meta           map[string]interface{} `bson:"meta,omitempty"`
	CreatedAt      time.Time              `bson:"createdAt"`
}

func messageFromDocument(doc *MessageDocument) *models.Message {
	return &models.Message{
		ID:             doc.ID,
		ConversationID: doc.ConversationID,
		Participants:   doc.Participants,
		Sender:         doc.Sender,
		Text:           doc.Text,
		Meta:           doc.Meta,
		CreatedAt:      doc.CreatedAt,
	}
}

// SaveMessage persists a new chat message
func (m *MongoDB) SaveMessage(ctx context.Context, msg *models.Message) error {
	doc := MessageDocument{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		Participants:   msg.Participants,
		Sender:         msg.Sender,
		Text:           msg.Text,
		Meta:           msg.Meta,
		CreatedAt:      msg.CreatedAt,
	}

	_, err := m.Messages.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to save message: %v", err)
	}

	return nil
}

// GetConversationMessages retrieves messages in a conversation, ascending by
// creation time, bounded by limit. An unknown conversation yields an empty
// slice, not an error.
func (m *MongoDB) GetConversationMessages(ctx context.Context, conversationID string, limit int) ([]*models.Message, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := m.Messages.Find(ctx, bson.M{"conversationId": conversationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation messages: %v", err)
	}
	defer cursor.Close(ctx)

	messages := []*models.Message{}
	for cursor.Next(ctx) {
		var doc MessageDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode message: %v", err)
		}
		messages = append(messages, messageFromDocument(&doc))
	}

	return messages, nil
}

// GetMessagesByParticipant retrieves every message whose participant set
// contains the given identifier, ascending by creation time. The conversation
// aggregator derives its view from this.
func (m *MongoDB) GetMessagesByParticipant(ctx context.Context, identifier string) ([]*models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := m.Messages.Find(ctx, bson.M{"participants": identifier}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get participant messages: %v", err)
	}
	defer cursor.Close(ctx)

	messages := []*models.Message{}
	for cursor.Next(ctx) {
		var doc MessageDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode message: %v", err)
		}
		messages = append(messages, messageFromDocument(&doc))
	}

	return messages, nil
}

// DeleteConversation removes all messages with the given conversation id.
// Deleting an already-empty conversation succeeds.
func (m *MongoDB) DeleteConversation(ctx context.Context, conversationID string) error {
	_, err := m.Messages.DeleteMany(ctx, bson.M{"conversationId": conversationID})
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %v", err)
	}
	return nil
}

// CountMessages returns the total number of stored messages
func (m *MongoDB) CountMessages(ctx context.Context) (int64, error) {
	return m.Messages.CountDocuments(ctx, bson.M{})
}
