package models

import (
	"time"
)

// Message is one chat line in a two-party conversation. Messages are
// append-only: once written they are never edited, only removed in bulk
// when the whole conversation is deleted.
type Message struct {
	ID             string                 `json:"id" bson:"_id"`
	ConversationID string                 `json:"conversationId" bson:"conversationId"`
	Participants   []string               `json:"participants" bson:"participants"`
	Sender         string                 `json:"sender" bson:"sender"`
	Text           string                 `json:"text" bson:"text"`
	Meta           map[string]interface{} `json:"meta,omitempty" bson:"meta,omitempty"`
	CreatedAt      time.Time              `json:"createdAt" bson:"createdAt"`
}
