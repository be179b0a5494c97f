package models

import (
	"time"
)

// Notification is one alert for a user. The only mutation it ever sees is
// the read flag flipping from false to true; there is no mark-unread.
type Notification struct {
	ID            string    `json:"id" bson:"_id"`
	UserID        string    `json:"user_id" bson:"user_id"`
	ApplicationID string    `json:"application_id,omitempty" bson:"application_id,omitempty"`
	Message       string    `json:"message" bson:"message"`
	IsRead        bool      `json:"is_read" bson:"is_read"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}
