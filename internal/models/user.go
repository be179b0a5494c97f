package models

import (
	"time"
)

// User is the profile record consulted when decorating conversation lists
// with a friendly name and avatar. This service only ever reads users;
// registration and profile editing live elsewhere.
type User struct {
	ID        string    `json:"id" bson:"_id"`
	Email     string    `json:"email" bson:"email"`
	Role      string    `json:"role" bson:"role"`
	FullName  string    `json:"full_name,omitempty" bson:"full_name,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
