package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hirehub/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserDocument represents the MongoDB document structure for user profiles.
// Only the fields the conversation enrichment reads are mapped.
type UserDocument struct {
	ID        string    `bson:"_id"`
	Email     string    `bson:"email"`
	Role      string    `bson:"role"`
	FullName  string    `bson:"full_name,omitempty"`
	AvatarURL string    `bson:"avatar_url,omitempty"`
	CreatedAt time.Time `bson:"createdAt"`
}

func userFromDocument(doc *UserDocument) *models.User {
	return &models.User{
		ID:        doc.ID,
		Email:     doc.Email,
		Role:      doc.Role,
		FullName:  doc.FullName,
		AvatarURL: doc.AvatarURL,
		CreatedAt: doc.CreatedAt,
	}
}

// GetUserByEmail looks up a profile by email. A missing profile returns
// (nil, nil) so callers can fall back without treating it as a failure.
func (m *MongoDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc UserDocument
	err := m.Users.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %v", err)
	}
	return userFromDocument(&doc), nil
}

// GetUserByID looks up a profile by id. A missing profile returns (nil, nil).
func (m *MongoDB) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var doc UserDocument
	err := m.Users.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %v", err)
	}
	return userFromDocument(&doc), nil
}
