// internal/database/database.go
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"hirehub/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DBAdapter defines the store operations the messaging subsystem needs.
// MongoDB is the production backend; tests substitute an in-memory fake.
type DBAdapter interface {
	// Connection
	Close(ctx context.Context) error

	// Message methods
	SaveMessage(ctx context.Context, msg *models.Message) error
	GetConversationMessages(ctx context.Context, conversationID string, limit int) ([]*models.Message, error)
	GetMessagesByParticipant(ctx context.Context, identifier string) ([]*models.Message, error)
	DeleteConversation(ctx context.Context, conversationID string) error
	CountMessages(ctx context.Context) (int64, error)

	// Notification methods
	SaveNotification(ctx context.Context, notification *models.Notification) error
	GetUserNotifications(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID string, userID string) (bool, error)
	CountNotifications(ctx context.Context) (int64, error)

	// User methods (read-only, used for conversation display enrichment)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

type MongoDB struct {
	Client        *mongo.Client
	Users         *mongo.Collection
	Messages      *mongo.Collection
	Notifications *mongo.Collection
}

func NewMongoDB(uri string) (*MongoDB, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	// Ping the database to verify connection
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	log.Println("Successfully connected to MongoDB!")

	// Initialize database and collections
	db := client.Database("hirehub")
	m := &MongoDB{
		Client:        client,
		Users:         db.Collection("users"),
		Messages:      db.Collection("messages"),
		Notifications: db.Collection("notifications"),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		log.Printf("Warning: failed to create indexes: %v", err)
	}

	return m, nil
}

// ensureIndexes mirrors the schema indexes the message listing and
// aggregation queries depend on.
func (m *MongoDB) ensureIndexes(ctx context.Context) error {
	_, err := m.Messages.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "conversationId", Value: 1}, {Key: "createdAt", Value: 1}}},
		{Keys: bson.D{{Key: "participants", Value: 1}}},
	})
	if err != nil {
		return err
	}
	_, err = m.Notifications.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
