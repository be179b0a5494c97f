package database

import (
	"context"
	"fmt"
	"time"

	"hirehub/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationDocument represents the MongoDB document structure for notifications
type NotificationDocument struct {
	ID            string    `bson:"_id"`
	UserID        string    `bson:"user_id"`
	ApplicationID string    `bson:"application_id,omitempty"`
	Message       string    `bson:"message"`
	IsRead        bool      `bson:"is_read"`
	CreatedAt     time.Time `bson:"createdAt"`
}

// SaveNotification persists a new notification
func (m *MongoDB) SaveNotification(ctx context.Context, notification *models.Notification) error {
	doc := NotificationDocument{
		ID:            notification.ID,
		UserID:        notification.UserID,
		ApplicationID: notification.ApplicationID,
		Message:       notification.Message,
		IsRead:        notification.IsRead,
		CreatedAt:     notification.CreatedAt,
	}

	_, err := m.Notifications.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to save notification: %v", err)
	}

	return nil
}

// GetUserNotifications retrieves all notifications for a user, newest first
func (m *MongoDB) GetUserNotifications(ctx context.Context, userID string) ([]*models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := m.Notifications.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get user notifications: %v", err)
	}
	defer cursor.Close(ctx)

	notifications := []*models.Notification{}
	for cursor.Next(ctx) {
		var doc NotificationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode notification: %v", err)
		}
		notifications = append(notifications, &models.Notification{
			ID:            doc.ID,
			UserID:        doc.UserID,
			ApplicationID: doc.ApplicationID,
			Message:       doc.Message,
			IsRead:        doc.IsRead,
			CreatedAt:     doc.CreatedAt,
		})
	}

	return notifications, nil
}

// MarkNotificationRead sets the read flag on a notification owned by userID.
// The filter carries both ids so one user can never flip another user's
// notification. Returns false when nothing matched. Marking an already-read
// notification matches and succeeds, so repeat calls are no-ops.
func (m *MongoDB) MarkNotificationRead(ctx context.Context, notificationID string, userID string) (bool, error) {
	result, err := m.Notifications.UpdateOne(ctx,
		bson.M{"_id": notificationID, "user_id": userID},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark notification read: %v", err)
	}

	return result.MatchedCount > 0, nil
}

// CountNotifications returns the total number of stored notifications
func (m *MongoDB) CountNotifications(ctx context.Context) (int64, error) {
	return m.Notifications.CountDocuments(ctx, bson.M{})
}
