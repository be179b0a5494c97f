package database

import (
	"context"
	"testing"
	"time"

	"hirehub/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestMemoryDBMessageFiltering(t *testing.T) {
	db := NewMemoryDB()
	ctx := context.Background()

	save := func(id, convo string, participants []string) {
		assert.NoError(t, db.SaveMessage(ctx, &models.Message{
			ID:             id,
			ConversationID: convo,
			Participants:   participants,
			Sender:         participants[0],
			Text:           "hi",
			CreatedAt:      time.Now().UTC(),
		}))
	}
	save("m1", "a__b", []string{"a", "b"})
	save("m2", "a__c", []string{"a", "c"})
	save("m3", "b__c", []string{"b", "c"})

	byConvo, err := db.GetConversationMessages(ctx, "a__b", 100)
	assert.NoError(t, err)
	assert.Len(t, byConvo, 1)

	byParticipant, err := db.GetMessagesByParticipant(ctx, "A")
	assert.NoError(t, err)
	assert.Len(t, byParticipant, 2, "participant match is case-insensitive")

	assert.NoError(t, db.DeleteConversation(ctx, "a__b"))
	count, err := db.CountMessages(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestMemoryDBMarkNotificationReadOwnership(t *testing.T) {
	db := NewMemoryDB()
	ctx := context.Background()

	assert.NoError(t, db.SaveNotification(ctx, &models.Notification{
		ID:        "n1",
		UserID:    "user-x",
		Message:   "status changed",
		CreatedAt: time.Now().UTC(),
	}))

	matched, err := db.MarkNotificationRead(ctx, "n1", "user-y")
	assert.NoError(t, err)
	assert.False(t, matched, "another user's notification must not match")

	matched, err = db.MarkNotificationRead(ctx, "n1", "user-x")
	assert.NoError(t, err)
	assert.True(t, matched)

	// Already read still matches
	matched, err = db.MarkNotificationRead(ctx, "n1", "user-x")
	assert.NoError(t, err)
	assert.True(t, matched)
}

func TestMemoryDBUserLookups(t *testing.T) {
	db := NewMemoryDB()
	ctx := context.Background()

	db.AddUser(&models.User{ID: "u1", Email: "bob@x.com", FullName: "Bob Jones"})

	byEmail, err := db.GetUserByEmail(ctx, "BOB@x.com")
	assert.NoError(t, err)
	if assert.NotNil(t, byEmail) {
		assert.Equal(t, "Bob Jones", byEmail.FullName)
	}

	byID, err := db.GetUserByID(ctx, "u1")
	assert.NoError(t, err)
	assert.NotNil(t, byID)

	missing, err := db.GetUserByEmail(ctx, "nobody@x.com")
	assert.NoError(t, err)
	assert.Nil(t, missing, "a missing profile is not an error")
}
