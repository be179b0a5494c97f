package actors

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"hirehub/internal/database"
	"hirehub/internal/models"
	"hirehub/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
)

func spawnNotificationActor(db database.DBAdapter) (*actor.ActorSystem, *actor.PID) {
	system := actor.NewActorSystem()
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewNotificationActor(db, utils.NewMetricsCollector())
	})
	return system, system.Root.Spawn(props)
}

func TestCreateAndListNotifications(t *testing.T) {
	system, pid := spawnNotificationActor(database.NewMemoryDB())

	result := ask(t, system, pid, &CreateNotificationMsg{
		UserID:        "user-1",
		ApplicationID: "app-1",
		Message:       `Your application for "Backend Engineer" has been updated to: accepted`,
	})
	created, ok := result.(*models.Notification)
	if !ok {
		t.Fatalf("expected notification, got %T: %v", result, result)
	}
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.IsRead)
	assert.Equal(t, "app-1", created.ApplicationID)

	listed := ask(t, system, pid, &ListNotificationsMsg{UserID: "user-1"}).([]*models.Notification)
	if assert.Len(t, listed, 1) {
		assert.Equal(t, created.ID, listed[0].ID)
	}
}

func TestCreateNotificationOneWaySend(t *testing.T) {
	db := database.NewMemoryDB()
	system, pid := spawnNotificationActor(db)

	var deadLetters int64
	system.EventStream.Subscribe(func(evt interface{}) {
		if _, ok := evt.(*actor.DeadLetterEvent); ok {
			atomic.AddInt64(&deadLetters, 1)
		}
	})

	// One-way create, as the attachment path does it: no future, no sender.
	system.Root.Send(pid, &CreateNotificationMsg{
		UserID:  "user-1",
		Message: "Shared photo: team.jpg",
	})

	assert.Eventually(t, func() bool {
		listed, err := db.GetUserNotifications(context.Background(), "user-1")
		return err == nil && len(listed) == 1
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, int64(0), atomic.LoadInt64(&deadLetters))
}

func TestListNotificationsNewestFirst(t *testing.T) {
	db := database.NewMemoryDB()
	system, pid := spawnNotificationActor(db)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, text := range []string{"oldest", "middle", "newest"} {
		err := db.SaveNotification(context.Background(), &models.Notification{
			ID:        text,
			UserID:    "user-1",
			Message:   text,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		assert.NoError(t, err)
	}

	listed := ask(t, system, pid, &ListNotificationsMsg{UserID: "user-1"}).([]*models.Notification)
	if assert.Len(t, listed, 3) {
		assert.Equal(t, "newest", listed[0].Message)
		assert.Equal(t, "oldest", listed[2].Message)
	}
}

func TestNotificationValidation(t *testing.T) {
	db := database.NewMemoryDB()
	system, pid := spawnNotificationActor(db)

	for _, msg := range []*CreateNotificationMsg{
		{UserID: "", Message: "hello"},
		{UserID: "user-1", Message: "  "},
	} {
		result := ask(t, system, pid, msg)
		appErr, ok := result.(*utils.AppError)
		if assert.True(t, ok, "expected validation failure, got %T", result) {
			assert.Equal(t, utils.ErrInvalidInput, appErr.Code)
		}
	}

	count, err := db.CountNotifications(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestNotificationCrossUserIsolation(t *testing.T) {
	system, pid := spawnNotificationActor(database.NewMemoryDB())

	created := ask(t, system, pid, &CreateNotificationMsg{
		UserID:  "user-x",
		Message: "status changed",
	}).(*models.Notification)

	// Y never sees X's notification
	listed := ask(t, system, pid, &ListNotificationsMsg{UserID: "user-y"}).([]*models.Notification)
	assert.Empty(t, listed)

	// Y cannot mark it read either
	result := ask(t, system, pid, &MarkNotificationReadMsg{
		NotificationID: created.ID,
		UserID:         "user-y",
	})
	appErr, ok := result.(*utils.AppError)
	if assert.True(t, ok, "cross-user mark-read must fail, got %T", result) {
		assert.Equal(t, utils.ErrNotificationNotFound, appErr.Code)
	}

	// And it stays unread for X
	listed = ask(t, system, pid, &ListNotificationsMsg{UserID: "user-x"}).([]*models.Notification)
	if assert.Len(t, listed, 1) {
		assert.False(t, listed[0].IsRead)
	}
}

func TestMarkReadMonotonic(t *testing.T) {
	system, pid := spawnNotificationActor(database.NewMemoryDB())

	created := ask(t, system, pid, &CreateNotificationMsg{
		UserID:  "user-1",
		Message: "status changed",
	}).(*models.Notification)

	markRead := &MarkNotificationReadMsg{NotificationID: created.ID, UserID: "user-1"}

	assert.Equal(t, true, ask(t, system, pid, markRead))
	// Re-marking an already-read notification is a no-op, not an error
	assert.Equal(t, true, ask(t, system, pid, markRead))

	listed := ask(t, system, pid, &ListNotificationsMsg{UserID: "user-1"}).([]*models.Notification)
	if assert.Len(t, listed, 1) {
		assert.True(t, listed[0].IsRead)
	}
}

func TestMarkReadUnknownNotification(t *testing.T) {
	system, pid := spawnNotificationActor(database.NewMemoryDB())

	result := ask(t, system, pid, &MarkNotificationReadMsg{
		NotificationID: "no-such-id",
		UserID:         "user-1",
	})
	appErr, ok := result.(*utils.AppError)
	if assert.True(t, ok) {
		assert.Equal(t, utils.ErrNotificationNotFound, appErr.Code)
	}
}
