package actors

import (
	"log"
	"sort"
	"strings"
	"time"

	"hirehub/internal/database"
	"hirehub/internal/models"
	"hirehub/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Message types for NotificationActor
type (
	CreateNotificationMsg struct {
		UserID        string
		ApplicationID string
		Message       string
	}

	ListNotificationsMsg struct {
		UserID string
	}

	MarkNotificationReadMsg struct {
		NotificationID string
		UserID         string // The user marking the notification as read
	}

	GetNotificationCountMsg struct{}
)

// NotificationActor owns notification records: creation on server-side
// events, per-user listings and the one-way unread -> read transition.
type NotificationActor struct {
	db      database.DBAdapter
	metrics *utils.MetricsCollector
}

func NewNotificationActor(db database.DBAdapter, metrics *utils.MetricsCollector) actor.Actor {
	return &NotificationActor{
		db:      db,
		metrics: metrics,
	}
}

func (a *NotificationActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("NotificationActor started with PID: %v", context.Self())

	case *CreateNotificationMsg:
		a.handleCreateNotification(context, msg)

	case *ListNotificationsMsg:
		a.handleListNotifications(context, msg)

	case *MarkNotificationReadMsg:
		a.handleMarkRead(context, msg)

	case *GetNotificationCountMsg:
		ctx, cancel := opContext()
		defer cancel()
		count, err := a.db.CountNotifications(ctx)
		if err != nil {
			context.Respond(utils.NewDatabaseError("count notifications", err))
			return
		}
		context.Respond(count)
	}
}

// handleCreateNotification services both RequestFuture callers and one-way
// Sends from the attachment path; with no sender there is nobody to answer,
// and an unguarded Respond would only feed the dead letter queue.
func (a *NotificationActor) handleCreateNotification(actorCtx actor.Context, msg *CreateNotificationMsg) {
	a.metrics.IncrementRequests()

	respond := func(result interface{}) {
		if actorCtx.Sender() != nil {
			actorCtx.Respond(result)
		}
	}

	if strings.TrimSpace(msg.UserID) == "" || strings.TrimSpace(msg.Message) == "" {
		a.metrics.IncrementErrors()
		respond(utils.NewValidationError("user id and message are required"))
		return
	}

	notification := &models.Notification{
		ID:            uuid.NewString(),
		UserID:        msg.UserID,
		ApplicationID: msg.ApplicationID,
		Message:       msg.Message,
		IsRead:        false,
		CreatedAt:     time.Now().UTC(),
	}

	ctx, cancel := opContext()
	defer cancel()
	if err := a.db.SaveNotification(ctx, notification); err != nil {
		a.metrics.IncrementErrors()
		respond(utils.NewDatabaseError("save notification", err))
		return
	}

	respond(notification)
}

func (a *NotificationActor) handleListNotifications(actorCtx actor.Context, msg *ListNotificationsMsg) {
	a.metrics.IncrementRequests()

	ctx, cancel := opContext()
	defer cancel()
	notifications, err := a.db.GetUserNotifications(ctx, msg.UserID)
	if err != nil {
		a.metrics.IncrementErrors()
		actorCtx.Respond(utils.NewDatabaseError("list notifications", err))
		return
	}

	// Newest first regardless of store return order.
	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})

	actorCtx.Respond(notifications)
}

func (a *NotificationActor) handleMarkRead(actorCtx actor.Context, msg *MarkNotificationReadMsg) {
	a.metrics.IncrementRequests()

	ctx, cancel := opContext()
	defer cancel()
	matched, err := a.db.MarkNotificationRead(ctx, msg.NotificationID, msg.UserID)
	if err != nil {
		a.metrics.IncrementErrors()
		actorCtx.Respond(utils.NewDatabaseError("mark notification read", err))
		return
	}

	// Not matched covers both a missing notification and one owned by
	// someone else; the caller cannot tell which.
	if !matched {
		actorCtx.Respond(utils.NewNotificationNotFoundError(msg.NotificationID))
		return
	}

	actorCtx.Respond(true)
}
