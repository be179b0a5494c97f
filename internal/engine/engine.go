package engine

import (
	"hirehub/internal/database"
	"hirehub/internal/engine/actors"
	"hirehub/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Engine coordinates communication between actors
type Engine struct {
	messageActor      *actor.PID
	notificationActor *actor.PID
}

func NewEngine(system *actor.ActorSystem, db database.DBAdapter, metrics *utils.MetricsCollector) *Engine {
	context := system.Root

	// Spawn message actor
	messageProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewMessageActor(db, metrics)
	})
	messagePID := context.Spawn(messageProps)

	// Spawn notification actor
	notificationProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewNotificationActor(db, metrics)
	})
	notificationPID := context.Spawn(notificationProps)

	return &Engine{
		messageActor:      messagePID,
		notificationActor: notificationPID,
	}
}

// GetMessageActor returns the PID of the message actor
func (e *Engine) GetMessageActor() *actor.PID {
	return e.messageActor
}

// GetNotificationActor returns the PID of the notification actor
func (e *Engine) GetNotificationActor() *actor.PID {
	return e.notificationActor
}
