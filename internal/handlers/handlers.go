package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"hirehub/internal/api"
	"hirehub/internal/database"
	"hirehub/internal/engine"
	"hirehub/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Server holds all server dependencies, including the actor system and engine
type Server struct {
	System            *actor.ActorSystem
	Context           *actor.RootContext
	Engine            *engine.Engine
	Metrics           *utils.MetricsCollector
	MessageActor      *actor.PID
	NotificationActor *actor.PID
	DB                database.DBAdapter
	RequestTimeout    time.Duration
}

// NewServer creates a new Server instance with the given components
func NewServer(
	system *actor.ActorSystem,
	eng *engine.Engine,
	metrics *utils.MetricsCollector,
	db database.DBAdapter,
) *Server {
	return &Server{
		System:            system,
		Context:           system.Root,
		Engine:            eng,
		Metrics:           metrics,
		MessageActor:      eng.GetMessageActor(),
		NotificationActor: eng.GetNotificationActor(),
		DB:                db,
		RequestTimeout:    5 * time.Second, // Default timeout for actor requests
	}
}

// ask sends a message to an actor and waits for the response. A future
// timeout comes back as an actor-timeout AppError so the handler boundary
// converts it like any other failure.
func (s *Server) ask(pid *actor.PID, message interface{}) interface{} {
	future := s.Context.RequestFuture(pid, message, s.RequestTimeout)
	result, err := future.Result()
	if err != nil {
		return utils.NewActorTimeoutError(pid.String())
	}
	return result
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError converts an AppError to its structured HTTP response
func writeError(w http.ResponseWriter, appErr *utils.AppError) {
	writeJSON(w, utils.AppErrorToHTTPStatus(appErr.Code), api.ErrorResponse{Error: appErr.Message})
}

// respond writes an actor result: AppErrors become error responses,
// everything else is encoded as-is with the given success status.
func respond(w http.ResponseWriter, successStatus int, result interface{}) {
	if appErr, ok := result.(*utils.AppError); ok {
		writeError(w, appErr)
		return
	}
	writeJSON(w, successStatus, result)
}
