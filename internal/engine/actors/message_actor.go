package actors

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"sort"
	"strings"
	"time"

	"hirehub/internal/api"
	"hirehub/internal/database"
	"hirehub/internal/models"
	"hirehub/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Message types for MessageActor
type (
	AppendMessageMsg struct {
		ConversationID string
		Participants   []string
		Sender         string
		Text           string
		Meta           map[string]interface{}
	}

	ListMessagesMsg struct {
		ConversationID string
		Limit          int
	}

	ListConversationsMsg struct {
		Identifier string // caller's email or id
	}

	DeleteConversationMsg struct {
		ConversationID string
	}

	GetMessageCountMsg struct{}
)

const (
	defaultMessageLimit = 200
	maxMessageLimit     = 500

	dbTimeout = 5 * time.Second
)

// MessageActor owns the message store: appends, per-conversation listings,
// bulk deletes and the aggregated conversation view.
type MessageActor struct {
	db      database.DBAdapter
	metrics *utils.MetricsCollector
}

func NewMessageActor(db database.DBAdapter, metrics *utils.MetricsCollector) actor.Actor {
	return &MessageActor{
		db:      db,
		metrics: metrics,
	}
}

func (a *MessageActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("MessageActor started with PID: %v", context.Self())

	case *AppendMessageMsg:
		a.handleAppendMessage(context, msg)

	case *ListMessagesMsg:
		a.handleListMessages(context, msg)

	case *ListConversationsMsg:
		a.handleListConversations(context, msg)

	case *DeleteConversationMsg:
		a.handleDeleteConversation(context, msg)

	case *GetMessageCountMsg:
		ctx, cancel := opContext()
		defer cancel()
		count, err := a.db.CountMessages(ctx)
		if err != nil {
			context.Respond(utils.NewDatabaseError("count messages", err))
			return
		}
		context.Respond(count)
	}
}

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

func (a *MessageActor) handleAppendMessage(actorCtx actor.Context, msg *AppendMessageMsg) {
	start := time.Now()
	a.metrics.IncrementRequests()

	participants := models.NormalizeParticipants(msg.Participants)
	if msg.ConversationID == "" || strings.TrimSpace(msg.Text) == "" || len(participants) < 2 {
		a.metrics.IncrementErrors()
		actorCtx.Respond(utils.NewValidationError("conversationId, participants[>=2], and text are required"))
		return
	}

	sender := strings.TrimSpace(msg.Sender)
	if sender == "" {
		sender = "unknown"
	}

	newMessage := &models.Message{
		ID:             uuid.NewString(),
		ConversationID: msg.ConversationID,
		Participants:   participants,
		Sender:         sender,
		Text:           msg.Text,
		Meta:           msg.Meta,
		CreatedAt:      time.Now().UTC(),
	}

	ctx, cancel := opContext()
	defer cancel()
	if err := a.db.SaveMessage(ctx, newMessage); err != nil {
		a.metrics.IncrementErrors()
		actorCtx.Respond(utils.NewDatabaseError("save message", err))
		return
	}

	a.metrics.AddOperationLatency("append_message", time.Since(start))
	actorCtx.Respond(newMessage)
}

func (a *MessageActor) handleListMessages(actorCtx actor.Context, msg *ListMessagesMsg) {
	a.metrics.IncrementRequests()

	limit := msg.Limit
	if limit <= 0 {
		limit = defaultMessageLimit
	}
	if limit > maxMessageLimit {
		limit = maxMessageLimit
	}

	ctx, cancel := opContext()
	defer cancel()
	messages, err := a.db.GetConversationMessages(ctx, msg.ConversationID, limit)
	if err != nil {
		a.metrics.IncrementErrors()
		actorCtx.Respond(utils.NewDatabaseError("list messages", err))
		return
	}

	// The read contract is ascending by creation time regardless of how the
	// store returned them. Stable sort leaves same-timestamp messages in
	// store order.
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	if len(messages) > limit {
		messages = messages[:limit]
	}

	actorCtx.Respond(messages)
}

// conversationGroup accumulates the latest message seen for one conversation id.
type conversationGroup struct {
	lastMessage  string
	lastAt       time.Time
	participants []string
	firstSeen    int
}

func (a *MessageActor) handleListConversations(actorCtx actor.Context, msg *ListConversationsMsg) {
	start := time.Now()
	a.metrics.IncrementRequests()

	me := strings.ToLower(strings.TrimSpace(msg.Identifier))
	if me == "" {
		actorCtx.Respond(&api.ConversationListResponse{Conversations: []*api.ConversationSummary{}})
		return
	}

	ctx, cancel := opContext()
	defer cancel()
	messages, err := a.db.GetMessagesByParticipant(ctx, me)
	if err != nil {
		a.metrics.IncrementErrors()
		actorCtx.Respond(utils.NewDatabaseError("list conversations", err))
		return
	}

	// Group by conversation id, keeping the most recent message of each
	// group as its representative. Messages arrive ascending, so on equal
	// timestamps the later insert wins.
	groups := make(map[string]*conversationGroup)
	order := []string{}
	for _, m := range messages {
		g, exists := groups[m.ConversationID]
		if !exists {
			g = &conversationGroup{firstSeen: len(order)}
			groups[m.ConversationID] = g
			order = append(order, m.ConversationID)
		}
		if !m.CreatedAt.Before(g.lastAt) {
			g.lastMessage = m.Text
			g.lastAt = m.CreatedAt
			g.participants = m.Participants
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return groups[order[i]].lastAt.After(groups[order[j]].lastAt)
	})

	conversations := make([]*api.ConversationSummary, 0, len(order))
	for _, id := range order {
		g := groups[id]
		conversations = append(conversations, a.summarize(ctx, id, g, me))
	}

	a.metrics.AddOperationLatency("list_conversations", time.Since(start))
	actorCtx.Respond(&api.ConversationListResponse{Conversations: conversations})
}

// summarize builds the display entry for one conversation. Profile lookups
// are cosmetic: any failure falls back to the raw identifier and a generated
// avatar, never an error.
func (a *MessageActor) summarize(ctx context.Context, conversationID string, g *conversationGroup, me string) *api.ConversationSummary {
	other := "unknown@example.com"
	for _, p := range g.participants {
		if strings.ToLower(p) != me {
			other = p
			break
		}
	}

	displayName := other
	otherRole := ""
	avatar := ""

	user, err := a.db.GetUserByEmail(ctx, other)
	if err != nil {
		log.Printf("MessageActor: profile lookup by email failed for %s: %v", other, err)
	}
	if user == nil && err == nil {
		if _, parseErr := uuid.Parse(other); parseErr == nil {
			user, err = a.db.GetUserByID(ctx, other)
			if err != nil {
				log.Printf("MessageActor: profile lookup by id failed for %s: %v", other, err)
			}
		}
	}
	if user != nil {
		if user.FullName != "" {
			displayName = user.FullName
		}
		otherRole = user.Role
		avatar = user.AvatarURL
	}

	img := avatar
	if img == "" {
		img = fmt.Sprintf("https://api.dicebear.com/7.x/initials/svg?seed=%s", url.QueryEscape(displayName))
	}

	return &api.ConversationSummary{
		ID:           conversationID,
		Name:         displayName,
		LastMessage:  g.lastMessage,
		LastAt:       g.lastAt,
		Participants: g.participants,
		OtherRole:    otherRole,
		Avatar:       avatar,
		Img:          img,
	}
}

func (a *MessageActor) handleDeleteConversation(actorCtx actor.Context, msg *DeleteConversationMsg) {
	a.metrics.IncrementRequests()

	ctx, cancel := opContext()
	defer cancel()
	if err := a.db.DeleteConversation(ctx, msg.ConversationID); err != nil {
		a.metrics.IncrementErrors()
		actorCtx.Respond(utils.NewDatabaseError("delete conversation", err))
		return
	}

	actorCtx.Respond(true)
}
