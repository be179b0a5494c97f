package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"hirehub/internal/engine/actors"
	"hirehub/internal/middleware"
	"hirehub/internal/models"
	"hirehub/internal/utils"
)

// SendMessageRequest represents a request to append a chat message
type SendMessageRequest struct {
	ConversationID string                 `json:"conversationId"`
	Participants   []string               `json:"participants"`
	Text           string                 `json:"text"`
	Meta           map[string]interface{} `json:"meta,omitempty"`
}

// HandleMessages handles POST /messages
func (s *Server) HandleMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		identity, ok := middleware.GetIdentityFromContext(r.Context())
		if !ok {
			writeError(w, utils.NewUnauthorizedError("missing caller identity"))
			return
		}

		var req SendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, utils.NewValidationError("invalid request body"))
			return
		}

		sender := identity.Identifier()
		if sender == "" {
			sender = "unknown"
		}

		result := s.ask(s.MessageActor, &actors.AppendMessageMsg{
			ConversationID: req.ConversationID,
			Participants:   req.Participants,
			Sender:         sender,
			Text:           req.Text,
			Meta:           req.Meta,
		})

		saved, ok := result.(*models.Message)
		if !ok {
			respond(w, http.StatusCreated, result)
			return
		}

		// Attachment shares also alert the other participant. The pair is
		// not transactional: the message is already persisted, and a failed
		// notification write is dropped without surfacing to the caller.
		if note := models.ParseAttachmentNote(saved.Text); note != nil {
			s.notifyAttachmentShare(saved, sender)
		}

		writeJSON(w, http.StatusCreated, saved)
	}
}

// notifyAttachmentShare fires a best-effort notification at the participant
// who did not send the message. Send is one-way; no response is awaited and
// failures stay inside the notification actor.
func (s *Server) notifyAttachmentShare(saved *models.Message, sender string) {
	for _, p := range saved.Participants {
		if strings.EqualFold(p, sender) {
			continue
		}
		s.Context.Send(s.NotificationActor, &actors.CreateNotificationMsg{
			UserID:  s.resolveRecipientID(p),
			Message: saved.Text,
		})
	}
}

// resolveRecipientID maps a participant identifier (normally an email) to the
// user id the notification routes list and mark by. A participant without a
// profile keeps the raw identifier.
func (s *Server) resolveRecipientID(identifier string) string {
	ctx, cancel := context.WithTimeout(context.Background(), s.RequestTimeout)
	defer cancel()

	user, err := s.DB.GetUserByEmail(ctx, identifier)
	if err != nil || user == nil {
		return identifier
	}
	return user.ID
}

// HandleConversationRoutes handles the /messages/ subtree:
// GET /messages/conversations/list, GET /messages/{conversationId},
// DELETE /messages/{conversationId}
func (s *Server) HandleConversationRoutes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/messages/")

		if rest == "conversations/list" {
			s.handleListConversations(w, r)
			return
		}

		conversationID := strings.Trim(rest, "/")
		if conversationID == "" || strings.Contains(conversationID, "/") {
			http.NotFound(w, r)
			return
		}

		switch r.Method {
		case http.MethodGet:
			s.handleListMessages(w, r, conversationID)
		case http.MethodDelete:
			s.handleDeleteConversation(w, conversationID)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, utils.NewUnauthorizedError("missing caller identity"))
		return
	}

	result := s.ask(s.MessageActor, &actors.ListConversationsMsg{
		Identifier: identity.Identifier(),
	})

	respond(w, http.StatusOK, result)
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request, conversationID string) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			writeError(w, utils.NewValidationError("limit must be an integer"))
			return
		}
		limit = parsed
	}

	result := s.ask(s.MessageActor, &actors.ListMessagesMsg{
		ConversationID: conversationID,
		Limit:          limit,
	})

	respond(w, http.StatusOK, result)
}

func (s *Server) handleDeleteConversation(w http.ResponseWriter, conversationID string) {
	result := s.ask(s.MessageActor, &actors.DeleteConversationMsg{
		ConversationID: conversationID,
	})

	if appErr, ok := result.(*utils.AppError); ok {
		writeError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
