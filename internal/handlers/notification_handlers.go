package handlers

import (
	"io"
	"net/http"
	"strings"

	"hirehub/internal/engine/actors"
	"hirehub/internal/middleware"
	"hirehub/internal/utils"
)

// HandleNotifications handles POST /notifications. The web client calls this
// when it synthesizes chat alerts, but creation is driven by server-side
// events; the endpoint accepts and discards the payload, answering null the
// way the client API stub does.
func (s *Server) HandleNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if _, ok := middleware.GetIdentityFromContext(r.Context()); !ok {
			writeError(w, utils.NewUnauthorizedError("missing caller identity"))
			return
		}

		io.Copy(io.Discard, r.Body)
		writeJSON(w, http.StatusOK, nil)
	}
}

// HandleNotificationRoutes handles the /notifications/ subtree:
// GET /notifications/me, PATCH /notifications/{id}/read
func (s *Server) HandleNotificationRoutes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.GetIdentityFromContext(r.Context())
		if !ok {
			writeError(w, utils.NewUnauthorizedError("missing caller identity"))
			return
		}

		rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/notifications/"), "/")

		if rest == "me" {
			if r.Method != http.MethodGet {
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
				return
			}
			result := s.ask(s.NotificationActor, &actors.ListNotificationsMsg{
				UserID: identity.ID,
			})
			respond(w, http.StatusOK, result)
			return
		}

		if id, found := strings.CutSuffix(rest, "/read"); found && !strings.Contains(id, "/") && id != "" {
			if r.Method != http.MethodPatch {
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
				return
			}
			result := s.ask(s.NotificationActor, &actors.MarkNotificationReadMsg{
				NotificationID: id,
				UserID:         identity.ID,
			})
			if appErr, ok := result.(*utils.AppError); ok {
				writeError(w, appErr)
				return
			}
			writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
			return
		}

		http.NotFound(w, r)
	}
}
