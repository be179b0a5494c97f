package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"hirehub/internal/engine/actors"
)

// HandleHealth reports liveness plus store counts, asking each actor the
// same way every other request does.
func (s *Server) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageResult := s.ask(s.MessageActor, &actors.GetMessageCountMsg{})
		messageCount, ok := messageResult.(int64)
		if !ok {
			http.Error(w, "Failed to get message count", http.StatusInternalServerError)
			return
		}

		notificationResult := s.ask(s.NotificationActor, &actors.GetNotificationCountMsg{})
		notificationCount, ok := notificationResult.(int64)
		if !ok {
			http.Error(w, "Failed to get notification count", http.StatusInternalServerError)
			return
		}

		requests, errs, uptime := s.Metrics.Snapshot()

		fmt.Fprintf(w, "HireHub Messaging Status:\n"+
			"- Total Messages: %d\n"+
			"- Total Notifications: %d\n"+
			"- Requests: %d (errors: %d)\n"+
			"- Uptime: %s\n",
			messageCount,
			notificationCount,
			requests,
			errs,
			uptime.Round(time.Second),
		)

		averages := s.Metrics.OperationAverages()
		names := make([]string, 0, len(averages))
		for name := range averages {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "- Avg %s: %s\n", name, averages[name].Round(time.Microsecond))
		}
	}
}
