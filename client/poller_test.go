package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"hirehub/internal/api"
	"hirehub/internal/models"

	"github.com/stretchr/testify/assert"
)

func testServer(t *testing.T, failing *atomic.Bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/messages/conversations/list", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		if failing != nil && failing.Load() {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(api.ConversationListResponse{
			Conversations: []*api.ConversationSummary{
				{ID: "alice@x.com__bob@x.com", Name: "Bob Jones", LastMessage: "bye"},
			},
		})
	})

	mux.HandleFunc("/notifications/me", func(w http.ResponseWriter, r *http.Request) {
		if failing != nil && failing.Load() {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode([]*models.Notification{
			{ID: "n1", UserID: "user-1", Message: "status changed", IsRead: false},
			{ID: "n2", UserID: "user-1", Message: "older news", IsRead: true},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestPoller(serverURL string) *Poller {
	return NewPoller(Config{
		BaseURL:              serverURL,
		Token:                "test-token",
		ConversationInterval: 20 * time.Millisecond,
		NotificationInterval: 20 * time.Millisecond,
		NotificationBackoff:  40 * time.Millisecond,
	})
}

func TestPollerFetchesViews(t *testing.T) {
	server := testServer(t, nil)
	poller := newTestPoller(server.URL)

	poller.Start()
	defer poller.Stop()

	assert.Eventually(t, func() bool {
		return len(poller.Conversations()) == 1 && len(poller.Notifications()) == 2
	}, 2*time.Second, 10*time.Millisecond)

	conversations := poller.Conversations()
	assert.Equal(t, "Bob Jones", conversations[0].Name)
	assert.Equal(t, "bye", conversations[0].LastMessage)
	assert.Equal(t, 1, poller.UnreadCount())
}

func TestPollerSoftFailsToEmptyViews(t *testing.T) {
	var failing atomic.Bool
	server := testServer(t, &failing)
	poller := newTestPoller(server.URL)

	poller.Start()
	defer poller.Stop()

	assert.Eventually(t, func() bool {
		return len(poller.Conversations()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	// Server starts failing: views drop to empty rather than erroring out.
	failing.Store(true)
	assert.Eventually(t, func() bool {
		return len(poller.Conversations()) == 0 && len(poller.Notifications()) == 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, poller.UnreadCount())

	// The next successful tick restores the view; no manual retry needed.
	failing.Store(false)
	assert.Eventually(t, func() bool {
		return len(poller.Conversations()) == 1 && len(poller.Notifications()) == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestPollerStopHaltsTicks(t *testing.T) {
	server := testServer(t, nil)
	poller := newTestPoller(server.URL)

	poller.Start()
	assert.Eventually(t, func() bool {
		return len(poller.Conversations()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	poller.Stop()
	// Stop twice must not panic
	poller.Stop()
}

func TestPollerSendMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/messages", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var req map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice@x.com__bob@x.com", req["conversationId"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Message{
			ID:             "m1",
			ConversationID: "alice@x.com__bob@x.com",
			Text:           "hi",
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	poller := newTestPoller(server.URL)
	saved, err := poller.SendMessage("alice@x.com__bob@x.com", []string{"alice@x.com", "bob@x.com"}, "hi", nil)
	assert.NoError(t, err)
	assert.Equal(t, "m1", saved.ID)
}

func TestPollerMarkNotificationRead(t *testing.T) {
	var marked atomic.Bool
	mux := http.NewServeMux()
	mux.HandleFunc("/notifications/n1/read", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		marked.Store(true)
		json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	poller := newTestPoller(server.URL)
	assert.NoError(t, poller.MarkNotificationRead("n1"))
	assert.True(t, marked.Load())
}
