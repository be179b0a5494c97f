package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"hirehub/internal/api"
	"hirehub/internal/models"
)

// The web UI never receives pushes; it re-fetches its lists on fixed timers
// and swaps the view wholesale each tick. This package reproduces that
// contract for Go callers: staleness is bounded by the polling interval and
// a failed fetch shows as an empty list until the next tick succeeds.

const (
	defaultConversationInterval = 15 * time.Second
	defaultNotificationInterval = 10 * time.Second

	// After repeated notification failures the UI stretches its timer.
	backoffNotificationInterval = 30 * time.Second
	notificationFailureLimit    = 3
)

// Config holds the connection settings for a polling client.
type Config struct {
	BaseURL string
	Token   string // bearer token identifying the caller

	ConversationInterval time.Duration
	NotificationInterval time.Duration

	// NotificationBackoff replaces NotificationInterval once fetches keep
	// failing; zero means the UI's 30s stretch.
	NotificationBackoff time.Duration

	HTTPClient *http.Client
}

// Poller periodically re-fetches the caller's conversation and notification
// lists. View state is replaced wholesale on every tick; there is no
// incremental merge.
type Poller struct {
	cfg    Config
	client *http.Client

	mu            sync.RWMutex
	conversations []*api.ConversationSummary
	notifications []*models.Notification
	notifFailures int

	stopOnce sync.Once
	stop     chan struct{}
	wg       sync.WaitGroup
}

// NewPoller creates a poller with the UI's default intervals where the
// config leaves them zero.
func NewPoller(cfg Config) *Poller {
	if cfg.ConversationInterval <= 0 {
		cfg.ConversationInterval = defaultConversationInterval
	}
	if cfg.NotificationInterval <= 0 {
		cfg.NotificationInterval = defaultNotificationInterval
	}
	if cfg.NotificationBackoff <= 0 {
		cfg.NotificationBackoff = backoffNotificationInterval
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Poller{
		cfg:    cfg,
		client: client,
		stop:   make(chan struct{}),
	}
}

// Start begins both polling loops. Each loop does an immediate first fetch
// so callers see data before the first interval elapses.
func (p *Poller) Start() {
	p.wg.Add(2)
	go p.pollConversations()
	go p.pollNotifications()
}

// Stop cancels the timers and waits for in-flight ticks to finish.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.stop)
	})
	p.wg.Wait()
}

// Conversations returns the view from the latest conversation tick.
func (p *Poller) Conversations() []*api.ConversationSummary {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.conversations
}

// Notifications returns the view from the latest notification tick.
func (p *Poller) Notifications() []*models.Notification {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.notifications
}

// UnreadCount reports how many notifications in the current view are unread.
func (p *Poller) UnreadCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	count := 0
	for _, n := range p.notifications {
		if !n.IsRead {
			count++
		}
	}
	return count
}

func (p *Poller) pollConversations() {
	defer p.wg.Done()

	p.tickConversations()
	ticker := time.NewTicker(p.cfg.ConversationInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			p.tickConversations()
		}
	}
}

func (p *Poller) tickConversations() {
	var resp api.ConversationListResponse
	err := p.getJSON("/messages/conversations/list", &resp)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		// Soft fail: an unreachable server reads as "nothing to show"
		// until the next tick recovers.
		log.Printf("Poller: conversation fetch failed: %v", err)
		p.conversations = []*api.ConversationSummary{}
		return
	}
	p.conversations = resp.Conversations
}

func (p *Poller) pollNotifications() {
	defer p.wg.Done()

	interval := p.tickNotifications()
	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-timer.C:
			timer.Reset(p.tickNotifications())
		}
	}
}

// tickNotifications fetches once and returns the wait until the next tick,
// stretched when the server keeps failing.
func (p *Poller) tickNotifications() time.Duration {
	var notifications []*models.Notification
	err := p.getJSON("/notifications/me", &notifications)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		log.Printf("Poller: notification fetch failed: %v", err)
		p.notifications = []*models.Notification{}
		p.notifFailures++
	} else {
		p.notifications = notifications
		p.notifFailures = 0
	}

	if p.notifFailures > notificationFailureLimit {
		return p.cfg.NotificationBackoff
	}
	return p.cfg.NotificationInterval
}

func (p *Poller) getJSON(path string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, p.cfg.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.cfg.Token)

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// SendMessage appends a message through the server, the same call the chat
// box makes. The poller picks the new message up on its next tick.
func (p *Poller) SendMessage(conversationID string, participants []string, text string, meta map[string]interface{}) (*models.Message, error) {
	body, err := json.Marshal(map[string]interface{}{
		"conversationId": conversationID,
		"participants":   participants,
		"text":           text,
		"meta":           meta,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, p.cfg.BaseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.cfg.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("unexpected status %d from /messages", resp.StatusCode)
	}

	var saved models.Message
	if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// MarkNotificationRead flips one notification to read.
func (p *Poller) MarkNotificationRead(id string) error {
	req, err := http.NewRequest(http.MethodPatch, p.cfg.BaseURL+"/notifications/"+id+"/read", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.cfg.Token)

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d marking notification read", resp.StatusCode)
	}
	return nil
}
