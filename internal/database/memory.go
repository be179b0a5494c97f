package database

import (
	"context"
	"strings"
	"sync"

	"hirehub/internal/models"
)

// MemoryDB is an in-memory DBAdapter used by tests and local development.
// Reads return copies in insertion order; callers that need a time ordering
// sort on the read side, exactly as they must when a store accepts
// out-of-order writes.
type MemoryDB struct {
	mu            sync.RWMutex
	messages      []*models.Message
	notifications []*models.Notification
	users         map[string]*models.User // keyed by id

	// Optional fault injection for failure-path tests.
	FailMessages      bool
	FailNotifications bool
	FailUsers         bool
}

var errMemoryFault = &faultError{}

type faultError struct{}

func (e *faultError) Error() string { return "memory store fault injected" }

func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		users: make(map[string]*models.User),
	}
}

func (m *MemoryDB) Close(ctx context.Context) error {
	return nil
}

// AddUser seeds a profile for enrichment lookups.
func (m *MemoryDB) AddUser(user *models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MemoryDB) SaveMessage(ctx context.Context, msg *models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailMessages {
		return errMemoryFault
	}
	copied := *msg
	m.messages = append(m.messages, &copied)
	return nil
}

func (m *MemoryDB) GetConversationMessages(ctx context.Context, conversationID string, limit int) ([]*models.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailMessages {
		return nil, errMemoryFault
	}
	result := []*models.Message{}
	for _, msg := range m.messages {
		if msg.ConversationID == conversationID {
			copied := *msg
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *MemoryDB) GetMessagesByParticipant(ctx context.Context, identifier string) ([]*models.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailMessages {
		return nil, errMemoryFault
	}
	result := []*models.Message{}
	for _, msg := range m.messages {
		for _, p := range msg.Participants {
			if strings.EqualFold(p, identifier) {
				copied := *msg
				result = append(result, &copied)
				break
			}
		}
	}
	return result, nil
}

func (m *MemoryDB) DeleteConversation(ctx context.Context, conversationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailMessages {
		return errMemoryFault
	}
	kept := m.messages[:0]
	for _, msg := range m.messages {
		if msg.ConversationID != conversationID {
			kept = append(kept, msg)
		}
	}
	m.messages = kept
	return nil
}

func (m *MemoryDB) CountMessages(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailMessages {
		return 0, errMemoryFault
	}
	return int64(len(m.messages)), nil
}

func (m *MemoryDB) SaveNotification(ctx context.Context, notification *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailNotifications {
		return errMemoryFault
	}
	copied := *notification
	m.notifications = append(m.notifications, &copied)
	return nil
}

func (m *MemoryDB) GetUserNotifications(ctx context.Context, userID string) ([]*models.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailNotifications {
		return nil, errMemoryFault
	}
	result := []*models.Notification{}
	for _, n := range m.notifications {
		if n.UserID == userID {
			copied := *n
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *MemoryDB) MarkNotificationRead(ctx context.Context, notificationID string, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailNotifications {
		return false, errMemoryFault
	}
	for _, n := range m.notifications {
		if n.ID == notificationID && n.UserID == userID {
			n.IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryDB) CountNotifications(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailNotifications {
		return 0, errMemoryFault
	}
	return int64(len(m.notifications)), nil
}

func (m *MemoryDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailUsers {
		return nil, errMemoryFault
	}
	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MemoryDB) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailUsers {
		return nil, errMemoryFault
	}
	if user, ok := m.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, nil
}
