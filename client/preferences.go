package client

import "sync"

// Preferences is the sticky UI state the browser kept in local storage,
// most importantly the last-viewed recipient. It is a convenience only:
// conversation identity always comes from models.DeriveConversationID,
// never from what is remembered here.
type Preferences interface {
	LastRecipient() string
	SetLastRecipient(identifier string)
}

// MemoryPreferences is the in-process Preferences implementation.
type MemoryPreferences struct {
	mu            sync.RWMutex
	lastRecipient string
}

func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{}
}

func (p *MemoryPreferences) LastRecipient() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastRecipient
}

func (p *MemoryPreferences) SetLastRecipient(identifier string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastRecipient = identifier
}
