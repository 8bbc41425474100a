package wizard

import (
	"sync"
)

// Manager tracks the live wizard session per user. A user has at most one
// active submission attempt; starting a new one replaces the old.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Controller
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Controller),
	}
}

func (m *Manager) Start(userID string, submitter Submitter) *Controller {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctrl := NewController(userID, submitter)
	m.sessions[userID] = ctrl
	return ctrl
}

func (m *Manager) Get(userID string) (*Controller, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ctrl, ok := m.sessions[userID]
	return ctrl, ok
}

func (m *Manager) Discard(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
