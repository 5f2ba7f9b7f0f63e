package squad

import (
	"sync"

	"github.com/google/uuid"
)

// Manager is the registry of active squad-building sessions.
type Manager struct {
	mu             sync.RWMutex
	sessions       map[string]*Session
	startingBudget float64
}

func NewManager(startingBudget float64) *Manager {
	return &Manager{
		sessions:       make(map[string]*Session),
		startingBudget: startingBudget,
	}
}

// Create starts a new empty session.
func (m *Manager) Create() *Session {
	session := NewSession(uuid.NewString(), m.startingBudget)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
	return session
}

// Get looks up a session by ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Delete removes a session. Deleting an unknown ID is a no-op.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
