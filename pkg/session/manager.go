package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/picogrid/cosim-input/pkg/metrics"
	"github.com/picogrid/cosim-input/pkg/models"
)

// Manager tracks the open sessions of a multi-user frontend
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	log      zerolog.Logger
	metrics  *metrics.Metrics
}

// NewManager creates an empty session manager. m may be nil.
func NewManager(log zerolog.Logger, m *metrics.Metrics) *Manager {
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
		log:      log,
		metrics:  m,
	}
}

// Open starts a new session
func (m *Manager) Open() *Session {
	s := New(m.log)

	m.mu.Lock()
	m.sessions[s.ID()] = s
	n := len(m.sessions)
	m.mu.Unlock()

	m.observe(n)
	m.log.Debug().Str("session", s.ID().String()).Msg("session opened")
	return s
}

// Get returns the session with the given id
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, models.ErrNotFound)
	}
	return s, nil
}

// Close ends a session and drops its state
func (m *Manager) Close(id uuid.UUID) error {
	m.mu.Lock()
	if _, ok := m.sessions[id]; !ok {
		m.mu.Unlock()
		return fmt.Errorf("session %s: %w", id, models.ErrNotFound)
	}
	delete(m.sessions, id)
	n := len(m.sessions)
	m.mu.Unlock()

	m.observe(n)
	m.log.Debug().Str("session", id.String()).Msg("session closed")
	return nil
}

// CloseAll ends every session
func (m *Manager) CloseAll() {
	m.mu.Lock()
	m.sessions = make(map[uuid.UUID]*Session)
	m.mu.Unlock()
	m.observe(0)
}

// Len returns the number of open sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) observe(n int) {
	if m.metrics != nil {
		m.metrics.ActiveSessions.Set(float64(n))
	}
}
