package viewer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultIdleTimeout is how long an untouched session survives before
// the sweeper closes it.
const DefaultIdleTimeout = 30 * time.Minute

// Manager owns the live view sessions, keyed by session ID.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session

	gw       *Gateway
	cfg      SessionConfig
	idle     time.Duration
	log      zerolog.Logger
}

// NewManager returns a Manager creating sessions against the given
// gateway with the given per-session config.
func NewManager(gw *Gateway, cfg SessionConfig, idle time.Duration, log zerolog.Logger) *Manager {
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
		gw:       gw,
		cfg:      cfg,
		idle:     idle,
		log:      log,
	}
}

// Open creates and activates a new view session.
func (m *Manager) Open(ctx context.Context) *Session {
	s := NewSession(m.gw, m.cfg, m.log)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	s.Activate(ctx)
	return s
}

// Get looks a session up by ID.
func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// CloseSession closes and removes one session. Closing an unknown ID is
// a no-op.
func (m *Manager) CloseSession(id uuid.UUID) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		s.Close()
	}
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep closes sessions untouched for longer than the idle timeout and
// returns how many were closed.
func (m *Manager) Sweep() int {
	cutoff := time.Now().Add(-m.idle)

	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if s.IdleSince().Before(cutoff) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	if len(expired) > 0 {
		m.log.Info().Int("count", len(expired)).Msg("swept idle view sessions")
	}
	return len(expired)
}

// Start runs the idle sweeper until the context is cancelled.
func (m *Manager) Start(ctx context.Context) {
	ticker := time.NewTicker(m.idle / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}
