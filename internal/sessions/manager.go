// Package sessions manages per-session route registries. Each session owns
// an independent scope whose entries mask application-scope routes without
// ever modifying them; destroying the session discards all of its entries.
package sessions

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/icyminglun/routescope/pkg/lifecycle"
	"github.com/icyminglun/routescope/pkg/registry"
)

type session struct {
	registry *registry.Registry
	lastSeen time.Time
}

// Manager creates, tracks, and destroys session-scope registries. Sessions
// idle longer than the configured TTL are destroyed by a background sweep.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session

	ttl   time.Duration
	sweep time.Duration

	logger *slog.Logger
	now    func() time.Time
}

// NewManager creates a session manager with the given idle TTL and sweep
// interval.
func NewManager(cfg *Config, logger *slog.Logger) *Manager {
	return &Manager{
		sessions: make(map[uuid.UUID]*session),
		ttl:      cfg.TTLDuration(),
		sweep:    cfg.SweepIntervalDuration(),
		logger:   logger.With("system", "sessions"),
		now:      time.Now,
	}
}

// Create allocates a new session with an empty route registry and returns
// its ID.
func (m *Manager) Create() uuid.UUID {
	id := uuid.New()

	m.mu.Lock()
	m.sessions[id] = &session{
		registry: registry.New(),
		lastSeen: m.now(),
	}
	m.mu.Unlock()

	m.logger.Info("session created", "session", id)
	return id
}

// Get returns the route registry for a session, refreshing its idle timer.
func (m *Manager) Get(id uuid.UUID) (*registry.Registry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	s.lastSeen = m.now()
	return s.registry, nil
}

// Destroy removes a session and discards all of its route entries.
// Destroying an unknown session is a no-op.
func (m *Manager) Destroy(id uuid.UUID) {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		m.logger.Info("session destroyed", "session", id)
	}
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Start launches the idle-session sweep loop, stopped on shutdown.
func (m *Manager) Start(lc *lifecycle.Coordinator) error {
	ticker := time.NewTicker(m.sweep)

	lc.OnShutdown(func() {
		defer ticker.Stop()
		for {
			select {
			case <-lc.Context().Done():
				return
			case <-ticker.C:
				m.expire()
			}
		}
	})

	return nil
}

// expire destroys sessions idle longer than the TTL.
func (m *Manager) expire() {
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	var expired []uuid.UUID
	for id, s := range m.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			expired = append(expired, id)
		}
	}
	m.mu.Unlock()

	for _, id := range expired {
		m.logger.Info("session expired", "session", id)
	}
}
