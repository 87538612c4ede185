// Package session provides server-side session storage keyed by an opaque
// identifier presented in a signed cookie.
package session

import (
	"sync"
	"time"

	"github.com/bkovacev/showtrack/internal/models"
	"github.com/google/uuid"
)

// Store is the capability required by handlers and middleware. Sessions are
// owned exclusively by the store for their lifetime.
type Store interface {
	Create(principal *models.Principal) string
	Get(id string) (*models.Principal, bool)
	Destroy(id string) bool
}

type entry struct {
	principal *models.Principal
	expiry    time.Time
}

// Manager is an in-memory Store. Expired sessions are dropped lazily on read
// and swept periodically by a janitor goroutine.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	ttl      time.Duration
	secret   []byte
	stopCh   chan struct{}
}

// NewManager creates a session manager with the given signing secret and
// session time-to-live.
func NewManager(secret string, ttl time.Duration) *Manager {
	m := &Manager{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		secret:   []byte(secret),
		stopCh:   make(chan struct{}),
	}

	go m.sweepExpired()

	return m
}

// Create stores a new session for the principal and returns its identifier.
func (m *Manager) Create(principal *models.Principal) string {
	id := uuid.NewString()

	m.mu.Lock()
	m.sessions[id] = &entry{
		principal: principal,
		expiry:    time.Now().Add(m.ttl),
	}
	m.mu.Unlock()

	return id
}

// Get returns the principal for a live session id.
func (m *Manager) Get(id string) (*models.Principal, bool) {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if time.Now().After(e.expiry) {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return nil, false
	}

	return e.principal, true
}

// Destroy removes the session. It reports whether a session existed.
func (m *Manager) Destroy(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// Stop terminates the janitor goroutine.
func (m *Manager) Stop() {
	close(m.stopCh)
}

func (m *Manager) sweepExpired() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			m.mu.Lock()
			for id, e := range m.sessions {
				if now.After(e.expiry) {
					delete(m.sessions, id)
				}
			}
			m.mu.Unlock()
		case <-m.stopCh:
			return
		}
	}
}
