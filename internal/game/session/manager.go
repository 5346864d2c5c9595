package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cory-johannsen/wordgrid/internal/game/grid"
	"github.com/cory-johannsen/wordgrid/internal/game/word"
)

// ErrNotFound is returned when no session has the requested ID.
var ErrNotFound = errors.New("session not found")

// Manager tracks all active sessions.
// All methods are safe for concurrent use.
type Manager struct {
	mu        sync.RWMutex
	sessions  map[string]*Session // id → session
	params    grid.Params
	validator *word.Validator
	now       func() time.Time
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithClock overrides the clock used to seed games started without a seed.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates an empty Manager whose sessions use params and validator.
//
// Precondition: params must be valid; validator must be non-nil.
// Postcondition: Returns a Manager with no sessions.
func NewManager(params grid.Params, validator *word.Validator, opts ...ManagerOption) *Manager {
	m := &Manager{
		sessions:  make(map[string]*Session),
		params:    params,
		validator: validator,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create starts a new session seeded from seedInput under a fresh UUID. An
// empty seedInput uses the current time.
//
// Postcondition: Returns the registered session, or an error if the board
// could not be generated.
func (m *Manager) Create(seedInput string) (*Session, error) {
	sess, err := newSession(uuid.NewString(), seedInput, m.params, m.validator, m.now)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID()] = sess
	return sess, nil
}

// Get returns the session for id.
//
// Postcondition: Returns (session, true) if found, or (nil, false) otherwise.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	return sess, ok
}

// Remove forgets the session for id.
//
// Postcondition: Returns an error wrapping ErrNotFound if id is unknown.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	delete(m.sessions, id)
	return nil
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Params returns the generation parameters used for new sessions.
func (m *Manager) Params() grid.Params {
	return m.params
}
