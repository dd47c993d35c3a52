// internal/store/memory.go
//
// In-memory implementation of the session Store interface.
// Live game sessions are held here; the SQLite layer only records history
// (game rows and final scores), so a restart loses in-flight games.
//
// Characteristics:
//   - Stores *game.Session objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Sessions carry their own mutex; the store lock only guards the map.

package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/mgallois/lyricparty/internal/game"
)

// Store defines the persistence interface for live game sessions.
// Implementations may be backed by memory (this package), Redis, etc.
type Store interface {
	// Save persists or updates a session.
	Save(ctx context.Context, s *game.Session) error

	// Get retrieves a session by ID.
	// Returns game.ErrNotFound if the session does not exist.
	Get(ctx context.Context, id string) (*game.Session, error)

	// List returns every stored session, in insertion order.
	List(ctx context.Context) ([]*game.Session, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session
	order    []string
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*game.Session)}
}

// Save adds or updates the session in the map.
func (m *memory) Save(ctx context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.ID()]; !ok {
		m.order = append(m.order, s.ID())
	}
	m.sessions[s.ID()] = s
	return nil
}

// Get looks up a session by ID.
func (m *memory) Get(ctx context.Context, id string) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: game %s", game.ErrNotFound, id)
}

// List returns all sessions in the order they were first saved.
func (m *memory) List(ctx context.Context) ([]*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*game.Session, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.sessions[id])
	}
	return out, nil
}
