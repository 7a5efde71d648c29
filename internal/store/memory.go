// internal/store/memory.go
//
// In-memory ownership of game sessions.
// Each session owns exactly one *game.Game; the store hands it out by ID and
// discards it when the player leaves or starts over.
//
// Characteristics:
//   - Stores *game.Game objects keyed by game ID in a map.
//   - Update runs its callback under the write lock, so moves on one store are serialized
//     and a game is never mutated by two requests at once.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/wordgrid/internal/game"
)

// ErrNotFound is returned for unknown game IDs.
var ErrNotFound = errors.New("not found")

// Store defines the ownership interface for game sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a session by ID. Callers must not mutate the game outside Update.
	Get(ctx context.Context, id string) (*game.Game, error)

	// View runs fn with read access to the session's game.
	View(ctx context.Context, id string, fn func(g *game.Game) error) error

	// Update runs fn with exclusive access to the session's game.
	Update(ctx context.Context, id string, fn func(g *game.Game) error) error

	// Delete discards a session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Len reports how many sessions are live.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex          // guards games and the games they point to
	games map[string]*game.Game // keyed by Game.ID()
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*game.Game)}
}

// Save adds or updates the game in the map.
func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID()] = g
	return nil
}

// Get looks up a game by ID.
func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, ErrNotFound
}

// View looks up a game and runs fn while holding the read lock.
func (m *memory) View(ctx context.Context, id string, fn func(g *game.Game) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return ErrNotFound
	}
	return fn(g)
}

// Update looks up a game and runs fn while holding the write lock.
func (m *memory) Update(ctx context.Context, id string, fn func(g *game.Game) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return ErrNotFound
	}
	return fn(g)
}

// Delete removes a game.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
