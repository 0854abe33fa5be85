package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

type memoryEntry struct {
	state     entity.GameState
	expiresAt time.Time
}

type memoryGame struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	games map[string]memoryEntry
}

// NewMemoryGameRepository keeps sessions in process memory with the same expiry rules as Redis.
func NewMemoryGameRepository(ttl time.Duration) GameRepository {
	return &memoryGame{
		ttl:   ttl,
		now:   time.Now,
		games: make(map[string]memoryEntry),
	}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, sessionID string, state *entity.GameState) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry := memoryEntry{state: *state}
	if that.ttl > 0 {
		entry.expiresAt = that.now().Add(that.ttl)
	}

	that.games[sessionID] = entry

	return nil
}

func (that *memoryGame) GetBySessionID(_ context.Context, sessionID string) (*entity.GameState, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.lookup(sessionID)
	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	state := entry.state

	return &state, nil
}

func (that *memoryGame) DeleteBySessionID(_ context.Context, sessionID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.lookup(sessionID); !ok {
		return apperror.ErrSessionNotFound
	}

	delete(that.games, sessionID)

	return nil
}

// lookup drops the entry if it has expired. Callers hold mu.
func (that *memoryGame) lookup(sessionID string) (memoryEntry, bool) {
	entry, ok := that.games[sessionID]
	if !ok {
		return memoryEntry{}, false
	}

	if !entry.expiresAt.IsZero() && !that.now().Before(entry.expiresAt) {
		delete(that.games, sessionID)
		return memoryEntry{}, false
	}

	return entry, true
}
