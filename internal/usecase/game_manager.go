package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, sessionID string, state *entity.GameState) error
	GetBySessionID(ctx context.Context, sessionID string) (*entity.GameState, error)
	DeleteBySessionID(ctx context.Context, sessionID string) error
}

type publisher interface {
	Publish(sessionID string, snapshot entity.Snapshot)
}

// GameManager runs one game per session on top of a Store, serializing work per session.
type GameManager struct {
	logger    *slog.Logger
	gameRepo  gameRepo
	publisher publisher

	locks *sessionLocks
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, publisher publisher) *GameManager {
	return &GameManager{
		logger:    logger.With("component", "game_manager"),
		gameRepo:  gameRepo,
		publisher: publisher,

		locks: newSessionLocks(),
	}
}

// State returns the session's game, or a fresh one when nothing is stored.
func (that *GameManager) State(ctx context.Context, sessionID string) (entity.Snapshot, error) {
	if err := validateSessionID(sessionID); err != nil {
		return entity.Snapshot{}, err
	}

	unlock := that.locks.lock(sessionID)
	defer unlock()

	store, err := that.loadStore(ctx, sessionID)
	if err != nil {
		return entity.Snapshot{}, err
	}

	return store.Snapshot(), nil
}

// Play applies a move for the session. Moves on occupied cells or finished games are
// not errors: the unchanged snapshot is returned with applied == false.
func (that *GameManager) Play(ctx context.Context, sessionID string, cell int) (entity.Snapshot, bool, error) {
	log := that.logger.With("method", "Play", "session", sessionID, "cell", cell)

	if err := validateSessionID(sessionID); err != nil {
		return entity.Snapshot{}, false, err
	}

	if cell < 0 || cell >= entity.BoardSize {
		return entity.Snapshot{}, false, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	unlock := that.locks.lock(sessionID)
	defer unlock()

	store, err := that.loadStore(ctx, sessionID)
	if err != nil {
		return entity.Snapshot{}, false, err
	}

	var changed []entity.Snapshot
	unsubscribe := store.Subscribe(func(snapshot entity.Snapshot) {
		changed = append(changed, snapshot)
	})
	defer unsubscribe()

	if !store.Play(cell) {
		log.Debug("move ignored", "phase", store.Snapshot().Phase)
		return store.Snapshot(), false, nil
	}

	state := store.State()
	if err = that.gameRepo.CreateOrUpdate(ctx, sessionID, &state); err != nil {
		log.Error("failed to save game", "error", err)
		return entity.Snapshot{}, false, fmt.Errorf("failed to save game: %w", err)
	}

	that.publish(sessionID, changed)

	return store.Snapshot(), true, nil
}

// Reset starts the session over with an empty board and X to move.
func (that *GameManager) Reset(ctx context.Context, sessionID string) (entity.Snapshot, error) {
	log := that.logger.With("method", "Reset", "session", sessionID)

	if err := validateSessionID(sessionID); err != nil {
		return entity.Snapshot{}, err
	}

	unlock := that.locks.lock(sessionID)
	defer unlock()

	store := tictactoe.NewStore()

	var changed []entity.Snapshot
	unsubscribe := store.Subscribe(func(snapshot entity.Snapshot) {
		changed = append(changed, snapshot)
	})
	defer unsubscribe()

	store.Reset()

	// a missing session already reads as the initial state
	err := that.gameRepo.DeleteBySessionID(ctx, sessionID)
	if err != nil && !errors.Is(err, apperror.ErrSessionNotFound) {
		log.Error("failed to delete game", "error", err)
		return entity.Snapshot{}, fmt.Errorf("failed to reset game: %w", err)
	}

	that.publish(sessionID, changed)

	return store.Snapshot(), nil
}

func (that *GameManager) loadStore(ctx context.Context, sessionID string) (*tictactoe.Store, error) {
	state, err := that.gameRepo.GetBySessionID(ctx, sessionID)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		return tictactoe.NewStore(), nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	store, err := tictactoe.Restore(*state)
	if err != nil {
		that.logger.Warn("stored game is corrupt, starting over", "session", sessionID, "error", err)
		return tictactoe.NewStore(), nil
	}

	return store, nil
}

func (that *GameManager) publish(sessionID string, snapshots []entity.Snapshot) {
	if that.publisher == nil {
		return
	}

	for _, snapshot := range snapshots {
		that.publisher.Publish(sessionID, snapshot)
	}
}

func validateSessionID(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return apperror.ErrEmptySessionID
	}
	return nil
}
