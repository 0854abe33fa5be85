package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

// Store owns a single game. It is not safe for concurrent use.
type Store struct {
	state entity.GameState

	nextID      int
	subscribers map[int]func(entity.Snapshot)
}

func NewStore() *Store {
	return newStore(entity.NewGameState())
}

// Restore returns a store holding a previously saved state.
// States that cannot come out of a sequence of legal moves are rejected.
func Restore(state entity.GameState) (*Store, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}

	return newStore(state), nil
}

func newStore(state entity.GameState) *Store {
	return &Store{
		state:       state,
		subscribers: make(map[int]func(entity.Snapshot)),
	}
}

// Play writes the current turn's mark into cell and flips the turn.
// Occupied cells, out-of-range cells and finished games are ignored; the
// returned bool reports whether the state changed.
func (that *Store) Play(cell int) bool {
	if cell < 0 || cell >= entity.BoardSize {
		return false
	}

	if that.state.Board.IsOccupied(cell) || that.Outcome().IsWon() {
		return false
	}

	that.state.Board[cell] = that.state.Turn
	that.state.Turn = that.state.Turn.Opponent()

	that.notify()

	return true
}

func (that *Store) Reset() {
	that.state = entity.NewGameState()

	that.notify()
}

func (that *Store) State() entity.GameState {
	return that.state
}

func (that *Store) Outcome() entity.Outcome {
	return entity.Evaluate(that.state.Board)
}

func (that *Store) IsDraw() bool {
	return that.state.IsDraw()
}

func (that *Store) MovesPlayed() int {
	return that.state.Board.MovesPlayed()
}

// MoveCounts returns how many cells each player has marked.
func (that *Store) MoveCounts() (int, int) {
	return that.state.Board.Count(entity.X), that.state.Board.Count(entity.O)
}

func (that *Store) Snapshot() entity.Snapshot {
	return entity.NewSnapshot(that.state)
}

// Subscribe registers fn to receive a snapshot after every state change.
// The returned func removes the subscription.
func (that *Store) Subscribe(fn func(entity.Snapshot)) func() {
	id := that.nextID
	that.nextID++
	that.subscribers[id] = fn

	return func() {
		delete(that.subscribers, id)
	}
}

func (that *Store) notify() {
	if len(that.subscribers) == 0 {
		return
	}

	// each subscriber gets its own copy of the slices and pointers in the snapshot
	for _, fn := range that.subscribers {
		fn(that.Snapshot())
	}
}
