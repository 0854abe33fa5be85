package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
)

func TestNewGameState(t *testing.T) {
	// When: creating a new game state
	state := NewGameState()

	// Then: the board is empty and X moves first
	assert.Equal(t, Board{}, state.Board)
	assert.Equal(t, X, state.Turn)
	assert.Equal(t, PhaseInProgress, state.Phase())
	assert.False(t, state.IsDraw())
}

func TestGameState_Phase(t *testing.T) {
	t.Run("Won", func(t *testing.T) {
		state := GameState{Board: Board{X, X, X, O, O}, Turn: O}

		assert.Equal(t, PhaseWon, state.Phase())
		assert.False(t, state.IsDraw())
	})

	t.Run("Win on the last cell is not a draw", func(t *testing.T) {
		state := GameState{Board: Board{
			X, O, X,
			O, X, O,
			O, X, X,
		}, Turn: O}

		assert.Equal(t, PhaseWon, state.Phase())
		assert.False(t, state.IsDraw())
	})

	t.Run("Draw", func(t *testing.T) {
		state := GameState{Board: Board{
			X, O, X,
			X, O, O,
			O, X, X,
		}, Turn: O}

		assert.Equal(t, PhaseDraw, state.Phase())
		assert.True(t, state.IsDraw())
	})
}

func TestNewSnapshot(t *testing.T) {
	t.Run("In progress", func(t *testing.T) {
		// Given: X played 0, O played 4
		state := GameState{Board: Board{X, Empty, Empty, Empty, O}, Turn: X}

		// When: taking a snapshot
		snapshot := NewSnapshot(state)

		// Then: counts, playable cells and status reflect the board
		assert.Equal(t, 1, snapshot.XMoves)
		assert.Equal(t, 1, snapshot.OMoves)
		assert.Equal(t, 2, snapshot.MovesPlayed)
		assert.Equal(t, []int{1, 2, 3, 5, 6, 7, 8}, snapshot.Playable)
		assert.Equal(t, "Next player: X", snapshot.StatusText())
		assert.False(t, snapshot.IsWinningCell(0))
	})

	t.Run("Won", func(t *testing.T) {
		// Given: X completed the top row
		state := GameState{Board: Board{X, X, X, O, O}, Turn: O}

		// When: taking a snapshot
		snapshot := NewSnapshot(state)

		// Then: nothing is playable and the winning cells are flagged
		assert.Empty(t, snapshot.Playable)
		assert.Equal(t, "Winner: X", snapshot.StatusText())
		assert.True(t, snapshot.IsWinningCell(1))
		assert.False(t, snapshot.IsWinningCell(3))
	})

	t.Run("Draw", func(t *testing.T) {
		// Given: a full board with no line
		state := GameState{Board: Board{X, O, X, X, O, O, O, X, X}, Turn: O}

		// When: taking a snapshot
		snapshot := NewSnapshot(state)

		// Then: the snapshot reports a draw
		assert.True(t, snapshot.Draw)
		assert.Equal(t, PhaseDraw, snapshot.Phase)
		assert.Empty(t, snapshot.Playable)
		assert.Equal(t, "It's a draw", snapshot.StatusText())
	})
}

func TestGameState_Validate(t *testing.T) {
	t.Run("Reachable states", func(t *testing.T) {
		assert.NoError(t, NewGameState().Validate())
		assert.NoError(t, GameState{Board: Board{X}, Turn: O}.Validate())
		assert.NoError(t, GameState{Board: Board{X, X, X, O, O}, Turn: O}.Validate())
		assert.NoError(t, GameState{Board: Board{X, O, X, X, O, O, O, X, X}, Turn: O}.Validate())
	})

	t.Run("Zero value has no turn", func(t *testing.T) {
		err := GameState{}.Validate()

		require.ErrorIs(t, err, apperror.ErrInvalidState)
		assert.Contains(t, err.Error(), "turn")
	})

	t.Run("O ahead of X", func(t *testing.T) {
		err := GameState{Board: Board{O, O, X}, Turn: X}.Validate()

		require.ErrorIs(t, err, apperror.ErrInvalidState)
	})
}
