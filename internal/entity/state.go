package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
)

const (
	PhaseInProgress Phase = "in_progress"
	PhaseWon        Phase = "won"
	PhaseDraw       Phase = "draw"
)

// Phase is the state of a single game: in progress, won or drawn.
type Phase string

// GameState is the board plus the mark that moves next.
type GameState struct {
	Board Board `json:"board"`
	Turn  Mark  `json:"turn"`
}

func NewGameState() GameState {
	return GameState{Turn: X}
}

// Validate checks that the state is reachable by alternating moves from the initial state:
// only X, O and Empty on the board, X at most one mark ahead and Turn matching the counts.
func (that GameState) Validate() error {
	for cell, mark := range that.Board {
		if mark != Empty && mark != X && mark != O {
			return fmt.Errorf("%w: cell %d holds %q", apperror.ErrInvalidState, cell, mark)
		}
	}

	xMoves, oMoves := that.Board.Count(X), that.Board.Count(O)

	var expected Mark
	switch xMoves - oMoves {
	case 0:
		expected = X
	case 1:
		expected = O
	default:
		return fmt.Errorf("%w: %d X marks against %d O marks", apperror.ErrInvalidState, xMoves, oMoves)
	}

	if that.Turn != expected {
		return fmt.Errorf("%w: turn %q, expected %q", apperror.ErrInvalidState, that.Turn, expected)
	}

	return nil
}

func (that GameState) Outcome() Outcome {
	return Evaluate(that.Board)
}

func (that GameState) IsDraw() bool {
	return !that.Outcome().IsWon() && that.Board.Full()
}

func (that GameState) Phase() Phase {
	switch {
	case that.Outcome().IsWon():
		return PhaseWon
	case that.Board.Full():
		return PhaseDraw
	default:
		return PhaseInProgress
	}
}

// Snapshot is an immutable view of a game handed to presentation layers.
type Snapshot struct {
	Board       Board   `json:"board"`
	Turn        Mark    `json:"turn"`
	Outcome     Outcome `json:"outcome"`
	Phase       Phase   `json:"phase"`
	Draw        bool    `json:"draw"`
	XMoves      int     `json:"x_moves"`
	OMoves      int     `json:"o_moves"`
	MovesPlayed int     `json:"moves_played"`
	Playable    []int   `json:"playable"`
}

func NewSnapshot(state GameState) Snapshot {
	outcome := state.Outcome()
	phase := state.Phase()

	playable := make([]int, 0, BoardSize)
	if phase == PhaseInProgress {
		for cell := range state.Board {
			if !state.Board.IsOccupied(cell) {
				playable = append(playable, cell)
			}
		}
	}

	return Snapshot{
		Board:       state.Board,
		Turn:        state.Turn,
		Outcome:     outcome,
		Phase:       phase,
		Draw:        phase == PhaseDraw,
		XMoves:      state.Board.Count(X),
		OMoves:      state.Board.Count(O),
		MovesPlayed: state.Board.MovesPlayed(),
		Playable:    playable,
	}
}

// StatusText is the one-line status shown above the board.
func (that Snapshot) StatusText() string {
	switch that.Phase {
	case PhaseWon:
		return fmt.Sprintf("Winner: %s", that.Outcome.Winner)
	case PhaseDraw:
		return "It's a draw"
	default:
		return fmt.Sprintf("Next player: %s", that.Turn)
	}
}

// IsWinningCell reports whether the cell belongs to the winning line, if any.
func (that Snapshot) IsWinningCell(cell int) bool {
	return that.Outcome.Line != nil && that.Outcome.Line.Contains(cell)
}
