package render

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

func TestRenderer_Ascii(t *testing.T) {
	t.Run("New game shows cell numbers", func(t *testing.T) {
		// Given: a plain text renderer and a new game
		renderer := New(termenv.Ascii)
		snapshot := entity.NewSnapshot(entity.NewGameState())

		// When: rendering
		var buf bytes.Buffer
		require.NoError(t, renderer.Render(&buf, snapshot))

		// Then: the board lists every playable cell
		expected := "Next player: X\n\n" +
			" 1 | 2 | 3\n" +
			"---+---+---\n" +
			" 4 | 5 | 6\n" +
			"---+---+---\n" +
			" 7 | 8 | 9\n" +
			"\n" +
			"X moves: 0   Turn: X   O moves: 0\n"
		assert.Equal(t, expected, buf.String())
	})

	t.Run("Finished game hides empty cells", func(t *testing.T) {
		// Given: X has won on the top row
		renderer := New(termenv.Ascii)
		snapshot := entity.NewSnapshot(entity.GameState{
			Board: entity.Board{entity.X, entity.X, entity.X, entity.O, entity.O},
			Turn:  entity.O,
		})

		// When: rendering
		out := renderer.String(snapshot)

		// Then: the winner and counts are shown and no cell numbers remain
		assert.Contains(t, out, "Winner: X\n")
		assert.Contains(t, out, " X | X | X\n")
		assert.Contains(t, out, "X moves: 3   Turn: O   O moves: 2\n")
		assert.NotContains(t, out, "6")
	})

	t.Run("Draw", func(t *testing.T) {
		renderer := New(termenv.Ascii)
		snapshot := entity.NewSnapshot(entity.GameState{
			Board: entity.Board{entity.X, entity.O, entity.X, entity.X, entity.O, entity.O, entity.O, entity.X, entity.X},
			Turn:  entity.O,
		})

		assert.Contains(t, renderer.String(snapshot), "It's a draw\n")
	})
}

func TestRenderer_Colour(t *testing.T) {
	// Given: a 256 colour renderer and a won game
	renderer := New(termenv.ANSI256)
	snapshot := entity.NewSnapshot(entity.GameState{
		Board: entity.Board{entity.X, entity.X, entity.X, entity.O, entity.O},
		Turn:  entity.O,
	})

	// When: rendering
	out := renderer.String(snapshot)

	// Then: the winning cells use the winning colour
	winning := termenv.String("X").Foreground(termenv.ANSI256.Color(colorWinning)).Bold().String()
	assert.Contains(t, out, winning)
	assert.Contains(t, out, termenv.CSI)
}

func TestForOutput(t *testing.T) {
	// A buffer is not a terminal.
	renderer := ForOutput(&bytes.Buffer{})

	assert.NotContains(t, renderer.String(entity.NewSnapshot(entity.NewGameState())), termenv.CSI)
}
