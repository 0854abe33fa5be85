package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

const (
	colorX       = "39"  // sky
	colorO       = "204" // rose
	colorWinning = "42"  // emerald
	colorDraw    = "214" // amber
	colorMuted   = "245"
)

// Renderer draws snapshots as text, coloured for the given terminal profile.
type Renderer struct {
	profile termenv.Profile
}

func New(profile termenv.Profile) *Renderer {
	return &Renderer{profile: profile}
}

// ForOutput picks the colour profile supported by w.
func ForOutput(w io.Writer) *Renderer {
	return New(termenv.NewOutput(w).Profile)
}

// Render writes the status line, the board and the move counters.
func (that *Renderer) Render(w io.Writer, snapshot entity.Snapshot) error {
	_, err := io.WriteString(w, that.String(snapshot))
	return err
}

func (that *Renderer) String(snapshot entity.Snapshot) string {
	var sb strings.Builder

	sb.WriteString(that.status(snapshot))
	sb.WriteString("\n\n")

	for row := 0; row < 3; row++ {
		cells := make([]string, 0, 3)
		for col := 0; col < 3; col++ {
			cells = append(cells, that.cell(snapshot, row*3+col))
		}
		sb.WriteString(" " + strings.Join(cells, " | ") + "\n")
		if row < 2 {
			sb.WriteString("---+---+---\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("X moves: %s   Turn: %s   O moves: %s\n",
		that.paintMark(entity.X, fmt.Sprint(snapshot.XMoves)),
		that.paintMark(snapshot.Turn, string(snapshot.Turn)),
		that.paintMark(entity.O, fmt.Sprint(snapshot.OMoves)),
	))

	return sb.String()
}

func (that *Renderer) status(snapshot entity.Snapshot) string {
	text := snapshot.StatusText()

	switch snapshot.Phase {
	case entity.PhaseWon:
		return that.paint(colorWinning, text, true)
	case entity.PhaseDraw:
		return that.paint(colorDraw, text, true)
	default:
		return that.paint("", text, true)
	}
}

// cell shows the mark, or the 1-based cell number while it is still playable.
func (that *Renderer) cell(snapshot entity.Snapshot, index int) string {
	mark := snapshot.Board[index]

	if mark == entity.Empty {
		if snapshot.Phase != entity.PhaseInProgress {
			return " "
		}
		return that.paint(colorMuted, fmt.Sprint(index+1), false)
	}

	if snapshot.IsWinningCell(index) {
		return that.paint(colorWinning, string(mark), true)
	}

	return that.paintMark(mark, string(mark))
}

func (that *Renderer) paintMark(mark entity.Mark, text string) string {
	switch mark {
	case entity.X:
		return that.paint(colorX, text, true)
	case entity.O:
		return that.paint(colorO, text, true)
	default:
		return text
	}
}

func (that *Renderer) paint(color, text string, bold bool) string {
	if that.profile == termenv.Ascii {
		return text
	}

	style := termenv.String(text)
	if color != "" {
		style = style.Foreground(that.profile.Color(color))
	}
	if bold {
		style = style.Bold()
	}

	return style.String()
}
