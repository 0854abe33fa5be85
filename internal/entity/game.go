package entity

const (
	Empty Mark = ""
	X     Mark = "X"
	O     Mark = "O"
)

const BoardSize = 9

// Mark is the symbol a player places in a cell.
type Mark string

// Opponent returns the mark that moves after this one.
func (that Mark) Opponent() Mark {
	if that == X {
		return O
	}
	return X
}

// Line is a triple of cell indices forming a row, column or diagonal.
type Line [3]int

// Lines are scanned in this order; the first completed line decides the winner.
var Lines = [8]Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Contains reports whether the cell is one of the line's three indices.
func (that Line) Contains(cell int) bool {
	return that[0] == cell || that[1] == cell || that[2] == cell
}

// Board holds the 9 cells in row-major order.
type Board [BoardSize]Mark

func (that Board) Count(mark Mark) int {
	count := 0
	for _, cell := range that {
		if cell == mark {
			count++
		}
	}
	return count
}

func (that Board) MovesPlayed() int {
	return BoardSize - that.Count(Empty)
}

func (that Board) Full() bool {
	return that.MovesPlayed() == BoardSize
}

func (that Board) IsOccupied(cell int) bool {
	return that[cell] != Empty
}

// Outcome is the evaluated result of a board. The zero value is NoWinner.
type Outcome struct {
	Winner Mark  `json:"winner"`
	Line   *Line `json:"line"`
}

var NoWinner = Outcome{}

func (that Outcome) IsWon() bool {
	return that.Winner != Empty
}

// Evaluate scans Lines in order and returns the first line filled by a single mark.
func Evaluate(board Board) Outcome {
	for _, line := range Lines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != Empty && a == b && b == c {
			winning := line
			return Outcome{Winner: a, Line: &winning}
		}
	}

	return NoWinner
}
