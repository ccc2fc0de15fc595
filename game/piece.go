// Package game implements the connect-four board, win detection and the
// positional heuristic shared by every search strategy.
package game

// Piece identifies one of the two colors on the board.
type Piece uint8

const (
	// PlayerOne moves first.
	PlayerOne Piece = iota
	PlayerTwo
)

func (p Piece) Opponent() Piece {
	if p == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

func (p Piece) String() string {
	if p == PlayerOne {
		return "one"
	}
	return "two"
}

// Cell is the content of a single board position.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellOne
	CellTwo
)

func (p Piece) Cell() Cell {
	if p == PlayerOne {
		return CellOne
	}
	return CellTwo
}

// Outcome is the resolution of a position.
type Outcome uint8

const (
	InProgress Outcome = iota
	Tie
	OneWins
	TwoWins
)

func (o Outcome) String() string {
	switch o {
	case Tie:
		return "tie"
	case OneWins:
		return "player one wins"
	case TwoWins:
		return "player two wins"
	default:
		return "in progress"
	}
}
