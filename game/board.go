package game

import (
	"errors"
	"fmt"
	"strings"
)

// Board dimensions and the length of a winning run.
const (
	Rows      = 6
	Columns   = 7
	WinLength = 4
)

var (
	// ErrOutOfBounds reports a read above a column's current height.
	ErrOutOfBounds = errors.New("no piece at that position")
	// ErrFullColumn reports a drop into a column that already holds Rows pieces.
	ErrFullColumn = errors.New("column is full")
)

// Board is a connect-four position packed into two bytes per column: the
// number of pieces in the column and a bitmap of their colors, bit r set
// when the piece at row r belongs to PlayerTwo. Bits at or above a column's
// height are always zero, so Board is comparable with == and identical
// positions have identical encodings. Row 0 is the bottom of the board.
//
// The zero value is an empty board.
type Board struct {
	heights [Columns]uint8
	bitmaps [Columns]uint8
}

// GetPiece reads the piece at (col, row). It returns ErrOutOfBounds when the
// cell is above the column's height.
func (b *Board) GetPiece(col, row int) (Piece, error) {
	if row < 0 || row >= int(b.heights[col]) {
		return PlayerOne, ErrOutOfBounds
	}
	if b.bitmaps[col]&(1<<uint(row)) != 0 {
		return PlayerTwo, nil
	}
	return PlayerOne, nil
}

// DropPiece adds a piece of the given color on top of a column.
func (b *Board) DropPiece(col int, p Piece) error {
	h := b.heights[col]
	if h >= Rows {
		return ErrFullColumn
	}
	if p == PlayerTwo {
		b.bitmaps[col] |= 1 << h
	}
	b.heights[col]++
	return nil
}

// Height is the number of pieces in a column.
func (b *Board) Height(col int) int {
	return int(b.heights[col])
}

// MaxHeight is the height of the tallest column.
func (b *Board) MaxHeight() int {
	maxHeight := 0
	for _, h := range b.heights {
		maxHeight = max(maxHeight, int(h))
	}
	return maxHeight
}

// PieceCount is the total number of pieces on the board, which is also the
// number of moves played to reach it.
func (b *Board) PieceCount() int {
	count := 0
	for _, h := range b.heights {
		count += int(h)
	}
	return count
}

// IsFull reports whether no further move is possible.
func (b *Board) IsFull() bool {
	for _, h := range b.heights {
		if int(h) < Rows {
			return false
		}
	}
	return true
}

// Flip mirrors the board horizontally in place.
func (b *Board) Flip() {
	for i, j := 0, Columns-1; i < j; i, j = i+1, j-1 {
		b.heights[i], b.heights[j] = b.heights[j], b.heights[i]
		b.bitmaps[i], b.bitmaps[j] = b.bitmaps[j], b.bitmaps[i]
	}
}

// CanonicalBytes is a deterministic encoding of the board used as a hash key.
func (b *Board) CanonicalBytes() []byte {
	buf := make([]byte, 0, 2*Columns)
	buf = append(buf, b.heights[:]...)
	buf = append(buf, b.bitmaps[:]...)
	return buf
}

// MirroredBytes is the canonical encoding of the horizontally flipped board.
func (b *Board) MirroredBytes() []byte {
	buf := make([]byte, 0, 2*Columns)
	for i := Columns - 1; i >= 0; i-- {
		buf = append(buf, b.heights[i])
	}
	for i := Columns - 1; i >= 0; i-- {
		buf = append(buf, b.bitmaps[i])
	}
	return buf
}

// FromGrid builds a board from the transfer format: row-major with row 0 at
// the bottom, cells 0 empty, 1 PlayerOne, 2 PlayerTwo. The position is
// assumed legal, in particular free of floating pieces.
func FromGrid(grid [Rows][Columns]uint8) (Board, error) {
	var b Board
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			switch grid[row][col] {
			case 0:
			case 1:
				if err := b.DropPiece(col, PlayerOne); err != nil {
					return Board{}, err
				}
			case 2:
				if err := b.DropPiece(col, PlayerTwo); err != nil {
					return Board{}, err
				}
			default:
				return Board{}, fmt.Errorf("cell (%d,%d) has invalid value %d", row, col, grid[row][col])
			}
		}
	}
	return b, nil
}

// ToGrid renders the board in the transfer format of FromGrid.
func (b *Board) ToGrid() [Rows][Columns]uint8 {
	var grid [Rows][Columns]uint8
	for col := 0; col < Columns; col++ {
		for row := 0; row < int(b.heights[col]); row++ {
			piece, _ := b.GetPiece(col, row)
			grid[row][col] = uint8(piece.Cell())
		}
	}
	return grid
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := Rows - 1; row >= 0; row-- {
		for col := 0; col < Columns; col++ {
			switch b.cellAt(col, row) {
			case CellOne:
				sb.WriteString("x ")
			case CellTwo:
				sb.WriteString("o ")
			default:
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
