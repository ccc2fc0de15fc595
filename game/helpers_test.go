package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// boardFromRows builds a board from a top-down visual layout, written the
// way the board is drawn on screen. Row 0 of the argument is the top row.
func boardFromRows(t *testing.T, rows [Rows][Columns]uint8) Board {
	t.Helper()
	var grid [Rows][Columns]uint8
	for i := range rows {
		grid[Rows-1-i] = rows[i]
	}
	b, err := FromGrid(grid)
	require.NoError(t, err)
	return b
}

// cells converts 0/1/2 literals to a strip for expected values.
func cells(values ...uint8) []Cell {
	strip := make([]Cell, len(values))
	for i, v := range values {
		strip[i] = Cell(v)
	}
	return strip
}
