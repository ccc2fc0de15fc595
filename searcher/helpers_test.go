package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fourline/game"
)

// boardFromRows builds a board from a top-down visual layout, the way the
// board is drawn on screen. Row 0 of the argument is the top row.
func boardFromRows(t *testing.T, rows [game.Rows][game.Columns]uint8) game.Board {
	t.Helper()
	var grid [game.Rows][game.Columns]uint8
	for i := range rows {
		grid[game.Rows-1-i] = rows[i]
	}
	b, err := game.FromGrid(grid)
	require.NoError(t, err)
	return b
}

// expandFully drains the generator until every reachable node is expanded.
func expandFully(t *testing.T, g *LayerGenerator, limit int) {
	t.Helper()
	for i := 0; i < limit; i++ {
		if _, ok := g.Next(); !ok {
			return
		}
	}
	t.Fatalf("tree not exhausted after %d expansions", limit)
}
