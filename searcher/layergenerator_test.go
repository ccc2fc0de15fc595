package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fourline/game"
)

func TestLayerGeneration(t *testing.T) {
	table := NewStateTable()
	root, _ := table.GetBoardState(game.Board{}, game.PlayerOne)
	generator := NewLayerGenerator(table, root)

	require.Equal(t, 1, generator.BufferSize())

	created, ok := generator.Next()
	require.True(t, ok)
	require.Equal(t, game.Columns, created)
	require.Equal(t, game.Columns, generator.BufferSize())

	// the first layer holds seven handles but only four distinct nodes, so
	// draining it creates four nodes' worth of edges
	total := 0
	for i := 0; i < game.Columns; i++ {
		created, ok := generator.Next()
		require.True(t, ok)
		total += created
	}
	require.Equal(t, 4*game.Columns, total)
	require.Equal(t, 4*game.Columns, generator.BufferSize())
}

func TestLayerGenerationStaysTwoLayersDeep(t *testing.T) {
	table := NewStateTable()
	root, _ := table.GetBoardState(game.Board{}, game.PlayerOne)
	generator := NewLayerGenerator(table, root)

	for i := 0; i < 2000; i++ {
		_, ok := generator.Next()
		require.True(t, ok)

		depthOf := func(states []*BoardState) int {
			depth := -1
			for _, state := range states {
				if depth == -1 {
					depth = state.Depth()
				}
				require.Equal(t, depth, state.Depth())
			}
			return depth
		}

		previous := depthOf(*generator.previousGeneration())
		newer := depthOf(*generator.newGeneration())
		if previous != -1 && newer != -1 {
			require.Equal(t, previous+1, newer)
		}
	}
}

func TestGeneratorExhaustsSmallTree(t *testing.T) {
	// one empty cell left: a single child ends the game
	board := boardFromRows(t, [game.Rows][game.Columns]uint8{
		{2, 2, 2, 1, 0, 2, 2},
		{1, 1, 1, 2, 1, 1, 1},
		{2, 2, 1, 1, 1, 2, 1},
		{1, 1, 2, 2, 1, 1, 2},
		{2, 2, 1, 1, 2, 2, 1},
		{2, 2, 1, 1, 2, 1, 2},
	})

	table := NewStateTable()
	root, _ := table.GetBoardState(board, game.PlayerTwo)
	generator := NewLayerGenerator(table, root)

	created, ok := generator.Next()
	require.True(t, ok)
	require.Equal(t, 1, created)

	// the only child is terminal, so servicing it creates nothing
	created, ok = generator.Next()
	require.True(t, ok)
	require.Zero(t, created)

	_, ok = generator.Next()
	require.False(t, ok)
	require.Zero(t, generator.BufferSize())
}

func TestRestartRebuildsFrontierAfterNarrowing(t *testing.T) {
	table := NewStateTable()
	root, _ := table.GetBoardState(game.Board{}, game.PlayerOne)
	generator := NewLayerGenerator(table, root)

	for i := 0; i < 50; i++ {
		_, ok := generator.Next()
		require.True(t, ok)
	}
	sizeBefore := table.Len()

	newRoot, ok := root.NarrowTo(3)
	require.True(t, ok)
	generator.Restart(newRoot)

	require.Less(t, table.Len(), sizeBefore)
	require.NotZero(t, generator.BufferSize())

	for _, state := range append(*generator.previousGeneration(), *generator.newGeneration()...) {
		require.Empty(t, state.Children())
		require.Equal(t, game.InProgress, state.Outcome())
	}

	// growth resumes from the rebuilt frontier
	created, ok := generator.Next()
	require.True(t, ok)
	require.NotZero(t, created)
}
