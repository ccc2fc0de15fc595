package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fourline/game"
	"fourline/searcher"
)

// gridFromRows converts a top-down visual layout into the bottom-up grid
// format the engine speaks.
func gridFromRows(rows [game.Rows][game.Columns]uint8) [game.Rows][game.Columns]uint8 {
	var grid [game.Rows][game.Columns]uint8
	for i := range rows {
		grid[game.Rows-1-i] = rows[i]
	}
	return grid
}

// endgameGrid has only column 6 and the top of column 5 free. With player
// one to move, column 5 forces a win; with player two to move every line
// of play is a draw.
func endgameGrid() [game.Rows][game.Columns]uint8 {
	return gridFromRows([game.Rows][game.Columns]uint8{
		{1, 2, 2, 1, 1, 0, 0},
		{1, 2, 1, 2, 1, 2, 0},
		{1, 2, 1, 2, 1, 2, 0},
		{2, 1, 2, 1, 2, 1, 0},
		{2, 1, 2, 1, 2, 1, 0},
		{2, 1, 2, 1, 2, 1, 0},
	})
}

func TestBoardTranslation(t *testing.T) {
	grid := gridFromRows([game.Rows][game.Columns]uint8{
		{0, 0, 0, 0, 0, 0, 2},
		{0, 0, 0, 0, 0, 0, 2},
		{0, 0, 0, 0, 0, 0, 1},
		{0, 2, 0, 0, 0, 2, 1},
		{0, 1, 2, 0, 0, 1, 2},
		{0, 1, 2, 0, 2, 1, 2},
	})

	manager, err := StartFromPosition(grid, game.PlayerTwo)
	require.NoError(t, err)
	require.Equal(t, grid, manager.GetPosition())
	require.Equal(t, game.PlayerTwo, manager.Turn())
}

func TestStartFromPositionRejectsBadCells(t *testing.T) {
	var grid [game.Rows][game.Columns]uint8
	grid[0][0] = 9

	_, err := StartFromPosition(grid, game.PlayerOne)
	require.Error(t, err)
}

func TestDropsSuccessful(t *testing.T) {
	t.Run("player one wins the endgame", func(t *testing.T) {
		manager, err := StartFromPosition(endgameGrid(), game.PlayerOne)
		require.NoError(t, err)

		require.NoError(t, manager.MakeMove(5))
		require.ErrorIs(t, manager.MakeMove(5), ErrInvalidMove)
		require.ErrorIs(t, manager.MakeMove(4), ErrInvalidMove)
		require.ErrorIs(t, manager.MakeMove(0), ErrInvalidMove)
		for i := 0; i < 5; i++ {
			require.NoError(t, manager.MakeMove(6))
			require.Equal(t, game.InProgress, manager.IsGameOver())
		}
		require.NoError(t, manager.MakeMove(6))
		require.Equal(t, game.OneWins, manager.IsGameOver())
		require.ErrorIs(t, manager.MakeMove(6), ErrGameOver)
	})

	t.Run("player two only reaches a tie", func(t *testing.T) {
		manager, err := StartFromPosition(endgameGrid(), game.PlayerTwo)
		require.NoError(t, err)

		require.NoError(t, manager.MakeMove(5))
		require.ErrorIs(t, manager.MakeMove(5), ErrInvalidMove)
		require.ErrorIs(t, manager.MakeMove(4), ErrInvalidMove)
		require.ErrorIs(t, manager.MakeMove(0), ErrInvalidMove)
		for i := 0; i < 6; i++ {
			require.NoError(t, manager.MakeMove(6))
		}
		require.Equal(t, game.Tie, manager.IsGameOver())
		require.ErrorIs(t, manager.MakeMove(6), ErrGameOver)
	})
}

func TestInvalidMoveLeavesGameUntouched(t *testing.T) {
	manager, err := StartFromPosition(endgameGrid(), game.PlayerOne)
	require.NoError(t, err)
	manager.TryGenerateStates(100)

	position := manager.GetPosition()
	size := manager.Size()

	require.ErrorIs(t, manager.MakeMove(0), ErrInvalidMove)
	require.Equal(t, position, manager.GetPosition())
	require.Equal(t, size, manager.Size())
}

func TestCorrectPredictions(t *testing.T) {
	t.Run("endgame, player one to move", func(t *testing.T) {
		manager, err := StartFromPosition(endgameGrid(), game.PlayerOne)
		require.NoError(t, err)
		manager.TryGenerateStates(10000)

		require.Equal(t, map[int]int64{
			5: searcher.ScoreMax,
			6: 0,
		}, manager.MoveScores())
	})

	t.Run("endgame, player two to move", func(t *testing.T) {
		manager, err := StartFromPosition(endgameGrid(), game.PlayerTwo)
		require.NoError(t, err)
		manager.TryGenerateStates(10000)

		require.Equal(t, map[int]int64{
			5: 0,
			6: 0,
		}, manager.MoveScores())
	})

	threatGrid := gridFromRows([game.Rows][game.Columns]uint8{
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 2, 0, 0, 0},
		{0, 0, 0, 2, 0, 0, 0},
		{0, 0, 0, 2, 0, 0, 0},
		{0, 0, 0, 1, 0, 0, 0},
	})

	t.Run("threat, player one must block", func(t *testing.T) {
		manager, err := StartFromPosition(threatGrid, game.PlayerOne)
		require.NoError(t, err)
		manager.TryGenerateStates(10000)

		for col, score := range manager.MoveScores() {
			if col == 3 {
				require.NotEqual(t, searcher.ScoreMin, score)
			} else {
				require.Equal(t, searcher.ScoreMin, score, "column %d", col)
			}
		}
	})

	t.Run("threat, player two wins at once", func(t *testing.T) {
		manager, err := StartFromPosition(threatGrid, game.PlayerTwo)
		require.NoError(t, err)
		manager.TryGenerateStates(10000)

		for col, score := range manager.MoveScores() {
			if col == 3 {
				require.Equal(t, searcher.ScoreMax, score)
			} else {
				require.NotEqual(t, searcher.ScoreMax, score, "column %d", col)
			}
		}
	})
}

func TestExploreForScoresRollouts(t *testing.T) {
	manager, err := StartFromPosition(endgameGrid(), game.PlayerOne)
	require.NoError(t, err)

	manager.ExploreFor(50 * time.Millisecond)

	scores := manager.RolloutScores()
	require.Len(t, scores, 2)
	require.Equal(t, 1.0, scores[5])
	require.Less(t, scores[6], scores[5])
}

func TestTryGenerateStates(t *testing.T) {
	t.Run("tree growth is monotonic", func(t *testing.T) {
		manager := NewGame()

		previous := manager.Size()
		for i := 0; i < 5; i++ {
			generated := manager.TryGenerateStates(500)
			require.NotZero(t, generated)

			size := manager.Size()
			require.Greater(t, size.Nodes, previous.Nodes)
			require.GreaterOrEqual(t, size.Depth, previous.Depth)
			previous = size
		}
	})

	t.Run("exhausted trees report zero", func(t *testing.T) {
		manager, err := StartFromPosition(endgameGrid(), game.PlayerOne)
		require.NoError(t, err)

		for i := 0; i < 100; i++ {
			if manager.TryGenerateStates(1000) == 0 {
				break
			}
		}
		require.Zero(t, manager.TryGenerateStates(1000))
		require.Zero(t, manager.TryGenerateStates(1))
	})
}

func TestMakeMoveShrinksTable(t *testing.T) {
	manager := NewGame()
	manager.TryGenerateStates(5000)

	before := manager.Size()
	require.NoError(t, manager.MakeMove(3))
	after := manager.Size()

	require.Less(t, after.Nodes, before.Nodes)
	require.Equal(t, game.PlayerTwo, manager.Turn())

	// growth picks up from the narrowed root
	require.NotZero(t, manager.TryGenerateStates(1000))
}
