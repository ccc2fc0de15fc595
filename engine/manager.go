// Package engine exposes the game-facing command surface: it owns the root
// of the decision tree for one game and coordinates growth, search and move
// application on it.
package engine

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"fourline/game"
	"fourline/searcher"
)

// rolloutBatch is how many full rollout passes ExploreFor runs between
// checks of its time budget.
const rolloutBatch = 128

// Errors surfaced to callers. Conditions the engine absorbs internally,
// such as dropping into a full column during expansion, never escape.
var (
	ErrGameOver    = errors.New("game is already over")
	ErrInvalidMove = errors.New("column is not a legal move")
)

// GameManager drives a single game. It is not safe for concurrent use; run
// it inside a Worker when the host needs to talk to it from other
// goroutines.
type GameManager struct {
	root      *searcher.BoardState
	table     *searcher.StateTable
	generator *searcher.LayerGenerator
	rng       *rand.Rand
}

// NewGame starts a manager on an empty board with PlayerOne to move.
func NewGame() *GameManager {
	table := searcher.NewStateTable()
	root, _ := table.GetBoardState(game.Board{}, game.PlayerOne)
	return newManager(root, table)
}

// StartFromPosition starts a manager from an arbitrary legal position. The
// grid is row-major with row 0 the bottom of the board, cells 0 empty,
// 1 PlayerOne and 2 PlayerTwo.
func StartFromPosition(grid [game.Rows][game.Columns]uint8, turn game.Piece) (*GameManager, error) {
	board, err := game.FromGrid(grid)
	if err != nil {
		return nil, errors.Wrap(err, "loading position")
	}
	table := searcher.NewStateTable()
	root, _ := table.GetBoardState(board, turn)
	return newManager(root, table), nil
}

func newManager(root *searcher.BoardState, table *searcher.StateTable) *GameManager {
	return &GameManager{
		root:      root,
		table:     table,
		generator: searcher.NewLayerGenerator(table, root),
		rng:       rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

// GetPosition returns the current board in the grid format accepted by
// StartFromPosition.
func (m *GameManager) GetPosition() [game.Rows][game.Columns]uint8 {
	return m.root.Board.ToGrid()
}

// Turn is the player to move.
func (m *GameManager) Turn() game.Piece {
	return m.root.Turn()
}

// TryGenerateStates grows the decision tree by up to n node expansions and
// returns how many child states were created. Zero means every position
// reachable from the current root is already expanded.
func (m *GameManager) TryGenerateStates(n int) int {
	generated := 0
	for generated < n {
		created, ok := m.generator.Next()
		if !ok {
			break
		}
		generated += created
	}
	return generated
}

// ExploreFor runs batched Monte-Carlo rollouts from the root until the
// budget elapses.
func (m *GameManager) ExploreFor(budget time.Duration) {
	start := time.Now()
	m.root.GenerateChildren(m.table)
	for time.Since(start) < budget {
		for i := 0; i < rolloutBatch; i++ {
			m.root.GenerateRollouts(m.table, m.rng)
		}
	}
	log.Debug().
		Dur("budget", budget).
		Dur("took", time.Since(start)).
		Msg("explored rollouts")
}

// MakeMove drops the current player's piece down a column, narrows the
// tree to the chosen branch, and reclaims everything no longer reachable.
func (m *GameManager) MakeMove(col int) error {
	start := time.Now()
	if m.root.Outcome() != game.InProgress {
		return errors.Wrapf(ErrGameOver, "column %d", col)
	}

	if len(m.root.Children()) == 0 {
		m.root.GenerateChildren(m.table)
		if len(m.root.Children()) == 0 {
			return errors.Wrapf(ErrInvalidMove, "no legal moves from the root, column %d", col)
		}
	}

	newRoot, ok := m.root.NarrowTo(col)
	if !ok {
		return errors.Wrapf(ErrInvalidMove, "column %d", col)
	}
	m.root = newRoot
	// cleans the table of the discarded branches before rescanning it
	m.generator.Restart(m.root)

	log.Debug().
		Int("column", col).
		Dur("took", time.Since(start)).
		Msg("move made")
	return nil
}

// MoveScores evaluates every expanded move with alpha-beta over the
// generated tree. Higher scores are always better for the player to move;
// the sentinel extremes mean a proven win or loss.
func (m *GameManager) MoveScores() map[int]int64 {
	start := time.Now()
	scores := m.root.MoveScores()
	log.Debug().
		Dur("took", time.Since(start)).
		Msg("scored moves")
	return scores
}

// RolloutScores returns the Monte-Carlo win rate per expanded move for the
// player to move. Moves never visited by a rollout are omitted.
func (m *GameManager) RolloutScores() map[int]float64 {
	return m.root.RolloutScores()
}

// IsGameOver reports whether the game has finished and who won.
func (m *GameManager) IsGameOver() game.Outcome {
	return m.root.Outcome()
}

// Size reports the depth, node count and approximate memory footprint of
// the current tree.
func (m *GameManager) Size() TreeSize {
	start := time.Now()
	size := calculateSize(m.root)
	log.Debug().
		Dur("took", time.Since(start)).
		Msg("sized tree")
	return size
}
