package searcher

import "fourline/game"

// idealColumnOrder expands center columns first: central moves tend to be
// strongest, which makes alpha-beta cutoffs fire early.
var idealColumnOrder = [game.Columns]int{3, 4, 2, 5, 1, 6, 0}

// ChildState is an edge from a node to the position one move later. When
// flipped is set the child node stores the mirror image of the position
// actually reached, and its own edges are mirrored too.
type ChildState struct {
	state    *BoardState
	lastMove int
	flipped  Orientation
}

// State is the node the edge points to.
func (c ChildState) State() *BoardState {
	return c.state
}

// LastMove is the column dropped to reach this child.
func (c ChildState) LastMove() int {
	return c.lastMove
}

// parentFlipped rewrites the edge after its parent board was unflipped in
// place. Only the root of the tree may be unflipped, so this never needs to
// cascade further down.
func (c *ChildState) parentFlipped() {
	c.lastMove = game.Columns - 1 - c.lastMove
	c.flipped = c.flipped.Flip()
}

// BoardState is one node of the game tree: a position, the player to move,
// the resolved outcome, the edges to successor positions and accumulated
// rollout statistics.
type BoardState struct {
	Board    game.Board
	children []ChildState
	rollouts RolloutResults
	turn     game.Piece
	outcome  game.Outcome
}

func NewBoardState(board game.Board, turn game.Piece) *BoardState {
	return &BoardState{
		Board:   board,
		turn:    turn,
		outcome: game.IsGameOver(&board, turn),
	}
}

// Turn is the player to move at this position.
func (s *BoardState) Turn() game.Piece {
	return s.turn
}

func (s *BoardState) Outcome() game.Outcome {
	return s.outcome
}

func (s *BoardState) Children() []ChildState {
	return s.children
}

// Depth is the number of moves played to reach this position.
func (s *BoardState) Depth() int {
	return s.Board.PieceCount()
}

// GenerateChildren creates the edges to every legal successor position,
// routing each through the table so transpositions and mirror images share
// nodes. Terminal nodes never expand, and expanding twice is a no-op: the
// returned slice holds the successor nodes only when this call created the
// edges, so callers can count fresh work.
func (s *BoardState) GenerateChildren(table *StateTable) []*BoardState {
	if s.outcome != game.InProgress || len(s.children) > 0 {
		return nil
	}

	for _, col := range idealColumnOrder {
		board := s.Board
		if err := board.DropPiece(col, s.turn); err != nil {
			continue
		}
		child, orientation := table.GetBoardState(board, s.turn.Opponent())
		s.children = append(s.children, ChildState{state: child, lastMove: col, flipped: orientation})
	}

	states := make([]*BoardState, len(s.children))
	for i := range s.children {
		states[i] = s.children[i].state
	}
	return states
}

// NarrowTo commits to the move down the given column and returns that
// child as the new root, discarding its siblings. A child stored mirrored
// is unflipped in place, and its edges corrected, so the new root always
// reads as the position actually on the table.
func (s *BoardState) NarrowTo(col int) (*BoardState, bool) {
	for i := range s.children {
		child := &s.children[i]
		if child.lastMove != col {
			continue
		}
		if child.flipped == Flipped {
			child.state.Board.Flip()
			for j := range child.state.children {
				child.state.children[j].parentFlipped()
			}
		}
		return child.state, true
	}
	return nil, false
}
