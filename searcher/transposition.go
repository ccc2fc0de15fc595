// Package searcher builds and searches the game tree: a transposition table
// that folds mirrored positions together, lazily expanded tree nodes, a
// breadth-first layer generator, alpha-beta scoring and Monte-Carlo rollouts.
package searcher

import (
	"fmt"
	"hash/fnv"

	"fourline/game"
)

// Orientation records whether a table lookup matched a board directly or
// through its mirror image.
type Orientation uint8

const (
	Normal Orientation = iota
	Flipped
)

func (o Orientation) Flip() Orientation {
	if o == Normal {
		return Flipped
	}
	return Normal
}

// Table maps boards to values, treating horizontally mirrored boards as the
// same key. Values are stored under the board's natural encoding; lookups
// try the natural encoding first and fall back to the mirrored one.
type Table[T any] struct {
	entries map[uint64]T
}

func NewTable[T any]() *Table[T] {
	return &Table[T]{entries: make(map[uint64]T)}
}

func hashBytes(bs []byte) uint64 {
	h := fnv.New64a()
	h.Write(bs)
	return h.Sum64()
}

// Lookup finds the value for a board under either orientation.
func (t *Table[T]) Lookup(b *game.Board) (T, Orientation, bool) {
	if v, ok := t.entries[hashBytes(b.CanonicalBytes())]; ok {
		return v, Normal, true
	}
	if v, ok := t.entries[hashBytes(b.MirroredBytes())]; ok {
		return v, Flipped, true
	}
	var zero T
	return zero, Normal, false
}

// Insert stores a value keyed by the board's natural encoding.
func (t *Table[T]) Insert(b *game.Board, v T) {
	t.entries[hashBytes(b.CanonicalBytes())] = v
}

// Len is the number of stored entries.
func (t *Table[T]) Len() int {
	return len(t.entries)
}

// StateTable deduplicates tree nodes: at most one node exists per position
// distinct up to mirroring, so transpositions and mirror images share their
// whole subtree.
type StateTable struct {
	Table[*BoardState]
}

func NewStateTable() *StateTable {
	return &StateTable{Table[*BoardState]{entries: make(map[uint64]*BoardState)}}
}

// GetBoardState returns the node for a board, creating it on first sight.
// The orientation tells the caller whether the node stores the mirror image
// of the requested board.
func (t *StateTable) GetBoardState(board game.Board, turn game.Piece) (*BoardState, Orientation) {
	if state, orientation, ok := t.Lookup(&board); ok {
		if state.turn != turn {
			panic(fmt.Sprintf("board reached with turn %v but stored with turn %v:\n%v",
				turn, state.turn, &board))
		}
		return state, orientation
	}
	state := NewBoardState(board, turn)
	t.Insert(&state.Board, state)
	return state, Normal
}

// Clean drops every entry whose node is not reachable from root by child
// edges. It runs after a move narrows the tree to a new root, reclaiming
// the discarded branches.
func (t *StateTable) Clean(root *BoardState) {
	live := make(map[*BoardState]struct{}, len(t.entries))
	if root != nil {
		markReachable(root, live)
	}
	for key, state := range t.entries {
		if _, ok := live[state]; !ok {
			delete(t.entries, key)
		}
	}
}

func markReachable(state *BoardState, live map[*BoardState]struct{}) {
	if _, ok := live[state]; ok {
		return
	}
	live[state] = struct{}{}
	for i := range state.children {
		markReachable(state.children[i].state, live)
	}
}
