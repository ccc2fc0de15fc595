package searcher

import (
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"fourline/game"
)

// LayerGenerator grows the game tree breadth-first, one node expansion per
// call. It keeps exactly two generations of frontier nodes, the layer being
// drained and the layer being filled, so growth can stop at any point and
// resume later without rescanning the whole tree.
type LayerGenerator struct {
	generation1      []*BoardState
	generation2      []*BoardState
	generation1IsNew bool
	table            *StateTable
}

// NewLayerGenerator builds a generator whose frontier is derived from the
// nodes reachable from root.
func NewLayerGenerator(table *StateTable, root *BoardState) *LayerGenerator {
	g := &LayerGenerator{table: table}
	g.Restart(root)
	return g
}

// Table is the transposition table backing this generator.
func (g *LayerGenerator) Table() *StateTable {
	return g.table
}

// BufferSize is the number of frontier nodes currently queued.
func (g *LayerGenerator) BufferSize() int {
	return len(g.generation1) + len(g.generation2)
}

func (g *LayerGenerator) newGeneration() *[]*BoardState {
	if g.generation1IsNew {
		return &g.generation1
	}
	return &g.generation2
}

func (g *LayerGenerator) previousGeneration() *[]*BoardState {
	if g.generation1IsNew {
		return &g.generation2
	}
	return &g.generation1
}

// Next expands a single frontier node and queues its children in the newer
// generation. It reports how many child edges the expansion created, and
// false once every reachable node has been expanded. Nodes queued more than
// once through transpositions expand on first service and count zero after.
func (g *LayerGenerator) Next() (int, bool) {
	for {
		previous := g.previousGeneration()
		if n := len(*previous); n > 0 {
			state := (*previous)[n-1]
			*previous = (*previous)[:n-1]
			children := state.GenerateChildren(g.table)
			newGen := g.newGeneration()
			*newGen = append(*newGen, children...)
			return len(children), true
		}
		if len(*g.newGeneration()) == 0 {
			return 0, false
		}
		g.generation1IsNew = !g.generation1IsNew
	}
}

// Restart rebuilds the frontier for a new root: the buffered nodes are
// dropped, the table is cleaned of everything unreachable from root, and
// the remaining unexpanded nodes are rebucketed. The clean must happen
// before the rescan so stale branches never re-enter the frontier.
func (g *LayerGenerator) Restart(root *BoardState) {
	start := time.Now()
	g.generation1 = nil
	g.generation2 = nil
	g.table.Clean(root)
	cleaned := time.Since(start)

	g.generation1, g.generation2 = g.bottomTwoLayers()
	g.generation1IsNew = false

	log.Debug().
		Dur("clean", cleaned).
		Dur("total", time.Since(start)).
		Int("frontier", g.BufferSize()).
		Int("tableSize", g.table.Len()).
		Msg("layer generator restarted")
}

// bottomTwoLayers buckets every unexpanded, undecided node in the table by
// depth and returns the two shallowest buckets as (previous, new).
func (g *LayerGenerator) bottomTwoLayers() ([]*BoardState, []*BoardState) {
	buckets := make(map[int][]*BoardState)
	for _, state := range g.table.entries {
		if len(state.children) > 0 || state.outcome != game.InProgress {
			continue
		}
		buckets[state.Depth()] = append(buckets[state.Depth()], state)
	}

	depths := make([]int, 0, len(buckets))
	for depth := range buckets {
		depths = append(depths, depth)
	}
	sort.Ints(depths)

	switch len(depths) {
	case 0:
		return nil, nil
	case 1:
		return buckets[depths[0]], nil
	default:
		return buckets[depths[0]], buckets[depths[1]]
	}
}
