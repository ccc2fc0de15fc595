package engine

import (
	"unsafe"

	"fourline/searcher"
)

// TreeSize describes the materialized decision tree.
type TreeSize struct {
	// Depth is the number of layers, counting the root.
	Depth int
	// Nodes is the number of distinct positions in the tree.
	Nodes int
	// Memory approximates the bytes held by nodes and their edges.
	Memory int
}

// calculateSize walks the tree breadth-first. Nodes reachable along several
// paths through transpositions are counted once.
func calculateSize(root *searcher.BoardState) TreeSize {
	visited := map[*searcher.BoardState]struct{}{root: {}}
	layer := []*searcher.BoardState{root}

	var size TreeSize
	for len(layer) > 0 {
		size.Depth++
		var next []*searcher.BoardState
		for _, state := range layer {
			size.Nodes++
			size.Memory += int(unsafe.Sizeof(*state)) +
				len(state.Children())*int(unsafe.Sizeof(searcher.ChildState{}))
			for _, child := range state.Children() {
				childState := child.State()
				if _, ok := visited[childState]; ok {
					continue
				}
				visited[childState] = struct{}{}
				next = append(next, childState)
			}
		}
		layer = next
	}
	return size
}
