package search

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/gridpath/grid"
)

// BuildPath reconstructs the start→end path by following parent links from
// end back to grid.NoParent.
// Returns ErrNoParentChain if end has no parent entry, a link is missing,
// or the links form a cycle.
// Complexity: O(L) for a path of L coordinates.
func BuildPath(parent map[grid.Coord]grid.Coord, end grid.Coord) ([]grid.Coord, error) {
	if _, ok := parent[end]; !ok {
		return nil, fmt.Errorf("%w: %s was never reached", ErrNoParentChain, end)
	}

	// build reversed path
	path := []grid.Coord{}
	for cur := end; cur != grid.NoParent; {
		if len(path) >= len(parent) {
			return nil, fmt.Errorf("%w: cycle through %s", ErrNoParentChain, cur)
		}
		path = append(path, cur)
		prev, ok := parent[cur]
		if !ok {
			return nil, fmt.Errorf("%w: missing parent of %s", ErrNoParentChain, cur)
		}
		cur = prev
	}
	// reverse to get start → end
	slices.Reverse(path)

	return path, nil
}
