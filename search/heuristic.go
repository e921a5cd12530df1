package search

import "github.com/katalvlaran/gridpath/grid"

// Manhattan returns |dx| + |dy|. It is admissible and consistent for
// 4-directional unit-cost movement.
func Manhattan(a, b grid.Coord) float64 {
	return float64(abs(a.X-b.X) + abs(a.Y-b.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
