package grid

// Regions finds all 4-connected regions of walkable cells.
// Returns a slice of regions; each region lists its coordinates in the
// order they were reached by a flood fill seeded at the region's
// lowest row-major cell. Regions appear in row-major order of their seed.
//
// Time:   O(W·H).
// Memory: O(W·H) for visited flags and output.
func (g *Grid) Regions() [][]Coord {
	g.mu.RLock()
	defer g.mu.RUnlock()
	labels, count := g.label()
	regions := make([][]Coord, count)
	for _, idx := range labels.order {
		x, y := g.coordinate(idx)
		regions[labels.of[idx]] = append(regions[labels.of[idx]], Coord{X: x, Y: y})
	}
	return regions
}

// Connected reports whether a walkable path exists between a and b.
// Blocked or out-of-bounds endpoints are never connected.
func (g *Grid) Connected(a, b Coord) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.walkable(a) || !g.walkable(b) {
		return false
	}
	labels, _ := g.label()
	return labels.of[g.index(a)] == labels.of[g.index(b)]
}

// labelling holds region ids per cell index (-1 for blocked) and the
// flood-fill visit order across all regions.
type labelling struct {
	of    []int
	order []int
}

// label flood-fills every walkable region and returns the labelling
// together with the number of regions found. The caller holds g.mu.
func (g *Grid) label() (labelling, int) {
	total := g.width * g.height
	lab := labelling{of: make([]int, total), order: make([]int, 0, total)}
	for i := range lab.of {
		lab.of[i] = -1
	}

	count := 0
	for i0 := 0; i0 < total; i0++ {
		if !g.cells[i0].Walkable || lab.of[i0] >= 0 {
			continue
		}
		// BFS to collect region
		queue := []int{i0}
		lab.of[i0] = count
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			lab.order = append(lab.order, u)
			ux, uy := g.coordinate(u)
			for _, d := range neighborOffsets {
				v := Coord{X: ux + d.X, Y: uy + d.Y}
				if !g.inBounds(v) {
					continue
				}
				vi := g.index(v)
				if g.cells[vi].Walkable && lab.of[vi] < 0 {
					lab.of[vi] = count
					queue = append(queue, vi)
				}
			}
		}
		count++
	}

	return lab, count
}
