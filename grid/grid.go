// Package grid provides the cell board explored by the search engines:
// configuration, walkability toggling, start/end roles, and 4-connected
// neighbor enumeration.
package grid

import (
	"fmt"
	"iter"
)

// New constructs a Width×Height grid with every cell walkable and no roles.
// Returns ErrInvalidDimensions if either dimension is not positive.
// Complexity: O(W×H) time and memory.
func New(width, height int) (*Grid, error) {
	g := &Grid{}
	if err := g.Configure(width, height); err != nil {
		return nil, err
	}

	return g, nil
}

// Configure (re)allocates the grid to width×height default cells.
// On error the grid is left unchanged.
// Complexity: O(W×H).
func (g *Grid) Configure(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	g.width, g.height = width, height
	g.cells = make([]Cell, width*height)
	g.resetLocked()

	return nil
}

// Reset restores every cell to walkable with no role. Idempotent.
// Complexity: O(W×H).
func (g *Grid) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resetLocked()
}

func (g *Grid) resetLocked() {
	for i := range g.cells {
		x, y := g.coordinate(i)
		g.cells[i] = Cell{Coord: Coord{X: x, Y: y}, Walkable: true}
	}
	g.start, g.end = -1, -1
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.height
}

// InBounds reports whether c lies within [0,W)×[0,H).
// Complexity: O(1).
func (g *Grid) InBounds(c Coord) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.inBounds(c)
}

func (g *Grid) inBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// index maps (x,y) to a row-major index: y*Width + x.
func (g *Grid) index(c Coord) int {
	return c.Y*g.width + c.X
}

// coordinate converts a row-major index back to (x,y).
func (g *Grid) coordinate(idx int) (x, y int) {
	return idx % g.width, idx / g.width
}

// checked returns the index of c or a wrapped ErrOutOfBounds.
func (g *Grid) checked(c Coord) (int, error) {
	if !g.inBounds(c) {
		return 0, fmt.Errorf("%w: %s not in %dx%d", ErrOutOfBounds, c, g.width, g.height)
	}
	return g.index(c), nil
}

// Cell returns a copy of the cell at c.
func (g *Grid) Cell(c Coord) (Cell, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	i, err := g.checked(c)
	if err != nil {
		return Cell{}, err
	}
	return g.cells[i], nil
}

// Walkable reports whether c is in bounds and not blocked.
// Complexity: O(1).
func (g *Grid) Walkable(c Coord) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.walkable(c)
}

func (g *Grid) walkable(c Coord) bool {
	return g.inBounds(c) && g.cells[g.index(c)].Walkable
}

// Start returns the start cell, if one is assigned.
func (g *Grid) Start() (Coord, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.holder(g.start)
}

// End returns the end cell, if one is assigned.
func (g *Grid) End() (Coord, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.holder(g.end)
}

// holder resolves a role index. The zero Grid has no cells, so its
// zero-valued start and end indexes resolve to no holder.
func (g *Grid) holder(idx int) (Coord, bool) {
	if idx < 0 || idx >= len(g.cells) {
		return Coord{}, false
	}
	return g.cells[idx].Coord, true
}

// ToggleBlocked flips the walkability of c and clears any role it held.
// Returns ErrOutOfBounds for an invalid coordinate.
// Complexity: O(1).
func (g *Grid) ToggleBlocked(c Coord) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	i, err := g.checked(c)
	if err != nil {
		return err
	}
	g.clearRole(i)
	g.cells[i].Walkable = !g.cells[i].Walkable

	return nil
}

// SetStart moves the start role to c. The previous start holder loses
// its role, c becomes walkable, and an end role on c is cleared.
// Calling it twice with the same coordinate is a no-op.
func (g *Grid) SetStart(c Coord) error {
	return g.assign(c, RoleStart)
}

// SetEnd moves the end role to c, mirroring SetStart.
func (g *Grid) SetEnd(c Coord) error {
	return g.assign(c, RoleEnd)
}

func (g *Grid) assign(c Coord, role Role) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	i, err := g.checked(c)
	if err != nil {
		return err
	}

	holder := &g.start
	if role == RoleEnd {
		holder = &g.end
	}
	if *holder >= 0 && *holder != i {
		g.clearRole(*holder)
	}
	g.clearRole(i)
	g.cells[i].Walkable = true
	g.cells[i].Role = role
	*holder = i

	return nil
}

// clearRole drops the role of cell i and forgets it as a role holder.
func (g *Grid) clearRole(i int) {
	switch g.cells[i].Role {
	case RoleStart:
		g.start = -1
	case RoleEnd:
		g.end = -1
	}
	g.cells[i].Role = RoleNone
}

// Neighbors4 yields the in-bounds walkable neighbors of c in the order
// up, down, left, right. The sequence is lazy: walkability is read as
// each neighbor is produced.
func (g *Grid) Neighbors4(c Coord) iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for _, d := range neighborOffsets {
			nb := Coord{X: c.X + d.X, Y: c.Y + d.Y}
			if !g.Walkable(nb) {
				continue
			}
			if !yield(nb) {
				return
			}
		}
	}
}

// Cells returns a row-major copy of all cells.
// Complexity: O(W×H).
func (g *Grid) Cells() []Cell {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

// Blocked returns the coordinates of all blocked cells in row-major order.
func (g *Grid) Blocked() []Coord {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []Coord
	for _, c := range g.cells {
		if !c.Walkable {
			out = append(out, c.Coord)
		}
	}
	return out
}

// Clone returns an independent deep copy of the grid.
func (g *Grid) Clone() *Grid {
	g.mu.RLock()
	defer g.mu.RUnlock()
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)

	return &Grid{
		width:  g.width,
		height: g.height,
		cells:  cells,
		start:  g.start,
		end:    g.end,
	}
}
