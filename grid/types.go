// Package grid defines core types, roles, and sentinel errors
// for the grid subpackage of github.com/katalvlaran/gridpath.
package grid

import (
	"errors"
	"fmt"
	"sync"
)

// Sentinel errors for grid operations.
var (
	// ErrInvalidDimensions indicates a non-positive width or height.
	ErrInvalidDimensions = errors.New("grid: width and height must be positive")
	// ErrOutOfBounds indicates a coordinate outside the grid.
	ErrOutOfBounds = errors.New("grid: coordinate out of bounds")
	// ErrEmptyGrid indicates an ASCII map with no rows or no columns.
	ErrEmptyGrid = errors.New("grid: input map must have at least one row and one column")
	// ErrNonRectangular indicates ASCII rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all rows must have the same length")
	// ErrBadCell indicates an unknown character in an ASCII map.
	ErrBadCell = errors.New("grid: unknown cell character")
	// ErrDuplicateRole indicates more than one start or end cell in an ASCII map.
	ErrDuplicateRole = errors.New("grid: role assigned to more than one cell")
)

// Coord is a cell position. X grows to the right, Y grows upward.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NoParent is the sentinel parent recorded for the start cell of a search.
var NoParent = Coord{X: -1, Y: -1}

// String renders the coordinate as "(x,y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Role marks a cell as the search start or end.
type Role int

const (
	// RoleNone is the default role of every cell.
	RoleNone Role = iota
	// RoleStart marks the search origin.
	RoleStart
	// RoleEnd marks the search goal.
	RoleEnd
)

// String returns a lowercase role name.
func (r Role) String() string {
	switch r {
	case RoleStart:
		return "start"
	case RoleEnd:
		return "end"
	default:
		return "none"
	}
}

// Cell is a snapshot of one grid position.
type Cell struct {
	Coord    Coord `json:"coord"`
	Walkable bool  `json:"walkable"`
	Role     Role  `json:"role"`
}

// Grid is a mutable Width×Height board of cells stored row-major
// (index = y*Width + x). start and end hold the index of the current
// role holder, or -1 when the role is unassigned. The zero Grid is an empty
// board with no roles; Configure sizes it.
type Grid struct {
	mu     sync.RWMutex
	width  int
	height int
	cells  []Cell
	start  int
	end    int
}

// neighborOffsets lists the 4-connected moves in the fixed order
// up, down, left, right. Search tie-breaking depends on this order.
var neighborOffsets = [4]Coord{
	{X: 0, Y: 1},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
}
