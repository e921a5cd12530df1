// Package grid models the bounded 2D board that the search engines explore.
//
// What:
//
//   - Grid owns a Width×Height rectangle of cells addressed by Coord{X, Y}.
//   - Every cell is walkable or blocked and carries a Role: none, start or end.
//   - At most one cell holds RoleStart and at most one holds RoleEnd; a cell
//     holding a role is always walkable.
//   - Neighbors4 yields the in-bounds walkable neighbors of a cell in the fixed
//     order up, down, left, right. Search engines rely on that order for
//     reproducible tie-breaking.
//   - Parse and String convert to and from an ASCII map ('.', '#', 'S', 'E').
//   - Regions and Connected label the 4-connected walkable regions.
//
// Orientation:
//
//	y grows upward, so "up" is (x, y+1). Parse and String print the row with
//	the highest y first:
//
//	    y=2  . . E
//	    y=1  . # .
//	    y=0  S . .
//
// Complexity:
//
//   - Configure, Reset, Cells, Clone: O(W×H).
//   - ToggleBlocked, SetStart, SetEnd, Cell, Walkable: O(1).
//   - Neighbors4: O(1) per yielded neighbor.
//   - Regions: O(W×H), Memory: O(W×H).
//
// Errors:
//
//   - ErrInvalidDimensions: width or height is not positive.
//   - ErrOutOfBounds: a coordinate lies outside [0,W)×[0,H).
//   - ErrEmptyGrid, ErrNonRectangular, ErrBadCell, ErrDuplicateRole: Parse input errors.
//
// Concurrency:
//
//	All methods are safe for concurrent use; reads share a sync.RWMutex.
//	Exclusive ownership during a search run is enforced one level up by
//	session.Controller, not here.
package grid
