package grid

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ASCII map characters understood by Parse and produced by String.
const (
	CharWalkable = '.'
	CharBlocked  = '#'
	CharStart    = 'S'
	CharEnd      = 'E'
)

// Parse reads an ASCII map. The first non-empty line is the top row
// (highest y). Trailing whitespace on a line is ignored.
// Returns ErrEmptyGrid, ErrNonRectangular, ErrBadCell, or ErrDuplicateRole.
// Complexity: O(W×H).
func Parse(r io.Reader) (*Grid, error) {
	var rows []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("grid: reading map: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyGrid
	}

	h, w := len(rows), len(rows[0])
	for _, row := range rows {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	g, err := New(w, h)
	if err != nil {
		return nil, err
	}

	var start, end []Coord
	for line, row := range rows {
		y := h - 1 - line
		for x, ch := range []byte(row) {
			c := Coord{X: x, Y: y}
			switch ch {
			case CharWalkable:
			case CharBlocked:
				_ = g.ToggleBlocked(c)
			case CharStart:
				start = append(start, c)
			case CharEnd:
				end = append(end, c)
			default:
				return nil, fmt.Errorf("%w: %q at %s", ErrBadCell, ch, c)
			}
		}
	}
	if len(start) > 1 || len(end) > 1 {
		return nil, fmt.Errorf("%w: %d starts, %d ends", ErrDuplicateRole, len(start), len(end))
	}
	if len(start) == 1 {
		_ = g.SetStart(start[0])
	}
	if len(end) == 1 {
		_ = g.SetEnd(end[0])
	}

	return g, nil
}

// String renders the grid as an ASCII map, top row first.
func (g *Grid) String() string {
	return g.Render(nil)
}

// Render renders the grid like String, drawing mark over every
// walkable, role-less coordinate in overlay.
func (g *Grid) Render(overlay map[Coord]byte) string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var b strings.Builder
	b.Grow((g.width + 1) * g.height)
	for y := g.height - 1; y >= 0; y-- {
		for x := 0; x < g.width; x++ {
			cell := g.cells[g.index(Coord{X: x, Y: y})]
			b.WriteByte(cellChar(cell, overlay))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func cellChar(c Cell, overlay map[Coord]byte) byte {
	switch {
	case c.Role == RoleStart:
		return CharStart
	case c.Role == RoleEnd:
		return CharEnd
	case !c.Walkable:
		return CharBlocked
	}
	if mark, ok := overlay[c.Coord]; ok {
		return mark
	}
	return CharWalkable
}
