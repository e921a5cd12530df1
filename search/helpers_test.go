package search_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/search"
)

// mustParse builds a grid from an ASCII map.
func mustParse(t testing.TB, m string) *grid.Grid {
	t.Helper()
	g, err := grid.Parse(strings.NewReader(m))
	require.NoError(t, err)
	return g
}

// drain steps e until it is terminal and returns every event produced.
func drain(t testing.TB, e search.Engine) []search.Event {
	t.Helper()
	var all []search.Event
	for i := 0; !e.State().Terminal(); i++ {
		require.Less(t, i, 1_000_000, "engine did not terminate")
		all = append(all, e.Step()...)
	}
	return all
}

// solve runs strategy on g and returns the events plus the path (nil unless found).
func solve(t testing.TB, strategy search.Strategy, g *grid.Grid, opts ...search.Option) ([]search.Event, []grid.Coord) {
	t.Helper()
	e, err := search.New(strategy, g, opts...)
	require.NoError(t, err)
	events := drain(t, e)
	if e.State() != search.StateSucceeded {
		return events, nil
	}
	end, _ := e.Goal()
	path, err := search.BuildPath(e.Parents(), end)
	require.NoError(t, err)
	return events, path
}

// kinds counts events by kind.
func kinds(events []search.Event) map[search.Kind]int {
	out := make(map[search.Kind]int)
	for _, e := range events {
		out[e.Kind]++
	}
	return out
}

// randomGrid builds a w×h grid with roughly density of its cells blocked
// and random start/end cells.
func randomGrid(r *rand.Rand, w, h int, density float64) *grid.Grid {
	g, _ := grid.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if r.Float64() < density {
				_ = g.ToggleBlocked(grid.Coord{X: x, Y: y})
			}
		}
	}
	_ = g.SetStart(grid.Coord{X: r.Intn(w), Y: r.Intn(h)})
	_ = g.SetEnd(grid.Coord{X: r.Intn(w), Y: r.Intn(h)})
	return g
}

// hopDistances is an independent BFS over g from src returning edge counts.
func hopDistances(g *grid.Grid, src grid.Coord) map[grid.Coord]int {
	dist := map[grid.Coord]int{src: 0}
	queue := []grid.Coord{src}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for v := range g.Neighbors4(u) {
			if _, ok := dist[v]; !ok {
				dist[v] = dist[u] + 1
				queue = append(queue, v)
			}
		}
	}
	return dist
}

// requireValidPath checks that path walks 4-connected walkable cells from
// the grid's start to its end.
func requireValidPath(t testing.TB, g *grid.Grid, path []grid.Coord) {
	t.Helper()
	require.NotEmpty(t, path)
	start, _ := g.Start()
	end, _ := g.End()
	require.Equal(t, start, path[0])
	require.Equal(t, end, path[len(path)-1])
	for i, c := range path {
		require.True(t, g.Walkable(c), "path cell %s blocked", c)
		if i == 0 {
			continue
		}
		step := search.Manhattan(path[i-1], c)
		require.Equal(t, 1.0, step, "non-adjacent step %s→%s", path[i-1], c)
	}
}
