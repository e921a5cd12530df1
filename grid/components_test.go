// File: grid/components_test.go
package grid

import (
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, m string) *Grid {
	t.Helper()
	g, err := Parse(strings.NewReader(m))
	require.NoError(t, err)
	return g
}

// TestRegions_Simple labels a 4×3 map with two walkable regions.
//
//	. . # .
//	# # # .
//	. . # .
//
// Expected: sizes 2, 2 and 3.
func TestRegions_Simple(t *testing.T) {
	g := mustParse(t, `
..#.
###.
..#.
`)
	regions := g.Regions()
	require.Len(t, regions, 3)

	sizes := make([]int, len(regions))
	for i, r := range regions {
		sizes[i] = len(r)
	}
	sort.Ints(sizes)
	assert.Equal(t, []int{2, 2, 3}, sizes)

	// the first region is seeded at (0,0), the lowest row-major index
	assert.Equal(t, Coord{X: 0, Y: 0}, regions[0][0])
}

// TestRegions_AllBlocked checks that a fully blocked grid has no regions.
func TestRegions_AllBlocked(t *testing.T) {
	g := mustParse(t, "##\n##\n")
	assert.Empty(t, g.Regions())
}

// TestConnected covers reachable, separated, and blocked endpoints.
func TestConnected(t *testing.T) {
	g := mustParse(t, `
.#.
.#.
.#.
`)
	assert.True(t, g.Connected(Coord{X: 0, Y: 0}, Coord{X: 0, Y: 2}))
	assert.False(t, g.Connected(Coord{X: 0, Y: 0}, Coord{X: 2, Y: 0}))
	assert.False(t, g.Connected(Coord{X: 1, Y: 0}, Coord{X: 1, Y: 0}), "blocked cell")
	assert.False(t, g.Connected(Coord{X: -1, Y: 0}, Coord{X: 0, Y: 0}), "out of bounds")
	assert.True(t, g.Connected(Coord{X: 2, Y: 1}, Coord{X: 2, Y: 1}))
}

// TestRegions_DiagonalNotConnected verifies that touching corners do not join regions.
func TestRegions_DiagonalNotConnected(t *testing.T) {
	g := mustParse(t, `
.#
#.
`)
	assert.Len(t, g.Regions(), 2)
	assert.False(t, g.Connected(Coord{X: 0, Y: 1}, Coord{X: 1, Y: 0}))
}

// TestConnected_DuringConfigure resizes the grid while regions are labelled.
// Each call must see one consistent board.
func TestConnected_DuringConfigure(t *testing.T) {
	g, err := New(2, 2)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if i%2 == 0 {
				_ = g.Configure(40, 1)
			} else {
				_ = g.Configure(2, 2)
			}
		}
	}()
	for i := 0; i < 200; i++ {
		assert.True(t, g.Connected(Coord{X: 0, Y: 0}, Coord{X: 1, Y: 0}))
		assert.NotEmpty(t, g.Regions())
	}
	wg.Wait()
}

// TestZeroGrid checks the zero value reports no roles and no regions.
func TestZeroGrid(t *testing.T) {
	var g Grid
	_, ok := g.Start()
	assert.False(t, ok)
	_, ok = g.End()
	assert.False(t, ok)
	assert.Empty(t, g.Regions())
	assert.False(t, g.Connected(Coord{}, Coord{}))
}
