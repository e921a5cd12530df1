// Package geo converts grid coordinates and paths into orb geometry so a
// mover can consume a found path as GeoJSON.
//
// A Projection maps cell (x, y) to the planar point
// Origin + (x·CellSize, y·CellSize). y stays upward, matching the grid.
package geo

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/katalvlaran/gridpath/grid"
)

// Sentinel errors for conversion.
var (
	// ErrEmptyPath is returned when a path has no coordinates.
	ErrEmptyPath = errors.New("geo: path is empty")

	// ErrBadCellSize is returned for a non-positive cell size.
	ErrBadCellSize = errors.New("geo: cell size must be positive")
)

// Projection places grid cells in a planar frame.
type Projection struct {
	Origin   orb.Point
	CellSize float64
}

// DefaultProjection maps (x, y) to the point (x, y).
func DefaultProjection() Projection {
	return Projection{CellSize: 1}
}

// Point projects c.
func (p Projection) Point(c grid.Coord) orb.Point {
	return orb.Point{
		p.Origin.X() + float64(c.X)*p.CellSize,
		p.Origin.Y() + float64(c.Y)*p.CellSize,
	}
}

// LineString projects path in order.
// Returns ErrEmptyPath or ErrBadCellSize.
func (p Projection) LineString(path []grid.Coord) (orb.LineString, error) {
	if p.CellSize <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrBadCellSize, p.CellSize)
	}
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}
	ls := make(orb.LineString, len(path))
	for i, c := range path {
		ls[i] = p.Point(c)
	}
	return ls, nil
}

// PathFeature wraps path as a GeoJSON LineString feature. A single-cell path
// is emitted as a Point, since a LineString needs two positions.
// props are copied into the feature properties alongside "length", the
// number of coordinates.
func (p Projection) PathFeature(path []grid.Coord, props map[string]any) (*geojson.Feature, error) {
	ls, err := p.LineString(path)
	if err != nil {
		return nil, err
	}

	var f *geojson.Feature
	if len(ls) == 1 {
		f = geojson.NewFeature(ls[0])
	} else {
		f = geojson.NewFeature(ls)
	}
	for k, v := range props {
		f.Properties[k] = v
	}
	f.Properties["length"] = len(path)
	return f, nil
}

// BlockedFeature returns the blocked cells of g as a MultiPoint feature,
// letting a map view draw walls next to the path.
func (p Projection) BlockedFeature(g *grid.Grid) *geojson.Feature {
	blocked := g.Blocked()
	mp := make(orb.MultiPoint, len(blocked))
	for i, c := range blocked {
		mp[i] = p.Point(c)
	}
	f := geojson.NewFeature(mp)
	f.Properties["kind"] = "blocked"
	return f
}

// Collection bundles the path and the walls of g into one collection.
func (p Projection) Collection(g *grid.Grid, path []grid.Coord, props map[string]any) (*geojson.FeatureCollection, error) {
	pf, err := p.PathFeature(path, props)
	if err != nil {
		return nil, err
	}
	fc := geojson.NewFeatureCollection()
	fc.Append(pf)
	fc.Append(p.BlockedFeature(g))
	return fc, nil
}
