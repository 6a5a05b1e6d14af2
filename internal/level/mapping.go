package level

import (
	"math"

	"github.com/DeclanHarty/CaveGeneration/internal/geom"
	"github.com/DeclanHarty/CaveGeneration/internal/graph"
	"github.com/DeclanHarty/CaveGeneration/internal/raster"
)

// Mapping converts world coordinates to grid coordinates. The minimum corner
// of the world bounds lands on grid (0, 0) and both axes share one scale.
type Mapping struct {
	Origin geom.Point `json:"origin" yaml:"origin"`
	// Scale is grid cells per world unit.
	Scale float64 `json:"scale" yaml:"scale"`
}

// NewMapping fits the width of bounds onto gridWidth cells.
func NewMapping(bounds graph.Rect, gridWidth int) Mapping {
	return Mapping{
		Origin: bounds.Min(),
		Scale:  float64(gridWidth) / bounds.Width(),
	}
}

// WorldToGrid maps p to grid space and snaps it to the nearest integer
// position, rounding halves to even.
func (m Mapping) WorldToGrid(p geom.Point) geom.Point {
	q := p.Sub(m.Origin).Scale(m.Scale)
	return geom.Pt(math.RoundToEven(q.X), math.RoundToEven(q.Y))
}

// Cell returns the grid cell containing the snapped position of p.
func (m Mapping) Cell(p geom.Point) raster.Cell {
	q := m.WorldToGrid(p)
	return raster.Cell{X: int(q.X), Y: int(q.Y)}
}

// Length converts a world distance to grid cells.
func (m Mapping) Length(d float64) float64 {
	return d * m.Scale
}

// Polygon maps every vertex of poly to grid space.
func (m Mapping) Polygon(poly geom.Polygon) geom.Polygon {
	out := make(geom.Polygon, len(poly))
	for i, e := range poly {
		out[i] = geom.Edge{P: m.WorldToGrid(e.P), Q: m.WorldToGrid(e.Q), Tag: e.Tag}
	}
	return out
}
