// Package room generates room outlines centered on the local origin.
package room

import (
	"math"

	"github.com/DeclanHarty/CaveGeneration/internal/curve"
	"github.com/DeclanHarty/CaveGeneration/internal/geom"
	"github.com/DeclanHarty/CaveGeneration/internal/random"
)

// Circular returns a closed polygon of n vertices spaced evenly by angle.
// Each vertex gets its own radius in [minRadius, maxRadius], so the outline
// is a ragged circle rather than a regular polygon.
func Circular(minRadius, maxRadius float64, n int, rng random.Source) geom.Polygon {
	step := 2 * math.Pi / float64(n)
	vertices := make([]geom.Point, n)
	for i := range vertices {
		radius := rng.Uniform(minRadius, maxRadius)
		vertices[i] = geom.Pt(radius, 0).Rotate(step * float64(i))
	}
	return geom.PolygonFromVertices(vertices)
}

// Smooth builds a Circular outline and resamples it along a closed spline at
// density vertices per unit of arc length. It never returns fewer vertices
// than the control outline had.
func Smooth(minRadius, maxRadius float64, n int, density float64, rng random.Source) (geom.Polygon, error) {
	outline := Circular(minRadius, maxRadius, n, rng)

	c, err := curve.FromLoop(outline.Vertices())
	if err != nil {
		return nil, err
	}

	count := int(math.RoundToEven(density * c.Length()))
	if count < n {
		count = n
	}

	vertices := make([]geom.Point, count)
	for i := range vertices {
		vertices[i] = c.Position(float64(i) / float64(count))
	}
	return geom.PolygonFromVertices(vertices), nil
}
