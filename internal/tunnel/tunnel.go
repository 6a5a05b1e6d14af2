// Package tunnel builds variable-width tunnel ribbons between two room sites.
package tunnel

import (
	"math"

	"github.com/DeclanHarty/CaveGeneration/internal/curve"
	"github.com/DeclanHarty/CaveGeneration/internal/geom"
	"github.com/DeclanHarty/CaveGeneration/internal/random"
)

// firstTangentT replaces t=0 when sampling the first tangent.
const firstTangentT = 0.0001

// Params controls the shape of generated tunnels.
type Params struct {
	// ResolutionPerUnit is the number of jittered knots per unit of baseline length.
	ResolutionPerUnit float64 `json:"resolution_per_unit" yaml:"resolution_per_unit"`
	// SplineUpscale multiplies ResolutionPerUnit when resampling the curve.
	SplineUpscale float64 `json:"spline_upscale" yaml:"spline_upscale"`
	// RandomDistributionRadius is the largest lateral knot displacement.
	RandomDistributionRadius float64 `json:"random_distribution_radius" yaml:"random_distribution_radius"`
	// MinThickness and MaxThickness bound the per-sample half width.
	MinThickness float64 `json:"min_thickness" yaml:"min_thickness"`
	MaxThickness float64 `json:"max_thickness" yaml:"max_thickness"`
}

// Generator builds tunnels with fixed parameters.
type Generator struct {
	params Params
}

// NewGenerator returns a generator for params.
func NewGenerator(params Params) *Generator {
	return &Generator{params: params}
}

// Params returns the generator's parameters.
func (g *Generator) Params() Params {
	return g.params
}

// Displacement draws one lateral knot offset in
// [-RandomDistributionRadius, RandomDistributionRadius].
func (g *Generator) Displacement(rng random.Source) float64 {
	r := g.params.RandomDistributionRadius
	return rng.Uniform(-r, r)
}

// Baseline returns the knots of the tunnel centerline: the exact endpoints
// with round(ResolutionPerUnit*|PQ|) evenly spaced interior points between
// them, each pushed sideways by Displacement.
func (g *Generator) Baseline(edge geom.Edge, rng random.Source) []geom.Point {
	n := int(math.RoundToEven(g.params.ResolutionPerUnit * edge.Len()))
	if n < 0 {
		n = 0
	}
	normal := edge.Vector().Normalize().Perp()

	knots := make([]geom.Point, 0, n+2)
	knots = append(knots, edge.P)
	for i := 1; i <= n; i++ {
		center := edge.P.Lerp(edge.Q, float64(i)/float64(n+1))
		knots = append(knots, center.Add(normal.Scale(g.Displacement(rng))))
	}
	knots = append(knots, edge.Q)
	return knots
}

// Centerline fits a smooth curve through a fresh baseline for edge.
func (g *Generator) Centerline(edge geom.Edge, rng random.Source) (*curve.CatmullRom, error) {
	return curve.FromKnots(g.Baseline(edge, rng))
}

// sampleCount is the number of resampling intervals along c.
func (g *Generator) sampleCount(c curve.Curve) int {
	m := int(math.RoundToEven(g.params.ResolutionPerUnit * g.params.SplineUpscale * c.Length()))
	return max(m, 1)
}

// Generate builds the tunnel for edge as a strip of quads, one per
// resampling interval. Quads are independent polygons; rasterize each one.
func (g *Generator) Generate(edge geom.Edge, rng random.Source) ([]geom.Polygon, error) {
	c, err := g.Centerline(edge, rng)
	if err != nil {
		return nil, err
	}
	return g.Extrude(c, rng), nil
}

// Extrude resamples c and offsets each sample to both sides by its own
// random thickness.
func (g *Generator) Extrude(c curve.Curve, rng random.Source) []geom.Polygon {
	m := g.sampleCount(c)

	left := make([]geom.Point, m+1)
	right := make([]geom.Point, m+1)
	for i := 0; i <= m; i++ {
		t := float64(i) / float64(m)
		tangentT := t
		if i == 0 {
			tangentT = firstTangentT
		}
		p := c.Position(t)
		normal := c.Tangent(tangentT).Normalize().Perp()
		thickness := rng.Uniform(g.params.MinThickness, g.params.MaxThickness)

		left[i] = p.Add(normal.Scale(thickness))
		right[i] = p.Sub(normal.Scale(thickness))
	}

	quads := make([]geom.Polygon, m)
	for i := 0; i < m; i++ {
		quads[i] = geom.Polygon{
			{P: left[i], Q: left[i+1], Tag: 0},
			{P: left[i+1], Q: right[i+1], Tag: 1},
			{P: right[i+1], Q: right[i], Tag: 2},
			{P: right[i], Q: left[i], Tag: 3},
		}
	}
	return quads
}

// Polyline returns the centerline resampled as consecutive edges.
func (g *Generator) Polyline(c curve.Curve) []geom.Edge {
	points := curve.Sample(c, g.sampleCount(c))
	edges := make([]geom.Edge, len(points)-1)
	for i := range edges {
		edges[i] = geom.Edge{P: points[i], Q: points[i+1], Tag: i}
	}
	return edges
}
