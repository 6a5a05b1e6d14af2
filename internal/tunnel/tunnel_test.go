package tunnel

import (
	"math"
	"testing"

	"github.com/DeclanHarty/CaveGeneration/internal/geom"
	"github.com/DeclanHarty/CaveGeneration/internal/random"
)

func defaultParams() Params {
	return Params{
		ResolutionPerUnit:        0.5,
		SplineUpscale:            2,
		RandomDistributionRadius: 1.5,
		MinThickness:             1,
		MaxThickness:             2,
	}
}

func TestDisplacementBounded(t *testing.T) {
	for _, r := range []float64{0, 0.25, 1, 3.5} {
		p := defaultParams()
		p.RandomDistributionRadius = r
		g := NewGenerator(p)
		rng := random.New(42)

		for i := 0; i < 1000; i++ {
			if d := g.Displacement(rng); math.Abs(d) > r {
				t.Fatalf("Displacement %v exceeds radius %v", d, r)
			}
		}
	}
}

func TestBaselineEndpointsExact(t *testing.T) {
	g := NewGenerator(defaultParams())
	edge := geom.Edge{P: geom.Pt(0, 0), Q: geom.Pt(20, 0)}

	knots := g.Baseline(edge, random.New(1))

	// round(0.5 * 20) interior points plus both endpoints.
	if len(knots) != 12 {
		t.Fatalf("Expected 12 knots, got %d", len(knots))
	}
	if knots[0] != edge.P || knots[len(knots)-1] != edge.Q {
		t.Errorf("Endpoints moved: %v .. %v", knots[0], knots[len(knots)-1])
	}
	for i, k := range knots[1 : len(knots)-1] {
		wantX := 20 * float64(i+1) / 11
		if math.Abs(k.X-wantX) > 1e-9 {
			t.Errorf("Knot %d x = %v, want %v (jitter must be perpendicular)", i+1, k.X, wantX)
		}
		if math.Abs(k.Y) > 1.5 {
			t.Errorf("Knot %d displaced %v beyond radius", i+1, k.Y)
		}
	}
}

func TestGenerateQuads(t *testing.T) {
	g := NewGenerator(defaultParams())
	edge := geom.Edge{P: geom.Pt(-5, 3), Q: geom.Pt(15, 8)}

	quads, err := g.Generate(edge, random.New(7))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(quads) == 0 {
		t.Fatal("Expected at least one quad")
	}

	for i, q := range quads {
		if len(q) != 4 {
			t.Fatalf("Quad %d has %d edges", i, len(q))
		}
		if !q.IsClosed() {
			t.Errorf("Quad %d is not closed", i)
		}
		if i > 0 && quads[i-1][0].Q != q[0].P {
			t.Errorf("Quad %d does not share a wall vertex with quad %d", i, i-1)
		}
		// Caps span twice the thickness at most.
		if w := q[1].Len(); w < 2-1e-9 || w > 4+1e-9 {
			t.Errorf("Quad %d cap width %v outside [2,4]", i, w)
		}
	}
}

func TestGenerateReproducible(t *testing.T) {
	g := NewGenerator(defaultParams())
	edge := geom.Edge{P: geom.Pt(0, 0), Q: geom.Pt(10, 10)}

	a, _ := g.Generate(edge, random.New(99))
	b, _ := g.Generate(edge, random.New(99))
	if len(a) != len(b) {
		t.Fatalf("Quad count differs: %d != %d", len(a), len(b))
	}
	for i := range a {
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				t.Fatalf("Quad %d edge %d differs", i, j)
			}
		}
	}
}

func TestPolylineFollowsCenterline(t *testing.T) {
	p := defaultParams()
	p.RandomDistributionRadius = 0
	g := NewGenerator(p)
	edge := geom.Edge{P: geom.Pt(0, 0), Q: geom.Pt(10, 0)}

	c, err := g.Centerline(edge, random.New(3))
	if err != nil {
		t.Fatalf("Centerline: %v", err)
	}
	line := g.Polyline(c)
	if len(line) != 10 {
		t.Errorf("Expected 10 segments, got %d", len(line))
	}
	for _, e := range line {
		if math.Abs(e.P.Y) > 1e-9 || math.Abs(e.Q.Y) > 1e-9 {
			t.Errorf("Segment %v left the straight baseline", e)
		}
	}
}
