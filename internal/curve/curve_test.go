package curve

import (
	"errors"
	"math"
	"testing"

	"github.com/DeclanHarty/CaveGeneration/internal/geom"
)

const eps = 1e-9

func near(a, b geom.Point, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

func TestFromKnotsPassesThroughKnots(t *testing.T) {
	knots := []geom.Point{{X: 0, Y: 0}, {X: 2, Y: 3}, {X: 5, Y: 1}, {X: 7, Y: 4}, {X: 9, Y: 0}}
	c, err := FromKnots(knots)
	if err != nil {
		t.Fatalf("FromKnots: %v", err)
	}

	for i, k := range knots {
		tt := float64(i) / float64(len(knots)-1)
		if got := c.Position(tt); !near(got, k, eps) {
			t.Errorf("Position(%v) = %v, want knot %v", tt, got, k)
		}
	}
}

func TestStraightLine(t *testing.T) {
	c, err := FromKnots([]geom.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}})
	if err != nil {
		t.Fatalf("FromKnots: %v", err)
	}

	if math.Abs(c.Length()-10) > 1e-6 {
		t.Errorf("Length = %v, want 10", c.Length())
	}
	for _, tt := range []float64{0, 0.0001, 0.3, 0.5, 0.99, 1} {
		tan := c.Tangent(tt)
		if tan.X <= 0 || math.Abs(tan.Y) > eps {
			t.Errorf("Tangent(%v) = %v, want +x direction", tt, tan)
		}
		if p := c.Position(tt); math.Abs(p.Y) > eps {
			t.Errorf("Position(%v) = %v left the line", tt, p)
		}
	}
}

func TestTwoKnots(t *testing.T) {
	c, err := FromKnots([]geom.Point{{X: 1, Y: 1}, {X: 4, Y: 5}})
	if err != nil {
		t.Fatalf("FromKnots: %v", err)
	}
	if math.Abs(c.Length()-5) > 1e-6 {
		t.Errorf("Length = %v, want 5", c.Length())
	}
	if mid := c.Position(0.5); !near(mid, geom.Pt(2.5, 3), 1e-9) {
		t.Errorf("Midpoint = %v, want (2.5,3)", mid)
	}
}

func TestFromLoopCloses(t *testing.T) {
	knots := []geom.Point{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1}}
	c, err := FromLoop(knots)
	if err != nil {
		t.Fatalf("FromLoop: %v", err)
	}

	if !near(c.Position(0), c.Position(1), eps) {
		t.Errorf("Loop start %v != end %v", c.Position(0), c.Position(1))
	}
	for i, k := range knots {
		tt := float64(i) / float64(len(knots))
		if got := c.Position(tt); !near(got, k, eps) {
			t.Errorf("Position(%v) = %v, want %v", tt, got, k)
		}
	}
	// The loop is rounder than the diamond through its knots.
	if c.Length() <= 4*math.Sqrt2 {
		t.Errorf("Loop length %v should exceed the polygon perimeter", c.Length())
	}
}

func TestTooFewKnots(t *testing.T) {
	if _, err := FromKnots([]geom.Point{{X: 0, Y: 0}}); !errors.Is(err, ErrTooFewKnots) {
		t.Errorf("FromKnots with 1 knot: got %v", err)
	}
	if _, err := FromLoop([]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}); !errors.Is(err, ErrTooFewKnots) {
		t.Errorf("FromLoop with 2 knots: got %v", err)
	}
}

func TestSample(t *testing.T) {
	c, _ := FromKnots([]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}})
	pts := Sample(c, 4)
	if len(pts) != 5 {
		t.Fatalf("Expected 5 samples, got %d", len(pts))
	}
	if !near(pts[0], geom.Pt(0, 0), eps) || !near(pts[4], geom.Pt(10, 0), eps) {
		t.Errorf("Samples should span the curve, got %v..%v", pts[0], pts[4])
	}
}
