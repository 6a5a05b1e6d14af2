// Package curve provides smooth interpolating curves through control knots.
package curve

import (
	"errors"
	"fmt"

	"github.com/DeclanHarty/CaveGeneration/internal/geom"
)

// ErrTooFewKnots is returned when a curve cannot be built from the knots given.
var ErrTooFewKnots = errors.New("curve: not enough knots")

// Curve is a smooth parametric curve over t in [0, 1].
type Curve interface {
	Position(t float64) geom.Point
	Tangent(t float64) geom.Point
	Length() float64
}

// lengthSteps is the number of chords per segment used to approximate arc length.
const lengthSteps = 32

// CatmullRom is a uniform Catmull-Rom spline. It passes through every knot
// and t is spread evenly across segments.
type CatmullRom struct {
	ctrl     []geom.Point
	segments int
	length   float64
}

// FromKnots builds an open spline through at least two knots. The end
// segments use mirrored phantom knots.
func FromKnots(knots []geom.Point) (*CatmullRom, error) {
	n := len(knots)
	if n < 2 {
		return nil, fmt.Errorf("%w: open curve needs 2, got %d", ErrTooFewKnots, n)
	}

	ctrl := make([]geom.Point, 0, n+2)
	ctrl = append(ctrl, knots[0].Scale(2).Sub(knots[1]))
	ctrl = append(ctrl, knots...)
	ctrl = append(ctrl, knots[n-1].Scale(2).Sub(knots[n-2]))

	return newCatmullRom(ctrl, n-1), nil
}

// FromLoop builds a closed spline through at least three knots that returns
// to the first knot at t=1.
func FromLoop(knots []geom.Point) (*CatmullRom, error) {
	n := len(knots)
	if n < 3 {
		return nil, fmt.Errorf("%w: closed curve needs 3, got %d", ErrTooFewKnots, n)
	}

	ctrl := make([]geom.Point, 0, n+3)
	ctrl = append(ctrl, knots[n-1])
	ctrl = append(ctrl, knots...)
	ctrl = append(ctrl, knots[0], knots[1])

	return newCatmullRom(ctrl, n), nil
}

func newCatmullRom(ctrl []geom.Point, segments int) *CatmullRom {
	c := &CatmullRom{ctrl: ctrl, segments: segments}
	for s := 0; s < segments; s++ {
		prev := c.segmentPosition(s, 0)
		for i := 1; i <= lengthSteps; i++ {
			next := c.segmentPosition(s, float64(i)/lengthSteps)
			c.length += prev.Dist(next)
			prev = next
		}
	}
	return c
}

// locate maps a global t to a segment index and a local parameter.
func (c *CatmullRom) locate(t float64) (int, float64) {
	t = min(max(t, 0), 1)
	u := t * float64(c.segments)
	s := int(u)
	if s >= c.segments {
		s = c.segments - 1
	}
	return s, u - float64(s)
}

func (c *CatmullRom) segmentPosition(s int, u float64) geom.Point {
	p0, p1, p2, p3 := c.ctrl[s], c.ctrl[s+1], c.ctrl[s+2], c.ctrl[s+3]
	u2 := u * u
	u3 := u2 * u

	a := p1.Scale(2)
	b := p2.Sub(p0).Scale(u)
	cc := p0.Scale(2).Sub(p1.Scale(5)).Add(p2.Scale(4)).Sub(p3).Scale(u2)
	d := p1.Scale(3).Sub(p0).Sub(p2.Scale(3)).Add(p3).Scale(u3)
	return a.Add(b).Add(cc).Add(d).Scale(0.5)
}

func (c *CatmullRom) segmentTangent(s int, u float64) geom.Point {
	p0, p1, p2, p3 := c.ctrl[s], c.ctrl[s+1], c.ctrl[s+2], c.ctrl[s+3]

	b := p2.Sub(p0)
	cc := p0.Scale(2).Sub(p1.Scale(5)).Add(p2.Scale(4)).Sub(p3).Scale(2 * u)
	d := p1.Scale(3).Sub(p0).Sub(p2.Scale(3)).Add(p3).Scale(3 * u * u)
	return b.Add(cc).Add(d).Scale(0.5)
}

// Position returns the point at t.
func (c *CatmullRom) Position(t float64) geom.Point {
	s, u := c.locate(t)
	return c.segmentPosition(s, u)
}

// Tangent returns the derivative with respect to t.
func (c *CatmullRom) Tangent(t float64) geom.Point {
	s, u := c.locate(t)
	return c.segmentTangent(s, u).Scale(float64(c.segments))
}

// Length returns the approximate arc length.
func (c *CatmullRom) Length() float64 {
	return c.length
}

// Sample returns n+1 evenly spaced positions from t=0 to t=1.
func Sample(c Curve, n int) []geom.Point {
	if n < 1 {
		n = 1
	}
	out := make([]geom.Point, n+1)
	for i := 0; i <= n; i++ {
		out[i] = c.Position(float64(i) / float64(n))
	}
	return out
}
