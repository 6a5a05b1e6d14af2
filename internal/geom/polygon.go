package geom

import "math"

// Polygon is an ordered list of edges forming a closed cycle: each edge's Q
// is the next edge's P and the last edge ends where the first begins.
type Polygon []Edge

// PolygonFromVertices connects consecutive vertices and closes the loop back
// to the first. Edge i is tagged with i.
func PolygonFromVertices(vertices []Point) Polygon {
	n := len(vertices)
	poly := make(Polygon, 0, n)
	for i := 0; i < n; i++ {
		poly = append(poly, Edge{P: vertices[i], Q: vertices[(i+1)%n], Tag: i})
	}
	return poly
}

// Vertices returns the start point of every edge.
func (p Polygon) Vertices() []Point {
	out := make([]Point, len(p))
	for i, e := range p {
		out[i] = e.P
	}
	return out
}

// Translate returns a copy of the polygon moved by v.
func (p Polygon) Translate(v Point) Polygon {
	out := make(Polygon, len(p))
	for i, e := range p {
		out[i] = e.Translate(v)
	}
	return out
}

// IsClosed reports whether the edges chain end to start and wrap around.
func (p Polygon) IsClosed() bool {
	if len(p) < 3 {
		return false
	}
	for i, e := range p {
		if e.Q != p[(i+1)%len(p)].P {
			return false
		}
	}
	return true
}

// Bounds returns the minimum and maximum corners of the polygon.
func (p Polygon) Bounds() (lo, hi Point) {
	lo = Point{math.Inf(1), math.Inf(1)}
	hi = Point{math.Inf(-1), math.Inf(-1)}
	for _, e := range p {
		for _, v := range [2]Point{e.P, e.Q} {
			lo.X = math.Min(lo.X, v.X)
			lo.Y = math.Min(lo.Y, v.Y)
			hi.X = math.Max(hi.X, v.X)
			hi.Y = math.Max(hi.Y, v.Y)
		}
	}
	return lo, hi
}
