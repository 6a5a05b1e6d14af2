package graph

import (
	"fmt"

	"github.com/fogleman/delaunay"

	"github.com/DeclanHarty/CaveGeneration/internal/geom"
)

// Triangulation is the Delaunay triangulation of a point set. Point indices
// match the order of the input slice.
type Triangulation struct {
	Points []geom.Point
	// Edges holds one directed segment per undirected triangulation edge,
	// tagged with the halfedge it was read from.
	Edges []geom.Edge
	// Triangles lists vertex index triples.
	Triangles [][3]int

	index map[geom.Point]int
	keys  geom.EdgeSet
}

// Triangulate computes the Delaunay triangulation of points.
func Triangulate(points []geom.Point) (*Triangulation, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientPoints, len(points))
	}

	in := make([]delaunay.Point, len(points))
	for i, p := range points {
		in[i] = delaunay.Point{X: p.X, Y: p.Y}
	}

	d, err := delaunay.Triangulate(in)
	if err != nil {
		return nil, fmt.Errorf("triangulate %d points: %w", len(points), err)
	}

	t := &Triangulation{
		Points: append([]geom.Point(nil), points...),
		index:  make(map[geom.Point]int, len(points)),
		keys:   geom.NewEdgeSet(),
	}
	for i, p := range t.Points {
		if _, ok := t.index[p]; !ok {
			t.index[p] = i
		}
	}

	for i := 0; i+2 < len(d.Triangles); i += 3 {
		t.Triangles = append(t.Triangles, [3]int{d.Triangles[i], d.Triangles[i+1], d.Triangles[i+2]})
	}

	// Interior edges appear as two opposite halfedges; keep the one with the
	// larger id. Hull halfedges have no twin (-1) and are always kept.
	for e := range d.Triangles {
		if e <= d.Halfedges[e] {
			continue
		}
		a := d.Triangles[e]
		b := d.Triangles[nextHalfedge(e)]
		t.Edges = append(t.Edges, geom.Edge{P: t.Points[a], Q: t.Points[b], Tag: e})
		t.keys.Add(a, b)
	}

	return t, nil
}

func nextHalfedge(e int) int {
	if e%3 == 2 {
		return e - 2
	}
	return e + 1
}

// PointIndex returns the index of p, looked up by coordinate.
func (t *Triangulation) PointIndex(p geom.Point) (int, bool) {
	i, ok := t.index[p]
	return i, ok
}

// EdgeKeys returns the canonical undirected edge set of the triangulation.
func (t *Triangulation) EdgeKeys() geom.EdgeSet {
	return t.keys
}

// Graph returns the triangulation as an index graph.
func (t *Triangulation) Graph() *Graph {
	return &Graph{Points: t.Points, Edges: t.keys}
}
