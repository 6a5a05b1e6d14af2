// Package graph builds the room connectivity graph: jittered site sampling,
// Delaunay triangulation, a minimum spanning tree and extra loop edges.
package graph

import (
	"errors"
	"fmt"

	"github.com/DeclanHarty/CaveGeneration/internal/geom"
)

var (
	// ErrInsufficientPoints is returned when a triangulation is requested
	// with fewer than three points.
	ErrInsufficientPoints = errors.New("graph: at least 3 points are required")
	// ErrDisconnectedGraph reports a spanning tree that stopped before
	// reaching every point.
	ErrDisconnectedGraph = errors.New("graph: spanning tree does not reach every point")
	// ErrInvalidEdge is returned when an edge references a point that is not
	// part of the graph.
	ErrInvalidEdge = errors.New("graph: edge endpoint is not a graph point")
)

// Graph is an index-addressed point arena plus a set of undirected edges
// between those indices.
type Graph struct {
	Points []geom.Point
	Edges  geom.EdgeSet
}

// Validate checks that every edge references a valid point index.
func (g *Graph) Validate() error {
	for _, k := range g.Edges.Sorted() {
		if k.A < 0 || k.B >= len(g.Points) {
			return fmt.Errorf("%w: %d-%d with %d points", ErrInvalidEdge, k.A, k.B, len(g.Points))
		}
	}
	return nil
}

// Length returns the Euclidean length of edge k.
func (g *Graph) Length(k geom.EdgeKey) float64 {
	return g.Points[k.A].Dist(g.Points[k.B])
}

// Segment returns the edge k as a directed segment from A to B.
func (g *Graph) Segment(k geom.EdgeKey) geom.Edge {
	return geom.Edge{P: g.Points[k.A], Q: g.Points[k.B]}
}
