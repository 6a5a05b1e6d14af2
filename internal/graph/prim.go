package graph

import (
	"fmt"
	"math"

	"github.com/DeclanHarty/CaveGeneration/internal/geom"
)

// SpanningTree is the result of Prim's algorithm.
type SpanningTree struct {
	// Adjacency lists the tree neighbours of every point; each tree edge
	// appears once in each direction.
	Adjacency [][]int
	// Edges lists tree edges in the order they were added.
	Edges []geom.EdgeKey

	reached int
}

// Prim builds a minimum spanning tree starting at vertex 0. Each step scans
// every visited/unvisited pair for the lightest crossing edge. If the graph is
// disconnected the tree covers only the component containing vertex 0; see
// Check.
func Prim(adj WeightedAdjacency) *SpanningTree {
	n := len(adj)
	tree := &SpanningTree{Adjacency: make([][]int, n)}
	if n == 0 {
		return tree
	}

	visited := make([]bool, n)
	visited[0] = true
	order := []int{0}

	for {
		best := math.Inf(1)
		from, to := -1, -1
		for _, v := range order {
			for _, u := range adj.Neighbors(v) {
				if visited[u] {
					continue
				}
				if w := adj[v][u]; w < best {
					best, from, to = w, v, u
				}
			}
		}
		if to < 0 {
			break
		}

		visited[to] = true
		order = append(order, to)
		tree.Adjacency[from] = append(tree.Adjacency[from], to)
		tree.Adjacency[to] = append(tree.Adjacency[to], from)
		tree.Edges = append(tree.Edges, geom.Key(from, to))
	}

	tree.reached = len(order)
	return tree
}

// Reached returns how many points the tree touches.
func (t *SpanningTree) Reached() int {
	return t.reached
}

// Spanning reports whether the tree reaches every point.
func (t *SpanningTree) Spanning() bool {
	return t.reached == len(t.Adjacency)
}

// Check returns ErrDisconnectedGraph if the tree missed any point.
func (t *SpanningTree) Check() error {
	if t.Spanning() {
		return nil
	}
	return fmt.Errorf("%w: reached %d of %d", ErrDisconnectedGraph, t.reached, len(t.Adjacency))
}

// EdgeSet returns the tree edges as a canonical set.
func (t *SpanningTree) EdgeSet() geom.EdgeSet {
	return geom.NewEdgeSet(t.Edges...)
}

// Weight returns the total weight of the tree under adj.
func (t *SpanningTree) Weight(adj WeightedAdjacency) float64 {
	var total float64
	for _, k := range t.Edges {
		total += adj[k.A][k.B]
	}
	return total
}
