package graph

import (
	"fmt"
	"slices"

	"github.com/DeclanHarty/CaveGeneration/internal/geom"
)

// WeightedAdjacency maps each point index to its neighbours and the
// Euclidean distance to each of them. It is symmetric.
type WeightedAdjacency []map[int]float64

// BuildAdjacency derives a weighted adjacency from points and edges. Edge
// endpoints are resolved to indices by coordinate; an edge reported twice
// keeps the last computed distance.
func BuildAdjacency(points []geom.Point, edges []geom.Edge) (WeightedAdjacency, error) {
	index := make(map[geom.Point]int, len(points))
	for i, p := range points {
		if _, ok := index[p]; !ok {
			index[p] = i
		}
	}

	adj := make(WeightedAdjacency, len(points))
	for i := range adj {
		adj[i] = make(map[int]float64)
	}

	for _, e := range edges {
		a, ok := index[e.P]
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEdge, e.P)
		}
		b, ok := index[e.Q]
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEdge, e.Q)
		}
		if a == b {
			continue
		}
		d := e.P.Dist(e.Q)
		adj[a][b] = d
		adj[b][a] = d
	}
	return adj, nil
}

// Neighbors returns the neighbours of v in ascending index order.
func (adj WeightedAdjacency) Neighbors(v int) []int {
	out := make([]int, 0, len(adj[v]))
	for u := range adj[v] {
		out = append(out, u)
	}
	slices.Sort(out)
	return out
}

// Weight returns the weight of edge {a, b} if it exists.
func (adj WeightedAdjacency) Weight(a, b int) (float64, bool) {
	w, ok := adj[a][b]
	return w, ok
}

// Edges returns every undirected edge of the adjacency.
func (adj WeightedAdjacency) Edges() geom.EdgeSet {
	set := geom.NewEdgeSet()
	for a, m := range adj {
		for b := range m {
			set.Add(a, b)
		}
	}
	return set
}

// AdjacencyMatrix returns the dense form of adj. A zero entry means no edge.
func AdjacencyMatrix(adj WeightedAdjacency) [][]float64 {
	m := make([][]float64, len(adj))
	for a := range m {
		m[a] = make([]float64, len(adj))
		for b, w := range adj[a] {
			m[a][b] = w
		}
	}
	return m
}

// FromMatrix converts a dense matrix back to an adjacency. Zero entries are
// treated as missing edges.
func FromMatrix(m [][]float64) WeightedAdjacency {
	adj := make(WeightedAdjacency, len(m))
	for a := range m {
		adj[a] = make(map[int]float64)
	}
	for a := range m {
		for b, w := range m[a] {
			if w != 0 && a != b {
				adj[a][b] = w
				adj[b][a] = w
			}
		}
	}
	return adj
}
