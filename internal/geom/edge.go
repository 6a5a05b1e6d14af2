package geom

import (
	"cmp"
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// Edge is a directed segment from P to Q. Tag carries an arbitrary small
// integer such as a vertex or halfedge index.
type Edge struct {
	P   Point `json:"p" yaml:"p"`
	Q   Point `json:"q" yaml:"q"`
	Tag int   `json:"tag" yaml:"tag"`
}

// Vector returns Q-P.
func (e Edge) Vector() Point {
	return e.Q.Sub(e.P)
}

// Len returns the length of the edge.
func (e Edge) Len() float64 {
	return e.P.Dist(e.Q)
}

// Translate returns the edge moved by v.
func (e Edge) Translate(v Point) Edge {
	return Edge{P: e.P.Add(v), Q: e.Q.Add(v), Tag: e.Tag}
}

// EdgeKey is an undirected edge between two point indices, always stored
// with A <= B.
type EdgeKey struct {
	A int `json:"a" yaml:"a"`
	B int `json:"b" yaml:"b"`
}

// Key returns the canonical key for the undirected edge {i, j}.
func Key(i, j int) EdgeKey {
	if i > j {
		i, j = j, i
	}
	return EdgeKey{A: i, B: j}
}

// Canonical returns k with its endpoints ordered.
func (k EdgeKey) Canonical() EdgeKey {
	return Key(k.A, k.B)
}

func compareKeys(a, b EdgeKey) int {
	if c := cmp.Compare(a.A, b.A); c != 0 {
		return c
	}
	return cmp.Compare(a.B, b.B)
}

// SortKeys orders keys by A then B.
func SortKeys(keys []EdgeKey) {
	slices.SortFunc(keys, compareKeys)
}

// EdgeSet is a set of undirected edges. Every key is canonicalized on
// insertion, so {i,j} and {j,i} are the same member.
type EdgeSet struct {
	set mapset.Set[EdgeKey]
}

// NewEdgeSet returns a set holding the given edges.
func NewEdgeSet(keys ...EdgeKey) EdgeSet {
	s := EdgeSet{set: mapset.New[EdgeKey]()}
	for _, k := range keys {
		s.Put(k)
	}
	return s
}

// Put adds k to the set.
func (s EdgeSet) Put(k EdgeKey) {
	s.set.Put(k.Canonical())
}

// Add adds the undirected edge {i, j}.
func (s EdgeSet) Add(i, j int) {
	s.set.Put(Key(i, j))
}

// Has reports whether the undirected edge k is present.
func (s EdgeSet) Has(k EdgeKey) bool {
	return s.set.Has(k.Canonical())
}

// Remove deletes k from the set.
func (s EdgeSet) Remove(k EdgeKey) {
	s.set.Remove(k.Canonical())
}

// Len returns the number of edges.
func (s EdgeSet) Len() int {
	return s.set.Size()
}

// Sorted returns the members ordered by A then B.
func (s EdgeSet) Sorted() []EdgeKey {
	keys := make([]EdgeKey, 0, s.set.Size())
	s.set.Each(func(k EdgeKey) {
		keys = append(keys, k)
	})
	SortKeys(keys)
	return keys
}

// Difference returns the members of s that are not in other, sorted.
func (s EdgeSet) Difference(other EdgeSet) []EdgeKey {
	keys := make([]EdgeKey, 0, s.set.Size())
	s.set.Each(func(k EdgeKey) {
		if !other.Has(k) {
			keys = append(keys, k)
		}
	})
	SortKeys(keys)
	return keys
}
