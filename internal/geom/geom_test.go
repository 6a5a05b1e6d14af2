package geom

import (
	"math"
	"testing"
)

func TestKeyCanonical(t *testing.T) {
	tests := []struct {
		i, j int
		want EdgeKey
	}{
		{0, 1, EdgeKey{0, 1}},
		{1, 0, EdgeKey{0, 1}},
		{7, 3, EdgeKey{3, 7}},
		{4, 4, EdgeKey{4, 4}},
	}

	for _, tt := range tests {
		got := Key(tt.i, tt.j)
		if got != tt.want {
			t.Errorf("Key(%d, %d) = %v, want %v", tt.i, tt.j, got, tt.want)
		}
		if got.Canonical() != got {
			t.Errorf("Canonical not idempotent for %v", got)
		}
		if Key(got.B, got.A) != got {
			t.Errorf("Key not symmetric for %v", got)
		}
	}
}

func TestEdgeSetDeduplicatesReversedEdges(t *testing.T) {
	s := NewEdgeSet()
	s.Add(2, 5)
	s.Add(5, 2)
	s.Put(EdgeKey{A: 5, B: 2})

	if s.Len() != 1 {
		t.Fatalf("Expected 1 edge, got %d", s.Len())
	}
	if !s.Has(EdgeKey{A: 5, B: 2}) || !s.Has(EdgeKey{A: 2, B: 5}) {
		t.Error("Set should report membership in both orientations")
	}

	s.Remove(EdgeKey{A: 5, B: 2})
	if s.Len() != 0 {
		t.Errorf("Expected empty set after removal, got %d", s.Len())
	}
}

func TestEdgeSetSortedAndDifference(t *testing.T) {
	a := NewEdgeSet(Key(3, 1), Key(0, 2), Key(0, 1), Key(2, 3))
	b := NewEdgeSet(Key(1, 0), Key(3, 2))

	sorted := a.Sorted()
	want := []EdgeKey{{0, 1}, {0, 2}, {1, 3}, {2, 3}}
	if len(sorted) != len(want) {
		t.Fatalf("Sorted length = %d, want %d", len(sorted), len(want))
	}
	for i := range want {
		if sorted[i] != want[i] {
			t.Errorf("Sorted[%d] = %v, want %v", i, sorted[i], want[i])
		}
	}

	diff := a.Difference(b)
	wantDiff := []EdgeKey{{0, 2}, {1, 3}}
	if len(diff) != len(wantDiff) {
		t.Fatalf("Difference length = %d, want %d", len(diff), len(wantDiff))
	}
	for i := range wantDiff {
		if diff[i] != wantDiff[i] {
			t.Errorf("Difference[%d] = %v, want %v", i, diff[i], wantDiff[i])
		}
	}
}

func TestPolygonFromVertices(t *testing.T) {
	verts := []Point{{0, 0}, {4, 0}, {0, 4}}
	poly := PolygonFromVertices(verts)

	if len(poly) != 3 {
		t.Fatalf("Expected 3 edges, got %d", len(poly))
	}
	if !poly.IsClosed() {
		t.Error("Polygon should be closed")
	}
	if poly[2].Q != verts[0] {
		t.Errorf("Last edge should return to first vertex, ends at %v", poly[2].Q)
	}

	moved := poly.Translate(Pt(10, -2))
	if !moved.IsClosed() {
		t.Error("Translated polygon should stay closed")
	}
	lo, hi := moved.Bounds()
	if lo != Pt(10, -2) || hi != Pt(14, 2) {
		t.Errorf("Bounds = %v..%v, want (10,-2)..(14,2)", lo, hi)
	}
	if poly[0].P != verts[0] {
		t.Error("Translate must not modify the receiver")
	}
}

func TestPointOps(t *testing.T) {
	p := Pt(3, 4)
	if p.Len() != 5 {
		t.Errorf("Len = %v, want 5", p.Len())
	}
	if n := p.Normalize(); math.Abs(n.Len()-1) > 1e-12 {
		t.Errorf("Normalize length = %v", n.Len())
	}
	if z := (Point{}).Normalize(); z != (Point{}) {
		t.Errorf("Normalize of zero = %v", z)
	}
	if p.Perp().Dot(p) != 0 {
		t.Error("Perp should be orthogonal")
	}
	r := Pt(1, 0).Rotate(math.Pi / 2)
	if math.Abs(r.X) > 1e-12 || math.Abs(r.Y-1) > 1e-12 {
		t.Errorf("Rotate = %v, want (0,1)", r)
	}
}
