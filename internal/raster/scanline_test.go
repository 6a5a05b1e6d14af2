package raster

import (
	"slices"
	"testing"

	"github.com/DeclanHarty/CaveGeneration/internal/geom"
)

func TestFillRightTriangle(t *testing.T) {
	poly := geom.PolygonFromVertices([]geom.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4}})

	got := Fill(poly)
	want := []Cell{
		{0, 0}, {1, 0}, {2, 0}, {3, 0},
		{0, 1}, {1, 1}, {2, 1},
		{0, 2}, {1, 2},
		{0, 3},
	}

	// n(n+1)/2 for a leg of 4 cells.
	if len(got) != 10 {
		t.Fatalf("Expected 10 cells, got %d: %v", len(got), got)
	}
	if !slices.Equal(got, want) {
		t.Errorf("Fill = %v, want %v", got, want)
	}
}

func TestFillRectangle(t *testing.T) {
	poly := geom.PolygonFromVertices([]geom.Point{{X: 1, Y: 1}, {X: 4, Y: 1}, {X: 4, Y: 3}, {X: 1, Y: 3}})

	got := Fill(poly)
	if len(got) != 6 {
		t.Fatalf("Expected 6 cells, got %d: %v", len(got), got)
	}
	for _, c := range got {
		if c.X < 1 || c.X >= 4 || c.Y < 1 || c.Y >= 3 {
			t.Errorf("Cell %v outside rectangle", c)
		}
	}
}

func TestFillIgnoresEdgeOrder(t *testing.T) {
	poly := geom.PolygonFromVertices([]geom.Point{{X: 2, Y: 0}, {X: 9, Y: 3}, {X: 6, Y: 9}, {X: 0, Y: 6}})
	reversed := slices.Clone(poly)
	slices.Reverse(reversed)

	a := Fill(poly)
	b := Fill(reversed)
	if !slices.Equal(a, b) {
		t.Errorf("Fill depends on edge order:\n%v\n%v", a, b)
	}
	if len(a) == 0 {
		t.Error("Expected a non-empty fill")
	}
}

func TestFillStable(t *testing.T) {
	poly := geom.PolygonFromVertices([]geom.Point{{X: 0.3, Y: 0.2}, {X: 7.7, Y: 1.4}, {X: 5.1, Y: 6.6}, {X: 1.2, Y: 4.9}})
	if !slices.Equal(Fill(poly), Fill(poly)) {
		t.Error("Repeated fills should be identical")
	}
}

func TestFillOddActiveCount(t *testing.T) {
	edges := geom.PolygonFromVertices([]geom.Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 2}, {X: 0, Y: 2}})
	edges = append(edges, geom.Edge{P: geom.Pt(5, 0), Q: geom.Pt(5, 4)})

	got := Fill(edges)
	want := []Cell{{0, 0}, {1, 0}, {2, 0}}
	if !slices.Equal(got, want) {
		t.Errorf("Fill = %v, want %v", got, want)
	}
}

func TestFillDegenerateInput(t *testing.T) {
	if cells := Fill(nil); len(cells) != 0 {
		t.Errorf("Empty input filled %d cells", len(cells))
	}

	flat := []geom.Edge{{P: geom.Pt(0, 1), Q: geom.Pt(5, 1)}, {P: geom.Pt(5, 1), Q: geom.Pt(0, 1)}}
	if cells := Fill(flat); len(cells) != 0 {
		t.Errorf("Horizontal-only input filled %d cells", len(cells))
	}

	single := []geom.Edge{{P: geom.Pt(0, 0), Q: geom.Pt(0, 5)}}
	if cells := Fill(single); len(cells) != 0 {
		t.Errorf("Single edge filled %d cells", len(cells))
	}
}

func TestBuildEdgeTable(t *testing.T) {
	edges := []geom.Edge{
		{P: geom.Pt(4, 0), Q: geom.Pt(0, 4)},
		{P: geom.Pt(0, 0), Q: geom.Pt(4, 0)},
		{P: geom.Pt(0, 4), Q: geom.Pt(0, 0)},
		{P: geom.Pt(2, 6), Q: geom.Pt(6, 2)},
	}

	table := BuildEdgeTable(edges)
	want := []EdgeRecord{
		{MinY: 0, MaxY: 4, XAtMinY: 0, InvSlope: 0},
		{MinY: 0, MaxY: 4, XAtMinY: 4, InvSlope: -1},
		{MinY: 2, MaxY: 6, XAtMinY: 6, InvSlope: -1},
	}
	if !slices.Equal(table, want) {
		t.Errorf("BuildEdgeTable = %v, want %v", table, want)
	}
}

func TestFillPolygons(t *testing.T) {
	a := geom.PolygonFromVertices([]geom.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}})
	b := a.Translate(geom.Pt(10, 0))

	cells := FillPolygons([]geom.Polygon{a, b})
	if len(cells) != 8 {
		t.Errorf("Expected 8 cells, got %d", len(cells))
	}
}
