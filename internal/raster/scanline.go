// Package raster converts closed polygons into filled grid cells using a
// scanline sweep over an active edge table.
package raster

import (
	"cmp"
	"math"
	"slices"

	"github.com/DeclanHarty/CaveGeneration/internal/geom"
)

// Cell is an integer grid coordinate.
type Cell struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// EdgeRecord is one non-horizontal edge in the global edge table.
type EdgeRecord struct {
	MinY     float64
	MaxY     float64
	XAtMinY  float64
	InvSlope float64
}

// activeEdge is an edge crossing the current scanline.
type activeEdge struct {
	maxY     float64
	x        float64
	invSlope float64
}

// BuildEdgeTable returns the global edge table for edges, sorted by MinY and
// then by XAtMinY. Horizontal edges are dropped and vertical edges get an
// inverse slope of zero.
func BuildEdgeTable(edges []geom.Edge) []EdgeRecord {
	table := make([]EdgeRecord, 0, len(edges))
	for _, e := range edges {
		if e.P.Y == e.Q.Y {
			continue
		}

		lo, hi := e.P, e.Q
		if lo.Y > hi.Y {
			lo, hi = hi, lo
		}

		var inv float64
		if lo.X != hi.X {
			inv = (hi.X - lo.X) / (hi.Y - lo.Y)
		}

		table = append(table, EdgeRecord{MinY: lo.Y, MaxY: hi.Y, XAtMinY: lo.X, InvSlope: inv})
	}

	slices.SortStableFunc(table, func(a, b EdgeRecord) int {
		if c := cmp.Compare(a.MinY, b.MinY); c != 0 {
			return c
		}
		return cmp.Compare(a.XAtMinY, b.XAtMinY)
	})
	return table
}

// Fill returns the cells inside the polygon described by edges, row by row
// from the lowest scanline upward. The edge order does not need to form a
// chain; edges may come from any closed outline.
//
// A scanline with an odd number of active edges fills its complete pairs and
// then drops every active edge.
func Fill(edges []geom.Edge) []Cell {
	global := BuildEdgeTable(edges)
	if len(global) == 0 {
		return nil
	}

	var cells []Cell
	var active []activeEdge

	y := int(math.Floor(global[0].MinY))
	global, active = advance(y, global, active)

	for len(active) > 0 {
		for i := 0; i < len(active); i += 2 {
			if i+1 >= len(active) {
				active = active[:0]
				break
			}
			x0, x1 := active[i].x, active[i+1].x
			from := int(math.RoundToEven(math.Min(x0, x1)))
			to := int(math.RoundToEven(math.Max(x0, x1)))
			for x := from; x < to; x++ {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}

		y++
		global, active = advance(y, global, active)
	}
	return cells
}

// advance moves the scanline to row y: finished edges leave the active
// table, the rest step by their inverse slope, edges starting at or below y
// join, and the table is re-sorted by x.
func advance(y int, global []EdgeRecord, active []activeEdge) ([]EdgeRecord, []activeEdge) {
	fy := float64(y)

	kept := active[:0]
	for _, a := range active {
		if math.Floor(a.maxY) <= fy {
			continue
		}
		a.x += a.invSlope
		kept = append(kept, a)
	}
	active = kept

	rest := global[:0]
	for _, g := range global {
		if math.Floor(g.MinY) <= fy {
			active = append(active, activeEdge{maxY: g.MaxY, x: g.XAtMinY, invSlope: g.InvSlope})
			continue
		}
		rest = append(rest, g)
	}

	slices.SortStableFunc(active, func(a, b activeEdge) int {
		return cmp.Compare(a.x, b.x)
	})
	return rest, active
}

// FillPolygons rasterizes each polygon independently and concatenates the
// results.
func FillPolygons(polys []geom.Polygon) []Cell {
	var cells []Cell
	for _, p := range polys {
		cells = append(cells, Fill(p)...)
	}
	return cells
}
