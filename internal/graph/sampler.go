package graph

import (
	"math"

	"github.com/DeclanHarty/CaveGeneration/internal/geom"
	"github.com/DeclanHarty/CaveGeneration/internal/random"
)

// Rect is the axis-aligned sampling area given by two opposite corners.
type Rect struct {
	TopLeft     geom.Point `json:"top_left" yaml:"top_left"`
	BottomRight geom.Point `json:"bottom_right" yaml:"bottom_right"`
}

// Min returns the corner with the smallest coordinates.
func (r Rect) Min() geom.Point {
	return geom.Pt(math.Min(r.TopLeft.X, r.BottomRight.X), math.Min(r.TopLeft.Y, r.BottomRight.Y))
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 {
	return math.Abs(r.TopLeft.X - r.BottomRight.X)
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 {
	return math.Abs(r.TopLeft.Y - r.BottomRight.Y)
}

// CellSize returns the side of one sampling cell. Cells are square and sized
// from the horizontal extent.
func (r Rect) CellSize(gridScale int) float64 {
	return r.Width() / float64(gridScale)
}

// SamplePoints places one point in each of the gridScale x gridScale cells of
// bounds, jittered from the cell center by at most a third of the cell size
// on each axis. Points are returned in row-major order (y*gridScale + x).
func SamplePoints(bounds Rect, gridScale int, rng random.Source) []geom.Point {
	if gridScale <= 0 {
		return nil
	}

	cell := bounds.CellSize(gridScale)
	jitter := cell / 3
	origin := bounds.Min()

	points := make([]geom.Point, gridScale*gridScale)
	for y := 0; y < gridScale; y++ {
		for x := 0; x < gridScale; x++ {
			center := geom.Pt(
				origin.X+(float64(x)+0.5)*cell,
				origin.Y+(float64(y)+0.5)*cell,
			)
			offset := geom.Pt(rng.Uniform(-jitter, jitter), rng.Uniform(-jitter, jitter))
			points[y*gridScale+x] = center.Add(offset)
		}
	}
	return points
}
