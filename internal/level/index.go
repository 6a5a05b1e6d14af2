package level

import (
	"cmp"
	"slices"

	"github.com/dhconnelly/rtreego"
	"github.com/zyedidia/generic/mapset"

	"github.com/DeclanHarty/CaveGeneration/internal/raster"
)

// FeatureKind distinguishes rooms from tunnels.
type FeatureKind string

const (
	// FeatureRoom marks a room.
	FeatureRoom FeatureKind = "room"
	// FeatureTunnel marks a tunnel.
	FeatureTunnel FeatureKind = "tunnel"
)

// Feature is the carved footprint of one room or tunnel.
type Feature struct {
	Kind  FeatureKind
	Index int

	cells    mapset.Set[raster.Cell]
	min, max raster.Cell
	bounds   rtreego.Rect
}

func newFeature(kind FeatureKind, index int, cells []raster.Cell) *Feature {
	f := &Feature{Kind: kind, Index: index, cells: mapset.New[raster.Cell]()}
	for i, c := range cells {
		if i == 0 {
			f.min, f.max = c, c
		}
		f.min.X, f.min.Y = min(f.min.X, c.X), min(f.min.Y, c.Y)
		f.max.X, f.max.Y = max(f.max.X, c.X), max(f.max.Y, c.Y)
		f.cells.Put(c)
	}
	// Cells are unit squares, so the box always has positive size.
	f.bounds, _ = rtreego.NewRectFromPoints(
		rtreego.Point{float64(f.min.X), float64(f.min.Y)},
		rtreego.Point{float64(f.max.X + 1), float64(f.max.Y + 1)},
	)
	return f
}

// Bounds implements rtreego.Spatial.
func (f *Feature) Bounds() rtreego.Rect {
	return f.bounds
}

// Contains reports whether the feature covers cell (x, y).
func (f *Feature) Contains(x, y int) bool {
	return f.cells.Has(raster.Cell{X: x, Y: y})
}

// Size returns the number of distinct cells in the feature.
func (f *Feature) Size() int {
	return f.cells.Size()
}

// FeatureIndex answers which rooms and tunnels cover a cell or region.
type FeatureIndex struct {
	tree *rtreego.Rtree
}

// NewFeatureIndex returns an empty index.
func NewFeatureIndex() *FeatureIndex {
	return &FeatureIndex{tree: rtreego.NewTree(2, 4, 16)}
}

// Add indexes f. Features with no cells are ignored.
func (ix *FeatureIndex) Add(f *Feature) {
	if f.Size() == 0 {
		return
	}
	ix.tree.Insert(f)
}

// Len returns the number of indexed features.
func (ix *FeatureIndex) Len() int {
	return ix.tree.Size()
}

// At returns the features covering cell (x, y), rooms first, each kind
// ordered by index.
func (ix *FeatureIndex) At(x, y int) []*Feature {
	probe := rtreego.Point{float64(x) + 0.5, float64(y) + 0.5}.ToRect(0.25)

	var out []*Feature
	for _, s := range ix.tree.SearchIntersect(probe) {
		f := s.(*Feature)
		if f.Contains(x, y) {
			out = append(out, f)
		}
	}
	sortFeatures(out)
	return out
}

// Within returns the features whose bounding boxes overlap the cell range
// [lo, hi] inclusive.
func (ix *FeatureIndex) Within(lo, hi raster.Cell) []*Feature {
	box, err := rtreego.NewRectFromPoints(
		rtreego.Point{float64(lo.X), float64(lo.Y)},
		rtreego.Point{float64(hi.X + 1), float64(hi.Y + 1)},
	)
	if err != nil {
		return nil
	}

	var out []*Feature
	for _, s := range ix.tree.SearchIntersect(box) {
		out = append(out, s.(*Feature))
	}
	sortFeatures(out)
	return out
}

func sortFeatures(fs []*Feature) {
	slices.SortFunc(fs, func(a, b *Feature) int {
		if a.Kind != b.Kind {
			if a.Kind == FeatureRoom {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Index, b.Index)
	})
}
