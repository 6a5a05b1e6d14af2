// Package cave implements a cellular automaton that grows cave-like blobs
// out of random wall noise.
package cave

import "strings"

// State is the content of one cell.
type State uint8

const (
	// Empty is open floor.
	Empty State = 0
	// Wall is solid rock.
	Wall State = 1
)

// Grid is a fixed-size row-major grid of cell states.
type Grid struct {
	Width  int
	Height int
	cells  []State
}

// NewGrid returns a width x height grid of Empty cells.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		cells:  make([]State, width*height),
	}
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the state at (x, y). Out-of-bounds positions read as Wall.
func (g *Grid) At(x, y int) State {
	if !g.InBounds(x, y) {
		return Wall
	}
	return g.cells[y*g.Width+x]
}

// Set stores s at (x, y). The position must be in bounds.
func (g *Grid) Set(x, y int, s State) {
	g.cells[y*g.Width+x] = s
}

// Paint stores s at (x, y) and reports whether the position was in bounds.
// Out-of-bounds positions are ignored.
func (g *Grid) Paint(x, y int, s State) bool {
	if !g.InBounds(x, y) {
		return false
	}
	g.Set(x, y, s)
	return true
}

// Fill sets every cell to s.
func (g *Grid) Fill(s State) {
	for i := range g.cells {
		g.cells[i] = s
	}
}

// Count returns how many cells hold s.
func (g *Grid) Count(s State) int {
	n := 0
	for _, c := range g.cells {
		if c == s {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of g.
func (g *Grid) Clone() *Grid {
	out := NewGrid(g.Width, g.Height)
	copy(out.cells, g.cells)
	return out
}

// Equal reports whether g and other have the same size and cells.
func (g *Grid) Equal(other *Grid) bool {
	if g.Width != other.Width || g.Height != other.Height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders the grid with '#' for walls and '.' for empty cells. Rows
// go from the highest y down, matching level output.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.Width + 1) * g.Height)
	for y := g.Height - 1; y >= 0; y-- {
		for x := 0; x < g.Width; x++ {
			if g.At(x, y) == Wall {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
