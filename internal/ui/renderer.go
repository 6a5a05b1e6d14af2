package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/DeclanHarty/CaveGeneration/internal/cave"
	"github.com/DeclanHarty/CaveGeneration/internal/level"
	"github.com/DeclanHarty/CaveGeneration/internal/presets"
)

// SiteRune marks a room site.
const SiteRune = '*'

// Renderer draws levels and cave grids. Grid y grows upward, so the highest
// row is drawn at the top of the screen. The bottom screen line is kept for
// the status message.
type Renderer struct {
	screen *Screen
	colors presets.Colors

	// OffsetX and OffsetY scroll the view in grid cells. OffsetY counts rows
	// down from the top of the grid.
	OffsetX int
	OffsetY int
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, colors presets.Colors) *Renderer {
	return &Renderer{screen: screen, colors: colors}
}

// SetColors switches the palette.
func (r *Renderer) SetColors(colors presets.Colors) {
	r.colors = colors
}

// Scroll moves the view, never past the top-left corner.
func (r *Renderer) Scroll(dx, dy int) {
	r.OffsetX = max(r.OffsetX+dx, 0)
	r.OffsetY = max(r.OffsetY+dy, 0)
}

// toScreen maps a grid position to a screen position.
func (r *Renderer) toScreen(x, y, gridHeight int) (int, int) {
	return x - r.OffsetX, gridHeight - 1 - y - r.OffsetY
}

// viewport is the drawable area above the status line.
func (r *Renderer) viewport() (int, int) {
	w, h := r.screen.Size()
	return w, max(h-1, 0)
}

func (r *Renderer) style(fg tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fg).Background(r.colors.Background)
}

// RenderLevel draws the level tiles and, optionally, its room sites.
func (r *Renderer) RenderLevel(l *level.Level, showSites bool) {
	r.screen.Clear()
	w, h := r.viewport()

	wall := r.style(r.colors.Wall)
	floor := r.style(r.colors.Floor)
	for sy := 0; sy < h; sy++ {
		y := l.Height - 1 - (sy + r.OffsetY)
		if y < 0 {
			break
		}
		for sx := 0; sx < w; sx++ {
			x := sx + r.OffsetX
			if x >= l.Width {
				break
			}
			tile := l.GetTile(x, y)
			style := wall
			if tile.IsPassable() {
				style = floor
			}
			r.screen.SetContent(sx, sy, tile.Rune(), style)
		}
	}

	if !showSites {
		return
	}
	site := r.style(r.colors.Site).Bold(true)
	for i := range l.Sites {
		c := l.SiteCell(i)
		sx, sy := r.toScreen(c.X, c.Y, l.Height)
		if sx < 0 || sx >= w || sy < 0 || sy >= h {
			continue
		}
		r.screen.SetContent(sx, sy, SiteRune, site)
	}
}

// RenderCave draws a cellular automaton grid.
func (r *Renderer) RenderCave(g *cave.Grid) {
	r.screen.Clear()
	w, h := r.viewport()

	wall := r.style(r.colors.Wall)
	floor := r.style(r.colors.Floor)
	for sy := 0; sy < h; sy++ {
		y := g.Height - 1 - (sy + r.OffsetY)
		if y < 0 {
			break
		}
		for sx := 0; sx < w; sx++ {
			x := sx + r.OffsetX
			if x >= g.Width {
				break
			}
			if g.At(x, y) == cave.Wall {
				r.screen.SetContent(sx, sy, rune(level.TileWall), wall)
			} else {
				r.screen.SetContent(sx, sy, rune(level.TileFloor), floor)
			}
		}
	}
}

// RenderStatus writes msg on the bottom line and flushes the screen.
func (r *Renderer) RenderStatus(msg string) {
	_, h := r.screen.Size()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	i := 0
	for _, ch := range msg {
		r.screen.SetContent(i, h-1, ch, style)
		i++
	}
	r.screen.Show()
}
