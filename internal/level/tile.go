// Package level assembles rooms and tunnels into a tile grid: it runs the
// full generation pipeline and maps world geometry onto grid cells.
package level

// Tile represents a single map tile.
type Tile rune

const (
	// TileWall represents solid rock.
	TileWall Tile = '#'
	// TileFloor represents carved open space.
	TileFloor Tile = '.'
)

// IsPassable returns true if the tile is open.
func (t Tile) IsPassable() bool {
	return t == TileFloor
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}
