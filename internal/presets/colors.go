package presets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// PaletteDef is a palette as stored in palettes.json.
type PaletteDef struct {
	ID         string `json:"id"`
	Wall       string `json:"wall"`
	Floor      string `json:"floor"`
	Site       string `json:"site"`
	Background string `json:"background"`
}

// Colors are the parsed colours of a palette.
type Colors struct {
	Wall       tcell.Color
	Floor      tcell.Color
	Site       tcell.Color
	Background tcell.Color
}

// LoadPalettes loads palette definitions from the embedded palettes.json.
func LoadPalettes() ([]PaletteDef, error) {
	return Load[[]PaletteDef]("palettes.json")
}

// Colors parses every colour of the palette.
func (p *PaletteDef) Colors() (Colors, error) {
	var c Colors
	var err error
	if c.Wall, err = ParseHexColor(p.Wall); err != nil {
		return c, fmt.Errorf("palette %s wall: %w", p.ID, err)
	}
	if c.Floor, err = ParseHexColor(p.Floor); err != nil {
		return c, fmt.Errorf("palette %s floor: %w", p.ID, err)
	}
	if c.Site, err = ParseHexColor(p.Site); err != nil {
		return c, fmt.Errorf("palette %s site: %w", p.ID, err)
	}
	if c.Background, err = ParseHexColor(p.Background); err != nil {
		return c, fmt.Errorf("palette %s background: %w", p.ID, err)
	}
	return c, nil
}

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}

	return tcell.NewHexColor(int32(rgb)), nil
}
