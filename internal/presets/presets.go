package presets

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DeclanHarty/CaveGeneration/internal/config"
)

// ErrUnknownPreset is returned when a preset or palette ID is not registered.
var ErrUnknownPreset = errors.New("presets: unknown preset")

// Preset is a named set of configuration overrides.
type Preset struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Palette     string `json:"palette"`
	// Overrides uses the same keys as the YAML configuration. Only the
	// fields present are changed.
	Overrides json.RawMessage `json:"overrides"`
}

// Apply merges the preset's overrides into c.
func (p *Preset) Apply(c *config.Config) error {
	if len(p.Overrides) == 0 {
		return nil
	}
	if err := json.Unmarshal(p.Overrides, c); err != nil {
		return fmt.Errorf("apply preset %s: %w", p.ID, err)
	}
	return nil
}

// LoadPresets loads preset definitions from the embedded presets.json.
func LoadPresets() ([]Preset, error) {
	return Load[[]Preset]("presets.json")
}

// Registry holds presets and palettes by ID.
type Registry struct {
	presets  []Preset
	palettes []PaletteDef
}

// NewRegistry creates a registry from loaded definitions.
func NewRegistry(presets []Preset, palettes []PaletteDef) *Registry {
	return &Registry{presets: presets, palettes: palettes}
}

// LoadRegistry loads every embedded preset and palette.
func LoadRegistry() (*Registry, error) {
	presets, err := LoadPresets()
	if err != nil {
		return nil, err
	}
	if len(presets) == 0 {
		return nil, errors.New("no presets loaded from presets.json")
	}
	palettes, err := LoadPalettes()
	if err != nil {
		return nil, err
	}
	return NewRegistry(presets, palettes), nil
}

// MustLoadRegistry loads a registry, panicking on error.
func MustLoadRegistry() *Registry {
	registry, err := LoadRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the preset with the given ID, or nil if not found.
func (r *Registry) GetByID(id string) *Preset {
	for i := range r.presets {
		if r.presets[i].ID == id {
			return &r.presets[i]
		}
	}
	return nil
}

// Palette returns the palette with the given ID, or nil if not found.
func (r *Registry) Palette(id string) *PaletteDef {
	for i := range r.palettes {
		if r.palettes[i].ID == id {
			return &r.palettes[i]
		}
	}
	return nil
}

// All returns all presets.
func (r *Registry) All() []Preset {
	return r.presets
}

// Count returns the number of presets.
func (r *Registry) Count() int {
	return len(r.presets)
}

// Apply applies the named preset to c and returns its palette. An empty ID
// leaves c unchanged and returns the first palette.
func (r *Registry) Apply(id string, c *config.Config) (*PaletteDef, error) {
	if id == "" {
		if len(r.palettes) == 0 {
			return nil, fmt.Errorf("%w: no palettes", ErrUnknownPreset)
		}
		return &r.palettes[0], nil
	}

	p := r.GetByID(id)
	if p == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, id)
	}
	if err := p.Apply(c); err != nil {
		return nil, err
	}

	palette := r.Palette(p.Palette)
	if palette == nil {
		return nil, fmt.Errorf("%w: palette %q for preset %q", ErrUnknownPreset, p.Palette, id)
	}
	return palette, nil
}
