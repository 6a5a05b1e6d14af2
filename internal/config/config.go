// Package config holds generator settings loaded from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/DeclanHarty/CaveGeneration/internal/cave"
	"github.com/DeclanHarty/CaveGeneration/internal/geom"
	"github.com/DeclanHarty/CaveGeneration/internal/graph"
	"github.com/DeclanHarty/CaveGeneration/internal/tunnel"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// RoomShape selects how room outlines are generated.
type RoomShape string

const (
	// ShapeCircular is a ragged polygon with a random radius per vertex.
	ShapeCircular RoomShape = "circular"
	// ShapeSmooth resamples the circular outline along a closed spline.
	ShapeSmooth RoomShape = "smooth"
	// ShapeCave stamps a cellular automaton blob at the room site.
	ShapeCave RoomShape = "cave"
)

// Config is the full generator configuration.
type Config struct {
	// Seed drives every random draw. Zero means pick one at startup.
	Seed      int64           `yaml:"seed" json:"seed"`
	Graph     GraphConfig     `yaml:"graph" json:"graph"`
	Room      RoomConfig      `yaml:"room" json:"room"`
	Tunnel    tunnel.Params   `yaml:"tunnel" json:"tunnel"`
	Image     ImageConfig     `yaml:"image" json:"image"`
	Cave      cave.Params     `yaml:"cave" json:"cave"`
	Telemetry TelemetryConfig `yaml:"telemetry" json:"telemetry"`
}

// GraphConfig controls site sampling and connectivity.
type GraphConfig struct {
	Bounds graph.Rect `yaml:"bounds" json:"bounds"`
	// GridScale is the number of sampling cells per side.
	GridScale int `yaml:"grid_scale" json:"grid_scale"`
	// NumberOfLoops is how many non-tree edges to add back.
	NumberOfLoops int `yaml:"number_of_loops" json:"number_of_loops"`
	// MaxEdgeDistanceToCellSizeRatio caps loop edge length in cell sizes.
	MaxEdgeDistanceToCellSizeRatio float64 `yaml:"max_edge_distance_to_cell_size_ratio" json:"max_edge_distance_to_cell_size_ratio"`
}

// RoomConfig controls room outlines.
type RoomConfig struct {
	Shape            RoomShape `yaml:"shape" json:"shape"`
	MinRadius        float64   `yaml:"min_radius" json:"min_radius"`
	MaxRadius        float64   `yaml:"max_radius" json:"max_radius"`
	NumberOfVertices int       `yaml:"number_of_vertices" json:"number_of_vertices"`
	// RoomScale multiplies both radii.
	RoomScale float64 `yaml:"room_scale" json:"room_scale"`
	// SmoothingDensity is vertices per unit of outline length for smooth rooms.
	SmoothingDensity float64 `yaml:"smoothing_density" json:"smoothing_density"`
}

// ImageConfig is the size of the output grid in cells.
type ImageConfig struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// TelemetryConfig toggles trace export.
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

// DefaultConfig returns settings that produce a 5x5 site level on a
// 100x100 cell grid.
func DefaultConfig() *Config {
	return &Config{
		Graph: GraphConfig{
			Bounds: graph.Rect{
				TopLeft:     geom.Pt(0, 100),
				BottomRight: geom.Pt(100, 0),
			},
			GridScale:                      5,
			NumberOfLoops:                  3,
			MaxEdgeDistanceToCellSizeRatio: 1.5,
		},
		Room: RoomConfig{
			Shape:            ShapeCircular,
			MinRadius:        4,
			MaxRadius:        8,
			NumberOfVertices: 12,
			RoomScale:        1,
			SmoothingDensity: 1,
		},
		Tunnel: tunnel.Params{
			ResolutionPerUnit:        0.25,
			SplineUpscale:            4,
			RandomDistributionRadius: 3,
			MinThickness:             1,
			MaxThickness:             2,
		},
		Image: ImageConfig{
			Width:  100,
			Height: 100,
		},
		Cave: cave.Params{
			Width:        80,
			Height:       40,
			Cutoff:       0.45,
			Generations:  5,
			Workers:      1,
			BorderPolicy: cave.SolidBorder,
		},
	}
}

// LoadConfig loads configuration from a YAML file over the defaults and
// applies environment overrides. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, config); err != nil {
				return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return config, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := config.applyEnv(); err != nil {
		return config, err
	}
	return config, nil
}

func (c *Config) applyEnv() error {
	if seed := os.Getenv("CAVEGEN_SEED"); seed != "" {
		v, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return fmt.Errorf("CAVEGEN_SEED: %w", err)
		}
		c.Seed = v
	}
	return nil
}

// CellSize returns the side of one sampling cell in world units.
func (c *Config) CellSize() float64 {
	return c.Graph.Bounds.CellSize(c.Graph.GridScale)
}

// MaxLoopLength returns the longest loop edge allowed.
func (c *Config) MaxLoopLength() float64 {
	return c.Graph.MaxEdgeDistanceToCellSizeRatio * c.CellSize()
}

// Validate checks the preconditions the generators rely on.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Graph.GridScale >= 2, "graph.grid_scale must be at least 2, got %d", c.Graph.GridScale)
	check(c.Graph.Bounds.Width() > 0, "graph.bounds must have a positive width")
	check(c.Graph.NumberOfLoops >= 0, "graph.number_of_loops must not be negative")

	switch c.Room.Shape {
	case ShapeCircular, ShapeSmooth, ShapeCave:
	default:
		errs = append(errs, fmt.Errorf("room.shape %q is not one of circular, smooth, cave", c.Room.Shape))
	}
	check(c.Room.MinRadius > 0, "room.min_radius must be positive")
	check(c.Room.MaxRadius >= c.Room.MinRadius, "room.max_radius must be at least room.min_radius")
	check(c.Room.NumberOfVertices >= 3, "room.number_of_vertices must be at least 3, got %d", c.Room.NumberOfVertices)
	check(c.Room.RoomScale > 0, "room.room_scale must be positive")
	check(c.Room.Shape != ShapeSmooth || c.Room.SmoothingDensity > 0, "room.smoothing_density must be positive for smooth rooms")

	check(c.Tunnel.ResolutionPerUnit > 0, "tunnel.resolution_per_unit must be positive")
	check(c.Tunnel.SplineUpscale > 0, "tunnel.spline_upscale must be positive")
	check(c.Tunnel.RandomDistributionRadius >= 0, "tunnel.random_distribution_radius must not be negative")
	check(c.Tunnel.MinThickness > 0, "tunnel.min_thickness must be positive")
	check(c.Tunnel.MaxThickness >= c.Tunnel.MinThickness, "tunnel.max_thickness must be at least tunnel.min_thickness")

	check(c.Image.Width > 0 && c.Image.Height > 0, "image size must be positive, got %dx%d", c.Image.Width, c.Image.Height)

	check(c.Cave.Width > 0 && c.Cave.Height > 0, "cave size must be positive, got %dx%d", c.Cave.Width, c.Cave.Height)
	check(c.Cave.Cutoff >= 0 && c.Cave.Cutoff <= 1, "cave.cutoff must be in [0,1], got %v", c.Cave.Cutoff)
	check(c.Cave.Generations >= 0, "cave.generations must not be negative")

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
