package level

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/DeclanHarty/CaveGeneration/internal/geom"
)

// Snapshot is the serializable form of a level.
type Snapshot struct {
	ID                 string          `json:"id" yaml:"id"`
	Seed               int64           `json:"seed" yaml:"seed"`
	Width              int             `json:"width" yaml:"width"`
	Height             int             `json:"height" yaml:"height"`
	Mapping            Mapping         `json:"mapping" yaml:"mapping"`
	Sites              []geom.Point    `json:"sites" yaml:"sites"`
	TriangulationEdges [][2]int        `json:"triangulation_edges" yaml:"triangulation_edges"`
	TreeEdges          [][2]int        `json:"tree_edges" yaml:"tree_edges"`
	LoopEdges          [][2]int        `json:"loop_edges" yaml:"loop_edges"`
	Rooms              []RoomSummary   `json:"rooms" yaml:"rooms"`
	Tunnels            []TunnelSummary `json:"tunnels" yaml:"tunnels"`
	// Rows are the grid rows, top row first.
	Rows []string `json:"rows" yaml:"rows"`
}

// RoomSummary describes one room in a snapshot.
type RoomSummary struct {
	Index   int          `json:"index" yaml:"index"`
	Site    geom.Point   `json:"site" yaml:"site"`
	Outline []geom.Point `json:"outline,omitempty" yaml:"outline,omitempty"`
	Cells   int          `json:"cells" yaml:"cells"`
}

// TunnelSummary describes one tunnel in a snapshot.
type TunnelSummary struct {
	Edge  [2]int `json:"edge" yaml:"edge"`
	Loop  bool   `json:"loop" yaml:"loop"`
	Quads int    `json:"quads" yaml:"quads"`
	Cells int    `json:"cells" yaml:"cells"`
}

func pairs(keys []geom.EdgeKey) [][2]int {
	out := make([][2]int, len(keys))
	for i, k := range keys {
		out[i] = [2]int{k.A, k.B}
	}
	return out
}

// Snapshot captures the level for export.
func (l *Level) Snapshot() Snapshot {
	s := Snapshot{
		ID:                 l.ID.String(),
		Seed:               l.Seed,
		Width:              l.Width,
		Height:             l.Height,
		Mapping:            l.Mapping,
		Sites:              l.Sites,
		TriangulationEdges: pairs(l.Triangulation),
		TreeEdges:          pairs(l.Tree),
		LoopEdges:          pairs(l.Loops),
		Rows:               l.Rows(),
	}
	for _, r := range l.Rooms {
		s.Rooms = append(s.Rooms, RoomSummary{
			Index:   r.Index,
			Site:    r.Site,
			Outline: r.Outline.Vertices(),
			Cells:   len(r.Cells),
		})
	}
	for _, t := range l.Tunnels {
		s.Tunnels = append(s.Tunnels, TunnelSummary{
			Edge:  [2]int{t.Edge.A, t.Edge.B},
			Loop:  t.Loop,
			Quads: len(t.Quads),
			Cells: len(t.Cells),
		})
	}
	return s
}

// WriteJSON writes the level snapshot as indented JSON.
func (l *Level) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l.Snapshot()); err != nil {
		return fmt.Errorf("encode level json: %w", err)
	}
	return nil
}

// WriteYAML writes the level snapshot as YAML.
func (l *Level) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(l.Snapshot()); err != nil {
		return fmt.Errorf("encode level yaml: %w", err)
	}
	return enc.Close()
}
