package level

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/DeclanHarty/CaveGeneration/internal/config"
	"github.com/DeclanHarty/CaveGeneration/internal/geom"
	"github.com/DeclanHarty/CaveGeneration/internal/graph"
	"github.com/DeclanHarty/CaveGeneration/internal/presets"
	"github.com/DeclanHarty/CaveGeneration/internal/random"
	"github.com/DeclanHarty/CaveGeneration/internal/raster"
)

func generate(t *testing.T, cfg *config.Config, seed int64) *Level {
	t.Helper()
	cfg.Seed = seed
	l, err := Generate(context.Background(), cfg, random.New(seed))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return l
}

func tinyConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Graph.Bounds = graph.Rect{TopLeft: geom.Pt(0, 20), BottomRight: geom.Pt(20, 0)}
	cfg.Graph.GridScale = 2
	cfg.Graph.NumberOfLoops = 0
	cfg.Room.MinRadius = 1
	cfg.Room.MaxRadius = 2
	cfg.Room.NumberOfVertices = 8
	cfg.Tunnel.RandomDistributionRadius = 0.5
	cfg.Tunnel.MinThickness = 0.75
	cfg.Tunnel.MaxThickness = 1
	cfg.Image.Width = 20
	cfg.Image.Height = 20
	return cfg
}

func TestLevelReproducibility(t *testing.T) {
	seed := int64(12345)

	l1 := generate(t, config.DefaultConfig(), seed)
	l2 := generate(t, config.DefaultConfig(), seed)

	if len(l1.Sites) != len(l2.Sites) {
		t.Fatalf("Site count mismatch: %d != %d", len(l1.Sites), len(l2.Sites))
	}
	for i := range l1.Sites {
		if l1.Sites[i] != l2.Sites[i] {
			t.Errorf("Site %d mismatch: %v != %v", i, l1.Sites[i], l2.Sites[i])
		}
	}

	for y := 0; y < l1.Height; y++ {
		for x := 0; x < l1.Width; x++ {
			if l1.Tiles[y][x] != l2.Tiles[y][x] {
				t.Fatalf("Tile mismatch at (%d,%d): %c != %c", x, y, l1.Tiles[y][x], l2.Tiles[y][x])
			}
		}
	}

	if l1.ID == l2.ID {
		t.Error("Each level should get its own ID")
	}
}

func TestLevelDifferentSeeds(t *testing.T) {
	l1 := generate(t, config.DefaultConfig(), 12345)
	l2 := generate(t, config.DefaultConfig(), 54321)

	if l1.String() == l2.String() {
		t.Error("Levels with different seeds should not be identical")
	}
}

func TestLevelTiny(t *testing.T) {
	l := generate(t, tinyConfig(), 7)

	if len(l.Sites) != 4 {
		t.Fatalf("Expected 4 sites, got %d", len(l.Sites))
	}
	if len(l.Tree) != 3 {
		t.Errorf("Expected 3 tree edges, got %d", len(l.Tree))
	}
	if len(l.Loops) != 0 {
		t.Errorf("Expected no loops, got %d", len(l.Loops))
	}
	if len(l.Tunnels) != 3 {
		t.Errorf("Expected 3 tunnels, got %d", len(l.Tunnels))
	}
	if len(l.Rooms) != 4 {
		t.Errorf("Expected 4 rooms, got %d", len(l.Rooms))
	}

	for i := range l.Sites {
		c := l.SiteCell(i)
		if !l.IsPassable(c.X, c.Y) {
			t.Errorf("Site %d cell (%d,%d) should be floor", i, c.X, c.Y)
		}
	}
}

func TestLevelTunnelOrder(t *testing.T) {
	cfg := config.DefaultConfig()
	l := generate(t, cfg, 99)

	if len(l.Tunnels) != len(l.Tree)+len(l.Loops) {
		t.Fatalf("Expected %d tunnels, got %d", len(l.Tree)+len(l.Loops), len(l.Tunnels))
	}
	for i, tun := range l.Tunnels {
		wantLoop := i >= len(l.Tree)
		if tun.Loop != wantLoop {
			t.Errorf("Tunnel %d: Loop = %v, want %v", i, tun.Loop, wantLoop)
		}
		if len(tun.Quads) == 0 {
			t.Errorf("Tunnel %d has no quads", i)
		}
	}
	for _, k := range l.Loops {
		d := l.Sites[k.A].Dist(l.Sites[k.B])
		if d > cfg.MaxLoopLength() {
			t.Errorf("Loop %v has length %.2f over cap %.2f", k, d, cfg.MaxLoopLength())
		}
	}
}

// reachable flood fills floor tiles from start with 8-connectivity.
func reachable(l *Level, start raster.Cell) map[raster.Cell]bool {
	seen := map[raster.Cell]bool{start: true}
	queue := []raster.Cell{start}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				n := raster.Cell{X: c.X + dx, Y: c.Y + dy}
				if seen[n] || !l.IsPassable(n.X, n.Y) {
					continue
				}
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return seen
}

func TestLevelConnectivity(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		cfg := config.DefaultConfig()
		cfg.Tunnel.RandomDistributionRadius = 1
		cfg.Tunnel.MinThickness = 2
		cfg.Tunnel.MaxThickness = 3
		l := generate(t, cfg, seed)

		seen := reachable(l, l.SiteCell(0))
		for i := range l.Sites {
			if !seen[l.SiteCell(i)] {
				t.Errorf("seed %d: site %d not reachable from site 0", seed, i)
			}
		}
	}
}

func TestLevelFeatures(t *testing.T) {
	l := generate(t, config.DefaultConfig(), 42)

	for i := range l.Sites {
		c := l.SiteCell(i)
		found := false
		for _, f := range l.FeaturesAt(c.X, c.Y) {
			if f.Kind == FeatureRoom && f.Index == i {
				found = true
			}
		}
		if !found {
			t.Errorf("Room %d should cover its site cell (%d,%d)", i, c.X, c.Y)
		}
		if got := l.RoomIndexAt(c.X, c.Y); got < 0 || got > i {
			t.Errorf("RoomIndexAt(site %d) = %d, want a room index <= %d", i, got, i)
		}
	}

	// Every floor cell belongs to some feature.
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if l.IsPassable(x, y) && len(l.FeaturesAt(x, y)) == 0 {
				t.Fatalf("Floor cell (%d,%d) has no feature", x, y)
			}
		}
	}

	all := l.FeaturesWithin(raster.Cell{X: 0, Y: 0}, raster.Cell{X: l.Width - 1, Y: l.Height - 1})
	if len(all) != l.index.Len() {
		t.Errorf("FeaturesWithin(whole grid) = %d features, want %d", len(all), l.index.Len())
	}
}

func TestLevelCaveRooms(t *testing.T) {
	cfg := tinyConfig()
	cfg.Room.Shape = config.ShapeCave
	cfg.Room.MinRadius = 2
	cfg.Room.MaxRadius = 4
	l := generate(t, cfg, 5)

	for _, r := range l.Rooms {
		if len(r.Cells) == 0 {
			t.Errorf("Cave room %d carved nothing", r.Index)
		}
		if r.Outline != nil {
			t.Errorf("Cave room %d should have no outline", r.Index)
		}
	}
}

func TestLevelSmoothRooms(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Room.Shape = config.ShapeSmooth
	l := generate(t, cfg, 11)

	for _, r := range l.Rooms {
		if len(r.Outline) < cfg.Room.NumberOfVertices {
			t.Errorf("Smooth room %d has %d edges, want at least %d", r.Index, len(r.Outline), cfg.Room.NumberOfVertices)
		}
		if !r.Outline.IsClosed() {
			t.Errorf("Smooth room %d outline is not closed", r.Index)
		}
	}
}

func TestLevelPresets(t *testing.T) {
	registry := presets.MustLoadRegistry()
	for _, p := range registry.All() {
		t.Run(p.ID, func(t *testing.T) {
			cfg := config.DefaultConfig()
			if _, err := registry.Apply(p.ID, cfg); err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			l := generate(t, cfg, 21)
			if l.FloorCount() == 0 {
				t.Error("Level should carve some floor")
			}
		})
	}
}

func TestLevelInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Graph.GridScale = 1

	_, err := Generate(context.Background(), cfg, random.New(1))
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestCarveDropsOutOfBounds(t *testing.T) {
	l := New(4, 3)
	kept := l.carve([]raster.Cell{{X: 0, Y: 0}, {X: -1, Y: 1}, {X: 3, Y: 2}, {X: 4, Y: 0}, {X: 1, Y: 3}})

	if len(kept) != 2 {
		t.Fatalf("Expected 2 cells kept, got %d", len(kept))
	}
	if l.FloorCount() != 2 {
		t.Errorf("Expected 2 floor tiles, got %d", l.FloorCount())
	}
	if l.GetTile(-1, 1) != TileWall {
		t.Error("Out of bounds should read as wall")
	}
}

func TestLevelRows(t *testing.T) {
	l := New(3, 2)
	l.carve([]raster.Cell{{X: 0, Y: 0}, {X: 2, Y: 1}})

	want := "##.\n.##\n"
	if got := l.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestMapping(t *testing.T) {
	m := NewMapping(graph.Rect{TopLeft: geom.Pt(-10, 10), BottomRight: geom.Pt(10, -10)}, 40)

	if m.Scale != 2 {
		t.Fatalf("Scale = %v, want 2", m.Scale)
	}
	tests := []struct {
		p    geom.Point
		want raster.Cell
	}{
		{geom.Pt(-10, -10), raster.Cell{X: 0, Y: 0}},
		{geom.Pt(0, 0), raster.Cell{X: 20, Y: 20}},
		{geom.Pt(-9.75, -9.25), raster.Cell{X: 0, Y: 2}},
		{geom.Pt(10, 10), raster.Cell{X: 40, Y: 40}},
	}
	for _, tt := range tests {
		if got := m.Cell(tt.p); got != tt.want {
			t.Errorf("Cell(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestFeatureIndex(t *testing.T) {
	ix := NewFeatureIndex()
	ix.Add(newFeature(FeatureTunnel, 0, []raster.Cell{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}}))
	ix.Add(newFeature(FeatureRoom, 3, []raster.Cell{{X: 2, Y: 1}, {X: 2, Y: 2}}))
	ix.Add(newFeature(FeatureRoom, 1, []raster.Cell{{X: 5, Y: 5}}))
	ix.Add(newFeature(FeatureRoom, 9, nil))

	if ix.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", ix.Len())
	}

	got := ix.At(2, 1)
	if len(got) != 2 || got[0].Kind != FeatureRoom || got[1].Kind != FeatureTunnel {
		t.Fatalf("At(2,1) should return the room then the tunnel, got %v", got)
	}
	if len(ix.At(1, 2)) != 0 {
		t.Error("At(1,2) lies in a bounding box but outside every feature")
	}

	within := ix.Within(raster.Cell{X: 3, Y: 3}, raster.Cell{X: 6, Y: 6})
	if len(within) != 1 || within[0].Index != 1 {
		t.Errorf("Within should find only room 1, got %v", within)
	}
}

func TestSnapshotExport(t *testing.T) {
	l := generate(t, tinyConfig(), 3)

	var buf bytes.Buffer
	if err := l.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var s Snapshot
	if err := json.Unmarshal(buf.Bytes(), &s); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if s.ID != l.ID.String() || s.Seed != 3 {
		t.Errorf("Snapshot header mismatch: %s/%d", s.ID, s.Seed)
	}
	if len(s.Rows) != l.Height || len(s.Rows[0]) != l.Width {
		t.Errorf("Rows should be %dx%d", l.Width, l.Height)
	}
	if len(s.TreeEdges) != len(l.Tree) {
		t.Errorf("TreeEdges = %d, want %d", len(s.TreeEdges), len(l.Tree))
	}

	buf.Reset()
	if err := l.WriteYAML(&buf); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}
	if !strings.Contains(buf.String(), "tree_edges:") {
		t.Error("YAML output should contain tree_edges")
	}
}
