package level

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/DeclanHarty/CaveGeneration/internal/cave"
	"github.com/DeclanHarty/CaveGeneration/internal/config"
	"github.com/DeclanHarty/CaveGeneration/internal/geom"
	"github.com/DeclanHarty/CaveGeneration/internal/graph"
	"github.com/DeclanHarty/CaveGeneration/internal/logger"
	"github.com/DeclanHarty/CaveGeneration/internal/random"
	"github.com/DeclanHarty/CaveGeneration/internal/raster"
	"github.com/DeclanHarty/CaveGeneration/internal/room"
	"github.com/DeclanHarty/CaveGeneration/internal/telemetry"
	"github.com/DeclanHarty/CaveGeneration/internal/tunnel"
)

// Room is one generated room.
type Room struct {
	Index int
	// Site is the room center in world space.
	Site geom.Point
	// Outline is the room polygon in world space. Cave rooms have none.
	Outline geom.Polygon
	// Cells are the in-bounds grid cells the room carved.
	Cells []raster.Cell
}

// Tunnel is one generated tunnel between two room sites.
type Tunnel struct {
	Edge geom.EdgeKey
	// Loop is set for edges added back on top of the spanning tree.
	Loop bool
	// Quads are the ribbon pieces in world space.
	Quads []geom.Polygon
	Cells []raster.Cell
}

// Level is a generated map.
type Level struct {
	ID     uuid.UUID
	Seed   int64
	Width  int
	Height int
	Tiles  [][]Tile

	Mapping Mapping
	Sites   []geom.Point
	// Triangulation, Tree and Loops are undirected edges between site indices.
	Triangulation []geom.EdgeKey
	Tree          []geom.EdgeKey
	Loops         []geom.EdgeKey

	Rooms   []Room
	Tunnels []Tunnel

	index *FeatureIndex
}

// New creates an empty level filled with walls.
func New(width, height int) *Level {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = TileWall
		}
	}

	return &Level{
		ID:     uuid.New(),
		Width:  width,
		Height: height,
		Tiles:  tiles,
		index:  NewFeatureIndex(),
	}
}

// Generate runs the whole pipeline: sample sites, triangulate, build the
// spanning tree, add loops, then carve rooms and tunnels into a grid of
// cfg.Image size.
func Generate(ctx context.Context, cfg *config.Config, rng random.Source) (*Level, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tracer := telemetry.Tracer("level")
	ctx, span := tracer.Start(ctx, "level.generate")
	defer span.End()

	startTime := time.Now()

	l := New(cfg.Image.Width, cfg.Image.Height)
	l.Seed = cfg.Seed
	l.Mapping = NewMapping(cfg.Graph.Bounds, cfg.Image.Width)

	if err := l.buildGraph(ctx, tracer, cfg, rng); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := l.carveRooms(ctx, tracer, cfg, rng); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := l.carveTunnels(ctx, tracer, cfg, rng); err != nil {
		span.RecordError(err)
		return nil, err
	}

	floor := l.FloorCount()
	span.SetAttributes(
		attribute.Int("level.width", l.Width),
		attribute.Int("level.height", l.Height),
		attribute.Int("level.site_count", len(l.Sites)),
		attribute.Int("level.tree_edges", len(l.Tree)),
		attribute.Int("level.loop_edges", len(l.Loops)),
		attribute.Int("level.floor_cells", floor),
		attribute.Int64("level.generation_ms", time.Since(startTime).Milliseconds()),
	)
	logger.Debug("level generated",
		"id", l.ID.String(),
		"seed", l.Seed,
		"sites", len(l.Sites),
		"tree_edges", len(l.Tree),
		"loops", len(l.Loops),
		"floor_cells", floor,
	)
	return l, nil
}

func (l *Level) buildGraph(ctx context.Context, tracer trace.Tracer, cfg *config.Config, rng random.Source) error {
	_, span := tracer.Start(ctx, "level.graph")
	defer span.End()

	l.Sites = graph.SamplePoints(cfg.Graph.Bounds, cfg.Graph.GridScale, rng)

	tri, err := graph.Triangulate(l.Sites)
	if err != nil {
		return fmt.Errorf("triangulate sites: %w", err)
	}
	l.Triangulation = tri.EdgeKeys().Sorted()

	adj, err := graph.BuildAdjacency(tri.Points, tri.Edges)
	if err != nil {
		return fmt.Errorf("build adjacency: %w", err)
	}

	tree := graph.Prim(adj)
	if err := tree.Check(); err != nil {
		logger.Warning("spanning tree is partial", "error", err)
	}
	l.Tree = tree.Edges

	l.Loops = graph.AugmentLoops(tri.EdgeKeys(), tree.EdgeSet(), l.Sites, cfg.Graph.NumberOfLoops, cfg.MaxLoopLength(), rng)
	if len(l.Loops) < cfg.Graph.NumberOfLoops {
		logger.Warning("fewer loops than requested",
			"requested", cfg.Graph.NumberOfLoops,
			"found", len(l.Loops),
		)
	}

	span.SetAttributes(
		attribute.Int("graph.triangulation_edges", len(l.Triangulation)),
		attribute.Int("graph.tree_edges", len(l.Tree)),
		attribute.Int("graph.loop_edges", len(l.Loops)),
	)
	return nil
}

func (l *Level) carveRooms(ctx context.Context, tracer trace.Tracer, cfg *config.Config, rng random.Source) error {
	ctx, span := tracer.Start(ctx, "level.rooms")
	defer span.End()

	rc := cfg.Room
	minR := rc.MinRadius * rc.RoomScale
	maxR := rc.MaxRadius * rc.RoomScale

	l.Rooms = make([]Room, len(l.Sites))
	for i, site := range l.Sites {
		r := Room{Index: i, Site: site}

		switch rc.Shape {
		case config.ShapeCave:
			r.Cells = l.carve(l.caveCells(ctx, site, maxR, cfg.Cave, rng))
		default:
			var outline geom.Polygon
			if rc.Shape == config.ShapeSmooth {
				var err error
				outline, err = room.Smooth(minR, maxR, rc.NumberOfVertices, rc.SmoothingDensity, rng)
				if err != nil {
					return fmt.Errorf("room %d: %w", i, err)
				}
			} else {
				outline = room.Circular(minR, maxR, rc.NumberOfVertices, rng)
			}
			r.Outline = outline.Translate(site)
			r.Cells = l.carve(raster.Fill(l.Mapping.Polygon(r.Outline)))
		}

		l.Rooms[i] = r
		l.index.Add(newFeature(FeatureRoom, i, r.Cells))
	}

	span.SetAttributes(attribute.Int("rooms.count", len(l.Rooms)))
	return nil
}

// caveCells grows a cellular automaton blob inside a disc of radius world
// units around site and returns its open cells in grid space. The site cell
// is always open so tunnels ending there connect.
func (l *Level) caveCells(ctx context.Context, site geom.Point, radius float64, p cave.Params, rng random.Source) []raster.Cell {
	r := l.Mapping.Length(radius)
	size := int(math.Ceil(2 * r))
	if size < 1 {
		size = 1
	}

	g := cave.Seed(size, size, p.Cutoff, rng)
	g = cave.NewGenerator(p).Run(ctx, g, p.Generations)

	center := l.Mapping.Cell(site)
	half := float64(size) / 2
	cells := []raster.Cell{center}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if g.At(x, y) != cave.Empty {
				continue
			}
			dx, dy := float64(x)+0.5-half, float64(y)+0.5-half
			if dx*dx+dy*dy > r*r {
				continue
			}
			cells = append(cells, raster.Cell{X: center.X + x - size/2, Y: center.Y + y - size/2})
		}
	}
	return cells
}

func (l *Level) carveTunnels(ctx context.Context, tracer trace.Tracer, cfg *config.Config, rng random.Source) error {
	_, span := tracer.Start(ctx, "level.tunnels")
	defer span.End()

	gen := tunnel.NewGenerator(cfg.Tunnel)
	edges := make([]Tunnel, 0, len(l.Tree)+len(l.Loops))
	for _, k := range l.Tree {
		edges = append(edges, Tunnel{Edge: k})
	}
	for _, k := range l.Loops {
		edges = append(edges, Tunnel{Edge: k, Loop: true})
	}

	for i := range edges {
		t := &edges[i]
		segment := geom.Edge{P: l.Sites[t.Edge.A], Q: l.Sites[t.Edge.B]}

		quads, err := gen.Generate(segment, rng)
		if err != nil {
			return fmt.Errorf("tunnel %d-%d: %w", t.Edge.A, t.Edge.B, err)
		}
		t.Quads = quads

		var cells []raster.Cell
		for _, q := range quads {
			cells = append(cells, raster.Fill(l.Mapping.Polygon(q))...)
		}
		t.Cells = l.carve(cells)
		l.index.Add(newFeature(FeatureTunnel, i, t.Cells))
	}
	l.Tunnels = edges

	span.SetAttributes(attribute.Int("tunnels.count", len(l.Tunnels)))
	return nil
}

// carve turns cells into floor and returns the ones inside the grid.
// Out-of-bounds cells are dropped.
func (l *Level) carve(cells []raster.Cell) []raster.Cell {
	kept := cells[:0:0]
	for _, c := range cells {
		if !l.InBounds(c.X, c.Y) {
			continue
		}
		l.Tiles[c.Y][c.X] = TileFloor
		kept = append(kept, c)
	}
	return kept
}

// InBounds reports whether (x, y) is a grid position.
func (l *Level) InBounds(x, y int) bool {
	return x >= 0 && x < l.Width && y >= 0 && y < l.Height
}

// IsPassable returns true if the given position is floor.
func (l *Level) IsPassable(x, y int) bool {
	if !l.InBounds(x, y) {
		return false
	}
	return l.Tiles[y][x].IsPassable()
}

// GetTile returns the tile at the given position.
func (l *Level) GetTile(x, y int) Tile {
	if !l.InBounds(x, y) {
		return TileWall
	}
	return l.Tiles[y][x]
}

// FloorCount returns the number of floor tiles.
func (l *Level) FloorCount() int {
	n := 0
	for _, row := range l.Tiles {
		for _, t := range row {
			if t == TileFloor {
				n++
			}
		}
	}
	return n
}

// SiteCell returns the grid cell of room i's site.
func (l *Level) SiteCell(i int) raster.Cell {
	return l.Mapping.Cell(l.Sites[i])
}

// FeaturesAt returns every room and tunnel covering (x, y).
func (l *Level) FeaturesAt(x, y int) []*Feature {
	return l.index.At(x, y)
}

// RoomIndexAt returns the lowest index of a room covering the position, or
// -1 if no room does.
func (l *Level) RoomIndexAt(x, y int) int {
	for _, f := range l.index.At(x, y) {
		if f.Kind == FeatureRoom {
			return f.Index
		}
	}
	return -1
}

// FeaturesWithin returns the rooms and tunnels whose bounds overlap the
// inclusive cell range [lo, hi].
func (l *Level) FeaturesWithin(lo, hi raster.Cell) []*Feature {
	return l.index.Within(lo, hi)
}

// Rows renders the grid one string per row, top row (highest y) first.
func (l *Level) Rows() []string {
	rows := make([]string, 0, l.Height)
	for y := l.Height - 1; y >= 0; y-- {
		var b strings.Builder
		b.Grow(l.Width)
		for _, t := range l.Tiles[y] {
			b.WriteRune(t.Rune())
		}
		rows = append(rows, b.String())
	}
	return rows
}

// String renders the grid as text, top row first.
func (l *Level) String() string {
	return strings.Join(l.Rows(), "\n") + "\n"
}
