package cave

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/DeclanHarty/CaveGeneration/internal/random"
	"github.com/DeclanHarty/CaveGeneration/internal/telemetry"
)

// BorderPolicy decides how neighbours outside the grid are counted.
type BorderPolicy struct {
	// OutOfBoundsIsWall counts off-grid neighbours as walls. When false they
	// count as nothing.
	OutOfBoundsIsWall bool `json:"out_of_bounds_is_wall" yaml:"out_of_bounds_is_wall"`
	// BorderIsWall makes any cell with an off-grid neighbour see a full count
	// of 8, keeping the outer ring solid. Only applies with OutOfBoundsIsWall.
	BorderIsWall bool `json:"border_is_wall" yaml:"border_is_wall"`
}

// SolidBorder is the default policy: the grid edge behaves as solid rock.
var SolidBorder = BorderPolicy{OutOfBoundsIsWall: true, BorderIsWall: true}

// Params configures a cave run.
type Params struct {
	Width       int     `json:"width" yaml:"width"`
	Height      int     `json:"height" yaml:"height"`
	Cutoff      float64 `json:"cutoff" yaml:"cutoff"`
	Generations int     `json:"generations" yaml:"generations"`
	Workers     int     `json:"workers" yaml:"workers"`

	BorderPolicy `yaml:",inline"`
}

var moore = [8][2]int{
	{0, 1}, {0, -1}, {-1, 0}, {1, 0},
	{1, 1}, {-1, -1}, {1, -1}, {-1, 1},
}

// Seed returns a grid where each cell is independently Wall with
// probability cutoff.
func Seed(width, height int, cutoff float64, rng random.Source) *Grid {
	g := NewGrid(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if rng.Uniform(0, 1) < cutoff {
				g.Set(x, y, Wall)
			}
		}
	}
	return g
}

// StaticNoise returns width*height uniform samples in [0, 1), row-major.
func StaticNoise(width, height int, rng random.Source) []float64 {
	noise := make([]float64, width*height)
	for i := range noise {
		noise[i] = rng.Uniform(0, 1)
	}
	return noise
}

// Threshold converts row-major noise into a grid, marking samples below
// cutoff as Wall.
func Threshold(noise []float64, width, height int, cutoff float64) *Grid {
	g := NewGrid(width, height)
	for i, v := range noise {
		if v < cutoff {
			g.cells[i] = Wall
		}
	}
	return g
}

// WallNeighbors counts Wall cells in the Moore neighbourhood of (x, y).
func WallNeighbors(g *Grid, x, y int, policy BorderPolicy) int {
	walls := 0
	for _, d := range moore {
		nx, ny := x+d[0], y+d[1]
		if !g.InBounds(nx, ny) {
			if !policy.OutOfBoundsIsWall {
				continue
			}
			if policy.BorderIsWall {
				return 8
			}
			walls++
			continue
		}
		if g.cells[ny*g.Width+nx] == Wall {
			walls++
		}
	}
	return walls
}

// Rule applies the cave ruleset: a wall with at least 4 wall neighbours
// survives, an empty cell with at least 5 becomes wall, anything else is
// empty.
func Rule(s State, walls int) State {
	switch {
	case s == Wall && walls >= 4:
		return Wall
	case s == Empty && walls >= 5:
		return Wall
	default:
		return Empty
	}
}

// Step runs one generation and returns a new grid. g is not modified.
func Step(g *Grid, policy BorderPolicy) *Grid {
	next := NewGrid(g.Width, g.Height)
	stepRows(g, next, policy, 0, g.Height)
	return next
}

// StepParallel is Step with rows split across workers goroutines.
func StepParallel(g *Grid, policy BorderPolicy, workers int) *Grid {
	if workers <= 1 || g.Height < 2 {
		return Step(g, policy)
	}
	workers = min(workers, g.Height)

	next := NewGrid(g.Width, g.Height)
	rows := (g.Height + workers - 1) / workers

	var wg sync.WaitGroup
	for from := 0; from < g.Height; from += rows {
		to := min(from+rows, g.Height)
		wg.Add(1)
		go func(from, to int) {
			defer wg.Done()
			stepRows(g, next, policy, from, to)
		}(from, to)
	}
	wg.Wait()
	return next
}

func stepRows(src, dst *Grid, policy BorderPolicy, from, to int) {
	for y := from; y < to; y++ {
		for x := 0; x < src.Width; x++ {
			i := y*src.Width + x
			dst.cells[i] = Rule(src.cells[i], WallNeighbors(src, x, y, policy))
		}
	}
}

// Generator runs a configured number of generations.
type Generator struct {
	Policy  BorderPolicy
	Workers int
}

// NewGenerator returns a generator using the policy and worker count in p.
func NewGenerator(p Params) *Generator {
	return &Generator{Policy: p.BorderPolicy, Workers: p.Workers}
}

// Run applies n generations to g and returns the final grid.
func (gen *Generator) Run(ctx context.Context, g *Grid, n int) *Grid {
	_, span := telemetry.Tracer("cave").Start(ctx, "cave.run")
	defer span.End()

	for i := 0; i < n; i++ {
		g = StepParallel(g, gen.Policy, gen.Workers)
	}

	span.SetAttributes(
		attribute.Int("cave.width", g.Width),
		attribute.Int("cave.height", g.Height),
		attribute.Int("cave.generations", n),
		attribute.Int("cave.wall_cells", g.Count(Wall)),
	)
	return g
}

// Generate seeds a grid from p and runs p.Generations passes over it.
func Generate(ctx context.Context, p Params, rng random.Source) *Grid {
	g := Seed(p.Width, p.Height, p.Cutoff, rng)
	return NewGenerator(p).Run(ctx, g, p.Generations)
}
