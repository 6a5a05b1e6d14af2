package viewer

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/DeclanHarty/CaveGeneration/internal/cave"
	"github.com/DeclanHarty/CaveGeneration/internal/config"
	"github.com/DeclanHarty/CaveGeneration/internal/level"
	"github.com/DeclanHarty/CaveGeneration/internal/logger"
	"github.com/DeclanHarty/CaveGeneration/internal/random"
	"github.com/DeclanHarty/CaveGeneration/internal/telemetry"
	"github.com/DeclanHarty/CaveGeneration/internal/ui"
)

const scrollStep = 4

// Viewer holds the preview state.
type Viewer struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	settings *config.Config
	mode     Mode

	seed      int64
	level     *level.Level
	cave      *cave.Grid
	caveRNG   random.Source
	caveGen   *cave.Generator
	caveSteps int
	showSites bool
	message   string
	running   bool
}

// New creates a viewer on the terminal.
func New(cfg Config) (*Viewer, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen, cfg), nil
}

// NewWithScreen creates a viewer drawing to screen.
func NewWithScreen(screen *ui.Screen, cfg Config) *Viewer {
	return &Viewer{
		screen:    screen,
		renderer:  ui.NewRenderer(screen, cfg.Colors),
		settings:  cfg.Settings,
		mode:      cfg.Mode,
		seed:      cfg.Settings.Seed,
		caveGen:   cave.NewGenerator(cfg.Settings.Cave),
		showSites: true,
		running:   true,
	}
}

// Run executes the preview loop until the user quits.
func (v *Viewer) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("viewer")

	ctx, initSpan := tracer.Start(ctx, "viewer.init")
	err := v.regenerate(ctx)
	initSpan.SetAttributes(
		attribute.String("viewer.mode", v.mode.String()),
		attribute.Int64("viewer.seed", v.seed),
	)
	initSpan.End()
	if err != nil {
		v.screen.Close()
		return err
	}

	for v.running {
		v.render()
		v.handleInput(ctx)
	}

	v.screen.Close()
	return nil
}

// regenerate builds the level and a fresh cave grid for the current seed.
func (v *Viewer) regenerate(ctx context.Context) error {
	cfg := *v.settings
	cfg.Seed = v.seed

	l, err := level.Generate(ctx, &cfg, random.New(v.seed))
	if err != nil {
		return fmt.Errorf("generate level: %w", err)
	}
	v.level = l

	v.caveRNG = random.New(v.seed)
	v.reseedCave()
	v.message = ""
	return nil
}

func (v *Viewer) reseedCave() {
	p := v.settings.Cave
	v.cave = cave.Seed(p.Width, p.Height, p.Cutoff, v.caveRNG)
	v.caveSteps = 0
}

func (v *Viewer) render() {
	switch v.mode {
	case ModeCave:
		v.renderer.RenderCave(v.cave)
	default:
		v.renderer.RenderLevel(v.level, v.showSites)
	}
	v.renderer.RenderStatus(v.status())
}

func (v *Viewer) status() string {
	s := fmt.Sprintf("[%s] seed %d", v.mode, v.seed)
	if v.mode == ModeCave {
		s += fmt.Sprintf("  generation %d", v.caveSteps)
	} else {
		s += fmt.Sprintf("  sites %d  loops %d", len(v.level.Sites), len(v.level.Loops))
	}
	s += "  r:new m:mode space:step n:noise g:sites q:quit"
	if v.message != "" {
		s = v.message + "  " + s
	}
	return s
}

// handleInput processes a single input event.
func (v *Viewer) handleInput(ctx context.Context) {
	ev := v.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		v.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		v.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (v *Viewer) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.running = false

	case tcell.KeyUp:
		v.renderer.Scroll(0, -scrollStep)
	case tcell.KeyDown:
		v.renderer.Scroll(0, scrollStep)
	case tcell.KeyLeft:
		v.renderer.Scroll(-scrollStep, 0)
	case tcell.KeyRight:
		v.renderer.Scroll(scrollStep, 0)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			v.running = false
		case 'r':
			v.seed++
			if err := v.regenerate(ctx); err != nil {
				logger.Error("regenerate failed", "seed", v.seed, "error", err)
				v.message = err.Error()
			}
		case 'm':
			if v.mode == ModeLevel {
				v.mode = ModeCave
			} else {
				v.mode = ModeLevel
			}
		case ' ':
			v.cave = v.caveGen.Run(ctx, v.cave, 1)
			v.caveSteps++
		case 'n':
			v.reseedCave()
		case 'g':
			v.showSites = !v.showSites
		}
	}
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	if v.screen != nil {
		v.screen.Close()
	}
}
