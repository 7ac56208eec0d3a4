// Package viewer provides an interactive terminal front end for the
// generator: it renders generated grids, regenerates on demand, and lets the
// user inspect individual cells.
package viewer

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tilewave/internal/telemetry"
	"github.com/samdwyer/tilewave/internal/tileset"
	"github.com/samdwyer/tilewave/internal/ui"
	"github.com/samdwyer/tilewave/internal/wfc"
)

// Viewer holds the interactive session state.
type Viewer struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	def      *tileset.TilesetDef
	cfg      wfc.Config
	result   wfc.Result
	cursorX  int
	cursorY  int
	running  bool
}

// New creates a viewer for the given tileset and generation config.
func New(def *tileset.TilesetDef, cfg wfc.Config) (*Viewer, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	return &Viewer{
		screen:   screen,
		renderer: ui.NewRenderer(screen, def),
		def:      def,
		cfg:      cfg,
		running:  true,
	}, nil
}

// Run executes the interactive loop: generate, render, handle input.
// Controls: arrow keys move the cursor, n generates with the next seed,
// r re-runs the current seed, q or Escape quits.
func (v *Viewer) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("viewer")
	ctx, span := tracer.Start(ctx, "viewer.run")
	defer span.End()

	v.regenerate(ctx)
	span.SetAttributes(
		attribute.Int("viewer.width", v.cfg.Width),
		attribute.Int("viewer.height", v.cfg.Height),
		attribute.Int64("viewer.seed", v.cfg.Seed),
	)

	for v.running {
		v.render()
		v.handleInput(ctx)
	}

	v.screen.Close()
	return nil
}

// Close cleans up terminal resources.
func (v *Viewer) Close() {
	if v.screen != nil {
		v.screen.Close()
	}
}

// regenerate runs the harness with the current config and resets the cursor.
func (v *Viewer) regenerate(ctx context.Context) {
	v.result = wfc.Generate(ctx, v.cfg)
	v.cursorX, v.cursorY = 0, 0
}

func (v *Viewer) render() {
	if !v.result.Success {
		v.screen.Clear()
		v.renderer.RenderStatus(
			fmt.Sprintf("generation failed for seed %d - press n to try the next seed, q to quit", v.cfg.Seed), 0)
		return
	}

	grid := v.result.Grid
	v.renderer.Render(grid, v.cursorX, v.cursorY)

	tileName := "?"
	if def := v.def.TileByID(grid.At(v.cursorX, v.cursorY)); def != nil {
		tileName = def.Name
	}
	v.renderer.RenderStatus(
		fmt.Sprintf("seed %d | retries %d | %s | hash %016x | (%d,%d) %s | n:next r:rerun q:quit",
			v.cfg.Seed, v.result.Retries, v.result.Elapsed.Round(time.Millisecond),
			grid.Hash(), v.cursorX, v.cursorY, tileName),
		grid.Height)
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
		v.moveCursor(0, -1)
	case tcell.KeyDown:
		v.moveCursor(0, 1)
	case tcell.KeyLeft:
		v.moveCursor(-1, 0)
	case tcell.KeyRight:
		v.moveCursor(1, 0)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			v.running = false
		case 'n', 'N':
			v.cfg.Seed++
			v.regenerate(ctx)
		case 'r', 'R':
			v.regenerate(ctx)
		}
	}
}

// moveCursor shifts the inspection cursor, clamped to the grid.
func (v *Viewer) moveCursor(dx, dy int) {
	if !v.result.Success {
		return
	}
	x, y := v.cursorX+dx, v.cursorY+dy
	if v.result.Grid.InBounds(x, y) {
		v.cursorX, v.cursorY = x, y
	}
}
