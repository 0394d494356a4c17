//go:build ebiten

package app

import (
	"fmt"
	"log/slog"
	"time"

	"plum-bloom/internal/core"
	"plum-bloom/internal/export"
	"plum-bloom/internal/palette"
	"plum-bloom/internal/render"
	"plum-bloom/internal/scheduler"
	"plum-bloom/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 260

var actionKeys = map[ebiten.Key]rune{
	ebiten.KeyR: 'r',
	ebiten.KeyP: 'p',
	ebiten.KeyC: 'c',
	ebiten.KeyT: 't',
	ebiten.KeyF: 'f',
	ebiten.KeyM: 'm',
	ebiten.KeyO: 'o',
	ebiten.KeyH: 'h',
	ebiten.KeyS: 's',
	ebiten.KeyQ: 'q',
}

// Game adapts the growth scheduler to the ebiten.Game interface.
type Game struct {
	sched   *scheduler.Scheduler
	canvas  *render.Canvas
	painter *render.LayerPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	log     *slog.Logger

	outDir string
	size   core.Size
}

// New constructs a Game drawing settings onto a canvas of the configured size
// and seeds the first generation.
func New(cfg *Config, settings scheduler.Settings, logger *slog.Logger) (*Game, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	size := cfg.Size()
	canvas := render.NewCanvas(size.W, size.H)
	sched, err := scheduler.New(canvas, canvas.Size(), settings, scheduler.Options{Seed: cfg.Seed, Logger: logger})
	if err != nil {
		return nil, err
	}
	if err := sched.Seed(); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return &Game{
		sched:   sched,
		canvas:  canvas,
		painter: render.NewLayerPainter(size.W, size.H),
		hud:     ui.NewHUD(sched, hudWidth),
		overlay: ui.NewOverlay(),
		log:     logger,
		outDir:  cfg.OutDir,
		size:    canvas.Size(),
	}, nil
}

// Close stops the scheduler and releases the canvas.
func (g *Game) Close() error {
	g.sched.Close()
	return g.canvas.Close()
}

// Update handles input and runs one scheduler frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for key, r := range actionKeys {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		if !g.handle(KeyAction(r)) {
			return ebiten.Termination
		}
	}

	clicked := g.hud.Update(g.size.W - g.hud.Width())
	mx, my := ebiten.CursorPosition()
	p := core.Point{X: float64(mx), Y: float64(my)}
	switch {
	case clicked || g.hud.Contains(mx, my):
	case g.size.Contains(p):
		g.sched.SetPointer(p)
	default:
		g.sched.ClearPointer()
	}

	g.overlay.Update(float32(1.0 / float64(ebiten.TPS())))
	g.sched.Tick()
	return nil
}

// handle runs a; it returns false when the game should exit.
func (g *Game) handle(a Action) bool {
	if msg, ok := Perform(g.sched, a); ok {
		g.overlay.Toast.Show(msg)
		return true
	}
	switch a {
	case ActionQuit:
		return false
	case ActionToggleHUD:
		g.hud.Visible = !g.hud.Visible
	case ActionToggleOverlay:
		g.overlay.ShowFlow = !g.overlay.ShowFlow
		g.overlay.Toast.Show("flow overlay " + onOff(g.overlay.ShowFlow))
	case ActionSnapshot:
		g.snapshot()
	}
	return true
}

func (g *Game) snapshot() {
	st := g.sched.Settings()
	path, err := export.WriteSnapshot(g.outDir, SnapshotLabel(st), g.canvas.Image(), palette.Background(st.Theme()), time.Now())
	if err != nil {
		g.log.Warn("snapshot failed", "err", err)
		g.overlay.Toast.Show("snapshot failed")
		return
	}
	g.log.Info("snapshot saved", "path", path)
	g.overlay.Toast.Show("saved " + path)
}

// Draw renders the canvas, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	bg := palette.Background(g.sched.Settings().Theme())
	g.painter.Blit(screen, g.canvas, bg)
	g.overlay.Draw(screen, g.sched.PointerField())
	g.hud.Draw(screen)
}

// Layout follows the window size; a new size restarts the drawing.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 &&
		(outsideWidth != g.size.W || outsideHeight != g.size.H) {
		if err := g.sched.Resize(outsideWidth, outsideHeight); err != nil {
			g.log.Warn("resize failed", "w", outsideWidth, "h", outsideHeight, "err", err)
		} else {
			g.size = g.sched.Size()
		}
	}
	return g.size.W, g.size.H
}
