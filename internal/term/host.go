package term

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"plum-bloom/internal/app"
	"plum-bloom/internal/core"
	"plum-bloom/internal/export"
	"plum-bloom/internal/palette"
	"plum-bloom/internal/scheduler"
)

const (
	frameInterval = 16 * time.Millisecond
	toastDuration = 2 * time.Second
	halfBlock     = '▀'
)

// Host runs a scheduler against a tcell screen. Events are read on tcell's
// goroutine and handed to the loop; only the loop touches the scheduler.
type Host struct {
	screen tcell.Screen
	sched  *scheduler.Scheduler
	raster *Raster
	log    *slog.Logger
	outDir string

	cols, rows int
	status     bool
	toast      string
	toastUntil time.Time
	redraw     bool
}

// NewHost sizes a raster to the screen and builds its scheduler. The screen
// must already be initialised; the caller owns Fini.
func NewHost(screen tcell.Screen, settings scheduler.Settings, opts scheduler.Options, outDir string) (*Host, error) {
	cols, rows := screen.Size()
	h, err := newHost(cols, rows, settings, opts, outDir)
	if err != nil {
		return nil, err
	}
	h.screen = screen
	screen.EnableMouse()
	screen.HideCursor()
	return h, nil
}

func newHost(cols, rows int, settings scheduler.Settings, opts scheduler.Options, outDir string) (*Host, error) {
	cols, rows = max(cols, 1), max(rows, 1)
	raster := NewRaster(cols, rows*2)
	sched, err := scheduler.New(raster, raster.Size(), settings, opts)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Host{
		sched:  sched,
		raster: raster,
		log:    logger,
		outDir: outDir,
		cols:   cols,
		rows:   rows,
		status: true,
		redraw: true,
	}, nil
}

// Scheduler exposes the driven scheduler.
func (h *Host) Scheduler() *scheduler.Scheduler { return h.sched }

// Run seeds the first generation and loops until quit or ctx is cancelled.
func (h *Host) Run(ctx context.Context) error {
	if err := h.sched.Seed(); err != nil {
		return err
	}
	defer h.sched.Close()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !h.handleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			h.sched.Tick()
			h.draw(now)
		}
	}
}

func (h *Host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			return h.dispatch(app.KeyAction(ev.Rune()), time.Now())
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		h.pointerAt(x, y)
	case *tcell.EventResize:
		cols, rows := ev.Size()
		h.resize(cols, rows)
		h.screen.Sync()
	}
	return true
}

// dispatch applies a; it returns false when the host should exit.
func (h *Host) dispatch(a app.Action, now time.Time) bool {
	if msg, ok := app.Perform(h.sched, a); ok {
		h.notify(msg, now)
		return true
	}
	switch a {
	case app.ActionQuit:
		return false
	case app.ActionToggleHUD:
		h.status = !h.status
		h.redraw = true
	case app.ActionToggleOverlay:
		h.notify("overlay needs the desktop build", now)
	case app.ActionSnapshot:
		h.snapshot(now)
	}
	return true
}

func (h *Host) notify(msg string, now time.Time) {
	h.toast = msg
	h.toastUntil = now.Add(toastDuration)
	h.redraw = true
}

// pointerAt feeds a cell position to the pointer field, in raster samples.
func (h *Host) pointerAt(col, row int) {
	h.sched.SetPointer(core.Point{X: float64(col) + 0.5, Y: float64(row)*2 + 1})
}

func (h *Host) resize(cols, rows int) {
	if cols <= 0 || rows <= 0 || (cols == h.cols && rows == h.rows) {
		return
	}
	h.cols, h.rows = cols, rows
	if err := h.sched.Resize(cols, rows*2); err != nil {
		h.log.Warn("resize failed", "cols", cols, "rows", rows, "err", err)
	}
	h.redraw = true
}

func (h *Host) snapshot(now time.Time) {
	st := h.sched.Settings()
	path, err := export.WriteSnapshot(h.outDir, app.SnapshotLabel(st), h.raster.Image(), palette.Background(st.Theme()), now)
	if err != nil {
		h.log.Warn("snapshot failed", "err", err)
		h.notify("snapshot failed", now)
		return
	}
	h.log.Info("snapshot saved", "path", path)
	h.notify("saved "+path, now)
}

func (h *Host) statusLine(now time.Time) string {
	if h.toast != "" && now.Before(h.toastUntil) {
		return h.toast
	}
	st := h.sched.Settings()
	return fmt.Sprintf("%s %s | %s %d/%d | density %d speed %d | r p c t f m s q",
		st.Pattern, st.Palette, h.sched.State(), h.sched.Drawn(), h.sched.Budget(), st.Density, st.Speed)
}

func (h *Host) draw(now time.Time) {
	if !h.raster.TakeDirty() && !h.redraw && !h.status {
		return
	}
	h.redraw = false
	bg := palette.Background(h.sched.Settings().Theme())
	rows := h.rows
	if h.status {
		rows--
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < h.cols; col++ {
			top, bottom := h.raster.Cell(col, row, bg)
			style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
			h.screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
	if h.status {
		h.drawStatus(h.rows-1, h.statusLine(now), bg)
	}
	h.screen.Show()
}

func (h *Host) drawStatus(row int, text string, bg color.NRGBA) {
	fg := color.NRGBA{R: 255 - bg.R, G: 255 - bg.G, B: 255 - bg.B, A: 255}
	style := tcell.StyleDefault.Foreground(rgb(fg)).Background(rgb(bg))
	runes := []rune(text)
	for col := 0; col < h.cols; col++ {
		r := ' '
		if col < len(runes) {
			r = runes[col]
		}
		h.screen.SetContent(col, row, r, nil, style)
	}
}

func rgb(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
