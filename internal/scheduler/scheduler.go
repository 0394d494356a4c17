// Package scheduler drives growth generations one display frame at a time.
//
// A Scheduler is single-threaded: the host calls Tick once per frame and every
// other method from the same goroutine. Deferred work (debounced reseeds, the
// replay after an idle period) lives in a core.Timers polled inside Tick, so
// it never races with a frame.
package scheduler

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"plum-bloom/internal/core"
	"plum-bloom/internal/field"
	"plum-bloom/internal/growth"
	"plum-bloom/internal/palette"
	"plum-bloom/internal/pattern"
	"plum-bloom/internal/render"
)

// Timing and throughput constants.
const (
	PhaseStep         = 0.018
	IdleDelay         = 2200 * time.Millisecond
	ParamDebounce     = 140 * time.Millisecond
	PointerDebounce   = 180 * time.Millisecond
	MotionSpeedFactor = 0.5
)

var (
	// ErrNoSink is returned when a scheduler has nothing to draw on.
	ErrNoSink = errors.New("scheduler: no render sink")
	// ErrClosed is returned by Seed after Close.
	ErrClosed = errors.New("scheduler: closed")
)

// State is the scheduler's lifecycle phase.
type State uint8

const (
	Idle State = iota
	Running
	// Armed is idle with a replay pending.
	Armed
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Armed:
		return "armed"
	default:
		return "idle"
	}
}

// Resizer is implemented by sinks whose raster follows the surface size.
type Resizer interface {
	Resize(w, h int) error
}

// Options tunes a Scheduler. The zero value uses the wall clock, an unseeded
// RNG and a discarding logger.
type Options struct {
	Clock  core.Clock
	Seed   int64
	Logger *slog.Logger
}

// frameHandle is the outstanding per-frame registration. It is valid only for
// the generation it was armed for.
type frameHandle struct {
	armed bool
	gen   uint64
}

// Scheduler owns the work queue of the current generation and feeds it to the
// growth engine under a per-frame budget.
type Scheduler struct {
	sink     render.Sink
	size     core.Size
	settings Settings
	timers   *core.Timers
	rng      *core.RNG
	log      *slog.Logger

	engine growth.Engine
	gen    *growth.Generation
	lastID uint64
	seeds  int
	state  State
	closed bool

	frame           frameHandle
	replay          core.Handle
	paramDebounce   core.Handle
	pointerDebounce core.Handle

	phase        float64
	pointer      core.Point
	pointerKnown bool

	strokeErrs int
}

// New builds a scheduler drawing on sink. It does not seed; call Seed once the
// host is ready.
func New(sink render.Sink, size core.Size, settings Settings, opts Options) (*Scheduler, error) {
	if sink == nil {
		return nil, ErrNoSink
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Scheduler{
		sink:     sink,
		size:     size,
		settings: settings.Clamped(),
		timers:   core.NewTimers(opts.Clock),
		rng:      core.NewRNG(opts.Seed),
		log:      logger,
	}
	s.engine.RNG = s.rng
	s.gen = growth.NewGeneration(0, 0)
	return s, nil
}

// Seed discards the current generation and starts a new one from the pattern's
// seed branches. Every outstanding frame and timer is cancelled first.
func (s *Scheduler) Seed() error {
	if s == nil || s.sink == nil {
		return ErrNoSink
	}
	if s.closed {
		return ErrClosed
	}
	s.CancelAll()

	s.lastID++
	s.gen = growth.NewGeneration(s.lastID, growth.Budget(float64(s.settings.Density)))
	s.sink.Clear()
	for _, b := range pattern.Seeds(s.settings.Pattern, s.size) {
		s.gen.Offer(b)
	}
	s.seeds++
	s.frame = frameHandle{armed: true, gen: s.gen.ID}
	s.state = Running
	s.log.Debug("generation seeded",
		"generation", s.gen.ID,
		"pattern", s.settings.Pattern,
		"budget", s.gen.Budget,
		"seeds", s.gen.Queue.Len())
	return nil
}

// Regenerate is the explicit user request for a fresh drawing.
func (s *Scheduler) Regenerate() error { return s.Seed() }

func (s *Scheduler) reseed() {
	if err := s.Seed(); err != nil {
		s.log.Warn("reseed failed", "err", err)
	}
}

// guard wraps fn so it does nothing once generation id has been superseded.
func (s *Scheduler) guard(id uint64, fn func()) func() {
	return func() {
		if s.gen == nil || s.gen.ID != id {
			return
		}
		fn()
	}
}

// CancelAll drops the pending frame and every deferred callback.
func (s *Scheduler) CancelAll() {
	s.timers.CancelAll()
	s.frame = frameHandle{}
	s.replay = 0
	s.paramDebounce = 0
	s.pointerDebounce = 0
	if s.state == Armed {
		s.state = Idle
	}
}

// Close cancels all outstanding work. A closed scheduler cannot be seeded.
func (s *Scheduler) Close() {
	s.CancelAll()
	s.closed = true
	s.state = Idle
}

// Tick fires due timers and then runs the armed frame, if any. Hosts call it
// once per display refresh.
func (s *Scheduler) Tick() {
	s.timers.Poll()
	if !s.frame.armed || s.frame.gen != s.gen.ID {
		return
	}
	s.runFrame()
}

func (s *Scheduler) runFrame() {
	if s.settings.TimeMotion {
		s.phase += PhaseStep
	}
	s.syncEngine()

	budget := s.FrameBudget()
	for i := 0; i < budget && !s.gen.Done(); i++ {
		b, _ := s.gen.Queue.Pop()
		s.engine.Expand(s.gen, b, s.draw)
	}
	if s.gen.Done() {
		s.finish()
	}
}

func (s *Scheduler) syncEngine() {
	profile, _ := pattern.Lookup(s.settings.Pattern)
	s.engine.Profile = profile
	s.engine.Size = s.size
	s.engine.Density = float64(s.settings.Density)
	s.engine.Pointer = s.PointerField()
	s.engine.Time = field.TimeInput{
		Enabled: s.settings.TimeMotion,
		Phase:   s.phase,
		Amount:  float64(s.settings.MotionAmount),
	}
}

func (s *Scheduler) draw(seg core.Segment) {
	prof, _ := palette.Lookup(s.settings.Palette)
	style := render.Style{
		Width: StrokeWidth(seg.Depth),
		Cap:   render.CapRound,
		Color: palette.Color(seg.Depth, seg.DepthLimit, seg.HueOffset, prof, s.settings.Theme()),
	}
	if err := render.StrokeSegment(s.sink, seg, style); err != nil {
		s.strokeErrs++
		if s.strokeErrs == 1 {
			s.log.Warn("stroke failed", "generation", s.gen.ID, "err", err)
		}
	}
}

// StrokeWidth is the pen width for a segment at depth.
func StrokeWidth(depth int) float64 {
	return math.Max(0.55, 2.6-float64(depth)*0.18)
}

func (s *Scheduler) finish() {
	s.frame = frameHandle{}
	s.gen.Queue.Reset()
	s.state = Idle
	s.log.Debug("generation complete",
		"generation", s.gen.ID,
		"drawn", s.gen.Drawn,
		"budget", s.gen.Budget)
	if s.settings.TimeMotion {
		s.armReplay()
	}
}

func (s *Scheduler) armReplay() {
	s.timers.Cancel(s.replay)
	s.replay = s.timers.After(IdleDelay, s.guard(s.gen.ID, s.reseed))
	s.state = Armed
}

func (s *Scheduler) cancelReplay() {
	s.timers.Cancel(s.replay)
	s.replay = 0
	if s.state == Armed {
		s.state = Idle
	}
}

// FrameBudget is the number of branches expanded per frame.
func (s *Scheduler) FrameBudget() int {
	if !s.settings.TimeMotion {
		return s.settings.Speed
	}
	return max(1, int(math.Round(float64(s.settings.Speed)*MotionSpeedFactor)))
}

// Resize adopts a new surface size and starts over.
func (s *Scheduler) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("resize to %dx%d: dimensions must be positive", w, h)
	}
	if r, ok := s.sink.(Resizer); ok {
		if err := r.Resize(w, h); err != nil {
			return err
		}
	}
	s.size = core.Size{W: w, H: h}
	return s.Seed()
}

// SetPointer records the pointer position in surface coordinates. With the
// flow field on and time motion off, pointer movement schedules a debounced
// reseed.
func (s *Scheduler) SetPointer(p core.Point) {
	if s.pointerKnown && s.pointer == p {
		return
	}
	s.pointer = p
	s.pointerKnown = true
	if s.settings.FlowEnabled && !s.settings.TimeMotion {
		s.timers.Cancel(s.pointerDebounce)
		s.pointerDebounce = s.timers.After(PointerDebounce, s.reseed)
	}
}

// ClearPointer forgets the pointer, e.g. when it leaves the surface.
func (s *Scheduler) ClearPointer() { s.pointerKnown = false }

// Pointer returns the last known pointer position.
func (s *Scheduler) Pointer() (core.Point, bool) { return s.pointer, s.pointerKnown }

// PointerField returns the pointer field input the next frame will use.
func (s *Scheduler) PointerField() field.PointerInput {
	return field.PointerInput{
		Enabled:  s.settings.FlowEnabled,
		Known:    s.pointerKnown,
		Pointer:  s.pointer,
		Size:     s.size,
		Strength: float64(s.settings.FlowStrength),
	}
}

// State returns the lifecycle phase.
func (s *Scheduler) State() State { return s.state }

// Settings returns the active settings.
func (s *Scheduler) Settings() Settings { return s.settings }

// Size returns the surface size.
func (s *Scheduler) Size() core.Size { return s.size }

// Drawn returns the segments emitted by the current generation.
func (s *Scheduler) Drawn() int { return s.gen.Drawn }

// Budget returns the segment budget of the current generation.
func (s *Scheduler) Budget() int { return s.gen.Budget }

// Pending returns the number of queued branches.
func (s *Scheduler) Pending() int { return s.gen.Queue.Len() }

// Generation returns the current generation's identifier.
func (s *Scheduler) Generation() uint64 { return s.gen.ID }

// Seeds returns how many generations have been started.
func (s *Scheduler) Seeds() int { return s.seeds }

// Phase returns the time-motion phase accumulator.
func (s *Scheduler) Phase() float64 { return s.phase }

// Timers exposes the deferred-callback set, mainly for inspection in tests
// and HUD readouts.
func (s *Scheduler) Timers() *core.Timers { return s.timers }

// ReplayPending reports whether an idle replay is scheduled.
func (s *Scheduler) ReplayPending() bool { return s.timers.Active(s.replay) }
