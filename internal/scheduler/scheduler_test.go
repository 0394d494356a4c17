package scheduler

import (
	"errors"
	"testing"
	"time"

	"plum-bloom/internal/core"
	"plum-bloom/internal/growth"
	"plum-bloom/internal/palette"
	"plum-bloom/internal/pattern"
	"plum-bloom/internal/render"
)

type harness struct {
	s     *Scheduler
	sink  *render.Recorder
	clock *core.ManualClock
}

func newHarness(t *testing.T, settings Settings) *harness {
	t.Helper()
	sink := &render.Recorder{}
	clock := core.NewManualClock(time.Unix(1_700_000_000, 0))
	s, err := New(sink, core.Size{W: 800, H: 600}, settings, Options{Clock: clock, Seed: 42})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return &harness{s: s, sink: sink, clock: clock}
}

func (h *harness) runToIdle(t *testing.T) {
	t.Helper()
	for i := 0; h.s.State() == Running; i++ {
		if i > 100000 {
			t.Fatal("generation never finished")
		}
		h.s.Tick()
	}
}

func TestNewRequiresSink(t *testing.T) {
	if _, err := New(nil, core.Size{W: 10, H: 10}, DefaultSettings(), Options{}); !errors.Is(err, ErrNoSink) {
		t.Fatalf("New(nil) err = %v, want ErrNoSink", err)
	}
	var s *Scheduler
	if err := s.Seed(); !errors.Is(err, ErrNoSink) {
		t.Fatalf("nil scheduler Seed err = %v", err)
	}
}

func TestSeedClearsRunState(t *testing.T) {
	h := newHarness(t, DefaultSettings())
	if err := h.s.Seed(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		h.s.Tick()
	}
	if h.s.Drawn() == 0 {
		t.Fatal("ticks drew nothing")
	}
	firstGen := h.s.Generation()

	h.sink.Reset()
	if err := h.s.Seed(); err != nil {
		t.Fatal(err)
	}
	if h.s.Drawn() != 0 {
		t.Fatalf("drawn after reseed = %d", h.s.Drawn())
	}
	if h.s.Pending() != 2 {
		t.Fatalf("pending after reseed = %d, want the two plum trunks", h.s.Pending())
	}
	if h.s.Generation() == firstGen {
		t.Fatal("reseed must start a new generation")
	}
	if len(h.sink.Ops) == 0 || h.sink.Ops[0].Kind != render.OpClear {
		t.Fatal("reseed must clear the sink first")
	}
	if h.s.State() != Running {
		t.Fatalf("state after seed = %v", h.s.State())
	}
}

func TestFrameBudgetLimitsWork(t *testing.T) {
	st := DefaultSettings()
	st.Speed = 40
	h := newHarness(t, st)
	_ = h.s.Seed()
	h.s.Tick()
	if strokes := h.sink.Count(render.OpStroke); strokes > 40 {
		t.Fatalf("one frame stroked %d segments with speed 40", strokes)
	}

	st.TimeMotion = true
	h.s.Apply(st)
	if got := h.s.FrameBudget(); got != 20 {
		t.Fatalf("time-motion frame budget = %d, want 20", got)
	}
}

func TestPlumRunToCompletion(t *testing.T) {
	h := newHarness(t, DefaultSettings())
	if err := h.s.Seed(); err != nil {
		t.Fatal(err)
	}
	h.runToIdle(t)

	if h.s.State() != Idle {
		t.Fatalf("state = %v, want idle without time motion", h.s.State())
	}
	if h.s.Pending() != 0 {
		t.Fatalf("queue holds %d branches after completion", h.s.Pending())
	}
	if h.s.Drawn() > h.s.Budget() {
		t.Fatalf("drawn %d exceeds budget %d", h.s.Drawn(), h.s.Budget())
	}
	segs := h.sink.Segments()
	if len(segs) != h.s.Drawn() {
		t.Fatalf("sink saw %d segments, scheduler counted %d", len(segs), h.s.Drawn())
	}
	size := h.s.Size()
	for i, seg := range segs {
		// A segment may end outside the surface only as the last of its
		// lineage, so nothing may ever start outside it.
		if !size.Contains(seg[0]) {
			t.Fatalf("segment %d starts outside the surface at %+v", i, seg[0])
		}
	}
	if h.s.ReplayPending() || h.s.Timers().Pending() != 0 {
		t.Fatal("no replay may be armed without time motion")
	}
}

func TestStrokeStyle(t *testing.T) {
	h := newHarness(t, DefaultSettings())
	_ = h.s.Seed()
	h.s.Tick()
	for _, op := range h.sink.Ops {
		if op.Kind != render.OpStroke {
			continue
		}
		if op.Style.Cap != render.CapRound {
			t.Fatal("segments are stroked with round caps")
		}
		if op.Style.Width < 0.55 || op.Style.Width > 2.6 {
			t.Fatalf("stroke width %v out of range", op.Style.Width)
		}
		if op.Style.Color.A == 0 {
			t.Fatal("stroke color is fully transparent")
		}
	}
}

func TestTimeMotionToggleArmsSingleReplay(t *testing.T) {
	h := newHarness(t, DefaultSettings())
	_ = h.s.Seed()
	h.runToIdle(t)
	if h.s.Seeds() != 1 {
		t.Fatalf("seeds = %d", h.s.Seeds())
	}

	h.s.SetTimeMotion(true)
	if h.s.Seeds() != 2 {
		t.Fatalf("enabling time motion should reseed once, seeds = %d", h.s.Seeds())
	}
	phase := h.s.Phase()
	h.runToIdle(t)
	if h.s.Phase() <= phase {
		t.Fatal("phase must advance while time motion runs")
	}
	if h.s.State() != Armed || !h.s.ReplayPending() {
		t.Fatalf("state = %v replay=%v, want an armed replay", h.s.State(), h.s.ReplayPending())
	}
	if n := h.s.Timers().Pending(); n != 1 {
		t.Fatalf("%d timers pending, want exactly the replay", n)
	}

	h.clock.Advance(IdleDelay - time.Millisecond)
	h.s.Tick()
	if h.s.Seeds() != 2 {
		t.Fatal("replay fired before the idle delay")
	}

	h.s.SetTimeMotion(false)
	if h.s.ReplayPending() || h.s.State() != Idle {
		t.Fatalf("disabling time motion must cancel the replay, state = %v", h.s.State())
	}
	h.clock.Advance(time.Second)
	h.s.Tick()
	if h.s.Seeds() != 2 {
		t.Fatalf("cancelled replay still reseeded, seeds = %d", h.s.Seeds())
	}
}

func TestReplayReseedsAfterIdleDelay(t *testing.T) {
	st := DefaultSettings()
	st.TimeMotion = true
	h := newHarness(t, st)
	_ = h.s.Seed()
	h.runToIdle(t)
	gen := h.s.Generation()

	h.clock.Advance(IdleDelay)
	h.s.Tick()
	if h.s.Generation() == gen || h.s.State() != Running {
		t.Fatalf("replay did not start a new generation, state = %v", h.s.State())
	}
	if h.s.Drawn() > h.s.FrameBudget() {
		t.Fatalf("fresh generation drew %d segments in its first tick", h.s.Drawn())
	}
}

func TestRegenerateInvalidatesPendingReplay(t *testing.T) {
	st := DefaultSettings()
	st.TimeMotion = true
	h := newHarness(t, st)
	_ = h.s.Seed()
	h.runToIdle(t)
	if !h.s.ReplayPending() {
		t.Fatal("expected an armed replay")
	}
	if err := h.s.Regenerate(); err != nil {
		t.Fatal(err)
	}
	if h.s.ReplayPending() || h.s.Timers().Pending() != 0 {
		t.Fatal("regenerate must cancel the old replay")
	}
	seeds := h.s.Seeds()
	h.clock.Advance(IdleDelay * 2)
	h.s.Tick()
	if h.s.Seeds() != seeds {
		t.Fatal("a superseded replay reseeded")
	}
}

func TestParameterChangesAreDebounced(t *testing.T) {
	h := newHarness(t, DefaultSettings())
	_ = h.s.Seed()
	seeds := h.s.Seeds()

	h.s.SetIntParameter("density", 50)
	h.clock.Advance(100 * time.Millisecond)
	h.s.Tick()
	h.s.SetIntParameter("density", 52)
	h.s.SetIntParameter("flow_strength", 30)
	h.clock.Advance(100 * time.Millisecond)
	h.s.Tick()
	if h.s.Seeds() != seeds {
		t.Fatal("debounced change reseeded early")
	}

	h.clock.Advance(ParamDebounce)
	h.s.Tick()
	if h.s.Seeds() != seeds+1 {
		t.Fatalf("seeds = %d, want exactly one debounced reseed", h.s.Seeds())
	}
	if h.s.Budget() != growth.Budget(52) {
		t.Fatalf("budget = %d, want the density-52 budget", h.s.Budget())
	}
}

func TestSpeedChangeDoesNotReseed(t *testing.T) {
	h := newHarness(t, DefaultSettings())
	_ = h.s.Seed()
	h.s.SetIntParameter("speed", 150)
	h.clock.Advance(time.Second)
	h.s.Tick()
	if h.s.Seeds() != 1 {
		t.Fatal("speed change must not reseed")
	}
	if h.s.FrameBudget() != 150 {
		t.Fatalf("frame budget = %d", h.s.FrameBudget())
	}
}

func TestStructuralChangesReseedImmediately(t *testing.T) {
	h := newHarness(t, DefaultSettings())
	_ = h.s.Seed()
	steps := []func(){
		func() { h.s.SetPattern(pattern.CrystalC) },
		func() { h.s.SetPalette(palette.Aurora) },
		func() { h.s.SetTheme(core.ThemeDark) },
		func() { h.s.SetFlow(true) },
		func() { h.s.CycleParameter("pattern", 1) },
	}
	for i, step := range steps {
		before := h.s.Seeds()
		step()
		if h.s.Seeds() != before+1 {
			t.Fatalf("step %d: seeds %d -> %d", i, before, h.s.Seeds())
		}
	}
	if h.s.Pending() != len(pattern.Seeds(pattern.PlumA, h.s.Size())) {
		t.Fatalf("cycling from crystalC should land on plumA, pending = %d", h.s.Pending())
	}
}

func TestPointerMoveDebouncedReseed(t *testing.T) {
	st := DefaultSettings()
	st.FlowEnabled = true
	h := newHarness(t, st)
	_ = h.s.Seed()
	seeds := h.s.Seeds()

	for i := 0; i < 10; i++ {
		h.s.SetPointer(core.Point{X: float64(100 + i), Y: 200})
		h.clock.Advance(20 * time.Millisecond)
		h.s.Tick()
	}
	if h.s.Seeds() != seeds {
		t.Fatal("pointer reseeded while still moving")
	}
	h.clock.Advance(PointerDebounce)
	h.s.Tick()
	if h.s.Seeds() != seeds+1 {
		t.Fatalf("seeds = %d, want one pointer reseed", h.s.Seeds())
	}
	if p, ok := h.s.Pointer(); !ok || p.X != 109 {
		t.Fatalf("pointer = %+v known=%v", p, ok)
	}
}

func TestPointerIgnoredUnderTimeMotion(t *testing.T) {
	st := DefaultSettings()
	st.FlowEnabled = true
	st.TimeMotion = true
	h := newHarness(t, st)
	_ = h.s.Seed()
	h.s.SetPointer(core.Point{X: 10, Y: 10})
	h.clock.Advance(time.Second)
	h.s.Tick()
	if h.s.Seeds() != 1 {
		t.Fatal("pointer moves must not reseed while time motion is on")
	}

	st.TimeMotion = false
	st.FlowEnabled = false
	h = newHarness(t, st)
	_ = h.s.Seed()
	h.s.SetPointer(core.Point{X: 10, Y: 10})
	h.clock.Advance(time.Second)
	h.s.Tick()
	if h.s.Seeds() != 1 {
		t.Fatal("pointer moves must not reseed with the flow field off")
	}
}

type resizingSink struct {
	render.Recorder
	w, h int
}

func (r *resizingSink) Resize(w, h int) error {
	r.w, r.h = w, h
	return nil
}

func TestResizeReseeds(t *testing.T) {
	sink := &resizingSink{}
	s, err := New(sink, core.Size{W: 100, H: 100}, DefaultSettings(), Options{Clock: core.NewManualClock(time.Time{}), Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	_ = s.Seed()
	if err := s.Resize(300, 200); err != nil {
		t.Fatal(err)
	}
	if sink.w != 300 || sink.h != 200 {
		t.Fatalf("sink resized to %dx%d", sink.w, sink.h)
	}
	if s.Size() != (core.Size{W: 300, H: 200}) || s.Seeds() != 2 {
		t.Fatalf("size %+v seeds %d", s.Size(), s.Seeds())
	}
	if err := s.Resize(0, 10); err == nil {
		t.Fatal("zero-size resize must fail")
	}
}

func TestCloseStopsEverything(t *testing.T) {
	st := DefaultSettings()
	st.FlowEnabled = true
	h := newHarness(t, st)
	_ = h.s.Seed()
	h.s.SetPointer(core.Point{X: 1, Y: 1})
	h.s.Close()
	drawn := h.s.Drawn()
	h.clock.Advance(time.Second)
	h.s.Tick()
	if h.s.Drawn() != drawn || h.s.Seeds() != 1 {
		t.Fatal("closed scheduler kept working")
	}
	if err := h.s.Seed(); !errors.Is(err, ErrClosed) {
		t.Fatalf("Seed after Close err = %v", err)
	}
}

func TestParametersSnapshot(t *testing.T) {
	h := newHarness(t, DefaultSettings())
	snap := h.s.Parameters()
	p, ok := snap.Lookup("density")
	if !ok || p.Value != "45" {
		t.Fatalf("density param %+v ok=%v", p, ok)
	}
	if p, _ := snap.Lookup("pattern"); p.Value != string(pattern.PlumA) {
		t.Fatalf("pattern param %+v", p)
	}
	for _, ctrl := range h.s.ParameterControls() {
		if _, ok := snap.Lookup(ctrl.Key); !ok {
			t.Fatalf("control %q has no matching parameter", ctrl.Key)
		}
	}
	if h.s.SetIntParameter("nope", 1) || h.s.SetBoolParameter("nope", true) || h.s.CycleParameter("nope", 1) {
		t.Fatal("unknown keys must be rejected")
	}
}
