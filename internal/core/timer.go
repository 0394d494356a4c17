package core

import "time"

// Clock supplies the current time to deferred callbacks.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock with its monotonic component.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a controllable Clock for tests and offline rendering.
type ManualClock struct {
	now time.Time
}

// NewManualClock starts a ManualClock at the given instant.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time.
func (m *ManualClock) Now() time.Time { return m.now }

// Advance moves the clock forward by d.
func (m *ManualClock) Advance(d time.Duration) { m.now = m.now.Add(d) }

// Handle identifies a scheduled callback. The zero Handle is never issued.
type Handle uint64

type timerEntry struct {
	id  Handle
	due time.Time
	fn  func()
}

// Timers holds deferred callbacks that fire when the owner polls them. It has
// no goroutines: callbacks run inside Poll, on the caller's goroutine, so they
// are serialized with everything else the caller does.
type Timers struct {
	clock   Clock
	last    Handle
	pending []timerEntry
}

// NewTimers creates an empty timer set reading time from clock.
func NewTimers(clock Clock) *Timers {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Timers{clock: clock}
}

// Clock returns the time source.
func (t *Timers) Clock() Clock { return t.clock }

// After schedules fn to run once d has elapsed.
func (t *Timers) After(d time.Duration, fn func()) Handle {
	t.last++
	t.pending = append(t.pending, timerEntry{id: t.last, due: t.clock.Now().Add(d), fn: fn})
	return t.last
}

// Cancel drops the callback registered under h. It reports whether the
// callback was still pending.
func (t *Timers) Cancel(h Handle) bool {
	if h == 0 {
		return false
	}
	for i, e := range t.pending {
		if e.id == h {
			t.pending = append(t.pending[:i], t.pending[i+1:]...)
			return true
		}
	}
	return false
}

// CancelAll drops every pending callback.
func (t *Timers) CancelAll() {
	clear(t.pending)
	t.pending = t.pending[:0]
}

// Pending returns the number of callbacks that have not fired.
func (t *Timers) Pending() int { return len(t.pending) }

// Active reports whether h is still pending.
func (t *Timers) Active(h Handle) bool {
	for _, e := range t.pending {
		if e.id == h {
			return true
		}
	}
	return false
}

// Poll runs every callback whose deadline has passed, earliest first. Callbacks
// scheduled while polling wait for the next Poll. It returns the number fired.
func (t *Timers) Poll() int {
	now := t.clock.Now()
	limit := t.last
	fired := 0
	for {
		idx := -1
		for i, e := range t.pending {
			if e.id > limit || e.due.After(now) {
				continue
			}
			if idx < 0 || e.due.Before(t.pending[idx].due) {
				idx = i
			}
		}
		if idx < 0 {
			return fired
		}
		e := t.pending[idx]
		t.pending = append(t.pending[:idx], t.pending[idx+1:]...)
		e.fn()
		fired++
	}
}
