// Package growth expands branches into segments and child branches.
package growth

import (
	"math"

	"plum-bloom/internal/core"
	"plum-bloom/internal/field"
	"plum-bloom/internal/pattern"
)

const (
	// MinLength is the shortest branch that still draws.
	MinLength = 1.6
	// TrunkDepth is the depth below which a branch always splits.
	TrunkDepth = 3
	// NeutralDensity leaves child lengths unscaled.
	NeutralDensity = 45.0

	minChildLength   = 2.0
	maxChildFraction = 0.1
	spiralDriftRate  = 0.003
	hueJitter        = 16.0
	lengthJitterMin  = 0.9
	lengthJitterMax  = 1.08
	budgetPerDensity = 160.0
)

// Budget is the segment cap of a generation at the given density.
func Budget(density float64) int {
	if density <= 0 {
		return 0
	}
	return int(math.Round(density * budgetPerDensity))
}

// Generation is the run state of one growth pass, from seeding until the queue
// drains or the budget is spent.
type Generation struct {
	ID     uint64
	Budget int
	Drawn  int
	Queue  Queue
}

// NewGeneration starts an empty generation.
func NewGeneration(id uint64, budget int) *Generation {
	return &Generation{ID: id, Budget: budget}
}

// Exhausted reports whether the segment budget has been reached.
func (g *Generation) Exhausted() bool { return g.Drawn >= g.Budget }

// Done reports whether nothing is left to expand.
func (g *Generation) Done() bool { return g.Queue.Len() == 0 || g.Exhausted() }

// Offer enqueues b unless pending plus drawn work already meets the budget.
func (g *Generation) Offer(b core.Branch) bool {
	if g.Queue.Len()+g.Drawn >= g.Budget {
		return false
	}
	g.Queue.Push(b)
	return true
}

// Engine expands branches according to a pattern profile and the influence
// fields. It holds no run state of its own; callers refresh the exported
// fields before each frame.
type Engine struct {
	Profile pattern.Profile
	Size    core.Size
	Density float64
	Pointer field.PointerInput
	Time    field.TimeInput
	RNG     *core.RNG
}

// Expand draws b through emit and offers its children to gen.
func (e *Engine) Expand(gen *Generation, b core.Branch, emit func(core.Segment)) {
	if b.Length < MinLength || gen.Exhausted() {
		return
	}
	end := b.End()
	emit(core.Segment{
		From:       b.Start,
		To:         end,
		Depth:      b.Depth,
		DepthLimit: e.Profile.DepthLimit,
		HueOffset:  b.HueOffset,
	})
	gen.Drawn++

	if !e.Size.Contains(end) || b.Depth >= e.Profile.DepthLimit || gen.Exhausted() {
		return
	}
	if b.Depth >= TrunkDepth && !e.RNG.Chance(e.Profile.SplitChance) {
		return
	}

	children := int(math.Floor(e.RNG.Range(float64(e.Profile.MinChildren), float64(e.Profile.MaxChildren+1))))
	maxLength := maxChildFraction * e.Size.Max()
	drift := 0.0
	if e.Profile.ID == pattern.SpiralB {
		drift = float64(b.Depth) * spiralDriftRate
	}
	for i := 0; i < children; i++ {
		length := b.Length *
			e.RNG.Range(e.Profile.DecayMin, e.Profile.DecayMax) *
			e.RNG.Range(lengthJitterMin, lengthJitterMax) *
			(e.Density / NeutralDensity)
		length = core.Clamp(length, minChildLength, maxLength)

		swing := e.RNG.Range(-e.Profile.Spread, e.Profile.Spread)
		theta := b.Theta + swing + e.Profile.Twist + drift +
			field.Pointer(e.Pointer, end, b.Theta) +
			field.Time(e.Time, b.Depth, i)

		gen.Offer(core.Branch{
			Start:     end,
			Length:    length,
			Theta:     theta,
			Depth:     b.Depth + 1,
			HueOffset: b.HueOffset + e.RNG.Range(-hueJitter, hueJitter),
		})
	}
}
