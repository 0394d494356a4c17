package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 used by the growth
// engine. A zero seed yields an unseeded source.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates an RNG. Seed 0 draws its state from the runtime's random
// source; any other seed is deterministic.
func NewRNG(seed int64) *RNG {
	if seed == 0 {
		return &RNG{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
	}
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// Range returns a value in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	return lo + r.r.Float64()*(hi-lo)
}

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool { return r.r.Float64() < p }

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
