// Package sweep runs headless generations over a grid of settings and
// summarises how each one grows.
package sweep

import (
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"plum-bloom/internal/core"
	"plum-bloom/internal/pattern"
	"plum-bloom/internal/render"
	"plum-bloom/internal/scheduler"
)

// Case is one settings combination to grow.
type Case struct {
	Settings scheduler.Settings
	Size     core.Size
	Seed     int64
}

func (c Case) String() string {
	st := c.Settings
	return fmt.Sprintf("pattern=%s density=%d speed=%d flow=%t motion=%t seed=%d",
		st.Pattern, st.Density, st.Speed, st.FlowEnabled, st.TimeMotion, c.Seed)
}

// Result summarises one finished generation.
type Result struct {
	Case     Case
	Drawn    int
	Budget   int
	Frames   int
	Coverage float64 // bounding box of all segments over the surface area
	Err      error
}

// Exhausted reports whether the generation stopped on its segment budget
// rather than running out of branches.
func (r Result) Exhausted() bool { return r.Drawn >= r.Budget }

// MaxFrames bounds a single generation.
const MaxFrames = 10000

// Grid builds one case per pattern and density, with everything else from
// base.
func Grid(base scheduler.Settings, size core.Size, densities []int, seed int64) []Case {
	var cases []Case
	for _, id := range pattern.IDs() {
		for _, d := range densities {
			st := base
			st.Pattern = id
			st.Density = d
			cases = append(cases, Case{Settings: st.Clamped(), Size: size, Seed: seed})
		}
	}
	return cases
}

// Run grows every case on a pool of workers and returns results ordered by
// coverage, largest first. Each worker owns its schedulers outright.
func Run(cases []Case, workers int) []Result {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	jobs := make(chan Case)
	results := make(chan Result)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				results <- Grow(c)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()
	go func() {
		for _, c := range cases {
			jobs <- c
		}
		close(jobs)
	}()

	all := make([]Result, 0, len(cases))
	for res := range results {
		all = append(all, res)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Coverage != all[j].Coverage {
			return all[i].Coverage > all[j].Coverage
		}
		return all[i].Case.String() < all[j].Case.String()
	})
	return all
}

// Grow runs a single case to completion against a recording sink.
func Grow(c Case) Result {
	res := Result{Case: c}
	rec := &render.Recorder{}
	clock := core.NewManualClock(time.Unix(0, 0))
	s, err := scheduler.New(rec, c.Size, c.Settings, scheduler.Options{Clock: clock, Seed: c.Seed})
	if err == nil {
		err = s.Seed()
	}
	if err != nil {
		res.Err = err
		return res
	}
	defer s.Close()

	for s.State() == scheduler.Running && res.Frames < MaxFrames {
		s.Tick()
		res.Frames++
	}
	res.Drawn = s.Drawn()
	res.Budget = s.Budget()
	res.Coverage = coverage(rec.Segments(), c.Size)
	return res
}

func coverage(segs [][2]core.Point, size core.Size) float64 {
	if len(segs) == 0 || size.W <= 0 || size.H <= 0 {
		return 0
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, s := range segs {
		for _, p := range s {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	minX, maxX = core.Clamp(minX, 0, float64(size.W)), core.Clamp(maxX, 0, float64(size.W))
	minY, maxY = core.Clamp(minY, 0, float64(size.H)), core.Clamp(maxY, 0, float64(size.H))
	return (maxX - minX) * (maxY - minY) / float64(size.W*size.H)
}

// DefaultDensities spans the density control in even steps.
func DefaultDensities() []int {
	return []int{scheduler.DensityMin, 40, 50, 60, scheduler.DensityMax}
}
