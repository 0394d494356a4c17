package sweep

import (
	"testing"

	"plum-bloom/internal/core"
	"plum-bloom/internal/pattern"
	"plum-bloom/internal/scheduler"
)

func TestGridCoversPatternsAndDensities(t *testing.T) {
	cases := Grid(scheduler.DefaultSettings(), core.Size{W: 320, H: 240}, []int{30, 60}, 5)
	if len(cases) != len(pattern.IDs())*2 {
		t.Fatalf("got %d cases", len(cases))
	}
	seen := map[pattern.ID]int{}
	for _, c := range cases {
		seen[c.Settings.Pattern]++
	}
	for _, id := range pattern.IDs() {
		if seen[id] != 2 {
			t.Fatalf("pattern %s appears %d times", id, seen[id])
		}
	}
}

func TestGrowFinishesWithinBudget(t *testing.T) {
	res := Grow(Case{Settings: scheduler.DefaultSettings(), Size: core.Size{W: 480, H: 360}, Seed: 11})
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if res.Drawn == 0 || res.Frames == 0 {
		t.Fatalf("nothing grew: %+v", res)
	}
	if res.Drawn > res.Budget {
		t.Fatalf("drawn %d over budget %d", res.Drawn, res.Budget)
	}
	if res.Coverage <= 0 || res.Coverage > 1 {
		t.Fatalf("coverage %v", res.Coverage)
	}
}

func TestRunMatchesSerialGrowth(t *testing.T) {
	cases := Grid(scheduler.DefaultSettings(), core.Size{W: 320, H: 240}, []int{scheduler.DensityMin, scheduler.DensityMax}, 21)
	results := Run(cases, 3)
	if len(results) != len(cases) {
		t.Fatalf("got %d results for %d cases", len(results), len(cases))
	}
	byCase := map[string]Result{}
	for _, r := range results {
		byCase[r.Case.String()] = r
	}
	for _, c := range cases {
		want := Grow(c)
		got, ok := byCase[c.String()]
		if !ok {
			t.Fatalf("missing result for %s", c)
		}
		if got.Drawn != want.Drawn || got.Frames != want.Frames {
			t.Fatalf("%s: pooled run drew %d in %d frames, serial %d in %d",
				c, got.Drawn, got.Frames, want.Drawn, want.Frames)
		}
	}
	for i := 1; i < len(results); i++ {
		if results[i].Coverage > results[i-1].Coverage {
			t.Fatal("results not ordered by coverage")
		}
	}
}
