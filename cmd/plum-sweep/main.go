// Command plum-sweep grows every pattern across a range of densities and
// reports how far each generation spreads.
package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"strconv"
	"strings"
	"time"

	"plum-bloom/internal/core"
	"plum-bloom/internal/scheduler"
	"plum-bloom/internal/sweep"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	width := flag.Int("width", 960, "surface width")
	height := flag.Int("height", 640, "surface height")
	seed := flag.Int64("seed", 1337, "seed shared by every run")
	densities := flag.String("densities", "", "comma-separated densities (default: full range)")
	top := flag.Int("top", 5, "results to print")
	var overrides kvList
	flag.Var(&overrides, "set", "settings override in key=value form (repeatable)")
	flag.Parse()

	kv := map[string]string{}
	for _, o := range overrides {
		key, value, ok := strings.Cut(o, "=")
		if !ok {
			log.Fatalf("override %q is not key=value", o)
		}
		kv[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	base := scheduler.FromMap(kv)

	levels := sweep.DefaultDensities()
	if *densities != "" {
		levels = levels[:0]
		for _, f := range strings.Split(*densities, ",") {
			d, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				log.Fatalf("density %q: %v", f, err)
			}
			levels = append(levels, d)
		}
	}

	cases := sweep.Grid(base, core.Size{W: *width, H: *height}, levels, *seed)
	fmt.Printf("Sweeping %d cases (%d workers)\n", len(cases), *workers)

	start := time.Now()
	results := sweep.Run(cases, *workers)
	elapsed := time.Since(start)

	fmt.Printf("\nTop %d by coverage (elapsed %s):\n", *top, elapsed.Round(time.Millisecond))
	for i := 0; i < len(results) && i < *top; i++ {
		printResult(i+1, results[i])
	}
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("error: %s: %v\n", r.Case, r.Err)
		}
	}
}

func printResult(rank int, r sweep.Result) {
	stop := "drained"
	if r.Exhausted() {
		stop = "budget"
	}
	fmt.Printf("%2d) coverage=%.3f drawn=%d/%d frames=%d stop=%s %s\n",
		rank, r.Coverage, r.Drawn, r.Budget, r.Frames, stop, r.Case)
}
