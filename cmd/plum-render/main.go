// Command plum-render grows one generation offscreen and writes it as a PNG.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"plum-bloom/internal/app"
	"plum-bloom/internal/core"
	"plum-bloom/internal/export"
	"plum-bloom/internal/palette"
	"plum-bloom/internal/render"
	"plum-bloom/internal/scheduler"
)

const maxFrames = 100000

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	output := flag.String("o", "", "output file (default: timestamped file in -out)")
	flag.Parse()

	settings, err := cfg.Resolve()
	if err != nil {
		log.Fatalf("settings: %v", err)
	}
	logger := cfg.Logger(os.Stderr)

	canvas := render.NewCanvas(cfg.Width, cfg.Height)
	defer canvas.Close()

	start := time.Now()
	clock := core.NewManualClock(start)
	sched, err := scheduler.New(canvas, canvas.Size(), settings, scheduler.Options{Clock: clock, Seed: cfg.Seed, Logger: logger})
	if err != nil {
		log.Fatal(err)
	}
	if err := sched.Seed(); err != nil {
		log.Fatal(err)
	}
	frames := 0
	for sched.State() == scheduler.Running && frames < maxFrames {
		sched.Tick()
		frames++
	}
	sched.Close()
	logger.Info("generation grown", "frames", frames, "segments", sched.Drawn(), "budget", sched.Budget(),
		"elapsed", time.Since(start).Round(time.Millisecond))

	data, err := export.Snapshot(canvas.Image(), palette.Background(settings.Theme()))
	if err != nil {
		log.Fatalf("snapshot: %v", err)
	}
	path := *output
	if path == "" {
		path, err = export.Save(cfg.OutDir, app.SnapshotLabel(settings), data, start)
	} else {
		if err = os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			err = os.WriteFile(path, data, 0o644)
		}
	}
	if err != nil {
		log.Fatalf("write: %v", err)
	}
	log.Printf("wrote %s (%d segments in %d frames)", path, sched.Drawn(), frames)
}
