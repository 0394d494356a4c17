// Command plum-term grows plum blossoms in the terminal.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"plum-bloom/internal/app"
	"plum-bloom/internal/scheduler"
	"plum-bloom/internal/term"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	logPath := flag.String("log", "", "write debug log to this file (the screen is busy)")
	flag.Parse()

	settings, err := cfg.Resolve()
	if err != nil {
		log.Fatalf("settings: %v", err)
	}

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			log.Fatalf("log file: %v", err)
		}
		defer f.Close()
		logOut = f
		cfg.Verbose = true
	}
	logger := cfg.Logger(logOut)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	host, err := term.NewHost(screen, settings, scheduler.Options{Seed: cfg.Seed, Logger: logger}, cfg.OutDir)
	if err != nil {
		screen.Fini()
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err = host.Run(ctx)
	screen.Fini()
	if err != nil {
		log.Fatal(err)
	}
}
