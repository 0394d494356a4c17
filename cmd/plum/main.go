//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"plum-bloom/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	settings, err := cfg.Resolve()
	if err != nil {
		log.Fatalf("settings: %v", err)
	}
	logger := cfg.Logger(os.Stderr)

	game, err := app.New(cfg, settings, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowTitle("plum bloom")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
