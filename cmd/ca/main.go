//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"firespread/internal/app"
	"firespread/internal/scenario"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	opts := app.NewOptions()
	opts.Bind(flag.CommandLine)
	tps := flag.Int("tps", 60, "Update ticks per second")
	flag.Parse()

	logger := opts.Logger(os.Stderr)
	slog.SetDefault(logger)

	cfg, err := opts.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	sc, err := scenario.Build(cfg)
	if err != nil {
		slog.Error("failed to build scenario", "error", err)
		os.Exit(1)
	}
	player, err := app.NewPlayer(sc, cfg.BaseInterval(), time.Now().UnixNano(), logger)
	if err != nil {
		slog.Error("initial run failed", "error", err)
		os.Exit(1)
	}

	scale := max(cfg.Playback.Scale, 1)
	game := app.New(player, scale)
	size := player.Size()

	ebiten.SetWindowTitle("firespread: " + sc.Source + " probability")
	ebiten.SetTPS(*tps)
	ebiten.SetWindowSize(size.W*scale+app.HUDWidth, size.H*scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		slog.Error("game exited", "error", err)
		os.Exit(1)
	}
}
