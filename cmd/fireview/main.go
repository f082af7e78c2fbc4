// Command fireview plays a fire spread run in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"firespread/internal/app"
	"firespread/internal/config"
	"firespread/internal/scenario"
	"firespread/internal/sims/wildfire"
)

func main() {
	opts := app.NewOptions()
	opts.Bind(flag.CommandLine)
	logPath := flag.String("log-file", "", "Write logs to this file (the terminal is busy drawing)")
	simName := flag.String("sim", "", "Step a registered simulation live from -set overrides instead of replaying a precomputed run")
	flag.Parse()

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := opts.Logger(logOut)
	slog.SetDefault(logger)

	var view interface{ Run(context.Context) }
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating screen: %v\n", err)
		os.Exit(1)
	}
	if *simName != "" {
		simCfg, err := opts.SimConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "parsing overrides: %v\n", err)
			os.Exit(1)
		}
		sim, err := app.OpenSim(*simName, simCfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening simulation: %v\n", err)
			os.Exit(1)
		}
		logger.Info("live simulation", "sim", sim.Name(), "size", sim.Size(), "overrides", simCfg)
		view = app.NewSimView(sim, screen, wildfire.Palette(), config.Default().BaseInterval())
	} else {
		cfg, err := opts.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
			os.Exit(1)
		}
		sc, err := scenario.Build(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "building scenario: %v\n", err)
			os.Exit(1)
		}
		player, err := app.NewPlayer(sc, cfg.BaseInterval(), time.Now().UnixNano(), logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "initial run: %v\n", err)
			os.Exit(1)
		}
		view = app.NewTerminalView(player, screen)
	}

	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "initializing screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	view.Run(ctx)
}
