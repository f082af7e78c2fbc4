// Command fire-sweep runs the configured scenario across a grid of wind
// speeds, wind directions and humidities and reports how far each fire got.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"time"

	"firespread/internal/app"
	"firespread/internal/scenario"
	"firespread/internal/sims/wildfire"
	"firespread/internal/telemetry"
)

func main() {
	opts := app.NewOptions()
	opts.Bind(flag.CommandLine)
	workers := flag.Int("workers", 0, "Worker goroutines (0 = config, then NumCPU)")
	replicates := flag.Int("replicates", 0, "Seeds per parameter set (0 = config)")
	top := flag.Int("top", 5, "Number of results to print")
	flag.Parse()

	logger := opts.Logger(os.Stderr)
	slog.SetDefault(logger)

	cfg, err := opts.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *workers > 0 {
		cfg.Sweep.Workers = *workers
	}
	if *replicates > 0 {
		cfg.Sweep.Replicates = *replicates
	}

	sc, err := scenario.Build(cfg)
	if err != nil {
		slog.Error("failed to build scenario", "error", err)
		os.Exit(1)
	}
	sets := wildfire.Grid(sc.Params, cfg.Sweep.WindSpeeds, cfg.Sweep.WindDirections, cfg.Sweep.Humidities)
	fmt.Printf("Sweeping %d parameter sets (%d replicates, %d steps)\n", len(sets), max(cfg.Sweep.Replicates, 1), sc.Params.Steps)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := wildfire.Sweep(ctx, sc.Layers, sets, wildfire.SweepOptions{
		Workers:    cfg.Sweep.Workers,
		Replicates: cfg.Sweep.Replicates,
	})
	if err != nil {
		slog.Error("sweep failed", "error", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	om, err := telemetry.NewOutputManager(cfg.Output.Dir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}
	if err := om.WriteSweep(results...); err != nil {
		slog.Error("failed to write sweep table", "error", err)
	}

	failed := 0
	for _, r := range results {
		if r.Err != "" {
			failed++
			slog.Warn("parameter set failed", "index", r.Index, "error", r.Err)
		}
	}

	ranked := append([]wildfire.SweepResult(nil), results...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].MeanBurned > ranked[j].MeanBurned })

	fmt.Printf("\nTop %d results (elapsed %s, %d failed):\n", min(*top, len(ranked)), elapsed.Round(time.Millisecond), failed)
	for i := 0; i < len(ranked) && i < *top; i++ {
		r := ranked[i]
		fmt.Printf("%2d) burned=%.3f±%.3f downwind=%.1f upwind=%.1f peak=%.1f wind=%.1f@%.0f humidity=%.0f\n",
			i+1, r.MeanBurned, r.StdBurned, r.MeanDownwind, r.MeanUpwind, r.MeanPeakStep, r.WindSpeed, r.WindDirection, r.Humidity)
	}
	if dir := om.Dir(); dir != "" {
		fmt.Printf("\nFull table written to %s\n", om.Path("sweep.csv"))
	}
}
