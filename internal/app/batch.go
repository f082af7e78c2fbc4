package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"firespread/internal/config"
	"firespread/internal/render"
	"firespread/internal/scenario"
	"firespread/internal/sims/wildfire"
	"firespread/internal/telemetry"
)

// Batch is the outcome of one headless run.
type Batch struct {
	Scenario *scenario.Scenario
	Sequence *wildfire.Sequence
	Stats    []wildfire.FrameStats
	Summary  wildfire.RunSummary
}

// RunBatch builds the configured scenario, runs it to completion and writes
// the artifacts enabled in cfg.Output. With an empty output directory only
// the run itself happens.
func RunBatch(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Batch, error) {
	sc, err := scenario.Build(cfg)
	if err != nil {
		return nil, err
	}
	size := sc.Layers.Size()
	logger.Info("scenario ready",
		"width", size.W,
		"height", size.H,
		"probability", sc.Source,
		"steps", sc.Params.Steps,
		"seed", sc.Params.Seed,
	)

	start := time.Now()
	seq, err := sc.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("running simulation: %w", err)
	}
	stats := wildfire.MeasureSequence(seq, sc.Params)
	b := &Batch{Scenario: sc, Sequence: seq, Stats: stats, Summary: wildfire.Summarize(stats)}
	logger.Info("run complete", "elapsed", time.Since(start), "summary", b.Summary)

	if err := writeArtifacts(b, cfg, logger); err != nil {
		return b, err
	}
	return b, nil
}

func writeArtifacts(b *Batch, cfg *config.Config, logger *slog.Logger) error {
	om, err := telemetry.NewOutputManager(cfg.Output.Dir)
	if err != nil || om == nil {
		return err
	}
	defer om.Close()

	out := cfg.Output
	scale := max(cfg.Playback.Scale, 1)
	if err := om.WriteConfig(cfg); err != nil {
		return err
	}
	if err := om.WriteSummary(b.Scenario.Params, b.Scenario.Source, b.Summary); err != nil {
		return err
	}
	if err := render.WriteLayerPNGs(om.Dir(), b.Scenario.Layers, scale); err != nil {
		return err
	}
	if out.StatsCSV {
		if err := om.WriteFrameStats(b.Stats...); err != nil {
			return err
		}
	}
	if out.FramesPNG {
		if err := render.WriteFramePNGs(om.Path("frames"), b.Sequence, scale); err != nil {
			return err
		}
	}
	if out.Video {
		if err := render.WriteVideo(om.Path("run.avi"), b.Sequence, scale, max(out.VideoFPS, 1)); err != nil {
			return err
		}
	}
	if out.Chart && len(b.Stats) >= 2 {
		f, err := os.Create(om.Path("burn.png"))
		if err != nil {
			return fmt.Errorf("creating burn chart: %w", err)
		}
		if err := render.WriteBurnChart(f, b.Stats); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	logger.Info("artifacts written", "dir", om.Dir())
	return nil
}
