package app

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"firespread/internal/core"
	"firespread/internal/playback"
	"firespread/internal/probability"
	"firespread/internal/raster"
	"firespread/internal/scenario"
	"firespread/internal/sims/wildfire"
	rng "firespread/pkg/core"
)

// Player loops over a precomputed run. Parameter edits are staged and take
// effect on Recompute; Step and Reset make it usable wherever a core.Sim is.
type Player struct {
	sc      *scenario.Scenario
	pending wildfire.Params
	seq     *wildfire.Sequence
	cells   []uint8

	base    time.Duration
	timer   *core.FixedStep
	paused  bool
	entropy *rng.RNG
	log     *slog.Logger
}

// NewPlayer computes the first run of sc.
func NewPlayer(sc *scenario.Scenario, base time.Duration, entropySeed int64, logger *slog.Logger) (*Player, error) {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Player{
		sc:      sc,
		pending: sc.Params.Clone(),
		base:    base,
		timer:   core.NewFixedStep(base),
		entropy: rng.NewRNG(entropySeed),
		log:     logger,
	}
	if err := p.Recompute(context.Background()); err != nil {
		return nil, err
	}
	return p, nil
}

// Recompute applies the staged parameters, reruns the simulation and rewinds.
func (p *Player) Recompute(ctx context.Context) error {
	return p.recompute(ctx, p.sc.Layers, p.pending.Clone())
}

// recompute runs params over layers and commits both to the scenario only
// once the run has completed.
func (p *Player) recompute(ctx context.Context, layers *raster.Layers, run wildfire.Params) error {
	start := time.Now()
	seq, err := wildfire.RunContext(ctx, layers, run)
	if err != nil {
		return fmt.Errorf("recomputing run: %w", err)
	}
	p.sc.Layers = layers
	p.sc.Params = run
	p.pending.Seed = run.Seed
	p.seq = seq
	p.timer.SetInterval(playback.EffectiveInterval(p.base, run.WindSpeed, run.IgnitionThreshold))
	p.syncCells()
	p.log.Info("run computed",
		"frames", seq.Len(),
		"seed", run.Seed,
		"interval", p.timer.Interval(),
		"elapsed", time.Since(start),
	)
	return nil
}

// Reseed replaces the probability field with a fresh random one and reruns.
// The scenario keeps its previous field if the rerun fails.
func (p *Player) Reseed(ctx context.Context) error {
	res, err := probability.ReseedProbabilityField(p.sc.Layers, p.entropy)
	if err != nil {
		return err
	}
	run := p.pending.Clone()
	run.Seed = res.RunSeed
	if err := p.recompute(ctx, res.Layers, run); err != nil {
		return err
	}
	p.sc.Source = probability.Random{}.Name()
	p.log.Info("probability reseeded", "noise_seed", res.NoiseSeed, "run_seed", res.RunSeed)
	return nil
}

// Tick advances playback when the frame interval has elapsed. It reports
// whether the visible frame changed.
func (p *Player) Tick() bool {
	if p.paused || !p.timer.ShouldStep() {
		return false
	}
	p.Step()
	return true
}

// TogglePause flips the paused state.
func (p *Player) TogglePause() { p.paused = !p.paused }

// Paused reports whether playback is paused.
func (p *Player) Paused() bool { return p.paused }

// Seek moves the cursor by delta frames, wrapping at both ends.
func (p *Player) Seek(delta int) {
	n := p.seq.Len()
	if n == 0 {
		return
	}
	i := ((p.seq.Cursor()+delta)%n + n) % n
	if err := p.seq.Seek(i); err == nil {
		p.syncCells()
	}
}

// Frame returns the frame under the cursor.
func (p *Player) Frame() wildfire.Frame {
	f, _ := p.seq.Current()
	return f
}

// Cursor returns the current frame index and the frame count.
func (p *Player) Cursor() (int, int) { return p.seq.Cursor(), p.seq.Len() }

// Interval returns the current playback interval.
func (p *Player) Interval() time.Duration { return p.timer.Interval() }

func (p *Player) syncCells() {
	p.cells = p.Frame().AppendBytes(p.cells[:0])
}

// Name identifies the simulation.
func (p *Player) Name() string { return "wildfire" }

// Size returns the grid dimensions.
func (p *Player) Size() core.Size { return p.sc.Layers.Size() }

// Step shows the next frame, looping to frame 0 after the last.
func (p *Player) Step() {
	p.seq.Advance()
	p.syncCells()
}

// Reset reruns with seed, or with the staged seed when seed is zero.
func (p *Player) Reset(seed int64) {
	if seed != 0 {
		p.pending.Seed = seed
	}
	if err := p.Recompute(context.Background()); err != nil {
		p.log.Error("reset failed", "error", err)
	}
}

// Cells exposes the current frame as palette indices.
func (p *Player) Cells() []uint8 { return p.cells }

// Palette returns the fire colors indexed by cell state.
func (p *Player) Palette() []color.RGBA { return wildfire.Palette() }

// Parameters snapshots the staged parameters plus playback status.
func (p *Player) Parameters() core.ParameterSnapshot {
	snap := p.pending.Parameters()
	i, n := p.Cursor()
	f := p.Frame()
	status := "playing"
	if p.paused {
		status = "paused"
	}
	snap.Groups = append(snap.Groups, core.ParameterGroup{
		Name: "Playback",
		Params: []core.Parameter{
			{Key: "frame", Label: "Frame", Value: fmt.Sprintf("%d/%d", i, n-1)},
			core.IntParam("burning", "Burning", int64(f.Count(wildfire.Burning))),
			core.IntParam("burnt", "Burnt", int64(f.Count(wildfire.Burnt))),
			core.IntParam("interval_ms", "Interval (ms)", p.timer.Interval().Milliseconds()),
			{Key: "status", Label: "Status", Value: status},
			{Key: "source", Label: "Probability", Value: p.sc.Source},
		},
	})
	return snap
}

// ParameterControls lists the adjustable parameters.
func (p *Player) ParameterControls() []core.ParameterControl {
	return p.pending.ParameterControls()
}

// SetIntParameter stages an integer parameter edit.
func (p *Player) SetIntParameter(key string, value int) bool {
	return p.pending.SetIntParameter(key, value)
}

// SetFloatParameter stages a float parameter edit.
func (p *Player) SetFloatParameter(key string, value float64) bool {
	return p.pending.SetFloatParameter(key, value)
}

// Layer returns a raster layer by name for overlays.
func (p *Player) Layer(name string) []float64 {
	l := p.sc.Layers
	switch name {
	case "elevation":
		return l.Elevation.Cells()
	case "fuel":
		return l.Fuel.Cells()
	case "probability":
		return l.Probability.Cells()
	}
	return nil
}

// Wind returns the staged wind speed and direction in degrees.
func (p *Player) Wind() (float64, float64) {
	return p.pending.WindSpeed, p.pending.WindDirection
}
