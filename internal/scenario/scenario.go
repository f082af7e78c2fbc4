// Package scenario assembles raster layers and run parameters from a config.
package scenario

import (
	"context"
	"fmt"

	"firespread/internal/config"
	"firespread/internal/probability"
	"firespread/internal/raster"
	"firespread/internal/sims/wildfire"
	rng "firespread/pkg/core"
)

// Scenario is a ready-to-run combination of terrain, probability and
// parameters.
type Scenario struct {
	Terrain *raster.Terrain
	Layers  *raster.Layers
	Params  wildfire.Params
	Source  string
}

// Build loads or generates terrain, derives the probability field and
// validates the parameters against the resulting grid.
func Build(cfg *config.Config) (*Scenario, error) {
	terr, err := BuildTerrain(cfg.Terrain)
	if err != nil {
		return nil, err
	}
	src, err := Source(cfg.Probability)
	if err != nil {
		return nil, err
	}
	prob, err := src.Generate(terr, cfg.ProbabilitySeed())
	if err != nil {
		return nil, fmt.Errorf("generating %s probability: %w", src.Name(), err)
	}
	layers, err := terr.Layers(prob)
	if err != nil {
		return nil, err
	}
	params := cfg.SimulationParams()
	if err := params.Validate(layers.Size()); err != nil {
		return nil, err
	}
	return &Scenario{Terrain: terr, Layers: layers, Params: params, Source: src.Name()}, nil
}

// BuildTerrain reads the configured image, or generates synthetic terrain when
// no image is set.
func BuildTerrain(cfg config.TerrainConfig) (*raster.Terrain, error) {
	if cfg.Image != "" {
		return raster.LoadImage(cfg.Image, cfg.TargetWidth)
	}
	return raster.Synthetic(raster.SyntheticOptions{
		Width:   cfg.Width,
		Height:  cfg.Height,
		Seed:    cfg.Seed,
		Scale:   cfg.Scale,
		Octaves: cfg.Octaves,
	})
}

// Source resolves the configured probability source.
func Source(cfg config.ProbabilityConfig) (probability.Source, error) {
	if cfg.Source == "uniform" {
		return probability.Uniform{Value: cfg.Uniform}, nil
	}
	return probability.Lookup(cfg.Source)
}

// Run computes the full frame sequence.
func (s *Scenario) Run(ctx context.Context) (*wildfire.Sequence, error) {
	return wildfire.RunContext(ctx, s.Layers, s.Params)
}

// Engine returns a fresh engine for interactive stepping.
func (s *Scenario) Engine() (*wildfire.Engine, error) {
	return wildfire.New(s.Layers, s.Params)
}

// Reseed swaps in a freshly randomized probability field and run seed drawn
// from entropy. Terrain is kept.
func (s *Scenario) Reseed(entropy *rng.RNG) (probability.Reseeded, error) {
	res, err := probability.ReseedProbabilityField(s.Layers, entropy)
	if err != nil {
		return probability.Reseeded{}, err
	}
	s.Layers = res.Layers
	s.Params.Seed = res.RunSeed
	s.Source = probability.Random{}.Name()
	return res, nil
}
