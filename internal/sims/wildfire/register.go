package wildfire

import (
	"fmt"
	"strconv"

	"firespread/internal/core"
	"firespread/internal/probability"
	"firespread/internal/raster"
)

const (
	defaultWidth  = 200
	defaultHeight = 150
)

// NewFromMap builds an engine over synthetic terrain. Recognised keys are w, h,
// terrain_seed, probability and every key understood by FromMap.
func NewFromMap(cfg map[string]string) (*Engine, error) {
	w := intOr(cfg, "w", defaultWidth)
	h := intOr(cfg, "h", defaultHeight)
	terrainSeed := int64(intOr(cfg, "terrain_seed", 7))
	source := "gradient"
	if v, ok := cfg["probability"]; ok && v != "" {
		source = v
	}

	params := FromMap(cfg)
	terrain, err := raster.Synthetic(raster.SyntheticOptions{Width: w, Height: h, Seed: terrainSeed})
	if err != nil {
		return nil, fmt.Errorf("wildfire: %w", err)
	}
	src, err := probability.Lookup(source)
	if err != nil {
		return nil, fmt.Errorf("wildfire: %w", err)
	}
	prob, err := src.Generate(terrain, params.Seed)
	if err != nil {
		return nil, fmt.Errorf("wildfire: %w", err)
	}
	layers, err := terrain.Layers(prob)
	if err != nil {
		return nil, fmt.Errorf("wildfire: %w", err)
	}
	return New(layers, params)
}

func intOr(cfg map[string]string, key string, def int) int {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

func init() {
	core.Register("wildfire", func(cfg map[string]string) (core.Sim, error) {
		return NewFromMap(cfg)
	})
}
