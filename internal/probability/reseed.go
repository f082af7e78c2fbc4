package probability

import (
	"fmt"

	"firespread/internal/raster"
	rng "firespread/pkg/core"
)

// Reseeded is the outcome of ReseedProbabilityField.
type Reseeded struct {
	// Layers carries the regenerated probability field. The input layers are
	// not modified.
	Layers *raster.Layers
	// NoiseSeed is the seed the field was generated with.
	NoiseSeed int64
	// RunSeed is a fresh seed for the next simulation run.
	RunSeed int64
}

// ReseedProbabilityField regenerates the probability layer with the Random
// surrogate. Both the noise seed and the follow-up run seed are drawn from
// entropy so repeated calls produce different fields; entropy must be owned by
// the caller.
func ReseedProbabilityField(layers *raster.Layers, entropy *rng.RNG) (Reseeded, error) {
	terr := &raster.Terrain{W: layers.W, H: layers.H, Elevation: layers.Elevation, Fuel: layers.Fuel}
	noiseSeed := int64(entropy.Uint32())
	field, err := Random{}.Generate(terr, noiseSeed)
	if err != nil {
		return Reseeded{}, fmt.Errorf("reseeding probability field: %w", err)
	}
	next, err := layers.WithProbability(field)
	if err != nil {
		return Reseeded{}, fmt.Errorf("reseeding probability field: %w", err)
	}
	return Reseeded{Layers: next, NoiseSeed: noiseSeed, RunSeed: int64(entropy.Uint32())}, nil
}
