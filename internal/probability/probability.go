// Package probability produces base ignition-probability fields. The engine
// treats whatever a Source returns as an opaque input.
package probability

import (
	"fmt"
	"sort"

	"firespread/internal/core"
	"firespread/internal/raster"
	rng "firespread/pkg/core"
)

// Source generates a probability field shaped like the terrain.
type Source interface {
	Name() string
	Generate(t *raster.Terrain, seed int64) (*raster.Field, error)
}

var sources = map[string]Source{}

// Register adds a source under its name.
func Register(s Source) {
	if s == nil || s.Name() == "" {
		return
	}
	sources[s.Name()] = s
}

// Lookup returns the source registered under name.
func Lookup(name string) (Source, error) {
	s, ok := sources[name]
	if !ok {
		return nil, fmt.Errorf("unknown probability source %q (have %v)", name, Names())
	}
	return s, nil
}

// Names lists the registered sources in sorted order.
func Names() []string {
	names := make([]string, 0, len(sources))
	for n := range sources {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Gradient combines fuel with an eastward positional gradient. It ignores the
// seed.
type Gradient struct{}

// Name implements Source.
func (Gradient) Name() string { return "gradient" }

// Generate implements Source.
func (Gradient) Generate(t *raster.Terrain, _ int64) (*raster.Field, error) {
	out, err := core.NewGrid[float64](t.W, t.H)
	if err != nil {
		return nil, err
	}
	fuel, cells := t.Fuel.Cells(), out.Cells()
	for y := 0; y < t.H; y++ {
		for x := 0; x < t.W; x++ {
			i := y*t.W + x
			grad := float64(x) / float64(t.W)
			cells[i] = min(1, 0.15+0.7*fuel[i]*(0.3+0.7*grad))
		}
	}
	return out, nil
}

// Random is the gradient surrogate with fresh per-cell noise in ±0.1.
type Random struct{}

// Name implements Source.
func (Random) Name() string { return "random" }

// Generate implements Source.
func (Random) Generate(t *raster.Terrain, seed int64) (*raster.Field, error) {
	out, err := core.NewGrid[float64](t.W, t.H)
	if err != nil {
		return nil, err
	}
	r := rng.NewRNG(seed)
	fuel, cells := t.Fuel.Cells(), out.Cells()
	for y := 0; y < t.H; y++ {
		for x := 0; x < t.W; x++ {
			i := y*t.W + x
			grad := float64(x) / float64(t.W)
			noise := (r.Float64() - 0.5) * 0.2
			cells[i] = clamp01(0.1 + 0.75*fuel[i]*(0.25+0.75*grad) + noise)
		}
	}
	return out, nil
}

// Uniform assigns the same probability to every cell.
type Uniform struct {
	Value float64
}

// Name implements Source.
func (Uniform) Name() string { return "uniform" }

// Generate implements Source.
func (u Uniform) Generate(t *raster.Terrain, _ int64) (*raster.Field, error) {
	return core.FilledGrid(t.W, t.H, clamp01(u.Value))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func init() {
	Register(Gradient{})
	Register(Random{})
	Register(Uniform{Value: 0.5})
}
