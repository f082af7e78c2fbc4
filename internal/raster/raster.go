// Package raster holds the input layers consumed by the fire-spread engine
// and the providers that produce them.
package raster

import (
	"errors"
	"fmt"

	"firespread/internal/core"
)

// ErrSizeMismatch reports layers whose dimensions differ.
var ErrSizeMismatch = errors.New("raster layers have mismatched dimensions")

// Field is a scalar raster layer.
type Field = core.Grid[float64]

// Layers bundles the same-shaped input rasters for one simulation.
type Layers struct {
	W, H int

	// Elevation is a unitless proxy in [0,1].
	Elevation *Field
	// Fuel is vegetation density in [0,1].
	Fuel *Field
	// Probability is the base per-cell ignition likelihood in [0,1]. The
	// engine only reads it.
	Probability *Field
}

// NewLayers validates and bundles the provided fields.
func NewLayers(elevation, fuel, probability *Field) (*Layers, error) {
	if elevation == nil {
		return nil, fmt.Errorf("elevation: %w", core.ErrInvalidSize)
	}
	l := &Layers{
		W:           elevation.W,
		H:           elevation.H,
		Elevation:   elevation,
		Fuel:        fuel,
		Probability: probability,
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Uniform builds layers where every cell of each field holds a constant.
func Uniform(w, h int, elevation, fuel, probability float64) (*Layers, error) {
	e, err := core.FilledGrid(w, h, elevation)
	if err != nil {
		return nil, err
	}
	f, _ := core.FilledGrid(w, h, fuel)
	p, _ := core.FilledGrid(w, h, probability)
	return NewLayers(e, f, p)
}

// Size reports the layer dimensions.
func (l *Layers) Size() core.Size { return core.Size{W: l.W, H: l.H} }

// Validate checks that every layer is present, positive-sized and shares the
// same dimensions.
func (l *Layers) Validate() error {
	if l.W <= 0 || l.H <= 0 {
		return fmt.Errorf("%w: %dx%d", core.ErrInvalidSize, l.W, l.H)
	}
	named := []struct {
		name string
		f    *Field
	}{
		{"elevation", l.Elevation},
		{"fuel", l.Fuel},
		{"probability", l.Probability},
	}
	for _, n := range named {
		if n.f == nil {
			return fmt.Errorf("%s layer missing: %w", n.name, core.ErrInvalidSize)
		}
		if n.f.W <= 0 || n.f.H <= 0 {
			return fmt.Errorf("%s layer: %w: %dx%d", n.name, core.ErrInvalidSize, n.f.W, n.f.H)
		}
		if n.f.W != l.W || n.f.H != l.H {
			return fmt.Errorf("%w: %s is %dx%d, expected %dx%d", ErrSizeMismatch, n.name, n.f.W, n.f.H, l.W, l.H)
		}
		if len(n.f.Cells()) != l.W*l.H {
			return fmt.Errorf("%w: %s holds %d cells", ErrSizeMismatch, n.name, len(n.f.Cells()))
		}
	}
	return nil
}

// WithProbability returns a shallow copy of the layers using p as the
// probability field. The receiver is left untouched so runs holding it keep
// reading their original field.
func (l *Layers) WithProbability(p *Field) (*Layers, error) {
	out := *l
	out.Probability = p
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
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
