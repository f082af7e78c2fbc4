package wildfire

import (
	"context"
	"fmt"
	"iter"
	"math"

	"firespread/internal/core"
	"firespread/internal/raster"
	rng "firespread/pkg/core"
)

const (
	noiseMin  = 0.85
	noiseSpan = 0.3
)

type offset struct{ dx, dy int }

// mooreOffsets is the fixed iteration order of spread directions. Each offset
// points from a burning source to the candidate cell; changing the order
// changes which random draws each cell receives.
var mooreOffsets = [8]offset{
	{dx: -1, dy: -1},
	{dx: 0, dy: -1},
	{dx: 1, dy: -1},
	{dx: -1, dy: 0},
	{dx: 1, dy: 0},
	{dx: -1, dy: 1},
	{dx: 0, dy: 1},
	{dx: 1, dy: 1},
}

// heading returns the offset direction in degrees, counter-clockwise from east
// with y growing downward on the grid.
func (o offset) heading() float64 {
	n := math.Hypot(float64(o.dx), float64(o.dy))
	ux, uy := float64(o.dx)/n, float64(o.dy)/n
	return math.Atan2(-uy, ux) * 180 / math.Pi
}

// Engine is the stochastic cellular automaton for one simulation run. It owns
// its state buffers and generator; input fields are read-only.
type Engine struct {
	params Params
	w, h   int

	fuel  []float64
	slope []float64
	prob  []float64

	windFactors    [len(mooreOffsets)]float64
	humidityFactor float64

	curr    []CellState
	next    []CellState
	display []uint8

	rng  *rng.RNG
	step int
}

// New validates the inputs and returns an engine positioned at frame 0.
func New(layers *raster.Layers, params Params) (*Engine, error) {
	if layers == nil {
		return nil, fmt.Errorf("wildfire: %w: no layers", core.ErrInvalidSize)
	}
	if err := layers.Validate(); err != nil {
		return nil, fmt.Errorf("wildfire: %w", err)
	}
	if err := params.Validate(layers.Size()); err != nil {
		return nil, fmt.Errorf("wildfire: %w", err)
	}
	slope, err := DeriveSlope(layers.Elevation)
	if err != nil {
		return nil, fmt.Errorf("wildfire: deriving slope: %w", err)
	}

	total := layers.W * layers.H
	e := &Engine{
		params:         params.Clone(),
		w:              layers.W,
		h:              layers.H,
		fuel:           layers.Fuel.Cells(),
		slope:          slope.Cells(),
		prob:           layers.Probability.Cells(),
		humidityFactor: HumidityFactor(params.Humidity),
		curr:           make([]CellState, total),
		next:           make([]CellState, total),
		display:        make([]uint8, total),
		rng:            rng.NewRNG(params.Seed),
	}
	for i, o := range mooreOffsets {
		diff := AngleDiff(o.heading(), params.WindDirection)
		e.windFactors[i] = WindAlignmentFactor(diff, params.WindSpeed)
	}
	e.Reset(params.Seed)
	return e, nil
}

// Name returns the simulation identifier.
func (e *Engine) Name() string { return "wildfire" }

// Size reports the grid dimensions.
func (e *Engine) Size() core.Size { return core.Size{W: e.w, H: e.h} }

// Cells exposes the current states as bytes for renderers.
func (e *Engine) Cells() []uint8 { return e.display }

// Params returns a copy of the run parameters.
func (e *Engine) Params() Params { return e.params.Clone() }

// Done reports whether the configured number of steps has been reached.
func (e *Engine) Done() bool { return e.step >= e.params.Steps }

// Reset returns the engine to frame 0 and reseeds its generator. A zero seed
// reuses the configured one.
func (e *Engine) Reset(seed int64) {
	if seed == 0 {
		seed = e.params.Seed
	}
	e.rng.Seed(seed)
	for i := range e.curr {
		e.curr[i] = Unburnt
		e.next[i] = Unburnt
	}
	for _, pt := range e.params.IgnitionPoints(e.Size()) {
		e.curr[pt.Y*e.w+pt.X] = Burning
	}
	e.step = 0
	e.rebuildDisplay()
}

// Frame returns a snapshot of the current state.
func (e *Engine) Frame() Frame { return newFrame(e.w, e.h, e.curr) }

// Step advances the automaton by exactly one time unit: burning cells burn
// out, then every unburnt cell next to a burning one gets one ignition
// attempt per burning neighbour.
func (e *Engine) Step() {
	w, h := e.w, e.h
	curr, next := e.curr, e.next
	copy(next, curr)
	for i, s := range curr {
		if s == Burning {
			next[i] = Burnt
		}
	}

	hf := e.humidityFactor
	for n, o := range mooreOffsets {
		wf := e.windFactors[n]
		for y := 0; y < h; y++ {
			sy := (y - o.dy + h) % h
			row := y * w
			for x := 0; x < w; x++ {
				c := row + x
				if curr[c] != Unburnt {
					continue
				}
				src := sy*w + (x-o.dx+w)%w
				if curr[src] != Burning {
					continue
				}
				ff := FuelFactor(e.fuel[c])
				sf := SlopeFactor(e.slope[src], DefaultSlopeK)
				// Must stay 0.85 + u*0.3 in this order for bit-exact replays.
				noise := noiseMin + float64(e.rng.Float64()*noiseSpan)
				p := clamp(e.prob[c]*ff*sf*wf*hf*noise, 0, 1)
				if e.rng.Float64() < p {
					next[c] = Burning
				}
			}
		}
	}

	e.curr, e.next = next, curr
	e.step++
	e.rebuildDisplay()
}

// Frames lazily yields frame 0 followed by one frame per step until the
// configured step count is reached or ctx is cancelled. Frames are produced
// from the engine's current position.
func (e *Engine) Frames(ctx context.Context) iter.Seq2[int, Frame] {
	return func(yield func(int, Frame) bool) {
		if !yield(e.step, e.Frame()) {
			return
		}
		for e.step < e.params.Steps {
			if ctx.Err() != nil {
				return
			}
			e.Step()
			if !yield(e.step, e.Frame()) {
				return
			}
		}
	}
}

func (e *Engine) rebuildDisplay() {
	for i, s := range e.curr {
		e.display[i] = uint8(s)
	}
}
