package wildfire

import (
	"context"

	"firespread/internal/playback"
	"firespread/internal/raster"
)

// Sequence is the ordered output of one run.
type Sequence = playback.Sequence[Frame]

// Run eagerly computes every frame of a simulation: frame 0 plus one frame per
// step. Invalid inputs are rejected before any computation.
func Run(layers *raster.Layers, params Params) (*Sequence, error) {
	return RunContext(context.Background(), layers, params)
}

// RunContext is Run with cancellation checked between steps. A cancelled run
// returns ctx.Err() and no frames.
func RunContext(ctx context.Context, layers *raster.Layers, params Params) (*Sequence, error) {
	e, err := New(layers, params)
	if err != nil {
		return nil, err
	}
	frames := make([]Frame, 0, params.Steps+1)
	for _, f := range e.Frames(ctx) {
		frames = append(frames, f)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return playback.NewSequence(frames), nil
}
