package wildfire

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FrameStats summarizes one frame.
type FrameStats struct {
	Step     int `csv:"step"`
	Unburnt  int `csv:"unburnt"`
	Burning  int `csv:"burning"`
	Burnt    int `csv:"burnt"`
	Affected int `csv:"affected"`

	// Centroid of affected (burning or burnt) cells, relative to the origin
	// on the torus.
	CentroidX float64 `csv:"centroid_x"`
	CentroidY float64 `csv:"centroid_y"`

	// Farthest affected cell along and against the wind heading.
	Downwind float64 `csv:"downwind_extent"`
	Upwind   float64 `csv:"upwind_extent"`
}

// Measure computes statistics for a frame. Distances are measured from origin
// using the shortest toroidal displacement and projected onto the unit vector
// of windDirection.
func Measure(f Frame, step int, origin Point, windDirection float64) FrameStats {
	st := FrameStats{Step: step}
	rad := windDirection * math.Pi / 180
	wx, wy := math.Cos(rad), -math.Sin(rad)

	var xs, ys, proj []float64
	for i, c := range f.cells {
		switch c {
		case Unburnt:
			st.Unburnt++
			continue
		case Burning:
			st.Burning++
		case Burnt:
			st.Burnt++
		}
		dx := float64(torusDelta(i%f.w-origin.X, f.w))
		dy := float64(torusDelta(i/f.w-origin.Y, f.h))
		xs = append(xs, dx)
		ys = append(ys, dy)
		proj = append(proj, dx*wx+dy*wy)
	}
	st.Affected = st.Burning + st.Burnt
	if len(proj) == 0 {
		return st
	}
	st.CentroidX = stat.Mean(xs, nil)
	st.CentroidY = stat.Mean(ys, nil)
	st.Downwind = math.Max(0, floats.Max(proj))
	st.Upwind = math.Max(0, -floats.Min(proj))
	return st
}

func torusDelta(d, n int) int {
	if d > n/2 {
		d -= n
	}
	if d < -n/2 {
		d += n
	}
	return d
}

// MeasureSequence computes statistics for every frame of a run, measured from
// the first ignition point.
func MeasureSequence(seq *Sequence, params Params) []FrameStats {
	out := make([]FrameStats, 0, seq.Len())
	var origin Point
	for i, f := range seq.All() {
		if i == 0 {
			origin = params.IgnitionPoints(f.Size())[0]
		}
		out = append(out, Measure(f, i, origin, params.WindDirection))
	}
	return out
}

// RunSummary condenses the statistics of a whole run.
type RunSummary struct {
	Frames         int     `json:"frames"`
	Cells          int     `json:"cells"`
	PeakBurning    int     `json:"peak_burning"`
	PeakStep       int     `json:"peak_step"`
	FinalAffected  int     `json:"final_affected"`
	BurnedFraction float64 `json:"burned_fraction"`
	LastActiveStep int     `json:"last_active_step"`
	Downwind       float64 `json:"downwind_extent"`
	Upwind         float64 `json:"upwind_extent"`
}

// Summarize reduces per-frame statistics.
func Summarize(stats []FrameStats) RunSummary {
	var s RunSummary
	s.Frames = len(stats)
	if len(stats) == 0 {
		return s
	}
	for _, st := range stats {
		if st.Burning > s.PeakBurning {
			s.PeakBurning = st.Burning
			s.PeakStep = st.Step
		}
		if st.Burning > 0 {
			s.LastActiveStep = st.Step
		}
	}
	last := stats[len(stats)-1]
	s.Cells = last.Unburnt + last.Affected
	s.FinalAffected = last.Affected
	if s.Cells > 0 {
		s.BurnedFraction = float64(last.Affected) / float64(s.Cells)
	}
	s.Downwind = last.Downwind
	s.Upwind = last.Upwind
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s RunSummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("frames", s.Frames),
		slog.Int("cells", s.Cells),
		slog.Int("peak_burning", s.PeakBurning),
		slog.Int("peak_step", s.PeakStep),
		slog.Int("final_affected", s.FinalAffected),
		slog.Float64("burned_fraction", s.BurnedFraction),
		slog.Int("last_active_step", s.LastActiveStep),
		slog.Float64("downwind_extent", s.Downwind),
		slog.Float64("upwind_extent", s.Upwind),
	)
}
