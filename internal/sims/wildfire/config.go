package wildfire

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"firespread/internal/core"
)

var (
	// ErrInvalidSteps reports a step count below one.
	ErrInvalidSteps = errors.New("step count must be at least 1")
	// ErrIgnitionOutOfRange reports an ignition point outside the grid.
	ErrIgnitionOutOfRange = errors.New("ignition point outside grid")
	// ErrParamOutOfRange reports an environmental input outside its domain.
	ErrParamOutOfRange = errors.New("parameter out of range")
)

// Point is a cell coordinate.
type Point struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Params holds the environmental inputs of one simulation run. A run never
// modifies its Params.
type Params struct {
	// WindSpeed is non-negative; 10 doubles spread directly downwind.
	WindSpeed float64
	// WindDirection is the heading the wind blows toward in degrees,
	// counter-clockwise from east (90 points to the top of the grid).
	WindDirection float64
	// Humidity is relative humidity in percent.
	Humidity float64
	// IgnitionThreshold is reserved for the engine; players use it to pace
	// playback.
	IgnitionThreshold float64
	// Steps is the number of transitions a run performs.
	Steps int
	// Seed drives the run's generator. Only the low 32 bits are used.
	Seed int64
	// Ignitions lists the cells burning in frame 0. Empty means the grid
	// centre.
	Ignitions []Point
}

// DefaultParams returns the standard parameters.
func DefaultParams() Params {
	return Params{
		WindSpeed:         6,
		WindDirection:     90,
		Humidity:          25,
		IgnitionThreshold: 0.6,
		Steps:             100,
		Seed:              42,
	}
}

// Validate checks the parameters against a grid of the given size.
func (p Params) Validate(size core.Size) error {
	if size.W <= 0 || size.H <= 0 {
		return fmt.Errorf("%w: %dx%d", core.ErrInvalidSize, size.W, size.H)
	}
	if p.Steps < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSteps, p.Steps)
	}
	for _, pt := range p.Ignitions {
		if pt.X < 0 || pt.Y < 0 || pt.X >= size.W || pt.Y >= size.H {
			return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrIgnitionOutOfRange, pt.X, pt.Y, size.W, size.H)
		}
	}
	return nil
}

// CheckRanges reports the first environmental input outside its domain:
// wind speed must be non-negative, humidity in [0,100] and the ignition
// threshold in [0,1]. The engine itself accepts any values.
func (p Params) CheckRanges() error {
	switch {
	case p.WindSpeed < 0:
		return fmt.Errorf("%w: wind_speed must be >= 0, got %g", ErrParamOutOfRange, p.WindSpeed)
	case p.Humidity < 0 || p.Humidity > 100:
		return fmt.Errorf("%w: humidity must be in [0,100], got %g", ErrParamOutOfRange, p.Humidity)
	case p.IgnitionThreshold < 0 || p.IgnitionThreshold > 1:
		return fmt.Errorf("%w: ignition_threshold must be in [0,1], got %g", ErrParamOutOfRange, p.IgnitionThreshold)
	}
	return nil
}

// IgnitionPoints returns the configured ignitions, defaulting to the centre.
func (p Params) IgnitionPoints(size core.Size) []Point {
	if len(p.Ignitions) == 0 {
		return []Point{{X: size.W / 2, Y: size.H / 2}}
	}
	return append([]Point(nil), p.Ignitions...)
}

// Clone returns a copy that shares no slices with p.
func (p Params) Clone() Params {
	p.Ignitions = append([]Point(nil), p.Ignitions...)
	return p
}

// FromMap populates parameters from a string map (flag-style key/value pairs),
// starting from DefaultParams. Unparseable values are ignored.
func FromMap(cfg map[string]string) Params {
	p := DefaultParams()
	if cfg == nil {
		return p
	}
	if v, ok := cfg["wind_speed"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			p.WindSpeed = parsed
		}
	}
	if v, ok := cfg["wind_direction"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			p.WindDirection = parsed
		}
	}
	if v, ok := cfg["humidity"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 100 {
			p.Humidity = parsed
		}
	}
	if v, ok := cfg["ignition_threshold"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			p.IgnitionThreshold = parsed
		}
	}
	if v, ok := cfg["steps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			p.Steps = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			p.Seed = parsed
		}
	}
	if v, ok := cfg["ignitions"]; ok {
		if pts, err := ParsePoints(v); err == nil {
			p.Ignitions = pts
		}
	}
	return p
}

// ParsePoints parses "x,y;x,y" into points.
func ParsePoints(s string) ([]Point, error) {
	var pts []Point
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		xs, ys, ok := strings.Cut(part, ",")
		if !ok {
			return nil, fmt.Errorf("point %q: expected x,y", part)
		}
		x, err := strconv.Atoi(strings.TrimSpace(xs))
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", part, err)
		}
		y, err := strconv.Atoi(strings.TrimSpace(ys))
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", part, err)
		}
		pts = append(pts, Point{X: x, Y: y})
	}
	return pts, nil
}
