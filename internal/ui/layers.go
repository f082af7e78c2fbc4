package ui

import (
	"image/color"
	"math"
)

// LayerView selects which raster layer the overlay shades.
type LayerView int

const (
	ViewNone LayerView = iota
	ViewElevation
	ViewFuel
	ViewProbability
)

var viewNames = [...]string{"", "elevation", "fuel", "probability"}

// Layer returns the raster layer name for the view, or "" for ViewNone.
func (v LayerView) Layer() string {
	if v < 0 || int(v) >= len(viewNames) {
		return ""
	}
	return viewNames[v]
}

// Toggle switches to v, or off when v is already shown.
func (v LayerView) Toggle(next LayerView) LayerView {
	if v == next {
		return ViewNone
	}
	return next
}

type colorStop struct {
	t   float64
	col color.RGBA
}

var (
	elevationStops = []colorStop{
		{0.0, color.RGBA{R: 40, G: 60, B: 120, A: 150}},
		{0.25, color.RGBA{R: 70, G: 105, B: 160, A: 165}},
		{0.5, color.RGBA{R: 90, G: 150, B: 100, A: 185}},
		{0.75, color.RGBA{R: 190, G: 160, B: 80, A: 205}},
		{1.0, color.RGBA{R: 240, G: 235, B: 215, A: 215}},
	}
	fuelStops = []colorStop{
		{0.0, color.RGBA{R: 120, G: 100, B: 70, A: 60}},
		{1.0, color.RGBA{R: 20, G: 140, B: 40, A: 200}},
	}
	probabilityStops = []colorStop{
		{0.0, color.RGBA{R: 40, G: 40, B: 80, A: 40}},
		{0.5, color.RGBA{R: 200, G: 120, B: 40, A: 140}},
		{1.0, color.RGBA{R: 255, G: 60, B: 20, A: 210}},
	}
)

func stopsFor(v LayerView) []colorStop {
	switch v {
	case ViewElevation:
		return elevationStops
	case ViewFuel:
		return fuelStops
	case ViewProbability:
		return probabilityStops
	}
	return nil
}

// fillLayerRGBA shades vals (expected in [0,1]) into translucent overlay
// pixels. Elevation is stretched to its observed range first.
func fillLayerRGBA(buf []byte, vals []float64, v LayerView) {
	stops := stopsFor(v)
	if len(stops) == 0 {
		clear(buf[:len(vals)*4])
		return
	}
	lo, hi := 0.0, 1.0
	if v == ViewElevation && len(vals) > 0 {
		lo, hi = vals[0], vals[0]
		for _, x := range vals {
			lo = math.Min(lo, x)
			hi = math.Max(hi, x)
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	for i, x := range vals {
		col := rampColor(stops, (x-lo)/span)
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

func rampColor(stops []colorStop, t float64) color.RGBA {
	t = clamp01(t)
	for i := 1; i < len(stops); i++ {
		curr := stops[i]
		if t <= curr.t {
			prev := stops[i-1]
			local := 0.0
			if span := curr.t - prev.t; span > 0 {
				local = (t - prev.t) / span
			}
			return lerpRGBA(prev.col, curr.col, local)
		}
	}
	return stops[len(stops)-1].col
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	lerp := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// segment is a line in screen coordinates.
type segment struct {
	x1, y1, x2, y2 float64
}

// windArrow builds a shaft and two head strokes centred on (cx, cy) pointing
// toward the compass bearing direction (degrees, 0 east, 90 north). Screen y
// grows downward.
func windArrow(cx, cy, length, direction float64) [3]segment {
	rad := direction * math.Pi / 180
	nx, ny := math.Cos(rad), -math.Sin(rad)
	half := length / 2
	tipX, tipY := cx+nx*half, cy+ny*half
	tailX, tailY := cx-nx*half, cy-ny*half

	const headAngle = math.Pi / 6
	head := length * 0.3
	angle := math.Atan2(ny, nx)
	return [3]segment{
		{tailX, tailY, tipX, tipY},
		{tipX, tipY, tipX - math.Cos(angle+headAngle)*head, tipY - math.Sin(angle+headAngle)*head},
		{tipX, tipY, tipX - math.Cos(angle-headAngle)*head, tipY - math.Sin(angle-headAngle)*head},
	}
}

// arrowColor brightens with wind speed up to maxSpeed.
func arrowColor(speed, maxSpeed float64) color.RGBA {
	t := 0.0
	if maxSpeed > 0 {
		t = clamp01(speed / maxSpeed)
	}
	return color.RGBA{
		R: uint8(math.Round(80 + 70*t)),
		G: uint8(math.Round(170 + 70*t)),
		B: uint8(math.Round(230 + 20*t)),
		A: uint8(math.Round(150 + 90*t)),
	}
}
