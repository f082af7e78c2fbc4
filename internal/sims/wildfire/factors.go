package wildfire

import "math"

// DefaultSlopeK is the exponential growth rate used by SlopeFactor.
const DefaultSlopeK = 0.8

// The explicit float64 conversions below stop the compiler from fusing
// multiply-add pairs, keeping results identical across architectures.

// FuelFactor scales spread by fuel density: sparse fuel suppresses it, dense
// fuel amplifies it up to 2x.
func FuelFactor(fuel float64) float64 {
	return clamp(0.2+float64(1.8*fuel), 0.2, 2.0)
}

// SlopeFactor grows exponentially with local slope magnitude.
func SlopeFactor(slope, k float64) float64 {
	return clamp(math.Exp(k*slope), 0.8, 3.0)
}

// HumidityFactor suppresses spread linearly with relative humidity, floored
// at 0.1.
func HumidityFactor(humidityPct float64) float64 {
	return clamp(1-float64((humidityPct/100)*0.9), 0.1, 1.0)
}

// WindAlignmentFactor boosts spread toward cells downwind of the source and
// damps it upwind. angleDiffDegrees is the folded difference in [0,180]
// between the wind heading and the source-to-candidate direction.
func WindAlignmentFactor(angleDiffDegrees, windSpeed float64) float64 {
	bias := math.Cos(angleDiffDegrees * math.Pi / 180)
	return clamp(1+float64(bias*(windSpeed/10)), 0.2, 3.0)
}

// AngleDiff folds the difference between two headings into [0,180].
func AngleDiff(a, b float64) float64 {
	m := math.Mod(a-b+540, 360)
	if m < 0 {
		m += 360
	}
	return math.Abs(m - 180)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
