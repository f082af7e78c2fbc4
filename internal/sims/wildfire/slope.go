package wildfire

import (
	"math"

	"firespread/internal/core"
	"firespread/internal/raster"
)

// flatEpsilon is the largest slope maximum still treated as flat terrain.
const flatEpsilon = 1e-6

// DeriveSlope computes the gradient magnitude of elevation with toroidal
// central differences and rescales it so the steepest cell maps to 1. Flat
// elevation yields an all-zero field.
func DeriveSlope(elevation *raster.Field) (*raster.Field, error) {
	w, h := elevation.W, elevation.H
	out, err := core.NewGrid[float64](w, h)
	if err != nil {
		return nil, err
	}
	cells := out.Cells()

	peak := 0.0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dzdx := (elevation.At(x+1, y) - elevation.At(x-1, y)) / 2
			dzdy := (elevation.At(x, y+1) - elevation.At(x, y-1)) / 2
			s := math.Sqrt(float64(dzdx*dzdx) + float64(dzdy*dzdy))
			cells[y*w+x] = s
			peak = math.Max(peak, s)
		}
	}
	if peak > flatEpsilon {
		for i := range cells {
			cells[i] /= peak
		}
	}
	return out, nil
}
