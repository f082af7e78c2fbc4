package raster

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register decoders for Load
	_ "image/png"
	"math"
	"os"

	"firespread/internal/core"

	"github.com/ojrac/opensimplex-go"
	"golang.org/x/image/draw"
)

// ErrEmptyImage reports a source image with no pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// MinImageSide is the smallest raster side produced from an image.
const MinImageSide = 16

// Terrain is the output of a raster provider: elevation and fuel without a
// probability layer.
type Terrain struct {
	W, H      int
	Elevation *Field
	Fuel      *Field
}

// Layers combines the terrain with a probability field.
func (t *Terrain) Layers(probability *Field) (*Layers, error) {
	return NewLayers(t.Elevation, t.Fuel, probability)
}

// LoadImage decodes a PNG or JPEG file and converts it with FromImage.
func LoadImage(path string, targetW int) (*Terrain, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening terrain image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding terrain image: %w", err)
	}
	return FromImage(img, targetW)
}

// FromImage resamples img proportionally to targetW columns (never below
// MinImageSide on either axis) and derives elevation from luminance and fuel
// from greenness. Elevation is min-max normalized into [0,1].
func FromImage(img image.Image, targetW int) (*Terrain, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptyImage
	}
	if targetW <= 0 {
		targetW = b.Dx()
	}
	scale := float64(targetW) / float64(b.Dx())
	w := max(MinImageSide, int(math.Floor(float64(b.Dx())*scale)))
	h := max(MinImageSide, int(math.Floor(float64(b.Dy())*scale)))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)

	elev, err := core.NewGrid[float64](w, h)
	if err != nil {
		return nil, err
	}
	fuel, _ := core.NewGrid[float64](w, h)
	ec, fc := elev.Cells(), fuel.Cells()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := dst.Pix[y*dst.Stride+x*4:]
			r := float64(p[0]) / 255
			g := float64(p[1]) / 255
			bl := float64(p[2]) / 255
			lum := 0.2126*r + 0.7152*g + 0.0722*bl
			i := y*w + x
			ec[i] = lum
			// Favor green, penalize bright rock and snow.
			fc[i] = clamp01(g*0.8 + (g-r)*0.2 - (lum-0.6)*0.3)
		}
	}
	normalize(ec)
	return &Terrain{W: w, H: h, Elevation: elev, Fuel: fuel}, nil
}

// SyntheticOptions controls procedural terrain generation.
type SyntheticOptions struct {
	Width   int
	Height  int
	Seed    int64
	Scale   float64
	Octaves int
}

// Synthetic builds a terrain from layered opensimplex noise. Fuel uses an
// independent noise field damped on high ground.
func Synthetic(opts SyntheticOptions) (*Terrain, error) {
	elev, err := core.NewGrid[float64](opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	fuel, _ := core.NewGrid[float64](opts.Width, opts.Height)
	scale := opts.Scale
	if scale <= 0 {
		scale = 0.04
	}
	octaves := opts.Octaves
	if octaves <= 0 {
		octaves = 4
	}

	elevNoise := opensimplex.NewNormalized(opts.Seed)
	fuelNoise := opensimplex.NewNormalized(opts.Seed + 1)
	ec, fc := elev.Cells(), fuel.Cells()
	for y := 0; y < opts.Height; y++ {
		for x := 0; x < opts.Width; x++ {
			i := y*opts.Width + x
			ec[i] = fractal(elevNoise, float64(x)*scale, float64(y)*scale, octaves)
		}
	}
	normalize(ec)
	for y := 0; y < opts.Height; y++ {
		for x := 0; x < opts.Width; x++ {
			i := y*opts.Width + x
			v := fractal(fuelNoise, float64(x)*scale*1.7, float64(y)*scale*1.7, 2)
			fc[i] = clamp01(v*1.1 - 0.35*ec[i] + 0.1)
		}
	}
	return &Terrain{W: opts.Width, H: opts.Height, Elevation: elev, Fuel: fuel}, nil
}

func fractal(n opensimplex.Noise, x, y float64, octaves int) float64 {
	sum, amp, norm, freq := 0.0, 1.0, 0.0, 1.0
	for o := 0; o < octaves; o++ {
		sum += amp * n.Eval2(x*freq, y*freq)
		norm += amp
		amp *= 0.5
		freq *= 2
	}
	return sum / norm
}

// normalize rescales values into [0,1]; the span is floored at 1e-6 so flat
// inputs collapse to zero instead of dividing by zero.
func normalize(vals []float64) {
	if len(vals) == 0 {
		return
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := math.Max(1e-6, hi-lo)
	for i, v := range vals {
		vals[i] = (v - lo) / span
	}
}
