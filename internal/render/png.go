package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"firespread/internal/raster"
	"firespread/internal/sims/wildfire"
)

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

// FrameImage renders one simulation frame with the fire palette.
func FrameImage(f wildfire.Frame, scale int) *image.RGBA {
	s := f.Size()
	return CellsImage(f.AppendBytes(nil), s.W, s.H, wildfire.Palette(), scale)
}

// WriteFramePNGs writes frame_0000.png, frame_0001.png, ... into dir.
func WriteFramePNGs(dir string, seq *wildfire.Sequence, scale int) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating frame directory: %w", err)
	}
	for i, f := range seq.All() {
		path := filepath.Join(dir, fmt.Sprintf("frame_%04d.png", i))
		if err := WritePNG(path, FrameImage(f, scale)); err != nil {
			return err
		}
	}
	return nil
}

var (
	black     = color.RGBA{A: 255}
	white     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	bareSoil  = color.RGBA{R: 120, G: 100, B: 70, A: 255}
	denseFuel = color.RGBA{R: 20, G: 110, B: 30, A: 255}
	hot       = color.RGBA{R: 255, G: 60, B: 0, A: 255}
)

// WriteLayerPNGs writes elevation.png, fuel.png and probability.png into dir.
func WriteLayerPNGs(dir string, l *raster.Layers, scale int) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating layer directory: %w", err)
	}
	layers := []struct {
		name   string
		field  *raster.Field
		lo, hi color.RGBA
	}{
		{"elevation.png", l.Elevation, black, white},
		{"fuel.png", l.Fuel, bareSoil, denseFuel},
		{"probability.png", l.Probability, black, hot},
	}
	for _, layer := range layers {
		img := FieldImage(layer.field.Cells(), l.W, l.H, layer.lo, layer.hi, scale)
		if err := WritePNG(filepath.Join(dir, layer.name), img); err != nil {
			return err
		}
	}
	return nil
}
