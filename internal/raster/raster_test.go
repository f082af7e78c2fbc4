package raster

import (
	"errors"
	"image"
	"image/color"
	"slices"
	"testing"

	"firespread/internal/core"
)

func TestUniformLayers(t *testing.T) {
	l, err := Uniform(8, 6, 0.5, 0.25, 0.75)
	if err != nil {
		t.Fatal(err)
	}
	if l.W != 8 || l.H != 6 {
		t.Fatalf("unexpected size %dx%d", l.W, l.H)
	}
	for i, v := range l.Fuel.Cells() {
		if v != 0.25 {
			t.Fatalf("fuel[%d] = %v", i, v)
		}
	}
}

func TestValidateRejectsMismatch(t *testing.T) {
	e, _ := core.NewGrid[float64](4, 4)
	f, _ := core.NewGrid[float64](4, 4)
	p, _ := core.NewGrid[float64](4, 5)
	if _, err := NewLayers(e, f, p); !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("expected ErrSizeMismatch, got %v", err)
	}
	if _, err := NewLayers(e, f, nil); !errors.Is(err, core.ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize for missing layer, got %v", err)
	}
	if _, err := Uniform(0, 3, 0, 0, 0); !errors.Is(err, core.ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize for zero width, got %v", err)
	}
}

func TestWithProbabilityLeavesOriginal(t *testing.T) {
	l, _ := Uniform(3, 3, 0, 0, 0.1)
	p, _ := core.FilledGrid(3, 3, 0.9)
	next, err := l.WithProbability(p)
	if err != nil {
		t.Fatal(err)
	}
	if l.Probability.Cells()[0] != 0.1 {
		t.Fatal("original layers must keep their probability field")
	}
	if next.Probability.Cells()[0] != 0.9 {
		t.Fatal("new layers should use the replacement field")
	}
	bad, _ := core.FilledGrid(2, 3, 0.9)
	if _, err := l.WithProbability(bad); !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("expected ErrSizeMismatch, got %v", err)
	}
}

func TestFromImageDerivesFuelAndElevation(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 32, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 32; x++ {
			c := color.RGBA{R: 20, G: 200, B: 20, A: 255}
			if x >= 16 {
				c = color.RGBA{R: 240, G: 240, B: 240, A: 255}
			}
			img.Set(x, y, c)
		}
	}

	terr, err := FromImage(img, 32)
	if err != nil {
		t.Fatal(err)
	}
	if terr.W != 32 || terr.H != MinImageSide {
		t.Fatalf("expected 32x%d raster, got %dx%d", MinImageSide, terr.W, terr.H)
	}

	left := terr.Fuel.At(2, 4)
	right := terr.Fuel.At(29, 4)
	if left <= right {
		t.Fatalf("green side should carry more fuel: left=%v right=%v", left, right)
	}
	lo, hi := slices.Min(terr.Elevation.Cells()), slices.Max(terr.Elevation.Cells())
	if lo != 0 || hi < 0.999 {
		t.Fatalf("elevation should be normalized to [0,1], got [%v,%v]", lo, hi)
	}
	if terr.Elevation.At(29, 4) <= terr.Elevation.At(2, 4) {
		t.Fatal("bright pixels should map to higher elevation")
	}

	if _, err := FromImage(image.NewRGBA(image.Rect(0, 0, 0, 0)), 10); !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("expected ErrEmptyImage, got %v", err)
	}
}

func TestSyntheticDeterministic(t *testing.T) {
	opts := SyntheticOptions{Width: 40, Height: 30, Seed: 11}
	a, err := Synthetic(opts)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Synthetic(opts)
	if !slices.Equal(a.Elevation.Cells(), b.Elevation.Cells()) || !slices.Equal(a.Fuel.Cells(), b.Fuel.Cells()) {
		t.Fatal("synthetic terrain must be deterministic for a seed")
	}
	for i, v := range a.Fuel.Cells() {
		if v < 0 || v > 1 {
			t.Fatalf("fuel[%d] out of range: %v", i, v)
		}
	}
	if slices.Min(a.Elevation.Cells()) != 0 {
		t.Fatal("elevation minimum should normalize to 0")
	}
	if _, err := Synthetic(SyntheticOptions{Width: 0, Height: 3}); !errors.Is(err, core.ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
}
