package scenario

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"firespread/internal/config"
	"firespread/internal/sims/wildfire"
	rng "firespread/pkg/core"
)

func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.Terrain.Width = 24
	cfg.Terrain.Height = 16
	cfg.Simulation.Steps = 6
	return cfg
}

func TestBuildSynthetic(t *testing.T) {
	sc, err := Build(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	if sc.Layers.W != 24 || sc.Layers.H != 16 {
		t.Fatalf("size = %dx%d", sc.Layers.W, sc.Layers.H)
	}
	if sc.Source != "gradient" {
		t.Fatalf("source = %q", sc.Source)
	}
	seq, err := sc.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if seq.Len() != 7 {
		t.Fatalf("frames = %d", seq.Len())
	}
}

func TestBuildUniformSource(t *testing.T) {
	cfg := smallConfig()
	cfg.Probability.Source = "uniform"
	cfg.Probability.Uniform = 0.25
	sc, err := Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range sc.Layers.Probability.Cells() {
		if v != 0.25 {
			t.Fatalf("probability = %v", v)
		}
	}
}

func TestBuildRejectsBadInputs(t *testing.T) {
	cfg := smallConfig()
	cfg.Probability.Source = "bogus"
	if _, err := Build(cfg); err == nil {
		t.Fatal("expected unknown source error")
	}
	cfg = smallConfig()
	cfg.Simulation.Ignitions = []wildfire.Point{{X: 40, Y: 1}}
	if _, err := Build(cfg); !errors.Is(err, wildfire.ErrIgnitionOutOfRange) {
		t.Fatalf("expected ErrIgnitionOutOfRange, got %v", err)
	}
	cfg = smallConfig()
	cfg.Terrain.Image = filepath.Join(t.TempDir(), "missing.png")
	if _, err := Build(cfg); err == nil {
		t.Fatal("expected error for missing image")
	}
}

func TestBuildFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 6), G: 160, B: 40, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "terrain.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	cfg := smallConfig()
	cfg.Terrain.Image = path
	cfg.Terrain.TargetWidth = 32
	sc, err := Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Layers.W != 32 || sc.Layers.H != 16 {
		t.Fatalf("image raster = %dx%d, want 32x16", sc.Layers.W, sc.Layers.H)
	}
}

func TestReseedReplacesProbabilityAndSeed(t *testing.T) {
	sc, err := Build(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	before := sc.Layers
	entropy := rng.NewRNG(5)
	res, err := sc.Reseed(entropy)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Layers == before || sc.Layers.Probability == before.Probability {
		t.Fatal("reseed should install new layers")
	}
	if sc.Layers.Elevation != before.Elevation {
		t.Fatal("reseed should keep terrain")
	}
	if sc.Params.Seed != res.RunSeed || sc.Source != "random" {
		t.Fatalf("params/source not updated: %d %q", sc.Params.Seed, sc.Source)
	}
	if _, err := sc.Engine(); err != nil {
		t.Fatal(err)
	}
}
