package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"firespread/internal/sims/wildfire"
)

func TestDefaultsMatchEngineDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	got := cfg.SimulationParams()
	want := wildfire.DefaultParams()
	if got.WindSpeed != want.WindSpeed || got.WindDirection != want.WindDirection ||
		got.Humidity != want.Humidity || got.IgnitionThreshold != want.IgnitionThreshold ||
		got.Steps != want.Steps || got.Seed != want.Seed {
		t.Fatalf("defaults = %+v, want %+v", got, want)
	}
	if cfg.Probability.Source != "gradient" {
		t.Fatalf("probability source = %q", cfg.Probability.Source)
	}
	if cfg.BaseInterval() != 400*time.Millisecond {
		t.Fatalf("base interval = %v", cfg.BaseInterval())
	}
	if cfg.ProbabilitySeed() != 42 {
		t.Fatalf("probability seed should fall back to the simulation seed")
	}
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	data := []byte(`
simulation:
  wind_speed: 12
  ignitions:
    - {x: 3, y: 4}
terrain:
  width: 64
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Simulation.WindSpeed != 12 || cfg.Terrain.Width != 64 {
		t.Fatalf("overrides not applied: %+v %+v", cfg.Simulation, cfg.Terrain)
	}
	if cfg.Simulation.Humidity != 25 || cfg.Terrain.Height != 150 {
		t.Fatal("fields absent from the file should keep their defaults")
	}
	p := cfg.SimulationParams()
	if len(p.Ignitions) != 1 || p.Ignitions[0] != (wildfire.Point{X: 3, Y: 4}) {
		t.Fatalf("ignitions = %v", p.Ignitions)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("simulation:\n  steps: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
	cfg := Default()
	cfg.Simulation.Humidity = 120
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for humidity, got %v", err)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	p := cfg.SimulationParams()
	p.Seed = 99
	p.Ignitions = []wildfire.Point{{X: 1, Y: 2}}
	cfg.SetSimulationParams(p)

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatal(err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.Simulation.Seed != 99 || len(back.Simulation.Ignitions) != 1 {
		t.Fatalf("written config not reloaded: %+v", back.Simulation)
	}
}
