package app

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"firespread/internal/config"
	"firespread/internal/sims/wildfire"
)

func parseOptions(t *testing.T, args ...string) *Options {
	t.Helper()
	o := NewOptions()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	o.Bind(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return o
}

func TestOptionsLayerFlagsOverConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("simulation:\n  humidity: 60\n  seed: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	o := parseOptions(t,
		"-config", path,
		"-seed", "17",
		"-set", "wind_speed=9",
		"-set", "steps=12",
		"-ignite", "1,2;3,4",
		"-probability", "random",
	)
	cfg, err := o.Load()
	if err != nil {
		t.Fatal(err)
	}
	p := cfg.SimulationParams()
	if p.Seed != 17 || p.WindSpeed != 9 || p.Steps != 12 || p.Humidity != 60 {
		t.Fatalf("params = %+v", p)
	}
	if len(p.Ignitions) != 2 || p.Ignitions[1] != (wildfire.Point{X: 3, Y: 4}) {
		t.Fatalf("ignitions = %v", p.Ignitions)
	}
	if cfg.Probability.Source != "random" {
		t.Fatalf("source = %q", cfg.Probability.Source)
	}
}

func TestOptionsRejectBadOverrides(t *testing.T) {
	if _, err := parseOptions(t, "-set", "bogus=1").Load(); err == nil {
		t.Fatal("unknown keys should be rejected")
	}
	if _, err := parseOptions(t, "-set", "wind_speed").Load(); err == nil {
		t.Fatal("missing '=' should be rejected")
	}
	if _, err := parseOptions(t, "-ignite", "1;2").Load(); err == nil {
		t.Fatal("malformed ignitions should be rejected")
	}
	_, err := parseOptions(t, "-set", "steps=0").Load()
	if err != nil {
		t.Fatalf("steps are clamped to their minimum, got %v", err)
	}
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("playback:\n  base_interval_ms: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := parseOptions(t, "-config", bad).Load(); !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestOptionsLogger(t *testing.T) {
	var buf bytes.Buffer
	parseOptions(t).Logger(&buf).Info("hello", "n", 1)
	if !strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("default logger should write JSON, got %q", buf.String())
	}
	buf.Reset()
	o := parseOptions(t, "-log-format", "text", "-debug")
	o.Logger(&buf).Debug("detail")
	if !strings.Contains(buf.String(), "level=DEBUG") {
		t.Fatalf("text debug output = %q", buf.String())
	}
}
