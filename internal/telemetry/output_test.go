package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"firespread/internal/config"
	"firespread/internal/sims/wildfire"
)

func TestNilManagerIsNoop(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("empty dir should disable output, got %v %v", om, err)
	}
	if err := om.WriteFrameStats(wildfire.FrameStats{}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatal(err)
	}
	if om.Dir() != "" || om.Path("x") != "" {
		t.Fatal("nil manager should report no paths")
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestFrameStatsHeaderWrittenOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteFrameStats(wildfire.FrameStats{Step: 0, Burning: 1}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteFrameStats(wildfire.FrameStats{Step: 1, Burnt: 1}, wildfire.FrameStats{Step: 2, Burnt: 1}); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "stats.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "step,unburnt,burning,burnt") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if strings.Count(string(data), "step,") != 1 {
		t.Fatal("header written more than once")
	}
}

func TestSweepSummaryAndConfig(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()
	if err := om.WriteSweep(wildfire.SweepResult{Index: 0, WindSpeed: 5, Replicates: 2}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(om.Path("config.yaml")); err != nil {
		t.Fatalf("written config should reload: %v", err)
	}
	sum := wildfire.RunSummary{Frames: 3, Cells: 25, FinalAffected: 5, BurnedFraction: 0.2}
	if err := om.WriteSummary(wildfire.DefaultParams(), "gradient", sum); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "summary.json"))
	if err != nil {
		t.Fatal(err)
	}
	var back struct {
		Source  string              `json:"probability_source"`
		Summary wildfire.RunSummary `json:"summary"`
	}
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Source != "gradient" || back.Summary.FinalAffected != 5 {
		t.Fatalf("summary = %+v", back)
	}
	if _, err := os.Stat(filepath.Join(dir, "sweep.csv")); err != nil {
		t.Fatal(err)
	}
}
