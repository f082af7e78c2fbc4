// Package telemetry writes run artifacts: per-frame statistics, sweep tables,
// the effective configuration and a run summary.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"firespread/internal/config"
	"firespread/internal/sims/wildfire"
)

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir       string
	statsFile *os.File
	sweepFile *os.File

	statsHeaderWritten bool
	sweepHeaderWritten bool
}

// NewOutputManager creates the output directory. Returns nil if dir is empty
// (output disabled); every method is a no-op on a nil manager.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &OutputManager{dir: dir}, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteFrameStats appends records to stats.csv, writing the header once.
func (om *OutputManager) WriteFrameStats(stats ...wildfire.FrameStats) error {
	if om == nil || len(stats) == 0 {
		return nil
	}
	if om.statsFile == nil {
		f, err := os.Create(filepath.Join(om.dir, "stats.csv"))
		if err != nil {
			return fmt.Errorf("creating stats.csv: %w", err)
		}
		om.statsFile = f
	}
	if !om.statsHeaderWritten {
		if err := gocsv.Marshal(stats, om.statsFile); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
		om.statsHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(stats, om.statsFile); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}
	return nil
}

// WriteSweep appends sweep results to sweep.csv, writing the header once.
func (om *OutputManager) WriteSweep(results ...wildfire.SweepResult) error {
	if om == nil || len(results) == 0 {
		return nil
	}
	if om.sweepFile == nil {
		f, err := os.Create(filepath.Join(om.dir, "sweep.csv"))
		if err != nil {
			return fmt.Errorf("creating sweep.csv: %w", err)
		}
		om.sweepFile = f
	}
	if !om.sweepHeaderWritten {
		if err := gocsv.Marshal(results, om.sweepFile); err != nil {
			return fmt.Errorf("writing sweep: %w", err)
		}
		om.sweepHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(results, om.sweepFile); err != nil {
		return fmt.Errorf("writing sweep: %w", err)
	}
	return nil
}

type summaryFile struct {
	Params  wildfire.Params     `json:"params"`
	Source  string              `json:"probability_source"`
	Summary wildfire.RunSummary `json:"summary"`
}

// WriteSummary saves the run summary as JSON.
func (om *OutputManager) WriteSummary(params wildfire.Params, source string, sum wildfire.RunSummary) error {
	if om == nil {
		return nil
	}
	data, err := json.MarshalIndent(summaryFile{Params: params, Source: source, Summary: sum}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(om.dir, "summary.json"), data, 0644); err != nil {
		return fmt.Errorf("writing summary.json: %w", err)
	}
	return nil
}

// Path joins name onto the output directory.
func (om *OutputManager) Path(name string) string {
	if om == nil {
		return ""
	}
	return filepath.Join(om.dir, name)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, f := range []*os.File{om.statsFile, om.sweepFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
