// Package config provides configuration loading for the fire spread tools.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"firespread/internal/sims/wildfire"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig reports a configuration value outside its allowed range.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds every tunable of a run.
type Config struct {
	Terrain     TerrainConfig     `yaml:"terrain"`
	Probability ProbabilityConfig `yaml:"probability"`
	Simulation  SimulationConfig  `yaml:"simulation"`
	Playback    PlaybackConfig    `yaml:"playback"`
	Output      OutputConfig      `yaml:"output"`
	Server      ServerConfig      `yaml:"server"`
	Sweep       SweepConfig       `yaml:"sweep"`
}

// TerrainConfig selects the terrain source. A non-empty Image wins over the
// synthetic generator.
type TerrainConfig struct {
	Image       string  `yaml:"image"`
	TargetWidth int     `yaml:"target_width"` // Resample width for images
	Width       int     `yaml:"width"`        // Synthetic terrain width
	Height      int     `yaml:"height"`       // Synthetic terrain height
	Seed        int64   `yaml:"seed"`
	Scale       float64 `yaml:"scale"` // Base noise frequency
	Octaves     int     `yaml:"octaves"`
}

// ProbabilityConfig selects the probability source.
type ProbabilityConfig struct {
	Source  string  `yaml:"source"`  // gradient, random or uniform
	Seed    int64   `yaml:"seed"`    // 0 = simulation seed
	Uniform float64 `yaml:"uniform"` // Value used by the uniform source
}

// SimulationConfig mirrors wildfire.Params.
type SimulationConfig struct {
	WindSpeed         float64          `yaml:"wind_speed"`
	WindDirection     float64          `yaml:"wind_direction"`
	Humidity          float64          `yaml:"humidity"`
	IgnitionThreshold float64          `yaml:"ignition_threshold"`
	Steps             int              `yaml:"steps"`
	Seed              int64            `yaml:"seed"`
	Ignitions         []wildfire.Point `yaml:"ignitions"`
}

// PlaybackConfig controls interactive players.
type PlaybackConfig struct {
	BaseIntervalMS int `yaml:"base_interval_ms"`
	Scale          int `yaml:"scale"` // Screen pixels per cell
}

// OutputConfig controls run artifacts.
type OutputConfig struct {
	Dir       string `yaml:"dir"` // Empty disables file output
	StatsCSV  bool   `yaml:"stats_csv"`
	FramesPNG bool   `yaml:"frames_png"`
	Video     bool   `yaml:"video"`
	VideoFPS  int    `yaml:"video_fps"`
	Chart     bool   `yaml:"chart"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr     string `yaml:"addr"`
	MaxSteps int    `yaml:"max_steps"` // Upper bound on steps per request
	MaxCells int    `yaml:"max_cells"` // Upper bound on w*h per request
}

// SweepConfig describes a parameter sweep.
type SweepConfig struct {
	Workers        int       `yaml:"workers"` // 0 = NumCPU
	Replicates     int       `yaml:"replicates"`
	WindSpeeds     []float64 `yaml:"wind_speeds"`
	WindDirections []float64 `yaml:"wind_directions"`
	Humidities     []float64 `yaml:"humidities"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	if s := c.Simulation; s.Steps < 1 {
		return fmt.Errorf("%w: simulation.steps must be >= 1, got %d", ErrInvalidConfig, s.Steps)
	}
	if err := c.SimulationParams().CheckRanges(); err != nil {
		return fmt.Errorf("%w: simulation: %w", ErrInvalidConfig, err)
	}
	if c.Terrain.Image == "" && (c.Terrain.Width <= 0 || c.Terrain.Height <= 0) {
		return fmt.Errorf("%w: terrain.width and terrain.height must be positive", ErrInvalidConfig)
	}
	if c.Terrain.Image != "" && c.Terrain.TargetWidth <= 0 {
		return fmt.Errorf("%w: terrain.target_width must be positive", ErrInvalidConfig)
	}
	if c.Playback.BaseIntervalMS <= 0 {
		return fmt.Errorf("%w: playback.base_interval_ms must be positive", ErrInvalidConfig)
	}
	return nil
}

// SimulationParams converts the simulation section to engine parameters.
func (c *Config) SimulationParams() wildfire.Params {
	s := c.Simulation
	return wildfire.Params{
		WindSpeed:         s.WindSpeed,
		WindDirection:     s.WindDirection,
		Humidity:          s.Humidity,
		IgnitionThreshold: s.IgnitionThreshold,
		Steps:             s.Steps,
		Seed:              s.Seed,
		Ignitions:         append([]wildfire.Point(nil), s.Ignitions...),
	}
}

// SetSimulationParams stores p back into the simulation section.
func (c *Config) SetSimulationParams(p wildfire.Params) {
	c.Simulation = SimulationConfig{
		WindSpeed:         p.WindSpeed,
		WindDirection:     p.WindDirection,
		Humidity:          p.Humidity,
		IgnitionThreshold: p.IgnitionThreshold,
		Steps:             p.Steps,
		Seed:              p.Seed,
		Ignitions:         append([]wildfire.Point(nil), p.Ignitions...),
	}
}

// BaseInterval returns the playback base interval.
func (c *Config) BaseInterval() time.Duration {
	return time.Duration(c.Playback.BaseIntervalMS) * time.Millisecond
}

// ProbabilitySeed returns the seed used for probability generation.
func (c *Config) ProbabilitySeed() int64 {
	if c.Probability.Seed != 0 {
		return c.Probability.Seed
	}
	return c.Simulation.Seed
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
