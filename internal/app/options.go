package app

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"firespread/internal/config"
	"firespread/internal/core"
	"firespread/internal/sims/wildfire"
)

// Options are the flags shared by every command. Flag values win over the
// config file, which wins over the embedded defaults.
type Options struct {
	ConfigPath string
	Image      string
	Source     string
	OutputDir  string
	Ignitions  string
	Seed       int64
	LogFormat  string
	Debug      bool
	Overrides  overrideList
}

type overrideList []string

func (l *overrideList) String() string { return strings.Join(*l, ",") }

func (l *overrideList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// NewOptions returns options with the default log format.
func NewOptions() *Options {
	return &Options{LogFormat: "json"}
}

// Bind registers the shared flags on fs.
func (o *Options) Bind(fs *flag.FlagSet) {
	fs.StringVar(&o.ConfigPath, "config", o.ConfigPath, "Path to config.yaml (empty = use defaults)")
	fs.StringVar(&o.Image, "image", o.Image, "Terrain image; overrides synthetic terrain")
	fs.StringVar(&o.Source, "probability", o.Source, "Probability source: gradient, random or uniform")
	fs.StringVar(&o.OutputDir, "output-dir", o.OutputDir, "Directory for run artifacts (empty = none)")
	fs.StringVar(&o.Ignitions, "ignite", o.Ignitions, `Ignition points as "x,y;x,y" (empty = grid centre)`)
	fs.Int64Var(&o.Seed, "seed", o.Seed, "Simulation seed (0 = config value)")
	fs.StringVar(&o.LogFormat, "log-format", o.LogFormat, "Log output: json or text")
	fs.BoolVar(&o.Debug, "debug", o.Debug, "Enable debug logging")
	fs.Var(&o.Overrides, "set", "Parameter override key=value (repeatable)")
}

// Load reads the config file and applies the flag overrides on top.
func (o *Options) Load() (*config.Config, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, err
	}
	if o.Image != "" {
		cfg.Terrain.Image = o.Image
	}
	if o.Source != "" {
		cfg.Probability.Source = o.Source
	}
	if o.OutputDir != "" {
		cfg.Output.Dir = o.OutputDir
	}

	p := cfg.SimulationParams()
	if o.Seed != 0 {
		p.Seed = o.Seed
	}
	if o.Ignitions != "" {
		pts, err := wildfire.ParsePoints(o.Ignitions)
		if err != nil {
			return nil, fmt.Errorf("parsing -ignite: %w", err)
		}
		p.Ignitions = pts
	}
	if err := core.ApplyOverrides(&p, o.Overrides); err != nil {
		return nil, err
	}
	cfg.SetSimulationParams(p)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SimConfig turns the -set overrides plus -seed, -probability and -ignite
// into the flag-style map taken by registered simulation factories. The
// config file is not consulted.
func (o *Options) SimConfig() (map[string]string, error) {
	cfg := make(map[string]string, len(o.Overrides)+3)
	for _, kv := range o.Overrides {
		k, v, ok := strings.Cut(kv, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("override %q: expected key=value", kv)
		}
		cfg[k] = strings.TrimSpace(v)
	}
	if o.Seed != 0 {
		cfg["seed"] = strconv.FormatInt(o.Seed, 10)
	}
	if o.Source != "" {
		cfg["probability"] = o.Source
	}
	if o.Ignitions != "" {
		cfg["ignitions"] = o.Ignitions
	}
	return cfg, nil
}

// Logger builds the structured logger selected by the flags.
func (o *Options) Logger(w io.Writer) *slog.Logger {
	hopts := &slog.HandlerOptions{}
	if o.Debug {
		hopts.Level = slog.LevelDebug
	}
	if o.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, hopts))
	}
	return slog.New(slog.NewJSONHandler(w, hopts))
}
