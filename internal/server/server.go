// Package server exposes simulation runs over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"firespread/internal/config"
	"firespread/internal/core"
	"firespread/internal/playback"
	"firespread/internal/raster"
	"firespread/internal/scenario"
	"firespread/internal/sims/wildfire"
	rng "firespread/pkg/core"
)

var errBadRequest = errors.New("bad request")

// baseInterval is the unscaled playback interval reported to clients.
const baseInterval = 400 * time.Millisecond

// Server serves runs over the currently loaded scenario.
type Server struct {
	cfg config.ServerConfig
	log *slog.Logger

	mu       sync.RWMutex
	scenario *scenario.Scenario
	entropy  *rng.RNG
}

// New creates a server for sc. entropySeed drives probability reseeding.
func New(sc *scenario.Scenario, cfg config.ServerConfig, entropySeed int64, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{cfg: cfg, log: logger, scenario: sc, entropy: rng.NewRNG(entropySeed)}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/simulate", s.handleSimulate)
	mux.HandleFunc("GET /api/stream", s.handleStream)
	mux.HandleFunc("POST /api/reseed", s.handleReseed)
	mux.HandleFunc("GET /api/config", s.handleConfig)
	return s.logRequests(mux)
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.Addr, Handler: s.Handler()}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("server listening", "addr", s.cfg.Addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// SimulateRequest overrides scenario parameters. Absent fields keep the
// scenario's values.
type SimulateRequest struct {
	WindSpeed         *float64         `json:"wind_speed"`
	WindDirection     *float64         `json:"wind_direction"`
	Humidity          *float64         `json:"humidity"`
	IgnitionThreshold *float64         `json:"ignition_threshold"`
	Steps             *int             `json:"steps"`
	Seed              *int64           `json:"seed"`
	Ignitions         []wildfire.Point `json:"ignitions"`
}

func (req SimulateRequest) apply(p wildfire.Params) wildfire.Params {
	if req.WindSpeed != nil {
		p.WindSpeed = *req.WindSpeed
	}
	if req.WindDirection != nil {
		p.WindDirection = *req.WindDirection
	}
	if req.Humidity != nil {
		p.Humidity = *req.Humidity
	}
	if req.IgnitionThreshold != nil {
		p.IgnitionThreshold = *req.IgnitionThreshold
	}
	if req.Steps != nil {
		p.Steps = *req.Steps
	}
	if req.Seed != nil {
		p.Seed = *req.Seed
	}
	if req.Ignitions != nil {
		p.Ignitions = req.Ignitions
	}
	return p
}

// SimulateResponse carries every frame as rows of state codes.
type SimulateResponse struct {
	Frames      [][][]int           `json:"frames"`
	FramesShape [2]int              `json:"frames_shape"`
	IntervalMS  int64               `json:"interval_ms"`
	Params      paramsJSON          `json:"params"`
	Summary     wildfire.RunSummary `json:"summary"`
}

type paramsJSON struct {
	WindSpeed         float64          `json:"wind_speed"`
	WindDirection     float64          `json:"wind_direction"`
	Humidity          float64          `json:"humidity"`
	IgnitionThreshold float64          `json:"ignition_threshold"`
	Steps             int              `json:"steps"`
	Seed              int64            `json:"seed"`
	Ignitions         []wildfire.Point `json:"ignitions"`
}

func toParamsJSON(p wildfire.Params, size core.Size) paramsJSON {
	return paramsJSON{
		WindSpeed:         p.WindSpeed,
		WindDirection:     p.WindDirection,
		Humidity:          p.Humidity,
		IgnitionThreshold: p.IgnitionThreshold,
		Steps:             p.Steps,
		Seed:              p.Seed,
		Ignitions:         p.IgnitionPoints(size),
	}
}

// rows converts a frame to nested ints; []uint8 would encode as base64.
func rows(f wildfire.Frame) [][]int {
	size := f.Size()
	out := make([][]int, size.H)
	for y := range out {
		row := make([]int, size.W)
		for x := range row {
			row[x] = int(f.At(x, y))
		}
		out[y] = row
	}
	return out
}

// snapshot returns the current layers and params under the read lock.
func (s *Server) snapshot() (*raster.Layers, wildfire.Params, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scenario.Layers, s.scenario.Params.Clone(), s.scenario.Source
}

func (s *Server) checkLimits(p wildfire.Params, size core.Size) error {
	if s.cfg.MaxSteps > 0 && p.Steps > s.cfg.MaxSteps {
		return fmt.Errorf("%w: steps %d exceeds limit %d", errBadRequest, p.Steps, s.cfg.MaxSteps)
	}
	if s.cfg.MaxCells > 0 && size.Area() > s.cfg.MaxCells {
		return fmt.Errorf("%w: grid of %d cells exceeds limit %d", errBadRequest, size.Area(), s.cfg.MaxCells)
	}
	return nil
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, fmt.Errorf("%w: decoding body: %v", errBadRequest, err))
		return
	}

	layers, base, _ := s.snapshot()
	params := req.apply(base)
	if err := params.CheckRanges(); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.checkLimits(params, layers.Size()); err != nil {
		s.writeError(w, err)
		return
	}
	seq, err := wildfire.RunContext(r.Context(), layers, params)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := SimulateResponse{
		Frames:      make([][][]int, 0, seq.Len()),
		FramesShape: [2]int{layers.H, layers.W},
		IntervalMS:  playback.EffectiveInterval(baseInterval, params.WindSpeed, params.IgnitionThreshold).Milliseconds(),
		Params:      toParamsJSON(params, layers.Size()),
		Summary:     wildfire.Summarize(wildfire.MeasureSequence(seq, params)),
	}
	for _, f := range seq.All() {
		resp.Frames = append(resp.Frames, rows(f))
	}
	s.log.Info("simulation served", "summary", resp.Summary)
	s.writeJSON(w, http.StatusOK, resp)
}

// StreamFrame is one NDJSON line of /api/stream.
type StreamFrame struct {
	Step    int     `json:"step"`
	Burning int     `json:"burning"`
	Burnt   int     `json:"burnt"`
	Cells   [][]int `json:"cells"`
}

// paramsFromQuery applies query overrides with the same clamping as the
// interactive controls.
func paramsFromQuery(p wildfire.Params, r *http.Request) (wildfire.Params, error) {
	q := r.URL.Query()
	var kvs []string
	for key, vals := range q {
		if key == "ignitions" || len(vals) == 0 {
			continue
		}
		kvs = append(kvs, key+"="+vals[len(vals)-1])
	}
	if err := core.ApplyOverrides(&p, kvs); err != nil {
		return p, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if v := q.Get("ignitions"); v != "" {
		pts, err := wildfire.ParsePoints(v)
		if err != nil {
			return p, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		p.Ignitions = pts
	}
	return p, nil
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	layers, base, _ := s.snapshot()
	params, err := paramsFromQuery(base, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.checkLimits(params, layers.Size()); err != nil {
		s.writeError(w, err)
		return
	}
	e, err := wildfire.New(layers, params)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	flusher, _ := w.(http.Flusher)
	enc := json.NewEncoder(w)
	for i, f := range e.Frames(r.Context()) {
		line := StreamFrame{Step: i, Burning: f.Count(wildfire.Burning), Burnt: f.Count(wildfire.Burnt), Cells: rows(f)}
		if err := enc.Encode(line); err != nil {
			s.log.Warn("stream aborted", "step", i, "error", err)
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// ReseedResponse reports the seeds drawn by /api/reseed.
type ReseedResponse struct {
	NoiseSeed int64 `json:"noise_seed"`
	RunSeed   int64 `json:"run_seed"`
}

func (s *Server) handleReseed(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	res, err := s.scenario.Reseed(s.entropy)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.log.Info("probability reseeded", "noise_seed", res.NoiseSeed, "run_seed", res.RunSeed)
	s.writeJSON(w, http.StatusOK, ReseedResponse{NoiseSeed: res.NoiseSeed, RunSeed: res.RunSeed})
}

// ConfigResponse describes the loaded scenario.
type ConfigResponse struct {
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	Source   string     `json:"probability_source"`
	Params   paramsJSON `json:"params"`
	MaxSteps int        `json:"max_steps"`
	Palette  [][3]uint8 `json:"palette"`
}

func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	layers, params, source := s.snapshot()
	resp := ConfigResponse{
		Width:    layers.W,
		Height:   layers.H,
		Source:   source,
		Params:   toParamsJSON(params, layers.Size()),
		MaxSteps: s.cfg.MaxSteps,
	}
	for _, c := range wildfire.Palette() {
		resp.Palette = append(resp.Palette, [3]uint8{c.R, c.G, c.B})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("response encoding failed", "status", status, "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, wildfire.ErrInvalidSteps),
		errors.Is(err, wildfire.ErrIgnitionOutOfRange),
		errors.Is(err, wildfire.ErrParamOutOfRange),
		errors.Is(err, core.ErrInvalidSize):
		status = http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		status = 499
	}
	s.writeJSON(w, status, map[string]string{"error": strings.TrimPrefix(err.Error(), "wildfire: ")})
}
