package wildfire

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat"

	"firespread/internal/raster"
)

// SweepResult is the outcome of one parameter set across its replicates.
type SweepResult struct {
	Index         int     `csv:"index"`
	WindSpeed     float64 `csv:"wind_speed"`
	WindDirection float64 `csv:"wind_direction"`
	Humidity      float64 `csv:"humidity"`
	Steps         int     `csv:"steps"`
	Replicates    int     `csv:"replicates"`
	MeanBurned    float64 `csv:"mean_burned_fraction"`
	StdBurned     float64 `csv:"std_burned_fraction"`
	MeanDownwind  float64 `csv:"mean_downwind_extent"`
	MeanUpwind    float64 `csv:"mean_upwind_extent"`
	MeanPeakStep  float64 `csv:"mean_peak_step"`
	Err           string  `csv:"error"`
}

// SweepOptions controls a batch of runs.
type SweepOptions struct {
	// Workers bounds concurrency; zero means runtime.NumCPU.
	Workers int
	// Replicates runs each set with seeds Seed, Seed+1, ...; zero means one.
	Replicates int
}

type sweepJob struct {
	index  int
	params Params
}

// Sweep runs every parameter set against the same layers using a pool of
// workers. Each run owns its engine and generator, so results do not depend on
// scheduling. Results are returned in input order.
func Sweep(ctx context.Context, layers *raster.Layers, sets []Params, opts SweepOptions) ([]SweepResult, error) {
	if err := layers.Validate(); err != nil {
		return nil, fmt.Errorf("wildfire: sweep: %w", err)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	reps := opts.Replicates
	if reps <= 0 {
		reps = 1
	}

	jobs := make(chan sweepJob)
	results := make(chan SweepResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results <- runReplicates(ctx, layers, job, reps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for i, p := range sets {
			select {
			case jobs <- sweepJob{index: i, params: p}:
			case <-ctx.Done():
				return
			}
		}
	}()

	all := make([]SweepResult, 0, len(sets))
	for res := range results {
		all = append(all, res)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Index < all[j].Index })
	return all, nil
}

func runReplicates(ctx context.Context, layers *raster.Layers, job sweepJob, reps int) SweepResult {
	p := job.params
	res := SweepResult{
		Index:         job.index,
		WindSpeed:     p.WindSpeed,
		WindDirection: p.WindDirection,
		Humidity:      p.Humidity,
		Steps:         p.Steps,
	}
	burned := make([]float64, 0, reps)
	down := make([]float64, 0, reps)
	up := make([]float64, 0, reps)
	peak := make([]float64, 0, reps)
	for r := 0; r < reps; r++ {
		run := p.Clone()
		run.Seed = p.Seed + int64(r)
		seq, err := RunContext(ctx, layers, run)
		if err != nil {
			res.Err = err.Error()
			return res
		}
		sum := Summarize(MeasureSequence(seq, run))
		burned = append(burned, sum.BurnedFraction)
		down = append(down, sum.Downwind)
		up = append(up, sum.Upwind)
		peak = append(peak, float64(sum.PeakStep))
	}
	res.Replicates = reps
	res.MeanBurned, res.StdBurned = stat.MeanStdDev(burned, nil)
	if reps == 1 {
		res.StdBurned = 0
	}
	res.MeanDownwind = stat.Mean(down, nil)
	res.MeanUpwind = stat.Mean(up, nil)
	res.MeanPeakStep = stat.Mean(peak, nil)
	return res
}

// Grid builds the cartesian product of wind speeds, directions and humidities
// on top of base.
func Grid(base Params, speeds, directions, humidities []float64) []Params {
	var sets []Params
	for _, s := range speeds {
		for _, d := range directions {
			for _, h := range humidities {
				p := base.Clone()
				p.WindSpeed = s
				p.WindDirection = d
				p.Humidity = h
				sets = append(sets, p)
			}
		}
	}
	return sets
}
