package render

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"firespread/internal/sims/wildfire"
)

// WriteBurnChart renders burning and burnt cell counts per step as a PNG line
// chart.
func WriteBurnChart(w io.Writer, stats []wildfire.FrameStats) error {
	if len(stats) < 2 {
		return fmt.Errorf("rendering chart: need at least 2 frames, got %d", len(stats))
	}
	xs := make([]float64, len(stats))
	burning := make([]float64, len(stats))
	burnt := make([]float64, len(stats))
	for i, st := range stats {
		xs[i] = float64(st.Step)
		burning[i] = float64(st.Burning)
		burnt[i] = float64(st.Burnt)
	}

	graph := chart.Chart{
		Width:  800,
		Height: 320,
		XAxis: chart.XAxis{
			Name:  "step",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "cells",
			Style: chart.Style{FontSize: 10.0},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Burning",
				XValues: xs,
				YValues: burning,
				Style:   chart.Style{StrokeColor: drawing.Color{R: 255, G: 69, B: 0, A: 255}, StrokeWidth: 3.0},
			},
			chart.ContinuousSeries{
				Name:    "Burnt",
				XValues: xs,
				YValues: burnt,
				Style:   chart.Style{StrokeColor: drawing.Color{R: 80, G: 80, B: 80, A: 255}, StrokeWidth: 3.0},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}
