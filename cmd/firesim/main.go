// Command firesim runs one fire spread simulation headlessly and writes its
// artifacts: per-frame statistics, a burn chart, layer images, optional
// frame PNGs and an MJPEG video.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"firespread/internal/app"
)

func main() {
	opts := app.NewOptions()
	opts.Bind(flag.CommandLine)
	frames := flag.Bool("frames", false, "Write one PNG per frame")
	video := flag.Bool("video", false, "Write an MJPEG video of the run")
	flag.Parse()

	logger := opts.Logger(os.Stdout)
	slog.SetDefault(logger)

	cfg, err := opts.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg.Output.FramesPNG = cfg.Output.FramesPNG || *frames
	cfg.Output.Video = cfg.Output.Video || *video

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := app.RunBatch(ctx, cfg, logger); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}
