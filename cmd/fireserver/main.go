// Command fireserver exposes the fire spread simulation over HTTP.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"firespread/internal/app"
	"firespread/internal/scenario"
	"firespread/internal/server"
)

func main() {
	opts := app.NewOptions()
	opts.Bind(flag.CommandLine)
	addr := flag.String("addr", "", "Listen address (empty = config)")
	flag.Parse()

	logger := opts.Logger(os.Stdout)
	slog.SetDefault(logger)

	cfg, err := opts.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	sc, err := scenario.Build(cfg)
	if err != nil {
		slog.Error("failed to build scenario", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(sc, cfg.Server, time.Now().UnixNano(), logger)
	if err := srv.ListenAndServe(ctx); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
