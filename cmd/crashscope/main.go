package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/kooroshkz/CrashScope/internal/adapter/dataset"
	"github.com/kooroshkz/CrashScope/internal/config"
	"github.com/kooroshkz/CrashScope/internal/layer"
	"github.com/kooroshkz/CrashScope/internal/observability"
	"github.com/kooroshkz/CrashScope/internal/pipeline"
	"github.com/kooroshkz/CrashScope/internal/report"
	"github.com/kooroshkz/CrashScope/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	assets, err := web.LoadAssets()
	if err != nil {
		logger.Error("failed to load web assets", "error", err)
		os.Exit(1)
	}

	client := dataset.NewClient(cfg.DatasetURL, logger, metrics)
	builder := layer.NewBuilder(logger, metrics)
	reporter := report.NewReporter(logger)

	p := pipeline.New(client, builder, reporter, logger, metrics, clockwork.NewRealClock())

	srv := web.NewServer(cfg.HTTPAddr, p, cfg.Map, assets, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Run the render pipeline once. A failure ends in the Failed state with
	// an on-screen notice; the server keeps serving either way.
	go p.Run(ctx)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
