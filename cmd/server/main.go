// Command server runs the air quality dashboard API over the configured
// UCI Air Quality source file.
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

	httpadapter "github.com/openairlab/air-quality-service/internal/adapter/http"
	"github.com/openairlab/air-quality-service/internal/config"
	"github.com/openairlab/air-quality-service/internal/loader"
	"github.com/openairlab/air-quality-service/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	var datasetLoader httpadapter.Loader = httpadapter.LoaderFunc(loader.Load)
	if cfg.CacheEnabled {
		datasetLoader = loader.NewCached(loader.Load, clockwork.NewRealClock(), metrics)
		logger.Info("dataset cache enabled", "path", cfg.DataPath)
	} else {
		logger.Info("dataset cache disabled")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, cfg.DataPath, datasetLoader, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Warm the dataset before serving so /readyz reflects a real load.
	go func() {
		res, err := srv.Warm()
		if err != nil {
			logger.Error("initial dataset load failed", "error", err, "path", cfg.DataPath)
			return
		}
		logger.Info("dataset loaded",
			"path", cfg.DataPath,
			"rows", len(res.Dataset),
			"skipped_rows", len(res.Skipped),
		)
	}()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
