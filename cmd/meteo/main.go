package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "github.com/tlsemeteo/meteo-console/internal/adapter/http"
	"github.com/tlsemeteo/meteo-console/internal/adapter/opendata"
	"github.com/tlsemeteo/meteo-console/internal/cli"
	"github.com/tlsemeteo/meteo-console/internal/config"
	"github.com/tlsemeteo/meteo-console/internal/observability"
	"github.com/tlsemeteo/meteo-console/internal/repository"
	"github.com/tlsemeteo/meteo-console/internal/scheduler"
	"github.com/tlsemeteo/meteo-console/internal/service"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	stations, err := config.LoadStations(cfg.StationsFile)
	if err != nil {
		logger.Error("failed to load stations", "file", cfg.StationsFile, "error", err)
		os.Exit(1)
	}

	files := repository.NewCSVSource(cfg.DataDir, stations, logger)
	client := opendata.NewClient(cfg.APIBaseURL, cfg.APITimeout, logger)
	online := repository.NewCachedSource(client, stations, cfg.CacheCapacity, cfg.FetchLimit, logger, metrics)
	updater := service.NewUpdater(files, cfg.DataDir, stations, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional debug endpoints (DEBUG_ADDR).
	var srv *httpadapter.Server
	if cfg.DebugAddr != "" {
		srv = httpadapter.NewServer(cfg.DebugAddr, online, online, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("debug server error", "error", err)
			}
		}()
	}

	// Optional background refresh (REFRESH_ENABLED / REFRESH_INTERVAL).
	if cfg.RefreshEnabled {
		sched := scheduler.New(online, cfg.RefreshInterval, logger)
		if err := sched.Start(); err != nil {
			logger.Error("failed to start refresh scheduler", "error", err)
			os.Exit(1)
		}
		defer sched.Stop()
	}

	menu := cli.NewMenu(os.Stdin, os.Stdout, files, online, updater, logger)
	if err := menu.Run(ctx); err != nil &&
		!errors.Is(err, io.EOF) &&
		!errors.Is(err, context.Canceled) {
		logger.Error("console error", "error", err)
	}
	stop()

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("debug server shutdown error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
