package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/allthingslinux/tux-sub001/app/registry"
	"github.com/allthingslinux/tux-sub001/app/shared/observability"
	sharedmetrics "github.com/allthingslinux/tux-sub001/app/shared/observability/metrics"
	"github.com/allthingslinux/tux-sub001/config"
	"github.com/allthingslinux/tux-sub001/db/bundb"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := observability.NewLogger(os.Stdout, slog.LevelInfo)

	obs, err := observability.Init(ctx, observability.Config{
		ServiceName:  "guild-datalayer",
		Environment:  cfg.Observability.Environment,
		OTLPEndpoint: cfg.Observability.OTLPEndpoint,
		SampleRate:   cfg.Observability.SampleRate,
	}, logger)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}

	dbService := bundb.New(cfg.Postgres)
	if err := dbService.Connect(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := dbService.Migrate(ctx); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	promRegistry := prometheus.NewRegistry()
	metrics := sharedmetrics.NewPrometheusMetrics(promRegistry)

	controllers := registry.New(dbService, logger, metrics, obs.Tracer, cfg.Levels)
	for _, name := range []string{registry.ControllerCases, registry.ControllerGuildConfig, registry.ControllerLevels} {
		if _, err := controllers.Controller(name); err != nil {
			logger.Error("failed to construct controller", "controller", name, "error", err)
			os.Exit(1)
		}
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Handle("/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := dbService.DB(); err != nil {
			http.Error(w, "database not connected", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	addr := cfg.Observability.MetricsAddress
	if addr == "" {
		addr = ":9090"
	}
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
			cancel()
		}
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case <-interrupt:
		logger.Info("received shutdown signal")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown failed", "error", err)
	}
	if err := dbService.Disconnect(); err != nil {
		logger.Error("database disconnect failed", "error", err)
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		logger.Error("observability shutdown failed", "error", err)
	}

	logger.Info("shutdown complete")
}
