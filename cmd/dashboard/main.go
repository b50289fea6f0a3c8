package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/energy-dashboard-service/internal/adapter/excel"
	"github.com/couchcryptid/energy-dashboard-service/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/energy-dashboard-service/internal/adapter/kafka"
	"github.com/couchcryptid/energy-dashboard-service/internal/adapter/mapbox"
	"github.com/couchcryptid/energy-dashboard-service/internal/config"
	"github.com/couchcryptid/energy-dashboard-service/internal/dashboard"
	"github.com/couchcryptid/energy-dashboard-service/internal/domain"
	"github.com/couchcryptid/energy-dashboard-service/internal/observability"
	"github.com/couchcryptid/energy-dashboard-service/internal/pipeline"
	"github.com/couchcryptid/energy-dashboard-service/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	reader, err := excel.Open(cfg.DatasetPath, cfg.DatasetSheet, logger)
	if err != nil {
		logger.Error("failed to open dataset", "path", cfg.DatasetPath, "error", err)
		os.Exit(1)
	}

	st := store.New()
	var loader pipeline.BatchLoader = st
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, metrics, logger)
		loader = pipeline.NewTee(st, logger, func(error) { metrics.SnapshotPublishErrors.Inc() }, writer)
		logger.Info("snapshot publishing enabled", "topic", cfg.KafkaSnapshotTopic, "brokers", cfg.KafkaBrokers)
	}

	transformer := pipeline.NewTransformer(geocoder, logger)
	p := pipeline.New(reader, transformer, loader, logger, metrics, cfg.BatchSize)

	svc := dashboard.NewService(st, dashboard.Options{
		DefaultContinent: cfg.DefaultContinent,
		DefaultYears:     domain.YearRange{Start: cfg.DefaultYearStart, End: cfg.DefaultYearEnd},
		CacheTTL:         cfg.FigureCacheTTL,
		CacheSize:        cfg.FigureCacheSize,
	}, metrics, logger)
	svc.Start()

	srv := httpadapter.NewServer(httpadapter.Options{
		Addr:               cfg.HTTPAddr,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	}, svc, st, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	// Load the dataset once; the page answers 503 on /api until it is published.
	go func() {
		defer func() {
			if err := reader.Close(); err != nil {
				logger.Error("workbook close error", "error", err)
			}
		}()
		if err := p.Run(ctx); err != nil {
			logger.Error("dataset load failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	svc.Stop()
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
