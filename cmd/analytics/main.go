package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/gridsight/outage-analytics/internal/adapter/http"
	kafkaadapter "github.com/gridsight/outage-analytics/internal/adapter/kafka"
	"github.com/gridsight/outage-analytics/internal/adapter/nominatim"
	"github.com/gridsight/outage-analytics/internal/config"
	"github.com/gridsight/outage-analytics/internal/domain"
	"github.com/gridsight/outage-analytics/internal/history"
	"github.com/gridsight/outage-analytics/internal/ingest"
	"github.com/gridsight/outage-analytics/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Initialize geocoder (feature-flagged via NOMINATIM_ENABLED).
	var geocoder domain.Geocoder
	if cfg.NominatimEnabled {
		client := nominatim.NewClient(cfg.NominatimBaseURL, cfg.NominatimTimeout, logger, metrics)
		geocoder = nominatim.NewCachedGeocoder(client, cfg.GeocodeCacheSize, cfg.GeocodeCacheTTL, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("nominatim geocoding enabled",
			"base_url", cfg.NominatimBaseURL,
			"cache_size", cfg.GeocodeCacheSize,
			"cache_ttl", cfg.GeocodeCacheTTL,
		)
	} else {
		logger.Info("nominatim geocoding disabled")
	}

	store := history.NewStore(cfg.HistoryMaxRecords)
	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := ingest.NewTransformer(geocoder, logger)

	p := ingest.New(reader, transformer, store, writer, logger, metrics, cfg.BatchSize, cfg.AlertMinCustomers)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start the feed ingest loop.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("ingest error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
