package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/parcel-risk-service/internal/adapter/hazardapi"
	"github.com/couchcryptid/parcel-risk-service/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/parcel-risk-service/internal/adapter/kafka"
	"github.com/couchcryptid/parcel-risk-service/internal/config"
	"github.com/couchcryptid/parcel-risk-service/internal/domain"
	"github.com/couchcryptid/parcel-risk-service/internal/observability"
	"github.com/couchcryptid/parcel-risk-service/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	catalog := domain.DefaultCatalog()
	if cfg.RegionCatalogPath != "" {
		catalog, err = domain.LoadCatalogFile(cfg.RegionCatalogPath)
		if err != nil {
			logger.Error("failed to load region catalog", "path", cfg.RegionCatalogPath, "error", err)
			os.Exit(1)
		}
	}
	logger.Info("region catalog loaded", "regions", len(catalog.Regions()), "path", cfg.RegionCatalogPath)

	// Upstream hazard lookups are feature-flagged via HAZARD_API_ENABLED / HAZARD_API_URL.
	var lookup domain.HazardLookup
	if cfg.HazardAPIEnabled {
		client := hazardapi.NewClient(cfg.HazardAPIURL, cfg.HazardAPIToken, cfg.HazardAPITimeout, metrics, logger)
		lookup = hazardapi.NewCachedLookup(client, cfg.HazardCacheSize, metrics)
		metrics.HazardEnabled.Set(1)
		logger.Info("hazard lookups enabled",
			"cache_size", cfg.HazardCacheSize,
			"timeout", cfg.HazardAPITimeout,
			"concurrency", cfg.HazardLookupConcurrency,
		)
	} else {
		logger.Info("hazard lookups disabled")
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(domain.NewAssessor(catalog), lookup, cfg.HazardLookupConcurrency, metrics, logger)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, transformer, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
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
