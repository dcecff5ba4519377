package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/disasterwatch/alert-aggregation-service/internal/adapter/eonet"
	"github.com/disasterwatch/alert-aggregation-service/internal/adapter/httpapi"
	kafkaadapter "github.com/disasterwatch/alert-aggregation-service/internal/adapter/kafka"
	"github.com/disasterwatch/alert-aggregation-service/internal/adapter/openweather"
	"github.com/disasterwatch/alert-aggregation-service/internal/adapter/usgs"
	"github.com/disasterwatch/alert-aggregation-service/internal/aggregator"
	"github.com/disasterwatch/alert-aggregation-service/internal/config"
	"github.com/disasterwatch/alert-aggregation-service/internal/observability"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(observability.LoggerOptions{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	metrics := observability.NewMetrics()

	table, err := config.LoadLocationTable(cfg.LocationsFile)
	if err != nil {
		logger.Error("failed to load location tables", "error", err)
		os.Exit(1)
	}

	weatherClient := openweather.NewClient(cfg.OpenWeatherAPIKey, cfg.RequestTimeout, cfg.WeatherRateLimit, metrics, logger)
	sources := []aggregator.Source{
		openweather.NewSource(weatherClient, table, metrics, logger),
		usgs.NewClient(cfg.BoundingBox, cfg.SeismicMinMagnitude, cfg.SeismicLookback, cfg.RequestTimeout, logger),
		eonet.NewLandslideClient(cfg.BoundingBox, cfg.RequestTimeout, logger),
	}
	if cfg.SevereStormsEnabled {
		sources = append(sources, eonet.NewSevereStormClient(cfg.BoundingBox, cfg.RequestTimeout, logger))
	}

	// Alert feed is feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	var publisher aggregator.Publisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("kafka alert feed enabled", "topic", cfg.KafkaAlertsTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka alert feed disabled")
	}

	agg := aggregator.New(sources, publisher, logger, metrics, clockwork.NewRealClock(), cfg.FetchInterval)

	srv := httpapi.NewServer(cfg.HTTPAddr, agg, agg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start aggregation loop.
	go func() {
		if err := agg.Run(ctx); err != nil {
			logger.Error("aggregator error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
