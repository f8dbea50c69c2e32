package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/neighborhood-insights/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/neighborhood-insights/internal/adapter/kafka"
	"github.com/couchcryptid/neighborhood-insights/internal/bootstrap"
	"github.com/couchcryptid/neighborhood-insights/internal/chat"
	"github.com/couchcryptid/neighborhood-insights/internal/config"
	"github.com/couchcryptid/neighborhood-insights/internal/insight"
	"github.com/couchcryptid/neighborhood-insights/internal/observability"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
)

func main() {
	// A .env file is optional; real environment variables take precedence.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	store, err := bootstrap.NewPlaceStore(cfg, logger, metrics)
	if err != nil {
		logger.Error("failed to build place store", "error", err)
		os.Exit(1)
	}
	resolver := insight.NewResolver(store, logger, metrics, insight.WithKeyNormalization(cfg.PlaceKeyNormalize))

	// Report publishing is feature-flagged via KAFKA_ENABLED.
	var (
		publisher insight.Publisher
		kafkaPub  *kafkaadapter.Publisher
	)
	if cfg.KafkaEnabled {
		kafkaPub = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPub
		logger.Info("kafka report publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaInsightsTopic)
	} else {
		logger.Info("kafka report publishing disabled")
	}

	service := insight.NewService(resolver, publisher, logger, metrics)
	sessions := chat.NewSessions()
	assistant := chat.NewAssistant(clockwork.NewRealClock(), cfg.ReplyDelay, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, cfg.CORSOrigins, service, sessions, assistant, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
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
	if kafkaPub != nil {
		if err := kafkaPub.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
