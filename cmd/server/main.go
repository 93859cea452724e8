package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/TemirB/storefront/internal/auth"
	"github.com/TemirB/storefront/internal/config"
	"github.com/TemirB/storefront/internal/events"
	"github.com/TemirB/storefront/internal/httpapi"
	"github.com/TemirB/storefront/internal/observability"
	"github.com/TemirB/storefront/internal/state"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewInmem(1000)

	store, err := state.Open(ctx, cfg.DBPath, state.Options{
		FlushEvery: cfg.FlushEvery,
		Logger:     logger,
		Metrics:    metrics,
	})
	if err != nil {
		logger.Fatal("failed to open state store", zap.Error(err))
	}

	var publisher events.Publisher = events.Noop{}
	if len(cfg.Kafka.Brokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		kp.Start(ctx)
		publisher = kp
		logger.Info("event stream enabled",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
		)
	}

	authMgr := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	server := httpapi.New(store, authMgr, publisher, logger, metrics, cfg.Auth.BcryptCost)

	logger.Info("server listening", zap.String("addr", cfg.HTTPAddr))
	if err := server.ListenAndServe(ctx, cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", zap.Error(err))
	}

	// Shutdown order matters: stop taking requests, drain the event stream,
	// then one final flush via Close.
	publisher.Close()
	if err := store.Close(); err != nil {
		logger.Error("final flush failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
