package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"duckstore/internal/config"
	"duckstore/internal/database"
	"duckstore/internal/logs"
	"duckstore/internal/server"
	"duckstore/pkg/rabbitmq"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("duckstore: %v", err)
	}
}

func run() error {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logs.New(cfg)
	if err != nil {
		return err
	}

	// --- Database pool, shared by every request ---
	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	opts := server.Options{
		Config:    cfg,
		DB:        db,
		Logger:    logger,
		AccessLog: true,
	}

	// --- Optional RabbitMQ publisher for product events ---
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, logger)
		if err != nil {
			return err
		}
		defer mqClient.Close()
		opts.Events = mqClient
	} else {
		logger.Info("RABBITMQ_URL not set, product events disabled")
	}

	// --- Optional Redis for login/registration throttling ---
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		defer rdb.Close()
		opts.Redis = rdb
	} else {
		logger.Info("REDIS_ADDR not set, rate limiting disabled")
	}

	srv := server.New(opts)

	// --- Start HTTP Server ---
	listenErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.ListenAddr())
		listenErr <- srv.App.Listen(cfg.ListenAddr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	if err := srv.App.Shutdown(); err != nil {
		logger.Error("error during Fiber shutdown", "error", err)
	}
	logger.Info("server gracefully stopped")
	return nil
}
