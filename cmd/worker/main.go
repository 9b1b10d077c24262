package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/flixkit/catalog/internal/config"
	"github.com/flixkit/catalog/internal/domain/model"
	"github.com/flixkit/catalog/internal/domain/repository"
	"github.com/flixkit/catalog/internal/infrastructure/cache"
	"github.com/flixkit/catalog/internal/infrastructure/postgres"
	"github.com/flixkit/catalog/internal/infrastructure/queue"
	"github.com/flixkit/catalog/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	pgClient, err := postgres.NewClient(ctx, postgres.DefaultClientConfig(cfg.Database.DSN()))
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pgClient.Close()
	logger.Info("connected to PostgreSQL")

	queueClient, err := queue.NewClient(ctx, queue.ClientConfig{
		URL:         cfg.RabbitMQ.URL(),
		EncodeQueue: cfg.RabbitMQ.EncodeQueue,
		StatusQueue: cfg.RabbitMQ.StatusQueue,
		Prefetch:    cfg.RabbitMQ.Prefetch,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	defer queueClient.Close()
	logger.Info("connected to RabbitMQ")

	// Redis client for invalidating cached aggregates after a status change.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	logger.Info("connected to Redis")

	videoRepo := postgres.NewVideoRepository(pgClient.Pool())
	videoCache := cache.NewRedisVideoCache(redisClient)
	statusSvc := usecase.NewMediaStatusService(videoRepo, videoCache)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// WaitGroup to track in-flight events
	var wg sync.WaitGroup

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting worker, consuming media status events")
		err := queueClient.ConsumeMediaStatusEvents(ctx, func(event repository.MediaStatusEvent) error {
			wg.Add(1)
			defer wg.Done()

			logger.Info("processing media status event",
				slog.String("video_id", event.ID.String()),
				slog.String("resource_id", event.ResourceID.String()),
				slog.String("status", event.Status),
			)

			err := statusSvc.UpdateMediaStatus(ctx, usecase.UpdateMediaStatusInput{
				VideoID:     event.ID,
				ResourceID:  event.ResourceID,
				EncodedPath: event.EncodedPath,
				Status:      model.MediaStatus(event.Status),
			})
			if err != nil {
				logger.Error("media status update failed",
					slog.String("video_id", event.ID.String()),
					slog.String("resource_id", event.ResourceID.String()),
					slog.String("error", err.Error()),
				)
				return err
			}
			return nil
		})
		if err != nil && ctx.Err() == nil {
			errCh <- fmt.Errorf("consumer error: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down worker", slog.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Worker.ShutdownTimeout)
	defer shutdownCancel()

	// Stop consuming new events
	cancel()

	// Wait for in-flight events to complete (or timeout)
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("all in-flight events completed")
	case <-shutdownCtx.Done():
		logger.Warn("shutdown timeout exceeded, some events may not have completed")
	}

	logger.Info("worker stopped")
	return nil
}
