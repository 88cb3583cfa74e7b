package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventboard/reporting-service/internal/config"
	"github.com/eventboard/reporting-service/internal/database"
	"github.com/eventboard/reporting-service/internal/notify"
	"github.com/eventboard/reporting-service/internal/repository"
	"github.com/eventboard/reporting-service/internal/server"
	"github.com/eventboard/reporting-service/internal/service"
	"github.com/rs/zerolog"
)

func main() {
	// Initialize logger with console writer for better formatting in containers
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).With().
		Timestamp().
		Logger()

	// Load configuration
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.DefaultContextLogger = &logger

	// Initialize database
	db, err := database.New(cfg.Database.Path)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Redis notifications are optional
	var notifier service.Notifier
	if cfg.Redis.URL != "" {
		redisClient, err := notify.NewRedisClient(context.Background(), cfg.Redis.URL, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()
		notifier = notify.NewPublisher(redisClient, cfg.Redis.Channel)
	} else {
		logger.Info().Msg("Redis notifications disabled")
	}

	// Wire repository and service
	repo := repository.NewEventRepository(db.DB(), logger)
	svc := service.NewEventService(repo, notifier, logger)

	// Create and start server
	srv := server.New(cfg, db.DB(), svc, &logger)

	// Channel to listen for errors from server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Wait for an error or interrupt signal
	select {
	case err := <-errChan:
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server error")
		}
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("Shutting down server...")
	}

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Stop(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server stopped")
}
