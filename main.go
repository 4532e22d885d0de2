package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/hospitality-studio-backend/api"
	"github.com/rpupo63/hospitality-studio-backend/config"
	"github.com/rpupo63/hospitality-studio-backend/database"
	"github.com/rpupo63/hospitality-studio-backend/services"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}

	env := config.New()
	cfg := config.FromMap(env)
	setupLogger(cfg)

	log.Info().Msg("Initializing app...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gateway := database.Open(ctx, database.Options{
		URL:            cfg.DatabaseURL,
		Name:           cfg.DatabaseName,
		ConnectTimeout: cfg.OperationTimeout,
	})
	currentDB := database.New(gateway,
		database.WithInquiryCollection(cfg.InquiryCollection),
		database.WithOperationTimeout(cfg.OperationTimeout),
	)

	notifier := services.NewInquiryNotifier(cfg.ResendAPIKey, cfg.ResendFromEmail, cfg.NotifyEmails)

	server := api.NewServer(cfg, currentDB,
		api.WithEnv(env),
		api.WithNotifier(notifier),
	)

	errChannel := make(chan error, 1)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		server.Start(errChannel)
		return nil
	})

	g.Go(func() error {
		var shutdownErr error
		select {
		case shutdownErr = <-errChannel:
			log.Error().Err(shutdownErr).Msg("Server stopped unexpectedly")
			stop()
		case <-gctx.Done():
			log.Info().Msg("Shutdown signal received")
			shutdownErr = server.ShutdownGracefully(shutdownTimeout)
		}

		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := currentDB.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("Error closing database")
		}
		return shutdownErr
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Closing server")
		os.Exit(1)
	}
	log.Info().Msg("Server exited")
}

func setupLogger(cfg config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.LogFormat == "json" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
}
