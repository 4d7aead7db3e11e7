/*
main.go - Application entry point

PURPOSE:
  Starts the matchday server: one season tracker behind a command loop,
  exposed over REST, with change notifications pushed over websockets
  and, optionally, a Redis stream.

STARTUP SEQUENCE:
  1. Load configuration (MATCHDAY_* environment, then flags)
  2. Open the history store (memory or in-memory SQLite)
  3. Start the websocket hub and optional Redis publisher
  4. Create the tracker and its command loop
  5. Start the HTTP server with graceful shutdown

COMMAND-LINE FLAGS (override the environment):
  -port       HTTP server port
  -history    History backend: memory | sqlite
  -db         SQLite DSN (default ":memory:")

STATE:
  Everything lives in memory. Restarting the process starts a new season.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the command loop, hub and publisher
  4. Close the history store
*/
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/warp/matchday/api"
	"github.com/warp/matchday/config"
	"github.com/warp/matchday/publisher"
	"github.com/warp/matchday/season"
	"github.com/warp/matchday/season/store"
	"github.com/warp/matchday/store/sqlite"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Flags
	port := flag.Int("port", cfg.Port, "HTTP server port")
	backend := flag.String("history", string(cfg.HistoryBackend), "History backend: memory or sqlite")
	dsn := flag.String("db", cfg.HistoryDSN, "SQLite DSN for the sqlite history backend")
	flag.Parse()

	cfg.Port = *port
	cfg.HistoryBackend = config.HistoryBackend(*backend)
	cfg.HistoryDSN = *dsn
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	logger = logger.Level(cfg.Level())

	// History store
	history, closeHistory, err := openHistory(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open history store")
	}
	defer closeHistory()

	// Notifiers
	hub := api.NewHub(logger, cfg.AllowedOrigins)
	go hub.Run()
	defer hub.Stop()

	notifiers := season.MultiNotifier{hub}
	if cfg.RedisURL != "" {
		stream, err := publisher.NewRedisStream(cfg.RedisURL, cfg.RedisStream, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		stream.Start()
		defer stream.Close()
		notifiers = append(notifiers, stream)
		logger.Info().Str("stream", cfg.RedisStream).Msg("publishing changes to redis")
	}

	// Tracker
	names := season.NewNamePolicy(cfg.UnknownPlayers...)
	tracker := season.NewTracker(history, season.Options{
		HomeName: cfg.HomeName,
		AwayName: cfg.AwayName,
		Names:    &names,
		Notifier: notifiers,
	})
	loop := season.NewLoop(tracker)
	defer loop.Close()

	handler := api.NewHandler(loop, hub)
	router := api.NewRouter(handler, api.RouterOptions{
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info().
			Str("addr", cfg.Addr()).
			Str("history", string(cfg.HistoryBackend)).
			Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server stopped")
}

func openHistory(cfg config.Config) (season.HistoryStore, func(), error) {
	switch cfg.HistoryBackend {
	case config.BackendSQLite:
		s, err := sqlite.New(cfg.HistoryDSN)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	default:
		return store.NewMemory(), func() {}, nil
	}
}
