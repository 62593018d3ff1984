package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Rishab2245/public-chat-backend/internal/api"
	"github.com/Rishab2245/public-chat-backend/internal/config"
	"github.com/Rishab2245/public-chat-backend/internal/handlers"
	"github.com/Rishab2245/public-chat-backend/internal/store"
	"github.com/Rishab2245/public-chat-backend/internal/ws"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Logger()
	}

	ctx := context.Background()

	// Storage: start with the in-memory fallback and resolve the MongoDB
	// connection in the background. Requests arriving before resolution are
	// served by the fallback; on connection failure the fallback is pinned
	// for the process lifetime.
	sel := store.NewSelector(store.NewMemoryStore(), logger)
	sel.Resolve(ctx, func(ctx context.Context) (store.MessageStore, error) {
		return store.NewMongoStore(ctx, cfg.MongoURI)
	})
	defer sel.Close()

	// Push channel hub
	hub := ws.NewHub(logger)
	go hub.Run()

	// Create router
	h := handlers.NewHandler(sel, hub, logger)
	router := api.NewRouter(cfg, logger, h, ws.Handler(hub, sel, logger))

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Msg("starting chat server")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")

	// Graceful shutdown with 30 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	if err := hub.Shutdown(5 * time.Second); err != nil {
		logger.Warn().Msg("hub shutdown timed out")
	}

	logger.Info().Msg("server stopped")
}
