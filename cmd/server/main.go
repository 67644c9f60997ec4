package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aoe4tourney/engine/bootstrap"
	"github.com/aoe4tourney/engine/handlers"
	"github.com/aoe4tourney/engine/routes"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	app, err := bootstrap.New(logger)
	if err != nil {
		logger.Error("failed to start", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("configuration loaded", slog.String("port", app.Config.ServerPort))

	ctx, cancelPool := context.WithCancel(context.Background())
	defer cancelPool()

	go app.Hub.Run()
	app.Pool.Start(ctx)
	defer app.Pool.Stop()

	tournamentHandler := handlers.NewTournamentHandler(app.DB, app.TournamentRepo, app.UserRepo, app.BracketLoader, app.Pool, logger)
	webSocketHandler := handlers.NewWebSocketHandler(app.Hub, logger)

	router := chi.NewRouter()
	routes.SetupRoutes(router, tournamentHandler, webSocketHandler, []byte(app.Config.JWTSecret), logger)

	server := &http.Server{
		Addr:         ":" + app.Config.ServerPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("server exited")
}
