// Package routes wires the trimmed HTTP surface §6.3 names onto a chi.Mux:
// the start trigger, the two read-only tournament views, and the build/
// schedule event websocket.
package routes

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/aoe4tourney/engine/handlers"
	"github.com/aoe4tourney/engine/middleware"
)

func SetupRoutes(
	router *chi.Mux,
	tournamentHandler *handlers.TournamentHandler,
	webSocketHandler *handlers.WebSocketHandler,
	jwtSecret []byte,
	logger *slog.Logger,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           int((5 * time.Minute).Seconds()),
	}))

	authenticate := middleware.Authenticate(jwtSecret, logger)

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/{id}", tournamentHandler.Get)
		r.Get("/{id}/bracket", tournamentHandler.GetBracket)

		r.With(authenticate).Post("/{id}/start", tournamentHandler.Start)
	})

	router.With(authenticate).Get("/ws/tournaments/{id}", webSocketHandler.ServeWs)
}
