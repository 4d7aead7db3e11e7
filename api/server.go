/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     zerolog request logger in the context + access log line
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for the scoreboard frontend

ROUTE GROUPS:
  /api/match/*       Live match commands and queries
  /api/history       Committed matches
  /api/standings     Standings table
  /api/players/*     Scorer and assist boards
  /api/scenarios/*   Demo scenarios
  /api/health        Liveness
  /ws                Change notifications (websocket)

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - hub.go: Websocket notifications
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	Logger         zerolog.Logger
	AllowedOrigins []string
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(hlog.NewHandler(opts.Logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", middleware.GetReqID(r.Context())).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		// Live match
		r.Route("/match", func(r chi.Router) {
			r.Get("/", h.GetMatch)
			r.Get("/scores", h.GetScores)
			r.Get("/goals", h.GetGoals)
			r.Post("/goals", h.RecordGoal)
			r.Post("/pending", h.SelectGoalSide)
			r.Post("/pending/confirm", h.ConfirmPendingGoal)
			r.Delete("/pending", h.CancelPendingGoal)
			r.Put("/teams/{side}", h.RenameTeam)
			r.Post("/reset", h.ResetSession)
			r.Post("/commit", h.CommitMatch)
		})

		// Season
		r.Get("/history", h.GetHistory)
		r.Get("/standings", h.GetStandings)
		r.Route("/players", func(r chi.Router) {
			r.Get("/scorers", h.GetScorers)
			r.Get("/assists", h.GetAssists)
		})

		// Scenarios
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/load", h.LoadScenario)
		})
	})

	if h.Hub != nil {
		r.Get("/ws", h.Hub.ServeWS)
	}

	return r
}
