/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:      Unique ID per request for tracing
  2. RequestLogger:  Structured request logging (httplog, ECS schema)
  3. Recoverer:      Panic recovery (500 instead of crash)
  4. CleanPath:      Normalises double slashes
  5. CORS:           Cross-origin requests for the roster frontend
  6. Heartbeat:      GET /health for load balancers

ROUTE GROUPS:
  /api/persons/*        Persons, entries, reports, roster
  /api/entries/*        Entry edits
  /api/units/*          Unit configuration, profiles, holidays, month close
  /api/holidays/*       Holiday removal
  /api/admin/*          Manual adjustments
  /api/scenarios/*      Demo scenarios

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"io"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// DefaultAllowedOrigins is used when no origins are configured.
var DefaultAllowedOrigins = []string{"http://localhost:5173", "http://localhost:8080"}

// NewRouter creates a new router with all routes configured. A nil logger
// disables request logging.
func NewRouter(h *Handler, logger *slog.Logger, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	if len(allowedOrigins) == 0 {
		allowedOrigins = DefaultAllowedOrigins
	}

	// Middleware
	r.Use(middleware.RequestID)
	if logger != nil {
		r.Use(httplog.RequestLogger(logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaECS,
		}))
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.CleanPath)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.Heartbeat("/health"))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Person routes
		r.Route("/persons", func(r chi.Router) {
			r.Get("/", h.ListPersons)
			r.Post("/", h.CreatePerson)
			r.Get("/{id}", h.GetPerson)
			r.Post("/{id}/entries", h.RegisterEntry)
			r.Get("/{id}/entries", h.ListEntries)
			r.Get("/{id}/sectors", h.GetSectorReport)
			r.Get("/{id}/metrics", h.GetMetrics)
			r.Get("/{id}/metrics/history", h.GetMetricsHistory)
			r.Post("/{id}/recompute", h.Recompute)
			r.Post("/{id}/assignments", h.CreateAssignment)
		})

		// Entry routes
		r.Route("/entries", func(r chi.Router) {
			r.Put("/{id}", h.EditEntry)
			r.Post("/{id}/close", h.CloseEntry)
			r.Delete("/{id}", h.DeleteEntry)
		})

		// Unit routes
		r.Route("/units", func(r chi.Router) {
			r.Get("/{id}/config", h.GetUnitConfig)
			r.Put("/{id}/config", h.PutUnitConfig)
			r.Get("/{id}/profile", h.GetProfile)
			r.Post("/{id}/profile", h.ApplyProfile)
			r.Post("/{id}/close", h.CloseMonth)
			r.Get("/{id}/holidays", h.ListHolidays)
			r.Post("/{id}/holidays", h.CreateHoliday)
		})

		// Holiday routes
		r.Route("/holidays", func(r chi.Router) {
			r.Delete("/{id}", h.DeleteHoliday)
		})

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Post("/adjustments", h.CreateAdjustment)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetDatabase)
		})
	})

	return r
}

// NewLogger builds the JSON slog logger used by the server, with attribute
// names following the ECS schema.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "shift-hours"),
	)
}
