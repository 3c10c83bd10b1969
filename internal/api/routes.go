package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zapponejosh/mmcalendar-api/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET  /health
//	GET  /api/v1/days/today
//	GET  /api/v1/days/gregorian/{date}
//	GET  /api/v1/days/julian/{jdn}
//	GET  /api/v1/days/burmese/{year}/{month}/{day}
//	GET  /api/v1/days/range?start=&end=
//	GET  /api/v1/years/{year}
//	GET  /api/v1/holidays/{year}
//	GET  /api/v1/almanac/days?start=&end=
//	GET  /api/v1/almanac/days/{jdn}
//	GET  /api/v1/almanac/builds?limit=
//	POST /api/v1/almanac/build?start=&end=   (API key)
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RealIP,
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		CORSMiddleware(),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	// ==========================================================================
	// Public routes
	// ==========================================================================
	r.Get("/health", handlers.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/days", func(r chi.Router) {
			r.Get("/today", handlers.GetToday)
			r.Get("/gregorian/{date}", handlers.GetGregorianDay)
			r.Get("/julian/{jdn}", handlers.GetJulianDay)
			r.Get("/burmese/{year}/{month}/{day}", handlers.GetBurmeseDay)
			r.Get("/range", handlers.GetRange)
		})
		r.Get("/years/{year}", handlers.GetYear)
		r.Get("/holidays/{year}", handlers.GetHolidays)
		r.Route("/almanac", func(r chi.Router) {
			r.Get("/days", handlers.GetStoredDays)
			r.Get("/days/{jdn}", handlers.GetStoredDay)
			r.Get("/builds", handlers.GetBuilds)

			// ==================================================================
			// Write routes (API key)
			// ==================================================================
			r.Group(func(r chi.Router) {
				r.Use(AuthMiddleware(cfg, logger))
				r.Post("/build", handlers.BuildAlmanac)
			})
		})
	})

	return r
}
