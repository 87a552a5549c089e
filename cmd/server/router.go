package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/patient-api/internal/api"
	apiMiddleware "github.com/phrazzld/patient-api/internal/api/middleware"
	"github.com/phrazzld/patient-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Health check endpoint, exempt from rate limiting
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	limiter := apiMiddleware.NewRateLimiter(
		app.config.RateLimit.RequestsPerSecond,
		app.config.RateLimit.Burst,
	)

	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)

		r.Get("/", api.Welcome)

		r.Route("/api", func(r chi.Router) {
			r.Route("/patients", api.NewPatientHandler(app.patientStore, app.logger).Routes)
			r.Route("/books", api.NewBookHandler(app.bookStore, app.logger).Routes)
			r.Route("/items", api.NewItemHandler(app.itemStore, app.logger).Routes)
		})
	})

	return r
}
