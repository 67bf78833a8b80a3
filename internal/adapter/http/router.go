package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ivlev/moneta/internal/adapter/http/handler"
	"github.com/ivlev/moneta/internal/adapter/http/middleware"
	"github.com/ivlev/moneta/internal/infrastructure/metrics"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler   *handler.AccountHandler
	OperationHandler *handler.OperationHandler
	RateHandler      *handler.RateHandler
	HealthHandler    *handler.HealthHandler

	// Identity resolves the caller for API routes: the JWT middleware
	// in production, a static identity when auth is disabled.
	Identity func(http.Handler) http.Handler

	Logger  zerolog.Logger
	Metrics *metrics.Metrics
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))

	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cfg.Identity)

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Put("/{id}", cfg.AccountHandler.Update)
			r.Delete("/{id}", cfg.AccountHandler.Delete)
			r.Get("/{id}/exists", cfg.AccountHandler.Exists)
			r.Get("/{id}/operations", cfg.OperationHandler.ListByAccount)
			r.Post("/{id}/replenish", cfg.OperationHandler.Replenish)
			r.Post("/{id}/withdraw", cfg.OperationHandler.Withdraw)
		})

		// Transfers
		r.Post("/transfers", cfg.OperationHandler.Transfer)

		// Exchange rates
		r.Get("/rates", cfg.RateHandler.Get)

		// Operations
		r.Route("/operations", func(r chi.Router) {
			r.Get("/{id}", cfg.OperationHandler.Get)
			r.Delete("/{id}", cfg.OperationHandler.Delete)
		})

		// Users
		r.Route("/users/{id}", func(r chi.Router) {
			r.Get("/accounts", cfg.AccountHandler.ListByUser)
			r.Get("/operations", cfg.OperationHandler.ListByUser)
		})
	})

	return r
}
