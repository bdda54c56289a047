package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"mas-astro/nightwatch/internal/api"
	"mas-astro/nightwatch/internal/astro"
	"mas-astro/nightwatch/internal/logging"
	"mas-astro/nightwatch/internal/metrics"
	"mas-astro/nightwatch/internal/middleware"
)

// RegisterRoutes builds the ops HTTP surface: health, digest preview, and
// the global middleware chain. The /metrics endpoint is mounted outside
// this router (see cmd/bot/main.go) so it skips the rate limiter.
func RegisterRoutes(
	upSince time.Time,
	metricsReg *metrics.MetricsRegistry,
	gateway api.GatewayStatus,
	directoryEnabled bool,
	digestBuilder *astro.Builder,
) http.Handler {
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))
	r.Use(middleware.RateLimitMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	r.Get("/healthCheck", api.HealthCheckHandler(upSince, gateway, directoryEnabled))
	r.Get("/digest/preview", api.DigestPreviewHandler(digestBuilder))

	return r
}
