// Package httpapi assembles the public HTTP surface: platform middleware, the
// versioned JSON API, metrics, and the dashboard page.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"auditarmor/internal/platform/metrics"
	platformmw "auditarmor/internal/platform/middleware"
	"auditarmor/pkg/platform/middleware/metadata"
	"auditarmor/pkg/platform/middleware/requestid"
	"auditarmor/pkg/platform/middleware/requesttime"
)

// APIPrefix is where the JSON API is mounted.
const APIPrefix = "/api/v1"

// Registrar mounts a group of routes.
type Registrar interface {
	Register(r chi.Router)
}

// Config is everything NewRouter needs. Nil middleware and handlers are
// skipped.
type Config struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
	// ClientMetadata resolves the caller address. Defaults to trusting no
	// proxy headers.
	ClientMetadata func(http.Handler) http.Handler

	// API handlers mounted under APIPrefix.
	API []Registrar
	// Upload handlers mounted under APIPrefix behind UploadLimit.
	Upload      []Registrar
	UploadLimit func(http.Handler) http.Handler

	Frontend Registrar
}

// NewRouter wires the middleware chain and mounts every handler group.
func NewRouter(cfg Config) http.Handler {
	r := chi.NewRouter()

	clientMetadata := cfg.ClientMetadata
	if clientMetadata == nil {
		clientMetadata = metadata.ClientMetadata
	}
	r.Use(requestid.Middleware)
	r.Use(clientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(platformmw.AccessLog(cfg.Logger))
	r.Use(platformmw.RequestMetrics(cfg.Metrics))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{requestid.Header, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.Frontend != nil {
		cfg.Frontend.Register(r)
	}

	if cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route(APIPrefix, func(r chi.Router) {
		for _, h := range cfg.API {
			h.Register(r)
		}
		r.Group(func(r chi.Router) {
			if cfg.UploadLimit != nil {
				r.Use(cfg.UploadLimit)
			}
			for _, h := range cfg.Upload {
				h.Register(r)
			}
		})
	})

	return r
}
