package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/artpar/pubforge/adapters/metrics"
	"github.com/artpar/pubforge/pkg/jsonapi"
)

// HealthChecker reports whether a dependency is ready to serve.
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	checker HealthChecker
	logger  zerolog.Logger
}

// NewHealthHandler creates a HealthHandler. The checker may be nil, in which
// case readiness always succeeds.
func NewHealthHandler(checker HealthChecker, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{checker: checker, logger: logger}
}

// Liveness handles GET /health/live. It succeeds as long as the process is
// able to serve requests.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness handles GET /health/ready. It checks downstream dependencies
// with a bounded timeout.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.checker != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := h.checker.CheckHealth(ctx); err != nil {
			h.logger.Warn().Err(err).Msg("readiness check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"error":  err.Error(),
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// VersionInfo identifies the running build.
type VersionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit,omitempty"`
	Date    string `json:"date,omitempty"`
}

// VersionHandler serves GET /version.
func VersionHandler(info VersionInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, info)
	}
}

// RouterConfig holds the optional pieces of the router. Nil fields disable
// the corresponding routes.
type RouterConfig struct {
	API     *APIHandler
	Health  *HealthHandler
	Metrics *metrics.Collector
	Version VersionInfo

	// MetricsPath is where the Prometheus handler is mounted.
	// Defaults to /metrics.
	MetricsPath string

	// RequestTimeout bounds request handling. Defaults to 60s.
	RequestTimeout time.Duration
}

// NewRouter builds the chi router with the standard middleware stack.
func NewRouter(cfg RouterConfig, logger zerolog.Logger) chi.Router {
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 60 * time.Second
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggingMiddleware(logger))
	if cfg.Metrics != nil {
		r.Use(NewMetricsMiddleware(cfg.Metrics, cfg.MetricsPath))
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	if cfg.Health != nil {
		r.Get("/health", cfg.Health.Liveness)
		r.Get("/health/live", cfg.Health.Liveness)
		r.Get("/health/ready", cfg.Health.Readiness)
	}
	r.Get("/version", VersionHandler(cfg.Version))
	if cfg.Metrics != nil {
		r.Handle(cfg.MetricsPath, promhttp.Handler())
	}

	if cfg.API != nil {
		r.Route("/api", func(r chi.Router) {
			r.Get("/types", cfg.API.ListTypes)
			r.Route("/types/{directory}", func(r chi.Router) {
				r.Get("/", cfg.API.GetType)
				r.Get("/publications", cfg.API.ListPublications)
				r.Get("/publications/{identifier}", cfg.API.GetPublication)
				r.Post("/validate", cfg.API.ValidatePublication)
			})
			r.Get("/tags", cfg.API.ListTags)
		})
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		if err := jsonapi.WriteError(w, jsonapi.ErrNotFound("resource")); err != nil {
			logger.Error().Err(err).Msg("failed to write error response")
		}
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		if err := jsonapi.WriteError(w, jsonapi.ErrMethodNotAllowed(req.Method)); err != nil {
			logger.Error().Err(err).Msg("failed to write error response")
		}
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
