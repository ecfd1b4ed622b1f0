// Package web provides the JSON API for the contract generator.
// Handlers are thin: they decode requests, call application services, and
// encode responses. All composition logic lives in domain packages.
package web

import (
	"embed"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/pychain/forge/adapters/metrics"
	"github.com/pychain/forge/app"
	"github.com/pychain/forge/config"
	"github.com/pychain/forge/ports"
)

//go:embed openapi.json
var openapiFS embed.FS

// Handler provides the API endpoints.
type Handler struct {
	generate *app.GenerateService
	catalog  *app.CatalogService
	hasher   ports.Hasher
	metrics  *metrics.Collector
	logger   zerolog.Logger
	version  string

	auth config.AuthConfig
	docs bool
}

// Deps contains dependencies for the web handler.
type Deps struct {
	Generate *app.GenerateService
	Catalog  *app.CatalogService
	Hasher   ports.Hasher
	Metrics  *metrics.Collector // optional
	Logger   zerolog.Logger
	Version  string
	Auth     config.AuthConfig
	Docs     bool
}

// NewHandler creates a new API handler.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		generate: deps.Generate,
		catalog:  deps.Catalog,
		hasher:   deps.Hasher,
		metrics:  deps.Metrics,
		logger:   deps.Logger,
		version:  deps.Version,
		auth:     deps.Auth,
		docs:     deps.Docs,
	}
}

// Router builds the HTTP router.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if h.metrics != nil {
		r.Use(h.metricsMiddleware)
	}

	r.Get("/health", h.Health)
	r.Get("/version", h.Version)

	if h.metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(h.metrics.Registry(), promhttp.HandlerOpts{}))
	}

	if h.docs {
		r.Get("/.well-known/openapi.json", h.OpenAPISpec)
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/.well-known/openapi.json"),
		))
	}

	r.Route("/api", func(r chi.Router) {
		// Catalog queries are public.
		r.Get("/archetypes", h.ListArchetypes)
		r.Get("/modules", h.ListModules)
		r.Post("/selection/toggle", h.ToggleSelection)

		// Generation and history honor the optional API key.
		r.Group(func(r chi.Router) {
			if h.auth.Enabled {
				r.Use(h.authMiddleware)
			}
			r.Post("/generate", h.Generate)
			r.Get("/generations", h.ListGenerations)
			r.Get("/generations/{id}", h.GetGeneration)
		})
	})

	return r
}

// Health handles liveness probes.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Version reports the build version.
func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

// OpenAPISpec serves the committed OpenAPI document.
func (h *Handler) OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	data, err := openapiFS.ReadFile("openapi.json")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "spec unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
