package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// authMiddleware enforces the configured API key. The key is compared
// against a bcrypt hash; the plaintext never leaves the request.
func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	header := h.auth.Header
	if header == "" {
		header = "X-API-Key"
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(header)
		if key == "" || !h.hasher.Compare([]byte(h.auth.KeyHash), key) {
			h.logger.Warn().Str("path", r.URL.Path).Msg("rejected request with invalid API key")
			writeError(w, http.StatusUnauthorized, "invalid API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// metricsMiddleware records request counts and latency per route pattern.
func (h *Handler) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		pattern := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			pattern = rctx.RoutePattern()
		}
		h.metrics.RequestsTotal.WithLabelValues(
			r.Method, pattern, strconv.Itoa(ww.Status()),
		).Inc()
		h.metrics.RequestDuration.WithLabelValues(r.Method, pattern).
			Observe(time.Since(start).Seconds())
	})
}
