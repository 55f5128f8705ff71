// Package httpapi assembles the service's HTTP surface. It is a thin layer:
// routing, middleware, and operational endpoints; domain behavior lives in
// the module handlers it mounts.
package httpapi

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	assessmenthandler "altscore/internal/assessment/handler"
	"altscore/internal/platform/metrics"
	"altscore/internal/platform/middleware"
	scoringhandler "altscore/internal/scoring/handler"
	"altscore/pkg/platform/httputil"
)

// Deps carries everything the router mounts.
type Deps struct {
	Scoring     *scoringhandler.Handler
	Assessments *assessmenthandler.Handler
	Auth        middleware.TokenValidator
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
}

// NewRouter wires all public endpoints.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientInfo)
	r.Use(countRequests(deps.Metrics))

	r.Get("/health", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Scoring is open: applicants submit their own records without an
	// account. Identity, when present, is attached by the auth middleware.
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(deps.Auth, deps.Logger))
		deps.Scoring.Register(r)
	})

	// History requires a caller identity.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.Auth, deps.Logger))
		deps.Assessments.Register(r)
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// countRequests increments the per-route request counter after serving.
func countRequests(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}
			m.IncrementHTTPRequest(route, strconv.Itoa(ww.status))
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
