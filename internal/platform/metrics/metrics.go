// Package metrics holds application-level Prometheus metrics. Module-specific
// metrics live next to their module (e.g. internal/scoring/metrics).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds process-wide counters.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec
}

// New creates and registers all application-level Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "altscore_http_requests_total",
			Help: "Total HTTP requests by route and status class",
		}, []string{"route", "status"}),
	}
}

// IncrementHTTPRequest records one request against a route.
func (m *Metrics) IncrementHTTPRequest(route, status string) {
	if m != nil {
		m.HTTPRequests.WithLabelValues(route, status).Inc()
	}
}
