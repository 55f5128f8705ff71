package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the scoring module.
type Metrics struct {
	// Issued decisions by risk tier
	Decisions *prometheus.CounterVec

	// Failed decisions by error code
	Errors *prometheus.CounterVec

	// Pipeline stage latencies
	StageLatency *prometheus.HistogramVec

	// Overall decision latency
	DecisionLatency prometheus.Histogram

	// Result cache lookups by outcome
	CacheLookups *prometheus.CounterVec
}

// New creates a Metrics instance with all scoring module metrics registered.
func New() *Metrics {
	return &Metrics{
		Decisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "altscore_scoring_decisions_total",
			Help: "Total issued credit decisions by risk tier",
		}, []string{"tier"}),

		Errors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "altscore_scoring_errors_total",
			Help: "Total failed credit decisions by error code",
		}, []string{"code"}),

		StageLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "altscore_scoring_stage_duration_seconds",
			Help:    "Duration of scoring pipeline stages",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}, []string{"stage"}), // stage: "aggregate", "predict", "explain"

		DecisionLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "altscore_scoring_decision_duration_seconds",
			Help:    "Duration of full credit decisions",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		}),

		CacheLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "altscore_scoring_result_cache_lookups_total",
			Help: "Total result cache lookups by outcome",
		}, []string{"outcome"}), // outcome: "hit", "miss"
	}
}

// IncrementCacheLookup records a result cache lookup outcome.
func (m *Metrics) IncrementCacheLookup(outcome string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(outcome).Inc()
	}
}

// IncrementDecision records an issued decision.
func (m *Metrics) IncrementDecision(tier string) {
	if m != nil {
		m.Decisions.WithLabelValues(tier).Inc()
	}
}

// IncrementError records a failed decision.
func (m *Metrics) IncrementError(code string) {
	if m != nil {
		m.Errors.WithLabelValues(code).Inc()
	}
}

// ObserveStageLatency records the duration of one pipeline stage.
func (m *Metrics) ObserveStageLatency(stage string, d time.Duration) {
	if m != nil {
		m.StageLatency.WithLabelValues(stage).Observe(d.Seconds())
	}
}

// ObserveDecisionLatency records the total decision duration.
func (m *Metrics) ObserveDecisionLatency(d time.Duration) {
	if m != nil {
		m.DecisionLatency.Observe(d.Seconds())
	}
}
