package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics records classification batch outcomes.
type EngineMetrics struct {
	batchDuration *prometheus.HistogramVec
	results       *prometheus.CounterVec
	issues        *prometheus.CounterVec
}

// NewEngineMetrics registers the engine metrics on the provided registerer.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	if reg == nil {
		return &EngineMetrics{}
	}
	batchDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reconciliation_batch_duration_seconds",
		Help:    "Duration of reconciliation batch classification in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	results := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reconciliation_results_total",
		Help: "Classified reconciliation results by status.",
	}, []string{"status"})
	issues := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reconciliation_issues_total",
		Help: "Detected reconciliation issues by kind.",
	}, []string{"kind"})
	reg.MustRegister(batchDuration, results, issues)
	return &EngineMetrics{
		batchDuration: batchDuration,
		results:       results,
		issues:        issues,
	}
}

// ObserveBatchDuration records how long a batch classification pass took.
func (e *EngineMetrics) ObserveBatchDuration(outcome string, duration time.Duration) {
	if e == nil || e.batchDuration == nil {
		return
	}
	e.batchDuration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncResult increments the result counter for the given status.
func (e *EngineMetrics) IncResult(status string) {
	if e == nil || e.results == nil {
		return
	}
	e.results.WithLabelValues(normalizeLabel(status)).Inc()
}

// IncIssue increments the issue counter for the given kind.
func (e *EngineMetrics) IncIssue(kind string) {
	if e == nil || e.issues == nil {
		return
	}
	e.issues.WithLabelValues(normalizeLabel(kind)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
