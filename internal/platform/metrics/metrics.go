package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for SQL scenario execution.
type Metrics struct {
	StatementsExecuted prometheus.Counter
	StatementFailures  prometheus.Counter
	RunDuration        prometheus.Histogram
}

// New creates and registers the scenario metrics on the default registerer.
func New() *Metrics {
	return &Metrics{
		StatementsExecuted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sqlscenario_statements_executed_total",
			Help: "Total number of SQL statements executed by scenario setup and teardown",
		}),
		StatementFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sqlscenario_statement_failures_total",
			Help: "Total number of SQL statements that failed during scenario execution",
		}),
		RunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "sqlscenario_executor_run_duration_seconds",
			Help:    "Duration of one executor run (all statements of one setup or teardown)",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// Default returns the shared Metrics instance. Registration on the default
// registerer must happen once per process, so every executor shares this set.
func Default() *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = New()
	})
	return defaultMetrics
}

// IncrementStatementsExecuted increments the executed-statements counter by 1.
func (m *Metrics) IncrementStatementsExecuted() {
	m.StatementsExecuted.Inc()
}

// IncrementStatementFailures increments the failed-statements counter by 1.
func (m *Metrics) IncrementStatementFailures() {
	m.StatementFailures.Inc()
}

// ObserveRunDuration records the wall-clock duration of one executor run.
func (m *Metrics) ObserveRunDuration(d time.Duration) {
	m.RunDuration.Observe(d.Seconds())
}
