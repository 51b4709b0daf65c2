package await

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	pathSpawned      = "spawned"
	pathShortCircuit = "short_circuit"
	pathRejected     = "rejected"
)

var kindLabel = [...]string{
	Recoverable:     "recoverable",
	Fatal:           "fatal",
	WaitInterrupted: "wait_interrupted",
	Interrupted:     "interrupted",
	ExecutionFailed: "execution_failed",
	InvalidArgument: "invalid_argument",
	InvalidState:    "invalid_state",
	Timeout:         "timeout",
	Cancelled:       "cancelled",
}

func resultLabel(err error) string {
	if err == nil {
		return "success"
	}
	if k := KindOf(err); int(k) < len(kindLabel) {
		return kindLabel[k]
	}
	return "unknown"
}

// Metrics holds the bridge's Prometheus metrics. A nil *Metrics records
// nothing.
type Metrics struct {
	InvocationsTotal   *prometheus.CounterVec
	InvocationDuration *prometheus.HistogramVec
	GoroutinesSpawned  prometheus.Counter
	// GoroutinesInFlight includes goroutines left running after their caller
	// stopped waiting.
	GoroutinesInFlight prometheus.Gauge
}

// NewMetrics creates and registers the bridge metrics
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		InvocationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "await_invocations_total",
				Help: "Total number of bridged invocations",
			},
			[]string{"op", "path", "result"},
		),
		InvocationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "await_invocation_duration_seconds",
				Help:    "Time the caller spent waiting, in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op", "path"},
		),
		GoroutinesSpawned: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "await_goroutines_spawned_total",
				Help: "Total number of goroutines spawned for units of work",
			},
		),
		GoroutinesInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "await_goroutines_in_flight",
				Help: "Number of spawned goroutines that have not finished",
			},
		),
	}

	registry.MustRegister(
		m.InvocationsTotal,
		m.InvocationDuration,
		m.GoroutinesSpawned,
		m.GoroutinesInFlight,
	)

	return m
}

func (m *Metrics) spawned() {
	if m == nil {
		return
	}
	m.GoroutinesSpawned.Inc()
	m.GoroutinesInFlight.Inc()
}

func (m *Metrics) exited() {
	if m == nil {
		return
	}
	m.GoroutinesInFlight.Dec()
}

func (m *Metrics) observe(op, path string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.InvocationsTotal.WithLabelValues(op, path, resultLabel(err)).Inc()
	m.InvocationDuration.WithLabelValues(op, path).Observe(elapsed.Seconds())
}
