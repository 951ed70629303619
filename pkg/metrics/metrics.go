// Package metrics exposes the engine's Prometheus instrumentation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the engine's collectors. A nil *Recorder is a valid no-op
// recorder so library callers can skip instrumentation entirely.
type Recorder struct {
	reconciles    *prometheus.CounterVec
	transitions   *prometheus.CounterVec
	staleWrites   prometheus.Counter
	malformed     prometheus.Counter
	duplicates    prometheus.Counter
	sweepDuration prometheus.Histogram
	sweepErrors   prometheus.Counter
}

// NewRecorder creates the engine collectors under the given namespace.
func NewRecorder(namespace string) *Recorder {
	return &Recorder{
		reconciles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reconciliations_total",
				Help:      "Reconciliations performed, by obligation kind and verdict",
			},
			[]string{"kind", "verdict"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "status_transitions_total",
				Help:      "Persisted status transitions, by target status",
			},
			[]string{"to"},
		),
		staleWrites: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stale_writes_total",
				Help:      "Writes skipped because a concurrent writer already advanced the obligation",
			},
		),
		malformed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "malformed_records_total",
				Help:      "Obligations or transactions rejected by validation",
			},
		),
		duplicates: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "duplicate_transactions_total",
				Help:      "Transaction records collapsed as duplicate gateway deliveries",
			},
		),
		sweepDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "sweep_duration_seconds",
				Help:      "Duration of batch reconciliation sweeps",
				Buckets:   prometheus.DefBuckets,
			},
		),
		sweepErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sweep_errors_total",
				Help:      "Per-obligation errors collected during batch sweeps",
			},
		),
	}
}

// Register registers all collectors with the given registerer.
func (r *Recorder) Register(reg prometheus.Registerer) error {
	if r == nil {
		return nil
	}
	for _, c := range []prometheus.Collector{
		r.reconciles, r.transitions, r.staleWrites,
		r.malformed, r.duplicates, r.sweepDuration, r.sweepErrors,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveReconcile records one reconciliation outcome.
func (r *Recorder) ObserveReconcile(kind, verdict string, duplicates int) {
	if r == nil {
		return
	}
	r.reconciles.WithLabelValues(kind, verdict).Inc()
	r.duplicates.Add(float64(duplicates))
}

// ObserveTransition records one persisted status transition.
func (r *Recorder) ObserveTransition(to string) {
	if r == nil {
		return
	}
	r.transitions.WithLabelValues(to).Inc()
}

// ObserveStaleWrite records one skipped write.
func (r *Recorder) ObserveStaleWrite() {
	if r == nil {
		return
	}
	r.staleWrites.Inc()
}

// ObserveMalformed records one validation rejection.
func (r *Recorder) ObserveMalformed() {
	if r == nil {
		return
	}
	r.malformed.Inc()
}

// ObserveSweep records one completed sweep.
func (r *Recorder) ObserveSweep(d time.Duration, errs int) {
	if r == nil {
		return
	}
	r.sweepDuration.Observe(d.Seconds())
	r.sweepErrors.Add(float64(errs))
}
