package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"
)

const namespace = "parsum"

// Mode labels.
const (
	ModeSequential = "sequential"
	ModeParallel   = "parallel"
)

// Sample is one benchmark task's measurements as seen by the recorder.
type Sample struct {
	Task      string
	Operation string
	// Workers is 0 for the sequential baseline.
	Workers   int
	Durations []time.Duration
	Err       error
}

// Mode returns the mode label of the sample.
func (s Sample) Mode() string {
	if s.Workers == 0 {
		return ModeSequential
	}
	return ModeParallel
}

// Recorder owns a private Prometheus registry so that several recorders (one
// per REPL run, one per test) never collide on registration.
type Recorder struct {
	registry *prometheus.Registry
	duration *prometheus.HistogramVec
	runs     *prometheus.CounterVec
	length   prometheus.Gauge
	workers  *prometheus.GaugeVec
}

// NewRecorder creates a Recorder with all collectors registered.
// When withRuntime is true the Go runtime collector is registered as well.
func NewRecorder(withRuntime bool) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "task_duration_seconds",
			Help:      "Wall-clock duration of one benchmark repetition.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 14),
		}, []string{"operation", "mode"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "task_runs_total",
			Help:      "Benchmark repetitions by outcome.",
		}, []string{"operation", "mode", "status"}),
		length: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sequence_length",
			Help:      "Number of elements in the benchmarked sequence.",
		}),
		workers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "workers",
			Help:      "Worker count of each benchmark task.",
		}, []string{"task"}),
	}
	r.registry.MustRegister(r.duration, r.runs, r.length, r.workers)
	if withRuntime {
		r.registry.MustRegister(collectors.NewGoCollector())
	}
	return r
}

// SetSequenceLength records the length of the sequence under test.
func (r *Recorder) SetSequenceLength(n int) {
	r.length.Set(float64(n))
}

// Observe records every repetition of a sample. A failed sample counts one
// "error" run in addition to the repetitions that completed before it failed.
func (r *Recorder) Observe(s Sample) {
	mode := s.Mode()
	hist := r.duration.WithLabelValues(s.Operation, mode)
	for _, d := range s.Durations {
		hist.Observe(d.Seconds())
	}
	r.runs.WithLabelValues(s.Operation, mode, "ok").Add(float64(len(s.Durations)))
	if s.Err != nil {
		r.runs.WithLabelValues(s.Operation, mode, "error").Inc()
	}
	r.workers.WithLabelValues(s.Task).Set(float64(s.Workers))
}

// Registry exposes the underlying registry, e.g. for tests or an HTTP handler.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteText writes every gathered metric family to w in the Prometheus text
// exposition format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encoding metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
