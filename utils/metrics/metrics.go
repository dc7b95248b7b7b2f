package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OptimizationMetrics holds the prometheus collectors for the optimize and
// archive pipelines. A single instance is created in di and shared.
type OptimizationMetrics struct {
	optimizationsTotal *prometheus.CounterVec
	bytesSaved         prometheus.Counter
	processingSeconds  prometheus.Histogram
	archivesTotal      *prometheus.CounterVec
}

// NewOptimizationMetrics registers the collectors on the given registerer.
// Passing prometheus.DefaultRegisterer wires them into the default /metrics
// exposition.
func NewOptimizationMetrics(reg prometheus.Registerer) *OptimizationMetrics {
	factory := promauto.With(reg)

	return &OptimizationMetrics{
		optimizationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "imgpress_optimizations_total",
			Help: "Optimization attempts by target format and outcome.",
		}, []string{"format", "outcome"}),
		bytesSaved: factory.NewCounter(prometheus.CounterOpts{
			Name: "imgpress_bytes_saved_total",
			Help: "Cumulative bytes removed by successful optimizations. Grows only when output is smaller than input.",
		}),
		processingSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "imgpress_processing_seconds",
			Help:    "Wall-clock duration of transcode calls.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		archivesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "imgpress_archives_total",
			Help: "Archive builds by outcome.",
		}, []string{"outcome"}),
	}
}

// RecordOptimization records one transcode attempt.
func (m *OptimizationMetrics) RecordOptimization(format string, err error, originalSize, optimizedSize int, duration time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.optimizationsTotal.WithLabelValues(format, outcome).Inc()

	if err == nil {
		m.processingSeconds.Observe(duration.Seconds())
		if saved := originalSize - optimizedSize; saved > 0 {
			m.bytesSaved.Add(float64(saved))
		}
	}
}

// RecordArchive records one archive build attempt.
func (m *OptimizationMetrics) RecordArchive(err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.archivesTotal.WithLabelValues(outcome).Inc()
}
