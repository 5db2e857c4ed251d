package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	catalogSize  prometheus.Gauge
	priceLookups *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	latency      *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		catalogSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "juplens_catalog_tokens",
				Help: "Number of tokens in the current catalog snapshot",
			},
		),
		priceLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "juplens_price_lookups_total",
				Help: "Total number of price lookups by source",
			},
			[]string{"source"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "juplens_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "juplens_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordCatalogSize records the token count of the active snapshot.
func (r *Recorder) RecordCatalogSize(n int) {
	r.catalogSize.Set(float64(n))
}

// RecordPriceLookup records a price lookup, labeled "live" or "fallback".
func (r *Recorder) RecordPriceLookup(source string) {
	r.priceLookups.WithLabelValues(source).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
