package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the dataset service.
type Metrics struct {
	LoadsTotal   *prometheus.CounterVec // label: outcome={success,error}
	LoadDuration prometheus.Histogram
	CacheLookups *prometheus.CounterVec // label: result={hit,miss}

	// Snapshot of the most recent successful load.
	DatasetRows   prometheus.Gauge
	SkippedRows   prometheus.Gauge
	MissingValues *prometheus.GaugeVec // label: field
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.LoadsTotal,
		m.LoadDuration,
		m.CacheLookups,
		m.DatasetRows,
		m.SkippedRows,
		m.MissingValues,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		LoadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "airquality",
			Name:      "loads_total",
			Help:      "Dataset load attempts by outcome.",
		}, []string{"outcome"}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "airquality",
			Name:      "load_duration_seconds",
			Help:      "Duration of a dataset load, including cache hits.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "airquality",
			Name:      "cache_lookups_total",
			Help:      "Dataset cache lookups by result.",
		}, []string{"result"}),
		DatasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "airquality",
			Name:      "dataset_rows",
			Help:      "Observations in the most recently loaded dataset.",
		}),
		SkippedRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "airquality",
			Name:      "dataset_skipped_rows",
			Help:      "Rows excluded from the most recent load for unparseable date/time.",
		}),
		MissingValues: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "airquality",
			Name:      "dataset_missing_values",
			Help:      "Missing readings per field in the most recently loaded dataset.",
		}, []string{"field"}),
	}
}
