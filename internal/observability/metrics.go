package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// measurement cache and the fetch path.
type Metrics struct {
	CacheLookups *prometheus.CounterVec // labels: result={hit,miss}
	CacheEntries prometheus.Gauge

	FetchRequests *prometheus.CounterVec   // labels: source={csv,api}, outcome={success,error}
	FetchDuration *prometheus.HistogramVec // labels: source={csv,api}

	QueueDepth  prometheus.Gauge
	RefreshRuns prometheus.Counter
}

// NewMetrics creates and registers all console metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.CacheLookups,
		m.CacheEntries,
		m.FetchRequests,
		m.FetchDuration,
		m.QueueDepth,
		m.RefreshRuns,
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
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meteo_console",
			Name:      "cache_lookups_total",
			Help:      "Station cache lookups by result.",
		}, []string{"result"}),
		CacheEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "meteo_console",
			Name:      "cache_entries",
			Help:      "Number of stations currently cached.",
		}),
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meteo_console",
			Name:      "fetch_requests_total",
			Help:      "Measurement fetches by source and outcome.",
		}, []string{"source", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "meteo_console",
			Name:      "fetch_duration_seconds",
			Help:      "Measurement fetch duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}),
		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "meteo_console",
			Name:      "pending_requests",
			Help:      "Lookup requests currently waiting in the queue.",
		}),
		RefreshRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "meteo_console",
			Name:      "refresh_runs_total",
			Help:      "Completed refresh cycles over all stations.",
		}),
	}
}
