package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the dashboard.
type Metrics struct {
	ReportFetches      *prometheus.CounterVec // labels: outcome={success,empty,error}
	RowsReturned       prometheus.Histogram
	StoreQueryDuration *prometheus.HistogramVec // labels: query={reports,report_dates,provinces,latest_date}
	Cache              *prometheus.CounterVec   // labels: cache={report_rows,filter_options}, result={hit,miss,error}
}

func newCollectors() *Metrics {
	return &Metrics{
		ReportFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dam_dash",
			Name:      "report_fetches_total",
			Help:      "Report fetches against the store by outcome.",
		}, []string{"outcome"}),
		RowsReturned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "dam_dash",
			Name:      "report_rows_returned",
			Help:      "Number of display rows produced per fetch.",
			Buckets:   []float64{0, 1, 10, 25, 50, 100, 200, 400},
		}),
		StoreQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dam_dash",
			Name:      "store_query_duration_seconds",
			Help:      "Report store query duration in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"query"}),
		Cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dam_dash",
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by cache and result.",
		}, []string{"cache", "result"}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newCollectors()
	prometheus.MustRegister(
		m.ReportFetches,
		m.RowsReturned,
		m.StoreQueryDuration,
		m.Cache,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics so tests can build as
// many as they like.
func NewMetricsForTesting() *Metrics {
	return newCollectors()
}
