package dashboard

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sells-group/sheetmap/internal/workbook"
)

const namespace = "sheetmap"

// Metrics holds the dashboard's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Requests     *prometheus.CounterVec // labels: route, status
	RowsKept     prometheus.Counter
	RowsDropped  prometheus.Counter
	SchemaErrors prometheus.Counter
	Classify     *prometheus.CounterVec // labels: result={ok,fallback,error}
}

// NewMetrics creates and registers the dashboard metrics. stats, when non-nil,
// is exported as workbook cache gauges.
func NewMetrics(stats func() workbook.CacheStats) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"route", "status"}),
		RowsKept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_kept_total",
			Help:      "Rows that normalized into point records.",
		}),
		RowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_dropped_total",
			Help:      "Rows excluded for unparseable coordinates.",
		}),
		SchemaErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schema_errors_total",
			Help:      "Sheets rejected for missing coordinate columns.",
		}),
		Classify: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classify_total",
			Help:      "Colour classifications by result.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		m.Requests,
		m.RowsKept,
		m.RowsDropped,
		m.SchemaErrors,
		m.Classify,
	)

	if stats != nil {
		m.registry.MustRegister(
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "workbook_cache_entries",
				Help:      "Workbooks held in the cache.",
			}, func() float64 { return float64(stats().Entries) }),
			prometheus.NewCounterFunc(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "workbook_cache_hits_total",
				Help:      "Workbook cache hits.",
			}, func() float64 { return float64(stats().Hits) }),
			prometheus.NewCounterFunc(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "workbook_cache_misses_total",
				Help:      "Workbook cache misses.",
			}, func() float64 { return float64(stats().Misses) }),
		)
	}
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
