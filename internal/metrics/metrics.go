package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns every collector of the service on a private registry, so tests
// can build as many instances as they like.
type Metrics struct {
	registry *prometheus.Registry

	// RequestCounter counts all HTTP requests with labels
	RequestCounter *prometheus.CounterVec
	// RequestDurationHistogram records request duration in seconds
	RequestDurationHistogram *prometheus.HistogramVec

	products     prometheus.Gauge
	categories   prometheus.Gauge
	totalValue   prometheus.Gauge
	mutations    *prometheus.CounterVec
	syncFailures *prometheus.CounterVec
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDurationHistogram: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		products: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_products",
			Help: "Number of products in the catalog",
		}),
		categories: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_categories",
			Help: "Number of distinct categories in the catalog",
		}),
		totalValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_total_value",
			Help: "Sum of all product prices",
		}),
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_mutations_total",
				Help: "Catalog mutations by operation",
			},
			[]string{"operation"},
		),
		syncFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_sync_failures_total",
				Help: "Failed writes of the catalog to storage by operation",
			},
			[]string{"operation"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestCounter,
		m.RequestDurationHistogram,
		m.products,
		m.categories,
		m.totalValue,
		m.mutations,
		m.syncFailures,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Mutation(operation string) {
	m.mutations.WithLabelValues(operation).Inc()
}

func (m *Metrics) SyncFailure(operation string) {
	m.syncFailures.WithLabelValues(operation).Inc()
}

func (m *Metrics) Observe(products, categories int, totalValue float64) {
	m.products.Set(float64(products))
	m.categories.Set(float64(categories))
	m.totalValue.Set(totalValue)
}
