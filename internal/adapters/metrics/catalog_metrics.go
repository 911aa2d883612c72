package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CatalogMetrics - Prometheus-метрики обращений к API каталога.
type CatalogMetrics struct {
	registry         *prometheus.Registry
	requestsTotal    *prometheus.CounterVec
	requestLatency   *prometheus.HistogramVec
	featuredAttempts *prometheus.CounterVec
}

// NewCatalogMetrics регистрирует метрики в собственном реестре, чтобы
// несколько экземпляров (например, в тестах) не конфликтовали.
func NewCatalogMetrics() *CatalogMetrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &CatalogMetrics{
		registry: registry,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_api_requests_total",
				Help: "Total number of requests to the catalog API",
			},
			[]string{"endpoint", "outcome"},
		),
		requestLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_api_request_latency_ms",
				Help:    "Latency of catalog API requests in milliseconds",
				Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
			},
			[]string{"endpoint"},
		),
		featuredAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "featured_fetch_attempts_total",
				Help: "Featured fetch attempts by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// ObserveRequest реализует порт CatalogMetricsPort.
func (m *CatalogMetrics) ObserveRequest(endpoint, outcome string, duration time.Duration) {
	m.requestsTotal.WithLabelValues(endpoint, outcome).Inc()
	m.requestLatency.WithLabelValues(endpoint).Observe(float64(duration.Microseconds()) / 1000)
}

// IncFeaturedAttempt реализует порт CatalogMetricsPort.
func (m *CatalogMetrics) IncFeaturedAttempt(outcome string) {
	m.featuredAttempts.WithLabelValues(outcome).Inc()
}

// Handler отдает метрики в формате Prometheus.
func (m *CatalogMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry нужен тестам для чтения значений.
func (m *CatalogMetrics) Registry() *prometheus.Registry {
	return m.registry
}
