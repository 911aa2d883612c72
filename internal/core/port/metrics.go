package port

import "time"

// CatalogMetricsPort собирает метрики обращений к каталогу.
type CatalogMetricsPort interface {
	ObserveRequest(endpoint, outcome string, duration time.Duration)
	IncFeaturedAttempt(outcome string)
}

// NoopCatalogMetrics - реализация по умолчанию, когда метрики не нужны.
type NoopCatalogMetrics struct{}

func (NoopCatalogMetrics) ObserveRequest(endpoint, outcome string, duration time.Duration) {}
func (NoopCatalogMetrics) IncFeaturedAttempt(outcome string)                               {}
