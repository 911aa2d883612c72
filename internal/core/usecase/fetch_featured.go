package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"time"
)

const (
	DefaultFeaturedMaxRetries = 3
	DefaultFeaturedBaseDelay  = time.Second
)

// WaitFunc ждет d или отмены контекста. Возвращает ctx.Err() при отмене.
type WaitFunc func(ctx context.Context, d time.Duration) error

// FetchFeaturedConfig - настройки повторов для избранных объявлений.
type FetchFeaturedConfig struct {
	MaxRetries       int           // повторов после первой попытки, по умолчанию 3
	BaseDelay        time.Duration // задержка перед первым повтором, далее удваивается
	PhotoFallbackURL string
	Metrics          port.CatalogMetricsPort
	Wait             WaitFunc // подменяется в тестах
}

// FetchFeaturedUseCase загружает небольшой список продвигаемых объектов
// с экспоненциальными повторами. Ошибка наружу не возвращается никогда.
type FetchFeaturedUseCase struct {
	catalog port.PropertyCatalogPort
	cfg     FetchFeaturedConfig
}

func NewFetchFeaturedUseCase(catalog port.PropertyCatalogPort, cfg FetchFeaturedConfig) *FetchFeaturedUseCase {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultFeaturedBaseDelay
	}
	if cfg.Metrics == nil {
		cfg.Metrics = port.NoopCatalogMetrics{}
	}
	if cfg.Wait == nil {
		cfg.Wait = waitWithContext
	}
	return &FetchFeaturedUseCase{catalog: catalog, cfg: cfg}
}

// BackoffDelay - пауза перед повтором номер retry (1, 2, 3...): base, 2*base, 4*base.
func BackoffDelay(base time.Duration, retry int) time.Duration {
	if retry < 1 {
		return 0
	}
	return base << (retry - 1)
}

// Execute возвращает объекты при успехе и пустой срез при исчерпании попыток
// или отмене ctx. Отличить отмену можно только через ctx.Err().
func (uc *FetchFeaturedUseCase) Execute(ctx context.Context) []domain.Property {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "FetchFeatured",
		"max_retries": uc.cfg.MaxRetries,
	})

	totalAttempts := uc.cfg.MaxRetries + 1
	for attempt := 0; attempt < totalAttempts; attempt++ {
		if attempt > 0 {
			delay := BackoffDelay(uc.cfg.BaseDelay, attempt)
			ucLogger.Debug("Waiting before retry", port.Fields{"attempt": attempt + 1, "delay_ms": delay.Milliseconds()})
			if err := uc.cfg.Wait(ctx, delay); err != nil {
				uc.cfg.Metrics.IncFeaturedAttempt("cancelled")
				ucLogger.Info("Featured fetch cancelled during backoff", nil)
				return []domain.Property{}
			}
		}
		if ctx.Err() != nil {
			uc.cfg.Metrics.IncFeaturedAttempt("cancelled")
			ucLogger.Info("Featured fetch cancelled before attempt", port.Fields{"attempt": attempt + 1})
			return []domain.Property{}
		}

		items, err := uc.attempt(ctx)
		if err == nil {
			uc.cfg.Metrics.IncFeaturedAttempt("success")
			ucLogger.Info("Featured properties loaded", port.Fields{"attempt": attempt + 1, "objects_count": len(items)})
			return items
		}
		if ctx.Err() != nil {
			uc.cfg.Metrics.IncFeaturedAttempt("cancelled")
			ucLogger.Info("Featured fetch cancelled during request", nil)
			return []domain.Property{}
		}

		uc.cfg.Metrics.IncFeaturedAttempt("failure")
		ucLogger.Warn("Featured fetch attempt failed", port.Fields{
			"attempt":  attempt + 1,
			"attempts": totalAttempts,
			"error":    err.Error(),
		})
	}

	ucLogger.Warn("Featured fetch exhausted all attempts, returning empty list", nil)
	return []domain.Property{}
}

func (uc *FetchFeaturedUseCase) attempt(ctx context.Context) ([]domain.Property, error) {
	body, err := uc.catalog.FetchFeaturedRaw(ctx)
	if err != nil {
		return nil, err
	}

	items, err := ExtractFeaturedItems(body)
	if err != nil {
		return nil, err
	}
	return domain.NormalizeProperties(items, uc.cfg.PhotoFallbackURL), nil
}

// ExtractFeaturedItems разбирает ответ /properties/featured: либо массив объектов,
// либо объект, в котором берется первое по порядку поле-массив.
func ExtractFeaturedItems(body []byte) ([]domain.Property, error) {
	trimmed := bytes.TrimSpace(body)
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("featured response is not a valid JSON")
	}

	switch {
	case len(trimmed) > 0 && trimmed[0] == '[':
		return decodeItems(trimmed)
	case len(trimmed) > 0 && trimmed[0] == '{':
		raw, err := firstArrayField(trimmed)
		if err != nil {
			return nil, err
		}
		return decodeItems(raw)
	default:
		return nil, fmt.Errorf("%w: featured response is neither array nor object", domain.ErrUnexpectedShape)
	}
}

// firstArrayField обходит поля объекта в порядке документа, map этот порядок теряет.
func firstArrayField(object []byte) (json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(object))
	if _, err := dec.Token(); err != nil { // '{'
		return nil, fmt.Errorf("failed to read featured response: %w", err)
	}

	for dec.More() {
		if _, err := dec.Token(); err != nil { // ключ
			return nil, fmt.Errorf("failed to read featured response key: %w", err)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("failed to read featured response value: %w", err)
		}
		value = bytes.TrimSpace(value)
		if len(value) > 0 && value[0] == '[' {
			return value, nil
		}
	}
	return nil, fmt.Errorf("%w: no array field in featured response", domain.ErrUnexpectedShape)
}

func decodeItems(raw []byte) ([]domain.Property, error) {
	var items []domain.Property
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnexpectedShape, err)
	}
	if items == nil {
		items = []domain.Property{}
	}
	return items, nil
}

func waitWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
