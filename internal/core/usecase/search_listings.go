package usecase

import (
	"context"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
	"time"
)

// SearchListingsUseCase обслуживает stateless-запросы выдачи: на каждый вызов
// создается свой ListingController, поэтому запросы не делят состояние.
type SearchListingsUseCase struct {
	catalog        port.PropertyCatalogPort
	requestTimeout time.Duration
	maxPageSize    int
}

func NewSearchListingsUseCase(catalog port.PropertyCatalogPort, requestTimeout time.Duration, maxPageSize int) *SearchListingsUseCase {
	return &SearchListingsUseCase{
		catalog:        catalog,
		requestTimeout: requestTimeout,
		maxPageSize:    maxPageSize,
	}
}

func (uc *SearchListingsUseCase) Execute(ctx context.Context, filters domain.SearchFilters, page, limit int) usecases_port.ListingState {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SearchListings",
		"page":     page,
		"limit":    limit,
		"filters":  filters.Fields(),
	})

	if uc.maxPageSize > 0 && limit > uc.maxPageSize {
		limit = uc.maxPageSize
	}

	controller := NewListingController(uc.catalog, ListingControllerConfig{
		PageSize:       limit,
		RequestTimeout: uc.requestTimeout,
	})

	ucLogger.Info("Use case started", nil)
	state := controller.Search(ctx, filters, page)
	if state.Error != "" {
		ucLogger.Warn("Search finished with error", port.Fields{"error": state.Error})
		return state
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"items_on_page": len(state.Properties)})
	return state
}
