package usecases_port

import (
	"context"
	"listing-service/internal/core/domain"
)

// ListingState - снимок состояния контроллера выдачи для UI.
type ListingState struct {
	Properties     []domain.Property
	CurrentPage    int
	Filters        domain.SearchFilters
	Pagination     *domain.PaginationInfo
	Loading        bool
	Error          string // пустая строка - ошибки нет
	InfiniteScroll bool
	HasMore        bool
}

type SearchListingsUseCase interface {
	Execute(ctx context.Context, filters domain.SearchFilters, page, limit int) ListingState
}
