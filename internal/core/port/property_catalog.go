package port

import (
	"context"
	"listing-service/internal/core/domain"
)

// PropertyCatalogPort - контракт клиента REST API каталога объектов.
type PropertyCatalogPort interface {
	// ListProperties запрашивает страницу выдачи с фильтрами.
	ListProperties(ctx context.Context, filters domain.SearchFilters, page, limit int) (*domain.ListingPage, error)

	// FetchFeaturedRaw возвращает сырое тело ответа /properties/featured.
	// Разбор формы ответа - ответственность use case, а не клиента.
	FetchFeaturedRaw(ctx context.Context) ([]byte, error)

	// GetProperty ищет объект по reference или по id.
	GetProperty(ctx context.Context, identifier string) (*domain.Property, error)
}

// PropertyWriterPort - операции записи, требующие bearer-токена.
type PropertyWriterPort interface {
	CreateProperty(ctx context.Context, token string, input domain.PropertyInput) (*domain.Property, error)
	UpdateProperty(ctx context.Context, token, identifier string, input domain.PropertyInput) (*domain.Property, error)
	DeleteProperty(ctx context.Context, token, identifier string) error
}
