package usecase

import (
	"context"
	"errors"
	"listing-service/internal/core/domain"
	"sync"
)

type listCall struct {
	filters domain.SearchFilters
	page    int
	limit   int
}

// fakeCatalog отдает заранее подготовленные ответы по порядку вызовов.
// Если задан block, ListProperties ждет сигнала перед ответом.
type fakeCatalog struct {
	mu sync.Mutex

	pages     []*domain.ListingPage
	listErrs  []error
	listCalls []listCall
	block     chan struct{}
	started   chan struct{}

	featuredBodies [][]byte
	featuredErrs   []error
	featuredCalls  int

	properties map[string]domain.Property
	updated    []domain.PropertyInput
	updatedKey string
	updateErr  error
}

func (f *fakeCatalog) ListProperties(ctx context.Context, filters domain.SearchFilters, page, limit int) (*domain.ListingPage, error) {
	f.mu.Lock()
	idx := len(f.listCalls)
	f.listCalls = append(f.listCalls, listCall{filters: filters, page: page, limit: limit})
	block, started := f.block, f.started
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if idx < len(f.listErrs) && f.listErrs[idx] != nil {
		return nil, f.listErrs[idx]
	}
	if idx < len(f.pages) {
		return f.pages[idx], nil
	}
	return &domain.ListingPage{Properties: []domain.Property{}}, nil
}

func (f *fakeCatalog) FetchFeaturedRaw(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.featuredCalls
	f.featuredCalls++
	if idx < len(f.featuredErrs) && f.featuredErrs[idx] != nil {
		return nil, f.featuredErrs[idx]
	}
	if idx < len(f.featuredBodies) {
		return f.featuredBodies[idx], nil
	}
	return nil, errors.New("no featured response configured")
}

func (f *fakeCatalog) GetProperty(ctx context.Context, identifier string) (*domain.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.properties[identifier]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	p.Normalize("")
	return &p, nil
}

func (f *fakeCatalog) CreateProperty(ctx context.Context, token string, input domain.PropertyInput) (*domain.Property, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCatalog) UpdateProperty(ctx context.Context, token, identifier string, input domain.PropertyInput) (*domain.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updated = append(f.updated, input)
	f.updatedKey = identifier
	return &domain.Property{ID: identifier, Title: input.Title, Price: input.Price}, nil
}

func (f *fakeCatalog) DeleteProperty(ctx context.Context, token, identifier string) error {
	return errors.New("not implemented")
}

func (f *fakeCatalog) listCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listCalls)
}

func pageOf(current, totalPages, totalItems int, ids ...string) *domain.ListingPage {
	items := make([]domain.Property, 0, len(ids))
	for _, id := range ids {
		items = append(items, domain.Property{ID: id})
	}
	pagination := domain.NewPaginationInfo(current, totalPages, totalItems)
	return &domain.ListingPage{Properties: items, Pagination: &pagination}
}

func ids(items []domain.Property) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}
