package usecase

import (
	"context"
	"errors"
	"fmt"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
	"sync"
	"time"
)

const (
	DefaultPageSize       = 12
	DefaultRequestTimeout = 10 * time.Second
)

// ListingControllerConfig - настройки контроллера выдачи.
type ListingControllerConfig struct {
	PageSize       int
	RequestTimeout time.Duration
	// InfiniteScroll включает режим дозагрузки: append=true дописывает страницу в конец.
	InfiniteScroll bool
	// DiscardStaleResponses отбрасывает ответы, пришедшие после более позднего запроса.
	// По умолчанию выключено: побеждает последний завершившийся запрос.
	DiscardStaleResponses bool
}

// ListingController владеет состоянием одной выдачи: текущей страницей, фильтрами,
// результатами и метаданными пагинации. Ошибки не пробрасываются наружу,
// а кладутся в поле Error состояния.
type ListingController struct {
	catalog port.PropertyCatalogPort
	cfg     ListingControllerConfig

	mu          sync.Mutex
	properties  []domain.Property
	currentPage int
	filters     domain.SearchFilters
	pagination  *domain.PaginationInfo
	inFlight    int
	lastError   string
	generation  uint64
}

func NewListingController(catalog port.PropertyCatalogPort, cfg ListingControllerConfig) *ListingController {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	return &ListingController{
		catalog:     catalog,
		cfg:         cfg,
		properties:  []domain.Property{},
		currentPage: 1,
	}
}

// Fetch запрашивает страницу page с фильтрами filters. При успехе заменяет
// выдачу (или дописывает, если append и включен InfiniteScroll), при ошибке
// оставляет прежние данные и выставляет текст ошибки.
func (c *ListingController) Fetch(ctx context.Context, filters domain.SearchFilters, page int, appendMode bool) usecases_port.ListingState {
	c.mu.Lock()
	generation := c.beginLocked()
	c.mu.Unlock()

	c.run(ctx, generation, filters, page, appendMode)
	return c.State()
}

// LoadMore дозагружает следующую страницу. Ничего не делает, если следующей
// страницы нет или запрос уже выполняется.
func (c *ListingController) LoadMore(ctx context.Context) usecases_port.ListingState {
	c.mu.Lock()
	if c.inFlight > 0 || c.pagination == nil || !c.pagination.HasNextPage {
		c.mu.Unlock()
		return c.State()
	}
	filters := c.filters
	nextPage := c.currentPage + 1
	generation := c.beginLocked()
	c.mu.Unlock()

	c.run(ctx, generation, filters, nextPage, true)
	return c.State()
}

// Refresh перезапрашивает текущую страницу с текущими фильтрами, чтобы подхватить
// изменения на сервере без потери позиции пользователя.
func (c *ListingController) Refresh(ctx context.Context) usecases_port.ListingState {
	c.mu.Lock()
	filters := c.filters
	page := c.currentPage
	c.mu.Unlock()

	return c.Fetch(ctx, filters, page, false)
}

// Search запускает новый поиск. page < 1 означает первую страницу.
func (c *ListingController) Search(ctx context.Context, filters domain.SearchFilters, page int) usecases_port.ListingState {
	if page < 1 {
		page = 1
	}
	return c.Fetch(ctx, filters, page, false)
}

// HasMore - есть ли следующая страница. false, пока не было успешной загрузки.
func (c *ListingController) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasMoreLocked()
}

// State возвращает копию текущего состояния.
func (c *ListingController) State() usecases_port.ListingState {
	c.mu.Lock()
	defer c.mu.Unlock()

	properties := make([]domain.Property, len(c.properties))
	copy(properties, c.properties)

	var pagination *domain.PaginationInfo
	if c.pagination != nil {
		p := *c.pagination
		pagination = &p
	}

	return usecases_port.ListingState{
		Properties:     properties,
		CurrentPage:    c.currentPage,
		Filters:        c.filters,
		Pagination:     pagination,
		Loading:        c.inFlight > 0,
		Error:          c.lastError,
		InfiniteScroll: c.cfg.InfiniteScroll,
		HasMore:        c.hasMoreLocked(),
	}
}

func (c *ListingController) hasMoreLocked() bool {
	return c.pagination != nil && c.pagination.HasNextPage
}

func (c *ListingController) beginLocked() uint64 {
	c.inFlight++
	c.generation++
	c.lastError = ""
	return c.generation
}

func (c *ListingController) run(ctx context.Context, generation uint64, filters domain.SearchFilters, page int, appendMode bool) {
	logger := contextkeys.LoggerFromContext(ctx)
	ctrlLogger := logger.WithFields(port.Fields{
		"component": "ListingController",
		"page":      page,
		"append":    appendMode,
	})

	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	result, err := c.catalog.ListProperties(reqCtx, filters, page, c.cfg.PageSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight--

	if c.cfg.DiscardStaleResponses && generation != c.generation {
		ctrlLogger.Debug("Discarding stale listing response", port.Fields{
			"generation": generation, "latest_generation": c.generation,
		})
		return
	}

	if err != nil {
		c.lastError = c.describeError(err)
		ctrlLogger.Warn("Listing fetch failed, keeping previous results", port.Fields{"error": c.lastError})
		return
	}

	if appendMode && c.cfg.InfiniteScroll {
		merged := make([]domain.Property, 0, len(c.properties)+len(result.Properties))
		merged = append(merged, c.properties...)
		c.properties = append(merged, result.Properties...)
	} else {
		c.properties = result.Properties
	}
	c.pagination = result.Pagination
	c.filters = filters
	c.currentPage = page
	c.lastError = ""

	ctrlLogger.Debug("Listing page applied", port.Fields{
		"items_on_page": len(result.Properties),
		"items_total":   len(c.properties),
		"has_more":      c.hasMoreLocked(),
	})
}

func (c *ListingController) describeError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Sprintf("request timed out after %s", c.cfg.RequestTimeout)
	}
	return err.Error()
}
