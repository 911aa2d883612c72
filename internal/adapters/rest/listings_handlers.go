package rest

import (
	"errors"
	"io"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

const maxUpdateBodyBytes = 1 << 20

type ListingsHandler struct {
	searchUC        usecases_port.SearchListingsUseCase
	featuredUC      usecases_port.FetchFeaturedUseCase
	getPropertyUC   usecases_port.GetPropertyUseCase
	updateUC        usecases_port.UpdatePropertyUseCase
	defaultPageSize int
}

func NewListingsHandler(
	searchUC usecases_port.SearchListingsUseCase,
	featuredUC usecases_port.FetchFeaturedUseCase,
	getPropertyUC usecases_port.GetPropertyUseCase,
	updateUC usecases_port.UpdatePropertyUseCase,
	defaultPageSize int,
) *ListingsHandler {
	return &ListingsHandler{
		searchUC:        searchUC,
		featuredUC:      featuredUC,
		getPropertyUC:   getPropertyUC,
		updateUC:        updateUC,
		defaultPageSize: defaultPageSize,
	}
}

// Search обрабатывает GET /api/v1/listings
func (h *ListingsHandler) Search(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	query := r.URL.Query()
	page := parsePositiveInt(query, "page", 1)
	limit := parsePositiveInt(query, "limit", h.defaultPageSize)

	filters, err := parseSearchFilters(r.URL.RawQuery)
	if err != nil {
		logger.Warn("Invalid search filters", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	state := h.searchUC.Execute(r.Context(), filters, page, limit)

	// Без данных показывать нечего - отдаем ошибку шлюза.
	// С устаревшими данными отдаем их вместе с текстом ошибки.
	if state.Error != "" && len(state.Properties) == 0 {
		WriteJSONError(w, http.StatusBadGateway, state.Error)
		return
	}

	RespondWithJSON(w, http.StatusOK, ListingResponse{
		Properties: toCards(state.Properties),
		Pagination: state.Pagination,
		HasMore:    state.HasMore,
		Error:      state.Error,
	})
}

// Featured обрабатывает GET /api/v1/listings/featured
func (h *ListingsHandler) Featured(w http.ResponseWriter, r *http.Request) {
	items := h.featuredUC.Execute(r.Context())
	RespondWithJSON(w, http.StatusOK, FeaturedResponse{Data: toCards(items)})
}

// GetProperty обрабатывает GET /api/v1/listings/{identifier}
func (h *ListingsHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "identifier")

	property, err := h.getPropertyUC.Execute(r.Context(), identifier)
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toCard(*property))
}

// UpdateProperty обрабатывает PUT /api/v1/listings/{identifier}.
// Тело - JSON только с измененными полями.
func (h *ListingsHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	identifier := chi.URLParam(r, "identifier")

	authHeader := r.Header.Get("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if authHeader == "" || token == authHeader || token == "" {
		WriteJSONError(w, http.StatusUnauthorized, "Bearer token required")
		return
	}

	changes, err := io.ReadAll(io.LimitReader(r.Body, maxUpdateBodyBytes))
	if err != nil {
		logger.Warn("Failed to read request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.updateUC.Execute(r.Context(), token, identifier, changes)
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toCard(*updated))
}

func writeCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrPropertyNotFound):
		WriteJSONError(w, http.StatusNotFound, "Property not found")
	case errors.Is(err, domain.ErrInvalidChanges):
		WriteJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnexpectedShape):
		WriteJSONError(w, http.StatusBadGateway, "Catalog returned an unexpected response")
	default:
		WriteJSONError(w, http.StatusBadGateway, "Catalog request failed")
	}
}
