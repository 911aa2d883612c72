package rest

import (
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type FavoritesHandler struct {
	favoritesUC usecases_port.FavoritesUseCase
}

func NewFavoritesHandler(favoritesUC usecases_port.FavoritesUseCase) *FavoritesHandler {
	return &FavoritesHandler{favoritesUC: favoritesUC}
}

// List обрабатывает GET /api/v1/favorites
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, FavoritesResponse{IDs: h.favoritesUC.List()})
}

// Add обрабатывает PUT /api/v1/favorites/{propertyID}
func (h *FavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	propertyID := chi.URLParam(r, "propertyID")

	if err := h.favoritesUC.Add(r.Context(), propertyID); err != nil {
		logger.Error("Failed to add favorite", err, port.Fields{"property_id": propertyID})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to add favorite")
		return
	}
	RespondWithJSON(w, http.StatusOK, FavoritesResponse{IDs: h.favoritesUC.List()})
}

// Remove обрабатывает DELETE /api/v1/favorites/{propertyID}
func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	propertyID := chi.URLParam(r, "propertyID")

	if err := h.favoritesUC.Remove(r.Context(), propertyID); err != nil {
		logger.Error("Failed to remove favorite", err, port.Fields{"property_id": propertyID})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to remove favorite")
		return
	}
	RespondWithJSON(w, http.StatusOK, FavoritesResponse{IDs: h.favoritesUC.List()})
}

// Toggle обрабатывает POST /api/v1/favorites/{propertyID}/toggle
func (h *FavoritesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	propertyID := chi.URLParam(r, "propertyID")

	favorite, err := h.favoritesUC.Toggle(r.Context(), propertyID)
	if err != nil {
		logger.Error("Failed to toggle favorite", err, port.Fields{"property_id": propertyID})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to toggle favorite")
		return
	}
	RespondWithJSON(w, http.StatusOK, ToggleFavoriteResponse{PropertyID: propertyID, Favorite: favorite})
}
