package rest

import "listing-service/internal/core/domain"

// PropertyCardResponse - объект каталога плюс поля, готовые к показу.
// Адрес в карточке урезан по addressVisibility.
type PropertyCardResponse struct {
	domain.Property
	RouteKey       string `json:"routeKey"`
	PriceFormatted string `json:"priceFormatted"`
	PublicAddress  string `json:"publicAddress"`
}

// ListingResponse повторяет форму ответа бэкенда и добавляет hasMore и error.
type ListingResponse struct {
	Properties []PropertyCardResponse `json:"properties"`
	Pagination *domain.PaginationInfo `json:"pagination"`
	HasMore    bool                   `json:"hasMore"`
	Error      string                 `json:"error,omitempty"`
}

type FeaturedResponse struct {
	Data []PropertyCardResponse `json:"data"`
}

type FavoritesResponse struct {
	IDs []string `json:"ids"`
}

type ToggleFavoriteResponse struct {
	PropertyID string `json:"propertyId"`
	Favorite   bool   `json:"favorite"`
}

func toCard(p domain.Property) PropertyCardResponse {
	p.Address = p.Address.Masked(p.AddressVisibility)
	return PropertyCardResponse{
		Property:       p,
		RouteKey:       p.RouteKey(),
		PriceFormatted: domain.FormatBRL(p.Price),
		PublicAddress:  p.PublicAddress(),
	}
}

func toCards(items []domain.Property) []PropertyCardResponse {
	cards := make([]PropertyCardResponse, len(items))
	for i, p := range items {
		cards[i] = toCard(p)
	}
	return cards
}
