package catalog_api_client

import "listing-service/internal/core/domain"

// DTO ответа GET /properties
type listingPageResponse struct {
	Properties []domain.Property      `json:"properties"`
	Pagination *domain.PaginationInfo `json:"pagination"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
