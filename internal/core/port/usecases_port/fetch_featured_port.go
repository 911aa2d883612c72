package usecases_port

import (
	"context"
	"listing-service/internal/core/domain"
)

// FetchFeaturedUseCase никогда не возвращает ошибку: исчерпание попыток и
// отмена дают пустой срез, отмену можно отличить только по ctx.Err().
type FetchFeaturedUseCase interface {
	Execute(ctx context.Context) []domain.Property
}
