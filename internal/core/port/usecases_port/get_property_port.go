package usecases_port

import (
	"context"
	"listing-service/internal/core/domain"
)

type GetPropertyUseCase interface {
	Execute(ctx context.Context, identifier string) (*domain.Property, error)
}
