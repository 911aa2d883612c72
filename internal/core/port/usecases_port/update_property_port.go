package usecases_port

import (
	"context"
	"listing-service/internal/core/domain"
)

// UpdatePropertyUseCase применяет частичные изменения (JSON с измененными полями)
// поверх текущего состояния объекта и отправляет результат на бэкенд.
type UpdatePropertyUseCase interface {
	Execute(ctx context.Context, token, identifier string, changes []byte) (*domain.Property, error)
}
