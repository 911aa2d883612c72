package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type UpdatePropertyUseCase struct {
	catalog port.PropertyCatalogPort
	writer  port.PropertyWriterPort
}

func NewUpdatePropertyUseCase(catalog port.PropertyCatalogPort, writer port.PropertyWriterPort) *UpdatePropertyUseCase {
	return &UpdatePropertyUseCase{catalog: catalog, writer: writer}
}

// Execute загружает объект, проецирует его в форму редактирования, накладывает
// changes (JSON только с измененными полями) и отправляет результат.
// Поля, которых нет в changes, уходят на бэкенд без изменений.
func (uc *UpdatePropertyUseCase) Execute(ctx context.Context, token, identifier string, changes []byte) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "UpdateProperty",
		"identifier": identifier,
	})

	current, err := uc.catalog.GetProperty(ctx, identifier)
	if err != nil {
		ucLogger.Error("Failed to load property before update", err, nil)
		return nil, err
	}

	input, err := ApplyChanges(current.ToInput(), changes)
	if err != nil {
		ucLogger.Warn("Invalid changes payload", port.Fields{"error": err.Error()})
		return nil, err
	}

	updated, err := uc.writer.UpdateProperty(ctx, token, current.RouteKey(), input)
	if err != nil {
		ucLogger.Error("Catalog rejected update", err, nil)
		return nil, err
	}

	ucLogger.Info("Property updated", nil)
	return updated, nil
}

// ApplyChanges накладывает JSON с измененными полями на write-модель.
// json.Unmarshal в существующую структуру трогает только присутствующие ключи.
func ApplyChanges(input domain.PropertyInput, changes []byte) (domain.PropertyInput, error) {
	if len(changes) == 0 {
		return input, nil
	}
	if err := json.Unmarshal(changes, &input); err != nil {
		return domain.PropertyInput{}, fmt.Errorf("%w: %v", domain.ErrInvalidChanges, err)
	}
	return input, nil
}
