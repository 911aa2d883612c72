package usecase

import (
	"context"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type GetPropertyUseCase struct {
	catalog port.PropertyCatalogPort
}

func NewGetPropertyUseCase(catalog port.PropertyCatalogPort) *GetPropertyUseCase {
	return &GetPropertyUseCase{catalog: catalog}
}

func (uc *GetPropertyUseCase) Execute(ctx context.Context, identifier string) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "GetProperty",
		"identifier": identifier,
	})

	property, err := uc.catalog.GetProperty(ctx, identifier)
	if err != nil {
		ucLogger.Error("Catalog returned an error", err, nil)
		return nil, err
	}

	ucLogger.Debug("Property found", port.Fields{"route_key": property.RouteKey()})
	return property, nil
}
