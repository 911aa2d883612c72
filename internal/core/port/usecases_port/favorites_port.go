package usecases_port

import "context"

type FavoritesUseCase interface {
	List() []string
	IsFavorite(propertyID string) bool
	Add(ctx context.Context, propertyID string) error
	Remove(ctx context.Context, propertyID string) error
	Toggle(ctx context.Context, propertyID string) (bool, error)
}
