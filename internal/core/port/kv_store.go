package port

import "context"

// KeyValueStore - хранилище строковых значений по ключу.
// Get возвращает domain.ErrKeyNotFound, если ключа нет.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
