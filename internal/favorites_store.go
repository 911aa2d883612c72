package internal

import (
	"context"
	"fmt"
	"listing-service/internal/adapters/kvstore"
	postgres_adapter "listing-service/internal/adapters/postgres"
	redis_adapter "listing-service/internal/adapters/redis"
	"listing-service/internal/configs"
	"listing-service/internal/core/port"
	"listing-service/pkg/postgres"
	"time"
)

// NewFavoritesStore создает хранилище избранного по FAVORITES_STORE.
// Возвращаемая функция закрывает соединения, если они были открыты.
func NewFavoritesStore(ctx context.Context, cfg *configs.AppConfig, logger port.LoggerPort) (port.KeyValueStore, func(), error) {
	noop := func() {}

	switch cfg.Favorites.Store {
	case "memory":
		return kvstore.NewMemoryStore(), noop, nil

	case "file":
		store, err := kvstore.NewFileStore(cfg.Favorites.FilePath)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open favorites file: %w", err)
		}
		logger.Info("Favorites file store initialized", port.Fields{"path": cfg.Favorites.FilePath})
		return store, noop, nil

	case "redis":
		client, err := redis_adapter.NewClient(ctx, redis_adapter.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("failed to connect to redis: %w", err)
		}
		store, err := redis_adapter.NewRedisKeyValueStore(client, favoritesKeyPrefix(cfg))
		if err != nil {
			_ = client.Close()
			return nil, noop, err
		}
		logger.Info("Favorites redis store initialized", port.Fields{"addr": cfg.Redis.Addr})
		return store, func() { _ = client.Close() }, nil

	case "postgres":
		pool, err := postgres.NewClient(ctx, postgres.Config{
			DatabaseURL:     cfg.Database.URL,
			MaxConns:        4,
			MaxConnLifetime: time.Hour,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		store, err := postgres_adapter.NewPostgresKeyValueStore(pool, cfg.Favorites.Namespace)
		if err != nil {
			pool.Close()
			return nil, noop, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		logger.Info("Favorites postgres store initialized", port.Fields{"namespace": cfg.Favorites.Namespace})
		return store, pool.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown favorites store %q", cfg.Favorites.Store)
	}
}

// favoritesKeyPrefix - префикс ключей избранного в Redis, например "listing-service:default:".
func favoritesKeyPrefix(cfg *configs.AppConfig) string {
	return cfg.AppName + ":" + cfg.Favorites.Namespace + ":"
}
