package redis_adapter

import (
	"context"
	"errors"
	"fmt"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/redis/go-redis/v9"
)

// Config хранит параметры подключения к Redis.
// Префикс ключей задается в NewRedisKeyValueStore.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// RedisKeyValueStore - реализация KeyValueStore поверх Redis.
type RedisKeyValueStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewClient создает клиента и проверяет соединение.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("REDIS_ADDR configuration is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("unable to ping redis: %w", err)
	}
	return client, nil
}

func NewRedisKeyValueStore(client *redis.Client, keyPrefix string) (*RedisKeyValueStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}
	return &RedisKeyValueStore{client: client, keyPrefix: keyPrefix}, nil
}

func (s *RedisKeyValueStore) fullKey(key string) string {
	return s.keyPrefix + key
}

func (s *RedisKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.fullKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrKeyNotFound
	}
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to read key from redis", err, port.Fields{
			"component": "RedisKeyValueStore",
			"key":       key,
		})
		return "", fmt.Errorf("failed to get key %q: %w", key, err)
	}
	return value, nil
}

func (s *RedisKeyValueStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.fullKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set key %q: %w", key, err)
	}
	return nil
}

func (s *RedisKeyValueStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.fullKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to remove key %q: %w", key, err)
	}
	return nil
}
