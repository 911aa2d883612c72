package postgres_adapter

import (
	"context"
	"errors"
	"fmt"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createKVTableQuery = `
CREATE TABLE IF NOT EXISTS client_kv_store (
	namespace  TEXT        NOT NULL,
	key        TEXT        NOT NULL,
	value      TEXT        NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (namespace, key)
)`

// PostgresKeyValueStore - реализация KeyValueStore для PostgreSQL.
// namespace отделяет данные разных сессий/пользователей в одной таблице.
type PostgresKeyValueStore struct {
	pool      *pgxpool.Pool
	namespace string
}

// NewPostgresKeyValueStore - конструктор.
func NewPostgresKeyValueStore(pool *pgxpool.Pool, namespace string) (*PostgresKeyValueStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	if namespace == "" {
		namespace = "default"
	}
	return &PostgresKeyValueStore{pool: pool, namespace: namespace}, nil
}

// EnsureSchema создает таблицу, если ее еще нет.
func (s *PostgresKeyValueStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createKVTableQuery); err != nil {
		return fmt.Errorf("failed to create client_kv_store table: %w", err)
	}
	return nil
}

func (s *PostgresKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresKeyValueStore",
		"method":    "Get",
		"namespace": s.namespace,
		"key":       key,
	})

	query := `SELECT value FROM client_kv_store WHERE namespace = $1 AND key = $2`

	var value string
	err := s.pool.QueryRow(ctx, query, s.namespace, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrKeyNotFound
	}
	if err != nil {
		repoLogger.Error("Failed to read key", err, port.Fields{"query": query})
		return "", fmt.Errorf("failed to get key %q: %w", key, err)
	}
	return value, nil
}

func (s *PostgresKeyValueStore) Set(ctx context.Context, key, value string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresKeyValueStore",
		"method":    "Set",
		"namespace": s.namespace,
		"key":       key,
	})

	query := `
		INSERT INTO client_kv_store (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

	if _, err := s.pool.Exec(ctx, query, s.namespace, key, value); err != nil {
		repoLogger.Error("Failed to upsert key", err, nil)
		return fmt.Errorf("failed to set key %q: %w", key, err)
	}
	repoLogger.Debug("Key stored", nil)
	return nil
}

func (s *PostgresKeyValueStore) Remove(ctx context.Context, key string) error {
	query := `DELETE FROM client_kv_store WHERE namespace = $1 AND key = $2`

	cmdTag, err := s.pool.Exec(ctx, query, s.namespace, key)
	if err != nil {
		return fmt.Errorf("failed to remove key %q: %w", key, err)
	}
	if cmdTag.RowsAffected() == 0 {
		contextkeys.LoggerFromContext(ctx).Debug("Attempted to remove a key that did not exist.", port.Fields{"key": key})
	}
	return nil
}
