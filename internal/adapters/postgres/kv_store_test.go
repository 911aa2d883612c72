package postgres_adapter

import (
	"context"
	"listing-service/internal/core/domain"
	"listing-service/pkg/postgres"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPostgresKeyValueStore_NilPool(t *testing.T) {
	_, err := NewPostgresKeyValueStore(nil, "default")
	assert.Error(t, err)
}

// Интеграционный тест, запускается только при заданном POSTGRES_TEST_URL.
func TestPostgresKeyValueStore_Integration(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_URL")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_URL is not set")
	}
	ctx := context.Background()

	pool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: dsn})
	require.NoError(t, err)
	defer pool.Close()

	store, err := NewPostgresKeyValueStore(pool, "test-"+uuid.NewString())
	require.NoError(t, err)
	require.NoError(t, store.EnsureSchema(ctx))

	_, err = store.Get(ctx, "favorites")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "favorites", `["p1"]`))
	require.NoError(t, store.Set(ctx, "favorites", `["p1","p2"]`))
	value, err := store.Get(ctx, "favorites")
	require.NoError(t, err)
	assert.Equal(t, `["p1","p2"]`, value)

	require.NoError(t, store.Remove(ctx, "favorites"))
	_, err = store.Get(ctx, "favorites")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}
