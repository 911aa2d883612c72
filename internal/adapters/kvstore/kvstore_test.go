package kvstore

import (
	"context"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, store port.KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "favorites")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "favorites", `["a"]`))
	value, err := store.Get(ctx, "favorites")
	require.NoError(t, err)
	assert.Equal(t, `["a"]`, value)

	require.NoError(t, store.Set(ctx, "favorites", `["a","b"]`))
	value, err = store.Get(ctx, "favorites")
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, value)

	require.NoError(t, store.Remove(ctx, "favorites"))
	require.NoError(t, store.Remove(ctx, "favorites"))
	_, err = store.Get(ctx, "favorites")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "nested", "favorites.json"))
	require.NoError(t, err)

	exerciseStore(t, store)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	first, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "favorites", `["p1"]`))
	require.NoError(t, first.Set(ctx, "other", "x"))

	second, err := NewFileStore(path)
	require.NoError(t, err)
	value, err := second.Get(ctx, "favorites")
	require.NoError(t, err)
	assert.Equal(t, `["p1"]`, value)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_CorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "favorites")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestNewFileStore_EmptyPath(t *testing.T) {
	_, err := NewFileStore("")
	assert.Error(t, err)
}
