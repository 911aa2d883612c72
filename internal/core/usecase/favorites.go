package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"sync"
)

// FavoritesStorageKey - фиксированный ключ, под которым хранится список избранного.
const FavoritesStorageKey = "favorites"

// FavoritesController владеет кэшем избранного в памяти и синхронизирует его
// с KeyValueStore: читает при Load, пишет при каждом изменении.
type FavoritesController struct {
	store port.KeyValueStore

	mu  sync.RWMutex
	ids []string
}

func NewFavoritesController(store port.KeyValueStore) *FavoritesController {
	return &FavoritesController{store: store, ids: []string{}}
}

// Load читает сохраненный список. Отсутствие ключа - это пустой список,
// поврежденное значение логируется и тоже дает пустой список.
func (c *FavoritesController) Load(ctx context.Context) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "FavoritesController",
		"method":    "Load",
	})

	raw, err := c.store.Get(ctx, FavoritesStorageKey)
	if errors.Is(err, domain.ErrKeyNotFound) {
		c.replace([]string{})
		return nil
	}
	if err != nil {
		logger.Error("Failed to read favorites from store", err, nil)
		return fmt.Errorf("failed to read favorites: %w", err)
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		logger.Warn("Stored favorites are corrupted, starting with empty list", port.Fields{"error": err.Error()})
		ids = []string{}
	}

	ids = dedupe(ids)
	c.replace(ids)
	logger.Debug("Favorites loaded", port.Fields{"count": len(ids)})
	return nil
}

func (c *FavoritesController) List() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

func (c *FavoritesController) IsFavorite(propertyID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return indexOf(c.ids, propertyID) >= 0
}

func (c *FavoritesController) Add(ctx context.Context, propertyID string) error {
	if propertyID == "" {
		return fmt.Errorf("property id is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.addLocked(ctx, propertyID)
}

func (c *FavoritesController) Remove(ctx context.Context, propertyID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removeLocked(ctx, propertyID)
}

// Toggle добавляет или убирает объект и возвращает новое состояние.
// Проверка и изменение идут под одной блокировкой.
func (c *FavoritesController) Toggle(ctx context.Context, propertyID string) (bool, error) {
	if propertyID == "" {
		return false, fmt.Errorf("property id is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if indexOf(c.ids, propertyID) >= 0 {
		return false, c.removeLocked(ctx, propertyID)
	}
	return true, c.addLocked(ctx, propertyID)
}

func (c *FavoritesController) addLocked(ctx context.Context, propertyID string) error {
	if indexOf(c.ids, propertyID) >= 0 {
		return nil
	}
	next := append(append(make([]string, 0, len(c.ids)+1), c.ids...), propertyID)
	return c.persistLocked(ctx, next)
}

func (c *FavoritesController) removeLocked(ctx context.Context, propertyID string) error {
	idx := indexOf(c.ids, propertyID)
	if idx < 0 {
		return nil
	}
	next := make([]string, 0, len(c.ids)-1)
	next = append(next, c.ids[:idx]...)
	next = append(next, c.ids[idx+1:]...)
	return c.persistLocked(ctx, next)
}

// persistLocked сначала пишет в хранилище и только потом меняет кэш,
// чтобы при ошибке записи состояние в памяти не разъехалось с сохраненным.
func (c *FavoritesController) persistLocked(ctx context.Context, next []string) error {
	payload, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}
	if err := c.store.Set(ctx, FavoritesStorageKey, string(payload)); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to persist favorites", err, port.Fields{
			"component": "FavoritesController",
		})
		return fmt.Errorf("failed to persist favorites: %w", err)
	}
	c.ids = next
	return nil
}

func (c *FavoritesController) replace(ids []string) {
	c.mu.Lock()
	c.ids = ids
	c.mu.Unlock()
}

func indexOf(ids []string, id string) int {
	for i, existing := range ids {
		if existing == id {
			return i
		}
	}
	return -1
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
