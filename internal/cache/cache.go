// Package cache предоставляет кэш с временем жизни записей и явной инвалидацией.
package cache

import (
	"context"
	"fmt"
	"path"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// Cache хранит значения по ключу ресурса и объединяет параллельные загрузки одного ключа.
type Cache struct {
	store      *gocache.Cache
	group      singleflight.Group
	defaultTTL time.Duration
}

// New создаёт кэш с временем жизни по умолчанию и интервалом очистки устаревших записей.
func New(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{
		store:      gocache.New(defaultTTL, cleanupInterval),
		defaultTTL: defaultTTL,
	}
}

// GetOrFetch возвращает значение из кэша или загружает его через fetch.
// При ttl <= 0 используется время жизни по умолчанию. Ошибки загрузки не кэшируются.
// Отмена ctx прерывает только ожидание этого вызывающего, загрузка для остальных продолжается.
func GetOrFetch[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fetch func(ctx context.Context) (T, error)) (T, error) {
	if v, ok := c.store.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	// Общая загрузка не зависит от отмены контекста вызывающего, который её начал.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		res, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		c.store.Set(key, res, ttl)
		return res, nil
	})

	var v any
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			var zero T
			return zero, res.Err
		}
		v = res.Val
	}

	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache: unexpected value type %T for key %q", v, key)
	}
	return typed, nil
}

// Invalidate удаляет все ключи, подходящие под glob-шаблон, и возвращает их количество.
func (c *Cache) Invalidate(pattern string) int {
	if _, ok := c.store.Get(pattern); ok {
		c.store.Delete(pattern)
		return 1
	}

	removed := 0
	for key := range c.store.Items() {
		if ok, err := path.Match(pattern, key); err == nil && ok {
			c.store.Delete(key)
			removed++
		}
	}
	return removed
}

// Clear удаляет все записи.
func (c *Cache) Clear() {
	c.store.Flush()
}

// Len возвращает число непросроченных записей.
func (c *Cache) Len() int {
	return len(c.store.Items())
}
