package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory implements in-memory expiring caching
type Memory[T any] struct {
	cache *gocache.Cache
}

var _ Cache[int] = (*Memory[int])(nil)

// NewMemory creates a new memory cache
func NewMemory[T any](defaultTTL time.Duration, cleanupInterval time.Duration) *Memory[T] {
	return &Memory[T]{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a value from the cache
func (c *Memory[T]) Get(key string) (T, bool) {
	if val, found := c.cache.Get(key); found {
		if v, ok := val.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Set stores a value with the given TTL (0 uses the default TTL)
func (c *Memory[T]) Set(key string, value T, ttl time.Duration) {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	c.cache.Set(key, value, ttl)
}

// Delete removes a value from the cache
func (c *Memory[T]) Delete(key string) {
	c.cache.Delete(key)
}

// Clear removes all values from the cache
func (c *Memory[T]) Clear() {
	c.cache.Flush()
}

// Len returns the number of cached items, expired ones included until cleanup
func (c *Memory[T]) Len() int {
	return c.cache.ItemCount()
}
