package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// Cache is an in-process TTL cache used as the roster read cache when no
// Redis URL is configured. It matches the method set of the Redis client
// wrapper, so services take either interchangeably.
type Cache struct {
	mu    sync.RWMutex
	items map[string]entry
}

// New creates an empty cache
func New() *Cache {
	return &Cache{items: map[string]entry{}}
}

// Get retrieves a value if it hasn't expired
func (c *Cache) Get(_ context.Context, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, exists := c.items[key]
	if !exists || time.Now().After(e.expiresAt) {
		return "", false
	}
	return e.value, true
}

// Set stores a value with a TTL
func (c *Cache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// DeleteByPrefix removes every key starting with prefix
func (c *Cache) DeleteByPrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
	return nil
}
