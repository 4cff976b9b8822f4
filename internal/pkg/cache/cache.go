// Package cache provides a small TTL cache with an injected clock and
// stale-while-revalidate reads, used for daily metrics snapshots.
package cache

import (
	"sync"
	"time"
)

type Clock func() time.Time

type item struct {
	value     any
	expiresAt time.Time
}

type Cache struct {
	mu    sync.RWMutex
	items map[string]item
	ttl   time.Duration
	now   Clock
}

func New(ttl time.Duration, now Clock) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		items: make(map[string]item),
		ttl:   ttl,
		now:   now,
	}
}

// Get returns the cached value and whether it is stale. ok is false only
// when the key has never been set; expired entries are returned with
// stale=true so callers can serve them while recomputing.
func (c *Cache) Get(key string) (value any, stale bool, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, ok := c.items[key]
	if !ok {
		return nil, false, false
	}
	return it.value, c.now().After(it.expiresAt), true
}

func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = item{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
}

func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}
