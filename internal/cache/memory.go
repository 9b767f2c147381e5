package cache

import (
	"context"
	"sync"
	"time"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// TTLCache is an in-process cache. Entries are never evicted; an expired
// entry simply stops being returned and is replaced on the next Set.
type TTLCache[T any] struct {
	mu    sync.RWMutex
	ttl   time.Duration
	now   Clock
	items map[string]entry[T]
}

// NewTTLCache creates an empty cache. A nil clock means time.Now.
func NewTTLCache[T any](ttl time.Duration, now Clock) *TTLCache[T] {
	if now == nil {
		now = time.Now
	}
	return &TTLCache[T]{
		ttl:   ttl,
		now:   now,
		items: make(map[string]entry[T]),
	}
}

func (c *TTLCache[T]) Get(_ context.Context, key string) (T, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	var zero T
	if !ok || !c.now().Before(e.expiresAt) {
		return zero, false
	}
	return e.value, true
}

func (c *TTLCache[T]) Set(_ context.Context, key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry[T]{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Len returns the number of stored entries, expired ones included.
func (c *TTLCache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
