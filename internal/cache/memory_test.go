package cache

import (
	"context"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestTTLCache_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := NewTTLCache[float64](15*time.Minute, clock.Now)

	if _, ok := c.Get(ctx, "GOLD_PRICE"); ok {
		t.Fatal("empty cache reported a hit")
	}

	c.Set(ctx, "GOLD_PRICE", 2257.46)

	tests := []struct {
		advance time.Duration
		wantHit bool
	}{
		{0, true},
		{14*time.Minute + 59*time.Second, true},
		{time.Second, false},
		{time.Hour, false},
	}
	for _, tt := range tests {
		clock.Advance(tt.advance)
		v, ok := c.Get(ctx, "GOLD_PRICE")
		if ok != tt.wantHit {
			t.Fatalf("after +%v hit = %v, want %v", tt.advance, ok, tt.wantHit)
		}
		if ok && v != 2257.46 {
			t.Errorf("value = %v", v)
		}
	}

	if c.Len() != 1 {
		t.Errorf("expired entry should stay until overwritten, len = %d", c.Len())
	}
}

func TestTTLCache_SetOverwritesAndRestartsTTL(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Unix(0, 0)}
	c := NewTTLCache[string](time.Minute, clock.Now)

	c.Set(ctx, "k", "first")
	clock.Advance(50 * time.Second)
	c.Set(ctx, "k", "second")
	clock.Advance(50 * time.Second)

	v, ok := c.Get(ctx, "k")
	if !ok || v != "second" {
		t.Errorf("Get = %q, %v; want second, true", v, ok)
	}
}

func TestTTLCache_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	c := NewTTLCache[int](time.Minute, nil)
	c.Set(ctx, "GOLD_PRICE", 1)
	c.Set(ctx, "SILVER_PRICE", 2)

	if v, _ := c.Get(ctx, "GOLD_PRICE"); v != 1 {
		t.Errorf("gold = %d", v)
	}
	if v, _ := c.Get(ctx, "SILVER_PRICE"); v != 2 {
		t.Errorf("silver = %d", v)
	}
}

func TestTTLCache_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := NewTTLCache[int](time.Minute, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			c.Set(ctx, "key", n)
		}(i)
		go func() {
			defer wg.Done()
			c.Get(ctx, "key")
		}()
	}
	wg.Wait()

	if _, ok := c.Get(ctx, "key"); !ok {
		t.Error("expected a value after concurrent writes")
	}
}

func TestTTLCache_SatisfiesCache(t *testing.T) {
	var _ Cache[int] = NewTTLCache[int](time.Second, nil)
	var _ Cache[int] = (*RedisCache[int])(nil)
}
