package cache

import (
	"context"
	"time"
)

// Cache stores values for a fixed time-to-live. Get reports false for a
// missing or expired entry; Set overwrites any previous value for key.
type Cache[T any] interface {
	Get(ctx context.Context, key string) (T, bool)
	Set(ctx context.Context, key string, value T)
}

// Clock returns the current time. Tests substitute a controllable clock.
type Clock func() time.Time
