package cache

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/appearance-snapshots/internal/ports"
)

// Value holds one lazily refreshed value together with the time it was loaded.
// A zero or negative ttl means the value stays valid until Invalidate.
type Value[T any] struct {
	mu            sync.Mutex
	value         T
	lastRefreshed time.Time
	valid         bool
	ttl           time.Duration
	load          func(ctx context.Context) (T, error)
	clock         ports.Clock
}

func New[T any](ttl time.Duration, clock ports.Clock, load func(ctx context.Context) (T, error)) *Value[T] {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &Value[T]{ttl: ttl, load: load, clock: clock}
}

// Get returns the cached value, refreshing it first when stale or invalidated.
func (c *Value[T]) Get(ctx context.Context) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && !c.staleLocked() {
		return c.value, nil
	}
	return c.refreshLocked(ctx)
}

func (c *Value[T]) Refresh(ctx context.Context) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.refreshLocked(ctx)
}

func (c *Value[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.valid = false
}

func (c *Value[T]) LastRefreshed() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lastRefreshed
}

func (c *Value[T]) staleLocked() bool {
	if c.ttl <= 0 {
		return false
	}
	return c.clock.Now().Sub(c.lastRefreshed) > c.ttl
}

func (c *Value[T]) refreshLocked(ctx context.Context) (T, error) {
	value, err := c.load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	c.value = value
	c.lastRefreshed = c.clock.Now()
	c.valid = true
	return value, nil
}
