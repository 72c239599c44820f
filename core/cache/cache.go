package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ComputeFunc produces the value for a cache miss. It may block on network
// or I/O and must be idempotent for a given query.
type ComputeFunc[T any] func(ctx context.Context) (T, error)

type entry[T any] struct {
	value     T
	createdAt time.Time
}

// ExpiringCache memoizes the results of an expensive lookup keyed by a
// structured query. An entry is valid while now - createdAt < ttl. Expired
// entries are inert but stay in the map until Cleanup or InvalidateAll runs,
// a deliberate simplicity tradeoff against strict memory bounding.
//
// Concurrent misses for the same key both invoke the compute function and
// the last writer wins. That is accepted since the computation is idempotent
// and results are equivalent up to staleness.
type ExpiringCache[T any] struct {
	mu      sync.RWMutex
	entries map[Key]entry[T]
	ttl     time.Duration
	now     func() time.Time
	log     *slog.Logger
}

// New creates a cache whose entries expire after ttl
func New[T any](ttl time.Duration, logger *slog.Logger) *ExpiringCache[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExpiringCache[T]{
		entries: make(map[Key]entry[T]),
		ttl:     ttl,
		now:     time.Now,
		log:     logger,
	}
}

// GetOrCompute returns the cached value for a structurally identical query
// answered within the TTL. On a miss it invokes compute, stores the result
// and returns it. Errors from compute propagate to the caller uncached.
func (c *ExpiringCache[T]) GetOrCompute(ctx context.Context, query interface{}, compute ComputeFunc[T]) (T, error) {
	var zero T

	key, err := DeriveKey(query)
	if err != nil {
		return zero, err
	}

	c.mu.RLock()
	cached, exists := c.entries[key]
	c.mu.RUnlock()

	if exists && c.validAt(c.now(), cached) {
		c.log.Debug("Cache hit", slog.String("key", string(key)))
		return cached.value, nil
	}

	// The compute call runs outside the lock, it may block on I/O.
	value, err := compute(ctx)
	if err != nil {
		return zero, err
	}

	c.mu.Lock()
	c.entries[key] = entry[T]{value: value, createdAt: c.now()}
	c.mu.Unlock()

	return value, nil
}

// InvalidateAll clears every entry unconditionally
func (c *ExpiringCache[T]) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[Key]entry[T])
	c.mu.Unlock()

	c.log.Info("Cache invalidated")
}

// Cleanup removes expired entries and returns how many were evicted
func (c *ExpiringCache[T]) Cleanup() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	for key, cached := range c.entries {
		if !c.validAt(now, cached) {
			delete(c.entries, key)
			evicted++
		}
	}

	return evicted
}

// Stats describes the cache contents at one point in time
type Stats struct {
	TotalEntries   int     `json:"total_entries"`
	ValidEntries   int     `json:"valid_entries"`
	ExpiredEntries int     `json:"expired_entries"`
	TTLSeconds     float64 `json:"ttl_seconds"`
}

// Stats recomputes entry freshness on demand, there is no background sweep
func (c *ExpiringCache[T]) Stats() Stats {
	now := c.now()

	c.mu.RLock()
	defer c.mu.RUnlock()

	valid := 0
	for _, cached := range c.entries {
		if c.validAt(now, cached) {
			valid++
		}
	}

	return Stats{
		TotalEntries:   len(c.entries),
		ValidEntries:   valid,
		ExpiredEntries: len(c.entries) - valid,
		TTLSeconds:     c.ttl.Seconds(),
	}
}

func (c *ExpiringCache[T]) validAt(now time.Time, cached entry[T]) bool {
	return now.Sub(cached.createdAt) < c.ttl
}
