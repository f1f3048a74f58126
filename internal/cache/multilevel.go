package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path"
	"sync"
	"time"
)

type Cache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	DeletePattern(ctx context.Context, pattern string) error
	Exists(ctx context.Context, key string) (bool, error)
	Stats() map[string]interface{}
	Health(ctx context.Context) error
	Close() error
}

// MultiLevelCache keeps a process-local copy in front of an optional Redis
// level. Redis calls go through a circuit breaker; while it is open the cache
// behaves as memory-only. A pattern whose Redis purge failed is remembered,
// and matching keys bypass Redis until a later purge of it succeeds.
type MultiLevelCache struct {
	l1      *MemoryCache
	l2      *RedisCache
	l1TTL   time.Duration
	breaker *CircuitBreaker
	metrics *CacheMetrics

	mu    sync.Mutex
	stale map[string]struct{}
}

func NewMultiLevelCache(redisCache *RedisCache, l1TTL time.Duration) *MultiLevelCache {
	if l1TTL <= 0 {
		l1TTL = 5 * time.Minute
	}
	return &MultiLevelCache{
		l1:      NewMemoryCache(),
		l2:      redisCache,
		l1TTL:   l1TTL,
		breaker: NewCircuitBreaker("redis", DefaultCircuitBreakerConfig()),
		metrics: NewCacheMetrics(),
		stale:   make(map[string]struct{}),
	}
}

func (c *MultiLevelCache) Metrics() *CacheMetrics {
	return c.metrics
}

func (c *MultiLevelCache) Breaker() *CircuitBreaker {
	return c.breaker
}

func (c *MultiLevelCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	c.l1.Set(key, data, c.l1Expiry(ttl))
	c.metrics.RecordSet()

	if !c.l2Usable(ctx, key) {
		return nil
	}

	return c.l2Call(func() error {
		return c.l2.Set(ctx, key, value, ttl)
	})
}

func (c *MultiLevelCache) Get(ctx context.Context, key string, dest interface{}) error {
	if value, found := c.l1.Get(key); found {
		c.metrics.RecordHit()
		return decode(value, dest)
	}

	if !c.l2Usable(ctx, key) {
		c.metrics.RecordMiss()
		return ErrCacheMiss
	}

	missed := false
	err := c.l2Call(func() error {
		err := c.l2.Get(ctx, key, dest)
		if errors.Is(err, ErrCacheMiss) {
			missed = true
			return nil
		}
		return err
	})
	if err != nil || missed {
		c.metrics.RecordMiss()
		return ErrCacheMiss
	}

	c.metrics.RecordHit()
	if data, err := json.Marshal(dest); err == nil {
		c.l1.Set(key, data, c.l1TTL)
	}
	return nil
}

func (c *MultiLevelCache) Delete(ctx context.Context, key string) error {
	c.l1.Delete(key)
	c.metrics.RecordInvalidation()

	if c.l2 == nil {
		return nil
	}

	return c.l2Call(func() error {
		return c.l2.Delete(ctx, key)
	})
}

func (c *MultiLevelCache) DeletePattern(ctx context.Context, pattern string) error {
	c.l1.DeletePattern(pattern)
	c.metrics.RecordInvalidation()

	if c.l2 == nil {
		return nil
	}

	return c.purgeL2(ctx, pattern)
}

// purgeL2 deletes pattern from Redis and tracks whether it is still stale.
func (c *MultiLevelCache) purgeL2(ctx context.Context, pattern string) error {
	err := c.l2Call(func() error {
		return c.l2.DeletePattern(ctx, pattern)
	})

	c.mu.Lock()
	if err != nil {
		c.stale[pattern] = struct{}{}
	} else {
		delete(c.stale, pattern)
	}
	c.mu.Unlock()
	return err
}

// l2Usable reports whether key may be read from or written to Redis. Stale
// patterns covering key are purged again first.
func (c *MultiLevelCache) l2Usable(ctx context.Context, key string) bool {
	if c.l2 == nil {
		return false
	}

	c.mu.Lock()
	var pending []string
	for pattern := range c.stale {
		if ok, _ := path.Match(pattern, key); ok {
			pending = append(pending, pattern)
		}
	}
	c.mu.Unlock()

	for _, pattern := range pending {
		if err := c.purgeL2(ctx, pattern); err != nil {
			return false
		}
	}
	return true
}

func (c *MultiLevelCache) Exists(ctx context.Context, key string) (bool, error) {
	if _, found := c.l1.Get(key); found {
		return true, nil
	}

	if !c.l2Usable(ctx, key) {
		return false, nil
	}

	var exists bool
	err := c.l2Call(func() error {
		var err error
		exists, err = c.l2.Exists(ctx, key)
		return err
	})
	return exists, err
}

func (c *MultiLevelCache) Stats() map[string]interface{} {
	snapshot := c.metrics.Snapshot()
	stats := map[string]interface{}{
		"l1":       c.l1.Stats(),
		"metrics":  snapshot,
		"hit_rate": c.metrics.HitRate(),
	}

	if c.l2 != nil {
		stats["l2"] = c.l2.Stats()
		stats["circuit_breaker"] = c.breaker.GetStats()
		c.mu.Lock()
		stats["stale_patterns"] = len(c.stale)
		c.mu.Unlock()
	}

	return stats
}

func (c *MultiLevelCache) Health(ctx context.Context) error {
	if c.l2 == nil {
		return nil
	}
	if c.breaker.GetState() == CircuitBreakerOpen {
		return ErrCacheDown
	}
	return c.l2.Health(ctx)
}

func (c *MultiLevelCache) Close() error {
	if c.l2 != nil {
		return c.l2.Close()
	}

	return nil
}

func (c *MultiLevelCache) l2Call(fn func() error) error {
	err := c.breaker.Execute(fn)
	if err != nil {
		c.metrics.RecordError()
		if !errors.Is(err, ErrCircuitBreakerOpen) {
			log.Printf("⚠️ redis cache error: %v", err)
		}
	}
	return err
}

// l1Expiry keeps L1 entries no longer than the caller asked for.
func (c *MultiLevelCache) l1Expiry(ttl time.Duration) time.Duration {
	if ttl > 0 && ttl < c.l1TTL {
		return ttl
	}
	return c.l1TTL
}

// decode copies an L1 entry into dest. L1 holds encoded JSON so callers
// never share memory with the cache.
func decode(value interface{}, dest interface{}) error {
	data, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("unexpected L1 entry type %T", value)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal cached data: %w", err)
	}
	return nil
}
