package cache

import (
	"sync/atomic"
	"time"
)

// CacheMetrics counts board cache traffic. Counters are updated atomically.
type CacheMetrics struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Errors int64 `json:"errors"`

	Sets          int64 `json:"sets"`
	Invalidations int64 `json:"invalidations"`
	StartTime     int64 `json:"start_time"`
}

func NewCacheMetrics() *CacheMetrics {
	return &CacheMetrics{
		StartTime: time.Now().Unix(),
	}
}

func (m *CacheMetrics) RecordHit() {
	atomic.AddInt64(&m.Hits, 1)
}

func (m *CacheMetrics) RecordMiss() {
	atomic.AddInt64(&m.Misses, 1)
}

func (m *CacheMetrics) RecordError() {
	atomic.AddInt64(&m.Errors, 1)
}

func (m *CacheMetrics) RecordSet() {
	atomic.AddInt64(&m.Sets, 1)
}

func (m *CacheMetrics) RecordInvalidation() {
	atomic.AddInt64(&m.Invalidations, 1)
}

func (m *CacheMetrics) Snapshot() CacheMetrics {
	return CacheMetrics{
		Hits:          atomic.LoadInt64(&m.Hits),
		Misses:        atomic.LoadInt64(&m.Misses),
		Errors:        atomic.LoadInt64(&m.Errors),
		Sets:          atomic.LoadInt64(&m.Sets),
		Invalidations: atomic.LoadInt64(&m.Invalidations),
		StartTime:     atomic.LoadInt64(&m.StartTime),
	}
}

// HitRate is a percentage in [0, 100].
func (m *CacheMetrics) HitRate() float64 {
	hits := atomic.LoadInt64(&m.Hits)
	misses := atomic.LoadInt64(&m.Misses)
	total := hits + misses

	if total == 0 {
		return 0.0
	}

	return float64(hits) / float64(total) * 100.0
}

func (m *CacheMetrics) Reset() {
	atomic.StoreInt64(&m.Hits, 0)
	atomic.StoreInt64(&m.Misses, 0)
	atomic.StoreInt64(&m.Errors, 0)
	atomic.StoreInt64(&m.Sets, 0)
	atomic.StoreInt64(&m.Invalidations, 0)
	atomic.StoreInt64(&m.StartTime, time.Now().Unix())
}
