package middleware

import (
	"net/http"
	"sync"
	"time"

	"taskboard/internal/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	idle     time.Duration
	swept    time.Time
	now      func() time.Time
}

func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	perMinute := cfg.RequestsPerMin
	if perMinute <= 0 {
		perMinute = 60
	}
	burst := cfg.BurstSize
	if burst <= 0 {
		burst = perMinute
	}
	idle := cfg.CleanupInterval
	if idle <= 0 {
		idle = time.Minute
	}

	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
		idle:     idle,
		now:      time.Now,
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.swept) >= rl.idle {
		rl.sweep(now)
	}

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Cleanup drops visitors idle for longer than the cleanup interval and
// returns how many were removed. Allow also sweeps once per interval.
func (rl *RateLimiter) Cleanup() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.sweep(rl.now())
}

func (rl *RateLimiter) sweep(now time.Time) int {
	rl.swept = now
	removed := 0
	cutoff := now.Add(-rl.idle)
	for key, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, key)
			removed++
		}
	}
	return removed
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
