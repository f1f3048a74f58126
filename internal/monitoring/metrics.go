package monitoring

import (
	"context"
	"net/http"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 5 * time.Second

type Metrics struct {
	RequestCount    int64            `json:"request_count"`
	RequestDuration time.Duration    `json:"avg_request_duration_ms"`
	ActiveRequests  int64            `json:"active_requests"`
	ErrorCount      int64            `json:"error_count"`
	StatusCodes     map[string]int64 `json:"status_codes"`
	Endpoints       map[string]int64 `json:"endpoint_calls"`
	StartTime       time.Time        `json:"start_time"`
	LastRequest     time.Time        `json:"last_request"`
}

type HealthCheck struct {
	Name    string    `json:"name"`
	Status  string    `json:"status"`
	Message string    `json:"message,omitempty"`
	LastRun time.Time `json:"last_run"`
}

type HealthCheckFunc func(ctx context.Context) error

// StatsFunc reports component statistics for the /metrics payload.
type StatsFunc func() map[string]interface{}

// Monitor counts requests and runs registered health checks.
type Monitor struct {
	mu            sync.RWMutex
	metrics       Metrics
	totalDuration time.Duration

	checksMu sync.RWMutex
	checks   map[string]HealthCheckFunc
	stats    map[string]StatsFunc
}

func NewMonitor() *Monitor {
	return &Monitor{
		metrics: Metrics{
			StatusCodes: make(map[string]int64),
			Endpoints:   make(map[string]int64),
			StartTime:   time.Now(),
		},
		checks: make(map[string]HealthCheckFunc),
		stats:  make(map[string]StatsFunc),
	}
}

func (m *Monitor) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		m.mu.Lock()
		m.metrics.ActiveRequests++
		m.mu.Unlock()

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		endpoint := c.Request.Method + " " + route

		m.mu.Lock()
		defer m.mu.Unlock()

		m.metrics.RequestCount++
		m.metrics.ActiveRequests--
		m.totalDuration += duration
		m.metrics.RequestDuration = m.totalDuration / time.Duration(m.metrics.RequestCount)
		m.metrics.LastRequest = time.Now()

		if statusCode >= 400 {
			m.metrics.ErrorCount++
		}
		m.metrics.StatusCodes[http.StatusText(statusCode)]++
		m.metrics.Endpoints[endpoint]++
	}
}

// Snapshot returns a copy of the request metrics.
func (m *Monitor) Snapshot() Metrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := m.metrics
	snapshot.StatusCodes = make(map[string]int64, len(m.metrics.StatusCodes))
	snapshot.Endpoints = make(map[string]int64, len(m.metrics.Endpoints))
	for k, v := range m.metrics.StatusCodes {
		snapshot.StatusCodes[k] = v
	}
	for k, v := range m.metrics.Endpoints {
		snapshot.Endpoints[k] = v
	}
	return snapshot
}

func (m *Monitor) RegisterHealthCheck(name string, check HealthCheckFunc) {
	m.checksMu.Lock()
	defer m.checksMu.Unlock()
	m.checks[name] = check
}

func (m *Monitor) RegisterStats(name string, stats StatsFunc) {
	m.checksMu.Lock()
	defer m.checksMu.Unlock()
	m.stats[name] = stats
}

// RunHealthChecks runs every registered check, each bounded by its own
// timeout.
func (m *Monitor) RunHealthChecks(ctx context.Context) map[string]HealthCheck {
	m.checksMu.RLock()
	names := make([]string, 0, len(m.checks))
	for name := range m.checks {
		names = append(names, name)
	}
	checks := make(map[string]HealthCheckFunc, len(m.checks))
	for name, check := range m.checks {
		checks[name] = check
	}
	m.checksMu.RUnlock()
	sort.Strings(names)

	results := make(map[string]HealthCheck, len(names))
	for _, name := range names {
		results[name] = runCheck(ctx, name, checks[name])
	}
	return results
}

func runCheck(ctx context.Context, name string, check HealthCheckFunc) HealthCheck {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	result := HealthCheck{Name: name, Status: "healthy", LastRun: time.Now()}
	if err := check(ctx); err != nil {
		result.Status = "unhealthy"
		result.Message = err.Error()
	}
	return result
}

func healthy(checks map[string]HealthCheck) bool {
	for _, check := range checks {
		if check.Status != "healthy" {
			return false
		}
	}
	return true
}

type SystemMetrics struct {
	Uptime         time.Duration `json:"uptime"`
	MemoryUsage    MemoryStats   `json:"memory"`
	GoroutineCount int           `json:"goroutine_count"`
	CPUCount       int           `json:"cpu_count"`
	GoVersion      string        `json:"go_version"`
}

type MemoryStats struct {
	Alloc        uint64 `json:"alloc_mb"`
	TotalAlloc   uint64 `json:"total_alloc_mb"`
	Sys          uint64 `json:"sys_mb"`
	NumGC        uint32 `json:"num_gc"`
	NextGC       uint64 `json:"next_gc_mb"`
	LastGC       string `json:"last_gc"`
	GCPauseTotal string `json:"gc_pause_total"`
}

func (m *Monitor) SystemMetrics() SystemMetrics {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return SystemMetrics{
		Uptime: time.Since(m.metrics.StartTime),
		MemoryUsage: MemoryStats{
			Alloc:        bToMb(mem.Alloc),
			TotalAlloc:   bToMb(mem.TotalAlloc),
			Sys:          bToMb(mem.Sys),
			NumGC:        mem.NumGC,
			NextGC:       bToMb(mem.NextGC),
			LastGC:       time.Unix(0, int64(mem.LastGC)).Format(time.RFC3339),
			GCPauseTotal: time.Duration(mem.PauseTotalNs).String(),
		},
		GoroutineCount: runtime.NumGoroutine(),
		CPUCount:       runtime.NumCPU(),
		GoVersion:      runtime.Version(),
	}
}

func bToMb(b uint64) uint64 {
	return b / 1024 / 1024
}

func (m *Monitor) componentStats() map[string]interface{} {
	m.checksMu.RLock()
	defer m.checksMu.RUnlock()

	out := make(map[string]interface{}, len(m.stats))
	for name, stats := range m.stats {
		out[name] = stats()
	}
	return out
}

func (m *Monitor) MetricsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"application": m.Snapshot(),
			"system":      m.SystemMetrics(),
			"components":  m.componentStats(),
			"timestamp":   time.Now(),
		})
	}
}

func (m *Monitor) HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		checks := m.RunHealthChecks(c.Request.Context())

		overallStatus := "healthy"
		status := http.StatusOK
		if !healthy(checks) {
			overallStatus = "unhealthy"
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"status":    overallStatus,
			"timestamp": time.Now(),
			"checks":    checks,
			"uptime":    time.Since(m.metrics.StartTime).String(),
		})
	}
}

func (m *Monitor) ReadinessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if healthy(m.RunHealthChecks(c.Request.Context())) {
			c.JSON(http.StatusOK, gin.H{
				"status":    "ready",
				"timestamp": time.Now(),
			})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "not ready",
			"timestamp": time.Now(),
		})
	}
}

func (m *Monitor) LivenessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "alive",
			"timestamp": time.Now(),
			"uptime":    time.Since(m.metrics.StartTime).String(),
		})
	}
}

// Register mounts the monitoring endpoints on r.
func (m *Monitor) Register(r gin.IRouter) {
	r.GET("/metrics", m.MetricsHandler())
	r.GET("/health", m.HealthHandler())
	r.GET("/ready", m.ReadinessHandler())
	r.GET("/live", m.LivenessHandler())
}
