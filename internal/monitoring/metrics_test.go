package monitoring_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard/internal/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(m *monitoring.Monitor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(m.Middleware())
	m.Register(router)
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/fail", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMonitor_CountsRequests(t *testing.T) {
	m := monitoring.NewMonitor()
	router := newRouter(m)

	get(router, "/ok")
	get(router, "/ok")
	get(router, "/fail")
	get(router, "/nowhere")

	snapshot := m.Snapshot()
	assert.Equal(t, int64(4), snapshot.RequestCount)
	assert.Equal(t, int64(2), snapshot.ErrorCount)
	assert.Equal(t, int64(0), snapshot.ActiveRequests)
	assert.Equal(t, int64(2), snapshot.Endpoints["GET /ok"])
	assert.Equal(t, int64(1), snapshot.Endpoints["GET unmatched"])
	assert.Equal(t, int64(2), snapshot.StatusCodes["Not Found"])

	// snapshots are copies
	snapshot.Endpoints["GET /ok"] = 100
	assert.Equal(t, int64(2), m.Snapshot().Endpoints["GET /ok"])
}

func TestMonitor_HealthChecksRunEveryTime(t *testing.T) {
	m := monitoring.NewMonitor()
	router := newRouter(m)

	var dbErr error
	m.RegisterHealthCheck("database", func(ctx context.Context) error { return dbErr })

	w := get(router, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusOK, get(router, "/ready").Code)

	dbErr = errors.New("connection refused")

	w = get(router, "/health")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body struct {
		Status string                            `json:"status"`
		Checks map[string]monitoring.HealthCheck `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, "connection refused", body.Checks["database"].Message)

	assert.Equal(t, http.StatusServiceUnavailable, get(router, "/ready").Code)
	assert.Equal(t, http.StatusOK, get(router, "/live").Code)
}

func TestMonitor_MetricsIncludeComponents(t *testing.T) {
	m := monitoring.NewMonitor()
	m.RegisterStats("cache", func() map[string]interface{} {
		return map[string]interface{}{"hits": 3}
	})
	router := newRouter(m)

	w := get(router, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)

	var parsed struct {
		Components map[string]map[string]float64 `json:"components"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	assert.Equal(t, float64(3), parsed.Components["cache"]["hits"])
}
