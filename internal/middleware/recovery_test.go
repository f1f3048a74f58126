package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard/internal/handlers"
	"taskboard/internal/middleware"
	"taskboard/internal/models"
	"taskboard/internal/services"

	"github.com/gin-gonic/gin"
)

// brokenTasks panics on reads; the remaining methods are never reached.
type brokenTasks struct {
	services.TaskService
}

func (brokenTasks) FetchTasks(ctx context.Context) ([]models.Task, error) {
	panic("task store unavailable")
}

func recoveryRouter(t *testing.T) *gin.Engine {
	t.Helper()

	router := gin.New()
	router.Use(middleware.RecoveryWithLog())
	router.GET("/tasks", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})
	return router
}

func TestRecoveryWithLog(t *testing.T) {
	gin.SetMode(gin.TestMode)

	board, err := handlers.SetupRouter(handlers.RouterConfig{Tasks: brokenTasks{}})
	if err != nil {
		t.Fatalf("Failed to set up router: %v", err)
	}

	tests := []struct {
		name   string
		router *gin.Engine
		path   string
		status int
		body   string
	}{
		{name: "no panic", router: recoveryRouter(t), path: "/tasks", status: http.StatusOK, body: `{"success":true}`},
		{name: "panic in handler", router: recoveryRouter(t), path: "/panic", status: http.StatusInternalServerError, body: `{"error":"internal server error"}`},
		{name: "panic in api route", router: board, path: "/api/tasks", status: http.StatusInternalServerError, body: `{"error":"internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			tt.router.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, w.Code)
			}
			if w.Body.String() != tt.body {
				t.Errorf("Expected body %s, got %s", tt.body, w.Body.String())
			}
		})
	}
}
