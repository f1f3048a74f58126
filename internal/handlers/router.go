package handlers

import (
	"taskboard/internal/middleware"
	"taskboard/internal/monitoring"
	"taskboard/internal/services"

	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	Tasks   services.TaskService
	Tags    services.TagService
	Options Options
	Monitor *monitoring.Monitor
	// Middleware runs after recovery and metrics, before every route.
	Middleware []gin.HandlerFunc
}

// SetupRouter wires the JSON API, the HTML board and the monitoring
// endpoints onto a new engine.
func SetupRouter(cfg RouterConfig) (*gin.Engine, error) {
	tmpl, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Logger(), middleware.RecoveryWithLog())
	if cfg.Monitor != nil {
		router.Use(cfg.Monitor.Middleware())
	}
	router.Use(cfg.Middleware...)
	if cfg.Monitor != nil {
		cfg.Monitor.Register(router)
	}
	router.SetHTMLTemplate(tmpl)

	taskHandler := NewTaskHandler(cfg.Tasks, cfg.Options)
	tagHandler := NewTagHandler(cfg.Tags, cfg.Options)
	boardHandler := NewBoardHandler(cfg.Tasks, cfg.Tags, cfg.Options)

	api := router.Group("/api")
	{
		api.GET("/tasks", taskHandler.GetTasks)
		api.GET("/tasks/filter", taskHandler.FilterTasks)
		api.POST("/tasks", taskHandler.CreateTask)
		api.PUT("/tasks/:id", taskHandler.UpdateTask)
		api.DELETE("/tasks/:id", taskHandler.DeleteTask)
		api.POST("/tasks/:id/toggle-completion", taskHandler.ToggleTaskCompletion)
		api.POST("/tasks/:id/toggle-important", taskHandler.ToggleTaskImportant)

		api.GET("/tags", tagHandler.GetTags)
		api.POST("/tags", tagHandler.CreateTag)
		api.PUT("/tags/:id", tagHandler.UpdateTag)
		api.DELETE("/tags/:id", tagHandler.DeleteTag)
		api.GET("/palette", tagHandler.GetPalette)
	}

	router.GET(boardPath, boardHandler.Show)
	forms := router.Group("/board")
	{
		forms.POST("/tasks", boardHandler.CreateTask)
		forms.POST("/tasks/:id", boardHandler.UpdateTask)
		forms.POST("/tasks/:id/toggle-completion", boardHandler.ToggleTaskCompletion)
		forms.POST("/tasks/:id/toggle-important", boardHandler.ToggleTaskImportant)
		forms.POST("/tasks/:id/delete", boardHandler.DeleteTask)
		forms.POST("/tags", boardHandler.CreateTag)
		forms.POST("/tags/:id", boardHandler.UpdateTag)
		forms.POST("/tags/:id/delete", boardHandler.DeleteTag)
	}

	return router, nil
}
