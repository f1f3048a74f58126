package handlers

import (
	"net/http"

	"taskboard/internal/board"
	"taskboard/internal/services"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	taskService services.TaskService
	opts        Options
}

func NewTaskHandler(taskService services.TaskService, opts Options) *TaskHandler {
	return &TaskHandler{taskService: taskService, opts: opts.withDefaults()}
}

func (h *TaskHandler) GetTasks(c *gin.Context) {
	tasks, err := h.taskService.FetchTasks(c.Request.Context())
	if err != nil {
		h.opts.respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "tasks", tasks)
}

// FilterTasks applies the board state in the query string (q, filter, tag)
// to the full task list.
func (h *TaskHandler) FilterTasks(c *gin.Context) {
	tasks, err := h.taskService.FetchTasks(c.Request.Context())
	if err != nil {
		h.opts.respondServiceError(c, err)
		return
	}

	view := board.NewView(board.FromValues(c.Request.URL.Query()), tasks, nil, h.opts.today(), h.opts.locale(c))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"state":   view.State,
		"heading": view.Heading,
		"today":   view.Today,
		"tasks":   view.Visible.All,
		"tabs":    view.Visible,
		"counts":  view.Counts,
	})
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var input services.TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		h.opts.respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "task", task)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var update services.TaskUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.taskService.UpdateTask(c.Request.Context(), id, update); err != nil {
		h.opts.respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", nil)
}

func (h *TaskHandler) ToggleTaskCompletion(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	completed, err := h.taskService.ToggleTaskCompletion(c.Request.Context(), id)
	if err != nil {
		h.opts.respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "completed", completed)
}

func (h *TaskHandler) ToggleTaskImportant(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	important, err := h.taskService.ToggleTaskImportant(c.Request.Context(), id)
	if err != nil {
		h.opts.respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "important", important)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), id); err != nil {
		h.opts.respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", nil)
}
