package handlers

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"taskboard/internal/board"
	"taskboard/internal/filter"
	"taskboard/internal/models"
	"taskboard/internal/services"
	"taskboard/internal/tagcolor"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templateFS embed.FS

const boardPath = "/"

var templateFuncs = template.FuncMap{
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"join": strings.Join,
	"actionURL": func(path string, s board.State) string {
		return s.URL(path)
	},
	"tagURL": func(s board.State, name string) string {
		return s.SelectTag(name).URL(boardPath)
	},
	"colorID": tagcolor.IDFor,
}

// LoadTemplates parses the embedded page templates.
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}

type filterLink struct {
	Mode   filter.Mode
	Label  string
	URL    string
	Active bool
}

type tab struct {
	Key   string
	Label string
	Count int
	Tasks []models.Task
}

type boardPage struct {
	View         board.View
	Labels       board.Labels
	Notice       *board.Notice
	Filters      []filterLink
	Tabs         []tab
	Priorities   []models.Priority
	DefaultColor string
}

// BoardHandler serves the server-rendered board and its form posts. Every
// post redirects back to the board with the state it was submitted from.
type BoardHandler struct {
	taskService services.TaskService
	tagService  services.TagService
	opts        Options
}

func NewBoardHandler(taskService services.TaskService, tagService services.TagService, opts Options) *BoardHandler {
	return &BoardHandler{taskService: taskService, tagService: tagService, opts: opts.withDefaults()}
}

func (h *BoardHandler) Show(c *gin.Context) {
	ctx := c.Request.Context()
	locale := h.opts.locale(c)
	query := c.Request.URL.Query()
	state := board.FromValues(query)

	var notice *board.Notice
	if n, ok := board.NoticeFromValues(query); ok {
		notice = &n
	}

	status := http.StatusOK
	tasks, err := h.taskService.FetchTasks(ctx)
	if err != nil {
		status = http.StatusInternalServerError
		failure := board.Failure(services.ErrorMessage(err, locale), locale)
		notice = &failure
	}
	tags, err := h.tagService.FetchTags(ctx)
	if err != nil {
		status = http.StatusInternalServerError
		failure := board.Failure(services.ErrorMessage(err, locale), locale)
		notice = &failure
	}

	view := board.NewView(state, tasks, tags, h.opts.today(), locale)
	c.HTML(status, "board.html", newBoardPage(view, board.LabelsFor(locale), notice))
}

func newBoardPage(view board.View, labels board.Labels, notice *board.Notice) boardPage {
	modes := []struct {
		mode  filter.Mode
		label string
	}{
		{filter.ModeAll, labels.FilterAll},
		{filter.ModeImportant, labels.FilterImportant},
		{filter.ModeToday, labels.FilterToday},
		{filter.ModeScheduled, labels.FilterScheduled},
	}

	filters := make([]filterLink, 0, len(modes))
	for _, m := range modes {
		filters = append(filters, filterLink{
			Mode:   m.mode,
			Label:  m.label,
			URL:    view.State.ChangeFilter(m.mode).URL(boardPath),
			Active: view.State.Filter == m.mode,
		})
	}

	return boardPage{
		View:    view,
		Labels:  labels,
		Notice:  notice,
		Filters: filters,
		Tabs: []tab{
			{Key: "all", Label: labels.TabAll, Count: view.Counts.All, Tasks: view.Visible.All},
			{Key: "pending", Label: labels.TabPending, Count: view.Counts.Pending, Tasks: view.Visible.Pending},
			{Key: "completed", Label: labels.TabCompleted, Count: view.Counts.Completed, Tasks: view.Visible.Completed},
		},
		Priorities:   []models.Priority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh},
		DefaultColor: tagcolor.DefaultID,
	}
}

func (h *BoardHandler) redirect(c *gin.Context, state board.State, notice board.Notice) {
	c.Redirect(http.StatusSeeOther, board.RedirectURL(boardPath, state, notice))
}

func (h *BoardHandler) fail(c *gin.Context, state board.State, locale language.Tag, err error) {
	h.redirect(c, state, board.Failure(services.ErrorMessage(err, locale), locale))
}

// formID reads the :id path parameter; a malformed id is reported as the
// not-found case of op.
func formID(c *gin.Context, op services.Op, notFound error) (uuid.UUID, error) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		return uuid.Nil, &services.OpError{Op: op, Err: notFound}
	}
	return id, nil
}

func optionalField(c *gin.Context, name string) *string {
	value, ok := c.GetPostForm(name)
	if !ok {
		return nil
	}
	return &value
}

// formTags splits the comma separated tag field. Full-width commas are
// accepted as separators.
func formTags(c *gin.Context) []string {
	raw := strings.ReplaceAll(c.PostForm("tags"), "、", ",")
	return strings.Split(raw, ",")
}

func (h *BoardHandler) CreateTask(c *gin.Context) {
	state := board.FromValues(c.Request.URL.Query())
	locale := h.opts.locale(c)

	input := services.TaskInput{
		Title:       c.PostForm("title"),
		Description: optionalField(c, "description"),
		DueDate:     optionalField(c, "due_date"),
		Priority:    models.Priority(c.PostForm("priority")),
		Important:   c.PostForm("important") != "",
		Tags:        formTags(c),
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		h.fail(c, state, locale, err)
		return
	}
	h.redirect(c, state, board.Success(board.EventTaskCreated, task.Title, locale))
}

func (h *BoardHandler) UpdateTask(c *gin.Context) {
	state := board.FromValues(c.Request.URL.Query())
	locale := h.opts.locale(c)

	id, err := formID(c, services.OpUpdateTask, services.ErrTaskNotFound)
	if err != nil {
		h.fail(c, state, locale, err)
		return
	}

	title := c.PostForm("title")
	priority := models.Priority(c.PostForm("priority"))
	important := c.PostForm("important") != ""
	update := services.TaskUpdate{
		Title:       &title,
		Description: optionalField(c, "description"),
		DueDate:     optionalField(c, "due_date"),
		Important:   &important,
		Tags:        formTags(c),
	}
	if priority != "" {
		update.Priority = &priority
	}

	if err := h.taskService.UpdateTask(c.Request.Context(), id, update); err != nil {
		h.fail(c, state, locale, err)
		return
	}
	h.redirect(c, state, board.Success(board.EventTaskUpdated, strings.TrimSpace(title), locale))
}

func (h *BoardHandler) ToggleTaskCompletion(c *gin.Context) {
	h.toggle(c, services.OpToggleTaskCompletion, h.taskService.ToggleTaskCompletion)
}

func (h *BoardHandler) ToggleTaskImportant(c *gin.Context) {
	h.toggle(c, services.OpToggleTaskImportant, h.taskService.ToggleTaskImportant)
}

func (h *BoardHandler) toggle(c *gin.Context, op services.Op, flip func(context.Context, uuid.UUID) (bool, error)) {
	state := board.FromValues(c.Request.URL.Query())
	locale := h.opts.locale(c)

	id, err := formID(c, op, services.ErrTaskNotFound)
	if err == nil {
		_, err = flip(c.Request.Context(), id)
	}
	if err != nil {
		h.fail(c, state, locale, err)
		return
	}
	c.Redirect(http.StatusSeeOther, state.URL(boardPath))
}

func (h *BoardHandler) DeleteTask(c *gin.Context) {
	ctx := c.Request.Context()
	state := board.FromValues(c.Request.URL.Query())
	locale := h.opts.locale(c)

	id, err := formID(c, services.OpDeleteTask, services.ErrTaskNotFound)
	if err != nil {
		h.fail(c, state, locale, err)
		return
	}

	title := ""
	if tasks, err := h.taskService.FetchTasks(ctx); err == nil {
		for _, task := range tasks {
			if task.ID == id {
				title = task.Title
				break
			}
		}
	}

	if err := h.taskService.DeleteTask(ctx, id); err != nil {
		h.fail(c, state, locale, err)
		return
	}
	h.redirect(c, state, board.Success(board.EventTaskDeleted, title, locale))
}

func (h *BoardHandler) CreateTag(c *gin.Context) {
	state := board.FromValues(c.Request.URL.Query())
	locale := h.opts.locale(c)

	req := tagRequest{Name: c.PostForm("name"), Color: c.PostForm("color")}
	colors, err := req.colors()
	if err != nil {
		h.fail(c, state, locale, &services.OpError{Op: services.OpCreateTag, Err: err})
		return
	}

	tag, err := h.tagService.CreateTag(c.Request.Context(), req.Name, colors.Color, colors.TextColor)
	if err != nil {
		h.fail(c, state, locale, err)
		return
	}
	h.redirect(c, state, board.Success(board.EventTagCreated, tag.Name, locale))
}

func (h *BoardHandler) UpdateTag(c *gin.Context) {
	ctx := c.Request.Context()
	state := board.FromValues(c.Request.URL.Query())
	locale := h.opts.locale(c)

	id, err := formID(c, services.OpUpdateTag, services.ErrTagNotFound)
	if err != nil {
		h.fail(c, state, locale, err)
		return
	}

	req := tagRequest{Name: c.PostForm("name"), Color: c.PostForm("color")}
	colors, err := req.colors()
	if err != nil {
		h.fail(c, state, locale, &services.OpError{Op: services.OpUpdateTag, Err: err})
		return
	}

	previous, found := h.findTag(ctx, id)
	tag, err := h.tagService.UpdateTag(ctx, id, req.Name, colors.Color, colors.TextColor)
	if err != nil {
		h.fail(c, state, locale, err)
		return
	}
	if found {
		state = state.AfterTagRenamed(previous.Name, tag.Name)
	}
	h.redirect(c, state, board.Success(board.EventTagUpdated, tag.Name, locale))
}

func (h *BoardHandler) DeleteTag(c *gin.Context) {
	ctx := c.Request.Context()
	state := board.FromValues(c.Request.URL.Query())
	locale := h.opts.locale(c)

	id, err := formID(c, services.OpDeleteTag, services.ErrTagNotFound)
	if err != nil {
		h.fail(c, state, locale, err)
		return
	}

	tag, found := h.findTag(ctx, id)
	if err := h.tagService.DeleteTag(ctx, id); err != nil {
		h.fail(c, state, locale, err)
		return
	}
	if found {
		state = state.AfterTagDeleted(tag.Name)
	}
	h.redirect(c, state, board.Success(board.EventTagDeleted, tag.Name, locale))
}

func (h *BoardHandler) findTag(ctx context.Context, id uuid.UUID) (models.Tag, bool) {
	tags, err := h.tagService.FetchTags(ctx)
	if err != nil {
		return models.Tag{}, false
	}
	for _, tag := range tags {
		if tag.ID == id {
			return tag, true
		}
	}
	return models.Tag{}, false
}
