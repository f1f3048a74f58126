package handlers

import (
	"net/http"

	"taskboard/internal/services"
	"taskboard/internal/tagcolor"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	tagService services.TagService
	opts       Options
}

func NewTagHandler(tagService services.TagService, opts Options) *TagHandler {
	return &TagHandler{tagService: tagService, opts: opts.withDefaults()}
}

// tagRequest names a palette swatch; the stored class tokens are derived
// from it.
type tagRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

func (r tagRequest) colors() (tagcolor.Colors, error) {
	if r.Color == "" {
		return tagcolor.Derive(tagcolor.DefaultID)
	}
	return tagcolor.Derive(r.Color)
}

func (h *TagHandler) GetTags(c *gin.Context) {
	tags, err := h.tagService.FetchTags(c.Request.Context())
	if err != nil {
		h.opts.respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "tags", tags)
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	colors, err := req.colors()
	if err != nil {
		h.opts.respondServiceError(c, &services.OpError{Op: services.OpCreateTag, Err: err})
		return
	}

	tag, err := h.tagService.CreateTag(c.Request.Context(), req.Name, colors.Color, colors.TextColor)
	if err != nil {
		h.opts.respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "tag", tag)
}

func (h *TagHandler) UpdateTag(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	colors, err := req.colors()
	if err != nil {
		h.opts.respondServiceError(c, &services.OpError{Op: services.OpUpdateTag, Err: err})
		return
	}

	tag, err := h.tagService.UpdateTag(c.Request.Context(), id, req.Name, colors.Color, colors.TextColor)
	if err != nil {
		h.opts.respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "tag", tag)
}

func (h *TagHandler) DeleteTag(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.tagService.DeleteTag(c.Request.Context(), id); err != nil {
		h.opts.respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", nil)
}

func (h *TagHandler) GetPalette(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"palette": tagcolor.Palette(),
		"default": tagcolor.DefaultID,
	})
}
