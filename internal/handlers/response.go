package handlers

import (
	"errors"
	"net/http"
	"time"

	"taskboard/internal/filter"
	"taskboard/internal/services"
	"taskboard/internal/tagcolor"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"golang.org/x/text/language"
)

// Options carries the request-independent settings shared by the handlers.
type Options struct {
	// Locale is used when the request states no usable preference.
	Locale   language.Tag
	Location *time.Location
	Now      func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Locale == language.Und {
		o.Locale = language.English
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

func (o Options) today() string {
	return filter.Today(o.Now(), o.Location)
}

// locale picks the response language from ?lang, then Accept-Language,
// then the configured default.
func (o Options) locale(c *gin.Context) language.Tag {
	return services.MatchLocale(c.Query("lang"), c.GetHeader("Accept-Language"), o.Locale.String())
}

func respondOK(c *gin.Context, status int, key string, payload interface{}) {
	body := gin.H{"success": true}
	if key != "" {
		body[key] = payload
	}
	c.JSON(status, body)
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

// respondServiceError answers with the operation's localized message and a
// status derived from the underlying cause.
func (o Options) respondServiceError(c *gin.Context, err error) {
	respondError(c, statusFor(err), services.ErrorMessage(err, o.locale(c)))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrTaskNotFound), errors.Is(err, services.ErrTagNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDuplicateTag):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrUnknownTag),
		errors.Is(err, tagcolor.ErrUnknownColor):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
