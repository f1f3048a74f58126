package services

import (
	"fmt"
	"strings"
	"time"

	"taskboard/internal/models"
)

// TaskInput carries the fields of a new task.
type TaskInput struct {
	Title       string          `json:"title" yaml:"title"`
	Description *string         `json:"description" yaml:"description"`
	DueDate     *string         `json:"due_date" yaml:"due_date"`
	Priority    models.Priority `json:"priority" yaml:"priority"`
	Completed   bool            `json:"completed" yaml:"completed"`
	Important   bool            `json:"important" yaml:"important"`
	Tags        []string        `json:"tags" yaml:"tags"`
}

// TaskUpdate carries a partial edit. Nil fields are left alone; a nil Tags
// slice keeps the current associations while an empty one clears them.
// Completion is not editable here.
type TaskUpdate struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	DueDate     *string          `json:"due_date"`
	Priority    *models.Priority `json:"priority"`
	Important   *bool            `json:"important"`
	Tags        []string         `json:"tags"`
}

func (in TaskInput) toModel() (models.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Task{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	dueDate, err := normalizeDate(in.DueDate)
	if err != nil {
		return models.Task{}, err
	}

	priority := in.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return models.Task{}, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, priority)
	}

	return models.Task{
		Title:       title,
		Description: normalizeText(in.Description),
		DueDate:     dueDate,
		Priority:    priority,
		Completed:   in.Completed,
		Important:   in.Important,
	}, nil
}

func (u TaskUpdate) columns() (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	if u.Title != nil {
		title := strings.TrimSpace(*u.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		updates["title"] = title
	}
	if u.Description != nil {
		updates["description"] = normalizeText(u.Description)
	}
	if u.DueDate != nil {
		dueDate, err := normalizeDate(u.DueDate)
		if err != nil {
			return nil, err
		}
		updates["due_date"] = dueDate
	}
	if u.Priority != nil {
		if !u.Priority.Valid() {
			return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, *u.Priority)
		}
		updates["priority"] = *u.Priority
	}
	if u.Important != nil {
		updates["important"] = *u.Important
	}

	return updates, nil
}

// normalizeText maps blank text to nil.
func normalizeText(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func normalizeDate(s *string) (*string, error) {
	value := normalizeText(s)
	if value == nil {
		return nil, nil
	}
	if _, err := time.Parse(models.DateLayout, *value); err != nil {
		return nil, fmt.Errorf("%w: due date %q is not YYYY-MM-DD", ErrInvalidInput, *value)
	}
	return value, nil
}

// normalizeTagNames trims names, drops blanks and collapses duplicates while
// keeping first-seen order.
func normalizeTagNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
