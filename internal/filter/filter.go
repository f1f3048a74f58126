package filter

import (
	"strings"
	"time"

	"taskboard/internal/models"
)

type Mode string

const (
	ModeAll       Mode = "all"
	ModeImportant Mode = "important"
	ModeToday     Mode = "today"
	ModeScheduled Mode = "scheduled"
	ModeTag       Mode = "tag"
)

var Modes = []Mode{ModeAll, ModeImportant, ModeToday, ModeScheduled, ModeTag}

// ParseMode maps s to a known mode, falling back to ModeAll.
func ParseMode(s string) Mode {
	for _, m := range Modes {
		if string(m) == s {
			return m
		}
	}
	return ModeAll
}

type Criteria struct {
	Query string
	Mode  Mode
	Tag   string
	// Today is the current calendar day in models.DateLayout.
	Today string
}

// Today formats now as a calendar day in loc.
func Today(now time.Time, loc *time.Location) string {
	if loc != nil {
		now = now.In(loc)
	}
	return now.Format(models.DateLayout)
}

// Apply returns the visible subset of tasks. Input order is kept.
func Apply(tasks []models.Task, c Criteria) []models.Task {
	query := strings.ToLower(c.Query)
	result := make([]models.Task, 0, len(tasks))

	for _, task := range tasks {
		if !matchesQuery(task, query) {
			continue
		}
		if !matchesMode(task, c) {
			continue
		}
		result = append(result, task)
	}

	return result
}

func matchesQuery(task models.Task, query string) bool {
	if strings.Contains(strings.ToLower(task.Title), query) {
		return true
	}
	return task.Description != nil && strings.Contains(strings.ToLower(*task.Description), query)
}

func matchesMode(task models.Task, c Criteria) bool {
	switch c.Mode {
	case ModeImportant:
		return task.Important
	case ModeToday:
		return task.DueOn(c.Today)
	case ModeScheduled:
		return task.Scheduled()
	case ModeTag:
		return task.HasTag(c.Tag)
	}
	return true
}

type Tabs struct {
	All       []models.Task `json:"all"`
	Pending   []models.Task `json:"pending"`
	Completed []models.Task `json:"completed"`
}

type TabCounts struct {
	All       int `json:"all"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

// Partition splits an already filtered list into completion tabs.
func Partition(tasks []models.Task) Tabs {
	tabs := Tabs{
		All:       tasks,
		Pending:   make([]models.Task, 0, len(tasks)),
		Completed: make([]models.Task, 0),
	}
	for _, task := range tasks {
		if task.Completed {
			tabs.Completed = append(tabs.Completed, task)
		} else {
			tabs.Pending = append(tabs.Pending, task)
		}
	}
	return tabs
}

func (t Tabs) Counts() TabCounts {
	return TabCounts{
		All:       len(t.All),
		Pending:   len(t.Pending),
		Completed: len(t.Completed),
	}
}
