package board

import (
	"fmt"

	"taskboard/internal/filter"
	"taskboard/internal/models"
	"taskboard/internal/tagcolor"

	"golang.org/x/text/language"
)

var headings = map[language.Tag]map[filter.Mode]string{
	language.English: {
		filter.ModeAll:       "All tasks",
		filter.ModeImportant: "Important tasks",
		filter.ModeToday:     "Today's tasks",
		filter.ModeScheduled: "Scheduled tasks",
		filter.ModeTag:       "Tag: %s",
	},
	language.Japanese: {
		filter.ModeAll:       "すべてのタスク",
		filter.ModeImportant: "重要なタスク",
		filter.ModeToday:     "今日のタスク",
		filter.ModeScheduled: "予定されたタスク",
		filter.ModeTag:       "タグ: %s",
	},
}

// Heading is the title shown above the task list for the current mode.
func (s State) Heading(locale language.Tag) string {
	catalog := catalogFor(headings, locale)
	mode := filter.ParseMode(string(s.Filter))
	if mode == filter.ModeTag {
		return fmt.Sprintf(catalog[filter.ModeTag], s.SelectedTag)
	}
	return catalog[mode]
}

func catalogFor[V any](catalogs map[language.Tag]V, locale language.Tag) V {
	base, _ := locale.Base()
	if c, ok := catalogs[language.Make(base.String())]; ok {
		return c
	}
	return catalogs[language.English]
}

// TagColorMap indexes tag colors by name for painting task chips.
func TagColorMap(tags []models.Tag) map[string]tagcolor.Colors {
	colors := make(map[string]tagcolor.Colors, len(tags))
	for _, tag := range tags {
		colors[tag.Name] = tagcolor.Colors{Color: tag.Color, TextColor: tag.TextColor}
	}
	return colors
}

type View struct {
	State     State                      `json:"state"`
	Heading   string                     `json:"heading"`
	Today     string                     `json:"today"`
	Tasks     []models.Task              `json:"-"`
	Tags      []models.Tag               `json:"tags"`
	Visible   filter.Tabs                `json:"visible"`
	Counts    filter.TabCounts           `json:"counts"`
	TagColors map[string]tagcolor.Colors `json:"tag_colors"`
	Palette   []tagcolor.Swatch          `json:"palette"`
}

// NewView filters the full task list with the board state and splits the
// result into completion tabs.
func NewView(state State, tasks []models.Task, tags []models.Tag, today string, locale language.Tag) View {
	visible := filter.Partition(filter.Apply(tasks, state.Criteria(today)))
	return View{
		State:     state,
		Heading:   state.Heading(locale),
		Today:     today,
		Tasks:     tasks,
		Tags:      tags,
		Visible:   visible,
		Counts:    visible.Counts(),
		TagColors: TagColorMap(tags),
		Palette:   tagcolor.Palette(),
	}
}

// Chip returns the colors for a tag name shown on a task. Names with no
// matching tag row get empty tokens.
func (v View) Chip(name string) tagcolor.Colors {
	return v.TagColors[name]
}

// TagSelected reports whether name is the active tag filter.
func (v View) TagSelected(name string) bool {
	return v.State.Filter == filter.ModeTag && v.State.SelectedTag == name
}
