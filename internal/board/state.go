// Package board holds the presentation state of the task board: the search
// query, the active filter mode and the selected tag, with the transitions
// the UI applies to them.
package board

import (
	"net/url"
	"strings"

	"taskboard/internal/filter"
)

const (
	paramQuery  = "q"
	paramFilter = "filter"
	paramTag    = "tag"
)

type State struct {
	Query       string      `json:"query"`
	Filter      filter.Mode `json:"filter"`
	SelectedTag string      `json:"selected_tag,omitempty"`
}

func NewState() State {
	return State{Filter: filter.ModeAll}
}

// ChangeFilter switches mode. Returning to "all" drops the tag selection.
func (s State) ChangeFilter(mode filter.Mode) State {
	s.Filter = filter.ParseMode(string(mode))
	if s.Filter == filter.ModeAll {
		s.SelectedTag = ""
	}
	return s
}

func (s State) SelectTag(name string) State {
	s.Filter = filter.ModeTag
	s.SelectedTag = name
	return s
}

func (s State) Search(query string) State {
	s.Query = query
	return s
}

// AfterTagDeleted resets the board to "all" when the deleted tag was the
// active filter.
func (s State) AfterTagDeleted(name string) State {
	if s.Filter == filter.ModeTag && s.SelectedTag == name {
		return s.ChangeFilter(filter.ModeAll)
	}
	return s
}

// AfterTagRenamed keeps a tag filter pointed at the renamed tag.
func (s State) AfterTagRenamed(oldName, newName string) State {
	if s.Filter == filter.ModeTag && s.SelectedTag == oldName {
		s.SelectedTag = newName
	}
	return s
}

func (s State) Criteria(today string) filter.Criteria {
	return filter.Criteria{
		Query: s.Query,
		Mode:  s.Filter,
		Tag:   s.SelectedTag,
		Today: today,
	}
}

// Values encodes the state for a query string. Defaults are omitted.
func (s State) Values() url.Values {
	v := url.Values{}
	if s.Query != "" {
		v.Set(paramQuery, s.Query)
	}
	if s.Filter != "" && s.Filter != filter.ModeAll {
		v.Set(paramFilter, string(s.Filter))
	}
	if s.SelectedTag != "" {
		v.Set(paramTag, s.SelectedTag)
	}
	return v
}

// URL returns path with the state appended as a query string.
func (s State) URL(path string) string {
	encoded := s.Values().Encode()
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}

func FromValues(v url.Values) State {
	s := State{
		Query:  strings.TrimSpace(v.Get(paramQuery)),
		Filter: filter.ParseMode(v.Get(paramFilter)),
	}
	if tag := v.Get(paramTag); tag != "" {
		s.SelectedTag = tag
		if v.Get(paramFilter) == "" {
			s.Filter = filter.ModeTag
		}
	}
	return s
}
