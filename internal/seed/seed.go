// Package seed loads an initial set of tags and tasks from a YAML file
// through the regular services.
package seed

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"taskboard/internal/services"
	"taskboard/internal/tagcolor"

	"gopkg.in/yaml.v3"
)

// Tag is a tag entry. Color is a palette id; blank means the default swatch.
type Tag struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color,omitempty"`
}

type File struct {
	Tags  []Tag                `yaml:"tags"`
	Tasks []services.TaskInput `yaml:"tasks"`
}

type Result struct {
	TagsCreated  int
	TagsSkipped  int
	TasksCreated int
	TasksSkipped int
}

func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("YAML parse error: %w", err)
	}
	return f, nil
}

func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Apply creates the file's tags, then its tasks. Tags whose name and tasks
// whose title already exist are skipped, so applying the same file twice is
// harmless.
func Apply(ctx context.Context, f File, taskService services.TaskService, tagService services.TagService) (Result, error) {
	var result Result

	existingTags, err := tagService.FetchTags(ctx)
	if err != nil {
		return result, err
	}
	tagNames := make(map[string]bool, len(existingTags))
	for _, t := range existingTags {
		tagNames[t.Name] = true
	}

	for _, t := range f.Tags {
		name := strings.TrimSpace(t.Name)
		if tagNames[name] {
			result.TagsSkipped++
			continue
		}

		colorID := t.Color
		if colorID == "" {
			colorID = tagcolor.DefaultID
		}
		colors, err := tagcolor.Derive(colorID)
		if err != nil {
			return result, fmt.Errorf("seed tag %q: %w", name, err)
		}

		if _, err := tagService.CreateTag(ctx, name, colors.Color, colors.TextColor); err != nil {
			return result, fmt.Errorf("seed tag %q: %w", name, err)
		}
		tagNames[name] = true
		result.TagsCreated++
	}

	existingTasks, err := taskService.FetchTasks(ctx)
	if err != nil {
		return result, err
	}
	titles := make(map[string]bool, len(existingTasks))
	for _, t := range existingTasks {
		titles[t.Title] = true
	}

	for _, input := range f.Tasks {
		title := strings.TrimSpace(input.Title)
		if titles[title] {
			result.TasksSkipped++
			continue
		}
		if _, err := taskService.CreateTask(ctx, input); err != nil {
			return result, fmt.Errorf("seed task %q: %w", title, err)
		}
		titles[title] = true
		result.TasksCreated++
	}

	log.Printf("🌱 Seed applied: %d tags (%d skipped), %d tasks (%d skipped)",
		result.TagsCreated, result.TagsSkipped, result.TasksCreated, result.TasksSkipped)
	return result, nil
}
