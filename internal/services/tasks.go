package services

import (
	"context"
	"fmt"
	"sort"

	"taskboard/internal/models"
	"taskboard/internal/tagcolor"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// TagPolicy decides what happens when a task names a tag that does not exist.
type TagPolicy string

const (
	TagPolicyCreateMissing TagPolicy = "create-missing"
	TagPolicyRejectUnknown TagPolicy = "reject-unknown"
)

type TaskService interface {
	FetchTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, input TaskInput) (models.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, update TaskUpdate) error
	ToggleTaskCompletion(ctx context.Context, id uuid.UUID) (bool, error)
	ToggleTaskImportant(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
}

type TaskOptions struct {
	TagPolicy TagPolicy
	// DefaultTagColor is the palette id used for tags created on the fly.
	DefaultTagColor string
}

type TaskServiceImpl struct {
	db          *gorm.DB
	policy      TagPolicy
	newTagColor tagcolor.Colors
}

func NewTaskService(db *gorm.DB, opts TaskOptions) *TaskServiceImpl {
	policy := opts.TagPolicy
	if policy != TagPolicyRejectUnknown {
		policy = TagPolicyCreateMissing
	}

	colors, err := tagcolor.Derive(opts.DefaultTagColor)
	if err != nil {
		colors, _ = tagcolor.Derive(tagcolor.DefaultID)
	}

	return &TaskServiceImpl{
		db:          db,
		policy:      policy,
		newTagColor: colors,
	}
}

func (s *TaskServiceImpl) FetchTasks(ctx context.Context) ([]models.Task, error) {
	tasks, err := loadTasks(s.db.WithContext(ctx))
	if err != nil {
		return []models.Task{}, opFailed(OpFetchTasks, err)
	}
	return tasks, nil
}

func loadTasks(db *gorm.DB) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	if err := db.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}

	var rows []models.TaskTagName
	err := db.Table("task_tags").
		Select("task_tags.task_id, task_tags.tag_id, tags.name AS tag_name").
		Joins("JOIN tags ON tags.id = task_tags.tag_id").
		Order("tags.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID][]string, len(tasks))
	for _, row := range rows {
		names[row.TaskID] = append(names[row.TaskID], row.TagName)
	}
	for i := range tasks {
		tasks[i].Tags = names[tasks[i].ID]
		if tasks[i].Tags == nil {
			tasks[i].Tags = []string{}
		}
	}

	return tasks, nil
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, input TaskInput) (models.Task, error) {
	task, err := input.toModel()
	if err != nil {
		return models.Task{}, opFailed(OpCreateTask, err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		names, err := s.linkTags(tx, task.ID, input.Tags)
		if err != nil {
			return err
		}
		task.Tags = names
		return nil
	})
	if err != nil {
		return models.Task{}, opFailed(OpCreateTask, err)
	}

	return task, nil
}

func (s *TaskServiceImpl) UpdateTask(ctx context.Context, id uuid.UUID, update TaskUpdate) error {
	columns, err := update.columns()
	if err != nil {
		return opFailed(OpUpdateTask, err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Task{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrTaskNotFound
		}

		if len(columns) > 0 {
			if err := tx.Model(&models.Task{}).Where("id = ?", id).Updates(columns).Error; err != nil {
				return err
			}
		}

		if update.Tags == nil {
			return nil
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskTag{}).Error; err != nil {
			return err
		}
		_, err := s.linkTags(tx, id, update.Tags)
		return err
	})
	if err != nil {
		return opFailed(OpUpdateTask, err)
	}

	return nil
}

func (s *TaskServiceImpl) ToggleTaskCompletion(ctx context.Context, id uuid.UUID) (bool, error) {
	value, err := s.toggle(ctx, id, "completed")
	if err != nil {
		return false, opFailed(OpToggleTaskCompletion, err)
	}
	return value, nil
}

func (s *TaskServiceImpl) ToggleTaskImportant(ctx context.Context, id uuid.UUID) (bool, error) {
	value, err := s.toggle(ctx, id, "important")
	if err != nil {
		return false, opFailed(OpToggleTaskImportant, err)
	}
	return value, nil
}

// toggle flips a boolean column in one UPDATE and reads the result back in
// the same transaction, so concurrent toggles never lose an update.
func (s *TaskServiceImpl) toggle(ctx context.Context, id uuid.UUID, column string) (bool, error) {
	var value bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Task{}).
			Where("id = ?", id).
			Update(column, gorm.Expr("NOT "+column))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTaskNotFound
		}
		return tx.Model(&models.Task{}).Where("id = ?", id).Select(column).Scan(&value).Error
	})
	return value, err
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Task{})
	if result.Error != nil {
		return opFailed(OpDeleteTask, result.Error)
	}
	if result.RowsAffected == 0 {
		return opFailed(OpDeleteTask, ErrTaskNotFound)
	}
	return nil
}

// linkTags resolves names to tags under the service's tag policy and inserts
// one association per distinct name. It returns the linked names sorted the
// way FetchTasks reports them.
func (s *TaskServiceImpl) linkTags(tx *gorm.DB, taskID uuid.UUID, names []string) ([]string, error) {
	names = normalizeTagNames(names)
	if len(names) == 0 {
		return []string{}, nil
	}

	var tags []models.Tag
	if err := tx.Where("name IN ?", names).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(tags))
	for _, tag := range tags {
		known[tag.Name] = true
	}

	for _, name := range names {
		if known[name] {
			continue
		}
		if s.policy == TagPolicyRejectUnknown {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTag, name)
		}
		tag := models.Tag{Name: name, Color: s.newTagColor.Color, TextColor: s.newTagColor.TextColor}
		if err := tx.Create(&tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	links := make([]models.TaskTag, 0, len(tags))
	for _, tag := range tags {
		links = append(links, models.TaskTag{TaskID: taskID, TagID: tag.ID})
	}
	if err := tx.Create(&links).Error; err != nil {
		return nil, err
	}

	return sortedNames(tags), nil
}

func sortedNames(tags []models.Tag) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.Name)
	}
	sort.Strings(out)
	return out
}
