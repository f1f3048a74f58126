package services

import (
	"context"
	"log"
	"time"

	"taskboard/internal/cache"
	"taskboard/internal/models"

	"github.com/gofrs/uuid"
)

const (
	tasksCacheKey     = "board:tasks"
	tagsCacheKey      = "board:tags"
	boardCachePattern = "board:*"
)

// boardCache holds the list caches shared by the task and tag decorators.
// Any successful write revalidates both lists: tag edits change the tag names
// shown on tasks, and task writes may create tags.
type boardCache struct {
	cache cache.Cache
	ttl   time.Duration
}

func (b boardCache) Revalidate(ctx context.Context) {
	if err := b.cache.DeletePattern(ctx, boardCachePattern); err != nil {
		log.Printf("⚠️ board cache revalidation failed: %v", err)
	}
}

func (b boardCache) store(ctx context.Context, key string, value interface{}) {
	if err := b.cache.Set(ctx, key, value, b.ttl); err != nil {
		log.Printf("⚠️ failed to cache %s: %v", key, err)
	}
}

type CachedTaskService struct {
	taskService TaskService
	board       boardCache
}

func NewCachedTaskService(taskService TaskService, cacheInstance cache.Cache, ttl time.Duration) *CachedTaskService {
	return &CachedTaskService{
		taskService: taskService,
		board:       boardCache{cache: cacheInstance, ttl: ttl},
	}
}

func (s *CachedTaskService) FetchTasks(ctx context.Context) ([]models.Task, error) {
	var cachedTasks []models.Task
	if err := s.board.cache.Get(ctx, tasksCacheKey, &cachedTasks); err == nil {
		return cachedTasks, nil
	}

	tasks, err := s.taskService.FetchTasks(ctx)
	if err != nil {
		return tasks, err
	}

	s.board.store(ctx, tasksCacheKey, tasks)

	return tasks, nil
}

func (s *CachedTaskService) CreateTask(ctx context.Context, input TaskInput) (models.Task, error) {
	task, err := s.taskService.CreateTask(ctx, input)
	if err != nil {
		return task, err
	}

	s.board.Revalidate(ctx)
	return task, nil
}

func (s *CachedTaskService) UpdateTask(ctx context.Context, id uuid.UUID, update TaskUpdate) error {
	if err := s.taskService.UpdateTask(ctx, id, update); err != nil {
		return err
	}

	s.board.Revalidate(ctx)
	return nil
}

func (s *CachedTaskService) ToggleTaskCompletion(ctx context.Context, id uuid.UUID) (bool, error) {
	value, err := s.taskService.ToggleTaskCompletion(ctx, id)
	if err != nil {
		return value, err
	}

	s.board.Revalidate(ctx)
	return value, nil
}

func (s *CachedTaskService) ToggleTaskImportant(ctx context.Context, id uuid.UUID) (bool, error) {
	value, err := s.taskService.ToggleTaskImportant(ctx, id)
	if err != nil {
		return value, err
	}

	s.board.Revalidate(ctx)
	return value, nil
}

func (s *CachedTaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if err := s.taskService.DeleteTask(ctx, id); err != nil {
		return err
	}

	s.board.Revalidate(ctx)
	return nil
}

func (s *CachedTaskService) GetCacheStats() map[string]interface{} {
	return s.board.cache.Stats()
}
