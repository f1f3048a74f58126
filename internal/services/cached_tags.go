package services

import (
	"context"
	"time"

	"taskboard/internal/cache"
	"taskboard/internal/models"

	"github.com/gofrs/uuid"
)

type CachedTagService struct {
	tagService TagService
	board      boardCache
}

func NewCachedTagService(tagService TagService, cacheInstance cache.Cache, ttl time.Duration) *CachedTagService {
	return &CachedTagService{
		tagService: tagService,
		board:      boardCache{cache: cacheInstance, ttl: ttl},
	}
}

func (s *CachedTagService) FetchTags(ctx context.Context) ([]models.Tag, error) {
	var cachedTags []models.Tag
	if err := s.board.cache.Get(ctx, tagsCacheKey, &cachedTags); err == nil {
		return cachedTags, nil
	}

	tags, err := s.tagService.FetchTags(ctx)
	if err != nil {
		return tags, err
	}

	s.board.store(ctx, tagsCacheKey, tags)

	return tags, nil
}

func (s *CachedTagService) CreateTag(ctx context.Context, name, color, textColor string) (models.Tag, error) {
	tag, err := s.tagService.CreateTag(ctx, name, color, textColor)
	if err != nil {
		return tag, err
	}

	s.board.Revalidate(ctx)
	return tag, nil
}

func (s *CachedTagService) UpdateTag(ctx context.Context, id uuid.UUID, name, color, textColor string) (models.Tag, error) {
	tag, err := s.tagService.UpdateTag(ctx, id, name, color, textColor)
	if err != nil {
		return tag, err
	}

	s.board.Revalidate(ctx)
	return tag, nil
}

func (s *CachedTagService) DeleteTag(ctx context.Context, id uuid.UUID) error {
	if err := s.tagService.DeleteTag(ctx, id); err != nil {
		return err
	}

	s.board.Revalidate(ctx)
	return nil
}
