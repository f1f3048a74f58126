package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskboard/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type TagService interface {
	FetchTags(ctx context.Context) ([]models.Tag, error)
	CreateTag(ctx context.Context, name, color, textColor string) (models.Tag, error)
	UpdateTag(ctx context.Context, id uuid.UUID, name, color, textColor string) (models.Tag, error)
	DeleteTag(ctx context.Context, id uuid.UUID) error
}

type TagServiceImpl struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagServiceImpl {
	return &TagServiceImpl{db: db}
}

func (s *TagServiceImpl) FetchTags(ctx context.Context) ([]models.Tag, error) {
	tags := make([]models.Tag, 0)
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return []models.Tag{}, opFailed(OpFetchTags, err)
	}
	return tags, nil
}

func (s *TagServiceImpl) CreateTag(ctx context.Context, name, color, textColor string) (models.Tag, error) {
	tag := models.Tag{
		Name:      strings.TrimSpace(name),
		Color:     color,
		TextColor: textColor,
	}
	if tag.Name == "" {
		return models.Tag{}, opFailed(OpCreateTag, fmt.Errorf("%w: tag name is required", ErrInvalidInput))
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureNameFree(tx, tag.Name, uuid.Nil); err != nil {
			return err
		}
		return tx.Create(&tag).Error
	})
	if err != nil {
		return models.Tag{}, opFailed(OpCreateTag, err)
	}

	return tag, nil
}

func (s *TagServiceImpl) UpdateTag(ctx context.Context, id uuid.UUID, name, color, textColor string) (models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Tag{}, opFailed(OpUpdateTag, fmt.Errorf("%w: tag name is required", ErrInvalidInput))
	}

	var tag models.Tag
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&tag).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTagNotFound
			}
			return err
		}
		if err := ensureNameFree(tx, name, id); err != nil {
			return err
		}

		tag.Name = name
		tag.Color = color
		tag.TextColor = textColor
		return tx.Model(&models.Tag{}).Where("id = ?", id).Updates(map[string]interface{}{
			"name":       name,
			"color":      color,
			"text_color": textColor,
		}).Error
	})
	if err != nil {
		return models.Tag{}, opFailed(OpUpdateTag, err)
	}

	return tag, nil
}

// DeleteTag removes the tag; its task_tags rows go with it through the
// foreign key cascade.
func (s *TagServiceImpl) DeleteTag(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Tag{})
	if result.Error != nil {
		return opFailed(OpDeleteTag, result.Error)
	}
	if result.RowsAffected == 0 {
		return opFailed(OpDeleteTag, ErrTagNotFound)
	}
	return nil
}

func ensureNameFree(tx *gorm.DB, name string, except uuid.UUID) error {
	query := tx.Model(&models.Tag{}).Where("name = ?", name)
	if except != uuid.Nil {
		query = query.Where("id <> ?", except)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateTag, name)
	}
	return nil
}
