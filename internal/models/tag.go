package models

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type Tag struct {
	ID        uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	Name      string     `json:"name" gorm:"uniqueIndex;not null"`
	Color     string     `json:"color" gorm:"not null"`
	TextColor string     `json:"text_color" gorm:"not null"`
	CreatedAt time.Time  `json:"created_at"`
	UserID    *uuid.UUID `json:"user_id" gorm:"type:uuid"`

	TaskTags []TaskTag `json:"-" gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return err
		}
		t.ID = id
	}
	return nil
}

// TaskTag is the join row between a task and a tag.
type TaskTag struct {
	TaskID uuid.UUID `json:"task_id" gorm:"type:uuid;primaryKey"`
	TagID  uuid.UUID `json:"tag_id" gorm:"type:uuid;primaryKey;index"`
}

func (TaskTag) TableName() string {
	return "task_tags"
}

// TaskTagName is a task_tags row projected with the referenced tag's name.
type TaskTagName struct {
	TaskID  uuid.UUID `json:"task_id"`
	TagID   uuid.UUID `json:"tag_id"`
	TagName string    `json:"tag_name"`
}
