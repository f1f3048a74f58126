package models

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DateLayout is the calendar-day format used for due dates.
const DateLayout = "2006-01-02"

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	Title       string     `json:"title" gorm:"not null"`
	Description *string    `json:"description"`
	DueDate     *string    `json:"due_date" gorm:"type:varchar(10);index"`
	Priority    Priority   `json:"priority" gorm:"type:varchar(10);not null;default:'medium'"`
	Completed   bool       `json:"completed" gorm:"not null;default:false"`
	Important   bool       `json:"important" gorm:"not null;default:false"`
	CreatedAt   time.Time  `json:"created_at" gorm:"index"`
	UserID      *uuid.UUID `json:"user_id" gorm:"type:uuid"`

	// Tags is derived from task_tags at read time.
	Tags []string `json:"tags" gorm:"-"`

	TaskTags []TaskTag `json:"-" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return err
		}
		t.ID = id
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	return nil
}

// HasTag reports whether name is among the task's tag names.
func (t Task) HasTag(name string) bool {
	for _, tag := range t.Tags {
		if tag == name {
			return true
		}
	}
	return false
}

// Scheduled reports whether the task carries any due date.
func (t Task) Scheduled() bool {
	return t.DueDate != nil && *t.DueDate != ""
}

func (t Task) DueOn(day string) bool {
	return t.DueDate != nil && *t.DueDate == day
}
