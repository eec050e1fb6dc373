package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Task struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	Title       string     `gorm:"size:69;uniqueIndex;not null" json:"title"`
	Description string     `gorm:"size:400;not null" json:"description"`
	Completed   bool       `gorm:"not null" json:"completed"`
	Category    string     `gorm:"size:100;not null" json:"category"`
	UserID      *uuid.UUID `gorm:"type:char(36);index" json:"user_id"`
}

func (Task) TableName() string {
	return "tasks"
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type TaskCreate struct {
	Title       string     `json:"title" validate:"required,max=69"`
	Description string     `json:"description" validate:"max=400"`
	Completed   bool       `json:"completed"`
	Category    string     `json:"category" validate:"required,max=100"`
	UserID      *uuid.UUID `json:"user_id"`
}

type TaskUpdate struct {
	Title       *string    `json:"title" validate:"omitempty,max=69"`
	Description *string    `json:"description" validate:"omitempty,max=400"`
	Completed   *bool      `json:"completed"`
	Category    *string    `json:"category" validate:"omitempty,max=100"`
	UserID      *uuid.UUID `json:"user_id"`
}

func (u TaskUpdate) Columns() map[string]interface{} {
	updates := map[string]interface{}{}
	if u.Title != nil {
		updates["title"] = *u.Title
	}
	if u.Description != nil {
		updates["description"] = *u.Description
	}
	if u.Completed != nil {
		updates["completed"] = *u.Completed
	}
	if u.Category != nil {
		updates["category"] = *u.Category
	}
	if u.UserID != nil {
		updates["user_id"] = *u.UserID
	}
	return updates
}
