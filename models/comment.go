package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID        uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at"`
	Content   string     `gorm:"size:800;not null" json:"content"`
	TaskID    uuid.UUID  `gorm:"type:char(36);not null;uniqueIndex:idx_comments_task_user" json:"task_id"`
	UserID    uuid.UUID  `gorm:"type:char(36);not null;uniqueIndex:idx_comments_task_user" json:"user_id"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CommentCreate struct {
	Content string    `json:"content" validate:"required,min=1,max=800"`
	TaskID  uuid.UUID `json:"task_id" validate:"required"`
	UserID  uuid.UUID `json:"user_id" validate:"required"`
}

type CommentUpdate struct {
	Content *string `json:"content" validate:"omitempty,min=1,max=800"`
}

func (u CommentUpdate) Columns() map[string]interface{} {
	updates := map[string]interface{}{}
	if u.Content != nil {
		updates["content"] = *u.Content
	}
	return updates
}
