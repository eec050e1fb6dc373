package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReactionType string

const (
	ReactionLike          ReactionType = "like"
	ReactionDislike       ReactionType = "dislike"
	ReactionSad           ReactionType = "sad"
	ReactionHappy         ReactionType = "happy"
	ReactionCrazy         ReactionType = "crazy"
	ReactionLaughing      ReactionType = "laughing"
	ReactionInLove        ReactionType = "inlove"
	ReactionDisappointing ReactionType = "disappointing"
)

var reactionDescriptions = map[ReactionType]string{
	ReactionLike:          "The user likes the task",
	ReactionDislike:       "The user dislikes the task",
	ReactionSad:           "The user is sad about the task",
	ReactionHappy:         "The user is happy about the task",
	ReactionCrazy:         "The user is crazy about the task",
	ReactionLaughing:      "The user is laughing about the task",
	ReactionInLove:        "The user is in love with the task",
	ReactionDisappointing: "The user is disappointed about the task",
}

func (r ReactionType) Description() string {
	return reactionDescriptions[r]
}

type Reaction struct {
	ID        uuid.UUID    `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt *time.Time   `gorm:"autoUpdateTime:false" json:"updated_at"`
	DeletedAt *time.Time   `json:"deleted_at"`
	Reaction  ReactionType `gorm:"size:20;not null" json:"reaction"`
	TaskID    uuid.UUID    `gorm:"type:char(36);not null;uniqueIndex:idx_reactions_task_user" json:"task_id"`
	UserID    uuid.UUID    `gorm:"type:char(36);not null;uniqueIndex:idx_reactions_task_user" json:"user_id"`
}

func (Reaction) TableName() string {
	return "reactions"
}

func (r *Reaction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type ReactionCreate struct {
	Reaction ReactionType `json:"reaction" validate:"required,oneof=like dislike sad happy crazy laughing inlove disappointing"`
	TaskID   uuid.UUID    `json:"task_id" validate:"required"`
	UserID   uuid.UUID    `json:"user_id" validate:"required"`
}

type ReactionUpdate struct {
	Reaction *ReactionType `json:"reaction" validate:"omitempty,oneof=like dislike sad happy crazy laughing inlove disappointing"`
}

func (u ReactionUpdate) Columns() map[string]interface{} {
	updates := map[string]interface{}{}
	if u.Reaction != nil {
		updates["reaction"] = *u.Reaction
	}
	return updates
}
