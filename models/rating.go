package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Rating struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Rating    int       `gorm:"not null" json:"rating"`
	TaskID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_ratings_task_user" json:"task_id"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_ratings_task_user" json:"user_id"`
}

func (Rating) TableName() string {
	return "ratings"
}

func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type RatingCreate struct {
	Rating int       `json:"rating" validate:"min=0,max=10"`
	TaskID uuid.UUID `json:"task_id" validate:"required"`
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

type RatingUpdate struct {
	Rating *int `json:"rating" validate:"omitempty,min=0,max=10"`
}

func (u RatingUpdate) Columns() map[string]interface{} {
	updates := map[string]interface{}{}
	if u.Rating != nil {
		updates["rating"] = *u.Rating
	}
	return updates
}
