package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestType string

const (
	QuestDaily   QuestType = "daily"
	QuestWeekly  QuestType = "weekly"
	QuestMonthly QuestType = "monthly"
	QuestYearly  QuestType = "yearly"
	QuestLover   QuestType = "lover"
)

// Duration returns the quest length in days, or 0 for an unknown type.
func (t QuestType) Duration() int {
	switch t {
	case QuestDaily:
		return 1
	case QuestWeekly:
		return 7
	case QuestMonthly:
		return 30
	case QuestYearly:
		return 365
	case QuestLover:
		return 10
	default:
		return 0
	}
}

func (t QuestType) EndDate(start time.Time) time.Time {
	return start.AddDate(0, 0, t.Duration())
}

type Quest struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at"`
	Name        string     `gorm:"size:144;uniqueIndex;not null" json:"name"`
	Description string     `gorm:"size:369;not null" json:"description"`
	XPReward    int        `gorm:"column:xp_reward;not null" json:"xp_reward"`
	Type        QuestType  `gorm:"size:20;not null" json:"type"`
}

func (Quest) TableName() string {
	return "quests"
}

func (q *Quest) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

type QuestCreate struct {
	Name        string    `json:"name" validate:"required,max=144"`
	Description string    `json:"description" validate:"max=369"`
	XPReward    int       `json:"xp_reward" validate:"min=0"`
	Type        QuestType `json:"type" validate:"required,oneof=daily weekly monthly yearly lover"`
}

type QuestUpdate struct {
	Name        *string    `json:"name" validate:"omitempty,max=144"`
	Description *string    `json:"description" validate:"omitempty,max=369"`
	XPReward    *int       `json:"xp_reward" validate:"omitempty,min=0"`
	Type        *QuestType `json:"type" validate:"omitempty,oneof=daily weekly monthly yearly lover"`
}

func (u QuestUpdate) Columns() map[string]interface{} {
	updates := map[string]interface{}{}
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Description != nil {
		updates["description"] = *u.Description
	}
	if u.XPReward != nil {
		updates["xp_reward"] = *u.XPReward
	}
	if u.Type != nil {
		updates["type"] = *u.Type
	}
	return updates
}
