package models

import (
	"time"

	"github.com/google/uuid"
)

type UserItemLink struct {
	UserID    uuid.UUID `gorm:"type:char(36);primaryKey" json:"user_id"`
	ItemID    uuid.UUID `gorm:"type:char(36);primaryKey" json:"item_id"`
	Equipped  bool      `gorm:"not null" json:"equipped"`
	CreatedAt time.Time `json:"created_at"`
}

func (UserItemLink) TableName() string {
	return "user_item_links"
}

type UserItemLinkCreate struct {
	UserIDs  []uuid.UUID `json:"user_ids" validate:"required,min=1"`
	Equipped bool        `json:"equipped"`
}

type QuestStatus string

const (
	QuestStatusActive    QuestStatus = "active"
	QuestStatusCompleted QuestStatus = "completed"
	QuestStatusExpired   QuestStatus = "expired"
)

type UserQuestLink struct {
	UserID     uuid.UUID   `gorm:"type:char(36);primaryKey" json:"user_id"`
	QuestID    uuid.UUID   `gorm:"type:char(36);primaryKey" json:"quest_id"`
	QuestStart *time.Time  `json:"quest_start"`
	QuestEnd   *time.Time  `json:"quest_end"`
	Status     QuestStatus `gorm:"size:20;not null" json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
}

func (UserQuestLink) TableName() string {
	return "user_quest_links"
}

type UserQuestLinkCreate struct {
	UserIDs []uuid.UUID `json:"user_ids" validate:"required,min=1"`
	Status  QuestStatus `json:"status" validate:"omitempty,oneof=active completed expired"`
}
