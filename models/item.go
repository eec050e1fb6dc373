package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Item struct {
	ID           uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at"`
	Name         string     `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description  string     `gorm:"size:300;not null" json:"description"`
	PriceSell    *int       `json:"price_sell"`
	Strength     *int       `json:"strength"`
	Intelligence *int       `json:"intelligence"`
	Agility      *int       `json:"agility"`
	Wise         *int       `json:"wise"`
	Psycho       *int       `json:"psycho"`
}

func (Item) TableName() string {
	return "items"
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type ItemCreate struct {
	Name         string `json:"name" validate:"required,max=100"`
	Description  string `json:"description" validate:"max=300"`
	PriceSell    *int   `json:"price_sell" validate:"omitempty,min=0"`
	Strength     *int   `json:"strength"`
	Intelligence *int   `json:"intelligence"`
	Agility      *int   `json:"agility"`
	Wise         *int   `json:"wise"`
	Psycho       *int   `json:"psycho"`
}

type ItemUpdate struct {
	Name         *string `json:"name" validate:"omitempty,max=100"`
	Description  *string `json:"description" validate:"omitempty,max=300"`
	PriceSell    *int    `json:"price_sell" validate:"omitempty,min=0"`
	Strength     *int    `json:"strength"`
	Intelligence *int    `json:"intelligence"`
	Agility      *int    `json:"agility"`
	Wise         *int    `json:"wise"`
	Psycho       *int    `json:"psycho"`
}

func (u ItemUpdate) Columns() map[string]interface{} {
	updates := map[string]interface{}{}
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Description != nil {
		updates["description"] = *u.Description
	}
	if u.PriceSell != nil {
		updates["price_sell"] = *u.PriceSell
	}
	if u.Strength != nil {
		updates["strength"] = *u.Strength
	}
	if u.Intelligence != nil {
		updates["intelligence"] = *u.Intelligence
	}
	if u.Agility != nil {
		updates["agility"] = *u.Agility
	}
	if u.Wise != nil {
		updates["wise"] = *u.Wise
	}
	if u.Psycho != nil {
		updates["psycho"] = *u.Psycho
	}
	return updates
}
