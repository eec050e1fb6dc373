package database

import (
	"fmt"

	"gorm.io/gorm"

	"leveluplife/models"
)

// Tables lists every persisted model in migration order.
func Tables() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Task{},
		&models.Item{},
		&models.Rating{},
		&models.Comment{},
		&models.Reaction{},
		&models.Quest{},
		&models.UserItemLink{},
		&models.UserQuestLink{},
		&models.RevokedToken{},
	}
}

// Migrate runs AutoMigrate for every table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Tables()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
