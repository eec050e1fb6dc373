package controllers

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"leveluplife/models"
)

type ReactionController struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewReactionController(db *gorm.DB, log *zap.Logger) *ReactionController {
	return &ReactionController{db: db, log: log}
}

func (c *ReactionController) CreateReaction(in models.ReactionCreate) (*models.Reaction, error) {
	if err := requireTaskAndUser(c.db, in.TaskID, in.UserID); err != nil {
		return nil, err
	}
	taken, err := exists(c.db, &models.Reaction{}, "task_id = ? AND user_id = ?", in.TaskID, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("check reaction: %w", err)
	}
	if taken {
		return nil, models.ReactionAlreadyExistsError(in.TaskID)
	}

	reaction := models.Reaction{Reaction: in.Reaction, TaskID: in.TaskID, UserID: in.UserID}
	if err := c.db.Create(&reaction).Error; err != nil {
		if isDuplicate(err) {
			return nil, models.ReactionAlreadyExistsError(in.TaskID)
		}
		return nil, fmt.Errorf("create reaction: %w", err)
	}
	c.log.Info("new reaction created", zap.String("task_id", in.TaskID.String()), zap.String("reaction", string(reaction.Reaction)))
	return &reaction, nil
}

func (c *ReactionController) GetReactions(offset, limit int) ([]models.Reaction, error) {
	reactions := []models.Reaction{}
	if err := c.db.Order("created_at").Offset(offset).Limit(limit).Find(&reactions).Error; err != nil {
		return nil, fmt.Errorf("list reactions: %w", err)
	}
	return reactions, nil
}

func (c *ReactionController) GetReactionByID(id uuid.UUID) (*models.Reaction, error) {
	var reaction models.Reaction
	if err := c.db.Take(&reaction, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, models.ReactionNotFoundError(id)
		}
		return nil, fmt.Errorf("get reaction: %w", err)
	}
	return &reaction, nil
}

func (c *ReactionController) UpdateReaction(id uuid.UUID, in models.ReactionUpdate) (*models.Reaction, error) {
	reaction, err := c.GetReactionByID(id)
	if err != nil {
		return nil, err
	}
	cols := in.Columns()
	cols["updated_at"] = time.Now()
	if err := c.db.Model(reaction).Updates(cols).Error; err != nil {
		return nil, fmt.Errorf("update reaction: %w", err)
	}
	return c.GetReactionByID(id)
}

func (c *ReactionController) DeleteReaction(id uuid.UUID) error {
	reaction, err := c.GetReactionByID(id)
	if err != nil {
		return err
	}
	if err := c.db.Delete(reaction).Error; err != nil {
		return fmt.Errorf("delete reaction: %w", err)
	}
	c.log.Info("deleted reaction", zap.String("reaction_id", id.String()))
	return nil
}
