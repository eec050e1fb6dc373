package controllers

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"leveluplife/models"
)

type RatingController struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewRatingController(db *gorm.DB, log *zap.Logger) *RatingController {
	return &RatingController{db: db, log: log}
}

// CreateRating allows one rating per (task, user); the composite unique
// index catches concurrent duplicates the pre-check misses.
func (c *RatingController) CreateRating(in models.RatingCreate) (*models.Rating, error) {
	if err := requireTaskAndUser(c.db, in.TaskID, in.UserID); err != nil {
		return nil, err
	}
	taken, err := exists(c.db, &models.Rating{}, "task_id = ? AND user_id = ?", in.TaskID, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("check rating: %w", err)
	}
	if taken {
		return nil, models.RatingAlreadyExistsError(in.TaskID)
	}

	rating := models.Rating{Rating: in.Rating, TaskID: in.TaskID, UserID: in.UserID}
	if err := c.db.Create(&rating).Error; err != nil {
		if isDuplicate(err) {
			return nil, models.RatingAlreadyExistsError(in.TaskID)
		}
		return nil, fmt.Errorf("create rating: %w", err)
	}
	c.log.Info("new rating created", zap.String("task_id", in.TaskID.String()), zap.Int("rating", rating.Rating))
	return &rating, nil
}

func (c *RatingController) GetRatings(offset, limit int) ([]models.Rating, error) {
	ratings := []models.Rating{}
	if err := c.db.Order("created_at").Offset(offset).Limit(limit).Find(&ratings).Error; err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return ratings, nil
}

func (c *RatingController) GetRatingByID(id uuid.UUID) (*models.Rating, error) {
	var rating models.Rating
	if err := c.db.Take(&rating, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, models.RatingNotFoundError(id)
		}
		return nil, fmt.Errorf("get rating: %w", err)
	}
	return &rating, nil
}

func (c *RatingController) UpdateRating(id uuid.UUID, in models.RatingUpdate) (*models.Rating, error) {
	rating, err := c.GetRatingByID(id)
	if err != nil {
		return nil, err
	}
	cols := in.Columns()
	if len(cols) == 0 {
		return rating, nil
	}
	if err := c.db.Model(rating).Updates(cols).Error; err != nil {
		return nil, fmt.Errorf("update rating: %w", err)
	}
	return c.GetRatingByID(id)
}

func (c *RatingController) DeleteRating(id uuid.UUID) error {
	rating, err := c.GetRatingByID(id)
	if err != nil {
		return err
	}
	if err := c.db.Delete(rating).Error; err != nil {
		return fmt.Errorf("delete rating: %w", err)
	}
	c.log.Info("deleted rating", zap.String("rating_id", id.String()))
	return nil
}

func requireTaskAndUser(db *gorm.DB, taskID, userID uuid.UUID) error {
	found, err := exists(db, &models.Task{}, "id = ?", taskID)
	if err != nil {
		return fmt.Errorf("check task: %w", err)
	}
	if !found {
		return models.TaskNotFoundError(taskID)
	}
	found, err = exists(db, &models.User{}, "id = ?", userID)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !found {
		return models.UserNotFoundError(userID)
	}
	return nil
}
