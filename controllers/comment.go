package controllers

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"leveluplife/models"
)

type CommentController struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewCommentController(db *gorm.DB, log *zap.Logger) *CommentController {
	return &CommentController{db: db, log: log}
}

func (c *CommentController) CreateComment(in models.CommentCreate) (*models.Comment, error) {
	if err := requireTaskAndUser(c.db, in.TaskID, in.UserID); err != nil {
		return nil, err
	}
	taken, err := exists(c.db, &models.Comment{}, "task_id = ? AND user_id = ?", in.TaskID, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("check comment: %w", err)
	}
	if taken {
		return nil, models.CommentAlreadyExistsError(in.TaskID)
	}

	comment := models.Comment{Content: in.Content, TaskID: in.TaskID, UserID: in.UserID}
	if err := c.db.Create(&comment).Error; err != nil {
		if isDuplicate(err) {
			return nil, models.CommentAlreadyExistsError(in.TaskID)
		}
		return nil, fmt.Errorf("create comment: %w", err)
	}
	c.log.Info("new comment created", zap.String("task_id", in.TaskID.String()))
	return &comment, nil
}

func (c *CommentController) GetComments(offset, limit int) ([]models.Comment, error) {
	comments := []models.Comment{}
	if err := c.db.Order("created_at").Offset(offset).Limit(limit).Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (c *CommentController) GetCommentByID(id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := c.db.Take(&comment, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, models.CommentNotFoundError(id)
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return &comment, nil
}

func (c *CommentController) UpdateComment(id uuid.UUID, in models.CommentUpdate) (*models.Comment, error) {
	comment, err := c.GetCommentByID(id)
	if err != nil {
		return nil, err
	}
	cols := in.Columns()
	cols["updated_at"] = time.Now()
	if err := c.db.Model(comment).Updates(cols).Error; err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return c.GetCommentByID(id)
}

func (c *CommentController) DeleteComment(id uuid.UUID) error {
	comment, err := c.GetCommentByID(id)
	if err != nil {
		return err
	}
	if err := c.db.Delete(comment).Error; err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	c.log.Info("deleted comment", zap.String("comment_id", id.String()))
	return nil
}
