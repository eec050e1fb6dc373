package controllers

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"leveluplife/models"
)

type TaskController struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewTaskController(db *gorm.DB, log *zap.Logger) *TaskController {
	return &TaskController{db: db, log: log}
}

func (c *TaskController) CreateTask(in models.TaskCreate) (*models.Task, error) {
	if in.UserID != nil {
		if err := c.requireUser(*in.UserID); err != nil {
			return nil, err
		}
	}
	task := models.Task{
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		Category:    in.Category,
		UserID:      in.UserID,
	}
	if err := c.db.Create(&task).Error; err != nil {
		if isDuplicate(err) {
			return nil, models.TaskAlreadyExistsError(in.Title)
		}
		return nil, fmt.Errorf("create task: %w", err)
	}
	c.log.Info("new task created", zap.String("title", task.Title))
	return &task, nil
}

func (c *TaskController) requireUser(id uuid.UUID) error {
	found, err := exists(c.db, &models.User{}, "id = ?", id)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !found {
		return models.UserNotFoundError(id)
	}
	return nil
}

func (c *TaskController) GetTasks(offset, limit int) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := c.db.Order("created_at").Offset(offset).Limit(limit).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (c *TaskController) GetTaskByID(id uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := c.db.Take(&task, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, models.TaskNotFoundError(id)
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &task, nil
}

func (c *TaskController) GetTaskByTitle(title string) (*models.Task, error) {
	var task models.Task
	if err := c.db.Take(&task, "title = ?", title).Error; err != nil {
		if isNotFound(err) {
			return nil, models.TaskTitleNotFoundError(title)
		}
		return nil, fmt.Errorf("get task by title: %w", err)
	}
	return &task, nil
}

func (c *TaskController) UpdateTask(id uuid.UUID, in models.TaskUpdate) (*models.Task, error) {
	task, err := c.GetTaskByID(id)
	if err != nil {
		return nil, err
	}
	if in.UserID != nil {
		if err := c.requireUser(*in.UserID); err != nil {
			return nil, err
		}
	}
	cols := in.Columns()
	if len(cols) == 0 {
		return task, nil
	}
	if err := c.db.Model(task).Updates(cols).Error; err != nil {
		if isDuplicate(err) && in.Title != nil {
			return nil, models.TaskAlreadyExistsError(*in.Title)
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	c.log.Info("updated task", zap.String("task_id", id.String()))
	return c.GetTaskByID(id)
}

func (c *TaskController) DeleteTask(id uuid.UUID) error {
	task, err := c.GetTaskByID(id)
	if err != nil {
		return err
	}
	if err := c.db.Delete(task).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	c.log.Info("deleted task", zap.String("title", task.Title))
	return nil
}
