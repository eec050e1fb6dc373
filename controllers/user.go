package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"leveluplife/models"
	"leveluplife/utils"
)

type UserController struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewUserController(db *gorm.DB, log *zap.Logger) *UserController {
	return &UserController{db: db, log: log}
}

func (c *UserController) CreateUser(in models.UserCreate) (*models.User, error) {
	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:        in.Username,
		Email:           in.Email,
		Tribe:           in.Tribe,
		Password:        hashed,
		Biography:       in.Biography,
		ProfilePicture:  in.ProfilePicture,
		BackgroundImage: in.BackgroundImage,
	}
	user.ApplyStats(in.Tribe.Stats())

	if err := c.db.Create(&user).Error; err != nil {
		if isDuplicate(err) {
			return nil, c.conflictError(&in.Username, &in.Email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	c.log.Info("new user created", zap.String("username", user.Username))
	return &user, nil
}

// conflictError works out which unique column a failed write collided on.
func (c *UserController) conflictError(username, email *string) error {
	if email != nil {
		taken, err := exists(c.db, &models.User{}, "email = ?", *email)
		if err != nil {
			return err
		}
		if taken {
			return models.UserEmailAlreadyExistsError(*email)
		}
	}
	if username != nil {
		return models.UserUsernameAlreadyExistsError(*username)
	}
	return models.UserEmailAlreadyExistsError("")
}

// GetUsers returns a page of user views ordered by username.
func (c *UserController) GetUsers(offset, limit int) ([]models.UserView, error) {
	var users []models.User
	if err := c.db.Order("username").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if len(users) == 0 {
		return []models.UserView{}, nil
	}

	ids := make([]uuid.UUID, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	rows, err := c.viewRows(ids)
	if err != nil {
		return nil, err
	}
	c.log.Info("getting users", zap.Int("count", len(users)))
	return assembleUserViews(users, rows), nil
}

func (c *UserController) GetUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := c.db.Take(&user, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, models.UserNotFoundError(id)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// GetUserView returns the user with its linked items and owned tasks.
func (c *UserController) GetUserView(id uuid.UUID) (*models.UserView, error) {
	user, err := c.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	rows, err := c.viewRows([]uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	view := assembleUserViews([]models.User{*user}, rows)[0]
	return &view, nil
}

func (c *UserController) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := c.db.Take(&user, "username = ?", username).Error; err != nil {
		if isNotFound(err) {
			return nil, models.UserUsernameNotFoundError(username)
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &user, nil
}

func (c *UserController) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := c.db.Take(&user, "email = ?", email).Error; err != nil {
		if isNotFound(err) {
			return nil, models.UserEmailNotFoundError(email)
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

func (c *UserController) GetUsersByTribe(tribe string, offset, limit int) ([]models.User, error) {
	t, ok := models.ParseTribe(tribe)
	if !ok {
		return nil, models.TribeNotFoundError(tribe)
	}
	users := []models.User{}
	if err := c.db.Where("tribe = ?", t).Order("username").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users by tribe: %w", err)
	}
	return users, nil
}

// UpdateUser applies the set fields only. Changing the tribe keeps the
// current stats.
func (c *UserController) UpdateUser(id uuid.UUID, in models.UserUpdate) (*models.User, error) {
	user, err := c.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	cols := in.Columns()
	if len(cols) == 0 {
		return user, nil
	}
	if err := c.db.Model(user).Updates(cols).Error; err != nil {
		if isDuplicate(err) {
			return nil, c.conflictError(in.Username, in.Email)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	c.log.Info("updated user", zap.String("user_id", id.String()))
	return c.GetUserByID(id)
}

func (c *UserController) UpdateUserPassword(id uuid.UUID, in models.UserUpdatePassword) (*models.User, error) {
	user, err := c.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := c.db.Model(user).Update("password", hashed).Error; err != nil {
		return nil, fmt.Errorf("update user password: %w", err)
	}
	c.log.Info("updated user password", zap.String("username", user.Username))
	return c.GetUserByID(id)
}

// Authenticate checks a username/password pair.
func (c *UserController) Authenticate(username, password string) (*models.User, error) {
	user, err := c.GetUserByUsername(username)
	if err != nil {
		var domainErr *models.Error
		if errors.As(err, &domainErr) {
			return nil, models.UnauthorizedError("Incorrect username or password")
		}
		return nil, err
	}
	if !utils.CheckPassword(user.Password, password) {
		return nil, models.UnauthorizedError("Incorrect username or password")
	}
	return user, nil
}

// DeleteUser removes the user together with its item and quest links.
func (c *UserController) DeleteUser(id uuid.UUID) error {
	user, err := c.GetUserByID(id)
	if err != nil {
		return err
	}
	err = c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.UserItemLink{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.UserQuestLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	c.log.Info("deleted user", zap.String("username", user.Username))
	return nil
}

// EquipItemToUser sets the equipped flag on an existing user-item link.
func (c *UserController) EquipItemToUser(userID, itemID uuid.UUID, equipped bool) (*models.UserView, error) {
	if _, err := c.GetUserByID(userID); err != nil {
		return nil, err
	}
	var link models.UserItemLink
	if err := c.db.Take(&link, "user_id = ? AND item_id = ?", userID, itemID).Error; err != nil {
		if isNotFound(err) {
			return nil, models.ItemLinkToUserNotFoundError(itemID, userID)
		}
		return nil, fmt.Errorf("get item link: %w", err)
	}
	err := c.db.Model(&models.UserItemLink{}).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Update("equipped", equipped).Error
	if err != nil {
		return nil, fmt.Errorf("equip item: %w", err)
	}
	c.log.Info("equipped item", zap.String("user_id", userID.String()), zap.String("item_id", itemID.String()), zap.Bool("equipped", equipped))
	return c.GetUserView(userID)
}

// userViewRow is one row of users LEFT JOIN links/items LEFT JOIN tasks.
type userViewRow struct {
	UserID           uuid.UUID
	Equipped         *bool
	ItemID           *uuid.UUID
	ItemCreatedAt    *time.Time
	ItemUpdatedAt    *time.Time
	ItemDeletedAt    *time.Time
	ItemName         *string
	ItemDescription  *string
	ItemPriceSell    *int
	ItemStrength     *int
	ItemIntelligence *int
	ItemAgility      *int
	ItemWise         *int
	ItemPsycho       *int
	TaskID           *uuid.UUID
	TaskCreatedAt    *time.Time
	TaskTitle        *string
	TaskDescription  *string
	TaskCompleted    *bool
	TaskCategory     *string
	TaskUserID       *uuid.UUID
}

const userViewColumns = `users.id AS user_id,
	user_item_links.equipped AS equipped,
	items.id AS item_id,
	items.created_at AS item_created_at,
	items.updated_at AS item_updated_at,
	items.deleted_at AS item_deleted_at,
	items.name AS item_name,
	items.description AS item_description,
	items.price_sell AS item_price_sell,
	items.strength AS item_strength,
	items.intelligence AS item_intelligence,
	items.agility AS item_agility,
	items.wise AS item_wise,
	items.psycho AS item_psycho,
	tasks.id AS task_id,
	tasks.created_at AS task_created_at,
	tasks.title AS task_title,
	tasks.description AS task_description,
	tasks.completed AS task_completed,
	tasks.category AS task_category,
	tasks.user_id AS task_user_id`

func (c *UserController) viewRows(ids []uuid.UUID) ([]userViewRow, error) {
	var rows []userViewRow
	err := c.db.Table("users").
		Select(userViewColumns).
		Joins("LEFT JOIN user_item_links ON user_item_links.user_id = users.id").
		Joins("LEFT JOIN items ON items.id = user_item_links.item_id").
		Joins("LEFT JOIN tasks ON tasks.user_id = users.id").
		Where("users.id IN ?", ids).
		Order("user_item_links.created_at, tasks.created_at").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load user views: %w", err)
	}
	return rows, nil
}

// assembleUserViews folds the flat join into one view per user, in the
// order of users. Items are deduplicated by id and tasks by title; rows
// without an item contribute no item.
func assembleUserViews(users []models.User, rows []userViewRow) []models.UserView {
	views := make([]models.UserView, len(users))
	index := make(map[uuid.UUID]int, len(users))
	seenItems := make([]map[uuid.UUID]struct{}, len(users))
	seenTasks := make([]map[string]struct{}, len(users))
	for i, u := range users {
		views[i] = models.UserView{User: u, Items: []models.ItemUserView{}, Tasks: []models.TaskView{}}
		index[u.ID] = i
		seenItems[i] = map[uuid.UUID]struct{}{}
		seenTasks[i] = map[string]struct{}{}
	}

	for _, row := range rows {
		i, ok := index[row.UserID]
		if !ok {
			continue
		}
		if row.ItemID != nil {
			if _, dup := seenItems[i][*row.ItemID]; !dup {
				seenItems[i][*row.ItemID] = struct{}{}
				views[i].Items = append(views[i].Items, row.itemView())
			}
		}
		if row.TaskID != nil && row.TaskTitle != nil {
			if _, dup := seenTasks[i][*row.TaskTitle]; !dup {
				seenTasks[i][*row.TaskTitle] = struct{}{}
				views[i].Tasks = append(views[i].Tasks, row.taskView())
			}
		}
	}
	return views
}

func (r userViewRow) itemView() models.ItemUserView {
	return models.ItemUserView{
		Item: models.Item{
			ID:           *r.ItemID,
			CreatedAt:    deref(r.ItemCreatedAt),
			UpdatedAt:    r.ItemUpdatedAt,
			DeletedAt:    r.ItemDeletedAt,
			Name:         deref(r.ItemName),
			Description:  deref(r.ItemDescription),
			PriceSell:    r.ItemPriceSell,
			Strength:     r.ItemStrength,
			Intelligence: r.ItemIntelligence,
			Agility:      r.ItemAgility,
			Wise:         r.ItemWise,
			Psycho:       r.ItemPsycho,
		},
		Equipped: deref(r.Equipped),
	}
}

func (r userViewRow) taskView() models.TaskView {
	return models.TaskView{
		ID:          *r.TaskID,
		CreatedAt:   deref(r.TaskCreatedAt),
		Title:       *r.TaskTitle,
		Description: deref(r.TaskDescription),
		Completed:   deref(r.TaskCompleted),
		Category:    deref(r.TaskCategory),
		UserID:      r.TaskUserID,
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
