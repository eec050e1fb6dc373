package controllers

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"leveluplife/models"
)

type ItemController struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewItemController(db *gorm.DB, log *zap.Logger) *ItemController {
	return &ItemController{db: db, log: log}
}

func (c *ItemController) CreateItem(in models.ItemCreate) (*models.Item, error) {
	item := models.Item{
		Name:         in.Name,
		Description:  in.Description,
		PriceSell:    in.PriceSell,
		Strength:     in.Strength,
		Intelligence: in.Intelligence,
		Agility:      in.Agility,
		Wise:         in.Wise,
		Psycho:       in.Psycho,
	}
	if err := c.db.Create(&item).Error; err != nil {
		if isDuplicate(err) {
			return nil, models.ItemAlreadyExistsError(in.Name)
		}
		return nil, fmt.Errorf("create item: %w", err)
	}
	c.log.Info("new item created", zap.String("name", item.Name))
	return &item, nil
}

func (c *ItemController) GetItems(offset, limit int) ([]models.Item, error) {
	items := []models.Item{}
	if err := c.db.Order("created_at").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

func (c *ItemController) getItem(id uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := c.db.Take(&item, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, models.ItemNotFoundError(id)
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &item, nil
}

// GetItemByID returns the item with every user it is linked to.
func (c *ItemController) GetItemByID(id uuid.UUID) (*models.ItemWithUsers, error) {
	item, err := c.getItem(id)
	if err != nil {
		return nil, err
	}
	users := []models.User{}
	err = c.db.Model(&models.User{}).
		Select("users.*").
		Joins("JOIN user_item_links ON user_item_links.user_id = users.id").
		Where("user_item_links.item_id = ?", id).
		Order("users.username").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list item users: %w", err)
	}
	return &models.ItemWithUsers{Item: *item, Users: users}, nil
}

func (c *ItemController) GetItemByName(name string) (*models.Item, error) {
	var item models.Item
	if err := c.db.Take(&item, "name = ?", name).Error; err != nil {
		if isNotFound(err) {
			return nil, models.ItemNameNotFoundError(name)
		}
		return nil, fmt.Errorf("get item by name: %w", err)
	}
	return &item, nil
}

func (c *ItemController) UpdateItem(id uuid.UUID, in models.ItemUpdate) (*models.Item, error) {
	item, err := c.getItem(id)
	if err != nil {
		return nil, err
	}
	cols := in.Columns()
	cols["updated_at"] = time.Now()
	if err := c.db.Model(item).Updates(cols).Error; err != nil {
		if isDuplicate(err) && in.Name != nil {
			return nil, models.ItemAlreadyExistsError(*in.Name)
		}
		return nil, fmt.Errorf("update item: %w", err)
	}
	c.log.Info("updated item", zap.String("item_id", id.String()))
	return c.getItem(id)
}

// DeleteItem removes the item and its user links.
func (c *ItemController) DeleteItem(id uuid.UUID) error {
	item, err := c.getItem(id)
	if err != nil {
		return err
	}
	err = c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&models.UserItemLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(item).Error
	})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	c.log.Info("deleted item", zap.String("name", item.Name))
	return nil
}

// GiveItemToUser links the item to every listed user in one transaction.
func (c *ItemController) GiveItemToUser(itemID uuid.UUID, in models.UserItemLinkCreate) (*models.ItemWithUsers, error) {
	if _, err := c.getItem(itemID); err != nil {
		return nil, err
	}
	err := c.db.Transaction(func(tx *gorm.DB) error {
		for _, userID := range in.UserIDs {
			var user models.User
			if err := tx.Take(&user, "id = ?", userID).Error; err != nil {
				if isNotFound(err) {
					return models.UserNotFoundError(userID)
				}
				return err
			}
			link := models.UserItemLink{UserID: userID, ItemID: itemID, Equipped: in.Equipped}
			if err := tx.Create(&link).Error; err != nil {
				if isDuplicate(err) {
					return models.ItemAlreadyInUserError(user.Username, itemID)
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.log.Info("gave item to users", zap.String("item_id", itemID.String()), zap.Int("users", len(in.UserIDs)))
	return c.GetItemByID(itemID)
}

func (c *ItemController) RemoveItemFromUser(itemID, userID uuid.UUID) error {
	res := c.db.Where("item_id = ? AND user_id = ?", itemID, userID).Delete(&models.UserItemLink{})
	if res.Error != nil {
		return fmt.Errorf("remove item from user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ItemInUserNotFoundError(itemID, userID)
	}
	c.log.Info("removed item from user", zap.String("item_id", itemID.String()), zap.String("user_id", userID.String()))
	return nil
}
