package controllers

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"leveluplife/models"
)

type QuestController struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewQuestController(db *gorm.DB, log *zap.Logger) *QuestController {
	return &QuestController{db: db, log: log}
}

func (c *QuestController) CreateQuest(in models.QuestCreate) (*models.Quest, error) {
	quest := models.Quest{
		Name:        in.Name,
		Description: in.Description,
		XPReward:    in.XPReward,
		Type:        in.Type,
	}
	if err := c.db.Create(&quest).Error; err != nil {
		if isDuplicate(err) {
			return nil, models.QuestAlreadyExistsError(in.Name)
		}
		return nil, fmt.Errorf("create quest: %w", err)
	}
	c.log.Info("new quest created", zap.String("name", quest.Name))
	return &quest, nil
}

func (c *QuestController) GetQuests(offset, limit int) ([]models.Quest, error) {
	quests := []models.Quest{}
	if err := c.db.Order("created_at").Offset(offset).Limit(limit).Find(&quests).Error; err != nil {
		return nil, fmt.Errorf("list quests: %w", err)
	}
	return quests, nil
}

func (c *QuestController) getQuest(id uuid.UUID) (*models.Quest, error) {
	var quest models.Quest
	if err := c.db.Take(&quest, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, models.QuestNotFoundError(id)
		}
		return nil, fmt.Errorf("get quest: %w", err)
	}
	return &quest, nil
}

// GetQuestByID returns the quest with every user it is assigned to.
func (c *QuestController) GetQuestByID(id uuid.UUID) (*models.QuestWithUsers, error) {
	quest, err := c.getQuest(id)
	if err != nil {
		return nil, err
	}
	users := []models.User{}
	err = c.db.Model(&models.User{}).
		Select("users.*").
		Joins("JOIN user_quest_links ON user_quest_links.user_id = users.id").
		Where("user_quest_links.quest_id = ?", id).
		Order("users.username").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list quest users: %w", err)
	}
	return &models.QuestWithUsers{Quest: *quest, Users: users}, nil
}

func (c *QuestController) UpdateQuest(id uuid.UUID, in models.QuestUpdate) (*models.Quest, error) {
	quest, err := c.getQuest(id)
	if err != nil {
		return nil, err
	}
	cols := in.Columns()
	cols["updated_at"] = time.Now()
	if err := c.db.Model(quest).Updates(cols).Error; err != nil {
		if isDuplicate(err) && in.Name != nil {
			return nil, models.QuestAlreadyExistsError(*in.Name)
		}
		return nil, fmt.Errorf("update quest: %w", err)
	}
	c.log.Info("updated quest", zap.String("quest_id", id.String()))
	return c.getQuest(id)
}

// DeleteQuest removes the quest and its user links.
func (c *QuestController) DeleteQuest(id uuid.UUID) error {
	quest, err := c.getQuest(id)
	if err != nil {
		return err
	}
	err = c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quest_id = ?", id).Delete(&models.UserQuestLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(quest).Error
	})
	if err != nil {
		return fmt.Errorf("delete quest: %w", err)
	}
	c.log.Info("deleted quest", zap.String("name", quest.Name))
	return nil
}

// AssignQuestToUser links the quest to every listed user with the given
// window. An empty status means active.
func (c *QuestController) AssignQuestToUser(questID uuid.UUID, in models.UserQuestLinkCreate, start, end time.Time) (*models.QuestWithUsers, error) {
	if _, err := c.getQuest(questID); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = models.QuestStatusActive
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
			link := models.UserQuestLink{
				UserID:     userID,
				QuestID:    questID,
				QuestStart: &start,
				QuestEnd:   &end,
				Status:     status,
			}
			if err := tx.Create(&link).Error; err != nil {
				if isDuplicate(err) {
					return models.QuestAlreadyInUserError(user.Username, questID)
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.log.Info("assigned quest to users", zap.String("quest_id", questID.String()), zap.Int("users", len(in.UserIDs)))
	return c.GetQuestByID(questID)
}

func (c *QuestController) RemoveQuestFromUser(questID, userID uuid.UUID) error {
	res := c.db.Where("quest_id = ? AND user_id = ?", questID, userID).Delete(&models.UserQuestLink{})
	if res.Error != nil {
		return fmt.Errorf("remove quest from user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.QuestInUserNotFoundError(questID, userID)
	}
	c.log.Info("removed quest from user", zap.String("quest_id", questID.String()), zap.String("user_id", userID.String()))
	return nil
}

// GetUserQuests lists the quests assigned to a user with their window and status.
func (c *QuestController) GetUserQuests(userID uuid.UUID) ([]models.QuestUserView, error) {
	found, err := exists(c.db, &models.User{}, "id = ?", userID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !found {
		return nil, models.UserNotFoundError(userID)
	}

	var links []models.UserQuestLink
	if err := c.db.Where("user_id = ?", userID).Order("created_at").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("list user quest links: %w", err)
	}
	if len(links) == 0 {
		return []models.QuestUserView{}, nil
	}
	ids := make([]uuid.UUID, len(links))
	for i, l := range links {
		ids[i] = l.QuestID
	}
	var quests []models.Quest
	if err := c.db.Where("id IN ?", ids).Find(&quests).Error; err != nil {
		return nil, fmt.Errorf("list user quests: %w", err)
	}
	byID := make(map[uuid.UUID]models.Quest, len(quests))
	for _, q := range quests {
		byID[q.ID] = q
	}

	views := make([]models.QuestUserView, 0, len(links))
	for _, l := range links {
		q, ok := byID[l.QuestID]
		if !ok {
			continue
		}
		views = append(views, models.QuestUserView{
			Quest:      q,
			Status:     l.Status,
			QuestStart: l.QuestStart,
			QuestEnd:   l.QuestEnd,
		})
	}
	return views, nil
}
