package controllers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"leveluplife/database/dbtest"
	"leveluplife/models"
)

type fixture struct {
	db  *gorm.DB
	log *zap.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{db: dbtest.New(t), log: zap.NewNop()}
}

func (f *fixture) users() *UserController   { return NewUserController(f.db, f.log) }
func (f *fixture) tasks() *TaskController   { return NewTaskController(f.db, f.log) }
func (f *fixture) items() *ItemController   { return NewItemController(f.db, f.log) }
func (f *fixture) quests() *QuestController { return NewQuestController(f.db, f.log) }

func (f *fixture) createUser(t *testing.T, username string, tribe models.Tribe) *models.User {
	t.Helper()
	user, err := f.users().CreateUser(models.UserCreate{
		Username: username,
		Email:    username + "@example.com",
		Tribe:    tribe,
		Password: "secret",
	})
	require.NoError(t, err)
	return user
}

func (f *fixture) createTask(t *testing.T, title string, owner *models.User) *models.Task {
	t.Helper()
	in := models.TaskCreate{Title: title, Description: "do " + title, Category: "chores"}
	if owner != nil {
		in.UserID = &owner.ID
	}
	task, err := f.tasks().CreateTask(in)
	require.NoError(t, err)
	return task
}

func (f *fixture) createItem(t *testing.T, name string) *models.Item {
	t.Helper()
	strength := 3
	item, err := f.items().CreateItem(models.ItemCreate{Name: name, Description: "a " + name, Strength: &strength})
	require.NoError(t, err)
	return item
}

func requireDomainError(t *testing.T, err error, name string) *models.Error {
	t.Helper()
	require.Error(t, err)
	domainErr, ok := err.(*models.Error)
	require.True(t, ok, "expected *models.Error, got %T: %v", err, err)
	require.Equal(t, name, domainErr.Name)
	return domainErr
}
