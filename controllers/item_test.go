package controllers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leveluplife/models"
)

func TestItemLifecycle(t *testing.T) {
	f := newFixture(t)
	item := f.createItem(t, "Sword")
	assert.Nil(t, item.UpdatedAt)

	byName, err := f.items().GetItemByName("Sword")
	require.NoError(t, err)
	assert.Equal(t, item.ID, byName.ID)

	price := 12
	updated, err := f.items().UpdateItem(item.ID, models.ItemUpdate{PriceSell: &price})
	require.NoError(t, err)
	assert.Equal(t, 12, *updated.PriceSell)
	assert.Equal(t, 3, *updated.Strength)
	assert.NotNil(t, updated.UpdatedAt)

	items, err := f.items().GetItems(0, PageSize)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, f.items().DeleteItem(item.ID))
	_, err = f.items().GetItemByID(item.ID)
	requireDomainError(t, err, "ItemNotFoundError")
}

func TestItemErrors(t *testing.T) {
	f := newFixture(t)
	f.createItem(t, "Sword")

	_, err := f.items().CreateItem(models.ItemCreate{Name: "Sword"})
	e := requireDomainError(t, err, "ItemAlreadyExistsError")
	assert.Equal(t, "Item with the name Sword already exists.", e.Message)

	_, err = f.items().GetItemByName("Axe")
	requireDomainError(t, err, "ItemNameNotFoundError")
	_, err = f.items().UpdateItem(uuid.New(), models.ItemUpdate{})
	requireDomainError(t, err, "ItemNotFoundError")
	requireDomainError(t, f.items().DeleteItem(uuid.New()), "ItemNotFoundError")
}

func TestGiveAndRemoveItem(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "Alice", models.TribeValhars)
	bob := f.createUser(t, "Bob", models.TribeSaharans)
	item := f.createItem(t, "Sword")

	withUsers, err := f.items().GiveItemToUser(item.ID, models.UserItemLinkCreate{UserIDs: []uuid.UUID{bob.ID, alice.ID}})
	require.NoError(t, err)
	require.Len(t, withUsers.Users, 2)
	assert.Equal(t, "Alice", withUsers.Users[0].Username)
	assert.Equal(t, item.Name, withUsers.Name)

	_, err = f.items().GiveItemToUser(item.ID, models.UserItemLinkCreate{UserIDs: []uuid.UUID{alice.ID}})
	e := requireDomainError(t, err, "ItemAlreadyInUserError")
	assert.Equal(t, "Item: "+item.ID.String()+" already in User: Alice.", e.Message)

	_, err = f.items().GiveItemToUser(uuid.New(), models.UserItemLinkCreate{UserIDs: []uuid.UUID{alice.ID}})
	requireDomainError(t, err, "ItemNotFoundError")

	_, err = f.items().GiveItemToUser(item.ID, models.UserItemLinkCreate{UserIDs: []uuid.UUID{uuid.New()}})
	requireDomainError(t, err, "UserNotFoundError")

	require.NoError(t, f.items().RemoveItemFromUser(item.ID, alice.ID))
	err = f.items().RemoveItemFromUser(item.ID, alice.ID)
	e = requireDomainError(t, err, "ItemInUserNotFoundError")
	assert.Equal(t, "Item: "+item.ID.String()+" in User: "+alice.ID.String()+" not found.", e.Message)

	withUsers, err = f.items().GetItemByID(item.ID)
	require.NoError(t, err)
	require.Len(t, withUsers.Users, 1)
	assert.Equal(t, bob.ID, withUsers.Users[0].ID)
}

func TestGiveItemRollsBackOnDuplicate(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "Alice", models.TribeValhars)
	bob := f.createUser(t, "Bob", models.TribeValhars)
	item := f.createItem(t, "Sword")

	_, err := f.items().GiveItemToUser(item.ID, models.UserItemLinkCreate{UserIDs: []uuid.UUID{alice.ID}})
	require.NoError(t, err)

	_, err = f.items().GiveItemToUser(item.ID, models.UserItemLinkCreate{UserIDs: []uuid.UUID{bob.ID, alice.ID}})
	requireDomainError(t, err, "ItemAlreadyInUserError")

	withUsers, err := f.items().GetItemByID(item.ID)
	require.NoError(t, err)
	assert.Len(t, withUsers.Users, 1, "bob's link is rolled back")
}
