package controllers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leveluplife/models"
)

func TestCreateUserTribeStats(t *testing.T) {
	tests := []struct {
		tribe models.Tribe
		want  models.TribeStats
	}{
		{models.TribeNosferati, models.TribeStats{Strength: 2, Intelligence: 8, Agility: 2, Wise: 1, Psycho: 10}},
		{models.TribeValhars, models.TribeStats{Strength: 10, Intelligence: 1, Agility: 6, Wise: 6, Psycho: 2}},
		{models.TribeSaharans, models.TribeStats{Strength: 2, Intelligence: 9, Agility: 3, Wise: 10, Psycho: 1}},
		{models.TribeGlimmerkins, models.TribeStats{Strength: 2, Intelligence: 10, Agility: 2, Wise: 7, Psycho: 4}},
		{models.TribeNeutrals, models.TribeStats{Strength: 5, Intelligence: 5, Agility: 5, Wise: 5, Psycho: 5}},
	}
	f := newFixture(t)
	for _, tt := range tests {
		t.Run(string(tt.tribe), func(t *testing.T) {
			user := f.createUser(t, "u"+string(tt.tribe), tt.tribe)
			got := models.TribeStats{
				Strength:     user.Strength,
				Intelligence: user.Intelligence,
				Agility:      user.Agility,
				Wise:         user.Wise,
				Psycho:       user.Psycho,
			}
			assert.Equal(t, tt.want, got)
			assert.Zero(t, user.Experience)
		})
	}
}

func TestCreateUserRoundTrip(t *testing.T) {
	f := newFixture(t)
	bio := "likes swords"
	created, err := f.users().CreateUser(models.UserCreate{
		Username:  "Bricou",
		Email:     "bricou@example.com",
		Tribe:     models.TribeSaharans,
		Password:  "secret",
		Biography: &bio,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.NotEqual(t, "secret", created.Password, "password is hashed")

	byID, err := f.users().GetUserByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Username, byID.Username)
	assert.Equal(t, created.Email, byID.Email)
	assert.Equal(t, bio, *byID.Biography)
	assert.Equal(t, created.Wise, byID.Wise)

	byName, err := f.users().GetUserByUsername("Bricou")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	byEmail, err := f.users().GetUserByEmail("bricou@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
}

func TestCreateUserDuplicates(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "Bricou", models.TribeValhars)

	_, err := f.users().CreateUser(models.UserCreate{Username: "Other", Email: "Bricou@example.com", Tribe: models.TribeValhars, Password: "secret"})
	requireDomainError(t, err, "UserEmailAlreadyExistsError")

	_, err = f.users().CreateUser(models.UserCreate{Username: "Bricou", Email: "new@example.com", Tribe: models.TribeValhars, Password: "secret"})
	e := requireDomainError(t, err, "UserUsernameAlreadyExistsError")
	assert.Equal(t, 409, e.StatusCode)
	assert.Equal(t, "User with the username Bricou already exists.", e.Message)
}

func TestUserNotFound(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	_, err := f.users().GetUserByID(id)
	e := requireDomainError(t, err, "UserNotFoundError")
	assert.Equal(t, "User with ID "+id.String()+" not found", e.Message)

	_, err = f.users().UpdateUser(id, models.UserUpdate{})
	requireDomainError(t, err, "UserNotFoundError")

	requireDomainError(t, f.users().DeleteUser(id), "UserNotFoundError")

	_, err = f.users().GetUserByUsername("ghost")
	requireDomainError(t, err, "UserUsernameNotFoundError")

	_, err = f.users().GetUserByEmail("ghost@example.com")
	requireDomainError(t, err, "UserEmailNotFoundError")

	_, err = f.users().GetUserView(id)
	requireDomainError(t, err, "UserNotFoundError")
}

func TestUpdateUserTribeKeepsStats(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "Bricou", models.TribeValhars)

	tribe := models.TribeNosferati
	updated, err := f.users().UpdateUser(user.ID, models.UserUpdate{Tribe: &tribe})
	require.NoError(t, err)

	assert.Equal(t, models.TribeNosferati, updated.Tribe)
	assert.Equal(t, 10, updated.Strength)
	assert.Equal(t, 1, updated.Intelligence)
	assert.Equal(t, user.Username, updated.Username)
	assert.Equal(t, user.Email, updated.Email)
}

func TestUpdateUserPartialAndConflict(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "Bricou", models.TribeValhars)
	f.createUser(t, "Taken", models.TribeValhars)

	xp := 42
	updated, err := f.users().UpdateUser(user.ID, models.UserUpdate{Experience: &xp})
	require.NoError(t, err)
	assert.Equal(t, 42, updated.Experience)
	assert.Equal(t, 10, updated.Strength)

	name := "Taken"
	_, err = f.users().UpdateUser(user.ID, models.UserUpdate{Username: &name})
	requireDomainError(t, err, "UserUsernameAlreadyExistsError")
}

func TestUpdateUserPasswordAndAuthenticate(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "Bricou", models.TribeValhars)

	_, err := f.users().Authenticate("Bricou", "secret")
	require.NoError(t, err)

	_, err = f.users().UpdateUserPassword(user.ID, models.UserUpdatePassword{Password: "changed"})
	require.NoError(t, err)

	_, err = f.users().Authenticate("Bricou", "secret")
	requireDomainError(t, err, "UnauthorizedError")
	_, err = f.users().Authenticate("ghost", "secret")
	requireDomainError(t, err, "UnauthorizedError")

	authed, err := f.users().Authenticate("Bricou", "changed")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)
}

func TestGetUsersByTribe(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "Bravo", models.TribeValhars)
	f.createUser(t, "Alpha", models.TribeValhars)
	f.createUser(t, "Gamma", models.TribeSaharans)

	users, err := f.users().GetUsersByTribe("Valhars", 0, PageSize)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Alpha", users[0].Username)

	_, err = f.users().GetUsersByTribe("Elves", 0, PageSize)
	e := requireDomainError(t, err, "TribeNotFoundError")
	assert.Equal(t, "Tribe Elves not found", e.Message)
}

func TestGetUsersViewsDeduplicate(t *testing.T) {
	f := newFixture(t)
	sword := f.createItem(t, "Sword")
	shield := f.createItem(t, "Shield")

	var ids []uuid.UUID
	for _, name := range []string{"Cara", "Abel", "Bert"} {
		u := f.createUser(t, name, models.TribeNeutrals)
		f.createTask(t, "task of "+name, u)
		ids = append(ids, u.ID)
	}
	_, err := f.items().GiveItemToUser(sword.ID, models.UserItemLinkCreate{UserIDs: ids})
	require.NoError(t, err)
	_, err = f.items().GiveItemToUser(shield.ID, models.UserItemLinkCreate{UserIDs: ids, Equipped: true})
	require.NoError(t, err)
	lonely := f.createUser(t, "Zed", models.TribeNeutrals)

	views, err := f.users().GetUsers(0, PageSize)
	require.NoError(t, err)
	require.Len(t, views, 4)

	assert.Equal(t, []string{"Abel", "Bert", "Cara", "Zed"},
		[]string{views[0].Username, views[1].Username, views[2].Username, views[3].Username})
	for _, v := range views[:3] {
		assert.Len(t, v.Items, 2, v.Username)
		require.Len(t, v.Tasks, 1, v.Username)
		assert.Equal(t, "task of "+v.Username, v.Tasks[0].Title)
	}
	assert.Equal(t, lonely.ID, views[3].ID)
	assert.Empty(t, views[3].Items)
	assert.Empty(t, views[3].Tasks)
}

func TestEquipItemToUser(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "Bricou", models.TribeValhars)
	item := f.createItem(t, "Sword")

	_, err := f.users().EquipItemToUser(uuid.New(), item.ID, true)
	requireDomainError(t, err, "UserNotFoundError")

	_, err = f.users().EquipItemToUser(user.ID, item.ID, true)
	e := requireDomainError(t, err, "ItemLinkToUserNotFoundError")
	assert.Equal(t, "Item: "+item.ID.String()+" is not linked to User: "+user.ID.String()+".", e.Message)

	_, err = f.items().GiveItemToUser(item.ID, models.UserItemLinkCreate{UserIDs: []uuid.UUID{user.ID}})
	require.NoError(t, err)

	view, err := f.users().EquipItemToUser(user.ID, item.ID, true)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.True(t, view.Items[0].Equipped)
	assert.Equal(t, "Sword", view.Items[0].Name)
	assert.Equal(t, 3, *view.Items[0].Strength)

	view, err = f.users().EquipItemToUser(user.ID, item.ID, false)
	require.NoError(t, err)
	assert.False(t, view.Items[0].Equipped)
}

func TestDeleteUserDropsLinks(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "Bricou", models.TribeValhars)
	item := f.createItem(t, "Sword")
	_, err := f.items().GiveItemToUser(item.ID, models.UserItemLinkCreate{UserIDs: []uuid.UUID{user.ID}})
	require.NoError(t, err)

	require.NoError(t, f.users().DeleteUser(user.ID))

	withUsers, err := f.items().GetItemByID(item.ID)
	require.NoError(t, err)
	assert.Empty(t, withUsers.Users)
}
