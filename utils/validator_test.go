package utils

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leveluplife/models"
)

func TestValidateStruct(t *testing.T) {
	ok := models.UserCreate{
		Username: "Bricou",
		Email:    "bricou@example.com",
		Tribe:    models.TribeValhars,
		Password: "secret",
	}
	require.NoError(t, ValidateStruct(ok))

	bad := ok
	bad.Username = "ab"
	bad.Email = "nope"
	bad.Tribe = "Elves"

	err := ValidateStruct(bad)
	var verr *models.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "ValidationError", verr.Name)
	assert.Equal(t, http.StatusUnprocessableEntity, verr.StatusCode)
	assert.Contains(t, verr.Message, "username must be at least 3")
	assert.Contains(t, verr.Message, "email must be a valid email address")
	assert.Contains(t, verr.Message, "tribe must be one of")
}

func TestValidatePointerUpdates(t *testing.T) {
	rating := 11
	err := ValidateStruct(models.RatingUpdate{Rating: &rating})
	assert.Error(t, err)

	require.NoError(t, ValidateStruct(models.RatingUpdate{}))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)
	assert.True(t, CheckPassword(hash, "secret"))
	assert.False(t, CheckPassword(hash, "other"))
}
