package controllers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leveluplife/models"
)

func TestCommentCRUD(t *testing.T) {
	f := newFixture(t)
	comments := NewCommentController(f.db, f.log)
	user := f.createUser(t, "Bricou", models.TribeValhars)
	task := f.createTask(t, "Supermarket", user)

	created, err := comments.CreateComment(models.CommentCreate{Content: "well done", TaskID: task.ID, UserID: user.ID})
	require.NoError(t, err)
	assert.Nil(t, created.UpdatedAt)

	_, err = comments.CreateComment(models.CommentCreate{Content: "again", TaskID: task.ID, UserID: user.ID})
	e := requireDomainError(t, err, "CommentAlreadyExistsError")
	assert.Equal(t, "Comment for the task "+task.ID.String()+" already exists.", e.Message)

	content := "edited"
	updated, err := comments.UpdateComment(created.ID, models.CommentUpdate{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
	assert.NotNil(t, updated.UpdatedAt)

	all, err := comments.GetComments(0, PageSize)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, comments.DeleteComment(created.ID))
	_, err = comments.GetCommentByID(created.ID)
	requireDomainError(t, err, "CommentNotFoundError")
	_, err = comments.UpdateComment(uuid.New(), models.CommentUpdate{})
	requireDomainError(t, err, "CommentNotFoundError")
}
