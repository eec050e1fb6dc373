package models

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// Error is a domain error surfaced to clients as
// {"message": ..., "name": ..., "status_code": ...}.
type Error struct {
	Name       string `json:"name"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

func (e *Error) Error() string {
	return e.Message
}

func newError(name string, status int, format string, args ...interface{}) *Error {
	return &Error{Name: name, Message: fmt.Sprintf(format, args...), StatusCode: status}
}

func notFound(name, format string, args ...interface{}) *Error {
	return newError(name, http.StatusNotFound, format, args...)
}

func conflict(name, format string, args ...interface{}) *Error {
	return newError(name, http.StatusConflict, format, args...)
}

// Users

func UserNotFoundError(userID uuid.UUID) *Error {
	return notFound("UserNotFoundError", "User with ID %s not found", userID)
}

func UserUsernameNotFoundError(username string) *Error {
	return notFound("UserUsernameNotFoundError", "User with username %s not found", username)
}

func UserEmailNotFoundError(email string) *Error {
	return notFound("UserEmailNotFoundError", "User with email %s not found", email)
}

func UserEmailAlreadyExistsError(email string) *Error {
	return conflict("UserEmailAlreadyExistsError", "User with the email %s already exists.", email)
}

func UserUsernameAlreadyExistsError(username string) *Error {
	return conflict("UserUsernameAlreadyExistsError", "User with the username %s already exists.", username)
}

func TribeNotFoundError(tribe string) *Error {
	return notFound("TribeNotFoundError", "Tribe %s not found", tribe)
}

// Tasks

func TaskNotFoundError(taskID uuid.UUID) *Error {
	return notFound("TaskNotFoundError", "Task with ID %s not found", taskID)
}

func TaskTitleNotFoundError(title string) *Error {
	return notFound("TaskTitleNotFoundError", "Task with title %s not found", title)
}

func TaskAlreadyExistsError(title string) *Error {
	return conflict("TaskAlreadyExistsError", "Task with the title %s already exists.", title)
}

// Items

func ItemNotFoundError(itemID uuid.UUID) *Error {
	return notFound("ItemNotFoundError", "Item with ID %s not found", itemID)
}

func ItemNameNotFoundError(name string) *Error {
	return notFound("ItemNameNotFoundError", "Item with name %s not found", name)
}

func ItemAlreadyExistsError(name string) *Error {
	return conflict("ItemAlreadyExistsError", "Item with the name %s already exists.", name)
}

func ItemAlreadyInUserError(username string, itemID uuid.UUID) *Error {
	return conflict("ItemAlreadyInUserError", "Item: %s already in User: %s.", itemID, username)
}

func ItemInUserNotFoundError(itemID, userID uuid.UUID) *Error {
	return notFound("ItemInUserNotFoundError", "Item: %s in User: %s not found.", itemID, userID)
}

func ItemLinkToUserNotFoundError(itemID, userID uuid.UUID) *Error {
	return notFound("ItemLinkToUserNotFoundError", "Item: %s is not linked to User: %s.", itemID, userID)
}

// Ratings, comments, reactions

func RatingNotFoundError(ratingID uuid.UUID) *Error {
	return notFound("RatingNotFoundError", "Rating with ID %s not found", ratingID)
}

func RatingAlreadyExistsError(taskID uuid.UUID) *Error {
	return conflict("RatingAlreadyExistsError", "Rating for the task %s already exists.", taskID)
}

func CommentNotFoundError(commentID uuid.UUID) *Error {
	return notFound("CommentNotFoundError", "Comment with ID %s not found", commentID)
}

func CommentAlreadyExistsError(taskID uuid.UUID) *Error {
	return conflict("CommentAlreadyExistsError", "Comment for the task %s already exists.", taskID)
}

func ReactionNotFoundError(reactionID uuid.UUID) *Error {
	return notFound("ReactionNotFoundError", "Reaction with ID %s not found", reactionID)
}

func ReactionAlreadyExistsError(taskID uuid.UUID) *Error {
	return conflict("ReactionAlreadyExistsError", "Reaction for the task %s already exists.", taskID)
}

// Quests

func QuestNotFoundError(questID uuid.UUID) *Error {
	return notFound("QuestNotFoundError", "Quest with ID %s not found", questID)
}

func QuestAlreadyExistsError(name string) *Error {
	return conflict("QuestAlreadyExistsError", "Quest with the name %s already exists.", name)
}

func QuestAlreadyInUserError(username string, questID uuid.UUID) *Error {
	return conflict("QuestAlreadyInUserError", "Quest: %s already in User: %s.", questID, username)
}

func QuestInUserNotFoundError(questID, userID uuid.UUID) *Error {
	return notFound("QuestInUserNotFoundError", "Quest: %s in User: %s not found.", questID, userID)
}

// HTTP boundary

func ValidationError(detail string) *Error {
	return newError("ValidationError", http.StatusUnprocessableEntity, "%s", detail)
}

func UnauthorizedError(detail string) *Error {
	return newError("UnauthorizedError", http.StatusUnauthorized, "%s", detail)
}

func InternalServerError() *Error {
	return newError("InternalServerError", http.StatusInternalServerError, "Internal server error")
}

func UnsupportedMediaTypeError() *Error {
	return newError("UnsupportedMediaTypeError", http.StatusUnsupportedMediaType, "Content-Type must be application/json")
}

func TooManyRequestsError(retryAfter int) *Error {
	return newError("TooManyRequestsError", http.StatusTooManyRequests, "Too many requests, retry in %d seconds", retryAfter)
}

func StorageUnavailableError() *Error {
	return newError("StorageUnavailableError", http.StatusServiceUnavailable, "Image storage is not configured")
}
