package models

import "time"

// TaskView is a task as it appears inside a user view.
type TaskView = Task

type ItemUserView struct {
	Item
	Equipped bool `json:"equipped"`
}

type UserView struct {
	User
	Items []ItemUserView `json:"items"`
	Tasks []TaskView     `json:"tasks"`
}

type ItemWithUsers struct {
	Item
	Users []User `json:"users"`
}

type QuestUserView struct {
	Quest
	Status     QuestStatus `json:"status"`
	QuestStart *time.Time  `json:"quest_start"`
	QuestEnd   *time.Time  `json:"quest_end"`
}

type QuestWithUsers struct {
	Quest
	Users []User `json:"users"`
}
