package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTribeStatsDefault(t *testing.T) {
	assert.Equal(t, TribeStats{5, 5, 5, 5, 5}, Tribe("Elves").Stats())
	assert.Equal(t, TribeNeutrals.Stats(), Tribe("Elves").Stats())

	_, ok := ParseTribe("Elves")
	assert.False(t, ok)
	tribe, ok := ParseTribe("Glimmerkins")
	assert.True(t, ok)
	assert.Equal(t, TribeGlimmerkins, tribe)
	for _, tr := range Tribes {
		assert.NotEmpty(t, tr.Description(), tr)
	}
}

func TestQuestDurations(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := map[QuestType]int{
		QuestDaily:   1,
		QuestWeekly:  7,
		QuestMonthly: 30,
		QuestYearly:  365,
		QuestLover:   10,
	}
	for qt, days := range tests {
		assert.Equal(t, days, qt.Duration(), qt)
		assert.Equal(t, start.AddDate(0, 0, days), qt.EndDate(start), qt)
	}
	assert.Zero(t, QuestType("never").Duration())
}

func TestUserUpdateColumns(t *testing.T) {
	assert.Empty(t, UserUpdate{}.Columns())

	tribe := TribeSaharans
	cols := UserUpdate{Tribe: &tribe}.Columns()
	assert.Equal(t, map[string]interface{}{"tribe": TribeSaharans}, cols)
}

func TestReactionDescriptions(t *testing.T) {
	assert.Equal(t, "The user is disappointed about the task", ReactionDisappointing.Description())
	assert.Equal(t, "The user is laughing about the task", ReactionLaughing.Description())
	assert.Empty(t, ReactionType("meh").Description())
}
