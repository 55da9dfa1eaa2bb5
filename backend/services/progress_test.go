package services

import (
	"testing"
	"time"

	"wellness/backend/models"

	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func TestWindowDays(t *testing.T) {
	cases := []struct {
		in   string
		name string
		days int
	}{
		{"week", "week", 7},
		{"month", "month", 30},
		{"year", "year", 365},
		{"", "week", 7},
		{"decade", "week", 7},
	}
	for _, c := range cases {
		name, days := WindowDays(c.in)
		assert.Equal(t, c.name, name, "period %q", c.in)
		assert.Equal(t, c.days, days, "period %q", c.in)
	}
}

func TestProgressPercentage(t *testing.T) {
	assert.Equal(t, 0, ProgressPercentage(5, 0))
	assert.Equal(t, 0, ProgressPercentage(0, 10))
	assert.Equal(t, 25, ProgressPercentage(3, 12))
	assert.Equal(t, 33, ProgressPercentage(1, 3))
	assert.Equal(t, 100, ProgressPercentage(10, 10))
	// Перевыполнение не выходит за 100
	assert.Equal(t, 100, ProgressPercentage(25, 10))
}

func TestDaysRemaining(t *testing.T) {
	assert.Equal(t, 0, DaysRemaining(fixedNow.AddDate(0, 0, -3), fixedNow))
	assert.Equal(t, 1, DaysRemaining(fixedNow.Add(2*time.Hour), fixedNow))
	assert.Equal(t, 7, DaysRemaining(fixedNow.AddDate(0, 0, 7), fixedNow))
}

func TestStartOfDay(t *testing.T) {
	got := StartOfDay(time.Date(2024, 6, 15, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestGoalProgressView(t *testing.T) {
	goal := models.Goal{
		TargetValue:  12,
		CurrentValue: 6,
		Deadline:     fixedNow.AddDate(0, 0, 10),
	}
	view := GoalProgressView(goal, fixedNow)
	assert.Equal(t, 50, view.ProgressPercentage)
	assert.Equal(t, 10, view.DaysRemaining)
}

func TestSummarizeEmpty(t *testing.T) {
	stats := Summarize(nil, nil, nil, nil, "month", fixedNow)

	assert.Equal(t, "month", stats.Period)
	assert.Equal(t, 30, stats.Days)
	assert.Equal(t, 0, stats.TotalHabits)
	assert.Equal(t, 0, stats.EntriesLogged)
	assert.Equal(t, 0, stats.HabitCompletionRate)
	assert.Equal(t, 0.0, stats.AvgEnergy)
	assert.Empty(t, stats.MoodDistribution)
	assert.Empty(t, stats.TopHabits)
}

func TestSummarizeWindowFiltersOldRecords(t *testing.T) {
	inWindow := StartOfDay(fixedNow).AddDate(0, 0, -2)
	outOfWindow := StartOfDay(fixedNow).AddDate(0, 0, -20)

	entries := []models.HabitEntry{
		{Day: inWindow, Completed: true},
		{Day: inWindow.AddDate(0, 0, 1), Completed: false},
		{Day: outOfWindow, Completed: true},
	}
	moods := []models.MoodEntry{
		{Day: inWindow, Mood: models.MoodGood, Energy: 8, Stress: 2},
		{Day: outOfWindow, Mood: models.MoodTerrible, Energy: 1, Stress: 10},
	}

	stats := Summarize(nil, entries, moods, nil, "week", fixedNow)

	assert.Equal(t, 2, stats.EntriesLogged)
	assert.Equal(t, 1, stats.EntriesCompleted)
	assert.Equal(t, 50, stats.HabitCompletionRate)
	assert.Equal(t, 1, stats.MoodsLogged)
	assert.Equal(t, map[string]int{models.MoodGood: 1}, stats.MoodDistribution)
	assert.Equal(t, 8.0, stats.AvgEnergy)
	assert.Equal(t, 2.0, stats.AvgStress)
}

func TestSummarizeTopHabitsStableTies(t *testing.T) {
	habits := []models.Habit{
		{Name: "a", CurrentStreak: 3},
		{Name: "b", CurrentStreak: 5},
		{Name: "c", CurrentStreak: 3},
		{Name: "d", CurrentStreak: 5},
		{Name: "e", CurrentStreak: 1},
		{Name: "f", CurrentStreak: 0},
	}

	stats := Summarize(habits, nil, nil, nil, "week", fixedNow)

	assert.Len(t, stats.TopHabits, 5)
	// Равные серии сохраняют исходный порядок
	names := make([]string, 0, 5)
	for _, h := range stats.TopHabits {
		names = append(names, h.Name)
	}
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, names)
}

func TestSummarizeGoalsByStatus(t *testing.T) {
	goals := []models.Goal{
		{Status: models.GoalStatusActive},
		{Status: models.GoalStatusActive},
		{Status: models.GoalStatusCompleted},
		{Status: models.GoalStatusPaused},
	}

	stats := Summarize(nil, nil, nil, goals, "year", fixedNow)

	assert.Equal(t, 4, stats.TotalGoals)
	assert.Equal(t, 2, stats.GoalsByStatus[models.GoalStatusActive])
	assert.Equal(t, 1, stats.GoalsByStatus[models.GoalStatusCompleted])
	assert.Equal(t, 1, stats.GoalsByStatus[models.GoalStatusPaused])
}
