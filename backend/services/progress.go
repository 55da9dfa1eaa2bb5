package services

import (
	"math"
	"sort"
	"time"

	"wellness/backend/models"
)

// WindowDays maps an aggregation period name to its lookback in days.
// Unrecognized values fall back to a week.
func WindowDays(period string) (string, int) {
	switch period {
	case "month":
		return "month", 30
	case "year":
		return "year", 365
	case "week":
		return "week", 7
	}
	return "week", 7
}

// ProgressPercentage возвращает процент выполнения цели в [0,100].
// Ноль при нулевой (или отрицательной) цели.
func ProgressPercentage(current, target int) int {
	if target <= 0 {
		return 0
	}
	pct := int(math.Round(float64(current) / float64(target) * 100))
	if pct > 100 {
		pct = 100
	}
	return pct
}

// DaysRemaining returns whole days until the deadline, never negative.
func DaysRemaining(deadline, now time.Time) int {
	days := int(math.Ceil(deadline.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// GoalProgressView derives the read-only goal fields. They are computed
// on every read, never stored.
func GoalProgressView(goal models.Goal, now time.Time) models.GoalView {
	return models.GoalView{
		Goal:               goal,
		ProgressPercentage: ProgressPercentage(goal.CurrentValue, goal.TargetValue),
		DaysRemaining:      DaysRemaining(goal.Deadline, now),
	}
}

// Summarize rolls a user's collections into window-scoped statistics.
// Entries and moods outside [now - days, now] are ignored. An empty
// input yields zero-valued aggregates.
func Summarize(habits []models.Habit, entries []models.HabitEntry, moods []models.MoodEntry, goals []models.Goal, period string, now time.Time) models.SummaryStats {
	name, days := WindowDays(period)
	cutoff := StartOfDay(now).AddDate(0, 0, -days)

	stats := models.SummaryStats{
		Period:           name,
		Days:             days,
		TotalHabits:      len(habits),
		HabitsByCategory: map[string]int{},
		MoodDistribution: map[string]int{},
		GoalsByStatus:    map[string]int{},
		TotalGoals:       len(goals),
	}

	for _, h := range habits {
		stats.HabitsByCategory[h.Category]++
	}

	for _, e := range entries {
		if e.Day.Before(cutoff) {
			continue
		}
		stats.EntriesLogged++
		if e.Completed {
			stats.EntriesCompleted++
		}
	}
	if stats.EntriesLogged > 0 {
		stats.HabitCompletionRate = int(math.Round(float64(stats.EntriesCompleted) / float64(stats.EntriesLogged) * 100))
	}

	var energy, stress int
	for _, m := range moods {
		if m.Day.Before(cutoff) {
			continue
		}
		stats.MoodsLogged++
		stats.MoodDistribution[m.Mood]++
		energy += m.Energy
		stress += m.Stress
	}
	if stats.MoodsLogged > 0 {
		stats.AvgEnergy = float64(energy) / float64(stats.MoodsLogged)
		stats.AvgStress = float64(stress) / float64(stats.MoodsLogged)
	}

	for _, g := range goals {
		stats.GoalsByStatus[g.Status]++
	}

	stats.TopHabits = topByStreak(habits, 5)
	return stats
}

// topByStreak ranks habits by current streak, keeping insertion order
// on ties (stable sort).
func topByStreak(habits []models.Habit, n int) []models.HabitRank {
	ranked := make([]models.Habit, len(habits))
	copy(ranked, habits)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CurrentStreak > ranked[j].CurrentStreak
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	top := make([]models.HabitRank, 0, len(ranked))
	for _, h := range ranked {
		top = append(top, models.HabitRank{
			HabitID:       h.ID,
			Name:          h.Name,
			CurrentStreak: h.CurrentStreak,
		})
	}
	return top
}
