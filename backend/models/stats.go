package models

// View structs returned by the stats endpoints; computed on read,
// never persisted.

type GoalView struct {
	Goal
	ProgressPercentage int `json:"progress_percentage"`
	DaysRemaining      int `json:"days_remaining"`
}

type HabitRank struct {
	HabitID       uint   `json:"habit_id"`
	Name          string `json:"name"`
	CurrentStreak int    `json:"current_streak"`
}

type SummaryStats struct {
	Period string `json:"period"`
	Days   int    `json:"days"`

	TotalHabits         int            `json:"total_habits"`
	HabitsByCategory    map[string]int `json:"habits_by_category"`
	EntriesLogged       int            `json:"entries_logged"`
	EntriesCompleted    int            `json:"entries_completed"`
	HabitCompletionRate int            `json:"habit_completion_rate"` // percent, nearest int
	TopHabits           []HabitRank    `json:"top_habits"`

	MoodsLogged      int            `json:"moods_logged"`
	MoodDistribution map[string]int `json:"mood_distribution"`
	AvgEnergy        float64        `json:"avg_energy"`
	AvgStress        float64        `json:"avg_stress"`

	TotalGoals    int            `json:"total_goals"`
	GoalsByStatus map[string]int `json:"goals_by_status"`
}

type LeaderboardRow struct {
	UserID           uint   `json:"user_id"`
	Username         string `json:"username"`
	BestStreak       int    `json:"best_streak"`
	TotalCompletions int    `json:"total_completions"`
	Score            int    `json:"score"`
	IsMe             bool   `json:"is_me"`
}
