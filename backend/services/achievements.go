package services

import (
	"time"

	"wellness/backend/models"

	"gorm.io/gorm"
)

const (
	AchievementFirstCompletion = "first_completion"
	AchievementWeekStreak      = "week_streak"
	AchievementGoalCompleted   = "goal_completed"
)

// GrantAchievement appends an achievement once per (user, code); a
// repeated grant is a no-op. The list is append-only.
func GrantAchievement(db *gorm.DB, userID uint, code, title, description string, now time.Time) error {
	achievement := models.Achievement{
		UserID:      userID,
		Code:        code,
		Title:       title,
		Description: description,
		EarnedAt:    now,
	}
	return db.Where("user_id = ? AND code = ?", userID, code).
		FirstOrCreate(&achievement).Error
}

// CheckHabitAchievements выдает достижения по обновленной статистике
// привычки. Ошибки здесь не фатальны для основного пути записи.
func CheckHabitAchievements(db *gorm.DB, habit *models.Habit, now time.Time) error {
	if habit.TotalCompletions >= 1 {
		if err := GrantAchievement(db, habit.UserID, AchievementFirstCompletion,
			"First Step", "Completed a habit for the first time", now); err != nil {
			return err
		}
	}
	if habit.CurrentStreak >= 7 {
		if err := GrantAchievement(db, habit.UserID, AchievementWeekStreak,
			"Week Warrior", "Kept a habit streak for 7 days", now); err != nil {
			return err
		}
	}
	return nil
}
