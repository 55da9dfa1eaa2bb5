package services

import (
	"time"

	"wellness/backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ApplyCompletion updates a habit's cached stats after its entry for
// `today` was marked completed. Called only on completed=true writes.
//
// Continuity rule: a completed entry on the immediately preceding day
// extends the streak, anything else resets it to 1. We never walk
// further back than one day.
//
// The LastCompleted guard makes the update once-per-day: a second
// completed write the same day is a no-op here (the upsert already
// collapsed it to one entry). Days at or before LastCompleted are
// skipped entirely, so a backfilled older day cannot rewind the
// anchor and let the current day count twice. Un-completing a day
// does not decrement TotalCompletions or roll back the streak.
func ApplyCompletion(db *gorm.DB, habit *models.Habit, today time.Time) error {
	day := StartOfDay(today)
	if habit.LastCompleted != nil && !day.After(StartOfDay(*habit.LastCompleted)) {
		return nil
	}

	yesterday := day.AddDate(0, 0, -1)
	var prior int64
	if err := db.Model(&models.HabitEntry{}).
		Where("habit_id = ? AND day >= ? AND day < ? AND completed = ?", habit.ID, yesterday, day, true).
		Count(&prior).Error; err != nil {
		return err
	}

	if prior > 0 {
		habit.CurrentStreak++
	} else {
		habit.CurrentStreak = 1
	}
	if habit.CurrentStreak > habit.LongestStreak {
		habit.LongestStreak = habit.CurrentStreak
	}
	habit.TotalCompletions++
	t := today
	habit.LastCompleted = &t

	return db.Omit(clause.Associations).Save(habit).Error
}
