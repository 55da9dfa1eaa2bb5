package services

import (
	"time"

	"wellness/backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StartOfDay truncates t to midnight UTC. All daily entries are keyed
// by this normalized value; there are no partial-day semantics.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// HabitEntryPatch carries the fields of a habit log request. Nil means
// "leave as is" on an existing entry.
type HabitEntryPatch struct {
	Completed *bool
	Value     *int
	Notes     *string
}

// MoodEntryPatch carries the fields of a mood log request.
type MoodEntryPatch struct {
	Mood   *string
	Energy *int
	Stress *int
	Sleep  *float64
	Notes  *string
}

// UpsertDailyHabitEntry finds or creates the single entry for
// (habitID, day) and merges patch into it. Repeated calls the same day
// collapse into one row, last write wins. The unique index on
// (habit_id, day) plus ON CONFLICT closes the find-then-create race:
// two concurrent first-writes land on the same row.
func UpsertDailyHabitEntry(db *gorm.DB, userID, habitID uint, day time.Time, patch HabitEntryPatch) (*models.HabitEntry, error) {
	if patch.Value != nil && *patch.Value < 0 {
		return nil, invalid("value", "must be a non-negative integer")
	}

	start := StartOfDay(day)
	next := start.AddDate(0, 0, 1)

	var entry models.HabitEntry
	err := db.Where("habit_id = ? AND day >= ? AND day < ?", habitID, start, next).
		First(&entry).Error
	if err == nil {
		updates := map[string]interface{}{}
		if patch.Completed != nil {
			updates["completed"] = *patch.Completed
		}
		if patch.Value != nil {
			updates["value"] = *patch.Value
		}
		if patch.Notes != nil {
			updates["notes"] = *patch.Notes
		}
		if len(updates) > 0 {
			if err := db.Model(&entry).Updates(updates).Error; err != nil {
				return nil, err
			}
		}
		return &entry, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	entry = models.HabitEntry{
		HabitID: habitID,
		UserID:  userID,
		Day:     start,
	}
	cols := []string{}
	if patch.Completed != nil {
		entry.Completed = *patch.Completed
		cols = append(cols, "completed")
	}
	if patch.Value != nil {
		entry.Value = *patch.Value
		cols = append(cols, "value")
	}
	if patch.Notes != nil {
		entry.Notes = *patch.Notes
		cols = append(cols, "notes")
	}

	conflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "habit_id"}, {Name: "day"}},
		DoNothing: len(cols) == 0,
		DoUpdates: clause.AssignmentColumns(cols),
	}
	if err := db.Clauses(conflict).Create(&entry).Error; err != nil {
		return nil, err
	}

	// Перечитываем: при конфликте Create обновил чужую строку,
	// а entry.ID остался нулевым.
	if err := db.Where("habit_id = ? AND day = ?", habitID, start).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpsertDailyMoodEntry is the same upsert keyed by (user_id, day) only.
func UpsertDailyMoodEntry(db *gorm.DB, userID uint, day time.Time, patch MoodEntryPatch) (*models.MoodEntry, error) {
	if patch.Mood != nil && !models.ValidMood(*patch.Mood) {
		return nil, invalid("mood", "unknown mood value")
	}
	if patch.Energy != nil && (*patch.Energy < 1 || *patch.Energy > 10) {
		return nil, invalid("energy", "must be between 1 and 10")
	}
	if patch.Stress != nil && (*patch.Stress < 1 || *patch.Stress > 10) {
		return nil, invalid("stress", "must be between 1 and 10")
	}

	start := StartOfDay(day)
	next := start.AddDate(0, 0, 1)

	var entry models.MoodEntry
	err := db.Where("user_id = ? AND day >= ? AND day < ?", userID, start, next).
		First(&entry).Error
	if err == nil {
		updates := map[string]interface{}{}
		if patch.Mood != nil {
			updates["mood"] = *patch.Mood
		}
		if patch.Energy != nil {
			updates["energy"] = *patch.Energy
		}
		if patch.Stress != nil {
			updates["stress"] = *patch.Stress
		}
		if patch.Sleep != nil {
			updates["sleep"] = *patch.Sleep
		}
		if patch.Notes != nil {
			updates["notes"] = *patch.Notes
		}
		if len(updates) > 0 {
			if err := db.Model(&entry).Updates(updates).Error; err != nil {
				return nil, err
			}
		}
		return &entry, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	// Новая запись дня обязана нести настроение, энергию и стресс;
	// опциональны только сон и заметки.
	if patch.Mood == nil {
		return nil, invalid("mood", "required for the first log of the day")
	}
	if patch.Energy == nil {
		return nil, invalid("energy", "required for the first log of the day")
	}
	if patch.Stress == nil {
		return nil, invalid("stress", "required for the first log of the day")
	}

	entry = models.MoodEntry{
		UserID: userID,
		Day:    start,
		Mood:   *patch.Mood,
		Energy: *patch.Energy,
		Stress: *patch.Stress,
	}
	cols := []string{"mood", "energy", "stress"}
	if patch.Sleep != nil {
		entry.Sleep = patch.Sleep
		cols = append(cols, "sleep")
	}
	if patch.Notes != nil {
		entry.Notes = *patch.Notes
		cols = append(cols, "notes")
	}

	conflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "day"}},
		DoUpdates: clause.AssignmentColumns(cols),
	}
	if err := db.Clauses(conflict).Create(&entry).Error; err != nil {
		return nil, err
	}
	if err := db.Where("user_id = ? AND day = ?", userID, start).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}
