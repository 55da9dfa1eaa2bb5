package models

import (
	"time"

	"gorm.io/gorm"
)

type Habit struct {
	gorm.Model
	UserID      uint   `gorm:"index"`
	Name        string `gorm:"not null"`
	Description string
	Category    string // health, fitness, mindfulness, productivity, other
	Target      int    `gorm:"default:1"` // per-day target value

	// Кэшированная статистика: обновляется только при записи
	// habit entry, никогда не пересчитывается из истории на чтении.
	TotalCompletions int `gorm:"default:0"`
	CurrentStreak    int `gorm:"default:0"`
	LongestStreak    int `gorm:"default:0"`
	LastCompleted    *time.Time

	Entries []HabitEntry `gorm:"foreignKey:HabitID;constraint:OnDelete:CASCADE"`
}

// HabitEntry is one day's log for a habit. Day is truncated to UTC
// midnight; the unique index on (habit_id, day) makes the daily upsert
// race-free.
type HabitEntry struct {
	gorm.Model
	HabitID   uint      `gorm:"index:idx_habit_entry_day,unique"`
	UserID    uint      `gorm:"index"`
	Day       time.Time `gorm:"index:idx_habit_entry_day,unique"`
	Completed bool      `gorm:"default:false"`
	Value     int       `gorm:"default:0"`
	Notes     string
}
