package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	MoodExcellent = "excellent"
	MoodGood      = "good"
	MoodOkay      = "okay"
	MoodPoor      = "poor"
	MoodTerrible  = "terrible"
)

// ValidMood reports whether s is one of the recognized mood values.
func ValidMood(s string) bool {
	switch s {
	case MoodExcellent, MoodGood, MoodOkay, MoodPoor, MoodTerrible:
		return true
	}
	return false
}

// MoodEntry is one day's mood log, unique per (user_id, day).
type MoodEntry struct {
	gorm.Model
	UserID uint      `gorm:"index:idx_mood_entry_day,unique"`
	Day    time.Time `gorm:"index:idx_mood_entry_day,unique"`
	Mood   string    `gorm:"not null"`
	Energy int       // 1..10
	Stress int       // 1..10
	Sleep  *float64  // hours, optional
	Notes  string
}
