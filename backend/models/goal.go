package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusPaused    = "paused"
	GoalStatusCancelled = "cancelled"
)

// ValidGoalStatus reports whether s is one of the recognized statuses.
func ValidGoalStatus(s string) bool {
	switch s {
	case GoalStatusActive, GoalStatusCompleted, GoalStatusPaused, GoalStatusCancelled:
		return true
	}
	return false
}

type Goal struct {
	gorm.Model
	UserID       uint   `gorm:"index"`
	Title        string `gorm:"not null"`
	Description  string
	Category     string
	TargetValue  int `gorm:"not null"`
	CurrentValue int `gorm:"default:0"`
	Unit         string // km, books, sessions, ...
	Deadline     time.Time
	Status       string `gorm:"default:active"`

	Milestones  []Milestone    `gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE"`
	ProgressLog []GoalProgress `gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE"`
}

type Milestone struct {
	gorm.Model
	GoalID      uint `gorm:"index"`
	Position    int
	Title       string
	TargetValue int
	Completed   bool `gorm:"default:false"`
	CompletedAt *time.Time
}

// GoalProgress is one appended progress record; rows keep insertion order.
type GoalProgress struct {
	gorm.Model
	GoalID uint `gorm:"index"`
	Day    time.Time
	Value  int
	Notes  string
}
