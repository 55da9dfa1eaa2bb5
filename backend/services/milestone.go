package services

import (
	"time"

	"wellness/backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ApplyProgress appends a progress record to the goal and advances its
// counters. delta must be non-negative; nothing is written otherwise.
//
// Once CurrentValue reaches TargetValue while the goal is active, the
// status flips to completed. That transition is one-way: later calls
// never revert it. Every still-open milestone whose target is now
// covered flips in the same call; milestones are independent, so the
// evaluation order does not matter.
//
// goal.Milestones must be preloaded by the caller.
func ApplyProgress(db *gorm.DB, goal *models.Goal, delta int, notes string, now time.Time) error {
	if delta < 0 {
		return invalid("value", "must be a non-negative integer")
	}

	record := models.GoalProgress{
		GoalID: goal.ID,
		Day:    now,
		Value:  delta,
		Notes:  notes,
	}
	if err := db.Create(&record).Error; err != nil {
		return err
	}
	goal.ProgressLog = append(goal.ProgressLog, record)
	goal.CurrentValue += delta

	if goal.CurrentValue >= goal.TargetValue && goal.Status == models.GoalStatusActive {
		goal.Status = models.GoalStatusCompleted
	}

	for i := range goal.Milestones {
		m := &goal.Milestones[i]
		if m.Completed || goal.CurrentValue < m.TargetValue {
			continue
		}
		m.Completed = true
		t := now
		m.CompletedAt = &t
		if err := db.Save(m).Error; err != nil {
			return err
		}
	}

	return db.Omit(clause.Associations).Save(goal).Error
}
