package models

import "time"

// HabitGoal is a consistency target for a habit over a rolling period.
// At most one goal exists per (habit, goal type) pair.
type HabitGoal struct {
	ID      int64 `json:"id"`
	HabitID int64 `json:"habitId"`
	UserID  int64 `json:"-"`

	// TargetFrequency is the number of completions expected within the
	// goal period. Always positive.
	TargetFrequency int `json:"targetFrequency"`

	GoalType GoalType `json:"goalType"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GoalProgress is the computed-on-read evaluation of a goal against the
// current period. Never persisted.
type GoalProgress struct {
	Goal HabitGoal `json:"goal"`

	// Completions is the raw count of tracking records within the current
	// period. Reported uncapped even when it exceeds the target.
	Completions int `json:"completions"`

	TargetFrequency int `json:"targetFrequency"`

	// Percentage is round(completions/target*100), capped at 100.
	Percentage int `json:"percentage"`

	// PeriodStart is the beginning of the current goal period (most recent
	// Monday, first of month, or January 1) in the tracking-day offset.
	PeriodStart time.Time `json:"periodStart"`
}

// TableName returns the name of the database table
// associated with the HabitGoal model.
func (g HabitGoal) TableName() string {
	return "habit_goals"
}
