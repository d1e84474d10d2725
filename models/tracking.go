package models

import "time"

// HabitTracking is a single completion event for a habit on one tracking day.
//
// Records are append-only: they are created by the log-completion operation,
// never updated, and at most one record exists per habit per tracking day.
type HabitTracking struct {
	ID      int64 `json:"id"`
	HabitID int64 `json:"habitId"`

	// UserID denormalizes the owning user for query convenience.
	UserID int64 `json:"-"`

	// CompletedAt is the authoritative moment of completion, used for
	// tracking-day bucketing.
	CompletedAt time.Time `json:"completedAt"`

	Notes *string `json:"notes,omitempty"`

	// Streak is the consecutive-tracking-day count as of this record.
	// It is a point-in-time snapshot written at log time, not a live value.
	Streak int `json:"streak"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the HabitTracking model.
func (t HabitTracking) TableName() string {
	return "habit_tracking"
}
