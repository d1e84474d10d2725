package models

import "time"

// DefaultHabitColor is applied when a habit is created without an explicit
// display color. Purely a UI hint; core logic never inspects it.
const DefaultHabitColor = "#4F46E5"

// Habit is a trackable behavior owned by exactly one user.
type Habit struct {
	ID int64 `json:"id"`

	// UserID is the owning user. Internal; ownership is conveyed by the
	// authenticated route, not by the response body.
	UserID int64 `json:"-"`

	// Name is unique per user, 1–255 characters.
	Name string `json:"name"`

	Description *string `json:"description,omitempty"`

	Frequency Frequency `json:"frequency"`

	Category *string `json:"category,omitempty"`

	Color string `json:"color"`

	// IsActive soft-scopes the habit out of default listings without
	// deleting its history.
	IsActive bool `json:"isActive"`

	// TrackedToday is derived on read: true when a tracking record for
	// this habit falls within the current tracking day. Never persisted.
	TrackedToday bool `json:"trackedToday"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HabitUpdate carries a partial habit update down to the storage layer.
// Nil fields are left unchanged.
type HabitUpdate struct {
	Name        *string
	Description *string
	Frequency   *Frequency
	Category    *string
	Color       *string
	IsActive    *bool
}

// Empty reports whether the update would change nothing.
func (u HabitUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Frequency == nil &&
		u.Category == nil && u.Color == nil && u.IsActive == nil
}

// TableName returns the name of the database table
// associated with the Habit model.
func (h Habit) TableName() string {
	return "habits"
}
