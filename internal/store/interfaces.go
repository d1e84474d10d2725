package store

import (
	"context"
	"time"

	"github.com/dmarkin/habitrack/models"
)

// UserRepository persists and retrieves user accounts.
type UserRepository interface {
	// CreateUser persists a new user and returns it with server-assigned
	// fields populated. Returns ErrEmailAlreadyExists on a duplicate email.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail returns the user with the given email or
	// ErrNoUserWasFound.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}

// RefreshTokenRepository is the source of truth for refresh-token validity.
type RefreshTokenRepository interface {
	// Save persists a newly issued refresh token record.
	Save(ctx context.Context, token models.RefreshToken) error

	// Find returns the stored record for the given token string or
	// ErrRefreshTokenNotFound.
	Find(ctx context.Context, token string) (models.RefreshToken, error)

	// Delete removes the record for the given token string. The boolean
	// reports whether a record existed; deleting an absent token is not an
	// error (revocation is idempotent).
	Delete(ctx context.Context, token string) (bool, error)

	// DeleteAllForUser removes every refresh token owned by the user.
	DeleteAllForUser(ctx context.Context, userID int64) error
}

// HabitRepository persists habits.
type HabitRepository interface {
	// Create persists a new habit. Returns ErrHabitNameTaken when the
	// per-user name uniqueness constraint is violated.
	Create(ctx context.Context, habit models.Habit) (models.Habit, error)

	// FindAllByUser returns the user's habits ordered newest-first,
	// optionally restricted by the isActive flag.
	FindAllByUser(ctx context.Context, userID int64, isActive *bool) ([]models.Habit, error)

	// FindByID returns a single habit or ErrHabitNotFound.
	FindByID(ctx context.Context, id int64) (models.Habit, error)

	// Update applies a partial update and returns the updated habit.
	// Returns ErrHabitNotFound if the row does not exist and
	// ErrHabitNameTaken on a name conflict.
	Update(ctx context.Context, id int64, update models.HabitUpdate) (models.Habit, error)

	// Delete removes the habit; tracking records and goals cascade at the
	// storage layer. Returns ErrHabitNotFound if the row does not exist.
	Delete(ctx context.Context, id int64) error
}

// TrackingRepository persists habit completion records.
type TrackingRepository interface {
	// Create inserts a tracking record with its day-bucket index.
	// Returns ErrDuplicateTracking when the (habit_id, day_index) unique
	// constraint is violated.
	Create(ctx context.Context, tracking models.HabitTracking, dayIndex int64) (models.HabitTracking, error)

	// ExistsInRange reports whether any record for the habit has a
	// completion time within [from, to].
	ExistsInRange(ctx context.Context, habitID int64, from, to time.Time) (bool, error)

	// FindLatest returns the habit's most recent record by completion time,
	// or ErrTrackingNotFound when none exists.
	FindLatest(ctx context.Context, habitID int64) (models.HabitTracking, error)

	// FindHistory returns up to limit records for the habit, descending by
	// completion time, optionally bounded by an inclusive range.
	FindHistory(ctx context.Context, habitID int64, limit int, from, to *time.Time) ([]models.HabitTracking, error)

	// FindByUserInRange returns all of the user's records with completion
	// time within [from, to], across all habits. Used to batch the
	// tracked-today computation in a single round trip.
	FindByUserInRange(ctx context.Context, userID int64, from, to time.Time) ([]models.HabitTracking, error)

	// CountInRange counts the habit's records with completion time within
	// [from, to].
	CountInRange(ctx context.Context, habitID int64, from, to time.Time) (int, error)

	// Delete removes a single tracking record owned by userID. Returns
	// ErrTrackingNotFound if no such row exists for that owner.
	Delete(ctx context.Context, id, userID int64) error
}

// GoalRepository persists habit goals.
type GoalRepository interface {
	// Create persists a new goal. Returns ErrDuplicateGoal when a goal of
	// the same type already exists for the habit.
	Create(ctx context.Context, goal models.HabitGoal) (models.HabitGoal, error)

	// FindByHabit returns all goals defined for the habit.
	FindByHabit(ctx context.Context, habitID int64) ([]models.HabitGoal, error)

	// FindByHabitAndType returns the goal of the given type for the habit,
	// or ErrGoalNotFound.
	FindByHabitAndType(ctx context.Context, habitID int64, goalType models.GoalType) (models.HabitGoal, error)

	// FindByID returns a single goal or ErrGoalNotFound.
	FindByID(ctx context.Context, id int64) (models.HabitGoal, error)

	// Update changes the goal's target frequency. Returns ErrGoalNotFound
	// if the row does not exist.
	Update(ctx context.Context, id int64, targetFrequency int) (models.HabitGoal, error)

	// Delete removes the goal. Returns ErrGoalNotFound if the row does
	// not exist.
	Delete(ctx context.Context, id int64) error
}
