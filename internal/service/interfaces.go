package service

import (
	"context"
	"time"

	"github.com/dmarkin/habitrack/models"
)

// AuthService owns account creation, credential verification and the
// refresh-token lifecycle (issuance, rotation, revocation).
type AuthService interface {
	// Register creates a new account and issues the initial token pair.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, models.TokenPair, error)

	// Login verifies credentials and issues a token pair. Unknown email
	// and wrong password both yield ErrInvalidCredentials.
	Login(ctx context.Context, req models.LoginRequest) (models.User, models.TokenPair, error)

	// Refresh rotates the presented refresh token: the old token is
	// atomically retired and a new pair is issued. A rotated-out, revoked,
	// expired or unknown token yields ErrInvalidRefreshToken.
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)

	// Logout revokes the presented refresh token. Idempotent: revoking an
	// absent token is not an error.
	Logout(ctx context.Context, refreshToken string) error

	// LogoutAll revokes every refresh token owned by the user.
	LogoutAll(ctx context.Context, userID int64) error

	// ParseAccessToken validates an access token and returns its claims.
	ParseAccessToken(ctx context.Context, tokenString string) (*models.TokenClaims, error)
}

// HabitService owns habit CRUD, always scoped to the owning user, enriched
// with the derived trackedToday flag.
type HabitService interface {
	Create(ctx context.Context, userID int64, req models.CreateHabitRequest) (models.Habit, error)

	// FindAll returns the user's habits newest-first, with trackedToday
	// computed for the whole listing in a single tracking query.
	FindAll(ctx context.Context, userID int64, isActive *bool) ([]models.Habit, error)

	FindByID(ctx context.Context, userID, habitID int64) (models.Habit, error)
	Update(ctx context.Context, userID, habitID int64, req models.UpdateHabitRequest) (models.Habit, error)
	Delete(ctx context.Context, userID, habitID int64) error
}

// TrackingService records completions and computes consecutive-day streaks.
type TrackingService interface {
	// LogCompletion records one completion for the habit's tracking day,
	// rejecting duplicates within the same day and writing the computed
	// streak snapshot.
	LogCompletion(ctx context.Context, userID, habitID int64, req models.TrackHabitRequest) (models.HabitTracking, error)

	// GetHistory returns up to limit records descending by completion
	// time, optionally bounded by an inclusive date range.
	GetHistory(ctx context.Context, userID, habitID int64, limit int, from, to *time.Time) ([]models.HabitTracking, error)

	// GetStreak returns the streak snapshot of the most recent record, or
	// 0 when the habit has never been tracked.
	GetStreak(ctx context.Context, userID, habitID int64) (int, error)

	// Delete removes a single tracking record.
	Delete(ctx context.Context, userID, trackingID int64) error
}

// GoalService defines and evaluates consistency targets.
type GoalService interface {
	Create(ctx context.Context, userID, habitID int64, req models.CreateGoalRequest) (models.HabitGoal, error)
	FindByHabit(ctx context.Context, userID, habitID int64) ([]models.HabitGoal, error)
	Update(ctx context.Context, userID, goalID int64, req models.UpdateGoalRequest) (models.HabitGoal, error)
	Delete(ctx context.Context, userID, goalID int64) error

	// GetProgress evaluates the habit's goal of the given type against the
	// current period anchored to now.
	GetProgress(ctx context.Context, userID, habitID int64, goalType models.GoalType) (models.GoalProgress, error)
}
