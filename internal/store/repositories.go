package store

import "github.com/dmarkin/habitrack/internal/logger"

// Repositories bundles every repository implementation behind its interface,
// all sharing the single injected *DB handle.
type Repositories struct {
	UserRepository         UserRepository
	RefreshTokenRepository RefreshTokenRepository
	HabitRepository        HabitRepository
	TrackingRepository     TrackingRepository
	GoalRepository         GoalRepository
}

// NewRepositories constructs all repositories over the shared database
// connection.
func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db, logger),
		RefreshTokenRepository: NewRefreshTokenRepository(db, logger),
		HabitRepository:        NewHabitRepository(db, logger),
		TrackingRepository:     NewTrackingRepository(db, logger),
		GoalRepository:         NewGoalRepository(db, logger),
	}
}
