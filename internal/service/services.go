package service

import (
	"github.com/dmarkin/habitrack/internal/logger"
	"github.com/dmarkin/habitrack/internal/store"
	"github.com/dmarkin/habitrack/internal/utils"
)

// Services bundles every service implementation behind its interface.
type Services struct {
	AuthService     AuthService
	HabitService    HabitService
	TrackingService TrackingService
	GoalService     GoalService
}

// NewServices constructs all services over the shared repositories and the
// two token signers.
func NewServices(repos *store.Repositories, accessSigner, refreshSigner *utils.TokenSigner, logger *logger.Logger) *Services {
	return &Services{
		AuthService:     NewAuthService(repos.UserRepository, repos.RefreshTokenRepository, accessSigner, refreshSigner, logger),
		HabitService:    NewHabitService(repos.HabitRepository, repos.TrackingRepository, logger),
		TrackingService: NewTrackingService(repos.TrackingRepository, repos.HabitRepository, logger),
		GoalService:     NewGoalService(repos.GoalRepository, repos.HabitRepository, repos.TrackingRepository, logger),
	}
}
