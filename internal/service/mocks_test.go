package service

import (
	"context"
	"errors"
	"time"

	"github.com/dmarkin/habitrack/models"
)

// Hand-rolled repository mocks: each method delegates to an optional fn
// field, so a test overrides only what it cares about.

var errStorage = errors.New("storage error")

type mockUserRepository struct {
	createUserFn      func(ctx context.Context, user models.User) (models.User, error)
	findUserByEmailFn func(ctx context.Context, email string) (models.User, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findUserByEmailFn != nil {
		return m.findUserByEmailFn(ctx, email)
	}
	return models.User{}, nil
}

type mockRefreshTokenRepository struct {
	saveFn             func(ctx context.Context, token models.RefreshToken) error
	findFn             func(ctx context.Context, token string) (models.RefreshToken, error)
	deleteFn           func(ctx context.Context, token string) (bool, error)
	deleteAllForUserFn func(ctx context.Context, userID int64) error
}

func (m *mockRefreshTokenRepository) Save(ctx context.Context, token models.RefreshToken) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, token)
	}
	return nil
}

func (m *mockRefreshTokenRepository) Find(ctx context.Context, token string) (models.RefreshToken, error) {
	if m.findFn != nil {
		return m.findFn(ctx, token)
	}
	return models.RefreshToken{}, nil
}

func (m *mockRefreshTokenRepository) Delete(ctx context.Context, token string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, token)
	}
	return true, nil
}

func (m *mockRefreshTokenRepository) DeleteAllForUser(ctx context.Context, userID int64) error {
	if m.deleteAllForUserFn != nil {
		return m.deleteAllForUserFn(ctx, userID)
	}
	return nil
}

type mockHabitRepository struct {
	createFn        func(ctx context.Context, habit models.Habit) (models.Habit, error)
	findAllByUserFn func(ctx context.Context, userID int64, isActive *bool) ([]models.Habit, error)
	findByIDFn      func(ctx context.Context, id int64) (models.Habit, error)
	updateFn        func(ctx context.Context, id int64, update models.HabitUpdate) (models.Habit, error)
	deleteFn        func(ctx context.Context, id int64) error
}

func (m *mockHabitRepository) Create(ctx context.Context, habit models.Habit) (models.Habit, error) {
	if m.createFn != nil {
		return m.createFn(ctx, habit)
	}
	return habit, nil
}

func (m *mockHabitRepository) FindAllByUser(ctx context.Context, userID int64, isActive *bool) ([]models.Habit, error) {
	if m.findAllByUserFn != nil {
		return m.findAllByUserFn(ctx, userID, isActive)
	}
	return nil, nil
}

func (m *mockHabitRepository) FindByID(ctx context.Context, id int64) (models.Habit, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return models.Habit{ID: id}, nil
}

func (m *mockHabitRepository) Update(ctx context.Context, id int64, update models.HabitUpdate) (models.Habit, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, update)
	}
	return models.Habit{ID: id}, nil
}

func (m *mockHabitRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockTrackingRepository struct {
	createFn          func(ctx context.Context, tracking models.HabitTracking, dayIndex int64) (models.HabitTracking, error)
	existsInRangeFn   func(ctx context.Context, habitID int64, from, to time.Time) (bool, error)
	findLatestFn      func(ctx context.Context, habitID int64) (models.HabitTracking, error)
	findHistoryFn     func(ctx context.Context, habitID int64, limit int, from, to *time.Time) ([]models.HabitTracking, error)
	findByUserRangeFn func(ctx context.Context, userID int64, from, to time.Time) ([]models.HabitTracking, error)
	countInRangeFn    func(ctx context.Context, habitID int64, from, to time.Time) (int, error)
	deleteFn          func(ctx context.Context, id, userID int64) error
}

func (m *mockTrackingRepository) Create(ctx context.Context, tracking models.HabitTracking, dayIndex int64) (models.HabitTracking, error) {
	if m.createFn != nil {
		return m.createFn(ctx, tracking, dayIndex)
	}
	return tracking, nil
}

func (m *mockTrackingRepository) ExistsInRange(ctx context.Context, habitID int64, from, to time.Time) (bool, error) {
	if m.existsInRangeFn != nil {
		return m.existsInRangeFn(ctx, habitID, from, to)
	}
	return false, nil
}

func (m *mockTrackingRepository) FindLatest(ctx context.Context, habitID int64) (models.HabitTracking, error) {
	if m.findLatestFn != nil {
		return m.findLatestFn(ctx, habitID)
	}
	return models.HabitTracking{}, nil
}

func (m *mockTrackingRepository) FindHistory(ctx context.Context, habitID int64, limit int, from, to *time.Time) ([]models.HabitTracking, error) {
	if m.findHistoryFn != nil {
		return m.findHistoryFn(ctx, habitID, limit, from, to)
	}
	return nil, nil
}

func (m *mockTrackingRepository) FindByUserInRange(ctx context.Context, userID int64, from, to time.Time) ([]models.HabitTracking, error) {
	if m.findByUserRangeFn != nil {
		return m.findByUserRangeFn(ctx, userID, from, to)
	}
	return nil, nil
}

func (m *mockTrackingRepository) CountInRange(ctx context.Context, habitID int64, from, to time.Time) (int, error) {
	if m.countInRangeFn != nil {
		return m.countInRangeFn(ctx, habitID, from, to)
	}
	return 0, nil
}

func (m *mockTrackingRepository) Delete(ctx context.Context, id, userID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, userID)
	}
	return nil
}

type mockGoalRepository struct {
	createFn             func(ctx context.Context, goal models.HabitGoal) (models.HabitGoal, error)
	findByHabitFn        func(ctx context.Context, habitID int64) ([]models.HabitGoal, error)
	findByHabitAndTypeFn func(ctx context.Context, habitID int64, goalType models.GoalType) (models.HabitGoal, error)
	findByIDFn           func(ctx context.Context, id int64) (models.HabitGoal, error)
	updateFn             func(ctx context.Context, id int64, targetFrequency int) (models.HabitGoal, error)
	deleteFn             func(ctx context.Context, id int64) error
}

func (m *mockGoalRepository) Create(ctx context.Context, goal models.HabitGoal) (models.HabitGoal, error) {
	if m.createFn != nil {
		return m.createFn(ctx, goal)
	}
	return goal, nil
}

func (m *mockGoalRepository) FindByHabit(ctx context.Context, habitID int64) ([]models.HabitGoal, error) {
	if m.findByHabitFn != nil {
		return m.findByHabitFn(ctx, habitID)
	}
	return nil, nil
}

func (m *mockGoalRepository) FindByHabitAndType(ctx context.Context, habitID int64, goalType models.GoalType) (models.HabitGoal, error) {
	if m.findByHabitAndTypeFn != nil {
		return m.findByHabitAndTypeFn(ctx, habitID, goalType)
	}
	return models.HabitGoal{}, nil
}

func (m *mockGoalRepository) FindByID(ctx context.Context, id int64) (models.HabitGoal, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return models.HabitGoal{ID: id}, nil
}

func (m *mockGoalRepository) Update(ctx context.Context, id int64, targetFrequency int) (models.HabitGoal, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, targetFrequency)
	}
	return models.HabitGoal{ID: id, TargetFrequency: targetFrequency}, nil
}

func (m *mockGoalRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}
