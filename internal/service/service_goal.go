package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/dmarkin/habitrack/internal/logger"
	"github.com/dmarkin/habitrack/internal/store"
	"github.com/dmarkin/habitrack/internal/utils"
	"github.com/dmarkin/habitrack/models"
)

// goalService is the concrete implementation of GoalService.
//
// Progress is always computed on read against the current period anchored
// to wall-clock "now"; nothing derived is ever stored.
type goalService struct {
	goalRepository     store.GoalRepository
	habitRepository    store.HabitRepository
	trackingRepository store.TrackingRepository
	logger             *logger.Logger
}

// NewGoalService constructs a GoalService over the given repositories.
func NewGoalService(goals store.GoalRepository, habits store.HabitRepository, tracking store.TrackingRepository, logger *logger.Logger) GoalService {
	return &goalService{
		goalRepository:     goals,
		habitRepository:    habits,
		trackingRepository: tracking,
		logger:             logger,
	}
}

// Create persists a new goal for an owned habit.
//
// Returns ErrInvalidDataProvided for a non-positive target or unknown goal
// type, and store.ErrDuplicateGoal when a goal of that type already exists
// for the habit.
func (s *goalService) Create(ctx context.Context, userID, habitID int64, req models.CreateGoalRequest) (models.HabitGoal, error) {
	log := logger.FromContext(ctx)

	if req.TargetFrequency <= 0 {
		log.Error().Int("target_frequency", req.TargetFrequency).Msg("invalid goal target provided")
		return models.HabitGoal{}, ErrInvalidDataProvided
	}

	goalType := models.GoalType(req.GoalType)
	if !goalType.Valid() {
		log.Error().Str("goal_type", req.GoalType).Msg("invalid goal type provided")
		return models.HabitGoal{}, ErrInvalidDataProvided
	}

	if _, err := s.ownedHabit(ctx, userID, habitID); err != nil {
		return models.HabitGoal{}, err
	}

	goal := models.HabitGoal{
		HabitID:         habitID,
		UserID:          userID,
		TargetFrequency: req.TargetFrequency,
		GoalType:        goalType,
	}

	created, err := s.goalRepository.Create(ctx, goal)
	if err != nil {
		log.Err(err).Int64("habit_id", habitID).Msg("goal creation ended with error")
		return models.HabitGoal{}, fmt.Errorf("goal creation ended with error: %w", err)
	}

	return created, nil
}

// FindByHabit returns all goals defined for an owned habit.
func (s *goalService) FindByHabit(ctx context.Context, userID, habitID int64) ([]models.HabitGoal, error) {
	log := logger.FromContext(ctx)

	if _, err := s.ownedHabit(ctx, userID, habitID); err != nil {
		return nil, err
	}

	goals, err := s.goalRepository.FindByHabit(ctx, habitID)
	if err != nil {
		log.Err(err).Int64("habit_id", habitID).Msg("goal listing ended with error")
		return nil, fmt.Errorf("goal listing ended with error: %w", err)
	}

	return goals, nil
}

// Update changes an owned goal's target frequency.
func (s *goalService) Update(ctx context.Context, userID, goalID int64, req models.UpdateGoalRequest) (models.HabitGoal, error) {
	log := logger.FromContext(ctx)

	if req.TargetFrequency == nil {
		return s.ownedGoal(ctx, userID, goalID)
	}

	if *req.TargetFrequency <= 0 {
		log.Error().Int("target_frequency", *req.TargetFrequency).Msg("invalid goal target provided")
		return models.HabitGoal{}, ErrInvalidDataProvided
	}

	if _, err := s.ownedGoal(ctx, userID, goalID); err != nil {
		return models.HabitGoal{}, err
	}

	updated, err := s.goalRepository.Update(ctx, goalID, *req.TargetFrequency)
	if err != nil {
		log.Err(err).Int64("goal_id", goalID).Msg("goal update ended with error")
		return models.HabitGoal{}, fmt.Errorf("goal update ended with error: %w", err)
	}

	return updated, nil
}

// Delete removes an owned goal.
func (s *goalService) Delete(ctx context.Context, userID, goalID int64) error {
	log := logger.FromContext(ctx)

	if _, err := s.ownedGoal(ctx, userID, goalID); err != nil {
		return err
	}

	if err := s.goalRepository.Delete(ctx, goalID); err != nil {
		log.Err(err).Int64("goal_id", goalID).Msg("goal deletion ended with error")
		return fmt.Errorf("goal deletion ended with error: %w", err)
	}

	return nil
}

// GetProgress evaluates the habit's goal of the given type against the
// current period.
//
// The period start is anchored to now in the tracking offset: the most
// recent Monday for weekly goals, the first of the calendar month for
// monthly, January 1 for yearly, each clamped to midnight. Completions
// within [periodStart, now] are counted; the percentage is rounded and
// capped at 100 while the raw count is reported uncapped.
//
// Returns store.ErrGoalNotFound when no goal of that type exists.
func (s *goalService) GetProgress(ctx context.Context, userID, habitID int64, goalType models.GoalType) (models.GoalProgress, error) {
	log := logger.FromContext(ctx)

	if !goalType.Valid() {
		log.Error().Str("goal_type", string(goalType)).Msg("invalid goal type provided")
		return models.GoalProgress{}, ErrInvalidDataProvided
	}

	if _, err := s.ownedHabit(ctx, userID, habitID); err != nil {
		return models.GoalProgress{}, err
	}

	goal, err := s.goalRepository.FindByHabitAndType(ctx, habitID, goalType)
	if err != nil {
		return models.GoalProgress{}, err
	}

	now := time.Now()
	periodStart := periodStart(now, goalType)

	completions, err := s.trackingRepository.CountInRange(ctx, habitID, periodStart, now)
	if err != nil {
		log.Err(err).Int64("habit_id", habitID).Msg("progress count ended with error")
		return models.GoalProgress{}, fmt.Errorf("progress count ended with error: %w", err)
	}

	percentage := int(math.Round(float64(completions) / float64(goal.TargetFrequency) * 100))
	if percentage > 100 {
		percentage = 100
	}

	return models.GoalProgress{
		Goal:            goal,
		Completions:     completions,
		TargetFrequency: goal.TargetFrequency,
		Percentage:      percentage,
		PeriodStart:     periodStart,
	}, nil
}

// periodStart computes the beginning of the current goal period in the
// tracking offset, so that period boundaries agree with day buckets.
func periodStart(now time.Time, goalType models.GoalType) time.Time {
	local := now.In(utils.TrackingLocation)

	switch goalType {
	case models.GoalTypeWeekly:
		daysBack := int(local.Weekday()) - 1
		if local.Weekday() == time.Sunday {
			daysBack = 6
		}
		monday := local.AddDate(0, 0, -daysBack)
		return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, utils.TrackingLocation)
	case models.GoalTypeMonthly:
		return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, utils.TrackingLocation)
	default: // yearly
		return time.Date(local.Year(), time.January, 1, 0, 0, 0, 0, utils.TrackingLocation)
	}
}

// ownedHabit fetches the habit and verifies ownership, reporting a foreign
// habit as store.ErrHabitNotFound.
func (s *goalService) ownedHabit(ctx context.Context, userID, habitID int64) (models.Habit, error) {
	habit, err := s.habitRepository.FindByID(ctx, habitID)
	if err != nil {
		return models.Habit{}, err
	}

	if habit.UserID != userID {
		return models.Habit{}, store.ErrHabitNotFound
	}

	return habit, nil
}

// ownedGoal fetches the goal and verifies ownership, reporting a foreign
// goal as store.ErrGoalNotFound.
func (s *goalService) ownedGoal(ctx context.Context, userID, goalID int64) (models.HabitGoal, error) {
	goal, err := s.goalRepository.FindByID(ctx, goalID)
	if err != nil {
		return models.HabitGoal{}, err
	}

	if goal.UserID != userID {
		return models.HabitGoal{}, store.ErrGoalNotFound
	}

	return goal, nil
}
