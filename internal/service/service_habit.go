package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dmarkin/habitrack/internal/logger"
	"github.com/dmarkin/habitrack/internal/store"
	"github.com/dmarkin/habitrack/internal/utils"
	"github.com/dmarkin/habitrack/models"
)

// habitService is the concrete implementation of HabitService.
//
// Every operation is scoped to the owning user: a habit that exists but
// belongs to someone else is reported as not found, never as forbidden.
type habitService struct {
	habitRepository    store.HabitRepository
	trackingRepository store.TrackingRepository
	logger             *logger.Logger
}

// NewHabitService constructs a HabitService over the given repositories.
func NewHabitService(habits store.HabitRepository, tracking store.TrackingRepository, logger *logger.Logger) HabitService {
	return &habitService{
		habitRepository:    habits,
		trackingRepository: tracking,
		logger:             logger,
	}
}

// Create persists a new habit owned by userID. TrackedToday is always false
// on creation: a completion cannot predate the habit.
func (s *habitService) Create(ctx context.Context, userID int64, req models.CreateHabitRequest) (models.Habit, error) {
	log := logger.FromContext(ctx)

	if req.Name == "" || len(req.Name) > 255 {
		log.Error().Int64("user_id", userID).Msg("invalid habit name provided")
		return models.Habit{}, ErrInvalidDataProvided
	}

	frequency := models.Frequency(req.Frequency)
	if !frequency.Valid() {
		log.Error().Str("frequency", req.Frequency).Msg("invalid habit frequency provided")
		return models.Habit{}, ErrInvalidDataProvided
	}

	color := models.DefaultHabitColor
	if req.Color != nil && *req.Color != "" {
		color = *req.Color
	}

	habit := models.Habit{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Frequency:   frequency,
		Category:    req.Category,
		Color:       color,
		IsActive:    true,
	}

	created, err := s.habitRepository.Create(ctx, habit)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("habit creation ended with error")
		return models.Habit{}, fmt.Errorf("habit creation ended with error: %w", err)
	}

	return created, nil
}

// FindAll returns the user's habits newest-first, optionally filtered by
// the active flag.
//
// TrackedToday is computed for the whole listing with a single tracking
// query: today's records for the user are fetched once and matched to
// habits in memory, so the cost does not grow with the habit count.
func (s *habitService) FindAll(ctx context.Context, userID int64, isActive *bool) ([]models.Habit, error) {
	log := logger.FromContext(ctx)

	habits, err := s.habitRepository.FindAllByUser(ctx, userID, isActive)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("habit listing ended with error")
		return nil, fmt.Errorf("habit listing ended with error: %w", err)
	}

	if len(habits) == 0 {
		return habits, nil
	}

	dayStart, dayEnd := utils.DayBounds(time.Now())
	todays, err := s.trackingRepository.FindByUserInRange(ctx, userID, dayStart, dayEnd)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("today's tracking lookup ended with error")
		return nil, fmt.Errorf("today's tracking lookup ended with error: %w", err)
	}

	trackedHabits := make(map[int64]bool, len(todays))
	for _, record := range todays {
		trackedHabits[record.HabitID] = true
	}

	for i := range habits {
		habits[i].TrackedToday = trackedHabits[habits[i].ID]
	}

	return habits, nil
}

// FindByID returns a single habit with its individually computed
// TrackedToday flag, or store.ErrHabitNotFound when the habit does not
// exist or is owned by another user.
func (s *habitService) FindByID(ctx context.Context, userID, habitID int64) (models.Habit, error) {
	habit, err := s.ownedHabit(ctx, userID, habitID)
	if err != nil {
		return models.Habit{}, err
	}

	dayStart, dayEnd := utils.DayBounds(time.Now())
	tracked, err := s.trackingRepository.ExistsInRange(ctx, habitID, dayStart, dayEnd)
	if err != nil {
		return models.Habit{}, fmt.Errorf("today's tracking lookup ended with error: %w", err)
	}

	habit.TrackedToday = tracked
	return habit, nil
}

// Update applies a partial update to an owned habit.
func (s *habitService) Update(ctx context.Context, userID, habitID int64, req models.UpdateHabitRequest) (models.Habit, error) {
	log := logger.FromContext(ctx)

	if _, err := s.ownedHabit(ctx, userID, habitID); err != nil {
		return models.Habit{}, err
	}

	update := models.HabitUpdate{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Color:       req.Color,
		IsActive:    req.IsActive,
	}

	if req.Name != nil && (*req.Name == "" || len(*req.Name) > 255) {
		log.Error().Int64("habit_id", habitID).Msg("invalid habit name provided")
		return models.Habit{}, ErrInvalidDataProvided
	}

	if req.Frequency != nil {
		frequency := models.Frequency(*req.Frequency)
		if !frequency.Valid() {
			log.Error().Str("frequency", *req.Frequency).Msg("invalid habit frequency provided")
			return models.Habit{}, ErrInvalidDataProvided
		}
		update.Frequency = &frequency
	}

	updated, err := s.habitRepository.Update(ctx, habitID, update)
	if err != nil {
		log.Err(err).Int64("habit_id", habitID).Msg("habit update ended with error")
		return models.Habit{}, fmt.Errorf("habit update ended with error: %w", err)
	}

	return updated, nil
}

// Delete removes an owned habit; its tracking records and goals cascade at
// the storage layer.
func (s *habitService) Delete(ctx context.Context, userID, habitID int64) error {
	log := logger.FromContext(ctx)

	if _, err := s.ownedHabit(ctx, userID, habitID); err != nil {
		return err
	}

	if err := s.habitRepository.Delete(ctx, habitID); err != nil {
		log.Err(err).Int64("habit_id", habitID).Msg("habit deletion ended with error")
		return fmt.Errorf("habit deletion ended with error: %w", err)
	}

	return nil
}

// ownedHabit fetches the habit and verifies ownership. A habit owned by a
// different user is reported as store.ErrHabitNotFound.
func (s *habitService) ownedHabit(ctx context.Context, userID, habitID int64) (models.Habit, error) {
	habit, err := s.habitRepository.FindByID(ctx, habitID)
	if err != nil {
		return models.Habit{}, err
	}

	if habit.UserID != userID {
		return models.Habit{}, store.ErrHabitNotFound
	}

	return habit, nil
}
