package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmarkin/habitrack/internal/logger"
	"github.com/dmarkin/habitrack/internal/store"
	"github.com/dmarkin/habitrack/internal/utils"
	"github.com/dmarkin/habitrack/models"
)

// DefaultHistoryLimit caps history listings when the caller does not
// specify a limit.
const DefaultHistoryLimit = 30

// trackingService is the concrete implementation of TrackingService.
//
// Completion records are append-only. The streak value written with each
// record is a point-in-time snapshot: it counts consecutive tracking days
// ending at that record. Because snapshots are never recomputed, inserting
// a backdated completion (completedAt earlier than existing rows) does not
// cascade into later rows, and their stored streaks can disagree with a
// strict recount. Known limitation, kept deliberately: recomputing on read
// would change observable behavior.
type trackingService struct {
	trackingRepository store.TrackingRepository
	habitRepository    store.HabitRepository
	logger             *logger.Logger
}

// NewTrackingService constructs a TrackingService over the given
// repositories.
func NewTrackingService(tracking store.TrackingRepository, habits store.HabitRepository, logger *logger.Logger) TrackingService {
	return &trackingService{
		trackingRepository: tracking,
		habitRepository:    habits,
		logger:             logger,
	}
}

// LogCompletion records one completion for the habit.
//
// completedAt defaults to the current time. At most one record may exist
// per habit per tracking day: a pre-check against the day's bounds gives
// the friendly error, and the (habit_id, day_index) unique constraint is
// the final arbiter under concurrency: a constraint violation at insert
// surfaces as the same store.ErrDuplicateTracking.
//
// The streak snapshot is computed from the most recent prior record:
// 1 when there is none, prior streak + 1 when the prior record is exactly
// one tracking day earlier, and 1 again after any gap.
func (s *trackingService) LogCompletion(ctx context.Context, userID, habitID int64, req models.TrackHabitRequest) (models.HabitTracking, error) {
	log := logger.FromContext(ctx)

	if _, err := s.ownedHabit(ctx, userID, habitID); err != nil {
		return models.HabitTracking{}, err
	}

	completedAt := time.Now()
	if req.CompletedAt != nil {
		completedAt = *req.CompletedAt
	}

	dayStart, dayEnd := utils.DayBounds(completedAt)
	exists, err := s.trackingRepository.ExistsInRange(ctx, habitID, dayStart, dayEnd)
	if err != nil {
		log.Err(err).Int64("habit_id", habitID).Msg("duplicate-day check ended with error")
		return models.HabitTracking{}, fmt.Errorf("duplicate-day check ended with error: %w", err)
	}
	if exists {
		log.Debug().Int64("habit_id", habitID).Msg("habit already tracked for this day")
		return models.HabitTracking{}, store.ErrDuplicateTracking
	}

	streak := 1
	prior, err := s.trackingRepository.FindLatest(ctx, habitID)
	switch {
	case err == nil:
		gap := utils.DayIndex(completedAt) - utils.DayIndex(prior.CompletedAt)
		if gap == 1 {
			streak = prior.Streak + 1
		}
	case errors.Is(err, store.ErrTrackingNotFound):
		// first completion ever, streak stays 1
	default:
		log.Err(err).Int64("habit_id", habitID).Msg("prior tracking lookup ended with error")
		return models.HabitTracking{}, fmt.Errorf("prior tracking lookup ended with error: %w", err)
	}

	tracking := models.HabitTracking{
		HabitID:     habitID,
		UserID:      userID,
		CompletedAt: completedAt,
		Notes:       req.Notes,
		Streak:      streak,
	}

	created, err := s.trackingRepository.Create(ctx, tracking, utils.DayIndex(completedAt))
	if err != nil {
		if errors.Is(err, store.ErrDuplicateTracking) {
			// Lost the race against a concurrent identical request.
			return models.HabitTracking{}, err
		}
		log.Err(err).Int64("habit_id", habitID).Msg("tracking creation ended with error")
		return models.HabitTracking{}, fmt.Errorf("tracking creation ended with error: %w", err)
	}

	return created, nil
}

// GetHistory returns up to limit records for the habit, descending by
// completion time, optionally bounded by an inclusive range. A non-positive
// limit falls back to DefaultHistoryLimit.
func (s *trackingService) GetHistory(ctx context.Context, userID, habitID int64, limit int, from, to *time.Time) ([]models.HabitTracking, error) {
	log := logger.FromContext(ctx)

	if _, err := s.ownedHabit(ctx, userID, habitID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	history, err := s.trackingRepository.FindHistory(ctx, habitID, limit, from, to)
	if err != nil {
		log.Err(err).Int64("habit_id", habitID).Msg("tracking history lookup ended with error")
		return nil, fmt.Errorf("tracking history lookup ended with error: %w", err)
	}

	return history, nil
}

// GetStreak returns the streak snapshot stored on the habit's most recent
// record, or 0 when the habit has never been tracked. The value is not
// recomputed; it trusts the snapshot written at log time.
func (s *trackingService) GetStreak(ctx context.Context, userID, habitID int64) (int, error) {
	log := logger.FromContext(ctx)

	if _, err := s.ownedHabit(ctx, userID, habitID); err != nil {
		return 0, err
	}

	latest, err := s.trackingRepository.FindLatest(ctx, habitID)
	if err != nil {
		if errors.Is(err, store.ErrTrackingNotFound) {
			return 0, nil
		}
		log.Err(err).Int64("habit_id", habitID).Msg("latest tracking lookup ended with error")
		return 0, fmt.Errorf("latest tracking lookup ended with error: %w", err)
	}

	return latest.Streak, nil
}

// Delete removes a single tracking record owned by the user. The
// denormalized user_id on the record scopes the delete, so a foreign
// record is reported as not found.
func (s *trackingService) Delete(ctx context.Context, userID, trackingID int64) error {
	log := logger.FromContext(ctx)

	if err := s.trackingRepository.Delete(ctx, trackingID, userID); err != nil {
		if errors.Is(err, store.ErrTrackingNotFound) {
			return err
		}
		log.Err(err).Int64("tracking_id", trackingID).Msg("tracking deletion ended with error")
		return fmt.Errorf("tracking deletion ended with error: %w", err)
	}

	return nil
}

// ownedHabit fetches the habit and verifies ownership, reporting a foreign
// habit as store.ErrHabitNotFound.
func (s *trackingService) ownedHabit(ctx context.Context, userID, habitID int64) (models.Habit, error) {
	habit, err := s.habitRepository.FindByID(ctx, habitID)
	if err != nil {
		return models.Habit{}, err
	}

	if habit.UserID != userID {
		return models.Habit{}, store.ErrHabitNotFound
	}

	return habit, nil
}
