package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmarkin/habitrack/internal/logger"
	"github.com/dmarkin/habitrack/models"
	"github.com/jackc/pgerrcode"
)

// trackingRepository is the PostgreSQL-backed implementation of
// [TrackingRepository]. Rows in "habit_tracking" are append-only; the
// (habit_id, day_index) unique index is the authoritative guard against
// double-logging a habit within one tracking day.
type trackingRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTrackingRepository constructs a [TrackingRepository] backed by the
// provided database connection and logger.
func NewTrackingRepository(db *DB, logger *logger.Logger) TrackingRepository {
	logger.Debug().Msg("creating tracking repository")
	return &trackingRepository{
		db:     db,
		logger: logger,
	}
}

func scanTracking(row interface{ Scan(...any) error }) (models.HabitTracking, error) {
	var tracking models.HabitTracking
	err := row.Scan(
		&tracking.ID,
		&tracking.HabitID,
		&tracking.UserID,
		&tracking.CompletedAt,
		&tracking.Notes,
		&tracking.Streak,
		&tracking.CreatedAt,
	)
	return tracking, err
}

// Create inserts a tracking record with its day-bucket index.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) on (habit_id, day_index) →
//     [ErrDuplicateTracking]. A concurrent duplicate that slipped past the
//     service-level pre-check surfaces here with the same sentinel.
func (r *trackingRepository) Create(ctx context.Context, tracking models.HabitTracking, dayIndex int64) (models.HabitTracking, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createTracking,
		tracking.HabitID, tracking.UserID, tracking.CompletedAt, tracking.Notes, tracking.Streak, dayIndex)

	created, err := scanTracking(row)
	if err != nil {
		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.HabitTracking{}, ErrDuplicateTracking
		case "":
			log.Err(err).Str("func", "*trackingRepository.Create").Int64("habit_id", tracking.HabitID).Msg("error: scanning error")
			return models.HabitTracking{}, err
		default:
			log.Err(err).Str("func", "*trackingRepository.Create").Int64("habit_id", tracking.HabitID).Msg("error: unexpected DB error")
			return models.HabitTracking{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// ExistsInRange reports whether any record for the habit falls within the
// inclusive [from, to] completion-time range.
func (r *trackingRepository) ExistsInRange(ctx context.Context, habitID int64, from, to time.Time) (bool, error) {
	log := logger.FromContext(ctx)

	var exists bool
	row := r.db.QueryRowContext(ctx, trackingExistsInRange, habitID, from, to)
	if err := row.Scan(&exists); err != nil {
		log.Err(err).Str("func", "*trackingRepository.ExistsInRange").Int64("habit_id", habitID).Msg("failed to check tracking existence")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return exists, nil
}

// FindLatest returns the habit's most recent record by completion time, or
// [ErrTrackingNotFound] when the habit has never been tracked.
func (r *trackingRepository) FindLatest(ctx context.Context, habitID int64) (models.HabitTracking, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findLatestTracking, habitID)

	tracking, err := scanTracking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.HabitTracking{}, ErrTrackingNotFound
		}
		log.Err(err).Str("func", "*trackingRepository.FindLatest").Int64("habit_id", habitID).Msg("error: unexpected DB error")
		return models.HabitTracking{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return tracking, nil
}

// FindHistory returns up to limit records descending by completion time,
// optionally bounded by an inclusive [from, to] range.
func (r *trackingRepository) FindHistory(ctx context.Context, habitID int64, limit int, from, to *time.Time) ([]models.HabitTracking, error) {
	log := logger.FromContext(ctx)

	builder := psql.
		Select("id", "habit_id", "user_id", "completed_at", "notes", "streak", "created_at").
		From("habit_tracking").
		Where(sq.Eq{"habit_id": habitID}).
		OrderBy("completed_at DESC").
		Limit(uint64(limit))

	if from != nil {
		builder = builder.Where(sq.GtOrEq{"completed_at": *from})
	}
	if to != nil {
		builder = builder.Where(sq.LtOrEq{"completed_at": *to})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*trackingRepository.FindHistory").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*trackingRepository.FindHistory").
			Int64("habit_id", habitID).
			Msg("failed to execute query for tracking history")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return collectTracking(ctx, rows)
}

// FindByUserInRange returns all of the user's records with completion time
// within [from, to], across all habits, in a single round trip.
func (r *trackingRepository) FindByUserInRange(ctx context.Context, userID int64, from, to time.Time) ([]models.HabitTracking, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, findTrackingByUserInRange, userID, from, to)
	if err != nil {
		log.Err(err).
			Str("func", "*trackingRepository.FindByUserInRange").
			Int64("user_id", userID).
			Msg("failed to execute query for user tracking range")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return collectTracking(ctx, rows)
}

// CountInRange counts the habit's records with completion time within
// [from, to].
func (r *trackingRepository) CountInRange(ctx context.Context, habitID int64, from, to time.Time) (int, error) {
	log := logger.FromContext(ctx)

	var count int
	row := r.db.QueryRowContext(ctx, countTrackingInRange, habitID, from, to)
	if err := row.Scan(&count); err != nil {
		log.Err(err).Str("func", "*trackingRepository.CountInRange").Int64("habit_id", habitID).Msg("failed to count tracking records")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// Delete removes a single tracking record owned by userID. Returns
// [ErrTrackingNotFound] when no row was deleted, whether the record is
// absent or owned by another user.
func (r *trackingRepository) Delete(ctx context.Context, id, userID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteTracking, id, userID)
	if err != nil {
		log.Err(err).Str("func", "*trackingRepository.Delete").Int64("tracking_id", id).Msg("failed to delete tracking record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*trackingRepository.Delete").Int64("tracking_id", id).Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected == 0 {
		return ErrTrackingNotFound
	}

	return nil
}

// collectTracking drains rows into a slice, wrapping scan and iteration
// failures with the low-level sentinels.
func collectTracking(ctx context.Context, rows *sql.Rows) ([]models.HabitTracking, error) {
	log := logger.FromContext(ctx)

	records := make([]models.HabitTracking, 0, 30)

	for rows.Next() {
		tracking, scanErr := scanTracking(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "collectTracking").Msg("failed to scan tracking row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		records = append(records, tracking)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "collectTracking").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}
