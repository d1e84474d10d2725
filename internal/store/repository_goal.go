package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmarkin/habitrack/internal/logger"
	"github.com/dmarkin/habitrack/models"
	"github.com/jackc/pgerrcode"
)

// goalRepository is the PostgreSQL-backed implementation of
// [GoalRepository] against the "habit_goals" table.
type goalRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewGoalRepository constructs a [GoalRepository] backed by the provided
// database connection and logger.
func NewGoalRepository(db *DB, logger *logger.Logger) GoalRepository {
	logger.Debug().Msg("creating goal repository")
	return &goalRepository{
		db:     db,
		logger: logger,
	}
}

func scanGoal(row interface{ Scan(...any) error }) (models.HabitGoal, error) {
	var goal models.HabitGoal
	var storedGoalType string

	err := row.Scan(
		&goal.ID,
		&goal.HabitID,
		&goal.UserID,
		&goal.TargetFrequency,
		&storedGoalType,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	)
	if err != nil {
		return models.HabitGoal{}, err
	}

	goal.GoalType, err = models.GoalTypeFromStorage(storedGoalType)
	if err != nil {
		return models.HabitGoal{}, err
	}

	return goal, nil
}

// Create persists a new goal.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) on (habit_id, goal_type) →
//     [ErrDuplicateGoal].
func (r *goalRepository) Create(ctx context.Context, goal models.HabitGoal) (models.HabitGoal, error) {
	log := logger.FromContext(ctx)

	storedGoalType, err := goal.GoalType.StorageValue()
	if err != nil {
		return models.HabitGoal{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, createGoal, goal.HabitID, goal.UserID, goal.TargetFrequency, storedGoalType)

	created, err := scanGoal(row)
	if err != nil {
		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.HabitGoal{}, ErrDuplicateGoal
		case "":
			log.Err(err).Str("func", "*goalRepository.Create").Int64("habit_id", goal.HabitID).Msg("error: scanning error")
			return models.HabitGoal{}, err
		default:
			log.Err(err).Str("func", "*goalRepository.Create").Int64("habit_id", goal.HabitID).Msg("error: unexpected DB error")
			return models.HabitGoal{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindByHabit returns all goals defined for the habit.
func (r *goalRepository) FindByHabit(ctx context.Context, habitID int64) ([]models.HabitGoal, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, findGoalsByHabit, habitID)
	if err != nil {
		log.Err(err).
			Str("func", "*goalRepository.FindByHabit").
			Int64("habit_id", habitID).
			Msg("failed to execute query for listing goals")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	goals := make([]models.HabitGoal, 0, 3)

	for rows.Next() {
		goal, scanErr := scanGoal(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*goalRepository.FindByHabit").
				Int64("habit_id", habitID).
				Msg("failed to scan goal row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		goals = append(goals, goal)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*goalRepository.FindByHabit").
			Int64("habit_id", habitID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return goals, nil
}

// FindByHabitAndType returns the goal of the given type for the habit, or
// [ErrGoalNotFound].
func (r *goalRepository) FindByHabitAndType(ctx context.Context, habitID int64, goalType models.GoalType) (models.HabitGoal, error) {
	log := logger.FromContext(ctx)

	storedGoalType, err := goalType.StorageValue()
	if err != nil {
		return models.HabitGoal{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, findGoalByHabitAndType, habitID, storedGoalType)

	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.HabitGoal{}, ErrGoalNotFound
		}
		log.Err(err).Str("func", "*goalRepository.FindByHabitAndType").Int64("habit_id", habitID).Msg("error: unexpected DB error")
		return models.HabitGoal{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return goal, nil
}

// FindByID returns a single goal or [ErrGoalNotFound].
func (r *goalRepository) FindByID(ctx context.Context, id int64) (models.HabitGoal, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findGoalByID, id)

	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.HabitGoal{}, ErrGoalNotFound
		}
		log.Err(err).Str("func", "*goalRepository.FindByID").Int64("goal_id", id).Msg("error: unexpected DB error")
		return models.HabitGoal{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return goal, nil
}

// Update changes the goal's target frequency and returns the updated row.
// Returns [ErrGoalNotFound] if the row does not exist.
func (r *goalRepository) Update(ctx context.Context, id int64, targetFrequency int) (models.HabitGoal, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, updateGoal, targetFrequency, id)

	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.HabitGoal{}, ErrGoalNotFound
		}
		log.Err(err).Str("func", "*goalRepository.Update").Int64("goal_id", id).Msg("error: unexpected DB error")
		return models.HabitGoal{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return goal, nil
}

// Delete removes the goal. Returns [ErrGoalNotFound] when no row was deleted.
func (r *goalRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteGoal, id)
	if err != nil {
		log.Err(err).Str("func", "*goalRepository.Delete").Int64("goal_id", id).Msg("failed to delete goal")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*goalRepository.Delete").Int64("goal_id", id).Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected == 0 {
		return ErrGoalNotFound
	}

	return nil
}
