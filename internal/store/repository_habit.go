package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmarkin/habitrack/internal/logger"
	"github.com/dmarkin/habitrack/models"
	"github.com/jackc/pgerrcode"
)

// psql builds parameterised queries with PostgreSQL $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// habitRepository is the PostgreSQL-backed implementation of
// [HabitRepository]. Static queries use the prepared constants in
// sql_queries.go; the filtered listing and the partial update are built
// dynamically with squirrel.
type habitRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewHabitRepository constructs a [HabitRepository] backed by the provided
// database connection and logger.
func NewHabitRepository(db *DB, logger *logger.Logger) HabitRepository {
	logger.Debug().Msg("creating habit repository")
	return &habitRepository{
		db:     db,
		logger: logger,
	}
}

// scanHabit scans one habits row, converting the stored uppercase frequency
// back to its wire form.
func scanHabit(row interface{ Scan(...any) error }) (models.Habit, error) {
	var habit models.Habit
	var storedFrequency string

	err := row.Scan(
		&habit.ID,
		&habit.UserID,
		&habit.Name,
		&habit.Description,
		&storedFrequency,
		&habit.Category,
		&habit.Color,
		&habit.IsActive,
		&habit.CreatedAt,
		&habit.UpdatedAt,
	)
	if err != nil {
		return models.Habit{}, err
	}

	habit.Frequency, err = models.FrequencyFromStorage(storedFrequency)
	if err != nil {
		return models.Habit{}, err
	}

	return habit, nil
}

// Create persists a new habit and returns it with server-assigned fields.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrHabitNameTaken].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *habitRepository) Create(ctx context.Context, habit models.Habit) (models.Habit, error) {
	log := logger.FromContext(ctx)

	storedFrequency, err := habit.Frequency.StorageValue()
	if err != nil {
		return models.Habit{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, createHabit,
		habit.UserID, habit.Name, habit.Description, storedFrequency, habit.Category, habit.Color, habit.IsActive)

	created, err := scanHabit(row)
	if err != nil {
		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Habit{}, ErrHabitNameTaken
		case "":
			log.Err(err).Str("func", "*habitRepository.Create").Int64("user_id", habit.UserID).Msg("error: scanning error")
			return models.Habit{}, err
		default:
			log.Err(err).Str("func", "*habitRepository.Create").Int64("user_id", habit.UserID).Msg("error: unexpected DB error")
			return models.Habit{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindAllByUser returns the user's habits ordered newest-first. When
// isActive is non-nil the listing is restricted to that flag value.
func (r *habitRepository) FindAllByUser(ctx context.Context, userID int64, isActive *bool) ([]models.Habit, error) {
	log := logger.FromContext(ctx)

	builder := psql.
		Select("id", "user_id", "name", "description", "frequency", "category", "color", "is_active", "created_at", "updated_at").
		From("habits").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	if isActive != nil {
		builder = builder.Where(sq.Eq{"is_active": *isActive})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*habitRepository.FindAllByUser").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*habitRepository.FindAllByUser").
			Int64("user_id", userID).
			Msg("failed to execute query for listing habits")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	habits := make([]models.Habit, 0, 20)

	for rows.Next() {
		habit, scanErr := scanHabit(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*habitRepository.FindAllByUser").
				Int64("user_id", userID).
				Msg("failed to scan habit row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		habits = append(habits, habit)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*habitRepository.FindAllByUser").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return habits, nil
}

// FindByID returns a single habit or [ErrHabitNotFound].
func (r *habitRepository) FindByID(ctx context.Context, id int64) (models.Habit, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findHabitByID, id)

	habit, err := scanHabit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, ErrHabitNotFound
		}
		log.Err(err).Str("func", "*habitRepository.FindByID").Int64("habit_id", id).Msg("error: unexpected DB error")
		return models.Habit{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return habit, nil
}

// Update applies a partial update built dynamically from the non-nil fields
// of update and returns the updated habit via a RETURNING clause.
//
// Error handling:
//   - sql.ErrNoRows → [ErrHabitNotFound].
//   - PostgreSQL unique_violation (23505) → [ErrHabitNameTaken].
func (r *habitRepository) Update(ctx context.Context, id int64, update models.HabitUpdate) (models.Habit, error) {
	log := logger.FromContext(ctx)

	builder := psql.
		Update("habits").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, user_id, name, description, frequency, category, color, is_active, created_at, updated_at")

	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}
	if update.Description != nil {
		builder = builder.Set("description", *update.Description)
	}
	if update.Frequency != nil {
		storedFrequency, err := update.Frequency.StorageValue()
		if err != nil {
			return models.Habit{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		builder = builder.Set("frequency", storedFrequency)
	}
	if update.Category != nil {
		builder = builder.Set("category", *update.Category)
	}
	if update.Color != nil {
		builder = builder.Set("color", *update.Color)
	}
	if update.IsActive != nil {
		builder = builder.Set("is_active", *update.IsActive)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*habitRepository.Update").Int64("habit_id", id).Msg("failed to build query")
		return models.Habit{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	habit, err := scanHabit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, ErrHabitNotFound
		}
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Habit{}, ErrHabitNameTaken
		}
		log.Err(err).Str("func", "*habitRepository.Update").Int64("habit_id", id).Msg("error: unexpected DB error")
		return models.Habit{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return habit, nil
}

// Delete removes the habit; tracking records and goals cascade via foreign
// keys. Returns [ErrHabitNotFound] when no row was deleted.
func (r *habitRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteHabit, id)
	if err != nil {
		log.Err(err).Str("func", "*habitRepository.Delete").Int64("habit_id", id).Msg("failed to delete habit")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*habitRepository.Delete").Int64("habit_id", id).Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected == 0 {
		return ErrHabitNotFound
	}

	return nil
}
