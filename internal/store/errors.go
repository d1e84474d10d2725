package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same email already exists in the database.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrHabitNotFound is returned when a query or update targets a habit
	// that does not exist in the database.
	ErrHabitNotFound = errors.New("habit was not found")

	// ErrHabitNameTaken is returned when creating or renaming a habit would
	// violate the per-user habit name uniqueness constraint.
	ErrHabitNameTaken = errors.New("habit name already taken")

	// ErrTrackingNotFound is returned when a queried tracking record does
	// not exist.
	ErrTrackingNotFound = errors.New("tracking record was not found")

	// ErrDuplicateTracking is returned when inserting a tracking record would
	// violate the one-completion-per-habit-per-tracking-day constraint.
	// The (habit_id, day_index) unique index is the authoritative arbiter;
	// this sentinel is produced both by the service-level pre-check and by
	// the constraint violation itself.
	ErrDuplicateTracking = errors.New("habit already tracked for this day")

	// ErrGoalNotFound is returned when a queried goal does not exist.
	ErrGoalNotFound = errors.New("goal was not found")

	// ErrDuplicateGoal is returned when creating a goal would violate the
	// one-goal-per-(habit, goal type) uniqueness constraint.
	ErrDuplicateGoal = errors.New("goal of this type already exists for habit")

	// ErrRefreshTokenNotFound is returned when a refresh token is absent from
	// the store. Absence is authoritative: a structurally valid token that is
	// not stored must be rejected.
	ErrRefreshTokenNotFound = errors.New("refresh token was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
