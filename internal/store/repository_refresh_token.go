package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmarkin/habitrack/internal/logger"
	"github.com/dmarkin/habitrack/models"
)

// refreshTokenRepository is the PostgreSQL-backed implementation of
// [RefreshTokenRepository]. The "refresh_tokens" table is the single source
// of truth for refresh validity: validation, rotation and revocation are all
// expressed as row presence checks and deletions.
type refreshTokenRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewRefreshTokenRepository constructs a [RefreshTokenRepository] backed by
// the provided database connection and logger.
func NewRefreshTokenRepository(db *DB, logger *logger.Logger) RefreshTokenRepository {
	logger.Debug().Msg("creating refresh token repository")
	return &refreshTokenRepository{
		db:     db,
		logger: logger,
	}
}

// Save persists a newly issued refresh token record.
func (r *refreshTokenRepository) Save(ctx context.Context, token models.RefreshToken) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, saveRefreshToken, token.Token, token.UserID, token.ExpiresAt); err != nil {
		log.Err(err).
			Str("func", "*refreshTokenRepository.Save").
			Int64("user_id", token.UserID).
			Msg("failed to save refresh token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Find returns the stored record for the given token string or
// [ErrRefreshTokenNotFound]. The raw token value is never logged.
func (r *refreshTokenRepository) Find(ctx context.Context, token string) (models.RefreshToken, error) {
	log := logger.FromContext(ctx)

	var found models.RefreshToken
	row := r.db.QueryRowContext(ctx, findRefreshToken, token)

	if err := row.Scan(&found.Token, &found.UserID, &found.ExpiresAt, &found.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RefreshToken{}, ErrRefreshTokenNotFound
		}
		log.Err(err).Str("func", "*refreshTokenRepository.Find").Msg("failed to find refresh token")
		return models.RefreshToken{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// Delete removes the record for the given token string and reports whether
// a record existed. Deleting an absent token is not an error; the boolean
// lets rotation detect a concurrent refresh racing on the same token.
func (r *refreshTokenRepository) Delete(ctx context.Context, token string) (bool, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteRefreshToken, token)
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.Delete").Msg("failed to delete refresh token")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.Delete").Msg("failed to read affected rows")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected > 0, nil
}

// DeleteAllForUser removes every refresh token owned by the user
// (logout-everywhere semantics).
func (r *refreshTokenRepository) DeleteAllForUser(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteUserRefreshTokens, userID); err != nil {
		log.Err(err).
			Str("func", "*refreshTokenRepository.DeleteAllForUser").
			Int64("user_id", userID).
			Msg("failed to delete user refresh tokens")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
