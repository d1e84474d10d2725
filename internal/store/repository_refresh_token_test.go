package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmarkin/habitrack/internal/logger"
	"github.com/dmarkin/habitrack/models"
)

func newTestRefreshTokenRepo(t *testing.T) (*refreshTokenRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &refreshTokenRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestRefreshTokenSave_Success(t *testing.T) {
	repo, mock, db := newTestRefreshTokenRepo(t)
	defer db.Close()

	record := models.RefreshToken{
		Token:     "opaque-token",
		UserID:    7,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	mock.ExpectExec("INSERT INTO refresh_tokens").
		WithArgs(record.Token, record.UserID, record.ExpiresAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Save(context.Background(), record); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRefreshTokenSave_ExecError(t *testing.T) {
	repo, mock, db := newTestRefreshTokenRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO refresh_tokens").
		WillReturnError(errors.New("db failure"))

	err := repo.Save(context.Background(), models.RefreshToken{Token: "x"})
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}

func TestRefreshTokenFind_Success(t *testing.T) {
	repo, mock, db := newTestRefreshTokenRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.
		NewRows([]string{"token", "user_id", "expires_at", "created_at"}).
		AddRow("opaque-token", 7, now.Add(time.Hour), now)

	mock.ExpectQuery("SELECT token").
		WithArgs("opaque-token").
		WillReturnRows(rows)

	found, err := repo.Find(context.Background(), "opaque-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserID != 7 {
		t.Errorf("expected UserID=7, got %d", found.UserID)
	}
}

func TestRefreshTokenFind_NotFound(t *testing.T) {
	repo, mock, db := newTestRefreshTokenRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT token").
		WithArgs("absent").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Find(context.Background(), "absent")
	if !errors.Is(err, ErrRefreshTokenNotFound) {
		t.Fatalf("expected ErrRefreshTokenNotFound, got %v", err)
	}
}

func TestRefreshTokenDelete_Existed(t *testing.T) {
	repo, mock, db := newTestRefreshTokenRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM refresh_tokens").
		WithArgs("opaque-token").
		WillReturnResult(sqlmock.NewResult(0, 1))

	existed, err := repo.Delete(context.Background(), "opaque-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !existed {
		t.Error("expected existed=true when a row was deleted")
	}
}

func TestRefreshTokenDelete_Absent(t *testing.T) {
	repo, mock, db := newTestRefreshTokenRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM refresh_tokens").
		WithArgs("absent").
		WillReturnResult(sqlmock.NewResult(0, 0))

	existed, err := repo.Delete(context.Background(), "absent")
	if err != nil {
		t.Fatalf("deleting an absent token must not be an error, got %v", err)
	}
	if existed {
		t.Error("expected existed=false when no row was deleted")
	}
}

func TestRefreshTokenDeleteAllForUser_Success(t *testing.T) {
	repo, mock, db := newTestRefreshTokenRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM refresh_tokens").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	if err := repo.DeleteAllForUser(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
