package service

import (
	"context"
	"testing"
	"time"

	"github.com/dmarkin/habitrack/internal/logger"
	"github.com/dmarkin/habitrack/internal/store"
	"github.com/dmarkin/habitrack/internal/utils"
	"github.com/dmarkin/habitrack/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSigners(t *testing.T) (*utils.TokenSigner, *utils.TokenSigner) {
	t.Helper()

	access, err := utils.NewTokenSigner("access-secret", "habitrack", time.Minute)
	require.NoError(t, err)
	refresh, err := utils.NewTokenSigner("refresh-secret", "habitrack", time.Hour)
	require.NoError(t, err)

	return access, refresh
}

func newTestAuthService(users *mockUserRepository, tokens *mockRefreshTokenRepository, access, refresh *utils.TokenSigner) *authService {
	return &authService{
		userRepository:  users,
		tokenRepository: tokens,
		accessSigner:    access,
		refreshSigner:   refresh,
		logger:          logger.Nop(),
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	access, refresh := newTestSigners(t)

	var savedToken models.RefreshToken
	users := &mockUserRepository{
		createUserFn: func(_ context.Context, user models.User) (models.User, error) {
			user.ID = 1
			return user, nil
		},
	}
	tokens := &mockRefreshTokenRepository{
		saveFn: func(_ context.Context, token models.RefreshToken) error {
			savedToken = token
			return nil
		},
	}
	svc := newTestAuthService(users, tokens, access, refresh)

	user, pair, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "john@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Empty(t, user.PasswordHash, "credential must not leak in the response")
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, pair.RefreshToken, savedToken.Token, "refresh token must be persisted")
	assert.Equal(t, int64(1), savedToken.UserID)
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	access, refresh := newTestSigners(t)

	users := &mockUserRepository{
		createUserFn: func(_ context.Context, user models.User) (models.User, error) {
			assert.NotEqual(t, "password123", user.PasswordHash)
			assert.True(t, utils.CheckPassword("password123", user.PasswordHash))
			user.ID = 1
			return user, nil
		},
	}
	svc := newTestAuthService(users, &mockRefreshTokenRepository{}, access, refresh)

	_, _, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "john@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
}

func TestAuthService_Register_EmptyFields(t *testing.T) {
	access, refresh := newTestSigners(t)
	svc := newTestAuthService(&mockUserRepository{}, &mockRefreshTokenRepository{}, access, refresh)

	_, _, err := svc.Register(context.Background(), models.RegisterRequest{Email: "a@b.c"})
	require.ErrorIs(t, err, ErrInvalidDataProvided)

	_, _, err = svc.Register(context.Background(), models.RegisterRequest{Password: "password123"})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	access, refresh := newTestSigners(t)

	users := &mockUserRepository{
		createUserFn: func(_ context.Context, _ models.User) (models.User, error) {
			return models.User{}, store.ErrEmailAlreadyExists
		},
	}
	svc := newTestAuthService(users, &mockRefreshTokenRepository{}, access, refresh)

	_, _, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "john@example.com",
		Password: "password123",
	})
	require.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestAuthService_Login_Success(t *testing.T) {
	access, refresh := newTestSigners(t)

	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)

	users := &mockUserRepository{
		findUserByEmailFn: func(_ context.Context, email string) (models.User, error) {
			return models.User{ID: 1, Email: email, PasswordHash: hash}, nil
		},
	}
	svc := newTestAuthService(users, &mockRefreshTokenRepository{}, access, refresh)

	user, pair, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "john@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Empty(t, user.PasswordHash)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestAuthService_Login_UnknownEmailAndWrongPassword_SameError(t *testing.T) {
	access, refresh := newTestSigners(t)

	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)

	unknownEmail := &mockUserRepository{
		findUserByEmailFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}
	wrongPassword := &mockUserRepository{
		findUserByEmailFn: func(_ context.Context, email string) (models.User, error) {
			return models.User{ID: 1, Email: email, PasswordHash: hash}, nil
		},
	}

	svcUnknown := newTestAuthService(unknownEmail, &mockRefreshTokenRepository{}, access, refresh)
	svcWrong := newTestAuthService(wrongPassword, &mockRefreshTokenRepository{}, access, refresh)

	_, _, errUnknown := svcUnknown.Login(context.Background(), models.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	_, _, errWrong := svcWrong.Login(context.Background(), models.LoginRequest{Email: "john@example.com", Password: "wrong"})

	// The two failure modes must be indistinguishable.
	require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	require.ErrorIs(t, errWrong, ErrInvalidCredentials)
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	access, refresh := newTestSigners(t)

	signed, expiresAt, err := refresh.Sign(1, "john@example.com")
	require.NoError(t, err)

	deleted := false
	var savedToken models.RefreshToken
	tokens := &mockRefreshTokenRepository{
		findFn: func(_ context.Context, token string) (models.RefreshToken, error) {
			assert.Equal(t, signed, token)
			return models.RefreshToken{Token: token, UserID: 1, ExpiresAt: expiresAt}, nil
		},
		deleteFn: func(_ context.Context, token string) (bool, error) {
			deleted = true
			return true, nil
		},
		saveFn: func(_ context.Context, token models.RefreshToken) error {
			savedToken = token
			return nil
		},
	}
	svc := newTestAuthService(&mockUserRepository{}, tokens, access, refresh)

	pair, err := svc.Refresh(context.Background(), signed)

	require.NoError(t, err)
	assert.True(t, deleted, "presented token must be retired")
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, pair.RefreshToken, savedToken.Token, "replacement token must be persisted")
	assert.Equal(t, int64(1), savedToken.UserID)
}

func TestAuthService_Refresh_UnknownToken(t *testing.T) {
	access, refresh := newTestSigners(t)

	signed, _, err := refresh.Sign(1, "john@example.com")
	require.NoError(t, err)

	// Signature-valid but absent from the store: must be rejected.
	tokens := &mockRefreshTokenRepository{
		findFn: func(_ context.Context, _ string) (models.RefreshToken, error) {
			return models.RefreshToken{}, store.ErrRefreshTokenNotFound
		},
	}
	svc := newTestAuthService(&mockUserRepository{}, tokens, access, refresh)

	_, err = svc.Refresh(context.Background(), signed)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuthService_Refresh_GarbageToken(t *testing.T) {
	access, refresh := newTestSigners(t)
	svc := newTestAuthService(&mockUserRepository{}, &mockRefreshTokenRepository{}, access, refresh)

	_, err := svc.Refresh(context.Background(), "not.a.token")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuthService_Refresh_AccessTokenRejected(t *testing.T) {
	access, refresh := newTestSigners(t)

	// A token signed with the access secret must not pass refresh validation.
	signed, _, err := access.Sign(1, "john@example.com")
	require.NoError(t, err)

	svc := newTestAuthService(&mockUserRepository{}, &mockRefreshTokenRepository{}, access, refresh)

	_, err = svc.Refresh(context.Background(), signed)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuthService_Refresh_ExpiredRecord_LazyDeleted(t *testing.T) {
	access, refresh := newTestSigners(t)

	signed, _, err := refresh.Sign(1, "john@example.com")
	require.NoError(t, err)

	deleted := false
	tokens := &mockRefreshTokenRepository{
		findFn: func(_ context.Context, token string) (models.RefreshToken, error) {
			return models.RefreshToken{Token: token, UserID: 1, ExpiresAt: time.Now().Add(-time.Minute)}, nil
		},
		deleteFn: func(_ context.Context, _ string) (bool, error) {
			deleted = true
			return true, nil
		},
	}
	svc := newTestAuthService(&mockUserRepository{}, tokens, access, refresh)

	_, err = svc.Refresh(context.Background(), signed)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
	assert.True(t, deleted, "expired record must be cleaned up")
}

func TestAuthService_Refresh_LostRace(t *testing.T) {
	access, refresh := newTestSigners(t)

	signed, expiresAt, err := refresh.Sign(1, "john@example.com")
	require.NoError(t, err)

	tokens := &mockRefreshTokenRepository{
		findFn: func(_ context.Context, token string) (models.RefreshToken, error) {
			return models.RefreshToken{Token: token, UserID: 1, ExpiresAt: expiresAt}, nil
		},
		deleteFn: func(_ context.Context, _ string) (bool, error) {
			// A concurrent refresh already consumed the token.
			return false, nil
		},
	}
	svc := newTestAuthService(&mockUserRepository{}, tokens, access, refresh)

	_, err = svc.Refresh(context.Background(), signed)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuthService_Logout_Idempotent(t *testing.T) {
	access, refresh := newTestSigners(t)

	tokens := &mockRefreshTokenRepository{
		deleteFn: func(_ context.Context, _ string) (bool, error) {
			return false, nil // already absent
		},
	}
	svc := newTestAuthService(&mockUserRepository{}, tokens, access, refresh)

	require.NoError(t, svc.Logout(context.Background(), "already-gone"))
}

func TestAuthService_LogoutAll(t *testing.T) {
	access, refresh := newTestSigners(t)

	var gotUserID int64
	tokens := &mockRefreshTokenRepository{
		deleteAllForUserFn: func(_ context.Context, userID int64) error {
			gotUserID = userID
			return nil
		},
	}
	svc := newTestAuthService(&mockUserRepository{}, tokens, access, refresh)

	require.NoError(t, svc.LogoutAll(context.Background(), 7))
	assert.Equal(t, int64(7), gotUserID)
}

func TestAuthService_ParseAccessToken(t *testing.T) {
	access, refresh := newTestSigners(t)
	svc := newTestAuthService(&mockUserRepository{}, &mockRefreshTokenRepository{}, access, refresh)

	signed, _, err := access.Sign(42, "john@example.com")
	require.NoError(t, err)

	claims, err := svc.ParseAccessToken(context.Background(), signed)
	require.NoError(t, err)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)

	// refresh-signed token must be rejected as an access token
	refreshSigned, _, err := refresh.Sign(42, "john@example.com")
	require.NoError(t, err)

	_, err = svc.ParseAccessToken(context.Background(), refreshSigned)
	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
