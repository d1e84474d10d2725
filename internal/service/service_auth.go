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

// dummyBcryptDigest is compared against when a login targets an unknown
// email, so that the unknown-email and wrong-password paths take the same
// time. Digest of an unguessable random string.
const dummyBcryptDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// authService is the concrete implementation of AuthService.
//
// It handles account registration, credential verification and the refresh
// token lifecycle, using bcrypt for password hashing and two independent
// JWT signers, one for short-lived access tokens, one for long-lived
// refresh tokens. The refresh_tokens store is the sole authority for
// refresh validity: a signature-valid token absent from the store is
// rejected.
type authService struct {
	userRepository  store.UserRepository
	tokenRepository store.RefreshTokenRepository

	// accessSigner issues and verifies short-lived access tokens.
	accessSigner *utils.TokenSigner

	// refreshSigner issues and verifies long-lived refresh tokens. Its
	// secret must differ from the access signer's.
	refreshSigner *utils.TokenSigner

	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given repositories
// and token signers.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(users store.UserRepository, tokens store.RefreshTokenRepository, accessSigner, refreshSigner *utils.TokenSigner, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:  users,
		tokenRepository: tokens,
		accessSigner:    accessSigner,
		refreshSigner:   refreshSigner,
		logger:          logger,
	}
}

// Register creates a new user account.
//
// The password is hashed with bcrypt before persisting; the plaintext is
// never stored or logged. On success the initial token pair is issued.
//
// Returns the persisted user (sans credential) and tokens, or:
//   - ErrInvalidDataProvided if email or password is empty.
//   - store.ErrEmailAlreadyExists if the email is already registered.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || req.Password == "" {
		log.Error().Str("email", req.Email).Msg("invalid registration data provided")
		return models.User{}, models.TokenPair{}, ErrInvalidDataProvided
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, models.TokenPair{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: passwordHash,
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user creation ended with error")
		return models.User{}, models.TokenPair{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	pair, err := a.issueTokens(ctx, registeredUser)
	if err != nil {
		return models.User{}, models.TokenPair{}, err
	}

	registeredUser.PasswordHash = ""
	return registeredUser, pair, nil
}

// Login authenticates an existing user and issues a token pair.
//
// Unknown email and mismatched password both return ErrInvalidCredentials;
// the two cases must not be distinguishable by the caller. A dummy bcrypt
// comparison is performed on the unknown-email path to keep response
// timing uniform.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || req.Password == "" {
		log.Error().Str("email", req.Email).Msg("invalid login data provided")
		return models.User{}, models.TokenPair{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			utils.CheckPassword(req.Password, dummyBcryptDigest)
			log.Warn().Str("email", req.Email).Msg("login attempt for unknown email")
			return models.User{}, models.TokenPair{}, ErrInvalidCredentials
		}
		log.Err(err).Str("email", req.Email).Msg("user search by email failed")
		return models.User{}, models.TokenPair{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !utils.CheckPassword(req.Password, foundUser.PasswordHash) {
		log.Warn().Int64("id", foundUser.ID).Msg("wrong password")
		return models.User{}, models.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := a.issueTokens(ctx, foundUser)
	if err != nil {
		return models.User{}, models.TokenPair{}, err
	}

	foundUser.PasswordHash = ""
	return foundUser, pair, nil
}

// Refresh rotates the presented refresh token.
//
// Rotation is single-use: the presented token is deleted before a new pair
// is issued, and the delete's rows-affected count arbitrates concurrent
// refreshes racing on the same token: exactly one wins, the others observe
// the token already gone and fail with ErrInvalidRefreshToken.
//
// An expired stored record is deleted as a side effect (lazy cleanup)
// before the same error is returned.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	claims, err := a.refreshSigner.Parse(refreshToken)
	if err != nil {
		log.Warn().Msg("refresh token failed signature validation")
		return models.TokenPair{}, ErrInvalidRefreshToken
	}

	stored, err := a.tokenRepository.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, store.ErrRefreshTokenNotFound) {
			log.Warn().Msg("refresh token absent from store")
			return models.TokenPair{}, ErrInvalidRefreshToken
		}
		log.Err(err).Msg("refresh token lookup failed")
		return models.TokenPair{}, fmt.Errorf("refresh token lookup failed: %w", err)
	}

	if time.Now().After(stored.ExpiresAt) {
		if _, delErr := a.tokenRepository.Delete(ctx, refreshToken); delErr != nil {
			log.Err(delErr).Msg("failed to clean up expired refresh token")
		}
		log.Warn().Int64("user_id", stored.UserID).Msg("refresh token expired")
		return models.TokenPair{}, ErrInvalidRefreshToken
	}

	existed, err := a.tokenRepository.Delete(ctx, refreshToken)
	if err != nil {
		log.Err(err).Msg("refresh token rotation delete failed")
		return models.TokenPair{}, fmt.Errorf("refresh token rotation failed: %w", err)
	}
	if !existed {
		// A concurrent refresh consumed the token between lookup and delete.
		log.Warn().Int64("user_id", stored.UserID).Msg("refresh token already rotated out")
		return models.TokenPair{}, ErrInvalidRefreshToken
	}

	userID, err := claims.UserID()
	if err != nil {
		log.Err(err).Msg("refresh token carries malformed subject")
		return models.TokenPair{}, ErrInvalidRefreshToken
	}

	pair, err := a.issueTokens(ctx, models.User{ID: userID, Email: claims.Email})
	if err != nil {
		return models.TokenPair{}, err
	}

	return pair, nil
}

// Logout revokes the presented refresh token. Revocation is idempotent:
// an absent token is not an error.
func (a *authService) Logout(ctx context.Context, refreshToken string) error {
	log := logger.FromContext(ctx)

	if _, err := a.tokenRepository.Delete(ctx, refreshToken); err != nil {
		log.Err(err).Msg("refresh token revocation failed")
		return fmt.Errorf("refresh token revocation failed: %w", err)
	}

	return nil
}

// LogoutAll revokes every refresh token owned by the user.
func (a *authService) LogoutAll(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	if err := a.tokenRepository.DeleteAllForUser(ctx, userID); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("bulk refresh token revocation failed")
		return fmt.Errorf("bulk refresh token revocation failed: %w", err)
	}

	return nil
}

// ParseAccessToken validates and parses a raw access token string.
//
// Any validation failure (expired, wrong issuer, malformed, signed with the
// refresh secret) is normalised to ErrTokenIsExpiredOrInvalid so that
// callers do not need to inspect low-level JWT errors.
func (a *authService) ParseAccessToken(ctx context.Context, tokenString string) (*models.TokenClaims, error) {
	claims, err := a.accessSigner.Parse(tokenString)
	if err != nil {
		return nil, ErrTokenIsExpiredOrInvalid
	}

	return claims, nil
}

// issueTokens signs a new access/refresh pair for user and persists the
// refresh token record with its expiry.
func (a *authService) issueTokens(ctx context.Context, user models.User) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	accessToken, _, err := a.accessSigner.Sign(user.ID, user.Email)
	if err != nil {
		log.Err(err).Int64("user_id", user.ID).Msg("access token creation failed")
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refreshToken, expiresAt, err := a.refreshSigner.Sign(user.ID, user.Email)
	if err != nil {
		log.Err(err).Int64("user_id", user.ID).Msg("refresh token creation failed")
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	record := models.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
	}
	if err := a.tokenRepository.Save(ctx, record); err != nil {
		log.Err(err).Int64("user_id", user.ID).Msg("refresh token persistence failed")
		return models.TokenPair{}, fmt.Errorf("refresh token persistence failed: %w", err)
	}

	return models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
