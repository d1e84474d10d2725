package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the claim set carried by both access and refresh tokens.
//
// It embeds [jwt.RegisteredClaims] for standard claim access (subject,
// expiry, issuer) and adds the user's email so that authenticated handlers
// can identify the caller without a database round trip.
type TokenClaims struct {
	jwt.RegisteredClaims

	// Email is the authenticated user's email address.
	Email string `json:"email,omitempty"`
}

// UserID extracts the user identifier from the "sub" (subject) claim,
// parses it as a base-10 int64, and returns the result.
func (c *TokenClaims) UserID() (int64, error) {
	sub, err := c.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting user ID from token: %w", err)
	}

	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting user ID from token to int64: %w", err)
	}

	return id, nil
}

// TokenPair bundles the two credentials returned by signup, login and
// refresh: a short-lived access token and a long-lived, revocable refresh
// token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken is the server-side record of an issued refresh token.
//
// Presence of the record is the sole authority for refresh validity:
// a structurally valid signature on a token absent from this store must
// be rejected. Records are deleted on logout, on rotation, or lazily when
// expiry is detected during validation.
type RefreshToken struct {
	// Token is the opaque unique token string (the signed JWT itself).
	Token string `json:"-"`

	// UserID is the owner of the token.
	UserID int64 `json:"-"`

	// ExpiresAt is the instant after which the token no longer validates.
	ExpiresAt time.Time `json:"-"`

	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the RefreshToken model.
func (r RefreshToken) TableName() string {
	return "refresh_tokens"
}
