package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmarkin/habitrack/models"
	"github.com/golang-jwt/jwt/v5"
)

// TokenSigner signs and verifies HMAC-SHA256 JWT tokens with a fixed
// secret, issuer and lifetime.
//
// The application constructs two independent signers: one for short-lived
// access tokens and one for long-lived refresh tokens. They share nothing:
// different secrets and different TTLs, so a refresh token can never pass for
// an access token or vice versa.
type TokenSigner struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenSigner constructs a TokenSigner. All parameters are required;
// an error is returned if the secret or issuer is empty or the TTL is not
// positive.
func NewTokenSigner(secret, issuer string, ttl time.Duration) (*TokenSigner, error) {
	if secret == "" || issuer == "" || ttl <= 0 {
		return nil, errors.New("invalid params for token signer")
	}

	return &TokenSigner{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

// TTL returns the configured token lifetime.
func (s *TokenSigner) TTL() time.Duration {
	return s.ttl
}

// Sign issues a signed token for the given user.
//
// The token carries the standard claims (iss, sub, iat, exp) plus the
// user's email, and expires after the signer's TTL. The expiry instant is
// returned alongside the compact token string so callers can persist it.
func (s *TokenSigner) Sign(userID int64, email string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := &models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return signed, expiresAt, nil
}

// Parse validates tokenString against the signer's secret and issuer and
// returns the decoded claims.
//
// Validation covers the signature, the signing method (HS256 only), the
// issuer claim and the expiry claim. Any failure is returned as a wrapped
// error; callers normalise it to their own sentinel.
func (s *TokenSigner) Parse(tokenString string) (*models.TokenClaims, error) {
	claims := &models.TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return nil, errors.New("empty subject error")
	}

	return claims, nil
}
