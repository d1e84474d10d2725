package service

import "errors"

var (
	// ErrInvalidDataProvided is returned when a request reaches a service
	// with values that violate a business invariant (empty credentials,
	// non-positive target frequency, unknown enum value).
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password. The two cases are deliberately indistinguishable to
	// callers to prevent account enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrTokenIsExpiredOrInvalid is returned when an access token fails
	// signature, issuer or expiry validation.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrInvalidRefreshToken is returned when a refresh token fails
	// validation for any reason: bad signature, absent from the store,
	// expired, or already consumed by rotation. Root causes are not
	// distinguished to callers.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrTokenCreationFailed is returned when signing a new token fails.
	ErrTokenCreationFailed = errors.New("token creation failed")
)
