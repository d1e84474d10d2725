package http

import "errors"

// Sentinel errors produced while extracting credentials from HTTP requests.
var (
	// ErrEmptyAuthorizationHeader is returned when the "Authorization"
	// header is absent from an authenticated route.
	ErrEmptyAuthorizationHeader = errors.New("empty authorization header")

	// ErrInvalidAuthorizationHeader is returned when the header cannot be
	// parsed as "<scheme> <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")

	// ErrEmptyToken is returned when the bearer token part is empty.
	ErrEmptyToken = errors.New("empty token")
)
