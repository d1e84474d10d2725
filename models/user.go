package models

import "time"

// User represents an account entity used for authentication and ownership
// of habits, goals, tracking records and refresh tokens.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the internal unique identifier of the user.
	ID int64 `json:"id"`

	// Email is the unique login identifier used during authentication.
	Email string `json:"email"`

	// Name is the optional display name of the user.
	Name *string `json:"name,omitempty"`

	// PasswordHash stores the one-way hash of the user's password.
	// This value MUST be a bcrypt digest, never plaintext, and is never
	// serialized to JSON.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
