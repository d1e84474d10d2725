package models

import "time"

// Request DTOs decoded from JSON bodies at the HTTP layer. Validation tags
// are enforced by go-playground/validator before a request reaches a
// service; services still re-check business invariants themselves.

type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Name     *string `json:"name,omitempty" validate:"omitempty,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type CreateHabitRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Frequency   string  `json:"frequency" validate:"required,oneof=daily weekly monthly"`
	Category    *string `json:"category,omitempty" validate:"omitempty,max=255"`
	Color       *string `json:"color,omitempty" validate:"omitempty,max=32"`
}

// UpdateHabitRequest carries a partial update: nil fields are left unchanged.
type UpdateHabitRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Frequency   *string `json:"frequency,omitempty" validate:"omitempty,oneof=daily weekly monthly"`
	Category    *string `json:"category,omitempty" validate:"omitempty,max=255"`
	Color       *string `json:"color,omitempty" validate:"omitempty,max=32"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

type TrackHabitRequest struct {
	// CompletedAt defaults to the current time when omitted.
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Notes       *string    `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type CreateGoalRequest struct {
	TargetFrequency int    `json:"targetFrequency" validate:"required,gt=0"`
	GoalType        string `json:"goalType" validate:"required,oneof=weekly monthly yearly"`
}

type UpdateGoalRequest struct {
	TargetFrequency *int `json:"targetFrequency,omitempty" validate:"omitempty,gt=0"`
}
