package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session expired")
	ErrUpstreamFailure    = errors.New("remote API unavailable")
)

// Dashboard action errors
var (
	ErrNotAdmin             = errors.New("account is not an admin")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrInvalidAmount        = errors.New("amount must be a positive number")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidWeekStart     = errors.New("weekStart must be a YYYY-MM-DD date")
	ErrEmptyReport          = errors.New("report has no rows")
)
