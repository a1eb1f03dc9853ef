package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
	ErrGone         = errors.New("gone")
	ErrInternal     = errors.New("internal error")
)

// Specific failures. Each wraps one of the sentinels above so errors.Is matches on both levels.
var (
	ErrUsernameTaken      = fmt.Errorf("username is already taken: %w", ErrConflict)
	ErrEmailTaken         = fmt.Errorf("email is already registered: %w", ErrConflict)
	ErrInvalidCode        = fmt.Errorf("invalid verification code: %w", ErrBadRequest)
	ErrCodeExpired        = fmt.Errorf("verification code expired: %w", ErrGone)
	ErrNotAccepting       = fmt.Errorf("recipient is not accepting messages: %w", ErrForbidden)
	ErrNotVerified        = fmt.Errorf("account not verified: %w", ErrForbidden)
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	ErrDelivery           = fmt.Errorf("verification email delivery failed: %w", ErrInternal)
)
