package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidInput is returned for empty or malformed submitted fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyPassword is returned before any hashing attempt when the
	// submitted password is empty or whitespace-only.
	ErrEmptyPassword = fmt.Errorf("%w: password cannot be empty", ErrInvalidInput)

	// ErrEmailTaken is returned when registration conflicts with an
	// existing account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned for unknown email and for password
	// mismatch alike; the two cases are never distinguished to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountSuspended is returned when credentials matched but the
	// account is blocked.
	ErrAccountSuspended = errors.New("account is suspended")

	// ErrUnavailable is returned when a storage or key/value collaborator
	// is unreachable.
	ErrUnavailable = errors.New("collaborator unavailable")
)

// Token verification failures.
var (
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenSignature = errors.New("token signature is invalid")
	ErrTokenExpired   = errors.New("token is expired")
	ErrTokenRevoked   = errors.New("token is revoked")
)
