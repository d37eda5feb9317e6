package domain

import "errors"

// Sentinel errors shared across the core. The API layer maps these to HTTP
// statuses in one place; services only wrap them with context.
var (
	// ErrInvalidCredentials covers a wrong password and any token that fails
	// cryptographic validation (bad signature, expired, structurally broken).
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMalformedToken marks a token whose signature verifies but whose
	// payload is missing the subject.
	ErrMalformedToken = errors.New("malformed token payload")

	ErrUserNotFound   = errors.New("user not found")
	ErrJobNotFound    = errors.New("job not found")
	ErrClientNotFound = errors.New("client not found")

	// ErrEmailTaken is returned when registration or a profile update would
	// claim an email already owned by a different user.
	ErrEmailTaken = errors.New("email already in use")

	// ErrForbidden is returned when an authenticated actor lacks permission
	// for the attempted action.
	ErrForbidden = errors.New("access forbidden")

	ErrUnknownRole   = errors.New("unknown role")
	ErrUnknownStatus = errors.New("unknown job status")
)
