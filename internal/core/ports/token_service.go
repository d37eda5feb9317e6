package ports

import (
	"github.com/fieldserve/jobs-system/internal/core/domain"
)

// TokenService issues and validates signed, time-bounded session tokens.
// Validation is a pure computation: no I/O, no shared state.
type TokenService interface {
	// Issue produces a fresh access/refresh pair for the given subject.
	Issue(subjectID string) (domain.TokenPair, error)
	// Validate verifies signature and expiry and returns the subject id.
	// Fails with domain.ErrInvalidCredentials on any cryptographic or
	// structural failure, and with domain.ErrMalformedToken when the
	// signature verifies but the subject claim is absent.
	Validate(token string) (string, error)
}
