package ports

import (
	"context"

	"github.com/fieldserve/jobs-system/internal/core/domain"
)

// Session is the result of a successful authentication flow.
type Session struct {
	User   *domain.User
	Tokens domain.TokenPair
}

// AuthService is the session façade: it composes the user store, the password
// hasher and the token service.
type AuthService interface {
	// Register creates a new USER account and issues a session.
	// Fails with domain.ErrEmailTaken when the email is already registered.
	Register(ctx context.Context, email, password, name string) (*Session, error)
	// Login verifies the password and issues a session.
	Login(ctx context.Context, email, password string) (*Session, error)
	// Refresh validates a refresh token, re-resolves the user and issues a
	// fresh pair.
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
}
