package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fieldserve/jobs-system/internal/core/domain"
	"github.com/fieldserve/jobs-system/internal/core/ports"
)

// AuthService is the session façade: registration, login and token refresh.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenService
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log}
}

// Register creates a new account with the default USER role and issues a
// session. The email must not be registered yet.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*ports.Session, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = displayNameFromEmail(email)
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	pair, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")

	return &ports.Session{User: user, Tokens: pair}, nil
}

// Login verifies the password against the stored hash and issues a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &ports.Session{User: user, Tokens: pair}, nil
}

// Refresh validates the refresh token, re-resolves the user behind its subject
// and issues a fresh pair. A subject that no longer exists fails with
// domain.ErrUserNotFound.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.Session, error) {
	subjectID, err := s.tokens.Validate(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	pair, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &ports.Session{User: user, Tokens: pair}, nil
}

// displayNameFromEmail derives a fallback display name from the email's local
// part when registration supplies none.
func displayNameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
