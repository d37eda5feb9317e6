package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fieldserve/jobs-system/internal/core/authz"
	"github.com/fieldserve/jobs-system/internal/core/domain"
	"github.com/fieldserve/jobs-system/internal/core/ports"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// UserService implements account listing, profile reads and self-updates.
type UserService struct {
	users ports.UserRepository
	jobs  ports.JobRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, jobs ports.JobRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, jobs: jobs, log: log}
}

// List returns a page of users. ADMIN only.
func (s *UserService) List(ctx context.Context, in ports.ListUsersInput, actor domain.Actor) (*ports.UserListResult, error) {
	if err := authz.Decide(actor, authz.AdminOnly, nil); err != nil {
		return nil, err
	}
	if in.Role != "" && !in.Role.Valid() {
		return nil, domain.ErrUnknownRole
	}

	page, limit := normalizePage(in.Page, in.Limit)
	items, total, err := s.users.List(ctx, ports.ListUsersFilter{
		Search: in.Search,
		Role:   in.Role,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	return &ports.UserListResult{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// Profile returns the acting user's record together with their assigned jobs.
func (s *UserService) Profile(ctx context.Context, actor domain.Actor) (*ports.UserProfile, error) {
	if err := authz.Decide(actor, authz.AnyAuthenticated, nil); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	jobs, err := s.jobs.FindByAssignee(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.JobSummary, 0, len(jobs))
	for _, j := range jobs {
		summaries = append(summaries, ports.JobSummary{
			ID:        j.ID,
			Title:     j.Title,
			Status:    j.Status,
			CreatedAt: j.CreatedAt,
		})
	}

	return &ports.UserProfile{User: user, Jobs: summaries}, nil
}

// UpdateProfile applies a partial self-update. Email collisions with a
// different user are rejected; a supplied password is rehashed, an absent one
// leaves the stored hash untouched.
func (s *UserService) UpdateProfile(ctx context.Context, in ports.UpdateProfileInput, actor domain.Actor) (*domain.User, error) {
	if err := authz.Decide(actor, authz.AnyAuthenticated, nil); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != user.Email {
		other, err := s.users.FindByEmail(ctx, *in.Email)
		if err == nil && other.ID != user.ID {
			return nil, domain.ErrEmailTaken
		}
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user.Email = *in.Email
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("profile updated")
	return updated, nil
}

// normalizePage applies defaults and caps the page size.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
