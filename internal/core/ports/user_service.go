package ports

import (
	"context"
	"time"

	"github.com/fieldserve/jobs-system/internal/core/domain"
)

// ListUsersInput carries parameters for the admin user listing.
type ListUsersInput struct {
	Page   int
	Limit  int
	Search string
	Role   domain.Role
}

// UserListResult is the paginated user listing envelope.
type UserListResult struct {
	Items []*domain.User
	Total int64
	Page  int
	Limit int
}

// JobSummary is the compact job view embedded in a user profile.
type JobSummary struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Status    domain.JobStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

// UserProfile is a user together with the jobs assigned to them.
type UserProfile struct {
	User *domain.User
	Jobs []JobSummary
}

// UpdateProfileInput is a partial self-update. Nil fields are left untouched;
// a non-nil Password is rehashed before storage.
type UpdateProfileInput struct {
	Email    *string
	Name     *string
	Password *string
}

// UserService defines use-case operations on user accounts.
type UserService interface {
	// List is restricted to ADMIN actors.
	List(ctx context.Context, in ListUsersInput, actor domain.Actor) (*UserListResult, error)
	// Profile returns the acting user's own profile with assigned jobs.
	Profile(ctx context.Context, actor domain.Actor) (*UserProfile, error)
	// UpdateProfile applies a partial self-update. Fails with
	// domain.ErrEmailTaken when the new email belongs to a different user.
	UpdateProfile(ctx context.Context, in UpdateProfileInput, actor domain.Actor) (*domain.User, error)
}
