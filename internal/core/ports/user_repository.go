package ports

import (
	"context"

	"github.com/fieldserve/jobs-system/internal/core/domain"
)

// ListUsersFilter carries the query parameters for listing users.
type ListUsersFilter struct {
	Search string      // optional: case-insensitive match on email or name
	Role   domain.Role // optional: filter by role
	Page   int         // 1-based
	Limit  int
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// List returns a page of users matching filter and the total count.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	// Update persists email, name, password hash and role changes.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
}
