package ports

import (
	"context"

	"github.com/fieldserve/jobs-system/internal/core/domain"
)

// ListClientsFilter carries the query parameters for listing clients.
type ListClientsFilter struct {
	Search string // optional: case-insensitive match on name, email or phone
	Page   int    // 1-based
	Limit  int
}

// ClientPatch is a partial client update. Nil fields are left untouched.
type ClientPatch struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
	Notes   *string
}

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, filter ListClientsFilter) ([]*domain.Client, int64, error)
	Update(ctx context.Context, id string, patch ClientPatch) (*domain.Client, error)
	Delete(ctx context.Context, id string) error
}
