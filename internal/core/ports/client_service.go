package ports

import (
	"context"

	"github.com/fieldserve/jobs-system/internal/core/domain"
)

// CreateClientInput carries the data for a new client record.
type CreateClientInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
	Notes   string
}

// ListClientsInput carries parameters for the client listing.
type ListClientsInput struct {
	Page   int
	Limit  int
	Search string
}

// ClientListResult is the paginated client listing envelope.
type ClientListResult struct {
	Items []*domain.Client
	Total int64
	Page  int
	Limit int
}

// ClientWithJobs is a client together with its jobs, newest first.
type ClientWithJobs struct {
	Client *domain.Client
	Jobs   []*domain.Job
}

// ClientService defines client use cases. Create and Remove are ADMIN-only;
// the rest require authentication only.
type ClientService interface {
	Create(ctx context.Context, in CreateClientInput, actor domain.Actor) (*domain.Client, error)
	List(ctx context.Context, in ListClientsInput, actor domain.Actor) (*ClientListResult, error)
	Get(ctx context.Context, id string, actor domain.Actor) (*domain.Client, error)
	Update(ctx context.Context, id string, patch ClientPatch, actor domain.Actor) (*domain.Client, error)
	Remove(ctx context.Context, id string, actor domain.Actor) error
	Jobs(ctx context.Context, id string, actor domain.Actor) (*ClientWithJobs, error)
}
