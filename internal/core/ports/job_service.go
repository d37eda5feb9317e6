package ports

import (
	"context"
	"time"

	"github.com/fieldserve/jobs-system/internal/core/domain"
)

// CreateJobInput carries all data needed to create a job. Status defaults to
// NEW when empty. AssignedToID is honored for ADMIN creators only.
type CreateJobInput struct {
	Title        string
	Description  string
	Price        float64
	ScheduledAt  *time.Time
	ClientID     string
	AssignedToID string
	Status       domain.JobStatus
}

// UpdateJobInput is the patch accepted by the general update path. For USER
// actors the AssignedToID and Status fields are silently dropped before the
// patch is applied.
type UpdateJobInput struct {
	Title        *string
	Description  *string
	Price        *float64
	ScheduledAt  *time.Time
	ClientID     *string
	AssignedToID *string
	Status       *domain.JobStatus
}

// ListJobsInput carries all parameters for the job listing.
type ListJobsInput struct {
	Page         int
	Limit        int
	Status       domain.JobStatus
	ClientID     string
	AssignedToID string // honored for ADMIN; overridden with the actor id for USER
	Search       string
}

// JobListResult is the paginated job listing envelope.
type JobListResult struct {
	Items []*domain.Job
	Total int64
	Page  int
	Limit int
}

// JobService defines the job lifecycle use cases. Every operation takes the
// acting identity explicitly and runs the authorization engine before touching
// persistence.
type JobService interface {
	Create(ctx context.Context, in CreateJobInput, actor domain.Actor) (*domain.Job, error)
	List(ctx context.Context, in ListJobsInput, actor domain.Actor) (*JobListResult, error)
	Get(ctx context.Context, id string, actor domain.Actor) (*domain.Job, error)
	Update(ctx context.Context, id string, in UpdateJobInput, actor domain.Actor) (*domain.Job, error)
	// ChangeStatus is ADMIN-only and accepts any target status: the domain
	// imposes no directed transition graph.
	ChangeStatus(ctx context.Context, id string, status domain.JobStatus, actor domain.Actor) (*domain.Job, error)
	// Assign is ADMIN-only; the target user must exist.
	Assign(ctx context.Context, id, userID string, actor domain.Actor) (*domain.Job, error)
	// Unassign is ADMIN-only and idempotent.
	Unassign(ctx context.Context, id string, actor domain.Actor) (*domain.Job, error)
	Remove(ctx context.Context, id string, actor domain.Actor) error
}
