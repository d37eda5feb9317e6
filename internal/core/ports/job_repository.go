package ports

import (
	"context"
	"time"

	"github.com/fieldserve/jobs-system/internal/core/domain"
)

// ListJobsFilter carries all query parameters for listing jobs. AssignedToID
// is always enforced by the service layer for USER actors.
type ListJobsFilter struct {
	AssignedToID string           // empty = no assignee filter
	ClientID     string           // optional
	Status       domain.JobStatus // optional
	Search       string           // optional: case-insensitive match on title or description
	Page         int              // 1-based
	Limit        int
}

// JobPatch is a partial job update. Nil fields are left untouched. A non-nil
// AssignedToID pointing at an empty string clears the assignment.
type JobPatch struct {
	Title        *string
	Description  *string
	Price        *float64
	ScheduledAt  *time.Time
	ClientID     *string
	AssignedToID *string
	Status       *domain.JobStatus
}

// JobRepository defines persistence operations for jobs.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	// List returns a page of jobs matching filter (newest first) and the
	// total count for the same filter.
	List(ctx context.Context, filter ListJobsFilter) ([]*domain.Job, int64, error)
	Update(ctx context.Context, id string, patch JobPatch) (*domain.Job, error)
	Delete(ctx context.Context, id string) error
	// FindByAssignee returns every job assigned to the given user, newest first.
	FindByAssignee(ctx context.Context, userID string) ([]*domain.Job, error)
	// FindByClient returns every job for the given client, newest first.
	FindByClient(ctx context.Context, clientID string) ([]*domain.Job, error)
}
