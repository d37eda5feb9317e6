package ports

import (
	"context"

	"github.com/fieldserve/jobs-system/internal/core/domain"
)

// AssigneeJobCount is one row of the jobs-per-assignee aggregation. An empty
// UserID bucket counts unassigned jobs.
type AssigneeJobCount struct {
	UserID string
	Count  int64
}

// StatsRepository defines the aggregate queries behind the stats endpoints.
type StatsRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountClients(ctx context.Context) (int64, error)
	CountJobs(ctx context.Context) (int64, error)
	CountJobsByStatus(ctx context.Context) (map[domain.JobStatus]int64, error)
	LastJobs(ctx context.Context, limit int) ([]*domain.Job, error)
	CountJobsByAssignee(ctx context.Context) ([]AssigneeJobCount, error)
}

// Overview is the admin dashboard aggregate.
type Overview struct {
	UsersCount   int64                      `json:"users_count"`
	ClientsCount int64                      `json:"clients_count"`
	JobsCount    int64                      `json:"jobs_count"`
	JobsByStatus map[domain.JobStatus]int64 `json:"jobs_by_status"`
	LastJobs     []*domain.Job              `json:"last_jobs"`
}

// UserJobsCount joins an assignee with their job count.
type UserJobsCount struct {
	UserID    string      `json:"user_id"`
	Name      string      `json:"name"`
	Email     string      `json:"email,omitempty"`
	Role      domain.Role `json:"role,omitempty"`
	JobsCount int64       `json:"jobs_count"`
}

// JobsByUserResult is the per-assignee workload report.
type JobsByUserResult struct {
	Users          []UserJobsCount `json:"users"`
	UnassignedJobs int64           `json:"unassigned_jobs"`
}

// StatsService defines the ADMIN-only reporting use cases.
type StatsService interface {
	Overview(ctx context.Context, actor domain.Actor) (*Overview, error)
	JobsByUser(ctx context.Context, actor domain.Actor) (*JobsByUserResult, error)
}
