package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/fieldserve/jobs-system/internal/core/authz"
	"github.com/fieldserve/jobs-system/internal/core/domain"
	"github.com/fieldserve/jobs-system/internal/core/ports"
)

// StatsCache abstracts the short-lived overview cache (Redis). A nil cache
// disables caching; cache failures are never fatal.
type StatsCache interface {
	GetOverview(ctx context.Context) (*ports.Overview, bool)
	SetOverview(ctx context.Context, o *ports.Overview)
}

const lastJobsLimit = 5

// StatsService serves the ADMIN reporting endpoints.
type StatsService struct {
	stats ports.StatsRepository
	users ports.UserRepository
	cache StatsCache
	log   zerolog.Logger
}

func NewStatsService(stats ports.StatsRepository, users ports.UserRepository, cache StatsCache, log zerolog.Logger) *StatsService {
	return &StatsService{stats: stats, users: users, cache: cache, log: log}
}

// Overview aggregates entity counts, the jobs-by-status breakdown and the five
// most recent jobs.
func (s *StatsService) Overview(ctx context.Context, actor domain.Actor) (*ports.Overview, error) {
	if err := authz.Decide(actor, authz.AdminOnly, nil); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if cached, ok := s.cache.GetOverview(ctx); ok {
			return cached, nil
		}
	}

	usersCount, err := s.stats.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	clientsCount, err := s.stats.CountClients(ctx)
	if err != nil {
		return nil, err
	}
	jobsCount, err := s.stats.CountJobs(ctx)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.stats.CountJobsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	// Every status appears in the map, zero included.
	jobsByStatus := make(map[domain.JobStatus]int64, len(domain.JobStatuses))
	for _, st := range domain.JobStatuses {
		jobsByStatus[st] = byStatus[st]
	}

	lastJobs, err := s.stats.LastJobs(ctx, lastJobsLimit)
	if err != nil {
		return nil, err
	}

	overview := &ports.Overview{
		UsersCount:   usersCount,
		ClientsCount: clientsCount,
		JobsCount:    jobsCount,
		JobsByStatus: jobsByStatus,
		LastJobs:     lastJobs,
	}

	if s.cache != nil {
		s.cache.SetOverview(ctx, overview)
	}
	return overview, nil
}

// JobsByUser reports how many jobs each assignee carries, plus the count of
// unassigned jobs.
func (s *StatsService) JobsByUser(ctx context.Context, actor domain.Actor) (*ports.JobsByUserResult, error) {
	if err := authz.Decide(actor, authz.AdminOnly, nil); err != nil {
		return nil, err
	}

	rows, err := s.stats.CountJobsByAssignee(ctx)
	if err != nil {
		return nil, err
	}

	result := &ports.JobsByUserResult{Users: []ports.UserJobsCount{}}
	for _, row := range rows {
		if row.UserID == "" {
			result.UnassignedJobs = row.Count
			continue
		}

		entry := ports.UserJobsCount{UserID: row.UserID, Name: "Unknown", JobsCount: row.Count}
		user, err := s.users.FindByID(ctx, row.UserID)
		switch {
		case err == nil:
			entry.Name = user.Name
			entry.Email = user.Email
			entry.Role = user.Role
		case errors.Is(err, domain.ErrUserNotFound):
			// Assignee deleted since; keep the count under "Unknown".
		default:
			return nil, err
		}
		result.Users = append(result.Users, entry)
	}

	return result, nil
}
