package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldserve/jobs-system/internal/core/authz"
	"github.com/fieldserve/jobs-system/internal/core/domain"
	"github.com/fieldserve/jobs-system/internal/core/ports"
)

// JobService enforces the job lifecycle: who may create, see, edit, assign and
// drive the status of a job. Every operation fails fast on the authorization
// check before any persistence is touched.
type JobService struct {
	jobs  ports.JobRepository
	users ports.UserRepository
	log   zerolog.Logger
}

func NewJobService(jobs ports.JobRepository, users ports.UserRepository, log zerolog.Logger) *JobService {
	return &JobService{jobs: jobs, users: users, log: log}
}

// Create inserts a new job. Any authenticated actor may create one; the status
// defaults to NEW. A supplied assignee is honored for ADMIN creators only and
// must resolve to an existing user.
func (s *JobService) Create(ctx context.Context, in ports.CreateJobInput, actor domain.Actor) (*domain.Job, error) {
	if err := authz.Decide(actor, authz.AnyAuthenticated, nil); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = domain.StatusNew
	}

	assignee := in.AssignedToID
	if actor.Role != domain.RoleAdmin {
		assignee = ""
	}
	if assignee != "" {
		if _, err := s.users.FindByID(ctx, assignee); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	job, err := s.jobs.Create(ctx, &domain.Job{
		Title:        in.Title,
		Description:  in.Description,
		Price:        in.Price,
		ScheduledAt:  in.ScheduledAt,
		ClientID:     in.ClientID,
		AssignedToID: assignee,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create job")
		return nil, err
	}

	s.log.Info().Str("job_id", job.ID).Str("client_id", job.ClientID).Msg("job created")
	return job, nil
}

// List returns a page of jobs. USER actors are always scoped to their own
// assignments: any assignee filter they supply is overridden.
func (s *JobService) List(ctx context.Context, in ports.ListJobsInput, actor domain.Actor) (*ports.JobListResult, error) {
	if err := authz.Decide(actor, authz.AnyAuthenticated, nil); err != nil {
		return nil, err
	}

	page, limit := normalizePage(in.Page, in.Limit)
	filter := ports.ListJobsFilter{
		ClientID: in.ClientID,
		Status:   in.Status,
		Search:   in.Search,
		Page:     page,
		Limit:    limit,
	}
	if actor.Role == domain.RoleUser {
		filter.AssignedToID = actor.ID
	} else {
		filter.AssignedToID = in.AssignedToID
	}

	items, total, err := s.jobs.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.JobListResult{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// Get returns a single job. USER actors may only fetch their own assignment.
func (s *JobService) Get(ctx context.Context, id string, actor domain.Actor) (*domain.Job, error) {
	if err := authz.Decide(actor, authz.AnyAuthenticated, nil); err != nil {
		return nil, err
	}

	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Decide(actor, nil, func(a domain.Actor) bool { return job.AssignedTo(a.ID) }); err != nil {
		return nil, err
	}
	return job, nil
}

// Update applies a partial edit. USER actors may edit only their own
// assignment, and their patches have the assignee and status fields silently
// dropped: only ADMIN changes either, and through this path too.
func (s *JobService) Update(ctx context.Context, id string, in ports.UpdateJobInput, actor domain.Actor) (*domain.Job, error) {
	if err := authz.Decide(actor, authz.AnyAuthenticated, nil); err != nil {
		return nil, err
	}

	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Decide(actor, nil, func(a domain.Actor) bool { return job.AssignedTo(a.ID) }); err != nil {
		return nil, err
	}

	patch := ports.JobPatch{
		Title:        in.Title,
		Description:  in.Description,
		Price:        in.Price,
		ScheduledAt:  in.ScheduledAt,
		ClientID:     in.ClientID,
		AssignedToID: in.AssignedToID,
		Status:       in.Status,
	}
	if actor.Role != domain.RoleAdmin {
		// Not an error: the fields are dropped as a no-op so a user cannot
		// self-reassign or flip status through the general update call.
		patch.AssignedToID = nil
		patch.Status = nil
	}
	if patch.AssignedToID != nil && *patch.AssignedToID != "" {
		if _, err := s.users.FindByID(ctx, *patch.AssignedToID); err != nil {
			return nil, err
		}
	}

	return s.jobs.Update(ctx, id, patch)
}

// ChangeStatus moves the job to any of the five statuses. ADMIN only; the
// domain deliberately allows every direction, including backwards.
func (s *JobService) ChangeStatus(ctx context.Context, id string, status domain.JobStatus, actor domain.Actor) (*domain.Job, error) {
	if err := authz.Decide(actor, authz.AdminOnly, nil); err != nil {
		return nil, err
	}
	if _, err := domain.ParseJobStatus(string(status)); err != nil {
		return nil, err
	}
	if _, err := s.jobs.FindByID(ctx, id); err != nil {
		return nil, err
	}

	job, err := s.jobs.Update(ctx, id, ports.JobPatch{Status: &status})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("job_id", id).Str("status", string(status)).Msg("job status changed")
	return job, nil
}

// Assign hands the job to an existing user. ADMIN only.
func (s *JobService) Assign(ctx context.Context, id, userID string, actor domain.Actor) (*domain.Job, error) {
	if err := authz.Decide(actor, authz.AdminOnly, nil); err != nil {
		return nil, err
	}
	if _, err := s.jobs.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	job, err := s.jobs.Update(ctx, id, ports.JobPatch{AssignedToID: &userID})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("job_id", id).Str("user_id", userID).Msg("job assigned")
	return job, nil
}

// Unassign clears the assignee. ADMIN only; succeeds without error on an
// already-unassigned job.
func (s *JobService) Unassign(ctx context.Context, id string, actor domain.Actor) (*domain.Job, error) {
	if err := authz.Decide(actor, authz.AdminOnly, nil); err != nil {
		return nil, err
	}
	if _, err := s.jobs.FindByID(ctx, id); err != nil {
		return nil, err
	}

	nobody := ""
	return s.jobs.Update(ctx, id, ports.JobPatch{AssignedToID: &nobody})
}

// Remove deletes the job. ADMIN only.
func (s *JobService) Remove(ctx context.Context, id string, actor domain.Actor) error {
	if err := authz.Decide(actor, authz.AdminOnly, nil); err != nil {
		return err
	}
	if _, err := s.jobs.FindByID(ctx, id); err != nil {
		return err
	}
	return s.jobs.Delete(ctx, id)
}
