package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/fieldserve/jobs-system/internal/core/domain"
	"github.com/fieldserve/jobs-system/internal/core/ports"
)

// stubJobRepo is an in-memory ports.JobRepository.
type stubJobRepo struct {
	jobs map[string]*domain.Job
	seq  int
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{jobs: make(map[string]*domain.Job)}
}

func cloneJob(j *domain.Job) *domain.Job {
	if j == nil {
		return nil
	}
	clone := *j
	return &clone
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.Job) (*domain.Job, error) {
	r.seq++
	clone := cloneJob(job)
	clone.ID = fmt.Sprintf("j%d", r.seq)
	r.jobs[clone.ID] = cloneJob(clone)
	return clone, nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return cloneJob(j), nil
}

func (r *stubJobRepo) List(_ context.Context, filter ports.ListJobsFilter) ([]*domain.Job, int64, error) {
	var matched []*domain.Job
	for _, j := range r.jobs {
		if filter.AssignedToID != "" && j.AssignedToID != filter.AssignedToID {
			continue
		}
		if filter.ClientID != "" && j.ClientID != filter.ClientID {
			continue
		}
		if filter.Status != "" && j.Status != filter.Status {
			continue
		}
		if filter.Search != "" {
			s := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(j.Title), s) && !strings.Contains(strings.ToLower(j.Description), s) {
				continue
			}
		}
		matched = append(matched, cloneJob(j))
	}
	sort.Slice(matched, func(i, k int) bool { return matched[i].ID < matched[k].ID })

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubJobRepo) Update(_ context.Context, id string, patch ports.JobPatch) (*domain.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	if patch.Title != nil {
		j.Title = *patch.Title
	}
	if patch.Description != nil {
		j.Description = *patch.Description
	}
	if patch.Price != nil {
		j.Price = *patch.Price
	}
	if patch.ScheduledAt != nil {
		j.ScheduledAt = patch.ScheduledAt
	}
	if patch.ClientID != nil {
		j.ClientID = *patch.ClientID
	}
	if patch.AssignedToID != nil {
		j.AssignedToID = *patch.AssignedToID
	}
	if patch.Status != nil {
		j.Status = *patch.Status
	}
	j.UpdatedAt = time.Now().UTC()
	return cloneJob(j), nil
}

func (r *stubJobRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.jobs[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *stubJobRepo) FindByAssignee(_ context.Context, userID string) ([]*domain.Job, error) {
	var out []*domain.Job
	for _, j := range r.jobs {
		if j.AssignedToID == userID && userID != "" {
			out = append(out, cloneJob(j))
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out, nil
}

func (r *stubJobRepo) FindByClient(_ context.Context, clientID string) ([]*domain.Job, error) {
	var out []*domain.Job
	for _, j := range r.jobs {
		if j.ClientID == clientID {
			out = append(out, cloneJob(j))
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out, nil
}

type jobFixture struct {
	svc   *JobService
	jobs  *stubJobRepo
	users *stubUserRepo
	admin domain.Actor
	user  domain.Actor
}

func newJobFixture(t *testing.T) *jobFixture {
	t.Helper()
	users := newStubUserRepo()
	jobs := newStubJobRepo()

	admin, err := users.Create(context.Background(), &domain.User{Email: "admin@example.com", Name: "Admin", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	worker, err := users.Create(context.Background(), &domain.User{Email: "worker@example.com", Name: "Worker", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("create worker: %v", err)
	}

	return &jobFixture{
		svc:   NewJobService(jobs, users, testLogger()),
		jobs:  jobs,
		users: users,
		admin: domain.Actor{ID: admin.ID, Role: admin.Role},
		user:  domain.Actor{ID: worker.ID, Role: worker.Role},
	}
}

func (f *jobFixture) createJob(t *testing.T, in ports.CreateJobInput, actor domain.Actor) *domain.Job {
	t.Helper()
	job, err := f.svc.Create(context.Background(), in, actor)
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	return job
}

func TestJobService_Create_DefaultsToNew(t *testing.T) {
	f := newJobFixture(t)

	job := f.createJob(t, ports.CreateJobInput{Title: "Fix boiler", ClientID: "c1"}, f.user)
	if job.Status != domain.StatusNew {
		t.Fatalf("expected NEW, got %s", job.Status)
	}
}

func TestJobService_Create_UserCannotSelfAssign(t *testing.T) {
	f := newJobFixture(t)

	job := f.createJob(t, ports.CreateJobInput{Title: "Fix sink", ClientID: "c1", AssignedToID: f.user.ID}, f.user)
	if job.AssignedToID != "" {
		t.Fatalf("expected assignee dropped for user creator, got %q", job.AssignedToID)
	}
}

func TestJobService_Create_AdminAssigneeMustExist(t *testing.T) {
	f := newJobFixture(t)

	_, err := f.svc.Create(context.Background(), ports.CreateJobInput{Title: "Install", ClientID: "c1", AssignedToID: "nobody"}, f.admin)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestJobService_ChangeStatus_UserAlwaysForbidden(t *testing.T) {
	f := newJobFixture(t)

	job := f.createJob(t, ports.CreateJobInput{Title: "Paint", ClientID: "c1"}, f.admin)
	if _, err := f.svc.Assign(context.Background(), job.ID, f.user.ID, f.admin); err != nil {
		t.Fatalf("assign: %v", err)
	}

	// Ownership does not matter: status changes are role-gated.
	_, err := f.svc.ChangeStatus(context.Background(), job.ID, domain.StatusDone, f.user)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestJobService_ChangeStatus_AnyDirection(t *testing.T) {
	f := newJobFixture(t)

	job := f.createJob(t, ports.CreateJobInput{Title: "Audit", ClientID: "c1"}, f.admin)

	// The status graph is deliberately unconstrained: DONE back to NEW is
	// legal, as is every other pairing.
	for _, status := range []domain.JobStatus{domain.StatusDone, domain.StatusNew, domain.StatusCancelled, domain.StatusInProgress} {
		updated, err := f.svc.ChangeStatus(context.Background(), job.ID, status, f.admin)
		if err != nil {
			t.Fatalf("change to %s: %v", status, err)
		}
		if updated.Status != status {
			t.Fatalf("expected %s, got %s", status, updated.Status)
		}
	}
}

func TestJobService_ChangeStatus_RejectsUnknownStatus(t *testing.T) {
	f := newJobFixture(t)

	job := f.createJob(t, ports.CreateJobInput{Title: "Audit", ClientID: "c1"}, f.admin)
	_, err := f.svc.ChangeStatus(context.Background(), job.ID, domain.JobStatus("ARCHIVED"), f.admin)
	if !errors.Is(err, domain.ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestJobService_Assign_UnknownUser(t *testing.T) {
	f := newJobFixture(t)

	job := f.createJob(t, ports.CreateJobInput{Title: "Wire", ClientID: "c1"}, f.admin)

	_, err := f.svc.Assign(context.Background(), job.ID, "nobody", f.admin)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	unchanged, _ := f.jobs.FindByID(context.Background(), job.ID)
	if unchanged.AssignedToID != "" {
		t.Fatalf("job must be unchanged after failed assign, got assignee %q", unchanged.AssignedToID)
	}
}

func TestJobService_Unassign_Idempotent(t *testing.T) {
	f := newJobFixture(t)

	job := f.createJob(t, ports.CreateJobInput{Title: "Mow", ClientID: "c1"}, f.admin)

	for i := 0; i < 2; i++ {
		updated, err := f.svc.Unassign(context.Background(), job.ID, f.admin)
		if err != nil {
			t.Fatalf("unassign pass %d: %v", i+1, err)
		}
		if updated.AssignedToID != "" {
			t.Fatalf("expected empty assignee, got %q", updated.AssignedToID)
		}
	}
}

func TestJobService_Update_UserPatchStripsProtectedFields(t *testing.T) {
	f := newJobFixture(t)

	job := f.createJob(t, ports.CreateJobInput{Title: "Old title", ClientID: "c1"}, f.admin)
	if _, err := f.svc.Assign(context.Background(), job.ID, f.user.ID, f.admin); err != nil {
		t.Fatalf("assign: %v", err)
	}

	title := "New title"
	other := "u999"
	done := domain.StatusDone
	updated, err := f.svc.Update(context.Background(), job.ID, ports.UpdateJobInput{
		Title:        &title,
		AssignedToID: &other,
		Status:       &done,
	}, f.user)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Title != "New title" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	if updated.AssignedToID != f.user.ID {
		t.Fatalf("assignee must be unchanged, got %q", updated.AssignedToID)
	}
	if updated.Status != domain.StatusNew {
		t.Fatalf("status must be unchanged, got %s", updated.Status)
	}
}

func TestJobService_Update_UserCannotEditForeignJob(t *testing.T) {
	f := newJobFixture(t)

	job := f.createJob(t, ports.CreateJobInput{Title: "Foreign", ClientID: "c1"}, f.admin)

	title := "Hijack"
	_, err := f.svc.Update(context.Background(), job.ID, ports.UpdateJobInput{Title: &title}, f.user)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on unassigned job, got %v", err)
	}
}

func TestJobService_Get_UserScopedToOwnAssignment(t *testing.T) {
	f := newJobFixture(t)

	mine := f.createJob(t, ports.CreateJobInput{Title: "Mine", ClientID: "c1"}, f.admin)
	foreign := f.createJob(t, ports.CreateJobInput{Title: "Foreign", ClientID: "c1"}, f.admin)
	if _, err := f.svc.Assign(context.Background(), mine.ID, f.user.ID, f.admin); err != nil {
		t.Fatalf("assign: %v", err)
	}

	if _, err := f.svc.Get(context.Background(), mine.ID, f.user); err != nil {
		t.Fatalf("own job must be visible: %v", err)
	}
	if _, err := f.svc.Get(context.Background(), foreign.ID, f.user); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := f.svc.Get(context.Background(), foreign.ID, f.admin); err != nil {
		t.Fatalf("admin sees everything: %v", err)
	}
}

func TestJobService_List_Scoping(t *testing.T) {
	f := newJobFixture(t)

	mine := f.createJob(t, ports.CreateJobInput{Title: "Mine", ClientID: "c1"}, f.admin)
	f.createJob(t, ports.CreateJobInput{Title: "Unassigned", ClientID: "c1"}, f.admin)
	if _, err := f.svc.Assign(context.Background(), mine.ID, f.user.ID, f.admin); err != nil {
		t.Fatalf("assign: %v", err)
	}

	// USER sees exactly their own assignments, even with a foreign filter.
	result, err := f.svc.List(context.Background(), ports.ListJobsInput{AssignedToID: "someone-else"}, f.user)
	if err != nil {
		t.Fatalf("list as user: %v", err)
	}
	if result.Total != 1 || len(result.Items) != 1 || result.Items[0].ID != mine.ID {
		t.Fatalf("user list must contain only own job, got %+v", result)
	}

	// ADMIN sees everything by default.
	result, err = f.svc.List(context.Background(), ports.ListJobsInput{}, f.admin)
	if err != nil {
		t.Fatalf("list as admin: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("admin list must contain all jobs, got total %d", result.Total)
	}

	// ADMIN's assignee filter narrows further.
	result, err = f.svc.List(context.Background(), ports.ListJobsInput{AssignedToID: f.user.ID}, f.admin)
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if result.Total != 1 || result.Items[0].ID != mine.ID {
		t.Fatalf("admin assignee filter broken, got %+v", result)
	}
}

func TestJobService_Remove_AdminOnly(t *testing.T) {
	f := newJobFixture(t)

	job := f.createJob(t, ports.CreateJobInput{Title: "Temp", ClientID: "c1"}, f.admin)

	if err := f.svc.Remove(context.Background(), job.ID, f.user); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := f.svc.Remove(context.Background(), job.ID, f.admin); err != nil {
		t.Fatalf("remove as admin: %v", err)
	}
	if _, err := f.jobs.FindByID(context.Background(), job.ID); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("job should be gone, got %v", err)
	}
}

// Full lifecycle walk: admin creates, assigns to a worker, the worker edits the
// title (attempting a reassign that is silently dropped), the admin completes.
func TestJobService_Lifecycle_Scenario(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()

	third, err := f.users.Create(ctx, &domain.User{Email: "third@example.com", Name: "Third", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("create third user: %v", err)
	}

	job := f.createJob(t, ports.CreateJobInput{Title: "Service visit", ClientID: "c1"}, f.admin)
	if job.Status != domain.StatusNew {
		t.Fatalf("expected NEW, got %s", job.Status)
	}

	if _, err := f.svc.Assign(ctx, job.ID, f.user.ID, f.admin); err != nil {
		t.Fatalf("assign: %v", err)
	}

	title := "Service visit (rescheduled)"
	updated, err := f.svc.Update(ctx, job.ID, ports.UpdateJobInput{
		Title:        &title,
		AssignedToID: &third.ID,
	}, f.user)
	if err != nil {
		t.Fatalf("worker update: %v", err)
	}
	if updated.Title != title {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	if updated.AssignedToID != f.user.ID {
		t.Fatalf("worker must not reassign, got %q", updated.AssignedToID)
	}

	final, err := f.svc.ChangeStatus(ctx, job.ID, domain.StatusDone, f.admin)
	if err != nil {
		t.Fatalf("change status: %v", err)
	}
	if final.Status != domain.StatusDone {
		t.Fatalf("expected DONE, got %s", final.Status)
	}
}
