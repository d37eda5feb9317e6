package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fieldserve/jobs-system/internal/api/middleware"
	"github.com/fieldserve/jobs-system/internal/core/domain"
	"github.com/fieldserve/jobs-system/internal/core/ports"
)

type stubJobService struct {
	job  *domain.Job
	list *ports.JobListResult
	err  error

	lastCreate ports.CreateJobInput
	lastList   ports.ListJobsInput
	lastStatus domain.JobStatus
}

func (s *stubJobService) Create(_ context.Context, in ports.CreateJobInput, _ domain.Actor) (*domain.Job, error) {
	s.lastCreate = in
	return s.job, s.err
}

func (s *stubJobService) List(_ context.Context, in ports.ListJobsInput, _ domain.Actor) (*ports.JobListResult, error) {
	s.lastList = in
	return s.list, s.err
}

func (s *stubJobService) Get(context.Context, string, domain.Actor) (*domain.Job, error) {
	return s.job, s.err
}

func (s *stubJobService) Update(context.Context, string, ports.UpdateJobInput, domain.Actor) (*domain.Job, error) {
	return s.job, s.err
}

func (s *stubJobService) ChangeStatus(_ context.Context, _ string, status domain.JobStatus, _ domain.Actor) (*domain.Job, error) {
	s.lastStatus = status
	return s.job, s.err
}

func (s *stubJobService) Assign(context.Context, string, string, domain.Actor) (*domain.Job, error) {
	return s.job, s.err
}

func (s *stubJobService) Unassign(context.Context, string, domain.Actor) (*domain.Job, error) {
	return s.job, s.err
}

func (s *stubJobService) Remove(context.Context, string, domain.Actor) error {
	return s.err
}

func jobRequest(t *testing.T, method, path, body string, actor *domain.Actor) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		c.Set(middleware.ActorKey, *actor)
	}
	return c, rec
}

func TestJobHandler_Create_RequiresActor(t *testing.T) {
	h := NewJobHandler(&stubJobService{})
	c, _ := jobRequest(t, http.MethodPost, "/api/jobs", `{"title":"Fix sink","client_id":"c1"}`, nil)

	err := h.Create(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestJobHandler_Create_OK(t *testing.T) {
	svc := &stubJobService{job: &domain.Job{ID: "j1", Title: "Fix sink", Status: domain.StatusNew}}
	h := NewJobHandler(svc)
	actor := domain.Actor{ID: "u1", Role: domain.RoleUser}
	c, rec := jobRequest(t, http.MethodPost, "/api/jobs", `{"title":"Fix sink","client_id":"c1","price":120.5}`, &actor)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.lastCreate.Title != "Fix sink" || svc.lastCreate.ClientID != "c1" || svc.lastCreate.Price != 120.5 {
		t.Fatalf("input not forwarded: %+v", svc.lastCreate)
	}
}

func TestJobHandler_Create_RejectsUnknownStatus(t *testing.T) {
	h := NewJobHandler(&stubJobService{})
	actor := domain.Actor{ID: "a1", Role: domain.RoleAdmin}
	c, _ := jobRequest(t, http.MethodPost, "/api/jobs", `{"title":"Fix sink","client_id":"c1","status":"PAUSED"}`, &actor)

	err := h.Create(c)

	if !errors.Is(err, domain.ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestJobHandler_ChangeStatus_ParsesTarget(t *testing.T) {
	svc := &stubJobService{job: &domain.Job{ID: "j1", Status: domain.StatusDone}}
	h := NewJobHandler(svc)
	actor := domain.Actor{ID: "a1", Role: domain.RoleAdmin}
	c, rec := jobRequest(t, http.MethodPut, "/api/jobs/j1/status", `{"status":"DONE"}`, &actor)

	if err := h.ChangeStatus(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastStatus != domain.StatusDone {
		t.Fatalf("expected DONE forwarded, got %q", svc.lastStatus)
	}
}

func TestJobHandler_ChangeStatus_RejectsGarbage(t *testing.T) {
	h := NewJobHandler(&stubJobService{})
	actor := domain.Actor{ID: "a1", Role: domain.RoleAdmin}
	c, _ := jobRequest(t, http.MethodPut, "/api/jobs/j1/status", `{"status":"done-ish"}`, &actor)

	err := h.ChangeStatus(c)

	if !errors.Is(err, domain.ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestJobHandler_List_ForwardsQuery(t *testing.T) {
	svc := &stubJobService{list: &ports.JobListResult{Page: 2, Limit: 5}}
	h := NewJobHandler(svc)
	actor := domain.Actor{ID: "a1", Role: domain.RoleAdmin}
	c, rec := jobRequest(t, http.MethodGet, "/api/jobs?page=2&limit=5&status=NEW&search=sink", "", &actor)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastList.Page != 2 || svc.lastList.Limit != 5 {
		t.Fatalf("paging not forwarded: %+v", svc.lastList)
	}
	if svc.lastList.Status != domain.StatusNew || svc.lastList.Search != "sink" {
		t.Fatalf("filters not forwarded: %+v", svc.lastList)
	}
}

func TestJobHandler_Remove_NoContent(t *testing.T) {
	h := NewJobHandler(&stubJobService{})
	actor := domain.Actor{ID: "a1", Role: domain.RoleAdmin}
	c, rec := jobRequest(t, http.MethodDelete, "/api/jobs/j1", "", &actor)

	if err := h.Remove(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
