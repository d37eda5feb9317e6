package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fieldserve/jobs-system/internal/api/metrics"
	"github.com/fieldserve/jobs-system/internal/core/domain"
	"github.com/fieldserve/jobs-system/internal/core/ports"
)

type JobHandler struct {
	jobService ports.JobService
}

func NewJobHandler(jobService ports.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

type createJobRequest struct {
	Title        string     `json:"title" validate:"required,min=2"`
	Description  string     `json:"description"`
	Price        float64    `json:"price" validate:"gte=0"`
	ScheduledAt  *time.Time `json:"scheduled_at"`
	ClientID     string     `json:"client_id" validate:"required"`
	AssignedToID string     `json:"assigned_to_id"`
	Status       string     `json:"status"`
}

type updateJobRequest struct {
	Title        *string    `json:"title" validate:"omitempty,min=2"`
	Description  *string    `json:"description"`
	Price        *float64   `json:"price" validate:"omitempty,gte=0"`
	ScheduledAt  *time.Time `json:"scheduled_at"`
	ClientID     *string    `json:"client_id"`
	AssignedToID *string    `json:"assigned_to_id"`
	Status       *string    `json:"status"`
}

type changeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type assignJobRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type jobListResponse struct {
	Items []*domain.Job `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// Create registers a new job. A non-admin creator cannot pick an assignee.
//
// @Summary      Create a job
// @Tags         jobs
// @Security     BearerAuth
// @Router       /api/jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := ports.CreateJobInput{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		ScheduledAt:  req.ScheduledAt,
		ClientID:     req.ClientID,
		AssignedToID: req.AssignedToID,
	}
	if req.Status != "" {
		status, err := domain.ParseJobStatus(req.Status)
		if err != nil {
			return err
		}
		in.Status = status
	}

	job, err := h.jobService.Create(c.Request().Context(), in, actor)
	if err != nil {
		return err
	}

	metrics.JobsCreatedTotal.WithLabelValues(string(job.Status)).Inc()
	return c.JSON(http.StatusCreated, job)
}

// List returns a page of jobs. USER actors only ever see their own
// assignments regardless of the filter they send.
//
// @Summary      List jobs
// @Tags         jobs
// @Security     BearerAuth
// @Router       /api/jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	in := ports.ListJobsInput{
		Page:         queryInt(c, "page"),
		Limit:        queryInt(c, "limit"),
		ClientID:     c.QueryParam("client_id"),
		AssignedToID: c.QueryParam("assigned_to_id"),
		Search:       c.QueryParam("search"),
	}
	if raw := c.QueryParam("status"); raw != "" {
		status, err := domain.ParseJobStatus(raw)
		if err != nil {
			return err
		}
		in.Status = status
	}

	result, err := h.jobService.List(c.Request().Context(), in, actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, jobListResponse{
		Items: result.Items,
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
	})
}

// Get returns a single job.
//
// @Summary      Get a job
// @Tags         jobs
// @Security     BearerAuth
// @Router       /api/jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	job, err := h.jobService.Get(c.Request().Context(), c.Param("id"), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// Update applies a partial job update.
//
// @Summary      Update a job
// @Tags         jobs
// @Security     BearerAuth
// @Router       /api/jobs/{id} [put]
func (h *JobHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := ports.UpdateJobInput{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		ScheduledAt:  req.ScheduledAt,
		ClientID:     req.ClientID,
		AssignedToID: req.AssignedToID,
	}
	if req.Status != nil {
		status, err := domain.ParseJobStatus(*req.Status)
		if err != nil {
			return err
		}
		in.Status = &status
	}

	job, err := h.jobService.Update(c.Request().Context(), c.Param("id"), in, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// ChangeStatus moves a job to a new status. ADMIN only.
//
// @Summary      Change job status
// @Tags         jobs
// @Security     BearerAuth
// @Router       /api/jobs/{id}/status [put]
func (h *JobHandler) ChangeStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req changeStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	status, err := domain.ParseJobStatus(req.Status)
	if err != nil {
		return err
	}

	job, err := h.jobService.ChangeStatus(c.Request().Context(), c.Param("id"), status, actor)
	if err != nil {
		return err
	}

	metrics.JobStatusChangesTotal.WithLabelValues(string(job.Status)).Inc()
	return c.JSON(http.StatusOK, job)
}

// Assign hands a job to a user. ADMIN only.
//
// @Summary      Assign a job
// @Tags         jobs
// @Security     BearerAuth
// @Router       /api/jobs/{id}/assign [put]
func (h *JobHandler) Assign(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req assignJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	job, err := h.jobService.Assign(c.Request().Context(), c.Param("id"), req.UserID, actor)
	if err != nil {
		return err
	}

	metrics.JobAssignmentsTotal.WithLabelValues("assign").Inc()
	return c.JSON(http.StatusOK, job)
}

// Unassign clears a job's assignee. ADMIN only, idempotent.
//
// @Summary      Unassign a job
// @Tags         jobs
// @Security     BearerAuth
// @Router       /api/jobs/{id}/unassign [put]
func (h *JobHandler) Unassign(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	job, err := h.jobService.Unassign(c.Request().Context(), c.Param("id"), actor)
	if err != nil {
		return err
	}

	metrics.JobAssignmentsTotal.WithLabelValues("unassign").Inc()
	return c.JSON(http.StatusOK, job)
}

// Remove deletes a job. ADMIN only.
//
// @Summary      Delete a job
// @Tags         jobs
// @Security     BearerAuth
// @Router       /api/jobs/{id} [delete]
func (h *JobHandler) Remove(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.jobService.Remove(c.Request().Context(), c.Param("id"), actor); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
