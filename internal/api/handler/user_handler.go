package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldserve/jobs-system/internal/core/domain"
	"github.com/fieldserve/jobs-system/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type updateProfileRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Name     *string `json:"name"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

type userListResponse struct {
	Items []*domain.User `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

type profileResponse struct {
	User *domain.User       `json:"user"`
	Jobs []ports.JobSummary `json:"jobs"`
}

// List returns a page of accounts. ADMIN only.
//
// @Summary      List users
// @Tags         users
// @Security     BearerAuth
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	in := ports.ListUsersInput{
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
		Search: c.QueryParam("search"),
		Role:   domain.Role(c.QueryParam("role")),
	}

	result, err := h.userService.List(c.Request().Context(), in, actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userListResponse{
		Items: result.Items,
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
	})
}

// Profile returns the acting user's account with their assigned jobs.
//
// @Summary      Own profile
// @Tags         users
// @Security     BearerAuth
// @Router       /api/users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	profile, err := h.userService.Profile(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{User: profile.User, Jobs: profile.Jobs})
}

// UpdateProfile applies a partial self-update.
//
// @Summary      Update own profile
// @Tags         users
// @Security     BearerAuth
// @Router       /api/users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), ports.UpdateProfileInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	}, actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}
