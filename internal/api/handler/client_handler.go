package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldserve/jobs-system/internal/core/domain"
	"github.com/fieldserve/jobs-system/internal/core/ports"
)

type ClientHandler struct {
	clientService ports.ClientService
}

func NewClientHandler(clientService ports.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

type createClientRequest struct {
	Name    string `json:"name" validate:"required,min=2"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type updateClientRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=2"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

type clientListResponse struct {
	Items []*domain.Client `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

type clientJobsResponse struct {
	Client *domain.Client `json:"client"`
	Jobs   []*domain.Job  `json:"jobs"`
}

// Create registers a new client record. ADMIN only.
//
// @Summary      Create a client
// @Tags         clients
// @Security     BearerAuth
// @Router       /api/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, err := h.clientService.Create(c.Request().Context(), ports.CreateClientInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Notes:   req.Notes,
	}, actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, client)
}

// List returns a page of clients.
//
// @Summary      List clients
// @Tags         clients
// @Security     BearerAuth
// @Router       /api/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.clientService.List(c.Request().Context(), ports.ListClientsInput{
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
		Search: c.QueryParam("search"),
	}, actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, clientListResponse{
		Items: result.Items,
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
	})
}

// Get returns a single client.
//
// @Summary      Get a client
// @Tags         clients
// @Security     BearerAuth
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	client, err := h.clientService.Get(c.Request().Context(), c.Param("id"), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// Update applies a partial client update.
//
// @Summary      Update a client
// @Tags         clients
// @Security     BearerAuth
// @Router       /api/clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, err := h.clientService.Update(c.Request().Context(), c.Param("id"), ports.ClientPatch{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Notes:   req.Notes,
	}, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// Remove deletes a client. ADMIN only.
//
// @Summary      Delete a client
// @Tags         clients
// @Security     BearerAuth
// @Router       /api/clients/{id} [delete]
func (h *ClientHandler) Remove(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.clientService.Remove(c.Request().Context(), c.Param("id"), actor); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Jobs returns a client together with its job history, newest first.
//
// @Summary      Client job history
// @Tags         clients
// @Security     BearerAuth
// @Router       /api/clients/{id}/jobs [get]
func (h *ClientHandler) Jobs(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.clientService.Jobs(c.Request().Context(), c.Param("id"), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, clientJobsResponse{Client: result.Client, Jobs: result.Jobs})
}
