package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
)

type TicketHandler struct {
	tickets ports.TicketService
}

func NewTicketHandler(tickets ports.TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

// List returns tickets across projects.
//
// @Summary      List tickets
// @Tags         tickets
// @Produce      json
// @Param        project_id  query     string  false  "Project id"
// @Param        status      query     string  false  "open, in_progress, resolved or closed"
// @Param        priority    query     string  false  "low, medium, high or urgent"
// @Param        limit       query     int     false  "Maximum tickets"
// @Success      200         {array}   domain.Ticket
// @Router       /api/admin/tickets [get]
func (h *TicketHandler) List(c echo.Context) error {
	f := ports.TicketFilter{
		ProjectID: c.QueryParam("project_id"),
		Limit:     queryInt(c, "limit", 0),
	}
	if s := strings.TrimSpace(c.QueryParam("status")); s != "" {
		f.Status = domain.NormalizeTicketStatus(s)
	}
	if p := strings.TrimSpace(c.QueryParam("priority")); p != "" {
		f.Priority = domain.NormalizeTicketPriority(p)
	}
	return c.JSON(http.StatusOK, h.tickets.List(c.Request().Context(), f))
}

// Get returns one ticket.
//
// @Summary      Get a ticket
// @Tags         tickets
// @Produce      json
// @Param        id   path      string  true  "Ticket id"
// @Success      200  {object}  domain.Ticket
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/tickets/{id} [get]
func (h *TicketHandler) Get(c echo.Context) error {
	t := h.tickets.GetByID(c.Request().Context(), c.Param("id"))
	if t == nil {
		return domain.ErrTicketNotFound
	}
	return c.JSON(http.StatusOK, t)
}

// Create opens a ticket on a project from the back-office.
//
// @Summary      Create a ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Project id"
// @Param        body  body      domain.TicketInput  true  "Ticket"
// @Success      201   {object}  domain.Ticket
// @Router       /api/admin/projects/{id}/tickets [post]
func (h *TicketHandler) Create(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	var req domain.TicketInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	t, err := h.tickets.Create(c.Request().Context(), c.Param("id"), req, actorID(sc))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, t)
}

// Update applies a partial update.
//
// @Summary      Update a ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Ticket id"
// @Param        body  body      ports.TicketPatch  true  "Fields to change"
// @Success      200   {object}  domain.Ticket
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/tickets/{id} [patch]
func (h *TicketHandler) Update(c echo.Context) error {
	var req ports.TicketPatch
	if err := bindValid(c, &req); err != nil {
		return err
	}
	t, err := h.tickets.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// Delete removes a ticket.
//
// @Summary      Delete a ticket
// @Tags         tickets
// @Produce      json
// @Param        id   path      string  true  "Ticket id"
// @Success      200  {object}  successResponse
// @Router       /api/admin/tickets/{id} [delete]
func (h *TicketHandler) Delete(c echo.Context) error {
	if err := h.tickets.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return ok(c)
}
