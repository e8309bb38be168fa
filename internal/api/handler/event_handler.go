package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
)

// EventHandler serves the back-office calendar.
type EventHandler struct {
	events ports.AdminEventService
}

func NewEventHandler(events ports.AdminEventService) *EventHandler {
	return &EventHandler{events: events}
}

// List returns every event, or the events of one day when date is given.
//
// @Summary      List calendar events
// @Tags         events
// @Produce      json
// @Param        date  query     string  false  "Day (YYYY-MM-DD)"
// @Success      200   {array}   domain.AdminEvent
// @Router       /api/admin/events [get]
func (h *EventHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	if date := c.QueryParam("date"); date != "" {
		return c.JSON(http.StatusOK, h.events.GetByDate(ctx, date))
	}
	return c.JSON(http.StatusOK, h.events.GetAll(ctx))
}

// Upcoming returns the next events from today on.
//
// @Summary      Upcoming events
// @Tags         events
// @Produce      json
// @Param        limit  query     int  false  "Maximum events"
// @Success      200    {array}   domain.AdminEvent
// @Router       /api/admin/events/upcoming [get]
func (h *EventHandler) Upcoming(c echo.Context) error {
	return c.JSON(http.StatusOK, h.events.Upcoming(c.Request().Context(), queryInt(c, "limit", 5)))
}

// Get returns one event.
//
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  domain.AdminEvent
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	ev := h.events.GetByID(c.Request().Context(), c.Param("id"))
	if ev == nil {
		return domain.ErrEventNotFound
	}
	return c.JSON(http.StatusOK, ev)
}

// Create adds an event to the calendar.
//
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        body  body      domain.AdminEventInput  true  "Event"
// @Success      201   {object}  domain.AdminEvent
// @Failure      422   {object}  errorResponse
// @Router       /api/admin/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	var req domain.AdminEventInput
	if err := bindValid(c, &req); err != nil {
		return err
	}
	ev, err := h.events.Create(c.Request().Context(), req, actorID(sc))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ev)
}

// Update replaces an event.
//
// @Summary      Update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "Event id"
// @Param        body  body      domain.AdminEventInput  true  "Event"
// @Success      200   {object}  domain.AdminEvent
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/admin/events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	var req domain.AdminEventInput
	if err := bindValid(c, &req); err != nil {
		return err
	}
	ev, err := h.events.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ev)
}

// Delete removes an event.
//
// @Summary      Delete an event
// @Tags         events
// @Produce      json
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	if err := h.events.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return ok(c)
}
