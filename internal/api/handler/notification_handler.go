package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
)

// NotificationHandler serves one of the two bell panels of a scope.
type NotificationHandler struct {
	inbox func(*ports.Scope) ports.NotificationInbox
}

func NewAdminNotificationHandler() *NotificationHandler {
	return &NotificationHandler{inbox: func(sc *ports.Scope) ports.NotificationInbox { return sc.AdminInbox }}
}

func NewClientNotificationHandler() *NotificationHandler {
	return &NotificationHandler{inbox: func(sc *ports.Scope) ports.NotificationInbox { return sc.ClientInbox }}
}

type notifyRequest struct {
	ID       string   `json:"id"`
	Title    string   `json:"title" validate:"required"`
	Message  string   `json:"message"`
	Type     string   `json:"type"`
	Priority string   `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Tags     []string `json:"tags"`
	URL      string   `json:"url"`
}

type notifyResponse struct {
	Added bool `json:"added"`
}

type badgeResponse struct {
	Count int    `json:"count"`
	Badge string `json:"badge"`
}

type filterRequest struct {
	Filter string `json:"filter"`
}

type filterResponse struct {
	Filter domain.InboxFilter `json:"filter"`
}

func (h *NotificationHandler) scoped(c echo.Context) (ports.NotificationInbox, error) {
	sc, err := ctxScope(c)
	if err != nil {
		return nil, err
	}
	return h.inbox(sc), nil
}

// List returns the notifications of a category, newest first. Without a
// filter parameter the panel's active filter applies.
//
// @Summary      List notifications
// @Tags         notifications
// @Produce      json
// @Param        audience  path      string  true   "admin or client"
// @Param        filter    query     string  false  "all, urgent, deadline or message"
// @Success      200       {array}   domain.Notification
// @Router       /api/notifications/{audience} [get]
func (h *NotificationHandler) List(c echo.Context) error {
	inbox, err := h.scoped(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	f := inbox.ActiveFilter(ctx)
	if q := c.QueryParam("filter"); q != "" {
		f = domain.ParseInboxFilter(q)
	}
	return c.JSON(http.StatusOK, inbox.List(ctx, f))
}

// Notify adds a notification. A notification whose id is already present is
// ignored.
//
// @Summary      Add a notification
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        audience  path      string         true  "admin or client"
// @Param        body      body      notifyRequest  true  "Notification"
// @Success      200       {object}  notifyResponse
// @Failure      422       {object}  errorResponse
// @Router       /api/notifications/{audience} [post]
func (h *NotificationHandler) Notify(c echo.Context) error {
	inbox, err := h.scoped(c)
	if err != nil {
		return err
	}
	var req notifyRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	added := inbox.Notify(c.Request().Context(), domain.Notification{
		ID:       req.ID,
		Title:    req.Title,
		Message:  req.Message,
		Type:     req.Type,
		Priority: req.Priority,
		Tags:     req.Tags,
		URL:      req.URL,
	})
	return c.JSON(http.StatusOK, notifyResponse{Added: added})
}

// Unread returns the unread count and its badge text.
//
// @Summary      Unread notifications
// @Tags         notifications
// @Produce      json
// @Param        audience  path      string  true  "admin or client"
// @Success      200       {object}  badgeResponse
// @Router       /api/notifications/{audience}/unread [get]
func (h *NotificationHandler) Unread(c echo.Context) error {
	inbox, err := h.scoped(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	return c.JSON(http.StatusOK, badgeResponse{Count: inbox.UnreadCount(ctx), Badge: inbox.Badge(ctx)})
}

// MarkRead marks one notification read.
//
// @Summary      Mark a notification read
// @Tags         notifications
// @Produce      json
// @Param        audience  path      string  true  "admin or client"
// @Param        id        path      string  true  "Notification id"
// @Success      200       {object}  successResponse
// @Failure      404       {object}  errorResponse
// @Router       /api/notifications/{audience}/{id}/read [post]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	inbox, err := h.scoped(c)
	if err != nil {
		return err
	}
	if !inbox.MarkRead(c.Request().Context(), c.Param("id")) {
		return echo.NewHTTPError(http.StatusNotFound, "notification not found")
	}
	return ok(c)
}

// MarkAllRead marks every notification read.
//
// @Summary      Mark all notifications read
// @Tags         notifications
// @Produce      json
// @Param        audience  path      string  true  "admin or client"
// @Success      200       {object}  successResponse
// @Router       /api/notifications/{audience}/read-all [post]
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	inbox, err := h.scoped(c)
	if err != nil {
		return err
	}
	inbox.MarkAllRead(c.Request().Context())
	return ok(c)
}

// Filter returns the panel's active filter.
//
// @Summary      Active filter
// @Tags         notifications
// @Produce      json
// @Param        audience  path      string  true  "admin or client"
// @Success      200       {object}  filterResponse
// @Router       /api/notifications/{audience}/filter [get]
func (h *NotificationHandler) Filter(c echo.Context) error {
	inbox, err := h.scoped(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, filterResponse{Filter: inbox.ActiveFilter(c.Request().Context())})
}

// SetFilter changes the panel's active filter; unknown values select all.
//
// @Summary      Set the active filter
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        audience  path      string         true  "admin or client"
// @Param        body      body      filterRequest  true  "Filter"
// @Success      200       {object}  filterResponse
// @Router       /api/notifications/{audience}/filter [put]
func (h *NotificationHandler) SetFilter(c echo.Context) error {
	inbox, err := h.scoped(c)
	if err != nil {
		return err
	}
	var req filterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	f := inbox.SetActiveFilter(c.Request().Context(), domain.ParseInboxFilter(req.Filter))
	return c.JSON(http.StatusOK, filterResponse{Filter: f})
}

// Preferences returns the stored notification preferences.
//
// @Summary      Notification preferences
// @Tags         notifications
// @Produce      json
// @Param        audience  path      string  true  "admin or client"
// @Success      200       {object}  map[string]any
// @Router       /api/notifications/{audience}/preferences [get]
func (h *NotificationHandler) Preferences(c echo.Context) error {
	inbox, err := h.scoped(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inbox.Preferences(c.Request().Context()))
}

// SetPreferences replaces the notification preferences.
//
// @Summary      Set notification preferences
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        audience  path      string          true  "admin or client"
// @Param        body      body      map[string]any  true  "Preferences"
// @Success      200       {object}  successResponse
// @Router       /api/notifications/{audience}/preferences [put]
func (h *NotificationHandler) SetPreferences(c echo.Context) error {
	inbox, err := h.scoped(c)
	if err != nil {
		return err
	}
	prefs := map[string]any{}
	if err := c.Bind(&prefs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := inbox.SetPreferences(c.Request().Context(), prefs); err != nil {
		return err
	}
	return ok(c)
}
