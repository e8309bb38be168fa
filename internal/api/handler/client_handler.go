package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
)

// ClientHandler serves the client portal. Every call runs with the project
// id and PIN held by the tab's client session.
type ClientHandler struct{}

func NewClientHandler() *ClientHandler {
	return &ClientHandler{}
}

type photoResponse struct {
	Success  bool   `json:"success"`
	PhotoURL string `json:"photo_url"`
}

// Project returns the client's project.
//
// @Summary      Client project
// @Tags         client
// @Produce      json
// @Success      200  {object}  domain.Project
// @Failure      404  {object}  errorResponse
// @Router       /api/client/project [get]
func (h *ClientHandler) Project(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	p := sc.ClientPortal.Project(c.Request().Context())
	if p == nil {
		return domain.ErrProjectNotFound
	}
	return c.JSON(http.StatusOK, p)
}

// Dashboard returns the project with its counters and latest items.
//
// @Summary      Client dashboard
// @Tags         client
// @Produce      json
// @Success      200  {object}  domain.DashboardSummary
// @Failure      404  {object}  errorResponse
// @Router       /api/client/dashboard [get]
func (h *ClientHandler) Dashboard(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	sum := sc.ClientPortal.DashboardSummary(c.Request().Context())
	if sum == nil {
		return domain.ErrProjectNotFound
	}
	return c.JSON(http.StatusOK, sum)
}

// Timeline returns the project phases.
//
// @Summary      Client timeline
// @Tags         client
// @Produce      json
// @Success      200  {array}   domain.Phase
// @Router       /api/client/timeline [get]
func (h *ClientHandler) Timeline(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sc.ClientPortal.Timeline(c.Request().Context()))
}

// Documents returns the client-visible documents.
//
// @Summary      Client documents
// @Tags         client
// @Produce      json
// @Success      200  {array}   domain.Document
// @Router       /api/client/documents [get]
func (h *ClientHandler) Documents(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sc.ClientPortal.Documents(c.Request().Context()))
}

// SignDocument signs the URL of one of the client's documents.
//
// @Summary      Sign a client document URL
// @Tags         client
// @Accept       json
// @Produce      json
// @Param        body  body      signURLRequest  true  "Public URL"
// @Success      200   {object}  domain.SignedURL
// @Failure      403   {object}  errorResponse
// @Router       /api/client/documents/sign [post]
func (h *ClientHandler) SignDocument(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	var req signURLRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	signed, err := sc.ClientPortal.SignedDocumentURL(c.Request().Context(), req.URL, clientSignedURLTTL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, signed)
}

// Messages returns the project conversation.
//
// @Summary      Client messages
// @Tags         client
// @Produce      json
// @Success      200  {array}   domain.Message
// @Router       /api/client/messages [get]
func (h *ClientHandler) Messages(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sc.ClientPortal.Messages(c.Request().Context()))
}

// SendMessage posts a client message.
//
// @Summary      Send a client message
// @Tags         client
// @Accept       json
// @Produce      json
// @Param        body  body      ports.ClientMessageInput  true  "Message"
// @Success      201   {object}  domain.Message
// @Failure      422   {object}  errorResponse
// @Router       /api/client/messages [post]
func (h *ClientHandler) SendMessage(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	var req ports.ClientMessageInput
	if err := bindValid(c, &req); err != nil {
		return err
	}
	m, err := sc.ClientPortal.SendMessage(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

// MarkRead marks the back-office messages as read by the client.
//
// @Summary      Mark admin messages read
// @Tags         client
// @Produce      json
// @Success      200  {object}  successResponse
// @Router       /api/client/messages/read [post]
func (h *ClientHandler) MarkRead(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	if err := sc.ClientPortal.MarkAdminMessagesRead(c.Request().Context()); err != nil {
		return err
	}
	return ok(c)
}

// StreamMessages follows new messages of the project as server-sent events.
//
// @Summary      Client message stream
// @Tags         client
// @Produce      text/event-stream
// @Router       /api/client/messages/stream [get]
func (h *ClientHandler) StreamMessages(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	return streamMessages(c, sc.ClientPortal.SubscribeMessages, sc.ClientPortal.UnsubscribeMessages)
}

// Tickets returns the project tickets.
//
// @Summary      Client tickets
// @Tags         client
// @Produce      json
// @Success      200  {array}   domain.Ticket
// @Router       /api/client/tickets [get]
func (h *ClientHandler) Tickets(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sc.ClientPortal.Tickets(c.Request().Context()))
}

// CreateTicket opens a ticket from the client portal.
//
// @Summary      Create a client ticket
// @Tags         client
// @Accept       json
// @Produce      json
// @Param        body  body      domain.TicketInput  true  "Ticket"
// @Success      201   {object}  domain.Ticket
// @Router       /api/client/tickets [post]
func (h *ClientHandler) CreateTicket(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	var req domain.TicketInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	t, err := sc.ClientPortal.CreateTicket(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, t)
}

// Profile returns the client profile.
//
// @Summary      Client profile
// @Tags         client
// @Produce      json
// @Success      200  {object}  domain.ClientProfile
// @Failure      404  {object}  errorResponse
// @Router       /api/client/profile [get]
func (h *ClientHandler) Profile(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	p := sc.ClientPortal.Profile(c.Request().Context())
	if p == nil {
		return domain.ErrProfileNotFound
	}
	return c.JSON(http.StatusOK, p)
}

// UpdateProfile changes the client's name or phone.
//
// @Summary      Update the client profile
// @Tags         client
// @Accept       json
// @Produce      json
// @Param        body  body      ports.ClientProfileUpdate  true  "Profile"
// @Success      200   {object}  successResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/client/profile [put]
func (h *ClientHandler) UpdateProfile(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	var req ports.ClientProfileUpdate
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if err := sc.ClientPortal.UpdateProfile(c.Request().Context(), req); err != nil {
		return err
	}
	return ok(c)
}

// UploadPhoto replaces the client's profile photo.
//
// @Summary      Upload a profile photo
// @Tags         client
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Image"
// @Success      200   {object}  photoResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/client/profile/photo [post]
func (h *ClientHandler) UploadPhoto(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	in, closeFn, err := formUpload(c, "file")
	if err != nil {
		return err
	}
	defer closeFn()

	url, err := sc.ClientPortal.UploadProfilePhoto(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, photoResponse{Success: true, PhotoURL: url})
}
