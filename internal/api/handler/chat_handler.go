package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
)

// ChatHandler serves the back-office side of the project conversations.
// Each tab uses the chat service of its own scope.
type ChatHandler struct{}

func NewChatHandler() *ChatHandler {
	return &ChatHandler{}
}

type adminMessageRequest struct {
	Content    string `json:"content" validate:"required"`
	SenderName string `json:"sender_name"`
	PhotoURL   string `json:"photo_url"`
}

// Conversations returns one summary per project with messages.
//
// @Summary      List conversations
// @Tags         chat
// @Produce      json
// @Success      200  {array}   domain.Conversation
// @Router       /api/admin/conversations [get]
func (h *ChatHandler) Conversations(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sc.Chat.Conversations(c.Request().Context()))
}

// TotalUnread counts client messages not yet read by the back-office.
//
// @Summary      Unread client messages
// @Tags         chat
// @Produce      json
// @Success      200  {object}  unreadResponse
// @Router       /api/admin/conversations/unread [get]
func (h *ChatHandler) TotalUnread(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, unreadResponse{
		Count:        sc.Chat.TotalUnread(c.Request().Context()),
		ReadTracking: sc.Chat.ReadTracking(),
	})
}

// Conversation returns the messages of a project, oldest first.
//
// @Summary      Project conversation
// @Tags         chat
// @Produce      json
// @Param        id   path      string  true  "Project id"
// @Success      200  {array}   domain.Message
// @Router       /api/admin/projects/{id}/messages [get]
func (h *ChatHandler) Conversation(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sc.Chat.Conversation(c.Request().Context(), c.Param("id")))
}

// Send posts a back-office message on a project.
//
// @Summary      Send a message
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Project id"
// @Param        body  body      adminMessageRequest  true  "Message"
// @Success      201   {object}  domain.Message
// @Failure      422   {object}  errorResponse
// @Router       /api/admin/projects/{id}/messages [post]
func (h *ChatHandler) Send(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	var req adminMessageRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	in := ports.SendMessageInput{
		ProjectID:  c.Param("id"),
		Content:    req.Content,
		SenderRole: domain.SenderAdmin,
		SenderName: req.SenderName,
		PhotoURL:   req.PhotoURL,
	}
	if p := sc.Admin.CurrentProfile(); p != nil {
		if in.SenderName == "" {
			in.SenderName = p.FullName
		}
		if in.PhotoURL == "" {
			in.PhotoURL = p.PhotoURL
		}
	}
	m, err := sc.Chat.Send(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

// MarkRead marks the client messages of a project as read.
//
// @Summary      Mark a conversation read
// @Tags         chat
// @Produce      json
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  successResponse
// @Router       /api/admin/projects/{id}/messages/read [post]
func (h *ChatHandler) MarkRead(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	if err := sc.Chat.MarkAsRead(c.Request().Context(), c.Param("id"), domain.SenderAdmin); err != nil {
		return err
	}
	return ok(c)
}

// Unread counts the unread client messages of a project.
//
// @Summary      Unread messages of a project
// @Tags         chat
// @Produce      json
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  unreadResponse
// @Router       /api/admin/projects/{id}/messages/unread [get]
func (h *ChatHandler) Unread(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, unreadResponse{
		Count:        sc.Chat.UnreadCount(c.Request().Context(), c.Param("id"), domain.SenderAdmin),
		ReadTracking: sc.Chat.ReadTracking(),
	})
}

// DeleteMessage removes one message.
//
// @Summary      Delete a message
// @Tags         chat
// @Produce      json
// @Param        id   path      string  true  "Message id"
// @Success      200  {object}  successResponse
// @Router       /api/admin/messages/{id} [delete]
func (h *ChatHandler) DeleteMessage(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	if err := sc.Chat.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return ok(c)
}

// DeleteConversation removes every message of a project.
//
// @Summary      Delete a conversation
// @Tags         chat
// @Produce      json
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  successResponse
// @Router       /api/admin/projects/{id}/messages [delete]
func (h *ChatHandler) DeleteConversation(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	if err := sc.Chat.DeleteConversation(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return ok(c)
}

// Stream follows new messages as server-sent events. project "*" (the
// default) follows every project.
//
// @Summary      Message stream
// @Tags         chat
// @Produce      text/event-stream
// @Param        project  query  string  false  "Project id, or * for all"
// @Router       /api/admin/messages/stream [get]
func (h *ChatHandler) Stream(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	project := c.QueryParam("project")
	if project == "" {
		project = "*"
	}
	return streamMessages(c, func(ctx context.Context, fn func(domain.Message)) error {
		return sc.Chat.Subscribe(ctx, project, fn)
	}, sc.Chat.Unsubscribe)
}
