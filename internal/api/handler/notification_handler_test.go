package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
	"github.com/tde-services/project-portal/internal/core/service"
	"github.com/tde-services/project-portal/internal/infrastructure/memstore"
)

func inboxScope() *ports.Scope {
	store := memstore.NewTabs(time.Hour).For("tab-1")
	return &ports.Scope{
		AdminInbox:  service.NewNotificationInbox(store, "admin", nil, zerolog.Nop()),
		ClientInbox: service.NewNotificationInbox(store, "client", nil, zerolog.Nop()),
	}
}

func TestNotificationHandler_NotifyAndList(t *testing.T) {
	sc := inboxScope()
	h := NewAdminNotificationHandler()

	for i := 0; i < 2; i++ {
		c, rec := newCtx(http.MethodPost, "/api/admin/notifications", `{"id":"n1","title":"Plazo","priority":"urgent"}`, sc)
		if err := h.Notify(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		var resp notifyResponse
		_ = json.Unmarshal(rec.Body.Bytes(), &resp)
		if resp.Added != (i == 0) {
			t.Fatalf("call %d: expected added=%v", i, i == 0)
		}
	}

	c, rec := newCtx(http.MethodGet, "/api/admin/notifications?filter=urgent", "", sc)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var list []domain.Notification
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(list) != 1 || list[0].ID != "n1" {
		t.Fatalf("unexpected list: %+v", list)
	}

	c, rec = newCtx(http.MethodGet, "/api/admin/notifications/unread", "", sc)
	_ = h.Unread(c)
	var badge badgeResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &badge)
	if badge.Count != 1 || badge.Badge != "1" {
		t.Fatalf("unexpected badge: %+v", badge)
	}
}

func TestNotificationHandler_InboxesAreSeparate(t *testing.T) {
	sc := inboxScope()

	c, _ := newCtx(http.MethodPost, "/api/admin/notifications", `{"title":"Admin only"}`, sc)
	if err := NewAdminNotificationHandler().Notify(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	c, rec := newCtx(http.MethodGet, "/api/client/notifications/unread", "", sc)
	_ = NewClientNotificationHandler().Unread(c)
	var badge badgeResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &badge)
	if badge.Count != 0 || badge.Badge != "" {
		t.Fatalf("client inbox must be empty, got %+v", badge)
	}
}

func TestNotificationHandler_MarkRead_Unknown(t *testing.T) {
	c, _ := newCtx(http.MethodPost, "/api/admin/notifications/nope/read", "", inboxScope())
	c.SetParamNames("id")
	c.SetParamValues("nope")

	err := NewAdminNotificationHandler().MarkRead(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestNotificationHandler_SetFilter_UnknownSelectsAll(t *testing.T) {
	sc := inboxScope()
	h := NewAdminNotificationHandler()

	c, rec := newCtx(http.MethodPut, "/api/admin/notifications/filter", `{"filter":"deadline"}`, sc)
	if err := h.SetFilter(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp filterResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Filter != domain.FilterDeadline {
		t.Fatalf("expected deadline, got %q", resp.Filter)
	}

	c, rec = newCtx(http.MethodPut, "/api/admin/notifications/filter", `{"filter":"bogus"}`, sc)
	_ = h.SetFilter(c)
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Filter != domain.FilterAll {
		t.Fatalf("expected all, got %q", resp.Filter)
	}
}
