package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
)

type stubAdmin struct {
	loginFn    func(ctx context.Context, email, password string) (*ports.AdminLoginResult, error)
	requireFn  func(ctx context.Context, path string) ports.GuardDecision
	logoutFn   func(ctx context.Context) (string, error)
	redirect   string
	admin      bool
	superAdmin bool
	user       *domain.User
	profile    *domain.Profile
}

func (s *stubAdmin) Init(context.Context) error { return nil }
func (s *stubAdmin) LoginAdmin(ctx context.Context, email, password string) (*ports.AdminLoginResult, error) {
	return s.loginFn(ctx, email, password)
}
func (s *stubAdmin) IsAdmin(context.Context) bool      { return s.admin }
func (s *stubAdmin) IsSuperAdmin(context.Context) bool { return s.superAdmin }
func (s *stubAdmin) RequireAdmin(ctx context.Context, path string) ports.GuardDecision {
	return s.requireFn(ctx, path)
}
func (s *stubAdmin) RequireSuperAdmin(ctx context.Context, path string) ports.GuardDecision {
	return s.requireFn(ctx, path)
}
func (s *stubAdmin) CurrentUser() *domain.User                 { return s.user }
func (s *stubAdmin) CurrentProfile() *domain.Profile           { return s.profile }
func (s *stubAdmin) RedirectAfterLogin(context.Context) string { return s.redirect }
func (s *stubAdmin) SessionTimeRemaining(context.Context) time.Duration {
	if s.admin {
		return time.Hour
	}
	return 0
}
func (s *stubAdmin) Logout(ctx context.Context) (string, error) { return s.logoutFn(ctx) }

type stubClient struct {
	loginFn   func(ctx context.Context, id, pin string) (*domain.Project, error)
	projectID string
	loggedOut bool
}

func (s *stubClient) LoginClient(ctx context.Context, id, pin string) (*domain.Project, error) {
	return s.loginFn(ctx, id, pin)
}
func (s *stubClient) IsClient(context.Context) bool { return s.projectID != "" }
func (s *stubClient) RequireClient(context.Context, string) ports.GuardDecision {
	return ports.GuardDecision{Allowed: s.projectID != ""}
}
func (s *stubClient) ProjectID(context.Context) string { return s.projectID }
func (s *stubClient) PIN(context.Context) string       { return "" }
func (s *stubClient) SessionTimeRemaining(context.Context) time.Duration {
	return 30 * time.Minute
}
func (s *stubClient) Logout(context.Context) { s.loggedOut = true }

type stubRelay struct{ started, stopped int }

func (r *stubRelay) Start(context.Context) error { r.started++; return nil }
func (r *stubRelay) Stop()                       { r.stopped++ }

// newCtx builds an echo context carrying sc, with the shared validator.
func newCtx(method, target, body string, sc *ports.Scope) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req = httptest.NewRequest(method, target, nil)
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sc != nil {
		c.Set(ScopeKey, sc)
	}
	return c, rec
}
