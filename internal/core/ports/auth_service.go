package ports

import (
	"context"
	"time"

	"github.com/tde-services/project-portal/internal/core/domain"
)

// Login surfaces the guards redirect to.
const (
	AdminLoginPath  = "/admin/login"
	AdminIndexPath  = "/admin/index"
	ClientLoginPath = "/client/login"
	ClientHomePath  = "/client/my-project"
	HomePath        = "/"
)

// GuardDecision is the outcome of a page guard.
type GuardDecision struct {
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
}

// AdminLoginResult is returned by a successful admin login.
type AdminLoginResult struct {
	Success bool            `json:"success"`
	User    *domain.User    `json:"user"`
	Profile *domain.Profile `json:"profile"`
}

// AdminAuthService is the admin identity track of one tab.
type AdminAuthService interface {
	Init(ctx context.Context) error
	LoginAdmin(ctx context.Context, email, password string) (*AdminLoginResult, error)
	IsAdmin(ctx context.Context) bool
	IsSuperAdmin(ctx context.Context) bool
	RequireAdmin(ctx context.Context, path string) GuardDecision
	RequireSuperAdmin(ctx context.Context, path string) GuardDecision
	CurrentUser() *domain.User
	CurrentProfile() *domain.Profile
	RedirectAfterLogin(ctx context.Context) string
	SessionTimeRemaining(ctx context.Context) time.Duration
	// Logout tears down both tracks and returns where to send the browser.
	Logout(ctx context.Context) (string, error)
}

// ClientAuthService is the project-id + PIN track of one tab.
type ClientAuthService interface {
	LoginClient(ctx context.Context, projectIDOrEmail, pin string) (*domain.Project, error)
	IsClient(ctx context.Context) bool
	RequireClient(ctx context.Context, path string) GuardDecision
	ProjectID(ctx context.Context) string
	PIN(ctx context.Context) string
	SessionTimeRemaining(ctx context.Context) time.Duration
	Logout(ctx context.Context)
}
