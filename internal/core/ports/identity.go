package ports

import (
	"context"
	"time"

	"github.com/tde-services/project-portal/internal/core/domain"
)

// AuthSession is the identity provider's view of a signed-in principal.
type AuthSession struct {
	AccessToken string      `json:"access_token"`
	User        domain.User `json:"user"`
	ExpiresAt   time.Time   `json:"expires_at"`
}

type AuthEvent string

const (
	AuthSignedIn  AuthEvent = "SIGNED_IN"
	AuthSignedOut AuthEvent = "SIGNED_OUT"
)

// IdentityProvider is the tab-bound client of the identity service.
type IdentityProvider interface {
	// SignInWithPassword returns domain.ErrInvalidCredentials for bad
	// credentials and an error wrapping domain.ErrTransient when the exchange
	// was interrupted.
	SignInWithPassword(ctx context.Context, email, password string) (*AuthSession, error)
	// Session returns the current session or nil when signed out.
	Session(ctx context.Context) (*AuthSession, error)
	SignOut(ctx context.Context) error
	// OnAuthStateChange registers fn and returns a function removing it.
	OnAuthStateChange(fn func(AuthEvent, *AuthSession)) (unsubscribe func())
}

// IdentityAdmin holds the privileged user-management operations that only
// server-side code may call.
type IdentityAdmin interface {
	CreateUser(ctx context.Context, email, password string, metadata map[string]string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID, password string) error
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// UserRepository persists identity users.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	List(ctx context.Context) ([]domain.User, error)
}
