package ports

import (
	"context"

	"github.com/tde-services/project-portal/internal/core/domain"
)

// ProfilePatch updates the non-nil fields of a profile.
type ProfilePatch struct {
	FullName *string
	Phone    *string
	Company  *string
	PhotoURL *string
	Role     *domain.Role
}

// ProfileRepository persists application profiles.
type ProfileRepository interface {
	// GetByID returns domain.ErrProfileNotFound when no row exists.
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	// Upsert inserts p or overwrites the row with the same id.
	Upsert(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	Update(ctx context.Context, id string, patch ProfilePatch) error
}
