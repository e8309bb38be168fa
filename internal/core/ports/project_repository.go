package ports

import (
	"context"

	"github.com/tde-services/project-portal/internal/core/domain"
)

// ProjectInput carries the fields an admin supplies when creating a project.
type ProjectInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	ClientName  string  `json:"client_name"`
	ClientEmail string  `json:"client_email" validate:"omitempty,email"`
	ClientPhone string  `json:"client_phone"`
	Location    *string `json:"location"`
	Status      string  `json:"status" validate:"omitempty,oneof=planning active in_progress paused completed cancelled"`
	Progress    int     `json:"progress" validate:"gte=0,lte=100"`
	Budget      float64 `json:"budget" validate:"gte=0"`
	StartDate   string  `json:"start_date" validate:"omitempty,ymd"`
	EndDate     string  `json:"end_date" validate:"omitempty,ymd"`
	PIN         string  `json:"pin" validate:"omitempty,pin"`
}

// ProjectPatch updates the non-nil fields of a project.
type ProjectPatch struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	ClientName  *string               `json:"client_name"`
	ClientEmail *string               `json:"client_email" validate:"omitempty,email"`
	ClientPhone *string               `json:"client_phone"`
	Location    *string               `json:"location"`
	Status      *domain.ProjectStatus `json:"status"`
	Progress    *int                  `json:"progress" validate:"omitempty,gte=0,lte=100"`
	Budget      *float64              `json:"budget" validate:"omitempty,gte=0"`
	StartDate   *string               `json:"start_date" validate:"omitempty,ymd"`
	EndDate     *string               `json:"end_date" validate:"omitempty,ymd"`
	PIN         *string               `json:"pin" validate:"omitempty,pin"`
}

// ProjectRepository persists projects.
type ProjectRepository interface {
	List(ctx context.Context) ([]domain.Project, error)
	// GetByID returns domain.ErrProjectNotFound when no row exists.
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// FindByClientEmail returns at most limit projects of the client.
	FindByClientEmail(ctx context.Context, email string, limit int) ([]domain.Project, error)
	// Create stores p. It fails with ErrColumnMissing when an optional column
	// (location) is absent from the schema.
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	Update(ctx context.Context, id string, patch ProjectPatch) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}
