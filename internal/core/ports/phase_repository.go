package ports

import (
	"context"

	"github.com/tde-services/project-portal/internal/core/domain"
)

// PhaseInput accepts "title" as an alias of "name".
type PhaseInput struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"start_date" validate:"omitempty,ymd"`
	EndDate     string `json:"end_date" validate:"omitempty,ymd"`
}

type PhasePatch struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	Status      *domain.PhaseStatus `json:"status"`
	StartDate   *string             `json:"start_date" validate:"omitempty,ymd"`
	EndDate     *string             `json:"end_date" validate:"omitempty,ymd"`
	Progress    *int                `json:"progress" validate:"omitempty,gte=0,lte=100"`
	OrderIndex  *int                `json:"order_index"`
}

// PhaseRepository persists phases and the site images attached to them.
type PhaseRepository interface {
	ListByProject(ctx context.Context, projectID string) ([]domain.Phase, error)
	ListImages(ctx context.Context, projectID string) ([]domain.ProjectImage, error)
	Create(ctx context.Context, ph *domain.Phase) (*domain.Phase, error)
	Update(ctx context.Context, id string, patch PhasePatch) (*domain.Phase, error)
	Delete(ctx context.Context, id string) error
}
