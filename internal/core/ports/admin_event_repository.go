package ports

import (
	"context"

	"github.com/tde-services/project-portal/internal/core/domain"
)

// EventQuery selects admin events. Date matches one day; From lists events
// on or after a day in chronological order.
type EventQuery struct {
	Date  string
	From  string
	Limit int
}

type AdminEventRepository interface {
	List(ctx context.Context, q EventQuery) ([]domain.AdminEvent, error)
	GetByID(ctx context.Context, id string) (*domain.AdminEvent, error)
	Create(ctx context.Context, ev *domain.AdminEvent) (*domain.AdminEvent, error)
	Update(ctx context.Context, id string, ev *domain.AdminEvent) (*domain.AdminEvent, error)
	Delete(ctx context.Context, id string) error
}
