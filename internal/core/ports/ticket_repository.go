package ports

import (
	"context"

	"github.com/tde-services/project-portal/internal/core/domain"
)

// TicketFilter narrows a ticket listing. Empty fields do not filter.
type TicketFilter struct {
	ProjectID string
	Status    domain.TicketStatus
	Priority  domain.TicketPriority
	Limit     int
}

type TicketPatch struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Priority    *domain.TicketPriority `json:"priority"`
	Status      *domain.TicketStatus   `json:"status"`
	Tags        []string               `json:"tags"`
}

// TicketRepository persists tickets. List joins the project name.
type TicketRepository interface {
	List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	Create(ctx context.Context, t *domain.Ticket) (*domain.Ticket, error)
	Update(ctx context.Context, id string, patch TicketPatch) (*domain.Ticket, error)
	Delete(ctx context.Context, id string) error
}
