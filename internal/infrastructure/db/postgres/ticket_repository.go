package postgres

import (
	"context"
	"time"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
)

const tableTickets = "tickets"

type TicketRepository struct {
	db Querier
}

func NewTicketRepository(db Querier) ports.TicketRepository {
	return &TicketRepository{db: db}
}

func ticketQuery() *Query {
	return From(tableTickets).
		Select("to_jsonb(t) || jsonb_build_object('project_name', p.name)").
		Join(`LEFT JOIN "projects" p ON p."id" = t."project_id"`)
}

func (r *TicketRepository) List(ctx context.Context, f ports.TicketFilter) ([]domain.Ticket, error) {
	q := ticketQuery()
	if f.ProjectID != "" {
		q.Eq("project_id", f.ProjectID)
	}
	if f.Status != "" {
		q.Eq("status", string(f.Status))
	}
	if f.Priority != "" {
		q.Eq("priority", string(f.Priority))
	}
	return fetchAll[domain.Ticket](ctx, r.db, q.Order("created_at", true).Limit(f.Limit))
}

func (r *TicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	t, err := fetchOne[domain.Ticket](ctx, r.db, ticketQuery().Eq("id", id))
	return t, notFoundAs(err, domain.ErrTicketNotFound)
}

func (r *TicketRepository) Create(ctx context.Context, t *domain.Ticket) (*domain.Ticket, error) {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return insertRow[domain.Ticket](ctx, r.db, tableTickets, Row{
		"project_id":  t.ProjectID,
		"title":       t.Title,
		"description": t.Description,
		"priority":    string(t.Priority),
		"status":      string(t.Status),
		"tags":        tags,
		"created_by":  t.CreatedBy,
	})
}

func (r *TicketRepository) Update(ctx context.Context, id string, patch ports.TicketPatch) (*domain.Ticket, error) {
	set := Row{"updated_at": time.Now().UTC()}
	setString(set, "title", patch.Title)
	setString(set, "description", patch.Description)
	if patch.Priority != nil {
		set["priority"] = string(*patch.Priority)
	}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	if patch.Tags != nil {
		set["tags"] = patch.Tags
	}
	t, err := updateByID[domain.Ticket](ctx, r.db, tableTickets, id, set)
	return t, notFoundAs(err, domain.ErrTicketNotFound)
}

func (r *TicketRepository) Delete(ctx context.Context, id string) error {
	return notFoundAs(deleteWhere(ctx, r.db, From(tableTickets).Eq("id", id), true), domain.ErrTicketNotFound)
}
