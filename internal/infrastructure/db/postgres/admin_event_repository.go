package postgres

import (
	"context"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
)

const tableAdminEvents = "admin_events"

// eventJSON projects an admin_events row onto the field names of
// domain.AdminEvent.
const eventJSON = `jsonb_build_object(
	'id', t.id, 'title', t.title, 'date', t.event_date,
	'time', coalesce(to_char(t.event_time, 'HH24:MI'), ''),
	'priority', t.priority, 'type', t.event_type, 'projectId', t.project_id,
	'notes', coalesce(t.notes, ''), 'createdBy', t.created_by, 'createdAt', t.created_at)`

type AdminEventRepository struct {
	db Querier
}

func NewAdminEventRepository(db Querier) ports.AdminEventRepository {
	return &AdminEventRepository{db: db}
}

func (r *AdminEventRepository) List(ctx context.Context, q ports.EventQuery) ([]domain.AdminEvent, error) {
	query := From(tableAdminEvents).Select(eventJSON)
	switch {
	case q.Date != "":
		query.Eq("event_date", q.Date)
	case q.From != "":
		query.Gte("event_date", q.From)
	}
	query.Order("event_date", false).Order("event_time", false).Limit(q.Limit)
	return fetchAll[domain.AdminEvent](ctx, r.db, query)
}

func (r *AdminEventRepository) GetByID(ctx context.Context, id string) (*domain.AdminEvent, error) {
	ev, err := fetchOne[domain.AdminEvent](ctx, r.db, From(tableAdminEvents).Select(eventJSON).Eq("id", id))
	return ev, notFoundAs(err, domain.ErrEventNotFound)
}

func (r *AdminEventRepository) Create(ctx context.Context, ev *domain.AdminEvent) (*domain.AdminEvent, error) {
	row := eventRow(ev)
	row["created_by"] = nullable(ev.CreatedBy)
	return insertRowAs[domain.AdminEvent](ctx, r.db, tableAdminEvents, row, eventJSON)
}

func (r *AdminEventRepository) Update(ctx context.Context, id string, ev *domain.AdminEvent) (*domain.AdminEvent, error) {
	out, err := updateByIDAs[domain.AdminEvent](ctx, r.db, tableAdminEvents, id, eventRow(ev), eventJSON)
	return out, notFoundAs(err, domain.ErrEventNotFound)
}

func (r *AdminEventRepository) Delete(ctx context.Context, id string) error {
	return notFoundAs(deleteWhere(ctx, r.db, From(tableAdminEvents).Eq("id", id), true), domain.ErrEventNotFound)
}

func eventRow(ev *domain.AdminEvent) Row {
	return Row{
		"title":      ev.Title,
		"event_date": ev.Date,
		"event_time": nullable(ev.Time),
		"priority":   string(ev.Priority),
		"event_type": string(ev.Type),
		"project_id": ev.ProjectID,
		"notes":      ev.Notes,
	}
}
