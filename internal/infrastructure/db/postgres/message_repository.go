package postgres

import (
	"context"
	"fmt"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
)

const tableMessages = "messages"

// MessageRepository implements ports.MessageRepository. The read column is
// optional: statements touching it surface ports.ErrColumnMissing on
// deployments without it.
type MessageRepository struct {
	db Querier
}

func NewMessageRepository(db Querier) ports.MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) ListByProject(ctx context.Context, projectID string, newestFirst bool) ([]domain.Message, error) {
	return fetchAll[domain.Message](ctx, r.db, From(tableMessages).Eq("project_id", projectID).Order("created_at", newestFirst))
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) (*domain.Message, error) {
	row := Row{
		"project_id":  m.ProjectID,
		"sender_id":   m.SenderID,
		"sender_role": string(m.SenderRole),
		"sender_name": m.SenderName,
		"content":     m.Content,
		"photo_url":   m.PhotoURL,
	}
	if m.Read != nil {
		row["read"] = *m.Read
	}
	return insertRow[domain.Message](ctx, r.db, tableMessages, row)
}

func (r *MessageRepository) MarkRead(ctx context.Context, projectID string, from domain.SenderRole) error {
	filter := From(tableMessages).Eq("project_id", projectID).Eq("sender_role", string(from)).Eq("read", false)
	_, err := updateWhere(ctx, r.db, tableMessages, Row{"read": true}, filter)
	return err
}

func (r *MessageRepository) CountUnread(ctx context.Context, projectID string, from domain.SenderRole) (int, error) {
	q := From(tableMessages).Select("count(*)").Eq("sender_role", string(from)).Eq("read", false)
	if projectID != "" {
		q.Eq("project_id", projectID)
	}
	sql, args := q.SQL()
	var n int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count unread: %w", classify(err))
	}
	return n, nil
}

func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	return deleteWhere(ctx, r.db, From(tableMessages).Eq("id", id), true)
}

func (r *MessageRepository) DeleteByProject(ctx context.Context, projectID string) error {
	return deleteWhere(ctx, r.db, From(tableMessages).Eq("project_id", projectID), false)
}
