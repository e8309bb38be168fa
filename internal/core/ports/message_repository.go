package ports

import (
	"context"

	"github.com/tde-services/project-portal/internal/core/domain"
)

// MessageRepository persists project conversations. Methods touching the
// optional read column return ErrColumnMissing when the schema lacks it.
type MessageRepository interface {
	ListByProject(ctx context.Context, projectID string, newestFirst bool) ([]domain.Message, error)
	Create(ctx context.Context, m *domain.Message) (*domain.Message, error)
	// MarkRead flags as read the messages of projectID written by from.
	MarkRead(ctx context.Context, projectID string, from domain.SenderRole) error
	// CountUnread counts unread messages written by from; an empty projectID
	// counts across all projects.
	CountUnread(ctx context.Context, projectID string, from domain.SenderRole) (int, error)
	Delete(ctx context.Context, id string) error
	DeleteByProject(ctx context.Context, projectID string) error
}
