package ports

import (
	"context"

	"github.com/tde-services/project-portal/internal/core/domain"
)

// ActivityRepository stores the audit trail of admin actions.
type ActivityRepository interface {
	Insert(ctx context.Context, entry *domain.ActivityLog) error
	ListByProject(ctx context.Context, projectID string, limit int) ([]domain.ActivityLog, error)
}
