package ports

import (
	"context"

	"github.com/tde-services/project-portal/internal/core/domain"
)

// DocumentRepository persists document metadata; file bytes live in
// ObjectStorage.
type DocumentRepository interface {
	ListByProject(ctx context.Context, projectID string, publicOnly bool) ([]domain.Document, error)
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	Create(ctx context.Context, d *domain.Document) (*domain.Document, error)
	Delete(ctx context.Context, id string) error
}
