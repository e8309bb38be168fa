package postgres

import (
	"context"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
)

const tableDocuments = "documents"

type DocumentRepository struct {
	db Querier
}

func NewDocumentRepository(db Querier) ports.DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) ListByProject(ctx context.Context, projectID string, publicOnly bool) ([]domain.Document, error) {
	q := From(tableDocuments).Eq("project_id", projectID)
	if publicOnly {
		q.Eq("is_public", true)
	}
	return fetchAll[domain.Document](ctx, r.db, q.Order("created_at", true))
}

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	return fetchOne[domain.Document](ctx, r.db, From(tableDocuments).Eq("id", id))
}

func (r *DocumentRepository) Create(ctx context.Context, d *domain.Document) (*domain.Document, error) {
	return insertRow[domain.Document](ctx, r.db, tableDocuments, Row{
		"project_id":  d.ProjectID,
		"name":        d.Name,
		"file_url":    d.FileURL,
		"file_type":   nullable(d.FileType),
		"size":        d.Size,
		"is_public":   d.IsPublic,
		"uploaded_by": d.UploadedBy,
	})
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	return deleteWhere(ctx, r.db, From(tableDocuments).Eq("id", id), true)
}
