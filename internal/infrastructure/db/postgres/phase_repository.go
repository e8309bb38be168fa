package postgres

import (
	"context"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
)

const (
	tablePhases = "phases"
	tableImages = "project_images"
)

type PhaseRepository struct {
	db Querier
}

func NewPhaseRepository(db Querier) ports.PhaseRepository {
	return &PhaseRepository{db: db}
}

func (r *PhaseRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Phase, error) {
	return fetchAll[domain.Phase](ctx, r.db, From(tablePhases).Eq("project_id", projectID).Order("order_index", false))
}

func (r *PhaseRepository) ListImages(ctx context.Context, projectID string) ([]domain.ProjectImage, error) {
	return fetchAll[domain.ProjectImage](ctx, r.db, From(tableImages).Eq("project_id", projectID).Order("uploaded_at", true))
}

func (r *PhaseRepository) Create(ctx context.Context, ph *domain.Phase) (*domain.Phase, error) {
	return insertRow[domain.Phase](ctx, r.db, tablePhases, Row{
		"project_id":  ph.ProjectID,
		"name":        ph.Name,
		"description": ph.Description,
		"status":      string(ph.Status),
		"start_date":  nullable(ph.StartDate),
		"end_date":    nullable(ph.EndDate),
		"progress":    ph.Progress,
		"order_index": ph.OrderIndex,
	})
}

func (r *PhaseRepository) Update(ctx context.Context, id string, patch ports.PhasePatch) (*domain.Phase, error) {
	set := Row{}
	setString(set, "name", patch.Name)
	setString(set, "description", patch.Description)
	setString(set, "start_date", patch.StartDate)
	setString(set, "end_date", patch.EndDate)
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	if patch.Progress != nil {
		set["progress"] = *patch.Progress
	}
	if patch.OrderIndex != nil {
		set["order_index"] = *patch.OrderIndex
	}
	return updateByID[domain.Phase](ctx, r.db, tablePhases, id, set)
}

func (r *PhaseRepository) Delete(ctx context.Context, id string) error {
	return deleteWhere(ctx, r.db, From(tablePhases).Eq("id", id), true)
}
