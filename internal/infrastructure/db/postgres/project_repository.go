package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
)

const tableProjects = "projects"

// ProjectRepository implements ports.ProjectRepository on the projects
// table.
type ProjectRepository struct {
	db Querier
}

func NewProjectRepository(db Querier) ports.ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	return fetchAll[domain.Project](ctx, r.db, From(tableProjects).Order("created_at", true))
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	p, err := fetchOne[domain.Project](ctx, r.db, From(tableProjects).Eq("id", id))
	return p, notFoundAs(err, domain.ErrProjectNotFound)
}

func (r *ProjectRepository) FindByClientEmail(ctx context.Context, email string, limit int) ([]domain.Project, error) {
	return fetchAll[domain.Project](ctx, r.db, From(tableProjects).EqFold("client_email", email).Limit(limit))
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	row := Row{
		"name":         p.Name,
		"description":  p.Description,
		"client_name":  p.ClientName,
		"client_email": nullable(p.ClientEmail),
		"client_phone": nullable(p.ClientPhone),
		"status":       string(p.Status),
		"progress":     p.Progress,
		"budget":       p.Budget,
		"start_date":   nullable(p.StartDate),
		"end_date":     nullable(p.EndDate),
		"pin":          p.PIN,
		"created_by":   nullable(p.CreatedBy),
	}
	if p.Location != nil {
		row["location"] = *p.Location
	}
	created, err := insertRow[domain.Project](ctx, r.db, tableProjects, row)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return created, nil
}

func (r *ProjectRepository) Update(ctx context.Context, id string, patch ports.ProjectPatch) (*domain.Project, error) {
	set := Row{}
	setString(set, "name", patch.Name)
	setString(set, "description", patch.Description)
	setString(set, "client_name", patch.ClientName)
	setString(set, "client_email", patch.ClientEmail)
	setString(set, "client_phone", patch.ClientPhone)
	setString(set, "location", patch.Location)
	setString(set, "start_date", patch.StartDate)
	setString(set, "end_date", patch.EndDate)
	setString(set, "pin", patch.PIN)
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	if patch.Progress != nil {
		set["progress"] = *patch.Progress
	}
	if patch.Budget != nil {
		set["budget"] = *patch.Budget
	}
	p, err := updateByID[domain.Project](ctx, r.db, tableProjects, id, set)
	return p, notFoundAs(err, domain.ErrProjectNotFound)
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return notFoundAs(deleteWhere(ctx, r.db, From(tableProjects).Eq("id", id), true), domain.ErrProjectNotFound)
}

// setString copies a patch field; an empty string clears the column.
func setString(set Row, col string, v *string) {
	if v != nil {
		set[col] = nullable(*v)
	}
}

// notFoundAs replaces ports.ErrNotFound with the entity's own sentinel.
func notFoundAs(err, sentinel error) error {
	if errors.Is(err, ports.ErrNotFound) {
		return sentinel
	}
	return err
}
