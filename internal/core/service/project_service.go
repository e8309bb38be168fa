package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
	"github.com/tde-services/project-portal/internal/pkg/validation"
)

const defaultActivityLimit = 50

type projectService struct {
	repo     ports.ProjectRepository
	activity ports.ActivityRepository
	now      func() time.Time
	log      zerolog.Logger
}

// NewProjectService returns a ProjectService. activity may be nil, in which
// case mutations are not audited.
func NewProjectService(repo ports.ProjectRepository, activity ports.ActivityRepository, now func() time.Time, log zerolog.Logger) ports.ProjectService {
	if now == nil {
		now = time.Now
	}
	return &projectService{repo: repo, activity: activity, now: now, log: log}
}

func (s *projectService) GetAll(ctx context.Context) []domain.Project {
	projects, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list projects failed")
		return []domain.Project{}
	}
	return projects
}

func (s *projectService) GetByID(ctx context.Context, id string) *domain.Project {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrProjectNotFound) {
			s.log.Error().Err(err).Str("project_id", id).Msg("get project failed")
		}
		return nil
	}
	return p
}

// Create stores a new project with status, progress and PIN defaults. When
// the deployment has no location column the insert is retried without it.
func (s *projectService) Create(ctx context.Context, in ports.ProjectInput, createdBy string) (*domain.Project, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	p := &domain.Project{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		ClientName:  strings.TrimSpace(in.ClientName),
		ClientEmail: domain.NormalizeEmail(in.ClientEmail),
		ClientPhone: strings.TrimSpace(in.ClientPhone),
		Location:    in.Location,
		Status:      domain.ProjectStatus(in.Status),
		Progress:    in.Progress,
		Budget:      in.Budget,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		PIN:         in.PIN,
		CreatedBy:   createdBy,
	}
	if p.Status == "" {
		p.Status = domain.ProjectPlanning
	}
	if p.PIN == "" {
		p.PIN = domain.DefaultClientPIN
	}

	created, err := s.repo.Create(ctx, p)
	if errors.Is(err, ports.ErrColumnMissing) && p.Location != nil {
		s.log.Warn().Err(err).Msg("location column missing, creating project without it")
		p.Location = nil
		created, err = s.repo.Create(ctx, p)
	}
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.record(ctx, created.ID, "project_created", createdBy, map[string]any{"name": created.Name, "status": string(created.Status)})
	return created, nil
}

func (s *projectService) Update(ctx context.Context, id string, patch ports.ProjectPatch, actor string) (*domain.Project, error) {
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, domain.NewValidationError("status", "is not a known project status")
	}
	if patch.ClientEmail != nil {
		e := domain.NormalizeEmail(*patch.ClientEmail)
		patch.ClientEmail = &e
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	details := map[string]any{}
	if patch.Status != nil {
		details["status"] = string(*patch.Status)
	}
	if patch.Progress != nil {
		details["progress"] = *patch.Progress
	}
	s.record(ctx, id, "project_updated", actor, details)
	return updated, nil
}

func (s *projectService) Delete(ctx context.Context, id string, actor string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	s.record(ctx, id, "project_deleted", actor, nil)
	return nil
}

// Stats aggregates every project; overdue is judged against today.
func (s *projectService) Stats(ctx context.Context) domain.ProjectStats {
	return domain.ComputeProjectStats(s.GetAll(ctx), s.now().UTC())
}

func (s *projectService) Activity(ctx context.Context, projectID string, limit int) []domain.ActivityLog {
	if s.activity == nil {
		return []domain.ActivityLog{}
	}
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	logs, err := s.activity.ListByProject(ctx, projectID, limit)
	if err != nil {
		s.log.Warn().Err(err).Str("project_id", projectID).Msg("list activity failed")
		return []domain.ActivityLog{}
	}
	return logs
}

// record appends to the audit trail. Failures never fail the mutation.
func (s *projectService) record(ctx context.Context, projectID, action, actor string, details map[string]any) {
	if s.activity == nil {
		return
	}
	entry := &domain.ActivityLog{
		ProjectID: projectID,
		Action:    action,
		Details:   details,
		Actor:     actor,
		CreatedAt: s.now().UTC(),
	}
	if err := s.activity.Insert(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("project_id", projectID).Str("action", action).Msg("failed to record activity")
	}
}
