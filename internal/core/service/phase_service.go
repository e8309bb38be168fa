package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
	"github.com/tde-services/project-portal/internal/pkg/validation"
)

type phaseService struct {
	repo ports.PhaseRepository
	log  zerolog.Logger
}

func NewPhaseService(repo ports.PhaseRepository, log zerolog.Logger) ports.PhaseService {
	return &phaseService{repo: repo, log: log}
}

// ByProject returns the timeline with site photos merged into their phases.
// Image lookup failures leave the phases without photos.
func (s *phaseService) ByProject(ctx context.Context, projectID string) []domain.Phase {
	phases, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		s.log.Error().Err(err).Str("project_id", projectID).Msg("list phases failed")
		return []domain.Phase{}
	}
	images, err := s.repo.ListImages(ctx, projectID)
	if err != nil {
		s.log.Warn().Err(err).Str("project_id", projectID).Msg("list project images failed")
		return phases
	}
	return domain.MergeImagesIntoPhases(phases, images)
}

// Create appends a pending phase at the end of the timeline.
func (s *phaseService) Create(ctx context.Context, projectID string, in ports.PhaseInput) (*domain.Phase, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = strings.TrimSpace(in.Title)
	}
	if name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	existing, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("create phase: %w", err)
	}
	next := 0
	for _, ph := range existing {
		if ph.OrderIndex >= next {
			next = ph.OrderIndex + 1
		}
	}

	created, err := s.repo.Create(ctx, &domain.Phase{
		ProjectID:   projectID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Status:      domain.PhasePending,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		OrderIndex:  next,
	})
	if err != nil {
		return nil, fmt.Errorf("create phase: %w", err)
	}
	return created, nil
}

func (s *phaseService) Update(ctx context.Context, id string, patch ports.PhasePatch) (*domain.Phase, error) {
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}
	if patch.Status != nil {
		switch *patch.Status {
		case domain.PhasePending, domain.PhaseInProgress, domain.PhaseCompleted:
		default:
			return nil, domain.NewValidationError("status", "must be one of: pending in_progress completed")
		}
	}
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update phase: %w", err)
	}
	return updated, nil
}

func (s *phaseService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete phase: %w", err)
	}
	return nil
}
