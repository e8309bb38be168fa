package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
)

type ticketService struct {
	repo ports.TicketRepository
	log  zerolog.Logger
}

func NewTicketService(repo ports.TicketRepository, log zerolog.Logger) ports.TicketService {
	return &ticketService{repo: repo, log: log}
}

func (s *ticketService) List(ctx context.Context, filter ports.TicketFilter) []domain.Ticket {
	if filter.Status != "" {
		filter.Status = domain.NormalizeTicketStatus(string(filter.Status))
	}
	tickets, err := s.repo.List(ctx, filter)
	if err != nil {
		s.log.Error().Err(err).Str("project_id", filter.ProjectID).Msg("list tickets failed")
		return []domain.Ticket{}
	}
	return tickets
}

func (s *ticketService) GetByID(ctx context.Context, id string) *domain.Ticket {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrTicketNotFound) {
			s.log.Error().Err(err).Str("ticket_id", id).Msg("get ticket failed")
		}
		return nil
	}
	return t
}

func (s *ticketService) Create(ctx context.Context, projectID string, in domain.TicketInput, createdBy string) (*domain.Ticket, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, domain.NewValidationError("project_id", "is required")
	}
	t := in.Normalize(projectID)
	if createdBy != "" {
		t.CreatedBy = &createdBy
	}
	created, err := s.repo.Create(ctx, &t)
	if err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	return created, nil
}

func (s *ticketService) Update(ctx context.Context, id string, patch ports.TicketPatch) (*domain.Ticket, error) {
	if patch.Status != nil {
		st := domain.NormalizeTicketStatus(string(*patch.Status))
		patch.Status = &st
	}
	if patch.Priority != nil {
		p := domain.NormalizeTicketPriority(string(*patch.Priority))
		patch.Priority = &p
	}
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update ticket: %w", err)
	}
	return updated, nil
}

func (s *ticketService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	return nil
}
