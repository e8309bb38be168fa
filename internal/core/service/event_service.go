package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
	"github.com/tde-services/project-portal/internal/pkg/validation"
)

const (
	tableAdminEvents     = "admin_events"
	defaultUpcomingLimit = 10
)

type adminEventService struct {
	repo ports.AdminEventRepository
	rt   ports.Realtime
	now  func() time.Time
	log  zerolog.Logger
}

// NewAdminEventService returns the shared back-office calendar.
func NewAdminEventService(repo ports.AdminEventRepository, rt ports.Realtime, now func() time.Time, log zerolog.Logger) ports.AdminEventService {
	if now == nil {
		now = time.Now
	}
	return &adminEventService{repo: repo, rt: rt, now: now, log: log}
}

func (s *adminEventService) GetAll(ctx context.Context) []domain.AdminEvent {
	return s.list(ctx, ports.EventQuery{})
}

func (s *adminEventService) GetByID(ctx context.Context, id string) *domain.AdminEvent {
	ev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrEventNotFound) {
			s.log.Error().Err(err).Str("event_id", id).Msg("get event failed")
		}
		return nil
	}
	return ev
}

// GetByDate lists the events of one day. Malformed dates match nothing.
func (s *adminEventService) GetByDate(ctx context.Context, date string) []domain.AdminEvent {
	if validation.Get().Var(date, "required,ymd") != nil {
		return []domain.AdminEvent{}
	}
	return s.list(ctx, ports.EventQuery{Date: date})
}

// Upcoming lists events from today on, soonest first.
func (s *adminEventService) Upcoming(ctx context.Context, limit int) []domain.AdminEvent {
	if limit <= 0 {
		limit = defaultUpcomingLimit
	}
	today := s.now().UTC().Format(domain.DateLayout)
	return s.list(ctx, ports.EventQuery{From: today, Limit: limit})
}

func (s *adminEventService) list(ctx context.Context, q ports.EventQuery) []domain.AdminEvent {
	events, err := s.repo.List(ctx, q)
	if err != nil {
		s.log.Error().Err(err).Str("date", q.Date).Str("from", q.From).Msg("list events failed")
		return []domain.AdminEvent{}
	}
	return events
}

// Create validates the input before touching the database.
func (s *adminEventService) Create(ctx context.Context, in domain.AdminEventInput, createdBy string) (*domain.AdminEvent, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	ev := in.ToEvent()
	ev.CreatedBy = createdBy
	created, err := s.repo.Create(ctx, &ev)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return created, nil
}

func (s *adminEventService) Update(ctx context.Context, id string, in domain.AdminEventInput) (*domain.AdminEvent, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	ev := in.ToEvent()
	updated, err := s.repo.Update(ctx, id, &ev)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *adminEventService) Remove(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove event: %w", err)
	}
	return nil
}

// Subscribe follows every change of the calendar. Deletions carry the old
// row.
func (s *adminEventService) Subscribe(ctx context.Context, fn func(ports.ChangeEvent, domain.AdminEvent)) (func(), error) {
	sub, err := s.rt.Subscribe(ctx, ports.ChangeFilter{Table: tableAdminEvents, Event: ports.ChangeAny}, func(ch ports.Change) {
		raw := ch.New
		if ch.Event == ports.ChangeDelete || len(raw) == 0 {
			raw = ch.Old
		}
		var ev domain.AdminEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			s.log.Warn().Err(err).Str("type", string(ch.Event)).Msg("undecodable event change dropped")
			return
		}
		fn(ch.Event, ev)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe events: %w", err)
	}
	return sub.Unsubscribe, nil
}
