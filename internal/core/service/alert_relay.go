package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
)

const previewLen = 120

type alertRelay struct {
	rt        ports.Realtime
	events    ports.AdminEventService
	inbox     ports.NotificationInbox
	audience  domain.SenderRole
	projectID func(context.Context) string
	log       zerolog.Logger

	mu      sync.Mutex
	running bool
	bound   string // project the client relay is filtered on
	stops   []func()
}

// NewAdminAlertRelay notifies the back-office inbox of client messages on
// any project and of new calendar events.
func NewAdminAlertRelay(rt ports.Realtime, events ports.AdminEventService, inbox ports.NotificationInbox, log zerolog.Logger) ports.AlertRelay {
	return &alertRelay{rt: rt, events: events, inbox: inbox, audience: domain.SenderAdmin, log: log.With().Str("component", "alert_relay").Logger()}
}

// NewClientAlertRelay notifies the client inbox of back-office messages on
// the session's project.
func NewClientAlertRelay(rt ports.Realtime, inbox ports.NotificationInbox, projectID func(context.Context) string, log zerolog.Logger) ports.AlertRelay {
	return &alertRelay{rt: rt, inbox: inbox, audience: domain.SenderClient, projectID: projectID, log: log.With().Str("component", "alert_relay").Logger()}
}

// Start opens the relay's subscriptions. Starting a running relay is a
// no-op unless the client session moved to another project, in which case
// the relay follows it.
func (r *alertRelay) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	filter := ports.ChangeFilter{Table: tableMessages, Event: ports.ChangeInsert}
	if r.audience == domain.SenderClient {
		pid := r.projectID(ctx)
		if pid == "" {
			r.stopLocked()
			return domain.ErrNotAuthenticated
		}
		if r.running && pid == r.bound {
			return nil
		}
		if r.running {
			r.log.Info().Str("from", r.bound).Str("to", pid).Msg("client project changed, resubscribing")
			r.stopLocked()
		}
		filter.Column, filter.Value = "project_id", pid
		r.bound = pid
	} else if r.running {
		return nil
	}

	sub, err := r.rt.Subscribe(ctx, filter, r.onMessage)
	if err != nil {
		return fmt.Errorf("start alert relay: %w", err)
	}
	r.stops = append(r.stops, sub.Unsubscribe)

	if r.events != nil {
		stop, err := r.events.Subscribe(ctx, r.onEvent)
		if err != nil {
			r.stopLocked()
			return fmt.Errorf("start alert relay: %w", err)
		}
		r.stops = append(r.stops, stop)
	}
	r.running = true
	return nil
}

func (r *alertRelay) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

func (r *alertRelay) stopLocked() {
	for _, stop := range r.stops {
		stop()
	}
	r.stops = nil
	r.running = false
	r.bound = ""
}

func (r *alertRelay) onMessage(ch ports.Change) {
	var m domain.Message
	if err := json.Unmarshal(ch.New, &m); err != nil {
		r.log.Warn().Err(err).Msg("undecodable message change dropped")
		return
	}
	if m.SenderRole == r.audience {
		return
	}
	url := "/client/messages"
	if r.audience == domain.SenderAdmin {
		url = "/admin/messages?project=" + m.ProjectID
	}
	sender := strings.TrimSpace(m.SenderName)
	if sender == "" {
		sender = defaultAdminSender
		if m.SenderRole == domain.SenderClient {
			sender = defaultClientSender
		}
	}
	r.inbox.Notify(context.Background(), domain.Notification{
		ID:       "msg:" + m.ID,
		Title:    "Nouveau message",
		Message:  sender + ": " + preview(m.Content),
		Type:     "message",
		Priority: "medium",
		Tags:     []string{"message"},
		URL:      url,
	})
}

func (r *alertRelay) onEvent(ev ports.ChangeEvent, e domain.AdminEvent) {
	if ev != ports.ChangeInsert {
		return
	}
	priority := string(e.Priority)
	if e.Priority == domain.EventHigh {
		priority = "urgent"
	}
	when := e.Date
	if e.Time != "" {
		when += " " + e.Time
	}
	r.inbox.Notify(context.Background(), domain.Notification{
		ID:       "event:" + e.ID,
		Title:    e.Title,
		Message:  when,
		Type:     string(e.Type),
		Priority: priority,
		Tags:     []string{string(e.Type)},
		URL:      "/admin/calendar?date=" + e.Date,
	})
}

func preview(s string) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= previewLen {
		return s
	}
	return string(r[:previewLen]) + "…"
}
