package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
	"github.com/tde-services/project-portal/internal/pkg/metrics"
)

const inboxPrefix = "ux_productivity_suite_v1"

type notificationInbox struct {
	store     ports.KeyValueStore
	keyNotifs string
	keyFilter string
	keyPrefs  string
	now       func() time.Time
	log       zerolog.Logger

	mu sync.Mutex
}

// NewNotificationInbox returns the bell panel stored in the durable store
// under the given scope name ("admin", "client").
func NewNotificationInbox(store ports.KeyValueStore, scope string, now func() time.Time, log zerolog.Logger) ports.NotificationInbox {
	if scope == "" {
		scope = "default"
	}
	if now == nil {
		now = time.Now
	}
	base := inboxPrefix + ":" + scope + ":"
	return &notificationInbox{
		store:     store,
		keyNotifs: base + "notifications",
		keyFilter: base + "notif_filter",
		keyPrefs:  base + "prefs",
		now:       now,
		log:       log,
	}
}

func (b *notificationInbox) load(ctx context.Context) domain.Inbox {
	raw, ok, err := b.store.Get(ctx, b.keyNotifs)
	if err != nil {
		b.log.Warn().Err(err).Msg("inbox read failed")
		return domain.Inbox{}
	}
	if !ok || raw == "" {
		return domain.Inbox{}
	}
	var in domain.Inbox
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		b.log.Warn().Err(err).Msg("corrupt inbox dropped")
		return domain.Inbox{}
	}
	return in
}

func (b *notificationInbox) save(ctx context.Context, in domain.Inbox) {
	if len(in) > domain.InboxCap {
		in = in[:domain.InboxCap]
	}
	raw, err := json.Marshal(in)
	if err != nil {
		b.log.Error().Err(err).Msg("inbox not encodable")
		return
	}
	if err := b.store.Set(ctx, b.keyNotifs, string(raw)); err != nil {
		b.log.Warn().Err(err).Msg("inbox write failed")
	}
}

// Notify adds n on top of the inbox. A notification whose id is already
// present is ignored.
func (b *notificationInbox) Notify(ctx context.Context, n domain.Notification) bool {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Title == "" {
		n.Title = "Notification"
	}
	if n.Type == "" {
		n.Type = "info"
	}
	if n.Priority == "" {
		n.Priority = "medium"
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	if n.URL == "" {
		n.URL = "#"
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = b.now().UTC()
	}
	n.Read = false

	b.mu.Lock()
	defer b.mu.Unlock()
	next, added := b.load(ctx).Add(n, domain.InboxCap)
	if !added {
		return false
	}
	b.save(ctx, next)
	metrics.NotificationsTotal.WithLabelValues(n.Type).Inc()
	return true
}

func (b *notificationInbox) List(ctx context.Context, filter domain.InboxFilter) []domain.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.load(ctx).Filter(filter)
}

func (b *notificationInbox) MarkRead(ctx context.Context, id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	in := b.load(ctx)
	for i := range in {
		if in[i].ID == id {
			if !in[i].Read {
				in[i].Read = true
				b.save(ctx, in)
			}
			return true
		}
	}
	return false
}

func (b *notificationInbox) MarkAllRead(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	in := b.load(ctx)
	for i := range in {
		in[i].Read = true
	}
	b.save(ctx, in)
}

func (b *notificationInbox) UnreadCount(ctx context.Context) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.load(ctx).Unread()
}

func (b *notificationInbox) Badge(ctx context.Context) string {
	return domain.BadgeText(b.UnreadCount(ctx))
}

func (b *notificationInbox) ActiveFilter(ctx context.Context) domain.InboxFilter {
	raw, ok, err := b.store.Get(ctx, b.keyFilter)
	if err != nil || !ok {
		return domain.FilterAll
	}
	return domain.ParseInboxFilter(raw)
}

func (b *notificationInbox) SetActiveFilter(ctx context.Context, f domain.InboxFilter) domain.InboxFilter {
	f = domain.ParseInboxFilter(string(f))
	if err := b.store.Set(ctx, b.keyFilter, string(f)); err != nil {
		b.log.Warn().Err(err).Msg("inbox filter write failed")
	}
	return f
}

func (b *notificationInbox) Preferences(ctx context.Context) map[string]any {
	prefs := map[string]any{}
	raw, ok, err := b.store.Get(ctx, b.keyPrefs)
	if err != nil || !ok || raw == "" {
		return prefs
	}
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		return map[string]any{}
	}
	return prefs
}

// SetPreferences merges prefs into the stored preferences.
func (b *notificationInbox) SetPreferences(ctx context.Context, prefs map[string]any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	current := b.Preferences(ctx)
	for k, v := range prefs {
		current[k] = v
	}
	raw, err := json.Marshal(current)
	if err != nil {
		return err
	}
	return b.store.Set(ctx, b.keyPrefs, string(raw))
}
