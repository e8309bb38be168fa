package ports

import (
	"context"

	"github.com/tde-services/project-portal/internal/core/domain"
)

// NotificationInbox is the bell panel of one scope.
type NotificationInbox interface {
	Notify(ctx context.Context, n domain.Notification) bool
	List(ctx context.Context, filter domain.InboxFilter) []domain.Notification
	MarkRead(ctx context.Context, id string) bool
	MarkAllRead(ctx context.Context)
	UnreadCount(ctx context.Context) int
	Badge(ctx context.Context) string
	ActiveFilter(ctx context.Context) domain.InboxFilter
	SetActiveFilter(ctx context.Context, f domain.InboxFilter) domain.InboxFilter
	Preferences(ctx context.Context) map[string]any
	SetPreferences(ctx context.Context, prefs map[string]any) error
}

// AlertRelay turns realtime changes into inbox notifications.
type AlertRelay interface {
	Start(ctx context.Context) error
	Stop()
}
