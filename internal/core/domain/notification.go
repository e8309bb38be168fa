package domain

import (
	"slices"
	"strconv"
	"strings"
	"time"
)

// InboxCap is the number of notifications kept per scope.
const InboxCap = 300

// InboxFilter selects a category of notifications.
type InboxFilter string

const (
	FilterAll      InboxFilter = "all"
	FilterUrgent   InboxFilter = "urgent"
	FilterDeadline InboxFilter = "deadline"
	FilterMessage  InboxFilter = "message"
)

// ParseInboxFilter falls back to FilterAll for unknown values.
func ParseInboxFilter(s string) InboxFilter {
	switch f := InboxFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case FilterUrgent, FilterDeadline, FilterMessage:
		return f
	default:
		return FilterAll
	}
}

// Notification is an alert shown in the bell panel. It only lives in the
// browser-side durable store.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Priority  string    `json:"priority"`
	Tags      []string  `json:"tags"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
	Read      bool      `json:"read"`
}

// Matches reports whether n belongs to category f.
func (n *Notification) Matches(f InboxFilter) bool {
	switch f {
	case FilterUrgent:
		return strings.EqualFold(n.Priority, "urgent")
	case FilterDeadline, FilterMessage:
		tag := string(f)
		return slices.Contains(n.Tags, tag) || strings.Contains(strings.ToLower(n.Type), tag)
	default:
		return true
	}
}

// Inbox is the ordered (newest first) notification list of one scope.
type Inbox []Notification

// Add prepends n unless a notification with the same id is already present.
// The list is truncated to limit. It reports whether n was added.
func (in Inbox) Add(n Notification, limit int) (Inbox, bool) {
	for i := range in {
		if in[i].ID == n.ID {
			return in, false
		}
	}
	out := make(Inbox, 0, len(in)+1)
	out = append(out, n)
	out = append(out, in...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, true
}

// Filter returns the notifications in category f.
func (in Inbox) Filter(f InboxFilter) []Notification {
	out := make([]Notification, 0, len(in))
	for i := range in {
		if in[i].Matches(f) {
			out = append(out, in[i])
		}
	}
	return out
}

// Unread counts notifications not yet read.
func (in Inbox) Unread() int {
	n := 0
	for i := range in {
		if !in[i].Read {
			n++
		}
	}
	return n
}

// BadgeText renders an unread count the way the bell shows it.
func BadgeText(unread int) string {
	switch {
	case unread <= 0:
		return ""
	case unread > 99:
		return "99+"
	default:
		return strconv.Itoa(unread)
	}
}
