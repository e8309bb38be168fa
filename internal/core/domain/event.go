package domain

import (
	"strings"
	"time"
)

type EventPriority string

const (
	EventHigh   EventPriority = "high"
	EventMedium EventPriority = "medium"
	EventLow    EventPriority = "low"
)

type EventType string

const (
	EventMeeting  EventType = "meeting"
	EventDelivery EventType = "delivery"
	EventDeadline EventType = "deadline"
	EventTask     EventType = "task"
	EventGeneral  EventType = "general"
)

// AdminEvent is a calendar entry shared by every back-office user.
type AdminEvent struct {
	ID        string        `json:"id" db:"id"`
	Title     string        `json:"title" db:"title"`
	Date      string        `json:"date" db:"event_date"`
	Time      string        `json:"time,omitempty" db:"event_time"`
	Priority  EventPriority `json:"priority" db:"priority"`
	Type      EventType     `json:"type" db:"event_type"`
	ProjectID *string       `json:"projectId,omitempty" db:"project_id"`
	Notes     string        `json:"notes" db:"notes"`
	CreatedBy string        `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`
}

// AdminEventInput is the payload of a create or update. Date and Time are
// validated by the service before any remote call.
type AdminEventInput struct {
	Title     string `json:"title" validate:"required"`
	Date      string `json:"date" validate:"required,ymd"`
	Time      string `json:"time" validate:"omitempty,hhmm"`
	Priority  string `json:"priority"`
	Type      string `json:"type"`
	ProjectID string `json:"projectId" validate:"omitempty,uuid"`
	Notes     string `json:"notes"`
}

// NormalizeEventPriority defaults unknown priorities to medium.
func NormalizeEventPriority(p string) EventPriority {
	switch EventPriority(strings.ToLower(strings.TrimSpace(p))) {
	case EventHigh:
		return EventHigh
	case EventLow:
		return EventLow
	default:
		return EventMedium
	}
}

// NormalizeEventType defaults unknown types to general.
func NormalizeEventType(t string) EventType {
	switch v := EventType(strings.ToLower(strings.TrimSpace(t))); v {
	case EventMeeting, EventDelivery, EventDeadline, EventTask:
		return v
	default:
		return EventGeneral
	}
}

// ToEvent trims and normalizes the input. It assumes validation passed.
func (in AdminEventInput) ToEvent() AdminEvent {
	ev := AdminEvent{
		Title:    strings.TrimSpace(in.Title),
		Date:     strings.TrimSpace(in.Date),
		Time:     strings.TrimSpace(in.Time),
		Priority: NormalizeEventPriority(in.Priority),
		Type:     NormalizeEventType(in.Type),
		Notes:    strings.TrimSpace(in.Notes),
	}
	if pid := strings.TrimSpace(in.ProjectID); pid != "" {
		ev.ProjectID = &pid
	}
	return ev
}

// ActivityLog is an audit entry recorded after admin mutations.
type ActivityLog struct {
	ProjectID string         `json:"project_id" bson:"project_id"`
	Action    string         `json:"action" bson:"action"`
	Details   map[string]any `json:"details,omitempty" bson:"details,omitempty"`
	Actor     string         `json:"actor,omitempty" bson:"actor,omitempty"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
}
