package domain

import (
	"strings"
	"time"
)

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

type TicketPriority string

const (
	TicketLow    TicketPriority = "low"
	TicketMedium TicketPriority = "medium"
	TicketHigh   TicketPriority = "high"
	TicketUrgent TicketPriority = "urgent"
)

// DefaultTicketTitle is used when a client submits a ticket without a title.
const DefaultTicketTitle = "Nouveau ticket"

// Ticket is a support request raised on a project.
type Ticket struct {
	ID          string         `json:"id" db:"id"`
	ProjectID   string         `json:"project_id" db:"project_id"`
	ProjectName string         `json:"project_name,omitempty" db:"project_name"`
	Title       string         `json:"title" db:"title"`
	Description string         `json:"description" db:"description"`
	Priority    TicketPriority `json:"priority" db:"priority"`
	Status      TicketStatus   `json:"status" db:"status"`
	Tags        []string       `json:"tags" db:"tags"`
	CreatedBy   *string        `json:"created_by,omitempty" db:"created_by"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   *time.Time     `json:"updated_at,omitempty" db:"updated_at"`
}

// IsOpen reports whether the ticket still needs attention.
func (t *Ticket) IsOpen() bool {
	s := strings.ToLower(string(t.Status))
	return s == string(TicketOpen) || s == "active"
}

// TicketInput is the loosely shaped payload older screens submit: subject and
// message are accepted as aliases of title and description.
type TicketInput struct {
	Title       string   `json:"title"`
	Subject     string   `json:"subject"`
	Description string   `json:"description"`
	Message     string   `json:"message"`
	Priority    string   `json:"priority"`
	Status      string   `json:"status"`
	Tags        []string `json:"tags"`
}

// NormalizeTicketStatus maps legacy spellings onto TicketStatus.
func NormalizeTicketStatus(s string) TicketStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in-progress", "in_progress", "inprogress":
		return TicketInProgress
	case "resolved":
		return TicketResolved
	case "closed":
		return TicketClosed
	default:
		return TicketOpen
	}
}

// NormalizeTicketPriority defaults unknown priorities to medium.
func NormalizeTicketPriority(p string) TicketPriority {
	switch TicketPriority(strings.ToLower(strings.TrimSpace(p))) {
	case TicketLow:
		return TicketLow
	case TicketHigh:
		return TicketHigh
	case TicketUrgent:
		return TicketUrgent
	default:
		return TicketMedium
	}
}

// Normalize resolves aliases and defaults into a Ticket for projectID.
func (in TicketInput) Normalize(projectID string) Ticket {
	title := firstNonEmpty(in.Title, in.Subject)
	if title == "" {
		title = DefaultTicketTitle
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	return Ticket{
		ProjectID:   projectID,
		Title:       title,
		Description: firstNonEmpty(in.Description, in.Message),
		Priority:    NormalizeTicketPriority(in.Priority),
		Status:      NormalizeTicketStatus(in.Status),
		Tags:        tags,
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
