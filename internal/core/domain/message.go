package domain

import (
	"sort"
	"strings"
	"time"
)

// SenderRole identifies which side of a project conversation wrote a message.
type SenderRole string

const (
	SenderAdmin  SenderRole = "admin"
	SenderClient SenderRole = "client"
)

// Message belongs to the conversation of one project. Read is nil when the
// deployment's messages table has no read column.
type Message struct {
	ID         string     `json:"id" db:"id"`
	ProjectID  string     `json:"project_id" db:"project_id"`
	SenderID   *string    `json:"sender_id,omitempty" db:"sender_id"`
	SenderRole SenderRole `json:"sender_role" db:"sender_role"`
	SenderName string     `json:"sender_name" db:"sender_name"`
	Content    string     `json:"content" db:"content"`
	PhotoURL   *string    `json:"photo_url,omitempty" db:"photo_url"`
	Read       *bool      `json:"read,omitempty" db:"read"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// IsUnreadFor reports whether the message is an unread one written by the
// other side.
func (m *Message) IsUnreadFor(reader SenderRole) bool {
	return m.SenderRole != reader && m.Read != nil && !*m.Read
}

// Conversation summarizes one project's message thread for the admin inbox.
type Conversation struct {
	ProjectID           string  `json:"projectId"`
	ProjectName         string  `json:"projectName"`
	ClientName          string  `json:"clientName"`
	LastMessage         Message `json:"lastMessage"`
	UnreadCount         int     `json:"unreadCount"`
	MessageCount        int     `json:"messageCount"`
	TotalAdminMessages  int     `json:"totalAdminMessages"`
	TotalClientMessages int     `json:"totalClientMessages"`
}

// BuildConversation summarizes messages (any order) for project. It returns
// false when there is nothing to summarize.
func BuildConversation(project Project, messages []Message) (Conversation, bool) {
	if len(messages) == 0 {
		return Conversation{}, false
	}
	sorted := append([]Message(nil), messages...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })

	conv := Conversation{
		ProjectID:    project.ID,
		ProjectName:  project.Name,
		LastMessage:  sorted[0],
		MessageCount: len(sorted),
	}
	for i := range sorted {
		m := &sorted[i]
		switch m.SenderRole {
		case SenderAdmin:
			conv.TotalAdminMessages++
		case SenderClient:
			conv.TotalClientMessages++
			if conv.ClientName == "" && strings.TrimSpace(m.SenderName) != "" {
				conv.ClientName = m.SenderName
			}
		}
		if m.IsUnreadFor(SenderAdmin) {
			conv.UnreadCount++
		}
	}
	if conv.ClientName == "" {
		conv.ClientName = project.ClientName
	}
	if conv.ClientName == "" {
		conv.ClientName = "Client"
	}
	return conv, true
}

// SortConversations orders conversations by most recent message first.
func SortConversations(convs []Conversation) {
	sort.SliceStable(convs, func(i, j int) bool {
		return convs[i].LastMessage.CreatedAt.After(convs[j].LastMessage.CreatedAt)
	})
}
