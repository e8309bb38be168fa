package ports

import (
	"context"
	"io"
	"time"

	"github.com/tde-services/project-portal/internal/core/domain"
)

// Entity services follow one contract: reads never fail (they degrade to an
// empty collection or nil), mutations return an error.

type ProjectService interface {
	GetAll(ctx context.Context) []domain.Project
	GetByID(ctx context.Context, id string) *domain.Project
	Create(ctx context.Context, in ProjectInput, createdBy string) (*domain.Project, error)
	Update(ctx context.Context, id string, patch ProjectPatch, actor string) (*domain.Project, error)
	Delete(ctx context.Context, id string, actor string) error
	Stats(ctx context.Context) domain.ProjectStats
	Activity(ctx context.Context, projectID string, limit int) []domain.ActivityLog
}

type PhaseService interface {
	ByProject(ctx context.Context, projectID string) []domain.Phase
	Create(ctx context.Context, projectID string, in PhaseInput) (*domain.Phase, error)
	Update(ctx context.Context, id string, patch PhasePatch) (*domain.Phase, error)
	Delete(ctx context.Context, id string) error
}

type TicketService interface {
	List(ctx context.Context, filter TicketFilter) []domain.Ticket
	GetByID(ctx context.Context, id string) *domain.Ticket
	Create(ctx context.Context, projectID string, in domain.TicketInput, createdBy string) (*domain.Ticket, error)
	Update(ctx context.Context, id string, patch TicketPatch) (*domain.Ticket, error)
	Delete(ctx context.Context, id string) error
}

// SendMessageInput is a chat message written from the back-office.
type SendMessageInput struct {
	ProjectID  string            `json:"project_id" validate:"required"`
	Content    string            `json:"content" validate:"required"`
	SenderRole domain.SenderRole `json:"sender_role"`
	SenderName string            `json:"sender_name"`
	PhotoURL   string            `json:"photo_url"`
}

type ChatService interface {
	Send(ctx context.Context, in SendMessageInput) (*domain.Message, error)
	Conversation(ctx context.Context, projectID string) []domain.Message
	Conversations(ctx context.Context) []domain.Conversation
	MarkAsRead(ctx context.Context, projectID string, reader domain.SenderRole) error
	UnreadCount(ctx context.Context, projectID string, reader domain.SenderRole) int
	TotalUnread(ctx context.Context) int
	Delete(ctx context.Context, id string) error
	DeleteConversation(ctx context.Context, projectID string) error
	// Subscribe replaces any open channel; projectID "*" follows every project.
	Subscribe(ctx context.Context, projectID string, fn func(domain.Message)) error
	Unsubscribe()
	// ReadTracking reports false once the schema was found to lack the read
	// column; unread counts are then always zero.
	ReadTracking() bool
}

// UploadInput describes a file to store.
type UploadInput struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

type DocumentService interface {
	ByProject(ctx context.Context, projectID string) []domain.Document
	Upload(ctx context.Context, projectID string, in UploadInput, visibleToClient bool, uploadedBy string) (*domain.Document, error)
	Delete(ctx context.Context, id string) error
	SignedURL(ctx context.Context, publicURL string, ttl time.Duration) (*domain.SignedURL, error)
}

type AdminEventService interface {
	GetAll(ctx context.Context) []domain.AdminEvent
	GetByID(ctx context.Context, id string) *domain.AdminEvent
	GetByDate(ctx context.Context, date string) []domain.AdminEvent
	Upcoming(ctx context.Context, limit int) []domain.AdminEvent
	Create(ctx context.Context, in domain.AdminEventInput, createdBy string) (*domain.AdminEvent, error)
	Update(ctx context.Context, id string, in domain.AdminEventInput) (*domain.AdminEvent, error)
	Remove(ctx context.Context, id string) error
	Subscribe(ctx context.Context, fn func(ChangeEvent, domain.AdminEvent)) (unsubscribe func(), err error)
}

// ClientProfileUpdate is what a client may change about themselves.
type ClientProfileUpdate struct {
	Name  string `json:"name" validate:"omitempty,max=120"`
	Phone string `json:"phone" validate:"omitempty,max=40"`
}

// ClientMessageInput is a chat message written from the client portal.
type ClientMessageInput struct {
	Content    string `json:"content" validate:"required"`
	SenderName string `json:"sender_name"`
	PhotoURL   string `json:"photo_url"`
}

// ClientPortalService serves the client track. Every call authenticates with
// the project id and PIN held by the tab's client session.
type ClientPortalService interface {
	Project(ctx context.Context) *domain.Project
	Timeline(ctx context.Context) []domain.Phase
	Documents(ctx context.Context) []domain.Document
	SignedDocumentURL(ctx context.Context, publicURL string, ttl time.Duration) (*domain.SignedURL, error)
	Messages(ctx context.Context) []domain.Message
	SendMessage(ctx context.Context, in ClientMessageInput) (*domain.Message, error)
	MarkAdminMessagesRead(ctx context.Context) error
	Tickets(ctx context.Context) []domain.Ticket
	CreateTicket(ctx context.Context, in domain.TicketInput) (*domain.Ticket, error)
	Profile(ctx context.Context) *domain.ClientProfile
	UpdateProfile(ctx context.Context, in ClientProfileUpdate) error
	UploadProfilePhoto(ctx context.Context, in UploadInput) (string, error)
	DashboardSummary(ctx context.Context) *domain.DashboardSummary
	SubscribeMessages(ctx context.Context, fn func(domain.Message)) error
	UnsubscribeMessages()
}
