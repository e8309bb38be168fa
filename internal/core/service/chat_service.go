package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
	"github.com/tde-services/project-portal/internal/pkg/metrics"
	"github.com/tde-services/project-portal/internal/pkg/validation"
)

const (
	tableMessages       = "messages"
	allProjects         = "*"
	conversationFanout  = 8
	defaultAdminSender  = "Admin"
	defaultClientSender = "Client"
)

type chatService struct {
	messages ports.MessageRepository
	projects ports.ProjectRepository
	rt       ports.Realtime
	log      zerolog.Logger

	readTracking atomic.Bool
	warnOnce     sync.Once

	mu  sync.Mutex
	sub ports.Subscription
}

// NewChatService returns the chat of one tab. It holds at most one realtime
// subscription at a time.
func NewChatService(messages ports.MessageRepository, projects ports.ProjectRepository, rt ports.Realtime, log zerolog.Logger) ports.ChatService {
	s := &chatService{
		messages: messages,
		projects: projects,
		rt:       rt,
		log:      log.With().Str("component", "chat").Logger(),
	}
	s.readTracking.Store(true)
	return s
}

func (s *chatService) ReadTracking() bool { return s.readTracking.Load() }

// disableReadTracking is called once the schema turned out to lack the read
// column.
func (s *chatService) disableReadTracking(err error) {
	s.readTracking.Store(false)
	s.warnOnce.Do(func() {
		metrics.ReadTrackingDisabled.Set(1)
		s.log.Warn().Err(err).Msg("messages.read column missing, unread counts disabled")
	})
}

func (s *chatService) Send(ctx context.Context, in ports.SendMessageInput) (*domain.Message, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	role := in.SenderRole
	if role == "" {
		role = domain.SenderAdmin
	}
	name := strings.TrimSpace(in.SenderName)
	if name == "" {
		name = defaultAdminSender
		if role == domain.SenderClient {
			name = defaultClientSender
		}
	}
	m := &domain.Message{
		ProjectID:  in.ProjectID,
		SenderRole: role,
		SenderName: name,
		Content:    strings.TrimSpace(in.Content),
	}
	if url := strings.TrimSpace(in.PhotoURL); url != "" {
		m.PhotoURL = &url
	}
	if s.ReadTracking() {
		unread := false
		m.Read = &unread
	}

	created, err := s.messages.Create(ctx, m)
	if errors.Is(err, ports.ErrColumnMissing) && m.Read != nil {
		s.disableReadTracking(err)
		m.Read = nil
		created, err = s.messages.Create(ctx, m)
	}
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	return created, nil
}

// Conversation returns the messages of a project, oldest first.
func (s *chatService) Conversation(ctx context.Context, projectID string) []domain.Message {
	msgs, err := s.messages.ListByProject(ctx, projectID, false)
	if err != nil {
		s.log.Error().Err(err).Str("project_id", projectID).Msg("load conversation failed")
		return []domain.Message{}
	}
	return msgs
}

// Conversations summarizes every project that has messages, most recent
// first.
func (s *chatService) Conversations(ctx context.Context) []domain.Conversation {
	projects, err := s.projects.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list projects for conversations failed")
		return []domain.Conversation{}
	}

	slots := make([]*domain.Conversation, len(projects))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(conversationFanout)
	for i := range projects {
		g.Go(func() error {
			msgs, err := s.messages.ListByProject(gctx, projects[i].ID, true)
			if err != nil {
				s.log.Warn().Err(err).Str("project_id", projects[i].ID).Msg("load conversation failed")
				return nil
			}
			if conv, ok := domain.BuildConversation(projects[i], msgs); ok {
				slots[i] = &conv
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]domain.Conversation, 0, len(slots))
	for _, c := range slots {
		if c != nil {
			out = append(out, *c)
		}
	}
	domain.SortConversations(out)
	return out
}

// MarkAsRead flags the other side's messages as read by reader.
func (s *chatService) MarkAsRead(ctx context.Context, projectID string, reader domain.SenderRole) error {
	if !s.ReadTracking() {
		return nil
	}
	err := s.messages.MarkRead(ctx, projectID, otherSide(reader))
	if errors.Is(err, ports.ErrColumnMissing) {
		s.disableReadTracking(err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("mark messages read: %w", err)
	}
	return nil
}

// UnreadCount counts the messages reader has not read yet. It is always
// zero without read tracking.
func (s *chatService) UnreadCount(ctx context.Context, projectID string, reader domain.SenderRole) int {
	if !s.ReadTracking() {
		return 0
	}
	n, err := s.messages.CountUnread(ctx, projectID, otherSide(reader))
	if errors.Is(err, ports.ErrColumnMissing) {
		s.disableReadTracking(err)
		return 0
	}
	if err != nil {
		s.log.Warn().Err(err).Str("project_id", projectID).Msg("count unread failed")
		return 0
	}
	return n
}

// TotalUnread counts client messages unread by the back-office across all
// projects.
func (s *chatService) TotalUnread(ctx context.Context) int {
	return s.UnreadCount(ctx, "", domain.SenderAdmin)
}

func (s *chatService) Delete(ctx context.Context, id string) error {
	if err := s.messages.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

func (s *chatService) DeleteConversation(ctx context.Context, projectID string) error {
	if err := s.messages.DeleteByProject(ctx, projectID); err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}
	return nil
}

// Subscribe follows new messages of projectID, or of every project for "*".
// An open subscription is closed first.
func (s *chatService) Subscribe(ctx context.Context, projectID string, fn func(domain.Message)) error {
	filter := ports.ChangeFilter{Table: tableMessages, Event: ports.ChangeInsert}
	if projectID != allProjects {
		filter.Column, filter.Value = "project_id", projectID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub != nil {
		s.sub.Unsubscribe()
		s.sub = nil
	}
	sub, err := s.rt.Subscribe(ctx, filter, func(ch ports.Change) {
		var m domain.Message
		if err := json.Unmarshal(ch.New, &m); err != nil {
			s.log.Warn().Err(err).Msg("undecodable message change dropped")
			return
		}
		fn(m)
	})
	if err != nil {
		return fmt.Errorf("subscribe messages: %w", err)
	}
	s.sub = sub
	return nil
}

func (s *chatService) Unsubscribe() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub != nil {
		s.sub.Unsubscribe()
		s.sub = nil
	}
}

func otherSide(r domain.SenderRole) domain.SenderRole {
	if r == domain.SenderClient {
		return domain.SenderAdmin
	}
	return domain.SenderClient
}
