package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
	"github.com/tde-services/project-portal/internal/pkg/validation"
)

// Procedures of the client track. Each takes p_id and p_pin.
const (
	rpcProjectDetails    = "get_project_details_for_client"
	rpcClientTimeline    = "get_client_timeline"
	rpcClientImages      = "get_client_project_images"
	rpcClientDocuments   = "get_client_documents"
	rpcClientMessages    = "get_client_messages"
	rpcSendClientMessage = "send_client_message"
	rpcMarkClientRead    = "mark_client_messages_read"
	rpcClientTickets     = "get_client_tickets"
	rpcCreateClientTkt   = "create_client_ticket"
	rpcClientProfile     = "get_client_profile"
	rpcUpdateClientProf  = "update_client_profile"
	rpcUpdateClientPhoto = "update_client_profile_photo"
)

const clientSignedURLTTL = 5 * time.Minute

var errNoEmbeddedPhases = errors.New("project details carry no phases")

// ClientPortalRepos are the tables the client track falls back to when a
// procedure is missing.
type ClientPortalRepos struct {
	Projects  ports.ProjectRepository
	Phases    ports.PhaseRepository
	Documents ports.DocumentRepository
	Messages  ports.MessageRepository
	Tickets   ports.TicketRepository
}

type clientPortalService struct {
	auth    ports.ClientAuthService
	rpc     ports.ProcedureCaller
	repos   ClientPortalRepos
	storage ports.ObjectStorage
	rt      ports.Realtime
	now     func() time.Time
	log     zerolog.Logger

	mu  sync.Mutex
	sub ports.Subscription
}

// NewClientPortalService returns the data side of the client track of one
// tab. Every call is authenticated by the project id and PIN of auth.
func NewClientPortalService(
	auth ports.ClientAuthService,
	rpc ports.ProcedureCaller,
	repos ClientPortalRepos,
	storage ports.ObjectStorage,
	rt ports.Realtime,
	now func() time.Time,
	log zerolog.Logger,
) ports.ClientPortalService {
	if now == nil {
		now = time.Now
	}
	return &clientPortalService{
		auth:    auth,
		rpc:     rpc,
		repos:   repos,
		storage: storage,
		rt:      rt,
		now:     now,
		log:     log.With().Str("component", "client_portal").Logger(),
	}
}

type clientCreds struct {
	projectID string
	pin       string
}

func (c clientCreds) args() map[string]any {
	return map[string]any{"p_id": c.projectID, "p_pin": c.pin}
}

func (c clientCreds) with(extra map[string]any) map[string]any {
	out := c.args()
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func (s *clientPortalService) creds(ctx context.Context) (clientCreds, bool) {
	c := clientCreds{projectID: s.auth.ProjectID(ctx), pin: s.auth.PIN(ctx)}
	return c, c.projectID != "" && c.pin != ""
}

// callList runs a procedure returning a JSON array. NULL reads as empty.
func callList[T any](ctx context.Context, rpc ports.ProcedureCaller, fn string, args map[string]any) ([]T, error) {
	var out []T
	if err := rpc.Call(ctx, fn, args, &out); err != nil {
		if errors.Is(err, ports.ErrEmptyResult) {
			return []T{}, nil
		}
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func emptyIfNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}

// ---------------------------------------------------------------------------
// Project and timeline
// ---------------------------------------------------------------------------

func (s *clientPortalService) Project(ctx context.Context) *domain.Project {
	c, ok := s.creds(ctx)
	if !ok {
		return nil
	}
	p, err := s.project(ctx, c)
	if err != nil {
		s.log.Error().Err(err).Str("project_id", c.projectID).Msg("load client project failed")
		return nil
	}
	return p
}

func (s *clientPortalService) project(ctx context.Context, c clientCreds) (*domain.Project, error) {
	return firstOf(ctx, s.log, "client.project", onMissingFunction,
		strategy[*domain.Project]{name: rpcProjectDetails, run: func(ctx context.Context) (*domain.Project, error) {
			var p domain.Project
			if err := s.rpc.Call(ctx, rpcProjectDetails, c.args(), &p); err != nil {
				return nil, err
			}
			return &p, nil
		}},
		strategy[*domain.Project]{name: "projects", run: func(ctx context.Context) (*domain.Project, error) {
			p, err := s.repos.Projects.GetByID(ctx, c.projectID)
			if err != nil {
				return nil, err
			}
			if !pinMatches(p, c.pin) {
				return nil, domain.ErrInvalidCredentials
			}
			return p, nil
		}},
	)
}

// Timeline tries the timeline procedure, then the phases embedded in the
// project details, then the phases and images tables.
func (s *clientPortalService) Timeline(ctx context.Context) []domain.Phase {
	c, ok := s.creds(ctx)
	if !ok {
		return []domain.Phase{}
	}
	phases, err := firstOf(ctx, s.log, "client.timeline", onAnyError,
		strategy[[]domain.Phase]{name: rpcClientTimeline, run: func(ctx context.Context) ([]domain.Phase, error) {
			phases, err := callList[domain.Phase](ctx, s.rpc, rpcClientTimeline, c.args())
			if err != nil {
				return nil, err
			}
			return s.attachImages(ctx, c, phases), nil
		}},
		strategy[[]domain.Phase]{name: "embedded_phases", run: func(ctx context.Context) ([]domain.Phase, error) {
			var p domain.Project
			if err := s.rpc.Call(ctx, rpcProjectDetails, c.args(), &p); err != nil {
				return nil, err
			}
			if len(p.Phases) == 0 {
				return nil, errNoEmbeddedPhases
			}
			return s.attachImages(ctx, c, p.Phases), nil
		}},
		strategy[[]domain.Phase]{name: "phases", run: func(ctx context.Context) ([]domain.Phase, error) {
			phases, err := s.repos.Phases.ListByProject(ctx, c.projectID)
			if err != nil {
				return nil, err
			}
			images, err := s.repos.Phases.ListImages(ctx, c.projectID)
			if err != nil {
				s.log.Warn().Err(err).Msg("project images query failed")
				return emptyIfNil(phases), nil
			}
			return domain.MergeImagesIntoPhases(phases, images), nil
		}},
	)
	if err != nil {
		s.log.Error().Err(err).Str("project_id", c.projectID).Msg("load client timeline failed")
		return []domain.Phase{}
	}
	return phases
}

func (s *clientPortalService) attachImages(ctx context.Context, c clientCreds, phases []domain.Phase) []domain.Phase {
	images, err := firstOf(ctx, s.log, "client.images", onMissingFunction,
		strategy[[]domain.ProjectImage]{name: rpcClientImages, run: func(ctx context.Context) ([]domain.ProjectImage, error) {
			return callList[domain.ProjectImage](ctx, s.rpc, rpcClientImages, c.args())
		}},
		strategy[[]domain.ProjectImage]{name: "project_images", run: func(ctx context.Context) ([]domain.ProjectImage, error) {
			return s.repos.Phases.ListImages(ctx, c.projectID)
		}},
	)
	if err != nil {
		s.log.Warn().Err(err).Msg("project images unavailable")
		return emptyIfNil(phases)
	}
	return domain.MergeImagesIntoPhases(phases, images)
}

// ---------------------------------------------------------------------------
// Documents
// ---------------------------------------------------------------------------

func (s *clientPortalService) Documents(ctx context.Context) []domain.Document {
	c, ok := s.creds(ctx)
	if !ok {
		return []domain.Document{}
	}
	docs, err := firstOf(ctx, s.log, "client.documents", onMissingFunction,
		strategy[[]domain.Document]{name: rpcClientDocuments, run: func(ctx context.Context) ([]domain.Document, error) {
			return callList[domain.Document](ctx, s.rpc, rpcClientDocuments, c.args())
		}},
		strategy[[]domain.Document]{name: "documents", run: func(ctx context.Context) ([]domain.Document, error) {
			docs, err := s.repos.Documents.ListByProject(ctx, c.projectID, true)
			return emptyIfNil(docs), err
		}},
	)
	if err != nil {
		s.log.Error().Err(err).Str("project_id", c.projectID).Msg("load client documents failed")
		return []domain.Document{}
	}
	return docs
}

// SignedDocumentURL signs a document of the session's project only.
func (s *clientPortalService) SignedDocumentURL(ctx context.Context, publicURL string, ttl time.Duration) (*domain.SignedURL, error) {
	c, ok := s.creds(ctx)
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}
	_, objectPath, parsed := ParsePublicObjectURL(publicURL)
	if !parsed {
		return nil, domain.NewValidationError("url", "is not a stored object URL")
	}
	if !strings.HasPrefix(objectPath, c.projectID+"/") {
		return nil, domain.ErrAccessDenied
	}
	if ttl <= 0 {
		ttl = clientSignedURLTTL
	}
	return signObject(ctx, s.storage, s.now, s.log, publicURL, ttl)
}

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

func (s *clientPortalService) Messages(ctx context.Context) []domain.Message {
	c, ok := s.creds(ctx)
	if !ok {
		return []domain.Message{}
	}
	msgs, err := firstOf(ctx, s.log, "client.messages", onMissingFunction,
		strategy[[]domain.Message]{name: rpcClientMessages, run: func(ctx context.Context) ([]domain.Message, error) {
			return callList[domain.Message](ctx, s.rpc, rpcClientMessages, c.args())
		}},
		strategy[[]domain.Message]{name: "messages", run: func(ctx context.Context) ([]domain.Message, error) {
			msgs, err := s.repos.Messages.ListByProject(ctx, c.projectID, false)
			return emptyIfNil(msgs), err
		}},
	)
	if err != nil {
		s.log.Error().Err(err).Str("project_id", c.projectID).Msg("load client messages failed")
		return []domain.Message{}
	}
	return msgs
}

func (s *clientPortalService) SendMessage(ctx context.Context, in ports.ClientMessageInput) (*domain.Message, error) {
	c, ok := s.creds(ctx)
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	content := strings.TrimSpace(in.Content)
	name := strings.TrimSpace(in.SenderName)
	if name == "" {
		name = defaultClientSender
	}
	var photo *string
	if u := strings.TrimSpace(in.PhotoURL); u != "" {
		photo = &u
	}

	msg, err := firstOf(ctx, s.log, "client.send_message", onMissingFunction,
		strategy[*domain.Message]{name: rpcSendClientMessage, run: func(ctx context.Context) (*domain.Message, error) {
			var m domain.Message
			err := s.rpc.Call(ctx, rpcSendClientMessage, c.with(map[string]any{
				"p_content":     content,
				"p_sender_name": name,
				"p_photo_url":   photo,
			}), &m)
			if err != nil && !errors.Is(err, ports.ErrEmptyResult) {
				return nil, err
			}
			return &m, nil
		}},
		strategy[*domain.Message]{name: "messages", run: func(ctx context.Context) (*domain.Message, error) {
			unread := false
			m := &domain.Message{
				ProjectID:  c.projectID,
				SenderRole: domain.SenderClient,
				SenderName: name,
				Content:    content,
				PhotoURL:   photo,
				Read:       &unread,
			}
			created, err := s.repos.Messages.Create(ctx, m)
			if errors.Is(err, ports.ErrColumnMissing) {
				m.Read = nil
				created, err = s.repos.Messages.Create(ctx, m)
			}
			return created, err
		}},
	)
	if err != nil {
		return nil, fmt.Errorf("send client message: %w", err)
	}
	return msg, nil
}

func (s *clientPortalService) MarkAdminMessagesRead(ctx context.Context) error {
	c, ok := s.creds(ctx)
	if !ok {
		return domain.ErrNotAuthenticated
	}
	_, err := firstOf(ctx, s.log, "client.mark_read", onMissingFunction,
		strategy[struct{}]{name: rpcMarkClientRead, run: func(ctx context.Context) (struct{}, error) {
			err := s.rpc.Call(ctx, rpcMarkClientRead, c.args(), nil)
			if errors.Is(err, ports.ErrEmptyResult) {
				err = nil
			}
			return struct{}{}, err
		}},
		strategy[struct{}]{name: "messages", run: func(ctx context.Context) (struct{}, error) {
			err := s.repos.Messages.MarkRead(ctx, c.projectID, domain.SenderAdmin)
			if errors.Is(err, ports.ErrColumnMissing) {
				err = nil
			}
			return struct{}{}, err
		}},
	)
	if err != nil {
		return fmt.Errorf("mark admin messages read: %w", err)
	}
	return nil
}

// SubscribeMessages follows new messages of the session's project,
// replacing any open subscription.
func (s *clientPortalService) SubscribeMessages(ctx context.Context, fn func(domain.Message)) error {
	c, ok := s.creds(ctx)
	if !ok {
		return domain.ErrNotAuthenticated
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub != nil {
		s.sub.Unsubscribe()
		s.sub = nil
	}
	filter := ports.ChangeFilter{Table: tableMessages, Event: ports.ChangeInsert, Column: "project_id", Value: c.projectID}
	sub, err := s.rt.Subscribe(ctx, filter, func(ch ports.Change) {
		var m domain.Message
		if err := json.Unmarshal(ch.New, &m); err != nil {
			s.log.Warn().Err(err).Msg("undecodable message change dropped")
			return
		}
		fn(m)
	})
	if err != nil {
		return fmt.Errorf("subscribe client messages: %w", err)
	}
	s.sub = sub
	return nil
}

func (s *clientPortalService) UnsubscribeMessages() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub != nil {
		s.sub.Unsubscribe()
		s.sub = nil
	}
}

// ---------------------------------------------------------------------------
// Tickets
// ---------------------------------------------------------------------------

func (s *clientPortalService) Tickets(ctx context.Context) []domain.Ticket {
	c, ok := s.creds(ctx)
	if !ok {
		return []domain.Ticket{}
	}
	tickets, err := firstOf(ctx, s.log, "client.tickets", onMissingFunction,
		strategy[[]domain.Ticket]{name: rpcClientTickets, run: func(ctx context.Context) ([]domain.Ticket, error) {
			return callList[domain.Ticket](ctx, s.rpc, rpcClientTickets, c.args())
		}},
		strategy[[]domain.Ticket]{name: "tickets", run: func(ctx context.Context) ([]domain.Ticket, error) {
			tickets, err := s.repos.Tickets.List(ctx, ports.TicketFilter{ProjectID: c.projectID})
			return emptyIfNil(tickets), err
		}},
	)
	if err != nil {
		s.log.Error().Err(err).Str("project_id", c.projectID).Msg("load client tickets failed")
		return []domain.Ticket{}
	}
	return tickets
}

func (s *clientPortalService) CreateTicket(ctx context.Context, in domain.TicketInput) (*domain.Ticket, error) {
	c, ok := s.creds(ctx)
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}
	t := in.Normalize(c.projectID)

	created, err := firstOf(ctx, s.log, "client.create_ticket", onMissingFunction,
		strategy[*domain.Ticket]{name: rpcCreateClientTkt, run: func(ctx context.Context) (*domain.Ticket, error) {
			var out domain.Ticket
			err := s.rpc.Call(ctx, rpcCreateClientTkt, c.with(map[string]any{
				"p_title":       t.Title,
				"p_description": t.Description,
				"p_priority":    string(t.Priority),
				"p_tags":        t.Tags,
			}), &out)
			if err != nil && !errors.Is(err, ports.ErrEmptyResult) {
				return nil, err
			}
			if out.ID == "" {
				out = t
			}
			return &out, nil
		}},
		strategy[*domain.Ticket]{name: "tickets", run: func(ctx context.Context) (*domain.Ticket, error) {
			return s.repos.Tickets.Create(ctx, &t)
		}},
	)
	if err != nil {
		return nil, fmt.Errorf("create client ticket: %w", err)
	}
	return created, nil
}

// ---------------------------------------------------------------------------
// Profile
// ---------------------------------------------------------------------------

func (s *clientPortalService) Profile(ctx context.Context) *domain.ClientProfile {
	c, ok := s.creds(ctx)
	if !ok {
		return nil
	}
	prof, err := firstOf(ctx, s.log, "client.profile", onMissingFunction,
		strategy[*domain.ClientProfile]{name: rpcClientProfile, run: func(ctx context.Context) (*domain.ClientProfile, error) {
			var p domain.ClientProfile
			if err := s.rpc.Call(ctx, rpcClientProfile, c.args(), &p); err != nil {
				return nil, err
			}
			if p.ProjectID == "" {
				p.ProjectID = c.projectID
			}
			return &p, nil
		}},
		strategy[*domain.ClientProfile]{name: "projects", run: func(ctx context.Context) (*domain.ClientProfile, error) {
			p, err := s.repos.Projects.GetByID(ctx, c.projectID)
			if err != nil {
				return nil, err
			}
			name := p.ClientName
			if name == "" {
				name = defaultClientSender
			}
			return &domain.ClientProfile{ProjectID: p.ID, Name: name, Email: p.ClientEmail, Phone: p.ClientPhone}, nil
		}},
	)
	if err != nil {
		s.log.Error().Err(err).Str("project_id", c.projectID).Msg("load client profile failed")
		return nil
	}
	return prof
}

func (s *clientPortalService) UpdateProfile(ctx context.Context, in ports.ClientProfileUpdate) error {
	c, ok := s.creds(ctx)
	if !ok {
		return domain.ErrNotAuthenticated
	}
	if err := validation.Struct(in); err != nil {
		return err
	}
	name, phone := strings.TrimSpace(in.Name), strings.TrimSpace(in.Phone)

	_, err := firstOf(ctx, s.log, "client.update_profile", onMissingFunction,
		strategy[struct{}]{name: rpcUpdateClientProf, run: func(ctx context.Context) (struct{}, error) {
			err := s.rpc.Call(ctx, rpcUpdateClientProf, c.with(map[string]any{
				"p_name":    nilIfEmpty(name),
				"p_email":   nil,
				"p_phone":   nilIfEmpty(phone),
				"p_company": nil,
			}), nil)
			if errors.Is(err, ports.ErrEmptyResult) {
				err = nil
			}
			return struct{}{}, err
		}},
		strategy[struct{}]{name: "projects", run: func(ctx context.Context) (struct{}, error) {
			patch := ports.ProjectPatch{}
			if name != "" {
				patch.ClientName = &name
			}
			if phone != "" {
				patch.ClientPhone = &phone
			}
			_, err := s.repos.Projects.Update(ctx, c.projectID, patch)
			return struct{}{}, err
		}},
	)
	if err != nil {
		return fmt.Errorf("update client profile: %w", err)
	}
	return nil
}

// UploadProfilePhoto stores an image of at most 5 MB and returns its public
// URL.
func (s *clientPortalService) UploadProfilePhoto(ctx context.Context, in ports.UploadInput) (string, error) {
	c, ok := s.creds(ctx)
	if !ok {
		return "", domain.ErrNotAuthenticated
	}
	if in.Body == nil || !strings.HasPrefix(in.ContentType, "image/") {
		return "", domain.NewValidationError("file", "must be an image")
	}
	if in.Size > domain.MaxProfilePhotoBytes {
		return "", domain.NewValidationError("file", "must be at most 5MB")
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(in.Name), "."))
	if ext == "" {
		ext = "jpg"
	}
	objectPath := fmt.Sprintf("%s/%d.%s", c.projectID, s.now().UnixMilli(), ext)
	if err := s.storage.Upload(ctx, domain.BucketProfilePhotos, objectPath, in.Body, in.ContentType); err != nil {
		return "", fmt.Errorf("upload profile photo: %w", err)
	}
	publicURL := s.storage.PublicURL(domain.BucketProfilePhotos, objectPath)

	err := s.rpc.Call(ctx, rpcUpdateClientPhoto, c.with(map[string]any{"p_photo_url": publicURL}), nil)
	switch {
	case err == nil, errors.Is(err, ports.ErrEmptyResult):
	case errors.Is(err, ports.ErrFunctionMissing):
		s.log.Warn().Msg("update_client_profile_photo missing, photo stored without profile link")
	default:
		return "", fmt.Errorf("upload profile photo: %w", err)
	}
	return publicURL, nil
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// ---------------------------------------------------------------------------
// Dashboard
// ---------------------------------------------------------------------------

// DashboardSummary fetches project, timeline, documents and tickets in
// parallel.
func (s *clientPortalService) DashboardSummary(ctx context.Context) *domain.DashboardSummary {
	if _, ok := s.creds(ctx); !ok {
		return nil
	}
	var (
		project *domain.Project
		phases  []domain.Phase
		docs    []domain.Document
		tickets []domain.Ticket
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { project = s.Project(gctx); return nil })
	g.Go(func() error { phases = s.Timeline(gctx); return nil })
	g.Go(func() error { docs = s.Documents(gctx); return nil })
	g.Go(func() error { tickets = s.Tickets(gctx); return nil })
	_ = g.Wait()

	summary := domain.NewDashboardSummary(project, phases, docs, tickets)
	return &summary
}
