package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
)

type stubClientAuth struct {
	projectID string
	pin       string
}

func (s *stubClientAuth) LoginClient(context.Context, string, string) (*domain.Project, error) {
	return nil, errors.New("not used")
}
func (s *stubClientAuth) IsClient(context.Context) bool { return s.projectID != "" }
func (s *stubClientAuth) RequireClient(context.Context, string) ports.GuardDecision {
	return ports.GuardDecision{Allowed: s.projectID != ""}
}
func (s *stubClientAuth) ProjectID(context.Context) string                   { return s.projectID }
func (s *stubClientAuth) PIN(context.Context) string                         { return s.pin }
func (s *stubClientAuth) SessionTimeRemaining(context.Context) time.Duration { return time.Hour }
func (s *stubClientAuth) Logout(context.Context)                             { s.projectID, s.pin = "", "" }

type portalFixture struct {
	rpc      *stubRPC
	projects *stubProjects
	phases   *stubPhases
	docs     *stubDocuments
	msgs     *stubMessages
	tickets  *stubTickets
	storage  *stubStorage
	rt       *stubRealtime
	auth     *stubClientAuth
	svc      ports.ClientPortalService
}

func newPortalFixture() *portalFixture {
	f := &portalFixture{
		rpc:      newStubRPC(),
		projects: newStubProjects(),
		phases:   &stubPhases{},
		docs:     &stubDocuments{},
		msgs:     &stubMessages{},
		tickets:  &stubTickets{},
		storage:  newStubStorage(),
		rt:       newStubRealtime(),
		auth:     &stubClientAuth{projectID: "p1", pin: "482913"},
	}
	f.projects.put(domain.Project{ID: "p1", Name: "Villa", ClientName: "Mme Roy", PIN: "482913"})
	f.svc = NewClientPortalService(f.auth, f.rpc, ClientPortalRepos{
		Projects:  f.projects,
		Phases:    f.phases,
		Documents: f.docs,
		Messages:  f.msgs,
		Tickets:   f.tickets,
	}, f.storage, f.rt, newFakeClock().Now, zerolog.Nop())
	return f
}

func strPtr(s string) *string { return &s }

func TestPortal_TimelineFromProcedureWithImages(t *testing.T) {
	f := newPortalFixture()
	f.rpc.on(rpcClientTimeline, func(args map[string]any) (any, error) {
		assert.Equal(t, "p1", args["p_id"])
		assert.Equal(t, "482913", args["p_pin"])
		return []domain.Phase{{ID: "ph1", Name: "Gros oeuvre"}, {ID: "ph2", Name: "Finitions"}}, nil
	})
	f.rpc.on(rpcClientImages, func(map[string]any) (any, error) {
		return []domain.ProjectImage{
			{ID: "i1", PhaseID: strPtr("ph1"), URL: "https://img/1"},
			{ID: "i2", PhaseName: strPtr("finitions"), URL: "https://img/2"},
		}, nil
	})

	phases := f.svc.Timeline(context.Background())
	require.Len(t, phases, 2)
	assert.Len(t, phases[0].Photos, 1)
	assert.Len(t, phases[1].Photos, 1)
}

func TestPortal_TimelineFallsBackToTables(t *testing.T) {
	f := newPortalFixture()
	f.rpc.on(rpcClientTimeline, func(map[string]any) (any, error) { return nil, errBoom })
	f.phases.phases = []domain.Phase{{ID: "ph1", ProjectID: "p1", Name: "Terrassement"}}
	f.phases.images = []domain.ProjectImage{{ID: "i1", ProjectID: "p1", PhaseID: strPtr("ph1"), URL: "https://img/1"}}

	phases := f.svc.Timeline(context.Background())
	require.Len(t, phases, 1)
	assert.Equal(t, "Terrassement", phases[0].Name)
	assert.Len(t, phases[0].Photos, 1)
}

func TestPortal_TimelineUsesEmbeddedPhases(t *testing.T) {
	f := newPortalFixture()
	f.rpc.on(rpcProjectDetails, func(map[string]any) (any, error) {
		return domain.Project{ID: "p1", Phases: []domain.Phase{{ID: "ph9", Name: "Toiture"}}}, nil
	})

	phases := f.svc.Timeline(context.Background())
	require.Len(t, phases, 1)
	assert.Equal(t, "ph9", phases[0].ID)
}

func TestPortal_ProjectFallbackChecksPIN(t *testing.T) {
	f := newPortalFixture()
	p := f.svc.Project(context.Background())
	require.NotNil(t, p)
	assert.Equal(t, "Villa", p.Name)

	f.auth.pin = "000001"
	assert.Nil(t, f.svc.Project(context.Background()))
}

func TestPortal_RequiresSession(t *testing.T) {
	f := newPortalFixture()
	f.auth.Logout(context.Background())
	ctx := context.Background()

	assert.Nil(t, f.svc.Project(ctx))
	assert.Empty(t, f.svc.Documents(ctx))
	assert.Nil(t, f.svc.DashboardSummary(ctx))
	_, err := f.svc.SendMessage(ctx, ports.ClientMessageInput{Content: "hi"})
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.Zero(t, f.rpc.callCount())
}

func TestPortal_SignedDocumentURLScopedToProject(t *testing.T) {
	f := newPortalFixture()
	f.storage.objects[domain.BucketProjectDocuments+"/p1/plan.pdf"] = "application/pdf"
	f.storage.objects[domain.BucketProjectDocuments+"/p2/plan.pdf"] = "application/pdf"
	ctx := context.Background()

	signed, err := f.svc.SignedDocumentURL(ctx, f.storage.PublicURL(domain.BucketProjectDocuments, "p1/plan.pdf"), 0)
	require.NoError(t, err)
	assert.Equal(t, newFakeClock().Now().Add(5*time.Minute), signed.ExpiresAt)

	_, err = f.svc.SignedDocumentURL(ctx, f.storage.PublicURL(domain.BucketProjectDocuments, "p2/plan.pdf"), 0)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestPortal_SendMessageFallsBackToTable(t *testing.T) {
	f := newPortalFixture()

	m, err := f.svc.SendMessage(context.Background(), ports.ClientMessageInput{Content: "  Merci  "})
	require.NoError(t, err)
	assert.Equal(t, "Merci", m.Content)
	assert.Equal(t, "Client", m.SenderName)
	assert.Equal(t, domain.SenderClient, m.SenderRole)
	assert.Equal(t, 1, f.msgs.creates)
}

func TestPortal_CreateTicketThroughProcedure(t *testing.T) {
	f := newPortalFixture()
	f.rpc.on(rpcCreateClientTkt, func(args map[string]any) (any, error) {
		assert.Equal(t, "Fuite", args["p_title"])
		return nil, nil
	})

	tk, err := f.svc.CreateTicket(context.Background(), domain.TicketInput{Subject: "Fuite", Message: "Salle de bain"})
	require.NoError(t, err)
	assert.Equal(t, "Fuite", tk.Title)
	assert.Empty(t, f.tickets.rows, "table fallback must not run")
}

func TestPortal_UploadProfilePhoto(t *testing.T) {
	f := newPortalFixture()
	ctx := context.Background()

	_, err := f.svc.UploadProfilePhoto(ctx, ports.UploadInput{Name: "cv.pdf", ContentType: "application/pdf", Body: strings.NewReader("x")})
	assert.True(t, domain.IsValidation(err))

	_, err = f.svc.UploadProfilePhoto(ctx, ports.UploadInput{Name: "a.png", ContentType: "image/png", Size: domain.MaxProfilePhotoBytes + 1, Body: strings.NewReader("x")})
	assert.True(t, domain.IsValidation(err))

	url, err := f.svc.UploadProfilePhoto(ctx, ports.UploadInput{Name: "Moi.PNG", ContentType: "image/png", Size: 3, Body: strings.NewReader("png")})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".png"))
	assert.Contains(t, url, "/"+domain.BucketProfilePhotos+"/p1/")
}

func TestPortal_UpdateProfileFallsBackToProject(t *testing.T) {
	f := newPortalFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.UpdateProfile(ctx, ports.ClientProfileUpdate{Name: "Julie Roy", Phone: "0600000000"}))
	prof := f.svc.Profile(ctx)
	require.NotNil(t, prof)
	assert.Equal(t, "Julie Roy", prof.Name)
	assert.Equal(t, "0600000000", prof.Phone)
}

func TestPortal_DashboardSummary(t *testing.T) {
	f := newPortalFixture()
	f.phases.phases = []domain.Phase{
		{ID: "a", ProjectID: "p1", Name: "A", Status: domain.PhaseCompleted},
		{ID: "b", ProjectID: "p1", Name: "B", Status: domain.PhaseInProgress},
	}
	f.docs.rows = []domain.Document{
		{ID: "d1", ProjectID: "p1", IsPublic: true},
		{ID: "d2", ProjectID: "p1", IsPublic: false},
	}
	f.tickets.rows = []domain.Ticket{
		{ID: "t1", ProjectID: "p1", Status: domain.TicketOpen},
		{ID: "t2", ProjectID: "p1", Status: domain.TicketClosed},
		{ID: "t3", ProjectID: "p2", Status: domain.TicketOpen},
	}

	sum := f.svc.DashboardSummary(context.Background())
	require.NotNil(t, sum)
	require.NotNil(t, sum.Project)
	assert.Equal(t, domain.DashboardStats{PhasesCount: 2, CompletedPhases: 1, DocumentsCount: 1, OpenTickets: 1}, sum.Stats)
}
