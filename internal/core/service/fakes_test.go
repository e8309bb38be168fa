package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
)

// ---------------------------------------------------------------------------
// clock
// ---------------------------------------------------------------------------

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// ---------------------------------------------------------------------------
// key-value store
// ---------------------------------------------------------------------------

type memKV struct {
	mu   sync.Mutex
	data map[string]string
	err  error
}

func newMemKV() *memKV { return &memKV{data: map[string]string{}} }

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", false, m.err
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memKV) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

// ---------------------------------------------------------------------------
// identity
// ---------------------------------------------------------------------------

type stubIdentity struct {
	mu        sync.Mutex
	users     map[string]domain.User // email -> user
	passwords map[string]string
	session   *ports.AuthSession
	signIns   atomic.Int32
	signOuts  atomic.Int32
	// signInErrs are returned by successive SignInWithPassword calls.
	signInErrs []error
	delay      time.Duration
	listeners  []func(ports.AuthEvent, *ports.AuthSession)
}

func newStubIdentity() *stubIdentity {
	return &stubIdentity{users: map[string]domain.User{}, passwords: map[string]string{}}
}

func (s *stubIdentity) addUser(id, email, password string) domain.User {
	u := domain.User{ID: id, Email: email}
	s.users[email] = u
	s.passwords[email] = password
	return u
}

func (s *stubIdentity) SignInWithPassword(_ context.Context, email, password string) (*ports.AuthSession, error) {
	n := int(s.signIns.Add(1))
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.mu.Lock()
	if n <= len(s.signInErrs) && s.signInErrs[n-1] != nil {
		err := s.signInErrs[n-1]
		s.mu.Unlock()
		return nil, err
	}
	u, ok := s.users[email]
	if !ok || s.passwords[email] != password {
		s.mu.Unlock()
		return nil, domain.ErrInvalidCredentials
	}
	sess := &ports.AuthSession{AccessToken: "token-" + u.ID, User: u, ExpiresAt: time.Now().Add(time.Hour)}
	s.session = sess
	listeners := append([]func(ports.AuthEvent, *ports.AuthSession){}, s.listeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(ports.AuthSignedIn, sess)
	}
	return sess, nil
}

func (s *stubIdentity) Session(context.Context) (*ports.AuthSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session, nil
}

func (s *stubIdentity) SignOut(context.Context) error {
	s.signOuts.Add(1)
	s.mu.Lock()
	s.session = nil
	listeners := append([]func(ports.AuthEvent, *ports.AuthSession){}, s.listeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(ports.AuthSignedOut, nil)
	}
	return nil
}

func (s *stubIdentity) OnAuthStateChange(fn func(ports.AuthEvent, *ports.AuthSession)) func() {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
	return func() {}
}

type stubIdentityAdmin struct {
	users   []domain.User
	created []domain.User
}

func (s *stubIdentityAdmin) CreateUser(_ context.Context, email, _ string, metadata map[string]string) (*domain.User, error) {
	u := domain.User{ID: uuid.NewString(), Email: email, Metadata: metadata}
	s.users = append(s.users, u)
	s.created = append(s.created, u)
	return &u, nil
}

func (s *stubIdentityAdmin) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubIdentityAdmin) UpdatePassword(context.Context, string, string) error { return nil }

func (s *stubIdentityAdmin) ListUsers(context.Context) ([]domain.User, error) {
	return append([]domain.User(nil), s.users...), nil
}

// ---------------------------------------------------------------------------
// profiles
// ---------------------------------------------------------------------------

type stubProfiles struct {
	mu      sync.Mutex
	rows    map[string]domain.Profile
	getErr  error
	upserts int
}

func newStubProfiles() *stubProfiles { return &stubProfiles{rows: map[string]domain.Profile{}} }

func (s *stubProfiles) put(p domain.Profile) {
	s.mu.Lock()
	s.rows[p.ID] = p
	s.mu.Unlock()
}

func (s *stubProfiles) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	p, ok := s.rows[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return &p, nil
}

func (s *stubProfiles) GetByEmail(_ context.Context, email string) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.rows {
		if p.Email == email {
			p := p
			return &p, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (s *stubProfiles) Upsert(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserts++
	s.rows[p.ID] = *p
	out := *p
	return &out, nil
}

func (s *stubProfiles) Update(_ context.Context, id string, patch ports.ProfilePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.rows[id]
	if !ok {
		return domain.ErrProfileNotFound
	}
	if patch.Role != nil {
		p.Role = *patch.Role
	}
	if patch.FullName != nil {
		p.FullName = *patch.FullName
	}
	s.rows[id] = p
	return nil
}

// ---------------------------------------------------------------------------
// procedures
// ---------------------------------------------------------------------------

type rpcCall struct {
	Fn   string
	Args map[string]any
}

// stubRPC answers procedures from a table of handlers. Unknown procedures
// fail with ErrFunctionMissing.
type stubRPC struct {
	mu       sync.Mutex
	handlers map[string]func(args map[string]any) (any, error)
	calls    []rpcCall
}

func newStubRPC() *stubRPC {
	return &stubRPC{handlers: map[string]func(map[string]any) (any, error){}}
}

func (s *stubRPC) on(fn string, h func(args map[string]any) (any, error)) {
	s.handlers[fn] = h
}

func (s *stubRPC) Call(_ context.Context, fn string, args map[string]any, out any) error {
	s.mu.Lock()
	s.calls = append(s.calls, rpcCall{Fn: fn, Args: args})
	h, ok := s.handlers[fn]
	s.mu.Unlock()
	if !ok {
		return ports.ErrFunctionMissing
	}
	v, err := h(args)
	if err != nil {
		return err
	}
	if v == nil {
		return ports.ErrEmptyResult
	}
	if out == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (s *stubRPC) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// ---------------------------------------------------------------------------
// projects
// ---------------------------------------------------------------------------

type stubProjects struct {
	mu          sync.Mutex
	rows        map[string]domain.Project
	noLocation  bool
	createCalls int
	getCalls    int
	err         error
}

func newStubProjects() *stubProjects { return &stubProjects{rows: map[string]domain.Project{}} }

func (s *stubProjects) put(p domain.Project) {
	s.mu.Lock()
	s.rows[p.ID] = p
	s.mu.Unlock()
}

func (s *stubProjects) List(context.Context) ([]domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.Project, 0, len(s.rows))
	for _, p := range s.rows {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubProjects) GetByID(_ context.Context, id string) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.rows[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return &p, nil
}

func (s *stubProjects) FindByClientEmail(_ context.Context, email string, limit int) ([]domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Project
	for _, p := range s.rows {
		if strings.EqualFold(p.ClientEmail, email) {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *stubProjects) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createCalls++
	if s.noLocation && p.Location != nil {
		return nil, ports.ErrColumnMissing
	}
	out := *p
	out.ID = uuid.NewString()
	out.CreatedAt = time.Now().UTC()
	s.rows[out.ID] = out
	return &out, nil
}

func (s *stubProjects) Update(_ context.Context, id string, patch ports.ProjectPatch) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.rows[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.ClientName != nil {
		p.ClientName = *patch.ClientName
	}
	if patch.ClientPhone != nil {
		p.ClientPhone = *patch.ClientPhone
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Progress != nil {
		p.Progress = *patch.Progress
	}
	s.rows[id] = p
	return &p, nil
}

func (s *stubProjects) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(s.rows, id)
	return nil
}

// ---------------------------------------------------------------------------
// messages
// ---------------------------------------------------------------------------

type stubMessages struct {
	mu       sync.Mutex
	rows     []domain.Message
	noRead   bool
	creates  int
	markRead int
}

func (s *stubMessages) ListByProject(_ context.Context, projectID string, newestFirst bool) ([]domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Message
	for _, m := range s.rows {
		if m.ProjectID == projectID {
			if s.noRead {
				m.Read = nil
			}
			out = append(out, m)
		}
	}
	if newestFirst {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

func (s *stubMessages) Create(_ context.Context, m *domain.Message) (*domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	if s.noRead && m.Read != nil {
		return nil, ports.ErrColumnMissing
	}
	out := *m
	out.ID = uuid.NewString()
	out.CreatedAt = time.Now().UTC().Add(time.Duration(len(s.rows)) * time.Second)
	s.rows = append(s.rows, out)
	return &out, nil
}

func (s *stubMessages) MarkRead(_ context.Context, projectID string, from domain.SenderRole) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markRead++
	if s.noRead {
		return ports.ErrColumnMissing
	}
	read := true
	for i := range s.rows {
		if s.rows[i].ProjectID == projectID && s.rows[i].SenderRole == from {
			s.rows[i].Read = &read
		}
	}
	return nil
}

func (s *stubMessages) CountUnread(_ context.Context, projectID string, from domain.SenderRole) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.noRead {
		return 0, ports.ErrColumnMissing
	}
	n := 0
	for _, m := range s.rows {
		if (projectID == "" || m.ProjectID == projectID) && m.SenderRole == from && m.Read != nil && !*m.Read {
			n++
		}
	}
	return n, nil
}

func (s *stubMessages) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return ports.ErrNotFound
}

func (s *stubMessages) DeleteByProject(_ context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.rows[:0]
	for _, m := range s.rows {
		if m.ProjectID != projectID {
			kept = append(kept, m)
		}
	}
	s.rows = kept
	return nil
}

// ---------------------------------------------------------------------------
// phases, documents, tickets, events, activity
// ---------------------------------------------------------------------------

type stubPhases struct {
	phases  []domain.Phase
	images  []domain.ProjectImage
	err     error
	created []domain.Phase
}

func (s *stubPhases) ListByProject(_ context.Context, projectID string) ([]domain.Phase, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []domain.Phase
	for _, p := range s.phases {
		if p.ProjectID == projectID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubPhases) ListImages(_ context.Context, projectID string) ([]domain.ProjectImage, error) {
	var out []domain.ProjectImage
	for _, img := range s.images {
		if img.ProjectID == projectID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (s *stubPhases) Create(_ context.Context, ph *domain.Phase) (*domain.Phase, error) {
	out := *ph
	out.ID = uuid.NewString()
	s.phases = append(s.phases, out)
	s.created = append(s.created, out)
	return &out, nil
}

func (s *stubPhases) Update(_ context.Context, id string, _ ports.PhasePatch) (*domain.Phase, error) {
	for _, p := range s.phases {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (s *stubPhases) Delete(context.Context, string) error { return nil }

type stubDocuments struct {
	rows []domain.Document
}

func (s *stubDocuments) ListByProject(_ context.Context, projectID string, publicOnly bool) ([]domain.Document, error) {
	var out []domain.Document
	for _, d := range s.rows {
		if d.ProjectID == projectID && (!publicOnly || d.IsPublic) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *stubDocuments) GetByID(_ context.Context, id string) (*domain.Document, error) {
	for _, d := range s.rows {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (s *stubDocuments) Create(_ context.Context, d *domain.Document) (*domain.Document, error) {
	out := *d
	out.ID = uuid.NewString()
	s.rows = append(s.rows, out)
	return &out, nil
}

func (s *stubDocuments) Delete(_ context.Context, id string) error {
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return ports.ErrNotFound
}

type stubTickets struct {
	rows []domain.Ticket
}

func (s *stubTickets) List(_ context.Context, f ports.TicketFilter) ([]domain.Ticket, error) {
	var out []domain.Ticket
	for _, t := range s.rows {
		if (f.ProjectID == "" || t.ProjectID == f.ProjectID) && (f.Status == "" || t.Status == f.Status) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *stubTickets) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	for _, t := range s.rows {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, domain.ErrTicketNotFound
}

func (s *stubTickets) Create(_ context.Context, t *domain.Ticket) (*domain.Ticket, error) {
	out := *t
	out.ID = uuid.NewString()
	s.rows = append(s.rows, out)
	return &out, nil
}

func (s *stubTickets) Update(_ context.Context, id string, patch ports.TicketPatch) (*domain.Ticket, error) {
	for i := range s.rows {
		if s.rows[i].ID == id {
			if patch.Status != nil {
				s.rows[i].Status = *patch.Status
			}
			out := s.rows[i]
			return &out, nil
		}
	}
	return nil, domain.ErrTicketNotFound
}

func (s *stubTickets) Delete(context.Context, string) error { return nil }

type stubEvents struct {
	rows    []domain.AdminEvent
	lastQ   ports.EventQuery
	creates int
}

func (s *stubEvents) List(_ context.Context, q ports.EventQuery) ([]domain.AdminEvent, error) {
	s.lastQ = q
	return append([]domain.AdminEvent(nil), s.rows...), nil
}

func (s *stubEvents) GetByID(_ context.Context, id string) (*domain.AdminEvent, error) {
	for _, e := range s.rows {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, domain.ErrEventNotFound
}

func (s *stubEvents) Create(_ context.Context, ev *domain.AdminEvent) (*domain.AdminEvent, error) {
	s.creates++
	out := *ev
	out.ID = uuid.NewString()
	s.rows = append(s.rows, out)
	return &out, nil
}

func (s *stubEvents) Update(_ context.Context, id string, ev *domain.AdminEvent) (*domain.AdminEvent, error) {
	out := *ev
	out.ID = id
	return &out, nil
}

func (s *stubEvents) Delete(context.Context, string) error { return nil }

type stubActivity struct {
	mu      sync.Mutex
	entries []domain.ActivityLog
	err     error
}

func (s *stubActivity) Insert(_ context.Context, e *domain.ActivityLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, *e)
	return nil
}

func (s *stubActivity) ListByProject(_ context.Context, projectID string, _ int) ([]domain.ActivityLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.ActivityLog
	for _, e := range s.entries {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// storage and realtime
// ---------------------------------------------------------------------------

type stubStorage struct {
	objects map[string]string // bucket/path -> content type
}

func newStubStorage() *stubStorage { return &stubStorage{objects: map[string]string{}} }

func (s *stubStorage) Upload(_ context.Context, bucket, path string, r io.Reader, contentType string) error {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return err
	}
	s.objects[bucket+"/"+path] = contentType
	return nil
}

func (s *stubStorage) PublicURL(bucket, path string) string {
	return "https://portal.test/storage/v1/object/public/" + bucket + "/" + path
}

func (s *stubStorage) SignedURL(_ context.Context, bucket, path string, _ time.Duration) (string, error) {
	if _, ok := s.objects[bucket+"/"+path]; !ok {
		return "", ports.ErrObjectNotFound
	}
	return "https://portal.test/storage/v1/object/sign/" + bucket + "/" + path + "?token=t", nil
}

func (s *stubStorage) Remove(_ context.Context, bucket string, paths ...string) error {
	for _, p := range paths {
		delete(s.objects, bucket+"/"+p)
	}
	return nil
}

type stubSub struct {
	rt *stubRealtime
	id int
}

func (s stubSub) Unsubscribe() {
	s.rt.mu.Lock()
	delete(s.rt.subs, s.id)
	s.rt.mu.Unlock()
}

type stubRealtime struct {
	mu   sync.Mutex
	next int
	subs map[int]rtEntry
}

type rtEntry struct {
	filter  ports.ChangeFilter
	handler func(ports.Change)
}

func newStubRealtime() *stubRealtime { return &stubRealtime{subs: map[int]rtEntry{}} }

func (r *stubRealtime) Subscribe(_ context.Context, f ports.ChangeFilter, h func(ports.Change)) (ports.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.subs[r.next] = rtEntry{filter: f, handler: h}
	return stubSub{rt: r, id: r.next}, nil
}

func (r *stubRealtime) open() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}

// publish delivers v synchronously to matching subscribers.
func (r *stubRealtime) publish(table string, ev ports.ChangeEvent, column, value string, v any) {
	raw, _ := json.Marshal(v)
	r.mu.Lock()
	var targets []func(ports.Change)
	for _, e := range r.subs {
		if e.filter.Table != table {
			continue
		}
		if e.filter.Event != ports.ChangeAny && e.filter.Event != ev {
			continue
		}
		if e.filter.Column != "" && (e.filter.Column != column || e.filter.Value != value) {
			continue
		}
		targets = append(targets, e.handler)
	}
	r.mu.Unlock()
	ch := ports.Change{Table: table, Event: ev, New: raw}
	for _, h := range targets {
		h(ch)
	}
}

var errBoom = errors.New("boom")
