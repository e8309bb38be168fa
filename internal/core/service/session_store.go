package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
)

// Storage keys. Short-lived keys live in the tab store, the rest in the
// device store.
const (
	keyAdminSession   = "admin_session"
	keyClientSession  = "client_session"
	keyClientPIN      = "client_pin"
	keyRedirect       = "redirect_after_login"
	keyLegacyClient   = "tde_client_session"
	keyProfileCache   = "tde_admin_profile_cache_v1"
	keyRememberedProj = "client_project_id"
)

// SessionStore keeps the admin and client session records of one scope and
// evaluates their state lazily: an expired record is removed by the read
// that finds it. Storage failures are logged and read as absent.
type SessionStore struct {
	tab    ports.KeyValueStore
	device ports.KeyValueStore
	ttl    time.Duration
	now    func() time.Time
	log    zerolog.Logger
}

func NewSessionStore(tab, device ports.KeyValueStore, ttl time.Duration, now func() time.Time, log zerolog.Logger) *SessionStore {
	if ttl <= 0 {
		ttl = domain.SessionTTL
	}
	if now == nil {
		now = time.Now
	}
	return &SessionStore{tab: tab, device: device, ttl: ttl, now: now, log: log}
}

// Now exposes the store clock so collaborators share it.
func (s *SessionStore) Now() time.Time { return s.now() }

// ---------------------------------------------------------------------------
// Admin session
// ---------------------------------------------------------------------------

// AdminSession returns the active admin session, or nil with the state that
// made it unusable.
func (s *SessionStore) AdminSession(ctx context.Context) (*domain.AdminSession, domain.SessionState) {
	var sess domain.AdminSession
	if !s.readJSON(ctx, s.tab, keyAdminSession, &sess) {
		return nil, domain.SessionAbsent
	}
	switch st := sess.State(s.now()); st {
	case domain.SessionActive:
		return &sess, st
	case domain.SessionExpired:
		s.ClearAdminSession(ctx)
		return nil, st
	default:
		s.ClearAdminSession(ctx)
		return nil, domain.SessionAbsent
	}
}

// SaveAdminSession starts (or slides) the admin session of userID. Sliding
// restarts the TTL window so that ExpiresAt - LoginTime stays equal to it.
func (s *SessionStore) SaveAdminSession(ctx context.Context, userID string) *domain.AdminSession {
	sess := domain.NewAdminSession(userID, s.now(), s.ttl)
	s.writeJSON(ctx, s.tab, keyAdminSession, sess)
	return sess
}

func (s *SessionStore) ClearAdminSession(ctx context.Context) {
	s.delete(ctx, s.tab, keyAdminSession)
}

// ---------------------------------------------------------------------------
// Client session
// ---------------------------------------------------------------------------

func (s *SessionStore) ClientSession(ctx context.Context) (*domain.ClientSession, domain.SessionState) {
	var sess domain.ClientSession
	if !s.readJSON(ctx, s.tab, keyClientSession, &sess) {
		return nil, domain.SessionAbsent
	}
	switch st := sess.State(s.now()); st {
	case domain.SessionActive:
		return &sess, st
	case domain.SessionExpired:
		s.delete(ctx, s.tab, keyClientSession)
		s.delete(ctx, s.tab, keyClientPIN)
		return nil, st
	default:
		s.delete(ctx, s.tab, keyClientSession)
		return nil, domain.SessionAbsent
	}
}

// SaveClientSession records a successful client login: the session and PIN
// in the tab store, the legacy mirror in the device store.
func (s *SessionStore) SaveClientSession(ctx context.Context, p *domain.Project, pin string) *domain.ClientSession {
	now := s.now()
	sess := domain.NewClientSession(p.ID, now, s.ttl)
	s.writeJSON(ctx, s.tab, keyClientSession, sess)
	s.set(ctx, s.tab, keyClientPIN, pin)
	s.writeJSON(ctx, s.device, keyLegacyClient, domain.LegacyClientSession{
		Type:        "client",
		ProjectID:   p.ID,
		ProjectName: p.Name,
		ClientID:    p.ClientID,
		LoginTime:   now.UTC().Format(time.RFC3339),
	})
	return sess
}

// LegacyClientSession reads the durable mirror; it carries no expiry.
func (s *SessionStore) LegacyClientSession(ctx context.Context) *domain.LegacyClientSession {
	var legacy domain.LegacyClientSession
	if !s.readJSON(ctx, s.device, keyLegacyClient, &legacy) || legacy.ProjectID == "" {
		return nil
	}
	return &legacy
}

// ClientPIN returns the PIN of the active client session.
func (s *SessionStore) ClientPIN(ctx context.Context) string {
	pin, _ := s.get(ctx, s.tab, keyClientPIN)
	return pin
}

// ClearClientSession removes both client session formats and the PIN.
func (s *SessionStore) ClearClientSession(ctx context.Context) {
	s.delete(ctx, s.tab, keyClientSession)
	s.delete(ctx, s.tab, keyClientPIN)
	s.delete(ctx, s.device, keyLegacyClient)
}

// RememberProjectID keeps the project id for the login form prefill.
func (s *SessionStore) RememberProjectID(ctx context.Context, projectID string) {
	s.set(ctx, s.device, keyRememberedProj, projectID)
}

func (s *SessionStore) RememberedProjectID(ctx context.Context) string {
	v, _ := s.get(ctx, s.device, keyRememberedProj)
	return v
}

// ---------------------------------------------------------------------------
// Profile cache and redirect
// ---------------------------------------------------------------------------

// CachedProfile returns the cached admin profile when it belongs to userID
// and carries an admin role. Anything else is discarded.
func (s *SessionStore) CachedProfile(ctx context.Context, userID string) *domain.Profile {
	var p domain.Profile
	if !s.readJSON(ctx, s.device, keyProfileCache, &p) {
		return nil
	}
	if userID == "" || p.ID != userID || !p.Role.IsAdmin() {
		return nil
	}
	return &p
}

func (s *SessionStore) CacheProfile(ctx context.Context, p *domain.Profile) {
	if p == nil || !p.Role.IsAdmin() {
		return
	}
	s.writeJSON(ctx, s.device, keyProfileCache, p)
}

func (s *SessionStore) ClearProfileCache(ctx context.Context) {
	s.delete(ctx, s.device, keyProfileCache)
}

func (s *SessionStore) SetRedirect(ctx context.Context, path string) {
	if path == "" {
		return
	}
	s.set(ctx, s.tab, keyRedirect, path)
}

// PopRedirect returns and forgets the stored post-login path.
func (s *SessionStore) PopRedirect(ctx context.Context) string {
	path, ok := s.get(ctx, s.tab, keyRedirect)
	if ok {
		s.delete(ctx, s.tab, keyRedirect)
	}
	return path
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func (s *SessionStore) get(ctx context.Context, kv ports.KeyValueStore, key string) (string, bool) {
	v, ok, err := kv.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("session storage read failed")
		return "", false
	}
	return v, ok
}

func (s *SessionStore) set(ctx context.Context, kv ports.KeyValueStore, key, value string) {
	if err := kv.Set(ctx, key, value); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("session storage write failed")
	}
}

func (s *SessionStore) delete(ctx context.Context, kv ports.KeyValueStore, key string) {
	if err := kv.Delete(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("session storage delete failed")
	}
}

func (s *SessionStore) readJSON(ctx context.Context, kv ports.KeyValueStore, key string, dst any) bool {
	raw, ok := s.get(ctx, kv, key)
	if !ok || raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("corrupt session record dropped")
		s.delete(ctx, kv, key)
		return false
	}
	return true
}

func (s *SessionStore) writeJSON(ctx context.Context, kv ports.KeyValueStore, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("session record not encodable")
		return
	}
	s.set(ctx, kv, key, string(raw))
}
