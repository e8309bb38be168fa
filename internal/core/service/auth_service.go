package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
	"github.com/tde-services/project-portal/internal/pkg/metrics"
)

const (
	defaultLoginAttempts   = 2
	defaultLoginRetryDelay = 250 * time.Millisecond
	bootstrapAdminName     = "Administrator"
)

// DefaultBootstrapAdmins always qualify for the missing-profile recovery.
var DefaultBootstrapAdmins = []string{"operations@tde-services.com"}

// AuthConfig tunes the admin track.
type AuthConfig struct {
	// BootstrapEmails extends DefaultBootstrapAdmins.
	BootstrapEmails []string
	RetryDelay      time.Duration
	MaxAttempts     int
}

// AuthService is the admin identity track of one tab. It also owns the
// teardown of both tracks.
var _ ports.AdminAuthService = (*AuthService)(nil)

type AuthService struct {
	idp         ports.IdentityProvider
	profiles    ports.ProfileRepository
	sessions    *SessionStore
	bootstrap   map[string]struct{}
	retryDelay  time.Duration
	maxAttempts int
	log         zerolog.Logger

	flight    singleflight.Group
	ready     chan struct{}
	readyOnce sync.Once

	mu          sync.RWMutex
	user        *domain.User
	profile     *domain.Profile
	unsubscribe func()
}

func NewAuthService(idp ports.IdentityProvider, profiles ports.ProfileRepository, sessions *SessionStore, cfg AuthConfig, log zerolog.Logger) *AuthService {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultLoginAttempts
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultLoginRetryDelay
	}
	allow := make(map[string]struct{})
	for _, e := range append(append([]string{}, DefaultBootstrapAdmins...), cfg.BootstrapEmails...) {
		if e = domain.NormalizeEmail(e); e != "" {
			allow[e] = struct{}{}
		}
	}
	return &AuthService{
		idp:         idp,
		profiles:    profiles,
		sessions:    sessions,
		bootstrap:   allow,
		retryDelay:  cfg.RetryDelay,
		maxAttempts: cfg.MaxAttempts,
		log:         log.With().Str("component", "admin_auth").Logger(),
		ready:       make(chan struct{}),
	}
}

// Init picks up an identity session that already exists for the device and
// starts following auth-state changes. Guards wait for it to finish.
func (s *AuthService) Init(ctx context.Context) error {
	defer s.readyOnce.Do(func() { close(s.ready) })

	s.mu.Lock()
	if s.unsubscribe == nil {
		s.unsubscribe = s.idp.OnAuthStateChange(s.onAuthStateChange)
	}
	s.mu.Unlock()

	sess, err := s.idp.Session(ctx)
	if err != nil {
		return fmt.Errorf("init auth: %w", err)
	}
	if sess == nil {
		return nil
	}

	profile, err := s.profiles.GetByID(ctx, sess.User.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", sess.User.ID).Msg("profile fetch failed at init, using cache")
		profile = s.sessions.CachedProfile(ctx, sess.User.ID)
	}
	s.setPrincipal(&sess.User, profile)

	if profile == nil || !profile.Role.IsAdmin() {
		return nil
	}
	s.sessions.CacheProfile(ctx, profile)
	if _, state := s.sessions.AdminSession(ctx); state == domain.SessionAbsent {
		s.sessions.SaveAdminSession(ctx, sess.User.ID)
	}
	return nil
}

// Close stops following auth-state changes.
func (s *AuthService) Close() {
	s.mu.Lock()
	unsub := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

func (s *AuthService) onAuthStateChange(ev ports.AuthEvent, sess *ports.AuthSession) {
	switch ev {
	case ports.AuthSignedOut:
		s.setPrincipal(nil, nil)
	case ports.AuthSignedIn:
		if sess != nil {
			s.mu.Lock()
			u := sess.User
			s.user = &u
			s.mu.Unlock()
		}
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

// LoginAdmin signs an admin in. Concurrent calls share one exchange with the
// identity provider.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (*ports.AdminLoginResult, error) {
	ch := s.flight.DoChan("admin-login", func() (any, error) {
		return s.loginAdmin(context.WithoutCancel(ctx), email, password)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*ports.AdminLoginResult), nil
	}
}

func (s *AuthService) loginAdmin(ctx context.Context, email, password string) (*ports.AdminLoginResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("admin", "invalid").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	var (
		sess *ports.AuthSession
		err  error
	)
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		sess, err = s.idp.SignInWithPassword(ctx, email, password)
		if err == nil || !isTransientAbort(err) || attempt == s.maxAttempts {
			break
		}
		s.log.Warn().Err(err).Int("attempt", attempt).Msg("sign-in aborted, retrying")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.retryDelay):
		}
	}
	if err != nil {
		if isTransientAbort(err) {
			metrics.LoginAttemptsTotal.WithLabelValues("admin", "transient").Inc()
			if !errors.Is(err, domain.ErrTransient) {
				err = fmt.Errorf("%w: %v", domain.ErrTransient, err)
			}
			return nil, fmt.Errorf("admin login: %w", err)
		}
		metrics.LoginAttemptsTotal.WithLabelValues("admin", "invalid").Inc()
		return nil, fmt.Errorf("admin login: %w", err)
	}

	profile, err := s.resolveLoginProfile(ctx, &sess.User)
	if err == nil && !profile.Role.IsAdmin() {
		err = domain.ErrAccessDenied
	}
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", sess.User.ID).Msg("signed-in user is not an admin, signing out")
		if soErr := s.idp.SignOut(ctx); soErr != nil {
			s.log.Error().Err(soErr).Msg("sign-out after denied login failed")
		}
		s.setPrincipal(nil, nil)
		metrics.LoginAttemptsTotal.WithLabelValues("admin", "denied").Inc()
		return nil, fmt.Errorf("admin login: %w", err)
	}

	s.setPrincipal(&sess.User, profile)
	s.sessions.SaveAdminSession(ctx, sess.User.ID)
	s.sessions.CacheProfile(ctx, profile)

	metrics.LoginAttemptsTotal.WithLabelValues("admin", "success").Inc()
	s.log.Info().Str("user_id", sess.User.ID).Str("role", string(profile.Role)).Msg("admin signed in")

	u := sess.User
	return &ports.AdminLoginResult{Success: true, User: &u, Profile: profile}, nil
}

// resolveLoginProfile loads the profile of a freshly signed-in user. A
// missing row is recovered for allow-listed emails only.
func (s *AuthService) resolveLoginProfile(ctx context.Context, user *domain.User) (*domain.Profile, error) {
	p, err := s.profiles.GetByID(ctx, user.ID)
	switch {
	case err == nil:
		return p, nil
	case errors.Is(err, domain.ErrProfileNotFound):
		if !s.isBootstrapEmail(user.Email) {
			return nil, domain.ErrAccessDenied
		}
		return s.bootstrapProfile(ctx, user)
	default:
		if cached := s.sessions.CachedProfile(ctx, user.ID); cached != nil {
			s.log.Warn().Err(err).Msg("profile fetch failed, using cached admin profile")
			return cached, nil
		}
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
}

func (s *AuthService) bootstrapProfile(ctx context.Context, user *domain.User) (*domain.Profile, error) {
	name := user.DisplayName()
	if name == "" {
		name = bootstrapAdminName
	}
	created, err := s.profiles.Upsert(ctx, &domain.Profile{
		ID:       user.ID,
		Email:    domain.NormalizeEmail(user.Email),
		FullName: name,
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		return nil, fmt.Errorf("bootstrap profile: %w", err)
	}
	s.log.Warn().Str("user_id", user.ID).Str("email", user.Email).Msg("bootstrap admin profile created")

	if fresh, err := s.profiles.GetByID(ctx, user.ID); err == nil {
		return fresh, nil
	}
	return created, nil
}

func (s *AuthService) isBootstrapEmail(email string) bool {
	_, ok := s.bootstrap[domain.NormalizeEmail(email)]
	return ok
}

// isTransientAbort separates interrupted exchanges from credential failures.
func isTransientAbort(err error) bool {
	if errors.Is(err, domain.ErrTransient) || errors.Is(err, ports.ErrUnavailable) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "aborted") || strings.Contains(msg, "abort error")
}

// ---------------------------------------------------------------------------
// Checks and guards
// ---------------------------------------------------------------------------

// IsAdmin re-verifies the principal, the admin session and the role, and
// slides the session expiry when all three hold.
func (s *AuthService) IsAdmin(ctx context.Context) bool {
	return s.checkRole(ctx, domain.Role.IsAdmin)
}

func (s *AuthService) IsSuperAdmin(ctx context.Context) bool {
	return s.checkRole(ctx, func(r domain.Role) bool { return r == domain.RoleSuperAdmin })
}

func (s *AuthService) checkRole(ctx context.Context, allowed func(domain.Role) bool) bool {
	user := s.CurrentUser()
	if user == nil {
		return false
	}
	// Another tab of the device may have signed out since this tab's
	// principal was set.
	idSess, err := s.idp.Session(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("identity session lookup failed")
		return false
	}
	if idSess == nil || idSess.User.ID != user.ID {
		s.log.Info().Str("principal", user.ID).Msg("identity session gone, dropping admin state")
		s.setPrincipal(nil, nil)
		s.sessions.ClearAdminSession(ctx)
		return false
	}
	sess, _ := s.sessions.AdminSession(ctx)
	if sess == nil {
		return false
	}
	if sess.UserID != user.ID {
		s.log.Warn().Str("session_user", sess.UserID).Str("principal", user.ID).Msg("admin session belongs to another user, clearing")
		s.sessions.ClearAdminSession(ctx)
		return false
	}
	if !allowed(s.resolveRole(ctx, user.ID)) {
		return false
	}
	s.sessions.SaveAdminSession(ctx, user.ID)
	return true
}

// resolveRole reads the live profile, falling back to the validated cache.
func (s *AuthService) resolveRole(ctx context.Context, userID string) domain.Role {
	p, err := s.profiles.GetByID(ctx, userID)
	if err == nil {
		s.mu.Lock()
		s.profile = p
		s.mu.Unlock()
		if p.Role.IsAdmin() {
			s.sessions.CacheProfile(ctx, p)
		} else {
			s.sessions.ClearProfileCache(ctx)
		}
		return p.Role
	}
	if cached := s.sessions.CachedProfile(ctx, userID); cached != nil {
		return cached.Role
	}
	return ""
}

// RequireAdmin lets an admin through, otherwise records path and sends the
// browser to the admin login.
func (s *AuthService) RequireAdmin(ctx context.Context, path string) ports.GuardDecision {
	if err := s.waitReady(ctx); err != nil {
		return ports.GuardDecision{Redirect: ports.AdminLoginPath}
	}
	if s.IsAdmin(ctx) {
		return ports.GuardDecision{Allowed: true}
	}
	s.sessions.SetRedirect(ctx, path)
	return ports.GuardDecision{Redirect: ports.AdminLoginPath}
}

// RequireSuperAdmin sends plain admins back to the admin index.
func (s *AuthService) RequireSuperAdmin(ctx context.Context, path string) ports.GuardDecision {
	d := s.RequireAdmin(ctx, path)
	if !d.Allowed {
		return d
	}
	if !s.IsSuperAdmin(ctx) {
		return ports.GuardDecision{Redirect: ports.AdminIndexPath}
	}
	return d
}

func (s *AuthService) waitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *AuthService) RedirectAfterLogin(ctx context.Context) string {
	if path := s.sessions.PopRedirect(ctx); path != "" {
		return path
	}
	return ports.AdminIndexPath
}

func (s *AuthService) SessionTimeRemaining(ctx context.Context) time.Duration {
	sess, _ := s.sessions.AdminSession(ctx)
	if sess == nil {
		return 0
	}
	return sess.Remaining(s.sessions.Now())
}

func (s *AuthService) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *AuthService) CurrentProfile() *domain.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

func (s *AuthService) setPrincipal(u *domain.User, p *domain.Profile) {
	s.mu.Lock()
	s.user, s.profile = u, p
	s.mu.Unlock()
}

// ---------------------------------------------------------------------------
// Teardown
// ---------------------------------------------------------------------------

// Logout signs out of the identity provider when the admin track was active,
// clears every session format and cache, and returns the login surface of
// the track that was active.
func (s *AuthService) Logout(ctx context.Context) (string, error) {
	adminSess, _ := s.sessions.AdminSession(ctx)
	wasAdmin := s.CurrentUser() != nil || adminSess != nil
	clientSess, _ := s.sessions.ClientSession(ctx)
	wasClient := clientSess != nil || s.sessions.LegacyClientSession(ctx) != nil

	var err error
	if wasAdmin {
		if soErr := s.idp.SignOut(ctx); soErr != nil {
			s.log.Warn().Err(soErr).Msg("identity sign-out failed, clearing local state anyway")
			err = fmt.Errorf("logout: %w", soErr)
		}
	}

	s.sessions.ClearAdminSession(ctx)
	s.sessions.ClearClientSession(ctx)
	s.sessions.ClearProfileCache(ctx)
	s.setPrincipal(nil, nil)

	switch {
	case wasAdmin:
		return ports.AdminLoginPath, err
	case wasClient:
		return ports.ClientLoginPath, err
	default:
		return ports.HomePath, err
	}
}
