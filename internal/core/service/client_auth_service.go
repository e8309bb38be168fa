package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
	"github.com/tde-services/project-portal/internal/pkg/metrics"
	"github.com/tde-services/project-portal/internal/pkg/validation"
)

const rpcLoginClient = "login_client"

// ClientAuthService is the project id + PIN track of one tab.
var _ ports.ClientAuthService = (*ClientAuthService)(nil)

type ClientAuthService struct {
	rpc      ports.ProcedureCaller
	projects ports.ProjectRepository
	sessions *SessionStore
	log      zerolog.Logger
}

func NewClientAuthService(rpc ports.ProcedureCaller, projects ports.ProjectRepository, sessions *SessionStore, log zerolog.Logger) *ClientAuthService {
	return &ClientAuthService{
		rpc:      rpc,
		projects: projects,
		sessions: sessions,
		log:      log.With().Str("component", "client_auth").Logger(),
	}
}

// LoginClient accepts a project id or the client email of exactly one
// project, together with the project PIN.
func (s *ClientAuthService) LoginClient(ctx context.Context, projectIDOrEmail, pin string) (*domain.Project, error) {
	ident := strings.TrimSpace(projectIDOrEmail)
	pin = strings.TrimSpace(pin)
	if !validation.IsPIN(pin) {
		s.count("invalid_pin")
		return nil, domain.ErrInvalidPIN
	}

	var (
		p   *domain.Project
		err error
	)
	switch {
	case isUUID(ident):
		p, err = s.loginByID(ctx, ident, pin)
	case validation.IsEmail(ident):
		p, err = s.loginByEmail(ctx, domain.NormalizeEmail(ident), pin)
	default:
		err = domain.ErrProjectNotFound
	}
	if err != nil {
		s.count(loginResult(err))
		return nil, err
	}

	s.sessions.SaveClientSession(ctx, p, pin)
	s.sessions.RememberProjectID(ctx, p.ID)
	s.count("success")
	s.log.Info().Str("project_id", p.ID).Msg("client signed in")
	return p, nil
}

// onRPCFailure falls back to the table only when the procedure failed for
// reasons other than a refused PIN or a missing function.
func onRPCFailure(err error) bool {
	return onAnyError(err) && !errors.Is(err, ports.ErrEmptyResult) && !errors.Is(err, ports.ErrFunctionMissing)
}

func (s *ClientAuthService) loginByID(ctx context.Context, id, pin string) (*domain.Project, error) {
	p, err := firstOf(ctx, s.log, "client_login", onRPCFailure,
		strategy[*domain.Project]{name: "rpc", run: func(ctx context.Context) (*domain.Project, error) {
			var p domain.Project
			if err := s.rpc.Call(ctx, rpcLoginClient, map[string]any{"p_id": id, "p_pin": pin}, &p); err != nil {
				return nil, err
			}
			if p.ID == "" {
				return nil, ports.ErrEmptyResult
			}
			return &p, nil
		}},
		strategy[*domain.Project]{name: "table", run: func(ctx context.Context) (*domain.Project, error) {
			row, err := s.projects.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			if !pinMatches(row, pin) {
				return nil, domain.ErrInvalidCredentials
			}
			return row, nil
		}},
	)
	if err == nil {
		return p, nil
	}

	var serr *StrategyError
	last := err
	if errors.As(err, &serr) {
		last = serr.Last()
	}
	switch {
	case errors.Is(last, ports.ErrEmptyResult), errors.Is(last, domain.ErrInvalidCredentials):
		return nil, domain.ErrInvalidCredentials
	case errors.Is(last, ports.ErrFunctionMissing):
		s.log.Error().Err(last).Msg("login_client procedure missing")
		return nil, domain.ErrSetupIncomplete
	case errors.Is(last, domain.ErrProjectNotFound):
		return nil, domain.ErrProjectNotFound
	}
	return nil, fmt.Errorf("client login: %w", err)
}

func (s *ClientAuthService) loginByEmail(ctx context.Context, email, pin string) (*domain.Project, error) {
	rows, err := s.projects.FindByClientEmail(ctx, email, 2)
	if err != nil {
		return nil, fmt.Errorf("client login: %w", err)
	}
	switch len(rows) {
	case 0:
		return nil, domain.ErrProjectNotFound
	case 1:
	default:
		return nil, domain.ErrAmbiguousClient
	}
	p := rows[0]
	if !pinMatches(&p, pin) {
		return nil, domain.ErrInvalidCredentials
	}
	return &p, nil
}

func pinMatches(p *domain.Project, pin string) bool {
	return subtle.ConstantTimeCompare([]byte(p.EffectivePIN()), []byte(pin)) == 1
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil && len(s) == 36
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid"
	case errors.Is(err, domain.ErrSetupIncomplete):
		return "setup_incomplete"
	case errors.Is(err, domain.ErrProjectNotFound), errors.Is(err, domain.ErrAmbiguousClient):
		return "not_found"
	default:
		return "error"
	}
}

func (s *ClientAuthService) count(result string) {
	metrics.LoginAttemptsTotal.WithLabelValues("client", result).Inc()
}

// IsClient reports an active client session. It never calls the network.
func (s *ClientAuthService) IsClient(ctx context.Context) bool {
	sess, _ := s.sessions.ClientSession(ctx)
	return sess != nil
}

func (s *ClientAuthService) RequireClient(ctx context.Context, path string) ports.GuardDecision {
	if s.IsClient(ctx) {
		return ports.GuardDecision{Allowed: true}
	}
	s.sessions.SetRedirect(ctx, path)
	return ports.GuardDecision{Redirect: ports.ClientLoginPath}
}

// ProjectID returns the project of the active session, else the legacy
// device copy.
func (s *ClientAuthService) ProjectID(ctx context.Context) string {
	if sess, _ := s.sessions.ClientSession(ctx); sess != nil {
		return sess.ProjectID
	}
	if legacy := s.sessions.LegacyClientSession(ctx); legacy != nil {
		return legacy.ProjectID
	}
	return ""
}

func (s *ClientAuthService) PIN(ctx context.Context) string {
	return s.sessions.ClientPIN(ctx)
}

func (s *ClientAuthService) SessionTimeRemaining(ctx context.Context) time.Duration {
	sess, _ := s.sessions.ClientSession(ctx)
	if sess == nil {
		return 0
	}
	return sess.Remaining(s.sessions.Now())
}

// Logout ends the client track only.
func (s *ClientAuthService) Logout(ctx context.Context) {
	s.sessions.ClearClientSession(ctx)
}
