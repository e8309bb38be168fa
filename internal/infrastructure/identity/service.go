// Package identity issues and verifies password sessions for portal users.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
)

const (
	defaultTokenTTL = 24 * time.Hour
	minPasswordLen  = 8
)

var ErrInvalidToken = errors.New("invalid access token")

type Config struct {
	Secret   string
	TokenTTL time.Duration
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

// Service authenticates users stored in a ports.UserRepository and hands
// out HS256 access tokens.
type Service struct {
	users  ports.UserRepository
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
}

var _ ports.IdentityAdmin = (*Service)(nil)

func NewService(users ports.UserRepository, cfg Config) *Service {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &Service{users: users, secret: []byte(cfg.Secret), ttl: ttl, cost: cost, now: time.Now}
}

// Authenticate checks the password of email and opens a session.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*ports.AuthSession, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, transient(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return s.issue(user)
}

// Resolve validates token and loads its user.
func (s *Service) Resolve(ctx context.Context, token string) (*ports.AuthSession, error) {
	claims := jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, transient(err)
	}
	return &ports.AuthSession{AccessToken: token, User: *user, ExpiresAt: claims.ExpiresAt.Time}, nil
}

func (s *Service) issue(user *domain.User) (*ports.AuthSession, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &ports.AuthSession{AccessToken: signed, User: *user, ExpiresAt: exp}, nil
}

// ---------------------------------------------------------------------------
// Admin operations
// ---------------------------------------------------------------------------

func (s *Service) CreateUser(ctx context.Context, email, password string, metadata map[string]string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("email", "a valid email is required")
	}
	if len(password) < minPasswordLen {
		return nil, domain.NewValidationError("password", fmt.Sprintf("must be at least %d characters", minPasswordLen))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	return s.users.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Metadata:     metadata,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (s *Service) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.FindByEmail(ctx, domain.NormalizeEmail(email))
}

func (s *Service) UpdatePassword(ctx context.Context, userID, password string) error {
	if len(password) < minPasswordLen {
		return domain.NewValidationError("password", fmt.Sprintf("must be at least %d characters", minPasswordLen))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return err
	}
	return s.users.UpdatePasswordHash(ctx, userID, string(hash))
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// transient marks gateway outages so callers may retry.
func transient(err error) error {
	if errors.Is(err, ports.ErrUnavailable) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrTransient, err)
	}
	return err
}
