package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
	"github.com/tde-services/project-portal/internal/pkg/validation"
)

const (
	rpcSuperadminAuthUsers = "get_superadmin_auth_users"
	rpcPromoteAuthUser     = "promote_auth_user_to_admin"
	authUsersLimit         = 200
)

type superAdminService struct {
	idAdmin  ports.IdentityAdmin
	profiles ports.ProfileRepository
	rpc      ports.ProcedureCaller
	log      zerolog.Logger
}

// NewSuperAdminService returns the privileged account management
// operations. Every mutation requires a superadmin caller.
func NewSuperAdminService(idAdmin ports.IdentityAdmin, profiles ports.ProfileRepository, rpc ports.ProcedureCaller, log zerolog.Logger) ports.SuperAdminService {
	return &superAdminService{idAdmin: idAdmin, profiles: profiles, rpc: rpc, log: log.With().Str("component", "superadmin").Logger()}
}

func requireSuperAdmin(caller *domain.Profile) error {
	if caller == nil {
		return domain.ErrNotAuthenticated
	}
	if caller.Role != domain.RoleSuperAdmin {
		return domain.ErrAccessDenied
	}
	return nil
}

// CreateAdmin creates an admin account, or promotes whatever already exists
// for the email: a profile row, else an identity user.
func (s *superAdminService) CreateAdmin(ctx context.Context, caller *domain.Profile, in ports.CreateAdminInput) (*ports.CreateAdminResult, error) {
	if err := requireSuperAdmin(caller); err != nil {
		return nil, err
	}
	in.Email = domain.NormalizeEmail(in.Email)
	in.FullName = strings.Join(strings.Fields(in.FullName), " ")
	in.Role = domain.Role(strings.ToLower(strings.TrimSpace(string(in.Role))))
	if in.Role == "" {
		in.Role = domain.RoleAdmin
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	// 1. Existing profile: no-op when nothing changes, promote otherwise.
	existing, err := s.profiles.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		if existing.Role == in.Role && existing.FullName == in.FullName {
			return &ports.CreateAdminResult{Status: ports.AdminAlreadyExists, UserID: existing.ID, Profile: existing}, nil
		}
		status := ports.AdminPromotedExistingProfile
		if existing.Role.IsAdmin() {
			status = ports.AdminUpdatedExisting
		}
		p, err := s.promote(ctx, existing.ID, in.Email, in.Role, in.FullName)
		if err != nil {
			return nil, fmt.Errorf("create admin: %w", err)
		}
		s.audit(caller, status, p.ID)
		return &ports.CreateAdminResult{Status: status, UserID: p.ID, Profile: p}, nil
	case !errors.Is(err, domain.ErrProfileNotFound):
		return nil, fmt.Errorf("create admin: %w", err)
	}

	// 2. Identity user without profile.
	user, err := s.idAdmin.FindUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		p, err := s.promote(ctx, user.ID, in.Email, in.Role, in.FullName)
		if err != nil {
			return nil, fmt.Errorf("create admin: %w", err)
		}
		s.audit(caller, ports.AdminPromotedExistingAuthUser, p.ID)
		return &ports.CreateAdminResult{Status: ports.AdminPromotedExistingAuthUser, UserID: p.ID, Profile: p}, nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("create admin: %w", err)
	}

	// 3. Brand new account.
	user, err = s.idAdmin.CreateUser(ctx, in.Email, in.Password, map[string]string{
		"name": in.FullName,
		"role": string(in.Role),
	})
	if err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	p, err := s.promote(ctx, user.ID, in.Email, in.Role, in.FullName)
	if err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	s.audit(caller, ports.AdminCreated, p.ID)
	return &ports.CreateAdminResult{Status: ports.AdminCreated, UserID: p.ID, Profile: p}, nil
}

func (s *superAdminService) audit(caller *domain.Profile, status ports.CreateAdminStatus, userID string) {
	s.log.Info().Str("actor", caller.ID).Str("user_id", userID).Str("status", string(status)).Msg("admin account provisioned")
}

// promote sets the role of userID through the promotion procedure, or by
// upserting the profile when the procedure is not deployed.
func (s *superAdminService) promote(ctx context.Context, userID, email string, role domain.Role, fullName string) (*domain.Profile, error) {
	return firstOf(ctx, s.log, "superadmin.promote", onMissingFunction,
		strategy[*domain.Profile]{name: rpcPromoteAuthUser, run: func(ctx context.Context) (*domain.Profile, error) {
			var p domain.Profile
			err := s.rpc.Call(ctx, rpcPromoteAuthUser, map[string]any{
				"p_user_id":   userID,
				"p_role":      string(role),
				"p_full_name": nilIfEmpty(fullName),
			}, &p)
			if err != nil && !errors.Is(err, ports.ErrEmptyResult) {
				return nil, err
			}
			if p.ID == "" {
				p = domain.Profile{ID: userID, Email: email, FullName: fullName, Role: role}
			}
			return &p, nil
		}},
		strategy[*domain.Profile]{name: "profiles", run: func(ctx context.Context) (*domain.Profile, error) {
			return s.profiles.Upsert(ctx, &domain.Profile{ID: userID, Email: email, FullName: fullName, Role: role})
		}},
	)
}

// AuthUsers lists identity users with their profile role when known.
func (s *superAdminService) AuthUsers(ctx context.Context) []ports.AuthUserSummary {
	users, err := firstOf(ctx, s.log, "superadmin.auth_users", onMissingFunction,
		strategy[[]ports.AuthUserSummary]{name: rpcSuperadminAuthUsers, run: func(ctx context.Context) ([]ports.AuthUserSummary, error) {
			return callList[ports.AuthUserSummary](ctx, s.rpc, rpcSuperadminAuthUsers, map[string]any{
				"p_search": nil,
				"p_limit":  authUsersLimit,
			})
		}},
		strategy[[]ports.AuthUserSummary]{name: "identity", run: func(ctx context.Context) ([]ports.AuthUserSummary, error) {
			list, err := s.idAdmin.ListUsers(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]ports.AuthUserSummary, 0, len(list))
			for _, u := range list {
				sum := ports.AuthUserSummary{ID: u.ID, Email: u.Email, FullName: u.DisplayName()}
				if p, err := s.profiles.GetByID(ctx, u.ID); err == nil {
					sum.Role = p.Role
					if p.FullName != "" {
						sum.FullName = p.FullName
					}
				}
				out = append(out, sum)
			}
			return out, nil
		}},
	)
	if err != nil {
		s.log.Error().Err(err).Msg("list auth users failed")
		return []ports.AuthUserSummary{}
	}
	return users
}

// PromoteAuthUser grants the admin role to an existing identity user.
func (s *superAdminService) PromoteAuthUser(ctx context.Context, caller *domain.Profile, userID string) error {
	if err := requireSuperAdmin(caller); err != nil {
		return err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.NewValidationError("userId", "is required")
	}

	var email, name string
	if p, err := s.profiles.GetByID(ctx, userID); err == nil {
		email, name = p.Email, p.FullName
	} else if users, err := s.idAdmin.ListUsers(ctx); err == nil {
		for _, u := range users {
			if u.ID == userID {
				email, name = u.Email, u.DisplayName()
				break
			}
		}
	}
	if email == "" {
		return domain.ErrUserNotFound
	}

	if _, err := s.promote(ctx, userID, email, domain.RoleAdmin, name); err != nil {
		return fmt.Errorf("promote user: %w", err)
	}
	s.audit(caller, ports.AdminPromotedExistingAuthUser, userID)
	return nil
}
