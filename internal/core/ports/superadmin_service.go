package ports

import (
	"context"

	"github.com/tde-services/project-portal/internal/core/domain"
)

// CreateAdminInput is the payload of the privileged create-admin operation.
type CreateAdminInput struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8"`
	FullName string      `json:"fullName" validate:"required"`
	Role     domain.Role `json:"role" validate:"required,oneof=admin superadmin"`
}

// CreateAdminStatus tells which path the create-admin operation took.
type CreateAdminStatus string

const (
	AdminCreated                  CreateAdminStatus = "created"
	AdminAlreadyExists            CreateAdminStatus = "already_exists"
	AdminUpdatedExisting          CreateAdminStatus = "updated_existing_admin"
	AdminPromotedExistingProfile  CreateAdminStatus = "promoted_existing_profile"
	AdminPromotedExistingAuthUser CreateAdminStatus = "promoted_existing_auth_user"
)

type CreateAdminResult struct {
	Status  CreateAdminStatus `json:"status"`
	UserID  string            `json:"userId"`
	Profile *domain.Profile   `json:"profile,omitempty"`
}

// AuthUserSummary is one identity user as the superadmin console lists it.
type AuthUserSummary struct {
	ID       string      `json:"id"`
	Email    string      `json:"email"`
	FullName string      `json:"full_name,omitempty"`
	Role     domain.Role `json:"role,omitempty"`
}

type SuperAdminService interface {
	CreateAdmin(ctx context.Context, caller *domain.Profile, in CreateAdminInput) (*CreateAdminResult, error)
	AuthUsers(ctx context.Context) []AuthUserSummary
	PromoteAuthUser(ctx context.Context, caller *domain.Profile, userID string) error
}

// StealthGate guards the hidden superadmin entry point of a device.
type StealthGate interface {
	HasAccess(ctx context.Context) bool
	Unlock(ctx context.Context, key string) bool
	Lock(ctx context.Context)
}
