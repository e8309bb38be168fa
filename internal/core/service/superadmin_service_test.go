package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
)

var superCaller = &domain.Profile{ID: "root", Email: "root@tde.test", Role: domain.RoleSuperAdmin}

func newSuperAdmin() (ports.SuperAdminService, *stubIdentityAdmin, *stubProfiles, *stubRPC) {
	idAdmin := &stubIdentityAdmin{}
	profiles := newStubProfiles()
	rpc := newStubRPC()
	return NewSuperAdminService(idAdmin, profiles, rpc, zerolog.Nop()), idAdmin, profiles, rpc
}

func adminInput(email string) ports.CreateAdminInput {
	return ports.CreateAdminInput{Email: email, Password: "s3cret-pass", FullName: "Léa  Martin", Role: "Admin"}
}

func TestCreateAdmin_RequiresSuperAdmin(t *testing.T) {
	svc, _, _, _ := newSuperAdmin()
	ctx := context.Background()

	if _, err := svc.CreateAdmin(ctx, nil, adminInput("lea@tde.test")); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	plain := &domain.Profile{ID: "a", Role: domain.RoleAdmin}
	if _, err := svc.CreateAdmin(ctx, plain, adminInput("lea@tde.test")); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestCreateAdmin_Validation(t *testing.T) {
	svc, idAdmin, _, _ := newSuperAdmin()
	in := adminInput("not-an-email")
	in.Password = "short"

	_, err := svc.CreateAdmin(context.Background(), superCaller, in)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(idAdmin.created) != 0 {
		t.Fatalf("no account may be created")
	}
}

func TestCreateAdmin_Paths(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc, idAdmin, profiles, _ := newSuperAdmin()
		res, err := svc.CreateAdmin(context.Background(), superCaller, adminInput(" Lea@TDE.test "))
		if err != nil {
			t.Fatalf("CreateAdmin returned error: %v", err)
		}
		if res.Status != ports.AdminCreated || len(idAdmin.created) != 1 {
			t.Fatalf("unexpected result %+v", res)
		}
		p := profiles.rows[res.UserID]
		if p.Email != "lea@tde.test" || p.FullName != "Léa Martin" || p.Role != domain.RoleAdmin {
			t.Fatalf("unexpected profile %+v", p)
		}
	})

	t.Run("promoted existing auth user", func(t *testing.T) {
		svc, idAdmin, _, _ := newSuperAdmin()
		idAdmin.users = []domain.User{{ID: "u1", Email: "lea@tde.test"}}
		res, err := svc.CreateAdmin(context.Background(), superCaller, adminInput("lea@tde.test"))
		if err != nil || res.Status != ports.AdminPromotedExistingAuthUser || res.UserID != "u1" {
			t.Fatalf("unexpected result %+v (%v)", res, err)
		}
		if len(idAdmin.created) != 0 {
			t.Fatalf("no identity user may be created")
		}
	})

	t.Run("promoted existing profile", func(t *testing.T) {
		svc, _, profiles, _ := newSuperAdmin()
		profiles.put(domain.Profile{ID: "u2", Email: "lea@tde.test", Role: domain.RoleClient})
		res, err := svc.CreateAdmin(context.Background(), superCaller, adminInput("lea@tde.test"))
		if err != nil || res.Status != ports.AdminPromotedExistingProfile {
			t.Fatalf("unexpected result %+v (%v)", res, err)
		}
		if profiles.rows["u2"].Role != domain.RoleAdmin {
			t.Fatalf("profile not promoted")
		}
	})

	t.Run("updated existing admin", func(t *testing.T) {
		svc, _, profiles, _ := newSuperAdmin()
		profiles.put(domain.Profile{ID: "u3", Email: "lea@tde.test", FullName: "Lea", Role: domain.RoleAdmin})
		res, err := svc.CreateAdmin(context.Background(), superCaller, adminInput("lea@tde.test"))
		if err != nil || res.Status != ports.AdminUpdatedExisting {
			t.Fatalf("unexpected result %+v (%v)", res, err)
		}
	})

	t.Run("already exists", func(t *testing.T) {
		svc, _, profiles, _ := newSuperAdmin()
		profiles.put(domain.Profile{ID: "u4", Email: "lea@tde.test", FullName: "Léa Martin", Role: domain.RoleAdmin})
		res, err := svc.CreateAdmin(context.Background(), superCaller, adminInput("lea@tde.test"))
		if err != nil || res.Status != ports.AdminAlreadyExists {
			t.Fatalf("unexpected result %+v (%v)", res, err)
		}
		if profiles.upserts != 0 {
			t.Fatalf("nothing may be written")
		}
	})
}

func TestCreateAdmin_PromotesThroughProcedure(t *testing.T) {
	svc, _, profiles, rpc := newSuperAdmin()
	var gotRole any
	rpc.on(rpcPromoteAuthUser, func(args map[string]any) (any, error) {
		gotRole = args["p_role"]
		return nil, nil
	})

	res, err := svc.CreateAdmin(context.Background(), superCaller, ports.CreateAdminInput{
		Email: "boss@tde.test", Password: "s3cret-pass", FullName: "Boss", Role: domain.RoleSuperAdmin,
	})
	if err != nil {
		t.Fatalf("CreateAdmin returned error: %v", err)
	}
	if gotRole != "superadmin" || res.Profile.Role != domain.RoleSuperAdmin {
		t.Fatalf("unexpected promotion role=%v profile=%+v", gotRole, res.Profile)
	}
	if profiles.upserts != 0 {
		t.Fatalf("profiles fallback must not run")
	}
}

func TestAuthUsers_FallsBackToIdentityListing(t *testing.T) {
	svc, idAdmin, profiles, _ := newSuperAdmin()
	idAdmin.users = []domain.User{
		{ID: "u1", Email: "a@tde.test", Metadata: map[string]string{"name": "Anna"}},
		{ID: "u2", Email: "b@tde.test"},
	}
	profiles.put(domain.Profile{ID: "u2", Email: "b@tde.test", FullName: "Bob", Role: domain.RoleAdmin})

	users := svc.AuthUsers(context.Background())
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].FullName != "Anna" || users[0].Role != "" {
		t.Fatalf("unexpected first user %+v", users[0])
	}
	if users[1].FullName != "Bob" || users[1].Role != domain.RoleAdmin {
		t.Fatalf("unexpected second user %+v", users[1])
	}
}

func TestPromoteAuthUser(t *testing.T) {
	svc, idAdmin, profiles, _ := newSuperAdmin()
	idAdmin.users = []domain.User{{ID: "u1", Email: "a@tde.test"}}
	ctx := context.Background()

	if err := svc.PromoteAuthUser(ctx, superCaller, "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if err := svc.PromoteAuthUser(ctx, superCaller, "u1"); err != nil {
		t.Fatalf("PromoteAuthUser returned error: %v", err)
	}
	if profiles.rows["u1"].Role != domain.RoleAdmin {
		t.Fatalf("user not promoted: %+v", profiles.rows["u1"])
	}
}
