package postgres

import (
	"context"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
)

const tableProfiles = "profiles"

type ProfileRepository struct {
	db Querier
}

func NewProfileRepository(db Querier) ports.ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	p, err := fetchOne[domain.Profile](ctx, r.db, From(tableProfiles).Eq("id", id))
	return p, notFoundAs(err, domain.ErrProfileNotFound)
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	p, err := fetchOne[domain.Profile](ctx, r.db, From(tableProfiles).EqFold("email", email))
	return p, notFoundAs(err, domain.ErrProfileNotFound)
}

func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	row := Row{
		"id":        p.ID,
		"email":     p.Email,
		"full_name": p.FullName,
		"role":      string(p.Role),
	}
	if p.Phone != "" {
		row["phone"] = p.Phone
	}
	if p.Company != "" {
		row["company"] = p.Company
	}
	return upsertRow[domain.Profile](ctx, r.db, tableProfiles, "id", row)
}

func (r *ProfileRepository) Update(ctx context.Context, id string, patch ports.ProfilePatch) error {
	set := Row{}
	setString(set, "full_name", patch.FullName)
	setString(set, "phone", patch.Phone)
	setString(set, "company", patch.Company)
	setString(set, "photo_url", patch.PhotoURL)
	if patch.Role != nil {
		set["role"] = string(*patch.Role)
	}
	if len(set) == 0 {
		return nil
	}
	_, err := updateByID[domain.Profile](ctx, r.db, tableProfiles, id, set)
	return notFoundAs(err, domain.ErrProfileNotFound)
}
