package postgres

import (
	"context"
	"time"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
)

const tableUsers = "auth_users"

// userRow mirrors auth_users; domain.User hides the hash from JSON.
type userRow struct {
	ID           string            `json:"id"`
	Email        string            `json:"email"`
	PasswordHash string            `json:"password_hash"`
	Metadata     map[string]string `json:"metadata"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

func (u *userRow) toDomain() *domain.User {
	return &domain.User{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Metadata:     u.Metadata,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// UserRepository stores identity users.
type UserRepository struct {
	db Querier
}

func NewUserRepository(db Querier) ports.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.one(ctx, From(tableUsers).EqFold("email", email))
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.one(ctx, From(tableUsers).Eq("id", id))
}

func (r *UserRepository) one(ctx context.Context, q *Query) (*domain.User, error) {
	row, err := fetchOne[userRow](ctx, r.db, q)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrUserNotFound)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	meta := u.Metadata
	if meta == nil {
		meta = map[string]string{}
	}
	row, err := insertRow[userRow](ctx, r.db, tableUsers, Row{
		"email":         u.Email,
		"password_hash": u.PasswordHash,
		"metadata":      meta,
	})
	if err != nil {
		return nil, conflictAs(err, domain.ErrUserExists)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	_, err := updateByID[userRow](ctx, r.db, tableUsers, id, Row{"password_hash": hash, "updated_at": time.Now().UTC()})
	return notFoundAs(err, domain.ErrUserNotFound)
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := fetchAll[userRow](ctx, r.db, From(tableUsers).Order("created_at", false))
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, len(rows))
	for i := range rows {
		out[i] = *rows[i].toDomain()
	}
	return out, nil
}
