package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, ports.ErrNotFound},
		{"undefined function", &pgconn.PgError{Code: "42883"}, ports.ErrFunctionMissing},
		{"undefined column", &pgconn.PgError{Code: "42703"}, ports.ErrColumnMissing},
		{"unique violation", &pgconn.PgError{Code: "23505"}, ErrConflict},
		{"query canceled", &pgconn.PgError{Code: "57014"}, ports.ErrUnavailable},
		{"connection failure", &pgconn.PgError{Code: "08006"}, ports.ErrUnavailable},
		{"deadline", context.DeadlineExceeded, ports.ErrUnavailable},
		{"canceled", context.Canceled, ports.ErrUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.err)
			if !errors.Is(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			if !errors.Is(got, tc.err) {
				t.Fatalf("original error lost: %v", got)
			}
		})
	}
}

func TestClassifyPassesOtherErrorsThrough(t *testing.T) {
	if classify(nil) != nil {
		t.Fatal("nil must stay nil")
	}

	syntax := &pgconn.PgError{Code: "42601"}
	if got := classify(syntax); got != syntax {
		t.Fatalf("expected the original error, got %v", got)
	}

	plain := errors.New("boom")
	if got := classify(plain); got != plain {
		t.Fatalf("expected the original error, got %v", got)
	}
}

func TestClassifyKeepsPgErrorReachable(t *testing.T) {
	got := classify(&pgconn.PgError{Code: "42883", Message: "function login_client does not exist"})

	var pgErr *pgconn.PgError
	if !errors.As(got, &pgErr) || pgErr.Code != "42883" {
		t.Fatalf("expected PgError in chain, got %v", got)
	}
}

func TestNotFoundAndConflictMapping(t *testing.T) {
	if err := notFoundAs(classify(pgx.ErrNoRows), domain.ErrProjectNotFound); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
	if err := conflictAs(classify(&pgconn.PgError{Code: "23505"}), domain.ErrUserExists); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	other := errors.New("boom")
	if err := conflictAs(other, domain.ErrUserExists); err != other {
		t.Fatalf("unrelated errors must pass through, got %v", err)
	}
}
