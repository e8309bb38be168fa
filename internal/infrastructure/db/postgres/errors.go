package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tde-services/project-portal/internal/core/ports"
)

// SQLSTATE codes the gateway classifies.
const (
	codeUndefinedFunction = "42883"
	codeUndefinedColumn   = "42703"
	codeUniqueViolation   = "23505"
	codeQueryCanceled     = "57014"
	codeAdminShutdown     = "57P01"
)

// ErrConflict is returned when an insert violates a unique constraint.
var ErrConflict = errors.New("row already exists")

// classify wraps driver errors with the gateway classes of package ports
// while keeping the original error in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %w", ports.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeUndefinedFunction:
			return fmt.Errorf("%w: %w", ports.ErrFunctionMissing, err)
		case pgErr.Code == codeUndefinedColumn:
			return fmt.Errorf("%w: %w", ports.ErrColumnMissing, err)
		case pgErr.Code == codeUniqueViolation:
			return fmt.Errorf("%w: %w", ErrConflict, err)
		case pgErr.Code == codeQueryCanceled, pgErr.Code == codeAdminShutdown,
			strings.HasPrefix(pgErr.Code, "08"):
			return fmt.Errorf("%w: %w", ports.ErrUnavailable, err)
		}
		return err
	}

	var netErr net.Error
	if pgconn.Timeout(err) || errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", ports.ErrUnavailable, err)
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%w: %w", ports.ErrUnavailable, err)
	}
	return err
}

// conflictAs replaces ErrConflict with the entity's own sentinel.
func conflictAs(err, sentinel error) error {
	if errors.Is(err, ErrConflict) {
		return sentinel
	}
	return err
}
