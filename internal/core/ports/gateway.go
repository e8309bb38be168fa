package ports

import (
	"context"
	"errors"
)

// Gateway error classes. Adapters wrap driver errors with these so services
// can pick a fallback without inspecting driver types.
var (
	// ErrFunctionMissing means the remote procedure does not exist in this
	// deployment's schema.
	ErrFunctionMissing = errors.New("remote function not found")
	// ErrColumnMissing means a referenced column does not exist.
	ErrColumnMissing = errors.New("column not found")
	// ErrEmptyResult means a procedure ran but returned NULL.
	ErrEmptyResult = errors.New("remote call returned no result")
	// ErrUnavailable covers network failures, timeouts and aborted requests.
	ErrUnavailable = errors.New("gateway unavailable")
	// ErrNotFound is returned by single-row reads that match nothing.
	ErrNotFound = errors.New("row not found")
)

// IsSchemaDrift reports errors caused by the remote schema lacking a
// function or a column.
func IsSchemaDrift(err error) bool {
	return errors.Is(err, ErrFunctionMissing) || errors.Is(err, ErrColumnMissing)
}

// ProcedureCaller invokes stored procedures ("RPC") with named arguments.
// The JSON result is decoded into out; a NULL result yields ErrEmptyResult.
type ProcedureCaller interface {
	Call(ctx context.Context, fn string, args map[string]any, out any) error
}
