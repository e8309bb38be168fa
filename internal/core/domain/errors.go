package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrTransient          = errors.New("connection interrupted, try again")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccessDenied       = errors.New("access denied")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrSetupIncomplete    = errors.New("database setup incomplete")

	ErrInvalidPIN      = errors.New("pin must be exactly 6 digits")
	ErrProjectNotFound = errors.New("project not found")
	ErrAmbiguousClient = errors.New("more than one project matches this client email")
	ErrProfileNotFound = errors.New("profile not found")
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrEventNotFound   = errors.New("event not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
)

// ValidationError carries per-field messages for input rejected before any
// remote call.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = msg
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
