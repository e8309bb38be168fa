package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
	"github.com/tde-services/project-portal/internal/infrastructure/storage"
)

// errorResponse is the canonical error envelope for all API errors. Failed
// mutations also carry success=false.
type errorResponse struct {
	Success *bool             `json:"success,omitempty"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors without leaking details to the client.
//   - Renders {"error": "<message>"}, plus "success": false for mutations.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		if isMutation(c.Request().Method) {
			failed := false
			resp.Success = &failed
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, guards).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, errorResponse{Error: ve.Error(), Fields: ve.Fields}
	}

	switch {
	case errors.Is(err, domain.ErrTransient), errors.Is(err, ports.ErrUnavailable):
		return http.StatusServiceUnavailable, errorResponse{Error: domain.ErrTransient.Error()}
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, errorResponse{Error: "not authenticated"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials"}
	case errors.Is(err, domain.ErrAccessDenied):
		return http.StatusForbidden, errorResponse{Error: "access denied"}
	case errors.Is(err, domain.ErrInvalidPIN):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrAmbiguousClient):
		return http.StatusConflict, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, errorResponse{Error: "user already exists"}
	case errors.Is(err, domain.ErrSetupIncomplete):
		return http.StatusServiceUnavailable, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrProjectNotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrTicketNotFound),
		errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, ports.ErrNotFound),
		errors.Is(err, ports.ErrObjectNotFound),
		errors.Is(err, ports.ErrBucketNotFound):
		return http.StatusNotFound, errorResponse{Error: notFoundMessage(err)}
	case errors.Is(err, storage.ErrInvalidToken):
		return http.StatusForbidden, errorResponse{Error: "invalid or expired signature"}
	case errors.Is(err, storage.ErrInvalidPath):
		return http.StatusBadRequest, errorResponse{Error: "invalid object path"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

func notFoundMessage(err error) string {
	for _, sentinel := range []error{
		domain.ErrProjectNotFound, domain.ErrProfileNotFound, domain.ErrTicketNotFound,
		domain.ErrEventNotFound, domain.ErrUserNotFound, ports.ErrObjectNotFound, ports.ErrBucketNotFound,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "not found"
}
