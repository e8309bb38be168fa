package handler

import (
	"github.com/tde-services/project-portal/internal/pkg/validation"
)

// echoValidator lets Echo call c.Validate(req) with the shared validator and
// its custom tags. Failures come back as *domain.ValidationError.
type echoValidator struct{}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	validation.Get()
	return &echoValidator{}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	return validation.Struct(i)
}
