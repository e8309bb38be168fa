// Package validation holds the shared go-playground validator with the
// portal's custom tags:
//
//	ymd   calendar date "2006-01-02"
//	hhmm  clock time "15:04"
//	pin   six digit client PIN
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tde-services/project-portal/internal/core/domain"
)

var (
	ymdRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	hhmmRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	pinRe  = regexp.MustCompile(`^\d{6}$`)
)

var (
	instance *validator.Validate
	once     sync.Once
)

// Get returns the process-wide validator.
func Get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		mustRegister(v, "ymd", ymdRe)
		mustRegister(v, "hhmm", hhmmRe)
		mustRegister(v, "pin", pinRe)
		instance = v
	})
	return instance
}

func mustRegister(v *validator.Validate, tag string, re *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

// IsPIN reports whether s is a six digit PIN.
func IsPIN(s string) bool { return pinRe.MatchString(s) }

// IsEmail reports whether s is a syntactically valid email address.
func IsEmail(s string) bool { return Get().Var(s, "required,email") == nil }

// Struct validates s and converts failures into a *domain.ValidationError.
func Struct(s any) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	out := &domain.ValidationError{}
	for _, fe := range ve {
		out.Add(fe.Field(), Message(fe))
	}
	return out
}

// Message converts a single FieldError into a human-readable message.
func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "uuid":
		return "must be a valid id"
	case "ymd":
		return "must be a date (YYYY-MM-DD)"
	case "hhmm":
		return "must be a time (HH:MM)"
	case "pin":
		return "must be exactly 6 digits"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}
