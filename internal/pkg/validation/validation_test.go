package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tde-services/project-portal/internal/core/domain"
)

type sample struct {
	Date  string `json:"date" validate:"required,ymd"`
	Time  string `json:"time" validate:"omitempty,hhmm"`
	PIN   string `json:"pin" validate:"omitempty,pin"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestStruct_Valid(t *testing.T) {
	err := Struct(sample{Date: "2025-03-01", Time: "09:30", PIN: "123456", Email: "a@b.co"})
	require.NoError(t, err)
}

func TestStruct_FieldMessagesUseJSONNames(t *testing.T) {
	err := Struct(sample{Date: "01/03/2025", Time: "25:00", PIN: "12ab56"})
	require.Error(t, err)

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "must be a date (YYYY-MM-DD)", ve.Fields["date"])
	assert.Equal(t, "must be a time (HH:MM)", ve.Fields["time"])
	assert.Equal(t, "must be exactly 6 digits", ve.Fields["pin"])
	assert.NotContains(t, ve.Fields, "email")
}

func TestIsPIN(t *testing.T) {
	cases := map[string]bool{
		"123456":  true,
		"000000":  true,
		"12345":   false,
		"1234567": false,
		"12a456":  false,
		"":        false,
	}
	for in, want := range cases {
		assert.Equal(t, want, IsPIN(in), "IsPIN(%q)", in)
	}
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("client@example.com"))
	assert.False(t, IsEmail("not-an-email"))
	assert.False(t, IsEmail(""))
}
