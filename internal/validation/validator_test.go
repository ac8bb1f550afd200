package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/technozen/technozen-server/internal/errors"
)

type testRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"omitempty,max=10"`
}

func TestValidate_OK(t *testing.T) {
	v := New()

	err := v.Validate(testRequest{Email: "alice@example.com", Name: "Alice"})
	assert.NoError(t, err)
}

func TestValidate_FieldErrorsUseJSONNames(t *testing.T) {
	v := New()

	err := v.Validate(testRequest{Email: "not-an-email", Name: "a very long name"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "name")
}

func TestValidate_Required(t *testing.T) {
	v := New()

	err := v.Validate(testRequest{})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)

	details := domainErr.Details.(map[string]string)
	assert.Equal(t, "is required", details["email"])
}
