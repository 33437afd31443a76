package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/openshelf/openshelf-server/internal/errors"
)

type testPayload struct {
	Name string `json:"name" validate:"required"`
	Age  *int   `json:"age" validate:"omitempty,gte=0"`
}

func TestValidate_Passes(t *testing.T) {
	v := New()

	age := 30
	require.NoError(t, v.Validate(testPayload{Name: "ok", Age: &age}))
	require.NoError(t, v.Validate(testPayload{Name: "ok"}))
}

func TestValidate_ReturnsDomainErrorWithJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(testPayload{})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "name")
	assert.Equal(t, "is required", details["name"])
}

func TestValidate_RangeMessage(t *testing.T) {
	v := New()

	age := -1
	err := v.Validate(testPayload{Name: "ok", Age: &age})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)

	details := domainErr.Details.(map[string]string)
	assert.Equal(t, "must be greater than or equal to 0", details["age"])
}
