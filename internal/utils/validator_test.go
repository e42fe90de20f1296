// internal/utils/validator_test.go
package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	Username string `validate:"required,username"`
	Password string `validate:"required,strong_password"`
	Phone    string `validate:"omitempty,nepal_phone"`
}

func TestValidateStructAccepts(t *testing.T) {
	err := ValidateStruct(&sampleInput{
		Username: "sita_99",
		Password: "Str0ng!pass",
		Phone:    "9812345678",
	})
	assert.NoError(t, err)
}

func TestValidateStructRejects(t *testing.T) {
	cases := map[string]sampleInput{
		"short username":  {Username: "ab", Password: "Str0ng!pass"},
		"weak password":   {Username: "sita_99", Password: "password"},
		"bad phone":       {Username: "sita_99", Password: "Str0ng!pass", Phone: "12345"},
		"wrong prefix":    {Username: "sita_99", Password: "Str0ng!pass", Phone: "9912345678"},
		"username symbol": {Username: "sita-99!", Password: "Str0ng!pass"},
	}
	for name, input := range cases {
		assert.Error(t, ValidateStruct(&input), name)
	}
}

func TestGetValidationErrorsUnwraps(t *testing.T) {
	err := ValidateStruct(&sampleInput{Username: "ab", Password: "Str0ng!pass"})
	require.Error(t, err)

	// Services hand back wrapped validation errors.
	wrapped := fmt.Errorf("validation failed: %w", err)
	fieldErrors := GetValidationErrors(wrapped)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "username", fieldErrors[0].Field)
	assert.Equal(t, "username", fieldErrors[0].Tag)
}

func TestGetValidationErrorsNonValidationError(t *testing.T) {
	assert.Empty(t, GetValidationErrors(fmt.Errorf("database error")))
}
