package validator

import (
	"strings"
	"testing"

	domainerrors "spark/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signUpBody struct {
	Email    string `json:"email" validate:"required,email,min=8"`
	Password string `json:"password" validate:"required,password"`
}

func TestValidate_AcceptsValidBody(t *testing.T) {
	cv := New()

	err := cv.Validate(&signUpBody{Email: "a@example.com", Password: "Ign!is*123"})

	assert.NoError(t, err)
}

func TestValidate_ReportsSingleFieldSingular(t *testing.T) {
	cv := New()

	err := cv.Validate(&signUpBody{Email: "not-an-email", Password: "Ign!is*123"})

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.TypeValidation, appErr.Type())
	assert.Equal(t, "Invalid or missing input provided for: email", appErr.Message())
}

func TestValidate_ReportsMultipleFieldsInDeclarationOrder(t *testing.T) {
	cv := New()

	err := cv.Validate(&signUpBody{Email: "", Password: "weak"})

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Invalid or missing inputs provided for: email, password", appErr.Message())
}

func TestValidPassword_Policy(t *testing.T) {
	cv := New()

	cases := []struct {
		name     string
		password string
		valid    bool
	}{
		{"accepted reference password", "Ign!is*123", true},
		{"too short", "Ab1!x", false},
		{"too long", "Aa1!" + strings.Repeat("a", 29), false},
		{"missing uppercase", "ign!is*123", false},
		{"missing digit", "Ign!is*abc", false},
		{"missing symbol", "Ignis12345", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := cv.Validate(&signUpBody{Email: "a@example.com", Password: tc.password})
			if tc.valid {
				assert.NoError(t, err)
			} else {
				var appErr *domainerrors.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, "Invalid or missing input provided for: password", appErr.Message())
			}
		})
	}
}
