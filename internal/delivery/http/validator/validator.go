// Package validator wires go-playground/validator into Echo and renders
// failures as field-enumerating validation errors.
package validator

import (
	"reflect"
	"strings"
	"unicode"

	domainerrors "spark/internal/domain/errors"
	"spark/internal/errors"

	validatorlib "github.com/go-playground/validator/v10"
)

const (
	passwordMinLength = 8
	passwordMaxLength = 32
)

// CustomValidator adapts go-playground/validator to echo.Validator.
type CustomValidator struct {
	validate *validatorlib.Validate
}

// New constructs the validator used for every bound request body. Field names
// in error messages come from json tags, so clients see the names they sent.
func New() *CustomValidator {
	validate := validatorlib.New(validatorlib.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	// Single rule for the whole password policy so a weak password reports
	// the password field once instead of one entry per violated bound.
	if err := validate.RegisterValidation("password", validPassword); err != nil {
		panic(err)
	}

	return &CustomValidator{validate: validate}
}

// Validate implements echo.Validator.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validatorlib.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "failed to validate input")
	}

	fields := make([]string, 0, len(fieldErrs))
	seen := make(map[string]struct{}, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		name := fieldErr.Field()
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		fields = append(fields, name)
	}

	return domainerrors.New(domainerrors.TypeValidation, ValidationMessage(fields))
}

// ValidationMessage builds the user-facing message enumerating the offending
// fields, in the order they were declared.
func ValidationMessage(fields []string) string {
	noun := "inputs"
	if len(fields) == 1 {
		noun = "input"
	}

	return "Invalid or missing " + noun + " provided for: " + strings.Join(fields, ", ")
}

// validPassword enforces the account password policy: 8 to 32 characters with
// at least one uppercase letter, one digit, and one symbol.
func validPassword(fl validatorlib.FieldLevel) bool {
	password := fl.Field().String()
	length := len([]rune(password))
	if length < passwordMinLength || length > passwordMaxLength {
		return false
	}

	var hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}

	return hasUpper && hasDigit && hasSymbol
}
