package middleware

import (
	"encoding/json"
	"net/http"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const minPasswordLength = 8

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("password_policy", validatePasswordPolicy)
}

// ValidateRequest validates a struct against its validate tags.
func ValidateRequest(v interface{}) error {
	return validate.Struct(v)
}

// DecodeAndValidate decodes a JSON request body into v and validates it.
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return ValidateRequest(v)
}

// PasswordMeetsPolicy reports whether password has at least eight characters
// including an upper case letter, a lower case letter, a digit and a symbol.
func PasswordMeetsPolicy(password string) bool {
	if len(password) < minPasswordLength {
		return false
	}

	var upper, lower, digit, special bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			upper = true
		case unicode.IsLower(c):
			lower = true
		case unicode.IsDigit(c):
			digit = true
		case unicode.IsPunct(c) || unicode.IsSymbol(c):
			special = true
		}
	}
	return upper && lower && digit && special
}

func validatePasswordPolicy(fl validator.FieldLevel) bool {
	return PasswordMeetsPolicy(fl.Field().String())
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FormatValidationErrors converts validator errors into field/message pairs.
func FormatValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			errors = append(errors, ValidationError{
				Field:   e.Field(),
				Message: getErrorMessage(e),
			})
		}
	}

	return errors
}

func getErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return "Value is too short"
	case "max":
		return "Value is too long"
	case "gte":
		return "Value must be greater than or equal to " + e.Param()
	case "lte":
		return "Value must be less than or equal to " + e.Param()
	case "gt":
		return "Value must be greater than " + e.Param()
	case "lt":
		return "Value must be less than " + e.Param()
	case "oneof":
		return "Value must be one of: " + e.Param()
	case "eqfield":
		return "Value must match " + e.Param()
	case "uuid":
		return "Value must be a valid UUID"
	case "password_policy":
		return "Password must be at least 8 characters and contain upper case, lower case, a number and a special character"
	default:
		return "Invalid value"
	}
}
