package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var emailValidator = validator.New()

// NormalizeEmail trims and lower-cases an address; stored emails are always in this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func IsValidEmail(email string) bool {
	return email != "" && emailValidator.Var(email, "email") == nil
}
