package validation

import (
	"regexp"
	"strings"

	"perkpay/internal/models"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validator accumulates field errors during input validation.
type Validator struct {
	Errors map[string]string
}

func New() *Validator {
	return &Validator{Errors: map[string]string{}}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) check(ok bool, field, msg string) {
	if !ok {
		if _, exists := v.Errors[field]; !exists {
			v.Errors[field] = msg
		}
	}
}

// First returns an arbitrary error message, for single-error API responses.
func (v *Validator) First() string {
	for _, msg := range v.Errors {
		return msg
	}
	return ""
}

// UserRegistration validates a registration payload.
func (v *Validator) UserRegistration(input *models.CreateUserInput) {
	v.check(emailPattern.MatchString(input.Email), "email", "a valid email is required")
	v.check(ValidPassword(input.Password), "password", "password must be at least 8 characters and contain a special character")
	v.check(strings.TrimSpace(input.Name) != "", "name", "name is required")
	v.check(strings.TrimSpace(input.Mobile) != "", "mobile", "mobile number is required")
	v.check(strings.TrimSpace(input.Address) != "", "address", "address is required")
}
