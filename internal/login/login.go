// Package login validates the sign-in form that precedes onboarding.
package login

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Form field names, also used as keys of Errors.
const (
	FieldIdentifier = "email"
	FieldPassword   = "password"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// emailShape is deliberately loose: anything@anything.anything.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// phoneShape accepts an optional leading + and at least seven digits,
// spaces, dashes or parentheses.
var phoneShape = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{6,}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("loginid", validateLoginID)
	return v
}

// validateLoginID checks values containing "@" against the email shape
// and everything else against the phone shape.
func validateLoginID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	if strings.Contains(id, "@") {
		return emailShape.MatchString(id)
	}
	return phoneShape.MatchString(id)
}

// Credentials is the submitted login form.
type Credentials struct {
	Identifier string `form:"email" json:"email" validate:"required,loginid"`
	Password   string `form:"password" json:"password" validate:"required,min=6"`
}

// Errors maps a form field to its message. Empty means valid.
type Errors map[string]string

var messages = map[string]map[string]string{
	"Identifier": {
		"required": "Email or phone number is required",
		"loginid":  "Invalid email format",
	},
	"Password": {
		"required": "Password is required",
		"min":      "Password must be at least 6 characters",
	},
}

var formNames = map[string]string{
	"Identifier": FieldIdentifier,
	"Password":   FieldPassword,
}

// Validate checks the credentials. The identifier is trimmed before the
// emptiness check; the password is taken verbatim.
func Validate(c Credentials) Errors {
	c.Identifier = strings.TrimSpace(c.Identifier)
	errs := Errors{}

	err := validate.Struct(c)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs
	}
	for _, fe := range fieldErrs {
		name := formNames[fe.StructField()]
		if _, seen := errs[name]; seen {
			continue
		}
		errs[name] = messages[fe.StructField()][fe.Tag()]
	}
	return errs
}

// Func is invoked once the login form has validated.
type Func func(ctx context.Context, identifier string)

// Attempt validates c and calls onLogin only when there are no errors.
func Attempt(ctx context.Context, c Credentials, onLogin Func) Errors {
	errs := Validate(c)
	if len(errs) == 0 && onLogin != nil {
		onLogin(ctx, strings.TrimSpace(c.Identifier))
	}
	return errs
}
