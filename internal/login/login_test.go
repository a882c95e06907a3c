package login

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		want  Errors
	}{
		{
			name:  "malformed email and short password",
			creds: Credentials{Identifier: "not-an@email", Password: "12345"},
			want: Errors{
				FieldIdentifier: "Invalid email format",
				FieldPassword:   "Password must be at least 6 characters",
			},
		},
		{
			name:  "everything empty",
			creds: Credentials{Identifier: "   ", Password: ""},
			want: Errors{
				FieldIdentifier: "Email or phone number is required",
				FieldPassword:   "Password is required",
			},
		},
		{
			name:  "valid email",
			creds: Credentials{Identifier: "amina@safehaven.org", Password: "secret1"},
			want:  Errors{},
		},
		{
			name:  "phone numbers skip the email shape",
			creds: Credentials{Identifier: "+254700000000", Password: "secret1"},
			want:  Errors{},
		},
		{
			name:  "identifier is trimmed",
			creds: Credentials{Identifier: "  amina@safehaven.org  ", Password: "secret1"},
			want:  Errors{},
		},
		{
			name:  "local phone format",
			creds: Credentials{Identifier: "0700 123-456", Password: "secret1"},
			want:  Errors{},
		},
		{
			name:  "too short for a phone number",
			creds: Credentials{Identifier: "12345", Password: "secret1"},
			want:  Errors{FieldIdentifier: "Invalid email format"},
		},
		{
			name:  "email without a dot in the domain",
			creds: Credentials{Identifier: "amina@localhost", Password: "secret1"},
			want:  Errors{FieldIdentifier: "Invalid email format"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.creds))
		})
	}
}

func TestAttempt(t *testing.T) {
	t.Run("invalid input never calls back", func(t *testing.T) {
		called := false
		errs := Attempt(context.Background(), Credentials{Identifier: "not-an-email@", Password: "12345"}, func(context.Context, string) {
			called = true
		})
		assert.False(t, called)
		assert.Contains(t, errs, FieldIdentifier)
		assert.Contains(t, errs, FieldPassword)
	})

	t.Run("neither email nor phone fails both fields", func(t *testing.T) {
		called := false
		errs := Attempt(context.Background(), Credentials{Identifier: "not-an-email", Password: "12345"}, func(context.Context, string) {
			called = true
		})
		assert.False(t, called)
		assert.Equal(t, Errors{
			FieldIdentifier: "Invalid email format",
			FieldPassword:   "Password must be at least 6 characters",
		}, errs)
	})

	t.Run("valid input calls back once with the trimmed identifier", func(t *testing.T) {
		var got []string
		errs := Attempt(context.Background(), Credentials{Identifier: " amina@safehaven.org ", Password: "secret1"}, func(_ context.Context, id string) {
			got = append(got, id)
		})
		assert.Empty(t, errs)
		assert.Equal(t, []string{"amina@safehaven.org"}, got)
	})

	t.Run("nil callback is allowed", func(t *testing.T) {
		assert.NotPanics(t, func() {
			Attempt(context.Background(), Credentials{Identifier: "a@b.co", Password: "secret1"}, nil)
		})
	})
}
