package state

import (
	"sort"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/common"
)

const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

// ValidationError maps form fields to the message shown next to them.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// ValidateSignIn checks the login form.
func ValidateSignIn(email, password string) error {
	v := &ValidationError{Fields: map[string]string{}}

	if email == "" {
		v.Fields[FieldEmail] = "Email is required"
	} else if !common.IsValidEmail(email) {
		v.Fields[FieldEmail] = "Please enter a valid email address"
	}

	if password == "" {
		v.Fields[FieldPassword] = "Password is required"
	}

	return v.orNil()
}

type SignUpForm struct {
	Email           string
	Password        string
	ConfirmPassword string
}

// ValidateSignUp checks the registration form.
func ValidateSignUp(f SignUpForm) error {
	v := &ValidationError{Fields: map[string]string{}}

	if f.Email == "" {
		v.Fields[FieldEmail] = "Email is required"
	} else if !common.IsValidEmail(f.Email) {
		v.Fields[FieldEmail] = "Invalid email address"
	}

	if f.Password == "" {
		v.Fields[FieldPassword] = "Password is required"
	} else if len(f.Password) < common.MinPasswordLength {
		v.Fields[FieldPassword] = "Password must be at least 6 characters"
	}

	if f.ConfirmPassword == "" {
		v.Fields[FieldConfirmPassword] = "Confirm Password is required"
	} else if f.ConfirmPassword != f.Password {
		v.Fields[FieldConfirmPassword] = "Passwords do not match"
	}

	return v.orNil()
}
