package services

import "github.com/dmitrijs2005/gophnotes/internal/common"

// Error is a failure whose Message is meant for the end user. Kind is one of
// the common sentinels and decides the transport status code.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

var (
	ErrInvalidCredentials    = &Error{common.ErrorUnauthorized, "Invalid login credentials"}
	ErrUserAlreadyRegistered = &Error{common.ErrorAlreadyExists, "User already registered"}
	ErrWeakPassword          = &Error{common.ErrorValidation, "Password should be at least 6 characters"}
	ErrInvalidEmail          = &Error{common.ErrorValidation, "Unable to validate email address: invalid format"}
	ErrInvalidRefreshToken   = &Error{common.ErrorUnauthorized, "Invalid Refresh Token: Refresh Token Not Found"}
	ErrRefreshTokenExpired   = &Error{common.ErrRefreshTokenExpired, "Invalid Refresh Token: Refresh Token Expired"}
	ErrUserNotFound          = &Error{common.ErrorNotFound, "User not found"}
	ErrTitleRequired         = &Error{common.ErrorValidation, "Title is required"}
	ErrNoteNotFound          = &Error{common.ErrorNotFound, "Note not found"}
	ErrForeignOwner          = &Error{common.ErrorForbidden, `new row violates row-level security policy for table "notes"`}
)
