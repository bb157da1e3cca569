package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a domain failure so transport layers can map it to a
// stable status code and machine-readable string.
type ErrorCode string

const (
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeConflict           ErrorCode = "CONFLICT"
	ErrCodeInvalid            ErrorCode = "INVALID"
	ErrCodeWeakCredential     ErrorCode = "WEAK_CREDENTIAL"
	ErrCodeTokenInvalid       ErrorCode = "TOKEN_INVALID"
	ErrCodeTokenInactive      ErrorCode = "TOKEN_INACTIVE"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInactiveAccount    ErrorCode = "INACTIVE_ACCOUNT"
	ErrCodeIllegalTransition  ErrorCode = "ILLEGAL_TRANSITION"
	ErrCodeInternal           ErrorCode = "INTERNAL"
)

// Error is a domain-level error carrying a semantic code. Message never
// contains secrets or internal representations.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError classifies an infrastructure error without losing its cause.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

var (
	ErrUserNotFound       = NewError(ErrCodeNotFound, "user not found")
	ErrTokenNotFound      = NewError(ErrCodeNotFound, "token not found")
	ErrSessionNotFound    = NewError(ErrCodeNotFound, "session not found")
	ErrEmailExists        = NewError(ErrCodeConflict, "email already in use")
	ErrInvalidEmail       = NewError(ErrCodeInvalid, "invalid email format")
	ErrInvalidIdentifier  = NewError(ErrCodeInvalid, "invalid identifier format")
	ErrWeakCredential     = NewError(ErrCodeWeakCredential, "password does not meet the strength policy")
	ErrTokenInvalid       = NewError(ErrCodeTokenInvalid, "invalid token")
	ErrTokenInactive      = NewError(ErrCodeTokenInactive, "token is expired or already used")
	ErrInvalidCredentials = NewError(ErrCodeInvalidCredentials, "invalid credentials")
	ErrInactiveAccount    = NewError(ErrCodeInactiveAccount, "account is not active")
	ErrUserDisabled       = NewError(ErrCodeIllegalTransition, "cannot verify a disabled user")
)

// CodeOf extracts the ErrorCode from err, or ErrCodeInternal if err carries none.
func CodeOf(err error) ErrorCode {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code
	}
	return ErrCodeInternal
}

// Is reports whether err carries the given domain code.
func Is(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
