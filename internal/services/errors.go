package services

import (
	"errors"
	"fmt"
)

// Error variables
var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrSubmissionInFlight = errors.New("login already in progress")
	ErrControllerClosed   = errors.New("login controller closed")
	ErrUnknownField       = errors.New("unknown form field")

	// ErrEmailNotVerified matches any AuthError with CodeEmailNotVerified.
	ErrEmailNotVerified = errors.New("email not verified")
	// ErrInvalidCredentials matches any AuthError with CodeInvalidCredentials.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAuthUnavailable matches any AuthError with CodeUnavailable.
	ErrAuthUnavailable = errors.New("authentication service unavailable")
)

// Authentication failure codes.
const (
	CodeEmailNotVerified   = "email_not_verified"
	CodeInvalidCredentials = "invalid_credentials"
	CodeUnavailable        = "unavailable"
)

// User-facing texts.
const (
	MessageLoginSuccessful   = "Login successful!"
	MessageVerifyEmailFirst  = "Please verify your email first."
	MessageVerifyRedirecting = "Please verify your email. Redirecting..."
	MessageLoginFailed       = "Login failed. Please try again."
	MessageInvalidCredential = "Invalid credentials"
)

// AuthError is a rejected authentication. Message is shown to the user as is
// and may be empty.
type AuthError struct {
	Code    string
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	default:
		return e.Code
	}
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func (e *AuthError) Is(target error) bool {
	switch target {
	case ErrEmailNotVerified:
		return e.Code == CodeEmailNotVerified
	case ErrInvalidCredentials:
		return e.Code == CodeInvalidCredentials
	case ErrAuthUnavailable:
		return e.Code == CodeUnavailable
	default:
		return false
	}
}

// FieldError reports a required form field that was left empty.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s is empty", ErrMissingCredentials, e.Field)
}

func (e *FieldError) Unwrap() error {
	return ErrMissingCredentials
}
