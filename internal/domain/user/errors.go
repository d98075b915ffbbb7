package user

import "errors"

var (
	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned when login credentials are invalid.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotAuthenticated indicates a missing or expired session token.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidInput indicates a malformed email or password.
	ErrInvalidInput = errors.New("invalid registration input")
)
