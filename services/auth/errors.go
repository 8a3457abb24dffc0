package auth

import "errors"

var (
	// ErrInvalidCredentials rejects a sign-in with an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnauthorized rejects a missing, expired or revoked ID token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrWeakPassword rejects a new password shorter than MinPasswordLength.
	ErrWeakPassword = errors.New("password must be at least 6 characters")
	// ErrNothingToUpdate rejects an account update without changes.
	ErrNothingToUpdate = errors.New("nothing to update")
)
