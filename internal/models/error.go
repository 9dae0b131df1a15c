package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingID          = errors.New("user id is required")
	ErrNoSession          = errors.New("no active session")
)
