package services

import "errors"

// Sentinel errors the controllers translate into HTTP statuses.
var (
	ErrNotFound           = errors.New("not_found")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidInput       = errors.New("invalid_input")
)
