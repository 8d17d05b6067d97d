package database

import "errors"

// Sentinel errors separating the three caller-visible failure classes.
// Handlers pick the response (400/403/404) with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
)
