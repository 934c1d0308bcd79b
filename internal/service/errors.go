package service

import "errors"

var (
	// ErrValidation indicates missing or malformed input.
	ErrValidation = errors.New("invalid input")
	// ErrConflict indicates a duplicate unique key.
	ErrConflict = errors.New("already exists")
	// ErrNotFound indicates no matching record.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized indicates bad credentials or a bad, expired, or
	// reused token.
	ErrUnauthorized = errors.New("unauthorized")
)
