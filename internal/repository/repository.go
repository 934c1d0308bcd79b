package repository

import "errors"

var (
	// ErrNotFound is returned when no record matches the query.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is returned on a unique-key violation.
	ErrAlreadyExists = errors.New("record already exists")
)
