package repository

import "errors"

var (
	// ErrNotFound is returned when the requested aggregate does not exist.
	ErrNotFound = errors.New("not found")
	// ErrVersionConflict is returned by Save when the aggregate was modified
	// since it was loaded.
	ErrVersionConflict = errors.New("version conflict")
	// ErrDuplicate is returned when a uniqueness constraint is violated.
	ErrDuplicate = errors.New("duplicate")
)
