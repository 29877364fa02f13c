package ports

import "errors"

// ErrNotFound is returned by repositories when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write would violate a uniqueness constraint.
var ErrConflict = errors.New("conflict")

// ErrInvalidInput marks a request that references missing or malformed data.
var ErrInvalidInput = errors.New("invalid input")
