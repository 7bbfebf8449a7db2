package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrProgressNotFound indicates that no progress record exists for
	// the requested (language, word) pair.
	ErrProgressNotFound = fmt.Errorf("%w: word progress", ErrNotFound)

	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("record already exists")

	// ErrInvalidEntity is returned when a write violates a database
	// constraint other than uniqueness.
	ErrInvalidEntity = errors.New("invalid entity")
)
