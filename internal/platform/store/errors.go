// Package store holds the storage error taxonomy shared by every repository
// implementation, plus the in-memory building blocks used by the memory
// backed repositories.
package store

import "errors"

var (
	// ErrNotFound is returned by point lookups when no record has the id.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("record conflicts with an existing record")

	// ErrUnavailable wraps backing-store connectivity or execution failures.
	ErrUnavailable = errors.New("storage unavailable")
)

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict reports whether err is, or wraps, ErrConflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
