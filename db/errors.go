package db

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced post does not exist.
	ErrNotFound = errors.New("db: post not found")

	// ErrUnsupportedVersion is wrapped in an IOError when the stored document
	// was written by a newer layout.
	ErrUnsupportedVersion = errors.New("db: unsupported document version")

	// ErrConflict is returned when an optimistic transaction keeps losing to
	// concurrent writers.
	ErrConflict = errors.New("db: too many concurrent updates")
)

// IOError reports storage that cannot be read, decoded or written.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("db: %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
