package storage

import "errors"

// Common storage errors.
var (
	// ErrMissingCollection is returned when the persisted snapshot lacks the
	// persons or tasks array. There is no partial result in that case.
	ErrMissingCollection = errors.New("snapshot is missing a required collection")

	// ErrPersonNotInBook is returned when a task references a person that was
	// not accepted into the address book.
	ErrPersonNotInBook = errors.New("task's person is not in the address book")
)
