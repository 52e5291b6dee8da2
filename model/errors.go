package model

import "errors"

// Address book errors.
var (
	// ErrDuplicatePerson is returned when a person with the same identity exists.
	ErrDuplicatePerson = errors.New("this person already exists in the address book")

	// ErrDuplicateTask is returned when the same task exists for the person.
	ErrDuplicateTask = errors.New("this task already exists for the person")

	// ErrPersonNotFound is returned when a person is not in the address book.
	ErrPersonNotFound = errors.New("person not found in the address book")

	// ErrTaskNotFound is returned when a task is not in the address book.
	ErrTaskNotFound = errors.New("task not found in the address book")
)
