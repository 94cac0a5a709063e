package controller

import "errors"

var (
	// ErrSubmissionPending is returned by Submit while an asynchronous
	// submission is still in flight.
	ErrSubmissionPending = errors.New("controller: submission pending")
	// ErrUnknownField is returned when an event names a field the form does
	// not contain.
	ErrUnknownField = errors.New("controller: unknown field")
)
