package event

import "errors"

var (
	// ErrEventNotFound indicates no event has the requested ID.
	ErrEventNotFound = errors.New("event not found")

	// ErrDuplicateID indicates an event with the same ID already exists.
	ErrDuplicateID = errors.New("duplicate event id")

	// ErrInvalidInput indicates invalid event input.
	ErrInvalidInput = errors.New("invalid event input")
)
