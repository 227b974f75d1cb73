package service

import "errors"

var (
	// ErrForbidden is returned when the requesting user is not the
	// authorized owner of the resource being mutated.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput is returned for malformed input, e.g. negative amounts.
	ErrInvalidInput = errors.New("invalid input")
)
