package service

import "errors"

// Service errors handlers map to HTTP statuses.
var (
	// ErrNotFound covers both missing resources and resources the caller
	// is not allowed to see. Handlers answer 404 for both so board
	// existence never leaks.
	ErrNotFound = errors.New("resource not found")

	// ErrCannotRemoveOwner is returned when a caller tries to take the
	// owner out of a board's member set.
	ErrCannotRemoveOwner = errors.New("board owner cannot be removed")
)
