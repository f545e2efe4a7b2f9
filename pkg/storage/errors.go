package storage

import "errors"

var (
	// Creation errors

	// ErrCollision if an item already exists within the store.
	ErrCollision = errors.New("item already exists")

	// Write errors

	// ErrConditionalWriteFailed if a conditional put lost a race with a
	// concurrent write to the same key.
	ErrConditionalWriteFailed = errors.New("conditional write failed due to conflict")

	// Shared errors

	ErrCancelled = errors.New("request has been cancelled")
	ErrNotFound  = errors.New("not found")
)
