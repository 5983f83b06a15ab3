package models

import "errors"

// Application-wide standard errors
var (
	// ErrPromptNotFound is returned when no prompt matches the requested ID,
	// or when the collection has nothing to sample from.
	ErrPromptNotFound = errors.New("prompt not found")

	// ErrStorageUnavailable is returned when the database is not configured
	// or not reachable.
	ErrStorageUnavailable = errors.New("database not configured")

	// ErrInvalidPromptID is returned when a vote references an identifier
	// that does not parse as an ObjectID.
	ErrInvalidPromptID = errors.New("invalid prompt_id")

	// ErrInvalidInput covers malformed or out-of-range request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternalServer covers unexpected failures.
	ErrInternalServer = errors.New("internal server error")
)
