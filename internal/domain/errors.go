package domain

import "errors"

// Business-rule failures surfaced by the stores and services. Callers match
// with errors.Is; the HTTP layer translates them to status codes.
var (
	// ErrValidation marks bad input (empty sop, missing decision message,
	// team size below current membership). Not retryable as-is.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden marks a caller without rights over the entity.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound covers absent and soft-deleted entities alike.
	ErrNotFound = errors.New("not found")

	// ErrClosed means the project is not accepting applications.
	ErrClosed = errors.New("project closed")

	// ErrCapacity means the team was full at the moment of the write.
	// Safe to retry after re-fetching current state.
	ErrCapacity = errors.New("team is full")

	// ErrDuplicate marks a second application for the same (project,
	// applicant) pair.
	ErrDuplicate = errors.New("already applied")

	// ErrConflict marks an optimistic-concurrency failure or a decision on
	// an already-decided request. Refresh and retry.
	ErrConflict = errors.New("conflict")
)
