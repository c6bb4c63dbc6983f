package workflow

import "errors"

// Error taxonomy for lifecycle operations. Handlers translate these to HTTP
// status codes; services wrap them with context via fmt.Errorf("%w: ...").
var (
	// ErrValidation marks malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")
	// ErrForbidden marks a role or ownership mismatch, or an illegal action
	// on a terminal or non-Pending complaint.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound marks a missing complaint or user.
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition marks a target status not reachable from the
	// current status.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrConflict marks a concurrent write collision; the caller may retry.
	ErrConflict = errors.New("conflict")
)
