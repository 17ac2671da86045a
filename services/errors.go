package services

import "errors"

// Operation errors shared by every service. Routes map these onto HTTP
// statuses; wrap with fmt.Errorf("%w: ...") to attach the user-facing
// detail.
var (
	// ErrForbiddenRole: the caller's role may never perform this operation.
	ErrForbiddenRole = errors.New("forbidden_role")
	// ErrForbiddenAction: the caller's role is fine but this particular
	// entity is not theirs to act on (wrong landlord, non-participant, ...).
	ErrForbiddenAction = errors.New("forbidden_action")
	// ErrInvalidTransition: the entity is not in a state that permits the
	// requested transition (e.g. deciding an already-decided listing).
	ErrInvalidTransition = errors.New("invalid_transition")
	// ErrDuplicateRequest: a store-level uniqueness invariant was violated.
	ErrDuplicateRequest = errors.New("duplicate_request")
	// ErrValidation: malformed or missing required input.
	ErrValidation = errors.New("validation_error")
	// ErrNotFound: the referenced entity does not exist.
	ErrNotFound = errors.New("not_found")
)
