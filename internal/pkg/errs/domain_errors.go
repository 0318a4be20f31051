package errs

import "errors"

// Stable error kinds shared by the command and query sides. Causes are attached
// with Mark so handlers can branch on errs.Is.
var (
	// Principal errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Lookup errors
	ErrNotFound = errors.New("not found")

	// Slot conflicts
	ErrSlotUnavailable   = errors.New("slot unavailable")
	ErrSlotAlreadyBooked = errors.New("slot already booked")

	// Payment errors
	ErrInvalidSignature = errors.New("invalid gateway signature")
	ErrNotCompleted     = errors.New("payment not completed")
	ErrPaymentRequired  = errors.New("payment required")

	// State machine errors
	ErrInvalidState = errors.New("invalid state")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyConflict    = errors.New("idempotency key reused with a different request")
	ErrIdempotencyCheckFailed = errors.New("idempotency check failed")

	// Validation errors
	ErrValidation = errors.New("validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)

// callerKinds are the kinds a caller can act on. Database and idempotency-check
// failures are not listed and surface as 500s.
var callerKinds = []error{
	ErrUnauthorized,
	ErrForbidden,
	ErrNotFound,
	ErrSlotAlreadyBooked,
	ErrSlotUnavailable,
	ErrIdempotencyConflict,
	ErrIdempotencyInProgress,
	ErrIdempotencyKeyRequired,
	ErrInvalidState,
	ErrPaymentRequired,
	ErrNotCompleted,
	ErrInvalidSignature,
	ErrValidation,
}
