package shared

import (
	"fmt"
	"time"

	"therapy-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type TherapistSnapshot struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Name             string
	SessionRateCents int64
}

type PatientSnapshot struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	GuardianUserID *uuid.UUID
	Name           string
	Email          string
	Phone          string
}

// HasGuardian reports whether userID is the patient's registered guardian.
func (p *PatientSnapshot) HasGuardian(userID uuid.UUID) bool {
	return p.GuardianUserID != nil && *p.GuardianUserID == userID
}

type IdempotencyRecord struct {
	Key           uuid.UUID
	UserID        uuid.UUID
	Endpoint      string
	Status        string
	RequestHash   string
	ResultOrderID *string
	ExpiresAt     time.Time
}

const (
	IdempotencyProcessing = "processing"
	IdempotencyCompleted  = "completed"
)

// Replay decides what a repeated request under an already claimed key gets:
// the order id the first request produced, or why the request cannot run.
func (r *IdempotencyRecord) Replay(endpoint, requestHash string) (string, error) {
	if r.Endpoint != "" && r.Endpoint != endpoint {
		return "", errs.Mark(fmt.Errorf("key was used for %s", r.Endpoint), errs.ErrIdempotencyConflict)
	}
	if r.RequestHash != requestHash {
		return "", errs.ErrIdempotencyConflict
	}
	switch r.Status {
	case IdempotencyProcessing:
		return "", errs.ErrIdempotencyInProgress
	case IdempotencyCompleted:
		if r.ResultOrderID == nil || *r.ResultOrderID == "" {
			return "", errs.Mark(errs.New("completed request has no order id"), errs.ErrIdempotencyCheckFailed)
		}
		return *r.ResultOrderID, nil
	default:
		return "", errs.Mark(fmt.Errorf("unknown idempotency status %q", r.Status), errs.ErrIdempotencyCheckFailed)
	}
}
