package shared

import (
	"time"

	"therapy-booking/internal/domain/policy"
	"therapy-booking/internal/domain/user"
)

// CancellationFor picks the refund tiers that apply to whoever is cancelling.
// Therapists and the practice always refund in full.
func CancellationFor(p user.Principal, scheduledAt, now time.Time, paidCents int64) policy.RefundComputation {
	switch {
	case p.IsPatient():
		return policy.PatientCancellation(scheduledAt, now, paidCents)
	case p.IsGuardian():
		return policy.GuardianCancellation(scheduledAt, now, paidCents)
	default:
		return policy.ProviderCancellation(scheduledAt, now, paidCents)
	}
}

// SessionParties are the two sides of a session, resolved for an access check.
type SessionParties struct {
	Patient   *PatientSnapshot
	Therapist *TherapistSnapshot
	// Provider is set when the caller acts for the therapist or the practice.
	Provider bool
}
