package shared

import (
	"context"

	"therapy-booking/internal/domain/session"
	"therapy-booking/internal/domain/user"
	"therapy-booking/internal/pkg/errs"
)

// CanActForPatient reports whether p may act on behalf of the patient.
func CanActForPatient(p user.Principal, patient *PatientSnapshot) bool {
	switch {
	case p.IsPrivileged():
		return true
	case p.IsPatient():
		return patient.UserID == p.UserID
	case p.IsGuardian():
		return patient.HasGuardian(p.UserID)
	default:
		return false
	}
}

// CanActForTherapist reports whether p manages the therapist's calendar.
func CanActForTherapist(p user.Principal, therapist *TherapistSnapshot) bool {
	return p.IsPrivileged() || (p.IsTherapist() && therapist.UserID == p.UserID)
}

// ResolveParties loads both sides of s and checks that p belongs to one of them.
// Lookup failures are returned as they come from storage.
func ResolveParties(ctx context.Context, reads CommandReads, p user.Principal, s *session.Session) (*SessionParties, error) {
	patient, err := reads.PatientByID(ctx, s.PatientID())
	if err != nil {
		return nil, err
	}
	therapist, err := reads.TherapistByID(ctx, s.TherapistID())
	if err != nil {
		return nil, err
	}

	parties := &SessionParties{Patient: patient, Therapist: therapist}
	switch {
	case p.IsPatient() || p.IsGuardian():
		if !CanActForPatient(p, patient) {
			return nil, errs.Mark(errs.New("caller is not on the patient side of this session"), errs.ErrForbidden)
		}
	case p.IsTherapist():
		if !CanActForTherapist(p, therapist) {
			return nil, errs.Mark(errs.New("caller is not this session's therapist"), errs.ErrForbidden)
		}
		parties.Provider = true
	case p.IsPrivileged():
		parties.Provider = true
	default:
		return nil, errs.Mark(errs.New("caller has no role on this session"), errs.ErrForbidden)
	}
	return parties, nil
}
