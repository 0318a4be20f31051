package memstore

import (
	"context"
	"time"

	"therapy-booking/internal/domain/availability"
	"therapy-booking/internal/domain/payment"
	"therapy-booking/internal/domain/session"
	"therapy-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// reads serves CommandReads. Outside a transaction every call takes the store lock.
type reads struct {
	s    *Store
	lock bool
}

func (r *reads) guard() func() {
	if !r.lock {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *reads) RulesByTherapist(_ context.Context, therapistID uuid.UUID) ([]*availability.Rule, error) {
	defer r.guard()()
	if err := r.s.fail("reads.rules"); err != nil {
		return nil, err
	}
	stored := r.s.st.rules[therapistID]
	out := make([]*availability.Rule, 0, len(stored))
	for i := range stored {
		c := stored[i]
		out = append(out, &c)
	}
	return out, nil
}

func (r *reads) BookedStarts(_ context.Context, therapistID uuid.UUID, date availability.Date, loc *time.Location) ([]availability.ClockTime, error) {
	defer r.guard()()
	var out []availability.ClockTime
	for _, v := range r.s.st.slots {
		if v.TherapistID() == therapistID && v.Date() == date && v.IsBooked() {
			out = append(out, v.Start())
		}
	}
	from, to := date.Bounds(loc)
	for _, v := range r.s.st.sessions {
		at := v.ScheduledAt()
		if v.TherapistID() != therapistID || v.Status() == session.StatusCancelled {
			continue
		}
		if !at.Before(from) && at.Before(to) {
			out = append(out, availability.ClockTimeOf(at, loc))
		}
	}
	return out, nil
}

func (r *reads) TherapistByID(_ context.Context, id uuid.UUID) (*shared.TherapistSnapshot, error) {
	defer r.guard()()
	v, ok := r.s.st.therapists[id]
	if !ok {
		return nil, notFound("therapist")
	}
	return &v, nil
}

func (r *reads) TherapistByUserID(_ context.Context, userID uuid.UUID) (*shared.TherapistSnapshot, error) {
	defer r.guard()()
	for _, v := range r.s.st.therapists {
		if v.UserID == userID {
			return &v, nil
		}
	}
	return nil, notFound("therapist")
}

func (r *reads) PatientByID(_ context.Context, id uuid.UUID) (*shared.PatientSnapshot, error) {
	defer r.guard()()
	v, ok := r.s.st.patients[id]
	if !ok {
		return nil, notFound("patient")
	}
	return &v, nil
}

func (r *reads) PatientByUserID(_ context.Context, userID uuid.UUID) (*shared.PatientSnapshot, error) {
	defer r.guard()()
	for _, v := range r.s.st.patients {
		if v.UserID == userID {
			return &v, nil
		}
	}
	return nil, notFound("patient")
}

func (r *reads) PaymentByOrderID(_ context.Context, orderID string) (*payment.Intent, error) {
	defer r.guard()()
	v, ok := r.s.findPayment(orderID)
	if !ok {
		return nil, notFound("payment")
	}
	return &v, nil
}

func (r *reads) BookingPaymentForSession(_ context.Context, sessionID uuid.UUID) (*payment.Intent, error) {
	defer r.guard()()
	return bookingPaymentForSession(r.s, sessionID)
}

func (r *reads) SessionByID(_ context.Context, id uuid.UUID) (*session.Session, error) {
	defer r.guard()()
	v, ok := r.s.st.sessions[id]
	if !ok {
		return nil, notFound("session")
	}
	return &v, nil
}

func (r *reads) SessionHistory(_ context.Context, sessionID uuid.UUID) ([]session.RescheduleEntry, error) {
	defer r.guard()()
	var out []session.RescheduleEntry
	for _, h := range r.s.st.history {
		if h.SessionID == sessionID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *reads) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	defer r.guard()()
	rec, ok := r.s.st.idem[idemKey{key, userID}]
	if !ok {
		return nil, notFound("idempotency key")
	}
	return &rec, nil
}
