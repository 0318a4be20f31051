// Package memstore is an in-memory shared.UnitOfWork for use case tests.
// Transactions are fully serialized and roll back on error.
package memstore

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"therapy-booking/internal/domain/availability"
	"therapy-booking/internal/domain/notification"
	"therapy-booking/internal/domain/payment"
	"therapy-booking/internal/domain/refund"
	"therapy-booking/internal/domain/session"
	"therapy-booking/internal/infra"
	sqlc "therapy-booking/internal/infra/sqlc/generated"
	"therapy-booking/internal/pkg/clock"
	"therapy-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Job struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

type idemKey struct {
	key    uuid.UUID
	userID uuid.UUID
}

type state struct {
	therapists    map[uuid.UUID]shared.TherapistSnapshot
	patients      map[uuid.UUID]shared.PatientSnapshot
	rules         map[uuid.UUID][]availability.Rule
	slots         map[uuid.UUID]availability.Slot
	sessions      map[uuid.UUID]session.Session
	history       []session.RescheduleEntry
	payments      map[uuid.UUID]payment.Intent
	paymentMeta   map[uuid.UUID]map[string]any
	refunds       map[uuid.UUID]refund.CancelRefund
	notifications map[uuid.UUID]notification.Notification
	jobs          []Job
	idem          map[idemKey]shared.IdempotencyRecord
}

func (s state) clone() state {
	rules := make(map[uuid.UUID][]availability.Rule, len(s.rules))
	for k, v := range s.rules {
		rules[k] = slices.Clone(v)
	}
	return state{
		therapists:    maps.Clone(s.therapists),
		patients:      maps.Clone(s.patients),
		rules:         rules,
		slots:         maps.Clone(s.slots),
		sessions:      maps.Clone(s.sessions),
		history:       slices.Clone(s.history),
		payments:      maps.Clone(s.payments),
		paymentMeta:   maps.Clone(s.paymentMeta),
		refunds:       maps.Clone(s.refunds),
		notifications: maps.Clone(s.notifications),
		jobs:          slices.Clone(s.jobs),
		idem:          maps.Clone(s.idem),
	}
}

type Store struct {
	mu       sync.Mutex
	clock    clock.Clock
	st       state
	failures map[string]error
}

var _ shared.UnitOfWork = (*Store)(nil)

func New(clk clock.Clock) *Store {
	return &Store{
		clock: clk,
		st: state{
			therapists:    map[uuid.UUID]shared.TherapistSnapshot{},
			patients:      map[uuid.UUID]shared.PatientSnapshot{},
			rules:         map[uuid.UUID][]availability.Rule{},
			slots:         map[uuid.UUID]availability.Slot{},
			sessions:      map[uuid.UUID]session.Session{},
			payments:      map[uuid.UUID]payment.Intent{},
			paymentMeta:   map[uuid.UUID]map[string]any{},
			refunds:       map[uuid.UUID]refund.CancelRefund{},
			notifications: map[uuid.UUID]notification.Notification{},
			idem:          map[idemKey]shared.IdempotencyRecord{},
		},
		failures: map[string]error{},
	}
}

// FailNext makes the next call to the named operation (e.g. "payments.create") return err.
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

func (s *Store) fail(op string) error {
	err, ok := s.failures[op]
	if !ok {
		return nil
	}
	delete(s.failures, op)
	return err
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(ctx, &tx{s: s}); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

func (s *Store) CommandReads() shared.CommandReads {
	return &reads{s: s, lock: true}
}

// Seeding and inspection helpers. They take the lock themselves.

func (s *Store) AddTherapist(t shared.TherapistSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.therapists[t.ID] = t
}

func (s *Store) AddPatient(p shared.PatientSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.patients[p.ID] = p
}

func (s *Store) AddRule(r *availability.Rule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.rules[r.TherapistID()] = append(s.st.rules[r.TherapistID()], *r)
}

func (s *Store) AddSession(sess *session.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.sessions[sess.ID()] = *sess
}

func (s *Store) AddPayment(i *payment.Intent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.payments[i.ID()] = *i
}

func (s *Store) AddSlot(slot *availability.Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.slots[slot.ID()] = *slot
}

func (s *Store) Sessions() []*session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*session.Session, 0, len(s.st.sessions))
	for _, v := range s.st.sessions {
		c := v
		out = append(out, &c)
	}
	return out
}

func (s *Store) Session(id uuid.UUID) (*session.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.st.sessions[id]
	return &v, ok
}

func (s *Store) Payment(orderID string) (*payment.Intent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.findPayment(orderID)
	return &v, ok
}

func (s *Store) PaymentMetadata(id uuid.UUID) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.st.paymentMeta[id])
}

func (s *Store) Slots(therapistID uuid.UUID) []*availability.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*availability.Slot
	for _, v := range s.st.slots {
		if v.TherapistID() == therapistID {
			c := v
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date() != out[j].Date() {
			return out[i].Date().Before(out[j].Date())
		}
		return out[i].Start().Before(out[j].Start())
	})
	return out
}

func (s *Store) Rules(therapistID uuid.UUID) []availability.Rule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.st.rules[therapistID])
}

func (s *Store) History(sessionID uuid.UUID) []session.RescheduleEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []session.RescheduleEntry
	for _, h := range s.st.history {
		if h.SessionID == sessionID {
			out = append(out, h)
		}
	}
	return out
}

func (s *Store) Refunds() []*refund.CancelRefund {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*refund.CancelRefund, 0, len(s.st.refunds))
	for _, v := range s.st.refunds {
		c := v
		out = append(out, &c)
	}
	return out
}

// Notifications returns every stored notification ordered by type then receiver.
func (s *Store) Notifications() []notification.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := slices.Collect(maps.Values(s.st.notifications))
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].ReceiverID.String() < out[j].ReceiverID.String()
	})
	return out
}

func (s *Store) Jobs() []Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.st.jobs)
}

func (s *Store) IdempotencyRecord(key, userID uuid.UUID) (shared.IdempotencyRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.st.idem[idemKey{key, userID}]
	return rec, ok
}

func (s *Store) findPayment(orderID string) (payment.Intent, bool) {
	for _, v := range s.st.payments {
		if v.OrderID() == orderID {
			return v, true
		}
	}
	return payment.Intent{}, false
}

func notFound(what string) error {
	return infra.WrapRepoErr(what+" not found", pgx.ErrNoRows)
}

type tx struct {
	s *Store
}

func (t *tx) Availability() shared.AvailabilityRepository { return availabilityRepo{t.s} }
func (t *tx) Slots() shared.SlotRepository                { return slotRepo{t.s} }
func (t *tx) Sessions() shared.SessionRepository          { return sessionRepo{t.s} }
func (t *tx) Payments() shared.PaymentRepository          { return paymentRepo{t.s} }
func (t *tx) Refunds() shared.RefundRepository            { return refundRepo{t.s} }
func (t *tx) Notifications() shared.NotificationRepository {
	return notificationRepo{t.s}
}
func (t *tx) Idempotency() shared.IdempotencyRepository { return idempotencyRepo{t.s} }
func (t *tx) Reads() shared.CommandReads                { return &reads{s: t.s} }
func (t *tx) DB() sqlc.DBTX                             { return nil }
