package memstore

import (
	"context"
	"maps"
	"sort"
	"time"

	"therapy-booking/internal/domain/availability"
	"therapy-booking/internal/domain/notification"
	"therapy-booking/internal/domain/payment"
	"therapy-booking/internal/domain/refund"
	"therapy-booking/internal/domain/session"
	"therapy-booking/internal/infra"
	sqlc "therapy-booking/internal/infra/sqlc/generated"
	"therapy-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type availabilityRepo struct{ s *Store }

func (r availabilityRepo) DeleteByTherapist(_ context.Context, _ sqlc.DBTX, therapistID uuid.UUID) (int64, error) {
	if err := r.s.fail("availability.delete"); err != nil {
		return 0, err
	}
	n := int64(len(r.s.st.rules[therapistID]))
	delete(r.s.st.rules, therapistID)
	return n, nil
}

func (r availabilityRepo) Insert(_ context.Context, _ sqlc.DBTX, rule *availability.Rule) error {
	if err := r.s.fail("availability.insert"); err != nil {
		return err
	}
	r.s.st.rules[rule.TherapistID()] = append(r.s.st.rules[rule.TherapistID()], *rule)
	return nil
}

type slotRepo struct{ s *Store }

func (r slotRepo) Ensure(_ context.Context, _ sqlc.DBTX, therapistID uuid.UUID, date availability.Date, start, end availability.ClockTime) (*availability.Slot, error) {
	if err := r.s.fail("slots.ensure"); err != nil {
		return nil, err
	}
	for _, v := range r.s.st.slots {
		if v.TherapistID() == therapistID && v.Date() == date && v.Start().Equal(start) {
			c := v
			return &c, nil
		}
	}
	slot := availability.ReconstructSlot(uuid.New(), therapistID, date, start, end, false)
	r.s.st.slots[slot.ID()] = *slot
	return slot, nil
}

func (r slotRepo) setBooked(id uuid.UUID, from, to bool) bool {
	v, ok := r.s.st.slots[id]
	if !ok || v.IsBooked() != from {
		return false
	}
	r.s.st.slots[id] = *availability.ReconstructSlot(v.ID(), v.TherapistID(), v.Date(), v.Start(), v.End(), to)
	return true
}

func (r slotRepo) Claim(_ context.Context, _ sqlc.DBTX, slotID uuid.UUID) (bool, error) {
	if err := r.s.fail("slots.claim"); err != nil {
		return false, err
	}
	return r.setBooked(slotID, false, true), nil
}

func (r slotRepo) Release(_ context.Context, _ sqlc.DBTX, slotID uuid.UUID) (bool, error) {
	return r.setBooked(slotID, true, false), nil
}

func (r slotRepo) ReleaseByStart(_ context.Context, _ sqlc.DBTX, therapistID uuid.UUID, date availability.Date, start availability.ClockTime) (bool, error) {
	for id, v := range r.s.st.slots {
		if v.TherapistID() == therapistID && v.Date() == date && v.Start().Equal(start) {
			return r.setBooked(id, true, false), nil
		}
	}
	return false, nil
}

type sessionRepo struct{ s *Store }

func (r sessionRepo) Create(_ context.Context, _ sqlc.DBTX, s *session.Session) error {
	if err := r.s.fail("sessions.create"); err != nil {
		return err
	}
	r.s.st.sessions[s.ID()] = *s
	return nil
}

func (r sessionRepo) GetForUpdate(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (*session.Session, error) {
	v, ok := r.s.st.sessions[id]
	if !ok {
		return nil, notFound("session")
	}
	return &v, nil
}

func (r sessionRepo) UpdateStatus(_ context.Context, _ sqlc.DBTX, s *session.Session, expected session.Status) (bool, error) {
	if err := r.s.fail("sessions.update_status"); err != nil {
		return false, err
	}
	v, ok := r.s.st.sessions[s.ID()]
	if !ok || v.Status() != expected {
		return false, nil
	}
	r.s.st.sessions[s.ID()] = *s
	return true, nil
}

func (r sessionRepo) Reschedule(ctx context.Context, tx sqlc.DBTX, s *session.Session, expected session.Status) (bool, error) {
	return r.UpdateStatus(ctx, tx, s, expected)
}

func (r sessionRepo) InsertHistory(_ context.Context, _ sqlc.DBTX, entry session.RescheduleEntry) error {
	r.s.st.history = append(r.s.st.history, entry)
	return nil
}

type paymentRepo struct{ s *Store }

func (r paymentRepo) Create(_ context.Context, _ sqlc.DBTX, intent *payment.Intent) error {
	if err := r.s.fail("payments.create"); err != nil {
		return err
	}
	if _, ok := r.s.findPayment(intent.OrderID()); ok {
		return infra.WrapRepoErr("duplicate order id", nil, infra.KindDuplicateKey)
	}
	r.s.st.payments[intent.ID()] = *intent
	return nil
}

func (r paymentRepo) GetByOrderIDForUpdate(_ context.Context, _ sqlc.DBTX, orderID string) (*payment.Intent, error) {
	v, ok := r.s.findPayment(orderID)
	if !ok {
		return nil, notFound("payment")
	}
	return &v, nil
}

func (r paymentRepo) UpdatePendingStatus(_ context.Context, _ sqlc.DBTX, intent *payment.Intent) (bool, error) {
	v, ok := r.s.st.payments[intent.ID()]
	if !ok || v.Status() != payment.StatusPending {
		return false, nil
	}
	r.s.st.payments[intent.ID()] = *intent
	return true, nil
}

func (r paymentRepo) LinkSession(_ context.Context, _ sqlc.DBTX, paymentID, sessionID uuid.UUID) (bool, error) {
	if err := r.s.fail("payments.link"); err != nil {
		return false, err
	}
	v, ok := r.s.st.payments[paymentID]
	if !ok || v.IsLinked() {
		return false, nil
	}
	if err := v.LinkSession(sessionID, r.s.clock.Now()); err != nil {
		return false, nil
	}
	r.s.st.payments[paymentID] = v
	return true, nil
}

func (r paymentRepo) BookingPaymentForSession(_ context.Context, _ sqlc.DBTX, sessionID uuid.UUID) (*payment.Intent, error) {
	return bookingPaymentForSession(r.s, sessionID)
}

func (r paymentRepo) RecordRefund(_ context.Context, _ sqlc.DBTX, paymentID uuid.UUID, refund payment.Refund, metadata map[string]any) (bool, error) {
	v, ok := r.s.st.payments[paymentID]
	if !ok || v.Refund() != nil {
		return false, nil
	}
	if err := v.RecordRefund(refund); err != nil {
		return false, nil
	}
	r.s.st.payments[paymentID] = v
	meta := maps.Clone(r.s.st.paymentMeta[paymentID])
	if meta == nil {
		meta = map[string]any{}
	}
	maps.Copy(meta, metadata)
	r.s.st.paymentMeta[paymentID] = meta
	return true, nil
}

func (r paymentRepo) ExpireStale(_ context.Context, _ sqlc.DBTX, createdBefore time.Time) (int64, error) {
	var n int64
	for id, v := range r.s.st.payments {
		if v.Status() != payment.StatusPending || v.Purpose() != payment.PurposeBooking || !v.CreatedAt().Before(createdBefore) {
			continue
		}
		r.s.st.payments[id] = *payment.ReconstructIntent(payment.ReconstructParams{
			ID:               v.ID(),
			OrderID:          v.OrderID(),
			Purpose:          v.Purpose(),
			PatientID:        v.PatientID(),
			PayerUserID:      v.PayerUserID(),
			SessionID:        v.SessionID(),
			AmountCents:      v.AmountCents(),
			Currency:         v.Currency(),
			Status:           payment.StatusExpired,
			Booking:          v.Booking(),
			GatewayPaymentID: v.GatewayPaymentID(),
			PaymentMethod:    v.PaymentMethod(),
			StatusCode:       v.StatusCode(),
			Refund:           v.Refund(),
			CreatedAt:        v.CreatedAt(),
			UpdatedAt:        r.s.clock.Now(),
		})
		n++
	}
	return n, nil
}

func bookingPaymentForSession(s *Store, sessionID uuid.UUID) (*payment.Intent, error) {
	var found []payment.Intent
	for _, v := range s.st.payments {
		if v.Purpose() == payment.PurposeBooking && v.SessionID() != nil && *v.SessionID() == sessionID {
			found = append(found, v)
		}
	}
	if len(found) == 0 {
		return nil, notFound("booking payment")
	}
	sort.Slice(found, func(i, j int) bool { return found[i].CreatedAt().Before(found[j].CreatedAt()) })
	return &found[0], nil
}

type refundRepo struct{ s *Store }

func (r refundRepo) Create(_ context.Context, _ sqlc.DBTX, cr *refund.CancelRefund) error {
	if err := r.s.fail("refunds.create"); err != nil {
		return err
	}
	for _, v := range r.s.st.refunds {
		if v.SessionID() == cr.SessionID() {
			return infra.WrapRepoErr("refund already exists for session", nil, infra.KindDuplicateKey)
		}
	}
	r.s.st.refunds[cr.ID()] = *cr
	return nil
}

func (r refundRepo) GetByID(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (*refund.CancelRefund, error) {
	v, ok := r.s.st.refunds[id]
	if !ok {
		return nil, notFound("refund")
	}
	return &v, nil
}

func (r refundRepo) Complete(_ context.Context, _ sqlc.DBTX, cr *refund.CancelRefund) (bool, error) {
	v, ok := r.s.st.refunds[cr.ID()]
	if !ok || v.Status() != refund.StatusPending {
		return false, nil
	}
	r.s.st.refunds[cr.ID()] = *cr
	return true, nil
}

type notificationRepo struct{ s *Store }

func (r notificationRepo) Create(_ context.Context, _ sqlc.DBTX, n notification.Notification) (uuid.UUID, error) {
	if err := r.s.fail("notifications.create"); err != nil {
		return uuid.Nil, err
	}
	n.ID = uuid.New()
	r.s.st.notifications[n.ID] = n
	return n.ID, nil
}

func (r notificationRepo) Get(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (*notification.Notification, error) {
	v, ok := r.s.st.notifications[id]
	if !ok {
		return nil, notFound("notification")
	}
	return &v, nil
}

func (r notificationRepo) MarkRead(_ context.Context, _ sqlc.DBTX, id, receiverID uuid.UUID, at time.Time) (bool, error) {
	v, ok := r.s.st.notifications[id]
	if !ok || v.ReceiverID != receiverID || v.IsRead {
		return false, nil
	}
	v.IsRead = true
	v.ReadAt = &at
	r.s.st.notifications[id] = v
	return true, nil
}

func (r notificationRepo) CreateJob(_ context.Context, _ sqlc.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	r.s.st.jobs = append(r.s.st.jobs, Job{Kind: kind, Topic: topic, Payload: payload, RunAt: runAt})
	return nil
}

type idempotencyRepo struct{ s *Store }

func (r idempotencyRepo) TryInsert(_ context.Context, _ sqlc.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	k := idemKey{key, userID}
	if rec, ok := r.s.st.idem[k]; ok && !rec.ExpiresAt.Before(r.s.clock.Now()) {
		return false, nil
	}
	r.s.st.idem[k] = shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Endpoint:    endpoint,
		Status:      shared.IdempotencyProcessing,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r idempotencyRepo) UpdateStatusCompleted(_ context.Context, _ sqlc.DBTX, key, userID uuid.UUID, _ string, orderID string) error {
	k := idemKey{key, userID}
	rec, ok := r.s.st.idem[k]
	if !ok {
		return notFound("idempotency key")
	}
	rec.Status = shared.IdempotencyCompleted
	rec.ResultOrderID = &orderID
	r.s.st.idem[k] = rec
	return nil
}

func (r idempotencyRepo) Release(_ context.Context, _ sqlc.DBTX, key, userID uuid.UUID) error {
	k := idemKey{key, userID}
	if rec, ok := r.s.st.idem[k]; ok && rec.Status == shared.IdempotencyProcessing {
		delete(r.s.st.idem, k)
	}
	return nil
}

func (r idempotencyRepo) DeleteExpired(_ context.Context, _ sqlc.DBTX) (int64, error) {
	now := r.s.clock.Now()
	var n int64
	for k, rec := range r.s.st.idem {
		if rec.ExpiresAt.Before(now) {
			delete(r.s.st.idem, k)
			n++
		}
	}
	return n, nil
}
