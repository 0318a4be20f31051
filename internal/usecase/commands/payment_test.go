//go:build unit

package commands_test

import (
	"errors"
	"testing"
	"time"

	"therapy-booking/internal/domain/notification"
	"therapy-booking/internal/domain/payment"
	"therapy-booking/internal/domain/session"
	"therapy-booking/internal/infra/gateway"
	"therapy-booking/internal/pkg/errs"
	"therapy-booking/internal/usecase/commands"
	"therapy-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitiatePayment_CreatesPendingIntent(t *testing.T) {
	f := newFixture(t)
	key := uuid.New()

	res, err := f.payments.InitiatePayment(f.ctx, f.patientUser, f.bookingInput("10:00"), key)
	require.NoError(t, err)

	intent := res.Payment
	assert.False(t, res.Replayed)
	assert.Equal(t, payment.StatusPending, intent.Status())
	assert.Equal(t, payment.PurposeBooking, intent.Purpose())
	assert.Equal(t, rateCents, intent.AmountCents())
	assert.Equal(t, "LKR", intent.Currency())
	assert.True(t, payment.ValidOrderID(intent.OrderID()))
	require.NotNil(t, intent.Booking())
	assert.Equal(t, f.therapist.ID, intent.Booking().TherapistID)
	assert.Equal(t, "individual", intent.Booking().SessionType)
	assert.Equal(t, 60, intent.Booking().DurationMinutes)

	slot := f.slot(t, "10:00")
	assert.Equal(t, slot.ID(), intent.Booking().SlotID)
	assert.False(t, slot.IsBooked(), "a pending intent must not hold the slot")

	assert.Equal(t, "5000.00", res.Checkout.Amount)
	assert.Equal(t, intent.OrderID(), res.Checkout.OrderID)
	assert.Equal(t, f.gateway.CheckoutHash(intent.OrderID(), "5000.00", "LKR"), res.Checkout.Hash)
	assert.Equal(t, "Nimal", res.Checkout.FirstName)
	assert.Equal(t, "Silva", res.Checkout.LastName)
	assert.Equal(t, "BOOKING", res.Checkout.Custom1)
	assert.Equal(t, f.patient.ID.String(), res.Checkout.Custom2)

	rec, ok := f.store.IdempotencyRecord(key, f.patientUser.UserID)
	require.True(t, ok)
	assert.Equal(t, shared.IdempotencyCompleted, rec.Status)
	require.NotNil(t, rec.ResultOrderID)
	assert.Equal(t, intent.OrderID(), *rec.ResultOrderID)
}

func TestInitiatePayment_GuardianBooksForPatient(t *testing.T) {
	f := newFixture(t)
	in := f.bookingInput("09:00")
	in.Channel = session.ChannelGuardian

	res, err := f.payments.InitiatePayment(f.ctx, f.guardianUser, in, uuid.New())
	require.NoError(t, err)
	assert.True(t, res.Payment.PaidBy(f.guardianUser.UserID))
	assert.Equal(t, f.patient.ID, res.Payment.PatientID())
}

func TestInitiatePayment_IdempotentReplay(t *testing.T) {
	f := newFixture(t)
	key := uuid.New()
	in := f.bookingInput("10:00")

	first, err := f.payments.InitiatePayment(f.ctx, f.patientUser, in, key)
	require.NoError(t, err)
	second, err := f.payments.InitiatePayment(f.ctx, f.patientUser, in, key)
	require.NoError(t, err)

	assert.True(t, second.Replayed)
	assert.Equal(t, first.Payment.OrderID(), second.Payment.OrderID())
	assert.Equal(t, first.Checkout.Hash, second.Checkout.Hash)

	in.StartTime = "11:00"
	_, err = f.payments.InitiatePayment(f.ctx, f.patientUser, in, key)
	assert.True(t, errs.Is(err, errs.ErrIdempotencyConflict), "got %v", err)
}

func TestInitiatePayment_ReleasesKeyOnFailure(t *testing.T) {
	f := newFixture(t)
	key := uuid.New()
	in := f.bookingInput("10:00")

	f.store.FailNext("payments.create", errors.New("connection reset"))
	_, err := f.payments.InitiatePayment(f.ctx, f.patientUser, in, key)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrDatabaseOperationFailed), "got %v", err)

	_, ok := f.store.IdempotencyRecord(key, f.patientUser.UserID)
	assert.False(t, ok, "failed request must not leave the key in processing")

	res, err := f.payments.InitiatePayment(f.ctx, f.patientUser, in, key)
	require.NoError(t, err)
	assert.False(t, res.Replayed)
}

func TestInitiatePayment_ExpiredKeyIsReclaimed(t *testing.T) {
	f := newFixture(t)
	key := uuid.New()

	_, err := f.payments.InitiatePayment(f.ctx, f.patientUser, f.bookingInput("10:00"), key)
	require.NoError(t, err)

	f.clock.Add(25 * time.Hour)
	res, err := f.payments.InitiatePayment(f.ctx, f.patientUser, f.bookingInput("11:00"), key)
	require.NoError(t, err)
	assert.False(t, res.Replayed)
	assert.Equal(t, "11:00", res.Payment.Booking().Start.String())
}

func TestInitiatePayment_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(f *fixture, in *commands.InitiatePaymentInput)
		before  func(f *fixture)
		noKey   bool
		asOther bool
		errIs   error
	}{
		{name: "missing idempotency key", noKey: true, errIs: errs.ErrIdempotencyKeyRequired},
		{name: "amount does not match rate", mutate: func(_ *fixture, in *commands.InitiatePaymentInput) { in.AmountCents = 100 }, errIs: errs.ErrValidation},
		{name: "zero amount", mutate: func(_ *fixture, in *commands.InitiatePaymentInput) { in.AmountCents = 0 }, errIs: errs.ErrValidation},
		{name: "malformed date", mutate: func(_ *fixture, in *commands.InitiatePaymentInput) { in.Date = "04/03/2026" }, errIs: errs.ErrValidation},
		{name: "malformed time", mutate: func(_ *fixture, in *commands.InitiatePaymentInput) { in.StartTime = "9am" }, errIs: errs.ErrValidation},
		{name: "start not offered", mutate: func(_ *fixture, in *commands.InitiatePaymentInput) { in.StartTime = "09:30" }, errIs: errs.ErrSlotUnavailable},
		{name: "day without rules", mutate: func(_ *fixture, in *commands.InitiatePaymentInput) { in.Date = "2026-03-05" }, errIs: errs.ErrSlotUnavailable},
		{name: "inside lead time", before: func(f *fixture) { f.clock.Set(time.Date(2026, 3, 4, 7, 30, 0, 0, time.UTC)) }, errIs: errs.ErrSlotUnavailable},
		{name: "unknown therapist", mutate: func(_ *fixture, in *commands.InitiatePaymentInput) { in.TherapistID = uuid.New() }, errIs: errs.ErrNotFound},
		{name: "unknown patient", mutate: func(_ *fixture, in *commands.InitiatePaymentInput) { in.PatientID = uuid.New() }, errIs: errs.ErrNotFound},
		{name: "caller is not the patient", asOther: true, errIs: errs.ErrForbidden},
		{name: "guardian channel from a patient", mutate: func(_ *fixture, in *commands.InitiatePaymentInput) { in.Channel = session.ChannelGuardian }, errIs: errs.ErrForbidden},
		{name: "therapist channel", mutate: func(_ *fixture, in *commands.InitiatePaymentInput) { in.Channel = session.ChannelTherapist }, errIs: errs.ErrValidation},
		{name: "unknown channel", mutate: func(_ *fixture, in *commands.InitiatePaymentInput) { in.Channel = "WALK_IN" }, errIs: errs.ErrValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			in := f.bookingInput("10:00")
			if tc.mutate != nil {
				tc.mutate(f, &in)
			}
			if tc.before != nil {
				tc.before(f)
			}
			key := uuid.New()
			if tc.noKey {
				key = uuid.Nil
			}
			caller := f.patientUser
			if tc.asOther {
				caller = f.strangerUser
			}

			_, err := f.payments.InitiatePayment(f.ctx, caller, in, key)
			require.Error(t, err)
			assert.True(t, errs.Is(err, tc.errIs), "expected %v, got %v", tc.errIs, err)
		})
	}
}

func TestConfirmPayment_MaterializesBooking(t *testing.T) {
	f := newFixture(t)
	intent := f.initiate(t, "10:00")

	res, err := f.payments.ConfirmPayment(f.ctx, f.notify(intent, gateway.StatusCodeSuccess))
	require.NoError(t, err)
	require.NotNil(t, res.Session)
	assert.False(t, res.Conflict)

	s := res.Session
	assert.Equal(t, session.StatusScheduled, s.Status())
	assert.Equal(t, time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC), s.ScheduledAt())
	assert.Equal(t, rateCents, s.BookedRateCents())
	assert.Equal(t, f.patientUser.UserID, s.BookedByUserID())
	require.NotNil(t, s.SlotID())
	assert.Equal(t, intent.Booking().SlotID, *s.SlotID())
	assert.True(t, f.slot(t, "10:00").IsBooked())

	stored, ok := f.store.Payment(intent.OrderID())
	require.True(t, ok)
	assert.Equal(t, payment.StatusCompleted, stored.Status())
	require.NotNil(t, stored.SessionID())
	assert.Equal(t, s.ID(), *stored.SessionID())
	assert.Equal(t, "VISA", stored.PaymentMethod())

	types := map[notification.Type][]uuid.UUID{}
	for _, n := range f.store.Notifications() {
		types[n.Type] = append(types[n.Type], n.ReceiverID)
	}
	assert.ElementsMatch(t, []uuid.UUID{f.patientUser.UserID}, types[notification.TypePaymentReceived])
	assert.ElementsMatch(t, []uuid.UUID{f.adminUser.UserID}, types[notification.TypePaymentReceivedAdmin])
	assert.ElementsMatch(t, []uuid.UUID{f.therapistUser.UserID, f.patientUser.UserID, f.guardianUser.UserID}, types[notification.TypeSessionBooked])
	assert.Len(t, f.store.Jobs(), len(f.store.Notifications()))

	assert.Equal(t, []string{"COMPLETED"}, f.metrics.callbacks)
	assert.Equal(t, 1, f.metrics.claimsWon)
}

func TestConfirmPayment_DuplicateCallbackIsNoop(t *testing.T) {
	f := newFixture(t)
	intent := f.initiate(t, "10:00")
	n := f.notify(intent, gateway.StatusCodeSuccess)

	first, err := f.payments.ConfirmPayment(f.ctx, n)
	require.NoError(t, err)
	notified := len(f.store.Notifications())

	second, err := f.payments.ConfirmPayment(f.ctx, n)
	require.NoError(t, err)
	require.NotNil(t, second.Session, "replayed callback returns the linked session")
	assert.Equal(t, first.Session.ID(), second.Session.ID())
	assert.Equal(t, first.Session.Status(), second.Session.Status())
	assert.Equal(t, payment.StatusCompleted, second.Payment.Status())
	assert.Equal(t, first.Session.ID(), *second.Payment.SessionID())
	assert.Len(t, f.store.Sessions(), 1)
	assert.Len(t, f.store.Notifications(), notified)
}

func TestConfirmPayment_RejectsBadSignature(t *testing.T) {
	f := newFixture(t)
	intent := f.initiate(t, "10:00")

	n := f.notify(intent, gateway.StatusCodeSuccess)
	n.Signature = "0123456789ABCDEF0123456789ABCDEF"
	_, err := f.payments.ConfirmPayment(f.ctx, n)
	assert.True(t, errs.Is(err, errs.ErrInvalidSignature), "got %v", err)

	n = f.notify(intent, gateway.StatusCodeSuccess)
	n.MerchantID = "999999"
	n.Signature = f.gateway.NotifySignature(n)
	_, err = f.payments.ConfirmPayment(f.ctx, n)
	assert.True(t, errs.Is(err, errs.ErrInvalidSignature), "got %v", err)

	stored, _ := f.store.Payment(intent.OrderID())
	assert.Equal(t, payment.StatusPending, stored.Status())
	assert.Equal(t, 2, f.metrics.sigFails)
	assert.Empty(t, f.store.Sessions())
}

func TestConfirmPayment_RejectsAmountMismatch(t *testing.T) {
	f := newFixture(t)
	intent := f.initiate(t, "10:00")

	n := f.notify(intent, gateway.StatusCodeSuccess)
	n.Amount = "50.00"
	n.Signature = f.gateway.NotifySignature(n)
	_, err := f.payments.ConfirmPayment(f.ctx, n)
	assert.True(t, errs.Is(err, errs.ErrValidation), "got %v", err)

	stored, _ := f.store.Payment(intent.OrderID())
	assert.Equal(t, payment.StatusPending, stored.Status())
}

func TestConfirmPayment_UnknownOrder(t *testing.T) {
	f := newFixture(t)
	intent := f.initiate(t, "10:00")

	n := f.notify(intent, gateway.StatusCodeSuccess)
	n.OrderID = "ORD-20260302-DEADBEEF"
	n.Signature = f.gateway.NotifySignature(n)
	_, err := f.payments.ConfirmPayment(f.ctx, n)
	assert.True(t, errs.Is(err, errs.ErrNotFound), "got %v", err)
}

func TestConfirmPayment_FailureIsTerminal(t *testing.T) {
	f := newFixture(t)
	intent := f.initiate(t, "10:00")

	res, err := f.payments.ConfirmPayment(f.ctx, f.notify(intent, gateway.StatusCodeFailed))
	require.NoError(t, err)
	assert.Equal(t, payment.StatusFailed, res.Payment.Status())
	assert.Nil(t, res.Session)

	_, err = f.payments.ConfirmPayment(f.ctx, f.notify(intent, gateway.StatusCodeSuccess))
	assert.True(t, errs.Is(err, errs.ErrInvalidState), "got %v", err)
	assert.Empty(t, f.store.Sessions())
	assert.False(t, f.slot(t, "10:00").IsBooked())
}

func TestConfirmPayment_ChargebackCancels(t *testing.T) {
	f := newFixture(t)
	intent := f.initiate(t, "10:00")

	res, err := f.payments.ConfirmPayment(f.ctx, f.notify(intent, gateway.StatusCodeChargeback))
	require.NoError(t, err)
	assert.Equal(t, payment.StatusCancelled, res.Payment.Status())
}

func TestConfirmPayment_SlotLostAfterPayment(t *testing.T) {
	f := newFixture(t)
	first := f.initiate(t, "10:00")
	second := f.initiate(t, "10:00")

	won, err := f.payments.ConfirmPayment(f.ctx, f.notify(first, gateway.StatusCodeSuccess))
	require.NoError(t, err)
	require.NotNil(t, won.Session)

	lost, err := f.payments.ConfirmPayment(f.ctx, f.notify(second, gateway.StatusCodeSuccess))
	require.NoError(t, err, "the callback is still acknowledged")
	assert.True(t, lost.Conflict)
	assert.Nil(t, lost.Session)

	stored, _ := f.store.Payment(second.OrderID())
	assert.Equal(t, payment.StatusCompleted, stored.Status())
	assert.False(t, stored.IsLinked())
	assert.Len(t, f.store.Sessions(), 1)

	var urgent []notification.Notification
	for _, n := range f.store.Notifications() {
		if n.Type == notification.TypeBookingConflict && n.ReceiverID == f.adminUser.UserID {
			urgent = append(urgent, n)
		}
	}
	require.Len(t, urgent, 1)
	assert.True(t, urgent[0].IsUrgent)
	assert.Equal(t, 1, f.metrics.claimsLost)
}

func TestInitiateRescheduleFee(t *testing.T) {
	f := newFixture(t)
	_, s := f.paidSession(t, "10:00")

	res, err := f.payments.InitiateRescheduleFee(f.ctx, f.patientUser, s.ID(), shared.Customer{})
	require.NoError(t, err)
	assert.Equal(t, payment.PurposeRescheduleFee, res.Payment.Purpose())
	assert.Equal(t, feeCents, res.Payment.AmountCents())
	require.NotNil(t, res.Payment.SessionID())
	assert.Equal(t, s.ID(), *res.Payment.SessionID())
	assert.Equal(t, "500.00", res.Checkout.Amount)

	_, err = f.payments.InitiateRescheduleFee(f.ctx, f.therapistUser, s.ID(), shared.Customer{})
	assert.True(t, errs.Is(err, errs.ErrForbidden), "got %v", err)

	f.clock.Set(time.Date(2026, 2, 20, 8, 0, 0, 0, time.UTC))
	_, err = f.payments.InitiateRescheduleFee(f.ctx, f.patientUser, s.ID(), shared.Customer{})
	assert.True(t, errs.Is(err, errs.ErrValidation), "no fee is due outside the window: %v", err)
}
