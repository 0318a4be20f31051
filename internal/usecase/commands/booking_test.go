//go:build unit

package commands_test

import (
	"sync"
	"testing"
	"time"

	"therapy-booking/internal/domain/availability"
	"therapy-booking/internal/domain/notification"
	"therapy-booking/internal/domain/payment"
	"therapy-booking/internal/domain/session"
	"therapy-booking/internal/domain/user"
	"therapy-booking/internal/pkg/errs"
	"therapy-booking/internal/usecase/commands"
	"therapy-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedPaidIntent stores a COMPLETED, unlinked booking intent for the Wednesday slot at start.
func seedPaidIntent(t *testing.T, f *fixture, start string) *payment.Intent {
	t.Helper()
	date := availability.MustParseDate(wednesday)
	clockStart := availability.MustParseClockTime(start)

	slotID := uuid.New()
	if existing := f.store.Slots(f.therapist.ID); len(existing) > 0 {
		for _, s := range existing {
			if s.Date() == date && s.Start().Equal(clockStart) {
				slotID = s.ID()
			}
		}
	}
	f.store.AddSlot(availability.ReconstructSlot(slotID, f.therapist.ID, date, clockStart, clockStart.AddMinutes(60), false))

	intent := builder.NewIntentBuilder(f.patient.ID, f.patientUser.UserID).With(func(b *builder.IntentBuilder) {
		b.Status = payment.StatusCompleted
		b.Booking = &payment.PendingBooking{
			TherapistID:     f.therapist.ID,
			Date:            date,
			Start:           clockStart,
			SlotID:          slotID,
			SessionType:     "individual",
			DurationMinutes: 60,
		}
	}).BuildDomain()
	f.store.AddPayment(intent)
	return intent
}

func TestCompleteBooking_ConcurrentCallsCreateOneSession(t *testing.T) {
	f := newFixture(t)
	intent := seedPaidIntent(t, f, "10:00")

	const workers = 8
	var (
		wg      sync.WaitGroup
		results = make([]*commands.BookingResult, workers)
		errList = make([]error, workers)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errList[i] = f.booking.CompleteBooking(f.ctx, f.patientUser, intent.OrderID())
		}(i)
	}
	wg.Wait()

	fresh := 0
	sessionIDs := map[uuid.UUID]bool{}
	for i := 0; i < workers; i++ {
		require.NoError(t, errList[i])
		if !results[i].Replayed {
			fresh++
		}
		sessionIDs[results[i].Session.ID()] = true
	}
	assert.Equal(t, 1, fresh)
	assert.Len(t, sessionIDs, 1)
	assert.Len(t, f.store.Sessions(), 1)
	assert.Equal(t, 1, f.metrics.claimsWon)
}

func TestCompleteBooking_TwoPaymentsOneSlot(t *testing.T) {
	f := newFixture(t)
	first := seedPaidIntent(t, f, "10:00")
	second := seedPaidIntent(t, f, "10:00")
	require.Equal(t, first.Booking().SlotID, second.Booking().SlotID)

	var (
		wg   sync.WaitGroup
		errA error
		errB error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errA = f.booking.CompleteBooking(f.ctx, user.SystemPrincipal(), first.OrderID())
	}()
	go func() {
		defer wg.Done()
		_, errB = f.booking.CompleteBooking(f.ctx, user.SystemPrincipal(), second.OrderID())
	}()
	wg.Wait()

	lost := errA
	if errA == nil {
		lost = errB
	} else {
		require.NoError(t, errB)
	}
	require.Error(t, lost)
	assert.True(t, errs.Is(lost, errs.ErrSlotAlreadyBooked), "got %v", lost)

	assert.Len(t, f.store.Sessions(), 1)
	assert.Equal(t, 1, f.metrics.claimsWon)
	assert.Equal(t, 1, f.metrics.claimsLost)

	linked := 0
	for _, orderID := range []string{first.OrderID(), second.OrderID()} {
		p, _ := f.store.Payment(orderID)
		assert.Equal(t, payment.StatusCompleted, p.Status())
		if p.IsLinked() {
			linked++
		}
	}
	assert.Equal(t, 1, linked, "the losing payment stays completed and unlinked")
}

func TestCompleteBooking_ClientReplayAfterCallback(t *testing.T) {
	f := newFixture(t)
	intent, s := f.paidSession(t, "10:00")

	res, err := f.booking.CompleteBooking(f.ctx, f.patientUser, intent.OrderID())
	require.NoError(t, err)
	assert.True(t, res.Replayed)
	assert.Equal(t, s.ID(), res.Session.ID())
}

func TestCompleteBooking_Rejections(t *testing.T) {
	cases := []struct {
		name  string
		setup func(t *testing.T, f *fixture) (user.Principal, string)
		errIs error
	}{
		{
			name: "unknown order",
			setup: func(_ *testing.T, f *fixture) (user.Principal, string) {
				return f.patientUser, "ORD-20260302-00000000"
			},
			errIs: errs.ErrNotFound,
		},
		{
			name: "payment still pending",
			setup: func(t *testing.T, f *fixture) (user.Principal, string) {
				return f.patientUser, f.initiate(t, "10:00").OrderID()
			},
			errIs: errs.ErrNotCompleted,
		},
		{
			name: "someone else's payment",
			setup: func(t *testing.T, f *fixture) (user.Principal, string) {
				return f.strangerUser, seedPaidIntent(t, f, "10:00").OrderID()
			},
			errIs: errs.ErrForbidden,
		},
		{
			name: "reschedule fee is not a booking",
			setup: func(_ *testing.T, f *fixture) (user.Principal, string) {
				sessionID := uuid.New()
				fee := builder.NewIntentBuilder(f.patient.ID, f.patientUser.UserID).With(func(b *builder.IntentBuilder) {
					b.Purpose = payment.PurposeRescheduleFee
					b.Status = payment.StatusCompleted
					b.SessionID = &sessionID
					b.AmountCents = feeCents
				}).BuildDomain()
				f.store.AddPayment(fee)
				return f.patientUser, fee.OrderID()
			},
			errIs: errs.ErrValidation,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			caller, orderID := tc.setup(t, f)

			_, err := f.booking.CompleteBooking(f.ctx, caller, orderID)
			require.Error(t, err)
			assert.True(t, errs.Is(err, tc.errIs), "expected %v, got %v", tc.errIs, err)
			assert.Empty(t, f.store.Sessions())
		})
	}
}

func TestRequestSession_TherapistBooksOwnPatient(t *testing.T) {
	f := newFixture(t)

	s, err := f.booking.RequestSession(f.ctx, f.therapistUser, commands.RequestSessionInput{
		Channel:     session.ChannelTherapist,
		PatientID:   f.patient.ID,
		TherapistID: f.therapist.ID,
		Date:        wednesday,
		StartTime:   "11:00",
		SessionType: "family",
	})
	require.NoError(t, err)
	assert.Equal(t, session.StatusScheduled, s.Status())
	assert.Equal(t, rateCents, s.BookedRateCents())
	assert.Equal(t, "family", s.SessionType())
	assert.True(t, f.slot(t, "11:00").IsBooked())

	_, err = f.payments.InitiatePayment(f.ctx, f.patientUser, f.bookingInput("11:00"), uuid.New())
	assert.True(t, errs.Is(err, errs.ErrSlotUnavailable), "got %v", err)
}

func TestRequestSession_ZeroRateSlot(t *testing.T) {
	f := newFixture(t)
	thursday := time.Thursday
	rule, err := builder.NewRuleBuilder(f.therapist.ID).With(func(b *builder.RuleBuilder) {
		b.DayOfWeek = &thursday
		b.Start, b.End = "14:00", "15:00"
		b.ZeroRate = true
	}).BuildDomain()
	require.NoError(t, err)
	f.store.AddRule(rule)

	in := commands.RequestSessionInput{
		Channel:     session.ChannelGuardian,
		PatientID:   f.patient.ID,
		TherapistID: f.therapist.ID,
		Date:        "2026-03-05",
		StartTime:   "14:00",
	}
	s, err := f.booking.RequestSession(f.ctx, f.guardianUser, in)
	require.NoError(t, err)
	assert.Equal(t, session.StatusRequested, s.Status())
	assert.Zero(t, s.BookedRateCents())
	assert.Equal(t, "individual", s.SessionType())

	var requested []notification.Notification
	for _, n := range f.store.Notifications() {
		if n.Type == notification.TypeSessionRequested {
			requested = append(requested, n)
		}
	}
	require.Len(t, requested, 1)
	assert.Equal(t, f.therapistUser.UserID, requested[0].ReceiverID)

	approved, err := f.sessions.ApproveSession(f.ctx, f.therapistUser, s.ID())
	require.NoError(t, err)
	assert.Equal(t, session.StatusApproved, approved.Status())
}

func TestRequestSession_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		caller func(f *fixture) user.Principal
		mutate func(in *commands.RequestSessionInput)
		errIs  error
	}{
		{
			name:   "paid slot through the patient channel",
			caller: func(f *fixture) user.Principal { return f.patientUser },
			mutate: func(in *commands.RequestSessionInput) { in.Channel = session.ChannelPatient },
			errIs:  errs.ErrPaymentRequired,
		},
		{
			name:   "patient using the therapist channel",
			caller: func(f *fixture) user.Principal { return f.patientUser },
			errIs:  errs.ErrForbidden,
		},
		{
			name:   "another therapist",
			caller: func(_ *fixture) user.Principal { return user.NewPrincipal(uuid.New(), user.RoleTherapist) },
			errIs:  errs.ErrForbidden,
		},
		{
			name:   "guardian of someone else",
			caller: func(_ *fixture) user.Principal { return user.NewPrincipal(uuid.New(), user.RoleGuardian) },
			mutate: func(in *commands.RequestSessionInput) { in.Channel = session.ChannelGuardian },
			errIs:  errs.ErrForbidden,
		},
		{
			name:   "unknown channel",
			caller: func(f *fixture) user.Principal { return f.therapistUser },
			mutate: func(in *commands.RequestSessionInput) { in.Channel = "" },
			errIs:  errs.ErrValidation,
		},
		{
			name:   "start not offered",
			caller: func(f *fixture) user.Principal { return f.therapistUser },
			mutate: func(in *commands.RequestSessionInput) { in.StartTime = "12:00" },
			errIs:  errs.ErrSlotUnavailable,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			in := commands.RequestSessionInput{
				Channel:     session.ChannelTherapist,
				PatientID:   f.patient.ID,
				TherapistID: f.therapist.ID,
				Date:        wednesday,
				StartTime:   "09:00",
			}
			if tc.mutate != nil {
				tc.mutate(&in)
			}

			_, err := f.booking.RequestSession(f.ctx, tc.caller(f), in)
			require.Error(t, err)
			assert.True(t, errs.Is(err, tc.errIs), "expected %v, got %v", tc.errIs, err)
		})
	}
}
