//go:build unit

package commands_test

import (
	"testing"
	"time"

	"therapy-booking/internal/domain/availability"
	"therapy-booking/internal/domain/notification"
	"therapy-booking/internal/domain/payment"
	"therapy-booking/internal/domain/policy"
	"therapy-booking/internal/domain/refund"
	"therapy-booking/internal/domain/session"
	"therapy-booking/internal/domain/user"
	"therapy-booking/internal/infra/gateway"
	"therapy-booking/internal/pkg/errs"
	"therapy-booking/internal/usecase/commands"
	"therapy-booking/internal/usecase/shared"
	"therapy-booking/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bank() commands.BankDetailsInput {
	return commands.BankDetailsInput{
		BankName:      "Commercial Bank",
		BranchName:    "Kandy",
		AccountHolder: "Sunil Silva",
		AccountNumber: "8001234567",
	}
}

func receiversOf(f *fixture, typ notification.Type) []uuid.UUID {
	var out []uuid.UUID
	for _, n := range f.store.Notifications() {
		if n.Type == typ {
			out = append(out, n.ReceiverID)
		}
	}
	return out
}

func TestCancelSession_RefundTiers(t *testing.T) {
	cases := []struct {
		name   string
		caller func(f *fixture) user.Principal
		at     time.Time
		want   policy.RefundComputation
	}{
		{
			name:   "patient with a day's notice",
			caller: func(f *fixture) user.Principal { return f.patientUser },
			at:     fixedNow,
			want:   policy.RefundComputation{Tier: policy.TierFullNotice, AmountCents: 500000, RefundCents: 450000, PlatformCents: 50000, TherapistCents: 0, HoursBefore: 50},
		},
		{
			name:   "patient inside a day",
			caller: func(f *fixture) user.Principal { return f.patientUser },
			at:     time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
			want:   policy.RefundComputation{Tier: policy.TierLateNotice, AmountCents: 500000, RefundCents: 300000, PlatformCents: 50000, TherapistCents: 150000, HoursBefore: 10},
		},
		{
			name:   "patient at exactly 24 hours",
			caller: func(f *fixture) user.Principal { return f.patientUser },
			at:     time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC),
			want:   policy.RefundComputation{Tier: policy.TierFullNotice, AmountCents: 500000, RefundCents: 450000, PlatformCents: 50000, TherapistCents: 0, HoursBefore: 24},
		},
		{
			name:   "patient after the start",
			caller: func(f *fixture) user.Principal { return f.patientUser },
			at:     time.Date(2026, 3, 4, 11, 0, 0, 0, time.UTC),
			want:   policy.RefundComputation{Tier: policy.TierNoRefund, AmountCents: 500000, RefundCents: 0, PlatformCents: 50000, TherapistCents: 450000, HoursBefore: -1},
		},
		{
			name:   "therapist cancels",
			caller: func(f *fixture) user.Principal { return f.therapistUser },
			at:     time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC),
			want:   policy.RefundComputation{Tier: policy.TierProviderCancelled, AmountCents: 500000, RefundCents: 500000, HoursBefore: 1},
		},
		{
			name:   "admin cancels",
			caller: func(f *fixture) user.Principal { return f.adminUser },
			at:     fixedNow,
			want:   policy.RefundComputation{Tier: policy.TierProviderCancelled, AmountCents: 500000, RefundCents: 500000, HoursBefore: 50},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			intent, s := f.paidSession(t, "10:00")
			f.clock.Set(tc.at)

			res, err := f.sessions.CancelSession(f.ctx, tc.caller(f), s.ID(), "  feeling unwell  ")
			require.NoError(t, err)

			if diff := cmp.Diff(tc.want, res.Refund, cmpopts.EquateApprox(0, 0.001)); diff != "" {
				t.Errorf("refund mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tc.want.AmountCents, res.Refund.RefundCents+res.Refund.PlatformCents+res.Refund.TherapistCents)
			assert.Nil(t, res.CancelRefund)

			stored, _ := f.store.Session(s.ID())
			assert.Equal(t, session.StatusCancelled, stored.Status())
			assert.False(t, f.slot(t, "10:00").IsBooked())

			paid, _ := f.store.Payment(intent.OrderID())
			require.NotNil(t, paid.Refund())
			assert.Equal(t, tc.want.RefundCents, paid.Refund().Cents)
			assert.Equal(t, string(tc.want.Tier), paid.Refund().Tier)
			meta := f.store.PaymentMetadata(paid.ID())
			assert.Equal(t, tc.caller(f).Role.String(), meta["cancelled_by_role"])

			assert.Equal(t, []string{string(tc.want.Tier)}, f.metrics.tiers)
		})
	}
}

func TestCancelSession_NotifiesTheOtherSide(t *testing.T) {
	t.Run("patient cancels", func(t *testing.T) {
		f := newFixture(t)
		_, s := f.paidSession(t, "10:00")
		_, err := f.sessions.CancelSession(f.ctx, f.patientUser, s.ID(), "")
		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{f.therapistUser.UserID}, receiversOf(f, notification.TypeSessionCancelled))
	})

	t.Run("therapist cancels", func(t *testing.T) {
		f := newFixture(t)
		_, s := f.paidSession(t, "10:00")
		_, err := f.sessions.CancelSession(f.ctx, f.therapistUser, s.ID(), "")
		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{f.patientUser.UserID, f.guardianUser.UserID}, receiversOf(f, notification.TypeSessionCancelled))
	})
}

func TestCancelSession_Rejections(t *testing.T) {
	f := newFixture(t)
	_, s := f.paidSession(t, "10:00")

	_, err := f.sessions.CancelSession(f.ctx, f.strangerUser, s.ID(), "")
	assert.True(t, errs.Is(err, errs.ErrForbidden), "got %v", err)

	_, err = f.sessions.CancelSession(f.ctx, user.NewPrincipal(uuid.New(), user.RoleTherapist), s.ID(), "")
	assert.True(t, errs.Is(err, errs.ErrForbidden), "got %v", err)

	_, err = f.sessions.CancelSession(f.ctx, f.patientUser, uuid.New(), "")
	assert.True(t, errs.Is(err, errs.ErrNotFound), "got %v", err)

	_, err = f.sessions.CancelSession(f.ctx, f.guardianUser, s.ID(), "")
	assert.True(t, errs.Is(err, errs.ErrValidation), "guardian refunds need bank details: %v", err)

	_, err = f.sessions.CancelSession(f.ctx, f.patientUser, s.ID(), "")
	require.NoError(t, err)
	_, err = f.sessions.CancelSession(f.ctx, f.patientUser, s.ID(), "")
	assert.True(t, errs.Is(err, errs.ErrInvalidState), "got %v", err)
}

func TestCancelSession_UnpaidSession(t *testing.T) {
	f := newFixture(t)
	s, err := f.booking.RequestSession(f.ctx, f.therapistUser, commands.RequestSessionInput{
		Channel:     session.ChannelTherapist,
		PatientID:   f.patient.ID,
		TherapistID: f.therapist.ID,
		Date:        wednesday,
		StartTime:   "09:00",
	})
	require.NoError(t, err)

	res, err := f.sessions.CancelSession(f.ctx, f.guardianUser, s.ID(), "")
	require.NoError(t, err, "no refund is due so no bank details are needed")
	assert.Equal(t, policy.TierUnpaid, res.Refund.Tier)
	assert.False(t, f.slot(t, "09:00").IsBooked())
}

func TestCancelSession_ReleasesSlotWithoutStoredID(t *testing.T) {
	f := newFixture(t)
	date := availability.MustParseDate(wednesday)
	start := availability.MustParseClockTime("09:00")
	f.store.AddSlot(availability.ReconstructSlot(uuid.New(), f.therapist.ID, date, start, start.AddMinutes(60), true))

	legacy := builder.NewSessionBuilder(f.patient.ID, f.therapist.ID, start.On(date, time.UTC)).BuildDomain()
	f.store.AddSession(legacy)

	_, err := f.sessions.CancelSession(f.ctx, f.patientUser, legacy.ID(), "")
	require.NoError(t, err)
	assert.False(t, f.slot(t, "09:00").IsBooked())
}

func TestCancelSessionAsGuardian_CreatesPayoutAndCompletes(t *testing.T) {
	f := newFixture(t)
	_, s := f.paidSession(t, "10:00")
	f.clock.Set(time.Date(2026, 3, 4, 4, 0, 0, 0, time.UTC))

	_, err := f.sessions.CancelSessionAsGuardian(f.ctx, f.patientUser, s.ID(), "", bank())
	assert.True(t, errs.Is(err, errs.ErrForbidden), "got %v", err)

	bad := bank()
	bad.AccountNumber = "12-34"
	_, err = f.sessions.CancelSessionAsGuardian(f.ctx, f.guardianUser, s.ID(), "", bad)
	assert.True(t, errs.Is(err, errs.ErrValidation), "got %v", err)

	res, err := f.sessions.CancelSessionAsGuardian(f.ctx, f.guardianUser, s.ID(), "travel", bank())
	require.NoError(t, err)
	assert.Equal(t, policy.TierGuardianLateNotice, res.Refund.Tier)
	assert.Equal(t, int64(300000), res.Refund.RefundCents)
	require.NotNil(t, res.CancelRefund)
	assert.Equal(t, refund.StatusPending, res.CancelRefund.Status())
	assert.Equal(t, "******4567", res.CancelRefund.Bank().MaskedAccount())
	require.Len(t, f.store.Refunds(), 1)

	var requested []notification.Notification
	for _, n := range f.store.Notifications() {
		if n.Type == notification.TypeRefundRequested {
			requested = append(requested, n)
		}
	}
	require.Len(t, requested, 1)
	assert.Equal(t, f.adminUser.UserID, requested[0].ReceiverID)
	assert.True(t, requested[0].IsUrgent)
	assert.NotContains(t, requested[0].Message, "8001234567")

	_, err = f.refunds.CompleteRefund(f.ctx, f.guardianUser, res.CancelRefund.ID(), "TRX-1")
	assert.True(t, errs.Is(err, errs.ErrForbidden), "got %v", err)

	done, err := f.refunds.CompleteRefund(f.ctx, f.adminUser, res.CancelRefund.ID(), " TRX-1 ")
	require.NoError(t, err)
	assert.Equal(t, refund.StatusCompleted, done.Status())
	assert.Equal(t, "TRX-1", done.PayoutReference())
	assert.ElementsMatch(t, []uuid.UUID{f.guardianUser.UserID}, receiversOf(f, notification.TypeRefundCompleted))

	_, err = f.refunds.CompleteRefund(f.ctx, f.adminUser, res.CancelRefund.ID(), "TRX-2")
	assert.True(t, errs.Is(err, errs.ErrInvalidState), "got %v", err)

	_, err = f.refunds.CompleteRefund(f.ctx, f.adminUser, uuid.New(), "TRX-3")
	assert.True(t, errs.Is(err, errs.ErrNotFound), "got %v", err)
}

func TestRescheduleSession_FeeGate(t *testing.T) {
	f := newFixture(t)
	_, s := f.paidSession(t, "10:00")
	move := commands.RescheduleInput{Date: wednesday, StartTime: "11:00"}

	_, err := f.sessions.RescheduleSession(f.ctx, f.patientUser, s.ID(), move)
	assert.True(t, errs.Is(err, errs.ErrPaymentRequired), "got %v", err)

	fee, err := f.payments.InitiateRescheduleFee(f.ctx, f.patientUser, s.ID(), shared.Customer{})
	require.NoError(t, err)

	move.FeeOrderID = fee.Payment.OrderID()
	_, err = f.sessions.RescheduleSession(f.ctx, f.patientUser, s.ID(), move)
	assert.True(t, errs.Is(err, errs.ErrPaymentRequired), "an unpaid fee does not count: %v", err)

	_, err = f.payments.ConfirmPayment(f.ctx, f.notify(fee.Payment, gateway.StatusCodeSuccess))
	require.NoError(t, err)

	res, err := f.sessions.RescheduleSession(f.ctx, f.patientUser, s.ID(), move)
	require.NoError(t, err)
	assert.True(t, res.Fee.Required)
	assert.Equal(t, session.StatusRescheduled, res.Session.Status())
	assert.Equal(t, time.Date(2026, 3, 4, 11, 0, 0, 0, time.UTC), res.Session.ScheduledAt())
	assert.False(t, f.slot(t, "10:00").IsBooked())
	assert.True(t, f.slot(t, "11:00").IsBooked())

	history := f.store.History(s.ID())
	require.Len(t, history, 1)
	require.NotNil(t, history[0].FeePaymentID)
	assert.Equal(t, fee.Payment.ID(), *history[0].FeePaymentID)
	assert.Equal(t, time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC), history[0].PreviousScheduledAt)
	assert.ElementsMatch(t, []uuid.UUID{f.therapistUser.UserID}, receiversOf(f, notification.TypeSessionRescheduled))
	assert.Equal(t, []bool{true}, f.metrics.reschedule)

	move.StartTime = "09:00"
	_, err = f.sessions.RescheduleSession(f.ctx, f.patientUser, s.ID(), move)
	assert.True(t, errs.Is(err, errs.ErrPaymentRequired), "a fee pays for one move: %v", err)
}

func TestRescheduleSession_FreeCases(t *testing.T) {
	t.Run("therapist never pays", func(t *testing.T) {
		f := newFixture(t)
		_, s := f.paidSession(t, "10:00")

		res, err := f.sessions.RescheduleSession(f.ctx, f.therapistUser, s.ID(), commands.RescheduleInput{Date: wednesday, StartTime: "09:00"})
		require.NoError(t, err)
		assert.False(t, res.Fee.Required)
		assert.Nil(t, res.History.FeePaymentID)
		assert.ElementsMatch(t, []uuid.UUID{f.patientUser.UserID, f.guardianUser.UserID}, receiversOf(f, notification.TypeSessionRescheduled))
	})

	t.Run("patient outside the fee window", func(t *testing.T) {
		f := newFixture(t)
		_, s := f.paidSession(t, "10:00")
		f.clock.Set(time.Date(2026, 2, 20, 8, 0, 0, 0, time.UTC))

		res, err := f.sessions.RescheduleSession(f.ctx, f.patientUser, s.ID(), commands.RescheduleInput{Date: wednesday, StartTime: "11:00"})
		require.NoError(t, err)
		assert.False(t, res.Fee.Required)
	})
}

func TestRescheduleSession_Rejections(t *testing.T) {
	f := newFixture(t)
	_, s := f.paidSession(t, "10:00")
	_, other := f.paidSession(t, "11:00")

	_, err := f.sessions.RescheduleSession(f.ctx, f.therapistUser, s.ID(), commands.RescheduleInput{Date: wednesday, StartTime: "11:00"})
	assert.True(t, errs.Is(err, errs.ErrSlotUnavailable), "got %v", err)

	_, err = f.sessions.RescheduleSession(f.ctx, f.therapistUser, s.ID(), commands.RescheduleInput{Date: "2026-03-04", StartTime: "25:00"})
	assert.True(t, errs.Is(err, errs.ErrValidation), "got %v", err)

	_, err = f.sessions.RescheduleSession(f.ctx, f.strangerUser, s.ID(), commands.RescheduleInput{Date: wednesday, StartTime: "09:00"})
	assert.True(t, errs.Is(err, errs.ErrForbidden), "got %v", err)

	_, err = f.sessions.CancelSession(f.ctx, f.therapistUser, other.ID(), "")
	require.NoError(t, err)
	_, err = f.sessions.RescheduleSession(f.ctx, f.therapistUser, other.ID(), commands.RescheduleInput{Date: wednesday, StartTime: "09:00"})
	assert.True(t, errs.Is(err, errs.ErrInvalidState), "got %v", err)
}

func TestSessionTransitions(t *testing.T) {
	f := newFixture(t)
	_, s := f.paidSession(t, "10:00")

	_, err := f.sessions.CompleteSession(f.ctx, f.patientUser, s.ID())
	assert.True(t, errs.Is(err, errs.ErrForbidden), "got %v", err)

	_, err = f.sessions.ApproveSession(f.ctx, f.therapistUser, s.ID())
	assert.True(t, errs.Is(err, errs.ErrInvalidState), "scheduled sessions need no approval: %v", err)

	done, err := f.sessions.CompleteSession(f.ctx, f.therapistUser, s.ID())
	require.NoError(t, err)
	assert.Equal(t, session.StatusCompleted, done.Status())
	assert.ElementsMatch(t, []uuid.UUID{f.patientUser.UserID, f.guardianUser.UserID}, receiversOf(f, notification.TypeSessionCompleted))

	_, err = f.sessions.MarkNoShow(f.ctx, f.therapistUser, s.ID())
	assert.True(t, errs.Is(err, errs.ErrInvalidState), "got %v", err)

	_, err = f.sessions.CancelSession(f.ctx, f.patientUser, s.ID(), "")
	assert.True(t, errs.Is(err, errs.ErrInvalidState), "got %v", err)

	_, other := f.paidSession(t, "11:00")
	noShow, err := f.sessions.MarkNoShow(f.ctx, f.adminUser, other.ID())
	require.NoError(t, err)
	assert.Equal(t, session.StatusNoShow, noShow.Status())
}

// observed is everything a rejected command must leave untouched.
type observed struct {
	Status        session.Status
	UpdatedAt     time.Time
	Booked        map[string]bool
	Refund        *payment.Refund
	Refunds       int
	History       int
	Notifications int
	Jobs          int
}

func observe(f *fixture, s *session.Session, orderID string) observed {
	stored, _ := f.store.Session(s.ID())
	paid, _ := f.store.Payment(orderID)
	booked := map[string]bool{}
	for _, slot := range f.store.Slots(f.therapist.ID) {
		booked[slot.Date().String()+" "+slot.Start().String()] = slot.IsBooked()
	}
	return observed{
		Status:        stored.Status(),
		UpdatedAt:     stored.UpdatedAt(),
		Booked:        booked,
		Refund:        paid.Refund(),
		Refunds:       len(f.store.Refunds()),
		History:       len(f.store.History(s.ID())),
		Notifications: len(f.store.Notifications()),
		Jobs:          len(f.store.Jobs()),
	}
}

func TestTerminalSessionsRejectChanges(t *testing.T) {
	terminal := []struct {
		name  string
		close func(f *fixture, id uuid.UUID) error
		want  session.Status
	}{
		{
			name: "cancelled",
			close: func(f *fixture, id uuid.UUID) error {
				_, err := f.sessions.CancelSession(f.ctx, f.therapistUser, id, "")
				return err
			},
			want: session.StatusCancelled,
		},
		{
			name: "completed",
			close: func(f *fixture, id uuid.UUID) error {
				_, err := f.sessions.CompleteSession(f.ctx, f.therapistUser, id)
				return err
			},
			want: session.StatusCompleted,
		},
		{
			name: "no-show",
			close: func(f *fixture, id uuid.UUID) error {
				_, err := f.sessions.MarkNoShow(f.ctx, f.adminUser, id)
				return err
			},
			want: session.StatusNoShow,
		},
	}

	attempts := []struct {
		name string
		run  func(f *fixture, id uuid.UUID) error
	}{
		{"patient cancels", func(f *fixture, id uuid.UUID) error {
			_, err := f.sessions.CancelSession(f.ctx, f.patientUser, id, "")
			return err
		}},
		{"therapist cancels", func(f *fixture, id uuid.UUID) error {
			_, err := f.sessions.CancelSession(f.ctx, f.therapistUser, id, "")
			return err
		}},
		{"guardian cancels", func(f *fixture, id uuid.UUID) error {
			_, err := f.sessions.CancelSessionAsGuardian(f.ctx, f.guardianUser, id, "", bank())
			return err
		}},
		{"patient reschedules", func(f *fixture, id uuid.UUID) error {
			_, err := f.sessions.RescheduleSession(f.ctx, f.patientUser, id, commands.RescheduleInput{Date: wednesday, StartTime: "09:00"})
			return err
		}},
		{"therapist reschedules", func(f *fixture, id uuid.UUID) error {
			_, err := f.sessions.RescheduleSession(f.ctx, f.therapistUser, id, commands.RescheduleInput{Date: wednesday, StartTime: "09:00"})
			return err
		}},
		{"approve", func(f *fixture, id uuid.UUID) error {
			_, err := f.sessions.ApproveSession(f.ctx, f.therapistUser, id)
			return err
		}},
		{"complete", func(f *fixture, id uuid.UUID) error {
			_, err := f.sessions.CompleteSession(f.ctx, f.therapistUser, id)
			return err
		}},
		{"no-show", func(f *fixture, id uuid.UUID) error {
			_, err := f.sessions.MarkNoShow(f.ctx, f.therapistUser, id)
			return err
		}},
	}

	for _, tt := range terminal {
		for _, a := range attempts {
			t.Run(tt.name+"/"+a.name, func(t *testing.T) {
				f := newFixture(t)
				intent, s := f.paidSession(t, "10:00")
				require.NoError(t, tt.close(f, s.ID()))

				before := observe(f, s, intent.OrderID())
				require.Equal(t, tt.want, before.Status)

				f.clock.Add(time.Minute)
				err := a.run(f, s.ID())
				assert.True(t, errs.Is(err, errs.ErrInvalidState), "got %v", err)

				if diff := cmp.Diff(before, observe(f, s, intent.OrderID())); diff != "" {
					t.Errorf("rejected command changed state (-before +after):\n%s", diff)
				}
			})
		}
	}
}
