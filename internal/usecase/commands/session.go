package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"therapy-booking/internal/domain/availability"
	"therapy-booking/internal/domain/notification"
	"therapy-booking/internal/domain/payment"
	"therapy-booking/internal/domain/policy"
	"therapy-booking/internal/domain/refund"
	"therapy-booking/internal/domain/session"
	"therapy-booking/internal/domain/user"
	"therapy-booking/internal/infra"
	"therapy-booking/internal/pkg/clock"
	"therapy-booking/internal/pkg/errs"
	"therapy-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type BankDetailsInput struct {
	BankName      string
	BranchName    string
	AccountHolder string
	AccountNumber string
}

type CancelResult struct {
	Session *session.Session
	Refund  policy.RefundComputation
	// CancelRefund is set when a bank payout is owed to a guardian.
	CancelRefund *refund.CancelRefund
}

type RescheduleInput struct {
	Date       string
	StartTime  string
	FeeOrderID string
}

type RescheduleResult struct {
	Session *session.Session
	Fee     policy.FeeDecision
	History session.RescheduleEntry
}

type SessionCommands interface {
	CancelSession(ctx context.Context, p user.Principal, sessionID uuid.UUID, reason string) (*CancelResult, error)
	CancelSessionAsGuardian(ctx context.Context, p user.Principal, sessionID uuid.UUID, reason string, bank BankDetailsInput) (*CancelResult, error)
	RescheduleSession(ctx context.Context, p user.Principal, sessionID uuid.UUID, in RescheduleInput) (*RescheduleResult, error)
	ApproveSession(ctx context.Context, p user.Principal, sessionID uuid.UUID) (*session.Session, error)
	CompleteSession(ctx context.Context, p user.Principal, sessionID uuid.UUID) (*session.Session, error)
	MarkNoShow(ctx context.Context, p user.Principal, sessionID uuid.UUID) (*session.Session, error)
}

type sessionUseCaseImpl struct {
	uow      shared.UnitOfWork
	settings shared.BookingSettings
	metrics  shared.BookingMetrics
	clock    clock.Clock
	notifier notifier
}

func NewSessionUseCase(uow shared.UnitOfWork, settings shared.BookingSettings, metrics shared.BookingMetrics, clk clock.Clock) SessionCommands {
	return &sessionUseCaseImpl{
		uow:      uow,
		settings: settings,
		metrics:  metricsOrNoop(metrics),
		clock:    clk,
		notifier: notifier{clock: clk},
	}
}

func (uc *sessionUseCaseImpl) CancelSession(ctx context.Context, p user.Principal, sessionID uuid.UUID, reason string) (res *CancelResult, err error) {
	ctx, span := startSpan(ctx, "SessionCommands.CancelSession")
	defer func() { endSpan(span, err) }()

	return uc.cancel(ctx, p, sessionID, reason, nil)
}

func (uc *sessionUseCaseImpl) CancelSessionAsGuardian(ctx context.Context, p user.Principal, sessionID uuid.UUID, reason string, bank BankDetailsInput) (res *CancelResult, err error) {
	ctx, span := startSpan(ctx, "SessionCommands.CancelSessionAsGuardian")
	defer func() { endSpan(span, err) }()

	if !p.IsGuardian() {
		return nil, errs.Mark(errs.New("only guardians can request a bank refund"), errs.ErrForbidden)
	}
	return uc.cancel(ctx, p, sessionID, reason, &bank)
}

func (uc *sessionUseCaseImpl) cancel(ctx context.Context, p user.Principal, sessionID uuid.UUID, reason string, bank *BankDetailsInput) (*CancelResult, error) {
	var res *CancelResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res = nil
		s, err := tx.Sessions().GetForUpdate(ctx, tx.DB(), sessionID)
		if err != nil {
			return lookupErr(err, "session")
		}
		parties, err := shared.ResolveParties(ctx, tx.Reads(), p, s)
		if err != nil {
			return err
		}

		now := uc.clock.Now()
		expected := s.Status()
		slotID, scheduledAt := s.SlotID(), s.ScheduledAt()
		if err = s.Cancel(reason, now); err != nil {
			return invalidState(fmt.Errorf("cannot cancel a %s session: %w", expected, err))
		}

		paid, err := uc.paidBookingPayment(ctx, tx, s.ID())
		if err != nil {
			return err
		}
		var paidCents int64
		if paid != nil {
			paidCents = paid.AmountCents()
		}
		comp := shared.CancellationFor(p, scheduledAt, now, paidCents)

		var details refund.BankDetails
		payout := p.IsGuardian() && comp.RefundDue()
		if payout {
			if bank == nil {
				return validation(refund.ErrBankDetailsRequired)
			}
			details, err = refund.NewBankDetails(bank.BankName, bank.BranchName, bank.AccountHolder, bank.AccountNumber)
			if err != nil {
				return validation(err)
			}
		}

		ok, err := tx.Sessions().UpdateStatus(ctx, tx.DB(), s, expected)
		if err != nil {
			return err
		}
		if !ok {
			return invalidState(errs.New("session changed while it was being cancelled"))
		}
		if err = uc.releaseSlot(ctx, tx, s.TherapistID(), slotID, scheduledAt); err != nil {
			return err
		}

		if paid != nil {
			_, err = tx.Payments().RecordRefund(ctx, tx.DB(), paid.ID(), payment.Refund{
				Cents:      comp.RefundCents,
				Tier:       string(comp.Tier),
				RefundedAt: now,
			}, map[string]any{
				"cancelled_by":      p.UserID.String(),
				"cancelled_by_role": p.Role.String(),
				"cancel_reason":     s.CancelReason(),
				"refund_percent":    comp.RefundPercent(),
				"platform_cents":    comp.PlatformCents,
				"therapist_cents":   comp.TherapistCents,
				"hours_before":      comp.HoursBefore,
			})
			if err != nil {
				return err
			}
		}

		var cr *refund.CancelRefund
		if payout {
			cr, err = refund.New(s.ID(), s.PatientID(), p.UserID, comp, details, now)
			if err != nil {
				return validation(err)
			}
			if err = tx.Refunds().Create(ctx, tx.DB(), cr); err != nil {
				return err
			}
		}

		if err = uc.notifyCancelled(ctx, tx, p, parties, s, comp, cr); err != nil {
			return err
		}
		res = &CancelResult{Session: s, Refund: comp, CancelRefund: cr}
		return nil
	})
	if err != nil {
		return nil, writeErr(err, "failed to cancel session")
	}

	uc.metrics.Cancellation(string(res.Refund.Tier))
	slog.Info("session cancelled",
		slog.String("session_id", sessionID.String()),
		slog.String("role", p.Role.String()),
		slog.String("tier", string(res.Refund.Tier)),
		slog.Int64("refund_cents", res.Refund.RefundCents))
	return res, nil
}

// paidBookingPayment returns the completed booking payment behind a session, or nil.
func (uc *sessionUseCaseImpl) paidBookingPayment(ctx context.Context, tx shared.Tx, sessionID uuid.UUID) (*payment.Intent, error) {
	paid, err := tx.Payments().BookingPaymentForSession(ctx, tx.DB(), sessionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !paid.IsCompleted() {
		return nil, nil
	}
	return paid, nil
}

// releaseSlot frees the slot a session held. Sessions booked before slot ids were
// recorded are matched by therapist, date and any stored start-time encoding.
func (uc *sessionUseCaseImpl) releaseSlot(ctx context.Context, tx shared.Tx, therapistID uuid.UUID, slotID *uuid.UUID, at time.Time) error {
	if slotID != nil {
		ok, err := tx.Slots().Release(ctx, tx.DB(), *slotID)
		if err != nil || ok {
			return err
		}
	}
	loc := uc.settings.Location
	_, err := tx.Slots().ReleaseByStart(ctx, tx.DB(), therapistID, availability.DateOf(at, loc), availability.ClockTimeOf(at, loc))
	return err
}

func (uc *sessionUseCaseImpl) notifyCancelled(ctx context.Context, tx shared.Tx, p user.Principal, parties *shared.SessionParties, s *session.Session, comp policy.RefundComputation, cr *refund.CancelRefund) error {
	when := uc.when(s.ScheduledAt())
	sender := senderOf(p.UserID)

	var msgs []notification.Notification
	if parties.Provider {
		msg := fmt.Sprintf("Your session with %s on %s was cancelled.", parties.Therapist.Name, when)
		if comp.RefundDue() {
			msg += " A refund of " + payment.FormatAmount(comp.RefundCents) + " " + uc.settings.Currency + " will be issued."
		}
		msgs = toEach(patientReceivers(parties.Patient), sender, notification.TypeSessionCancelled, "Session cancelled", msg)
	} else {
		msgs = append(msgs, notification.New(sender, parties.Therapist.UserID, notification.TypeSessionCancelled,
			"Session cancelled", fmt.Sprintf("%s cancelled the session on %s.", parties.Patient.Name, when)))
	}
	if cr != nil {
		msgs = append(msgs, notification.New(sender, uc.settings.AdminUserID, notification.TypeRefundRequested,
			"Refund requested", fmt.Sprintf("Pay %s %s to %s (%s, account %s) for session %s.",
				payment.FormatAmount(comp.RefundCents), uc.settings.Currency,
				cr.Bank().AccountHolder, cr.Bank().BankName, cr.Bank().MaskedAccount(), s.ID())).Urgent())
	}
	return uc.notifier.send(ctx, tx, msgs...)
}

func (uc *sessionUseCaseImpl) RescheduleSession(ctx context.Context, p user.Principal, sessionID uuid.UUID, in RescheduleInput) (res *RescheduleResult, err error) {
	ctx, span := startSpan(ctx, "SessionCommands.RescheduleSession")
	defer func() { endSpan(span, err) }()

	date, err := availability.ParseDate(in.Date)
	if err != nil {
		return nil, validation(err)
	}
	start, err := availability.ParseClockTime(in.StartTime)
	if err != nil {
		return nil, validation(err)
	}

	reads := uc.uow.CommandReads()
	now := uc.clock.Now()
	current, err := reads.SessionByID(ctx, sessionID)
	if err != nil {
		return nil, lookupErr(err, "session")
	}
	parties, err := shared.ResolveParties(ctx, reads, p, current)
	if err != nil {
		return nil, writeErr(err, "failed to load session parties")
	}
	if !current.Status().IsCancellable() {
		return nil, invalidState(fmt.Errorf("cannot reschedule a %s session", current.Status()))
	}
	view, err := findAvailableSlot(ctx, reads, uc.settings, current.TherapistID(), date, start, now)
	if err != nil {
		return nil, err
	}

	var fee policy.FeeDecision
	if !parties.Provider {
		fee = policy.RescheduleFee(current.ScheduledAt(), now, uc.settings.RescheduleWindow, uc.settings.RescheduleFee)
	}
	feeOrderID := strings.TrimSpace(in.FeeOrderID)
	if fee.Required && feeOrderID == "" {
		return nil, errs.Mark(fmt.Errorf("a reschedule fee of %s %s is due", payment.FormatAmount(fee.AmountCents), uc.settings.Currency), errs.ErrPaymentRequired)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res = nil
		s, err := tx.Sessions().GetForUpdate(ctx, tx.DB(), sessionID)
		if err != nil {
			return lookupErr(err, "session")
		}
		expected := s.Status()
		if !expected.IsCancellable() {
			return invalidState(fmt.Errorf("cannot reschedule a %s session", expected))
		}

		var feePaymentID *uuid.UUID
		if fee.Required {
			id, err := uc.verifyFeePayment(ctx, tx, s, feeOrderID, fee)
			if err != nil {
				return err
			}
			feePaymentID = &id
		}

		slot, err := tx.Slots().Ensure(ctx, tx.DB(), s.TherapistID(), date, start, view.End)
		if err != nil {
			return err
		}
		claimed, err := tx.Slots().Claim(ctx, tx.DB(), slot.ID())
		if err != nil {
			return err
		}
		if !claimed {
			return errs.Mark(fmt.Errorf("slot on %s at %s is taken", date, start), errs.ErrSlotAlreadyBooked)
		}

		oldSlotID, oldAt := s.SlotID(), s.ScheduledAt()
		newSlotID := slot.ID()
		entry, err := s.Reschedule(start.On(date, uc.settings.Location), &newSlotID, p.UserID, feePaymentID, uc.clock.Now())
		if err != nil {
			return invalidState(err)
		}
		ok, err := tx.Sessions().Reschedule(ctx, tx.DB(), s, expected)
		if err != nil {
			return err
		}
		if !ok {
			return invalidState(errs.New("session changed while it was being rescheduled"))
		}
		if err = uc.releaseSlot(ctx, tx, s.TherapistID(), oldSlotID, oldAt); err != nil {
			return err
		}
		if err = tx.Sessions().InsertHistory(ctx, tx.DB(), entry); err != nil {
			return err
		}

		msg := fmt.Sprintf("Your session on %s has moved to %s.", uc.when(oldAt), uc.when(s.ScheduledAt()))
		var msgs []notification.Notification
		if parties.Provider {
			msgs = toEach(patientReceivers(parties.Patient), senderOf(p.UserID), notification.TypeSessionRescheduled, "Session rescheduled", msg)
		} else {
			msgs = append(msgs, notification.New(senderOf(p.UserID), parties.Therapist.UserID, notification.TypeSessionRescheduled,
				"Session rescheduled", fmt.Sprintf("%s moved the session on %s to %s.", parties.Patient.Name, uc.when(oldAt), uc.when(s.ScheduledAt()))))
		}
		if err = uc.notifier.send(ctx, tx, msgs...); err != nil {
			return err
		}

		res = &RescheduleResult{Session: s, Fee: fee, History: entry}
		return nil
	})
	if err != nil {
		if errs.Is(err, errs.ErrSlotAlreadyBooked) {
			uc.metrics.SlotClaim(false)
		}
		return nil, writeErr(err, "failed to reschedule session")
	}

	uc.metrics.SlotClaim(true)
	uc.metrics.Reschedule(fee.Required)
	slog.Info("session rescheduled",
		slog.String("session_id", sessionID.String()),
		slog.Time("scheduled_at", res.Session.ScheduledAt()),
		slog.Bool("fee_charged", fee.Required))
	return res, nil
}

// verifyFeePayment checks that orderID is a completed fee for s that has not been spent yet.
func (uc *sessionUseCaseImpl) verifyFeePayment(ctx context.Context, tx shared.Tx, s *session.Session, orderID string, fee policy.FeeDecision) (uuid.UUID, error) {
	required := func(msg string) error { return errs.Mark(errs.New(msg), errs.ErrPaymentRequired) }

	intent, err := tx.Payments().GetByOrderIDForUpdate(ctx, tx.DB(), orderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, required("reschedule fee payment not found")
		}
		return uuid.Nil, err
	}
	if intent.Purpose() != payment.PurposeRescheduleFee || intent.SessionID() == nil || *intent.SessionID() != s.ID() {
		return uuid.Nil, required("payment is not a reschedule fee for this session")
	}
	if !intent.IsCompleted() {
		return uuid.Nil, required("reschedule fee payment is " + intent.Status().String())
	}
	if intent.AmountCents() != fee.AmountCents {
		return uuid.Nil, validation(fmt.Errorf("reschedule fee paid %s, expected %s",
			payment.FormatAmount(intent.AmountCents()), payment.FormatAmount(fee.AmountCents)))
	}

	history, err := tx.Reads().SessionHistory(ctx, s.ID())
	if err != nil {
		return uuid.Nil, err
	}
	for _, h := range history {
		if h.FeePaymentID != nil && *h.FeePaymentID == intent.ID() {
			return uuid.Nil, required("reschedule fee payment was already used")
		}
	}
	return intent.ID(), nil
}

func (uc *sessionUseCaseImpl) ApproveSession(ctx context.Context, p user.Principal, sessionID uuid.UUID) (s *session.Session, err error) {
	ctx, span := startSpan(ctx, "SessionCommands.ApproveSession")
	defer func() { endSpan(span, err) }()

	return uc.transition(ctx, p, sessionID, (*session.Session).Approve,
		notification.TypeSessionApproved, "Session approved", "Your session with %s on %s is confirmed.")
}

func (uc *sessionUseCaseImpl) CompleteSession(ctx context.Context, p user.Principal, sessionID uuid.UUID) (s *session.Session, err error) {
	ctx, span := startSpan(ctx, "SessionCommands.CompleteSession")
	defer func() { endSpan(span, err) }()

	return uc.transition(ctx, p, sessionID, (*session.Session).Complete,
		notification.TypeSessionCompleted, "Session completed", "Your session with %s on %s has been marked completed.")
}

func (uc *sessionUseCaseImpl) MarkNoShow(ctx context.Context, p user.Principal, sessionID uuid.UUID) (s *session.Session, err error) {
	ctx, span := startSpan(ctx, "SessionCommands.MarkNoShow")
	defer func() { endSpan(span, err) }()

	return uc.transition(ctx, p, sessionID, (*session.Session).MarkNoShow,
		notification.TypeSessionNoShow, "Missed session", "You were marked absent for your session with %s on %s.")
}

// transition applies a therapist-side status change and tells the patient side.
func (uc *sessionUseCaseImpl) transition(
	ctx context.Context,
	p user.Principal,
	sessionID uuid.UUID,
	apply func(*session.Session, time.Time) error,
	typ notification.Type,
	title, format string,
) (*session.Session, error) {
	var out *session.Session
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		out = nil
		s, err := tx.Sessions().GetForUpdate(ctx, tx.DB(), sessionID)
		if err != nil {
			return lookupErr(err, "session")
		}
		parties, err := shared.ResolveParties(ctx, tx.Reads(), p, s)
		if err != nil {
			return err
		}
		if !parties.Provider {
			return errs.Mark(errs.New("only the therapist or the practice can change this session"), errs.ErrForbidden)
		}

		expected := s.Status()
		if err = apply(s, uc.clock.Now()); err != nil {
			return invalidState(fmt.Errorf("session is %s: %w", expected, err))
		}
		ok, err := tx.Sessions().UpdateStatus(ctx, tx.DB(), s, expected)
		if err != nil {
			return err
		}
		if !ok {
			return invalidState(errs.New("session changed concurrently"))
		}

		msg := fmt.Sprintf(format, parties.Therapist.Name, uc.when(s.ScheduledAt()))
		if err = uc.notifier.send(ctx, tx, toEach(patientReceivers(parties.Patient), senderOf(p.UserID), typ, title, msg)...); err != nil {
			return err
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, writeErr(err, "failed to update session")
	}
	slog.Info("session status changed",
		slog.String("session_id", sessionID.String()),
		slog.String("status", out.Status().String()))
	return out, nil
}

func (uc *sessionUseCaseImpl) when(t time.Time) string {
	return t.In(uc.settings.Location).Format("2006-01-02 15:04")
}
