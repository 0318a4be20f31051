package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"therapy-booking/internal/domain/availability"
	"therapy-booking/internal/domain/notification"
	"therapy-booking/internal/domain/payment"
	"therapy-booking/internal/domain/session"
	"therapy-booking/internal/domain/user"
	"therapy-booking/internal/pkg/clock"
	"therapy-booking/internal/pkg/errs"
	"therapy-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingResult struct {
	Payment *payment.Intent
	Session *session.Session
	// Replayed is set when the payment had already been turned into a session.
	Replayed bool
}

type RequestSessionInput struct {
	Channel     session.BookingChannel
	PatientID   uuid.UUID
	TherapistID uuid.UUID
	Date        string
	StartTime   string
	SessionType string
}

type BookingCommands interface {
	// CompleteBooking turns a COMPLETED booking payment into a SCHEDULED session.
	CompleteBooking(ctx context.Context, p user.Principal, orderID string) (*BookingResult, error)
	// RequestSession books without the gateway: therapists booking their own
	// patients, and patients or guardians taking a zero-rate slot.
	RequestSession(ctx context.Context, p user.Principal, in RequestSessionInput) (*session.Session, error)
}

type bookingUseCaseImpl struct {
	uow      shared.UnitOfWork
	settings shared.BookingSettings
	metrics  shared.BookingMetrics
	clock    clock.Clock
	notifier notifier
}

func NewBookingUseCase(uow shared.UnitOfWork, settings shared.BookingSettings, metrics shared.BookingMetrics, clk clock.Clock) BookingCommands {
	return &bookingUseCaseImpl{
		uow:      uow,
		settings: settings,
		metrics:  metricsOrNoop(metrics),
		clock:    clk,
		notifier: notifier{clock: clk},
	}
}

func (uc *bookingUseCaseImpl) CompleteBooking(ctx context.Context, p user.Principal, orderID string) (res *BookingResult, err error) {
	ctx, span := startSpan(ctx, "BookingCommands.CompleteBooking")
	defer func() { endSpan(span, err) }()

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res = nil
		intent, derr := tx.Payments().GetByOrderIDForUpdate(ctx, tx.DB(), orderID)
		if derr != nil {
			return lookupErr(derr, "payment")
		}
		if !p.IsPrivileged() && !intent.PaidBy(p.UserID) {
			return errs.Mark(errs.New("payment belongs to another user"), errs.ErrForbidden)
		}
		if intent.Purpose() != payment.PurposeBooking || intent.Booking() == nil {
			return validation(errs.New("payment is not for a booking"))
		}
		if !intent.IsCompleted() {
			return errs.Mark(fmt.Errorf("payment is %s", intent.Status()), errs.ErrNotCompleted)
		}

		if intent.IsLinked() {
			s, derr := tx.Reads().SessionByID(ctx, *intent.SessionID())
			if derr != nil {
				return lookupErr(derr, "session")
			}
			res = &BookingResult{Payment: intent, Session: s, Replayed: true}
			return nil
		}

		b := intent.Booking()
		claimed, derr := tx.Slots().Claim(ctx, tx.DB(), b.SlotID)
		if derr != nil {
			return derr
		}
		if !claimed {
			return errs.Mark(fmt.Errorf("slot %s on %s at %s is taken", b.SlotID, b.Date, b.Start), errs.ErrSlotAlreadyBooked)
		}

		now := uc.clock.Now()
		slotID := b.SlotID
		s, derr := session.New(session.NewParams{
			PatientID:       intent.PatientID(),
			TherapistID:     b.TherapistID,
			SlotID:          &slotID,
			ScheduledAt:     b.Start.On(b.Date, uc.settings.Location),
			DurationMinutes: b.DurationMinutes,
			SessionType:     b.SessionType,
			Status:          session.StatusScheduled,
			BookedRateCents: intent.AmountCents(),
			BookedByUserID:  intent.PayerUserID(),
			Now:             now,
		})
		if derr != nil {
			return validation(derr)
		}
		if derr = tx.Sessions().Create(ctx, tx.DB(), s); derr != nil {
			return derr
		}
		linked, derr := tx.Payments().LinkSession(ctx, tx.DB(), intent.ID(), s.ID())
		if derr != nil {
			return derr
		}
		if !linked {
			return invalidState(payment.ErrAlreadyLinked)
		}
		if derr = intent.LinkSession(s.ID(), now); derr != nil {
			return invalidState(derr)
		}

		if derr = uc.notifyBooked(ctx, tx, s, nil); derr != nil {
			return derr
		}
		res = &BookingResult{Payment: intent, Session: s}
		return nil
	})

	switch {
	case err == nil:
		if !res.Replayed {
			uc.metrics.SlotClaim(true)
			slog.Info("booking materialized",
				slog.String("order_id", orderID),
				slog.String("session_id", res.Session.ID().String()),
				slog.String("therapist_id", res.Session.TherapistID().String()))
		}
		return res, nil
	case errs.Is(err, errs.ErrSlotAlreadyBooked):
		uc.metrics.SlotClaim(false)
		slog.Warn("slot claim lost",
			slog.String("order_id", orderID),
			slog.Any("error", err))
		return nil, err
	default:
		return nil, writeErr(err, "failed to complete booking")
	}
}

func (uc *bookingUseCaseImpl) RequestSession(ctx context.Context, p user.Principal, in RequestSessionInput) (s *session.Session, err error) {
	ctx, span := startSpan(ctx, "BookingCommands.RequestSession")
	defer func() { endSpan(span, err) }()

	reads := uc.uow.CommandReads()
	now := uc.clock.Now()

	patient, err := reads.PatientByID(ctx, in.PatientID)
	if err != nil {
		return nil, lookupErr(err, "patient")
	}
	therapist, err := reads.TherapistByID(ctx, in.TherapistID)
	if err != nil {
		return nil, lookupErr(err, "therapist")
	}
	if err = checkRequestChannel(p, in.Channel, patient, therapist); err != nil {
		return nil, err
	}

	date, err := availability.ParseDate(in.Date)
	if err != nil {
		return nil, validation(err)
	}
	start, err := availability.ParseClockTime(in.StartTime)
	if err != nil {
		return nil, validation(err)
	}
	sessionType := strings.TrimSpace(in.SessionType)
	if sessionType == "" {
		sessionType = defaultSessionType
	}

	view, err := findAvailableSlot(ctx, reads, uc.settings, therapist.ID, date, start, now)
	if err != nil {
		return nil, err
	}

	status := session.StatusScheduled
	rate := therapist.SessionRateCents
	if in.Channel.RequiresPayment() {
		if !view.ZeroRate {
			return nil, errs.Mark(errs.New("this slot must be paid for through the payment flow"), errs.ErrPaymentRequired)
		}
		status = session.StatusRequested
		rate = 0
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s = nil
		slot, derr := tx.Slots().Ensure(ctx, tx.DB(), therapist.ID, date, start, view.End)
		if derr != nil {
			return derr
		}
		claimed, derr := tx.Slots().Claim(ctx, tx.DB(), slot.ID())
		if derr != nil {
			return derr
		}
		if !claimed {
			return errs.Mark(fmt.Errorf("slot on %s at %s is taken", date, start), errs.ErrSlotAlreadyBooked)
		}

		slotID := slot.ID()
		created, derr := session.New(session.NewParams{
			PatientID:       patient.ID,
			TherapistID:     therapist.ID,
			SlotID:          &slotID,
			ScheduledAt:     start.On(date, uc.settings.Location),
			DurationMinutes: view.SessionMinutes,
			SessionType:     sessionType,
			Status:          status,
			BookedRateCents: rate,
			BookedByUserID:  p.UserID,
			Now:             now,
		})
		if derr != nil {
			return validation(derr)
		}
		if derr = tx.Sessions().Create(ctx, tx.DB(), created); derr != nil {
			return derr
		}
		s = created

		if status == session.StatusRequested {
			return uc.notifier.send(ctx, tx, notification.New(senderOf(p.UserID), therapist.UserID,
				notification.TypeSessionRequested, "Session requested",
				fmt.Sprintf("%s requested a session on %s at %s.", patient.Name, date, start)))
		}
		return uc.notifyBooked(ctx, tx, created, senderOf(p.UserID))
	})

	switch {
	case err == nil:
		uc.metrics.SlotClaim(true)
		slog.Info("session requested",
			slog.String("session_id", s.ID().String()),
			slog.String("status", s.Status().String()),
			slog.String("channel", string(in.Channel)))
		return s, nil
	case errs.Is(err, errs.ErrSlotAlreadyBooked):
		uc.metrics.SlotClaim(false)
		slog.Warn("slot claim lost", slog.Any("error", err))
		return nil, err
	default:
		return nil, writeErr(err, "failed to request session")
	}
}

func checkRequestChannel(p user.Principal, ch session.BookingChannel, patient *shared.PatientSnapshot, therapist *shared.TherapistSnapshot) error {
	forbidden := func(msg string) error { return errs.Mark(errs.New(msg), errs.ErrForbidden) }
	switch ch {
	case session.ChannelTherapist:
		if !(p.IsTherapist() || p.IsAdmin()) || !shared.CanActForTherapist(p, therapist) {
			return forbidden("caller does not manage this therapist's calendar")
		}
	case session.ChannelPatient:
		if !p.IsPatient() || !shared.CanActForPatient(p, patient) {
			return forbidden("caller is not this patient")
		}
	case session.ChannelGuardian:
		if !p.IsGuardian() || !shared.CanActForPatient(p, patient) {
			return forbidden("caller is not this patient's guardian")
		}
	default:
		return validation(session.ErrInvalidChannel)
	}
	return nil
}

// notifyBooked tells the therapist and the patient side about a new session.
func (uc *bookingUseCaseImpl) notifyBooked(ctx context.Context, tx shared.Tx, s *session.Session, sender *uuid.UUID) error {
	reads := tx.Reads()
	therapist, err := reads.TherapistByID(ctx, s.TherapistID())
	if err != nil {
		return lookupErr(err, "therapist")
	}
	patient, err := reads.PatientByID(ctx, s.PatientID())
	if err != nil {
		return lookupErr(err, "patient")
	}
	when := s.ScheduledAt().In(uc.settings.Location).Format("2006-01-02 15:04")

	msgs := []notification.Notification{
		notification.New(sender, therapist.UserID, notification.TypeSessionBooked, "New session booked",
			fmt.Sprintf("%s is booked with you on %s.", patient.Name, when)),
	}
	msgs = append(msgs, toEach(patientReceivers(patient), sender, notification.TypeSessionBooked, "Session confirmed",
		fmt.Sprintf("Your session with %s is confirmed for %s.", therapist.Name, when))...)
	return uc.notifier.send(ctx, tx, msgs...)
}
