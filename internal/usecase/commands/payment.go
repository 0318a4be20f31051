package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"therapy-booking/internal/domain/availability"
	"therapy-booking/internal/domain/notification"
	"therapy-booking/internal/domain/payment"
	"therapy-booking/internal/domain/policy"
	"therapy-booking/internal/domain/session"
	"therapy-booking/internal/domain/user"
	"therapy-booking/internal/pkg/clock"
	"therapy-booking/internal/pkg/errs"
	"therapy-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	endpointInitiatePayment = "POST /api/payments/intents"
	defaultSessionType      = "individual"
)

type InitiatePaymentInput struct {
	Channel     session.BookingChannel `json:"channel"`
	PatientID   uuid.UUID              `json:"patient_id"`
	TherapistID uuid.UUID              `json:"therapist_id"`
	Date        string                 `json:"date"`
	StartTime   string                 `json:"start_time"`
	AmountCents int64                  `json:"amount_cents"`
	SessionType string                 `json:"session_type"`
	Customer    shared.Customer        `json:"customer"`
}

type InitiatePaymentResult struct {
	Payment  *payment.Intent
	Checkout shared.CheckoutParams
	Replayed bool
}

type ConfirmPaymentResult struct {
	Payment *payment.Intent
	Session *session.Session
	// Conflict is set when the payment settled but its slot was taken in the meantime.
	Conflict bool
}

type PaymentCommands interface {
	InitiatePayment(ctx context.Context, p user.Principal, in InitiatePaymentInput, idempotencyKey uuid.UUID) (*InitiatePaymentResult, error)
	InitiateRescheduleFee(ctx context.Context, p user.Principal, sessionID uuid.UUID, customer shared.Customer) (*InitiatePaymentResult, error)
	ConfirmPayment(ctx context.Context, n shared.GatewayNotification) (*ConfirmPaymentResult, error)
}

type paymentUseCaseImpl struct {
	uow      shared.UnitOfWork
	gateway  shared.PaymentGateway
	booking  BookingCommands
	settings shared.BookingSettings
	metrics  shared.BookingMetrics
	clock    clock.Clock
	notifier notifier
}

func NewPaymentUseCase(
	uow shared.UnitOfWork,
	gateway shared.PaymentGateway,
	booking BookingCommands,
	settings shared.BookingSettings,
	metrics shared.BookingMetrics,
	clk clock.Clock,
) PaymentCommands {
	return &paymentUseCaseImpl{
		uow:      uow,
		gateway:  gateway,
		booking:  booking,
		settings: settings,
		metrics:  metricsOrNoop(metrics),
		clock:    clk,
		notifier: notifier{clock: clk},
	}
}

func (uc *paymentUseCaseImpl) InitiatePayment(ctx context.Context, p user.Principal, in InitiatePaymentInput, idempotencyKey uuid.UUID) (res *InitiatePaymentResult, err error) {
	ctx, span := startSpan(ctx, "PaymentCommands.InitiatePayment")
	defer func() { endSpan(span, err) }()

	if idempotencyKey == uuid.Nil {
		return nil, errs.ErrIdempotencyKeyRequired
	}
	if err = checkPaidChannel(p, in.Channel); err != nil {
		return nil, err
	}

	hash := requestHash(in)
	replayOrderID, err := uc.claimIdempotencyKey(ctx, idempotencyKey, p.UserID, hash)
	if err != nil {
		return nil, err
	}
	if replayOrderID != "" {
		return uc.replayIntent(ctx, in, replayOrderID)
	}

	res, err = uc.createBookingIntent(ctx, p, in, idempotencyKey)
	if err != nil {
		uc.releaseIdempotencyKey(ctx, idempotencyKey, p.UserID)
		return nil, err
	}
	return res, nil
}

func checkPaidChannel(p user.Principal, ch session.BookingChannel) error {
	switch ch {
	case session.ChannelPatient:
		if !p.IsPatient() {
			return errs.Mark(errs.New("patient channel requires a patient caller"), errs.ErrForbidden)
		}
	case session.ChannelGuardian:
		if !p.IsGuardian() {
			return errs.Mark(errs.New("guardian channel requires a guardian caller"), errs.ErrForbidden)
		}
	case session.ChannelTherapist:
		return validation(errs.New("therapist bookings do not go through the payment gateway"))
	default:
		return validation(session.ErrInvalidChannel)
	}
	return nil
}

// claimIdempotencyKey reports ("", nil) when this request owns the key and
// should run, or the order id an earlier identical request produced.
func (uc *paymentUseCaseImpl) claimIdempotencyKey(ctx context.Context, key, userID uuid.UUID, hash string) (string, error) {
	var rec *shared.IdempotencyRecord
	expiresAt := uc.clock.Now().Add(uc.settings.IdempotencyKeyTTL)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rec = nil
		ok, err := tx.Idempotency().TryInsert(ctx, tx.DB(), key, userID, endpointInitiatePayment, hash, expiresAt)
		if err != nil || ok {
			return err
		}
		rec, err = tx.Reads().IdempotencyByKey(ctx, key, userID)
		return err
	})
	if err != nil {
		return "", errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}
	if rec == nil {
		return "", nil
	}
	return rec.Replay(endpointInitiatePayment, hash)
}

func (uc *paymentUseCaseImpl) releaseIdempotencyKey(ctx context.Context, key, userID uuid.UUID) {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().Release(ctx, tx.DB(), key, userID)
	})
	if err != nil {
		slog.Warn("failed to release idempotency key",
			slog.String("key", key.String()),
			slog.Any("error", err))
	}
}

func (uc *paymentUseCaseImpl) replayIntent(ctx context.Context, in InitiatePaymentInput, orderID string) (*InitiatePaymentResult, error) {
	reads := uc.uow.CommandReads()
	intent, err := reads.PaymentByOrderID(ctx, orderID)
	if err != nil {
		return nil, lookupErr(err, "payment")
	}
	patient, err := reads.PatientByID(ctx, intent.PatientID())
	if err != nil {
		return nil, lookupErr(err, "patient")
	}
	items := ""
	if b := intent.Booking(); b != nil {
		therapist, terr := reads.TherapistByID(ctx, b.TherapistID)
		if terr != nil {
			return nil, lookupErr(terr, "therapist")
		}
		items = bookingItems(therapist, b.Date, b.Start)
	}
	return &InitiatePaymentResult{
		Payment:  intent,
		Checkout: uc.gateway.Checkout(intent, items, customerFor(in.Customer, patient)),
		Replayed: true,
	}, nil
}

func (uc *paymentUseCaseImpl) createBookingIntent(ctx context.Context, p user.Principal, in InitiatePaymentInput, idempotencyKey uuid.UUID) (*InitiatePaymentResult, error) {
	reads := uc.uow.CommandReads()
	now := uc.clock.Now()

	patient, err := reads.PatientByID(ctx, in.PatientID)
	if err != nil {
		return nil, lookupErr(err, "patient")
	}
	if !shared.CanActForPatient(p, patient) {
		return nil, errs.Mark(errs.New("caller cannot book for this patient"), errs.ErrForbidden)
	}
	therapist, err := reads.TherapistByID(ctx, in.TherapistID)
	if err != nil {
		return nil, lookupErr(err, "therapist")
	}

	date, err := availability.ParseDate(in.Date)
	if err != nil {
		return nil, validation(err)
	}
	start, err := availability.ParseClockTime(in.StartTime)
	if err != nil {
		return nil, validation(err)
	}
	if in.AmountCents <= 0 {
		return nil, validation(payment.ErrInvalidAmount)
	}
	if in.AmountCents != therapist.SessionRateCents {
		return nil, validation(fmt.Errorf("amount %s does not match the therapist's rate %s",
			payment.FormatAmount(in.AmountCents), payment.FormatAmount(therapist.SessionRateCents)))
	}
	sessionType := strings.TrimSpace(in.SessionType)
	if sessionType == "" {
		sessionType = defaultSessionType
	}

	view, err := findAvailableSlot(ctx, reads, uc.settings, therapist.ID, date, start, now)
	if err != nil {
		return nil, err
	}
	if view.ZeroRate {
		return nil, validation(errs.New("zero-rate slots are booked through a session request"))
	}

	orderID, err := payment.NewOrderID(now)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate order id")
	}

	var intent *payment.Intent
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		slot, derr := tx.Slots().Ensure(ctx, tx.DB(), therapist.ID, date, start, view.End)
		if derr != nil {
			return derr
		}
		if slot.IsBooked() {
			return errs.Mark(errs.New("slot was booked while the payment was being prepared"), errs.ErrSlotUnavailable)
		}

		intent, derr = payment.NewIntent(payment.NewIntentParams{
			OrderID:     orderID,
			Purpose:     payment.PurposeBooking,
			PatientID:   patient.ID,
			PayerUserID: p.UserID,
			AmountCents: in.AmountCents,
			Currency:    uc.settings.Currency,
			Booking: &payment.PendingBooking{
				TherapistID:     therapist.ID,
				Date:            date,
				Start:           start,
				SlotID:          slot.ID(),
				SessionType:     sessionType,
				DurationMinutes: view.SessionMinutes,
			},
			Now: now,
		})
		if derr != nil {
			return validation(derr)
		}
		if derr = tx.Payments().Create(ctx, tx.DB(), intent); derr != nil {
			return derr
		}
		return tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), idempotencyKey, p.UserID, requestHash(orderID), orderID)
	})
	if err != nil {
		return nil, writeErr(err, "failed to create payment intent")
	}

	slog.Info("payment intent created",
		slog.String("order_id", orderID),
		slog.String("therapist_id", therapist.ID.String()),
		slog.String("slot_date", date.String()),
		slog.String("start_time", start.String()),
		slog.Int64("amount_cents", in.AmountCents))

	return &InitiatePaymentResult{
		Payment:  intent,
		Checkout: uc.gateway.Checkout(intent, bookingItems(therapist, date, start), customerFor(in.Customer, patient)),
	}, nil
}

func (uc *paymentUseCaseImpl) InitiateRescheduleFee(ctx context.Context, p user.Principal, sessionID uuid.UUID, customer shared.Customer) (res *InitiatePaymentResult, err error) {
	ctx, span := startSpan(ctx, "PaymentCommands.InitiateRescheduleFee")
	defer func() { endSpan(span, err) }()

	reads := uc.uow.CommandReads()
	now := uc.clock.Now()

	s, err := reads.SessionByID(ctx, sessionID)
	if err != nil {
		return nil, lookupErr(err, "session")
	}
	patient, err := reads.PatientByID(ctx, s.PatientID())
	if err != nil {
		return nil, lookupErr(err, "patient")
	}
	if !(p.IsPatient() || p.IsGuardian()) || !shared.CanActForPatient(p, patient) {
		return nil, errs.Mark(errs.New("only the patient side pays reschedule fees"), errs.ErrForbidden)
	}
	if !s.Status().IsCancellable() {
		return nil, invalidState(fmt.Errorf("session is %s", s.Status()))
	}

	fee := policy.RescheduleFee(s.ScheduledAt(), now, uc.settings.RescheduleWindow, uc.settings.RescheduleFee)
	if !fee.Required {
		return nil, validation(errs.New("no reschedule fee is due for this session"))
	}

	orderID, err := payment.NewOrderID(now)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate order id")
	}
	id := s.ID()
	intent, err := payment.NewIntent(payment.NewIntentParams{
		OrderID:     orderID,
		Purpose:     payment.PurposeRescheduleFee,
		PatientID:   patient.ID,
		PayerUserID: p.UserID,
		SessionID:   &id,
		AmountCents: fee.AmountCents,
		Currency:    uc.settings.Currency,
		Now:         now,
	})
	if err != nil {
		return nil, validation(err)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Payments().Create(ctx, tx.DB(), intent)
	})
	if err != nil {
		return nil, writeErr(err, "failed to create reschedule fee intent")
	}

	slog.Info("reschedule fee intent created",
		slog.String("order_id", orderID),
		slog.String("session_id", s.ID().String()),
		slog.Int64("amount_cents", fee.AmountCents))

	items := "Reschedule fee for session on " + s.ScheduledAt().In(uc.settings.Location).Format("2006-01-02 15:04")
	return &InitiatePaymentResult{
		Payment:  intent,
		Checkout: uc.gateway.Checkout(intent, items, customerFor(customer, patient)),
	}, nil
}

func (uc *paymentUseCaseImpl) ConfirmPayment(ctx context.Context, n shared.GatewayNotification) (res *ConfirmPaymentResult, err error) {
	ctx, span := startSpan(ctx, "PaymentCommands.ConfirmPayment")
	defer func() { endSpan(span, err) }()

	if err = uc.gateway.Verify(n); err != nil {
		uc.metrics.SignatureFailure()
		return nil, err
	}
	status, err := uc.gateway.MapStatus(n.StatusCode)
	if err != nil {
		return nil, err
	}
	amount, err := payment.ParseAmount(n.Amount)
	if err != nil {
		return nil, validation(err)
	}

	var (
		intent       *payment.Intent
		transitioned bool
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		transitioned = false
		var derr error
		intent, derr = tx.Payments().GetByOrderIDForUpdate(ctx, tx.DB(), n.OrderID)
		if derr != nil {
			return lookupErr(derr, "payment")
		}
		if amount != intent.AmountCents() || !strings.EqualFold(n.Currency, intent.Currency()) {
			return validation(fmt.Errorf("callback amount %s %s does not match intent %s %s",
				n.Amount, n.Currency, payment.FormatAmount(intent.AmountCents()), intent.Currency()))
		}

		switch {
		case intent.Status() == status:
			return nil
		case intent.Status() != payment.StatusPending:
			slog.Warn("gateway callback for settled payment",
				slog.String("order_id", n.OrderID),
				slog.String("stored_status", intent.Status().String()),
				slog.String("reported_status", status.String()))
			return invalidState(payment.ErrNotPending)
		}

		if derr = intent.Settle(status, n.PaymentID, n.Method, n.StatusCode, uc.clock.Now()); derr != nil {
			return invalidState(derr)
		}
		ok, derr := tx.Payments().UpdatePendingStatus(ctx, tx.DB(), intent)
		if derr != nil {
			return derr
		}
		if !ok {
			return invalidState(payment.ErrNotPending)
		}
		transitioned = true

		if status != payment.StatusCompleted {
			return nil
		}
		amountText := payment.FormatAmount(intent.AmountCents()) + " " + intent.Currency()
		return uc.notifier.send(ctx, tx,
			notification.New(nil, intent.PayerUserID(), notification.TypePaymentReceived,
				"Payment received", "We received your payment of "+amountText+" for order "+intent.OrderID()+"."),
			notification.New(nil, uc.settings.AdminUserID, notification.TypePaymentReceivedAdmin,
				"Payment received", "Order "+intent.OrderID()+" was paid ("+amountText+")."),
		)
	})
	if err != nil {
		return nil, writeErr(err, "failed to record gateway callback")
	}

	uc.metrics.PaymentCallback(status.String())
	if transitioned {
		slog.Info("payment status updated",
			slog.String("order_id", intent.OrderID()),
			slog.String("status", status.String()),
			slog.String("gateway_payment_id", n.PaymentID))
	}

	res = &ConfirmPaymentResult{Payment: intent}
	if !intent.IsCompleted() || intent.Purpose() != payment.PurposeBooking {
		return res, nil
	}
	if intent.IsLinked() {
		linked, lerr := uc.uow.CommandReads().SessionByID(ctx, *intent.SessionID())
		if lerr != nil {
			return nil, lookupErr(lerr, "session")
		}
		res.Session = linked
		return res, nil
	}

	booked, err := uc.booking.CompleteBooking(ctx, user.SystemPrincipal(), intent.OrderID())
	switch {
	case err == nil:
		res.Payment = booked.Payment
		res.Session = booked.Session
		return res, nil
	case errs.Is(err, errs.ErrSlotAlreadyBooked):
		slog.Warn("paid booking lost its slot",
			slog.String("order_id", intent.OrderID()),
			slog.String("slot_id", intent.Booking().SlotID.String()))
		res.Conflict = true
		if transitioned {
			uc.reportConflict(ctx, intent)
		}
		return res, nil
	default:
		return res, err
	}
}

// reportConflict asks an administrator to reconcile a paid intent that could not be booked.
func (uc *paymentUseCaseImpl) reportConflict(ctx context.Context, intent *payment.Intent) {
	b := intent.Booking()
	msg := fmt.Sprintf("Order %s was paid but the slot on %s at %s is already booked. Refund or rebook manually.",
		intent.OrderID(), b.Date, b.Start)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return uc.notifier.send(ctx, tx,
			notification.New(nil, uc.settings.AdminUserID, notification.TypeBookingConflict, "Booking conflict", msg).Urgent(),
			notification.New(nil, intent.PayerUserID(), notification.TypeBookingConflict, "Booking could not be completed",
				"Your payment for order "+intent.OrderID()+" was received but the slot is no longer available. Our team will contact you."),
		)
	})
	if err != nil {
		slog.Error("failed to report booking conflict",
			slog.String("order_id", intent.OrderID()),
			slog.Any("error", err))
	}
}

func bookingItems(t *shared.TherapistSnapshot, date availability.Date, start availability.ClockTime) string {
	return fmt.Sprintf("Therapy session with %s on %s at %s", t.Name, date, start)
}

// customerFor fills missing payer fields from the patient record.
func customerFor(c shared.Customer, patient *shared.PatientSnapshot) shared.Customer {
	if c.FirstName == "" && c.LastName == "" {
		first, last, _ := strings.Cut(strings.TrimSpace(patient.Name), " ")
		c.FirstName, c.LastName = first, strings.TrimSpace(last)
	}
	if c.Email == "" {
		c.Email = patient.Email
	}
	if c.Phone == "" {
		c.Phone = patient.Phone
	}
	return c
}
