package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"therapy-booking/internal/domain/availability"
	"therapy-booking/internal/domain/notification"
	"therapy-booking/internal/infra"
	"therapy-booking/internal/pkg/clock"
	"therapy-booking/internal/pkg/errs"
	"therapy-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("therapy-booking/usecase/commands")

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// lookupErr turns a failed read into NotFound or a database failure.
func lookupErr(err error, what string) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(errs.Wrap(err, what+" not found"), errs.ErrNotFound)
	}
	return errs.Mark(errs.Wrap(err, "failed to load "+what), errs.ErrDatabaseOperationFailed)
}

// writeErr leaves already classified errors alone and marks the rest as database failures.
func writeErr(err error, msg string) error {
	if errs.KindOf(err) != nil {
		return err
	}
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(errs.Wrap(err, msg), errs.ErrNotFound)
	}
	return errs.Mark(errs.Wrap(err, msg), errs.ErrDatabaseOperationFailed)
}

func invalidState(err error) error {
	return errs.Mark(err, errs.ErrInvalidState)
}

func validation(err error) error {
	return errs.Mark(err, errs.ErrValidation)
}

func requestHash(v any) string {
	data, _ := json.Marshal(v)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// notifier writes in-app notifications and their outbox jobs inside the caller's transaction.
type notifier struct {
	clock clock.Clock
}

func (n notifier) send(ctx context.Context, tx shared.Tx, msgs ...notification.Notification) error {
	now := n.clock.Now()
	for _, m := range msgs {
		if m.ReceiverID == uuid.Nil || (m.SenderID != nil && *m.SenderID == m.ReceiverID) {
			continue
		}
		m.CreatedAt = now
		id, err := tx.Notifications().Create(ctx, tx.DB(), m)
		if err != nil {
			return err
		}
		payload, err := json.Marshal(map[string]any{
			"notification_id": id,
			"receiver_id":     m.ReceiverID,
			"type":            m.Type,
			"title":           m.Title,
			"message":         m.Message,
			"is_urgent":       m.IsUrgent,
			"created_at":      now.Format(time.RFC3339),
		})
		if err != nil {
			return err
		}
		if err := tx.Notifications().CreateJob(ctx, tx.DB(), string(m.Type), m.Type.Topic(), payload, now); err != nil {
			return err
		}
	}
	return nil
}

// patientReceivers lists the patient and, when registered, their guardian.
func patientReceivers(p *shared.PatientSnapshot) []uuid.UUID {
	out := []uuid.UUID{p.UserID}
	if p.GuardianUserID != nil && *p.GuardianUserID != p.UserID {
		out = append(out, *p.GuardianUserID)
	}
	return out
}

func toEach(receivers []uuid.UUID, sender *uuid.UUID, typ notification.Type, title, message string) []notification.Notification {
	out := make([]notification.Notification, 0, len(receivers))
	for _, r := range receivers {
		out = append(out, notification.New(sender, r, typ, title, message))
	}
	return out
}

func senderOf(userID uuid.UUID) *uuid.UUID {
	if userID == uuid.Nil {
		return nil
	}
	return &userID
}

type noMetrics struct{}

func (noMetrics) SlotClaim(bool)         {}
func (noMetrics) PaymentCallback(string) {}
func (noMetrics) SignatureFailure()      {}
func (noMetrics) Cancellation(string)    {}
func (noMetrics) Reschedule(bool)        {}

func metricsOrNoop(m shared.BookingMetrics) shared.BookingMetrics {
	if m == nil {
		return noMetrics{}
	}
	return m
}

// findAvailableSlot resolves the day fresh and insists the start is offered and free.
func findAvailableSlot(ctx context.Context, reads shared.SlotReads, settings shared.BookingSettings, therapistID uuid.UUID, date availability.Date, start availability.ClockTime, now time.Time) (availability.SlotView, error) {
	day, err := shared.ResolveDay(ctx, reads, settings, therapistID, date, now)
	if err != nil {
		return availability.SlotView{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	view, ok := day.Find(start)
	switch {
	case !ok:
		return view, errs.Mark(fmt.Errorf("therapist does not offer %s on %s", start, date), errs.ErrSlotUnavailable)
	case view.IsBooked:
		return view, errs.Mark(fmt.Errorf("slot %s %s is already booked", date, start), errs.ErrSlotUnavailable)
	case view.IsBlocked:
		return view, errs.Mark(fmt.Errorf("slot %s %s starts inside the booking lead time", date, start), errs.ErrSlotUnavailable)
	}
	return view, nil
}
