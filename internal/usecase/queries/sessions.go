package queries

import (
	"context"
	"fmt"

	"therapy-booking/internal/domain/policy"
	"therapy-booking/internal/domain/session"
	"therapy-booking/internal/domain/user"
	"therapy-booking/internal/infra"
	"therapy-booking/internal/pkg/clock"
	"therapy-booking/internal/pkg/errs"
	"therapy-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type SessionQueries interface {
	GetSession(ctx context.Context, p user.Principal, sessionID uuid.UUID) (*SessionView, error)
	// QuoteCancellation previews the refund tier the caller would get by cancelling now.
	QuoteCancellation(ctx context.Context, p user.Principal, sessionID uuid.UUID) (*CancellationQuoteView, error)
}

type sessionQueriesImpl struct {
	uow      shared.UnitOfWork
	settings shared.BookingSettings
	clock    clock.Clock
}

func NewSessionQueries(uow shared.UnitOfWork, settings shared.BookingSettings, clk clock.Clock) SessionQueries {
	return &sessionQueriesImpl{uow: uow, settings: settings, clock: clk}
}

func (q *sessionQueriesImpl) GetSession(ctx context.Context, p user.Principal, sessionID uuid.UUID) (view *SessionView, err error) {
	ctx, span := startSpan(ctx, "SessionQueries.GetSession")
	defer func() { endSpan(span, err) }()

	reads := q.uow.CommandReads()
	s, err := reads.SessionByID(ctx, sessionID)
	if err != nil {
		return nil, lookupErr(err, "session")
	}
	if _, err = shared.ResolveParties(ctx, reads, p, s); err != nil {
		return nil, lookupErr(err, "session parties")
	}
	history, err := reads.SessionHistory(ctx, sessionID)
	if err != nil {
		return nil, lookupErr(err, "reschedule history")
	}
	return ToSessionView(s, history), nil
}

func (q *sessionQueriesImpl) QuoteCancellation(ctx context.Context, p user.Principal, sessionID uuid.UUID) (quote *CancellationQuoteView, err error) {
	ctx, span := startSpan(ctx, "SessionQueries.QuoteCancellation")
	defer func() { endSpan(span, err) }()

	reads := q.uow.CommandReads()
	s, err := reads.SessionByID(ctx, sessionID)
	if err != nil {
		return nil, lookupErr(err, "session")
	}
	parties, err := shared.ResolveParties(ctx, reads, p, s)
	if err != nil {
		return nil, lookupErr(err, "session parties")
	}
	if !s.Status().IsCancellable() {
		return nil, errs.Mark(fmt.Errorf("session is %s", s.Status()), errs.ErrInvalidState)
	}

	var paid int64
	intent, err := reads.BookingPaymentForSession(ctx, sessionID)
	switch {
	case err == nil:
		if intent.IsCompleted() {
			paid = intent.AmountCents()
		}
	case infra.IsKind(err, infra.KindNotFound):
	default:
		return nil, lookupErr(err, "booking payment")
	}

	now := q.clock.Now()
	comp := shared.CancellationFor(p, s.ScheduledAt(), now, paid)
	quote = &CancellationQuoteView{
		SessionID:      s.ID(),
		Tier:           string(comp.Tier),
		AmountCents:    comp.AmountCents,
		RefundCents:    comp.RefundCents,
		PlatformCents:  comp.PlatformCents,
		TherapistCents: comp.TherapistCents,
		RefundPercent:  comp.RefundPercent(),
		HoursBefore:    comp.HoursBefore,
	}
	if !parties.Provider {
		fee := policy.RescheduleFee(s.ScheduledAt(), now, q.settings.RescheduleWindow, q.settings.RescheduleFee)
		quote.RescheduleFee = FeeView{Required: fee.Required, AmountCents: fee.AmountCents}
	}
	return quote, nil
}

func ToSessionView(s *session.Session, history []session.RescheduleEntry) *SessionView {
	view := &SessionView{
		ID:              s.ID(),
		PatientID:       s.PatientID(),
		TherapistID:     s.TherapistID(),
		SlotID:          s.SlotID(),
		ScheduledAt:     s.ScheduledAt(),
		DurationMinutes: s.DurationMinutes(),
		SessionType:     s.SessionType(),
		Status:          s.Status().String(),
		BookedRateCents: s.BookedRateCents(),
		BookedByUserID:  s.BookedByUserID(),
		CancelReason:    s.CancelReason(),
		CancelledAt:     s.CancelledAt(),
		CreatedAt:       s.CreatedAt(),
		UpdatedAt:       s.UpdatedAt(),
		History:         make([]RescheduleView, 0, len(history)),
	}
	for _, h := range history {
		view.History = append(view.History, RescheduleView{
			PreviousScheduledAt: h.PreviousScheduledAt,
			NewScheduledAt:      h.NewScheduledAt,
			FeePaymentID:        h.FeePaymentID,
			RescheduledBy:       h.RescheduledBy,
			CreatedAt:           h.CreatedAt,
		})
	}
	return view
}
