package commands

import (
	"context"
	"log/slog"

	"therapy-booking/internal/domain/notification"
	"therapy-booking/internal/domain/payment"
	"therapy-booking/internal/domain/refund"
	"therapy-booking/internal/domain/user"
	"therapy-booking/internal/pkg/clock"
	"therapy-booking/internal/pkg/errs"
	"therapy-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type RefundCommands interface {
	// CompleteRefund records that the bank payout for a guardian cancellation was made.
	CompleteRefund(ctx context.Context, p user.Principal, refundID uuid.UUID, payoutReference string) (*refund.CancelRefund, error)
}

type refundUseCaseImpl struct {
	uow      shared.UnitOfWork
	settings shared.BookingSettings
	clock    clock.Clock
	notifier notifier
}

func NewRefundUseCase(uow shared.UnitOfWork, settings shared.BookingSettings, clk clock.Clock) RefundCommands {
	return &refundUseCaseImpl{
		uow:      uow,
		settings: settings,
		clock:    clk,
		notifier: notifier{clock: clk},
	}
}

func (uc *refundUseCaseImpl) CompleteRefund(ctx context.Context, p user.Principal, refundID uuid.UUID, payoutReference string) (out *refund.CancelRefund, err error) {
	ctx, span := startSpan(ctx, "RefundCommands.CompleteRefund")
	defer func() { endSpan(span, err) }()

	if !p.IsPrivileged() {
		return nil, errs.Mark(errs.New("only administrators complete refunds"), errs.ErrForbidden)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		out = nil
		r, derr := tx.Refunds().GetByID(ctx, tx.DB(), refundID)
		if derr != nil {
			return lookupErr(derr, "refund")
		}
		if derr = r.Complete(payoutReference, uc.clock.Now()); derr != nil {
			return invalidState(derr)
		}
		ok, derr := tx.Refunds().Complete(ctx, tx.DB(), r)
		if derr != nil {
			return derr
		}
		if !ok {
			return invalidState(refund.ErrAlreadyCompleted)
		}

		msg := "Your refund of " + payment.FormatAmount(r.Computation().RefundCents) + " " + uc.settings.Currency +
			" has been paid to account " + r.Bank().MaskedAccount() + "."
		if r.PayoutReference() != "" {
			msg += " Reference: " + r.PayoutReference() + "."
		}
		if derr = uc.notifier.send(ctx, tx, notification.New(senderOf(p.UserID), r.RequestedByUserID(),
			notification.TypeRefundCompleted, "Refund completed", msg)); derr != nil {
			return derr
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, writeErr(err, "failed to complete refund")
	}

	slog.Info("refund completed",
		slog.String("refund_id", refundID.String()),
		slog.String("session_id", out.SessionID().String()))
	return out, nil
}
