package commands

import (
	"context"

	"therapy-booking/internal/domain/notification"
	"therapy-booking/internal/domain/user"
	"therapy-booking/internal/pkg/clock"
	"therapy-booking/internal/pkg/errs"
	"therapy-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type NotificationCommands interface {
	// MarkRead is idempotent for notifications that are already read.
	MarkRead(ctx context.Context, p user.Principal, notificationID uuid.UUID) (*notification.Notification, error)
}

type notificationUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewNotificationUseCase(uow shared.UnitOfWork, clk clock.Clock) NotificationCommands {
	return &notificationUseCaseImpl{uow: uow, clock: clk}
}

func (uc *notificationUseCaseImpl) MarkRead(ctx context.Context, p user.Principal, notificationID uuid.UUID) (*notification.Notification, error) {
	var out *notification.Notification
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Notifications().Get(ctx, tx.DB(), notificationID)
		if err != nil {
			return lookupErr(err, "notification")
		}
		if n.ReceiverID != p.UserID {
			return errs.Mark(errs.New("notification belongs to another user"), errs.ErrForbidden)
		}
		if n.IsRead {
			out = n
			return nil
		}

		now := uc.clock.Now()
		if _, err = tx.Notifications().MarkRead(ctx, tx.DB(), n.ID, p.UserID, now); err != nil {
			return err
		}
		n.IsRead = true
		n.ReadAt = &now
		out = n
		return nil
	})
	if err != nil {
		return nil, writeErr(err, "failed to mark notification read")
	}
	return out, nil
}
