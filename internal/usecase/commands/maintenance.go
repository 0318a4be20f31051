package commands

import (
	"context"
	"log/slog"
	"time"

	"therapy-booking/internal/pkg/clock"
	"therapy-booking/internal/pkg/errs"
	"therapy-booking/internal/usecase/shared"
)

type SweepResult struct {
	ExpiredIntents  int64
	DeletedIdemKeys int64
}

type MaintenanceCommands interface {
	// SweepStaleIntents expires PENDING intents created before now-olderThan and
	// drops idempotency keys past their expiry.
	SweepStaleIntents(ctx context.Context, olderThan time.Duration) (SweepResult, error)
}

type maintenanceUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewMaintenanceUseCase(uow shared.UnitOfWork, clk clock.Clock) MaintenanceCommands {
	return &maintenanceUseCaseImpl{uow: uow, clock: clk}
}

func (uc *maintenanceUseCaseImpl) SweepStaleIntents(ctx context.Context, olderThan time.Duration) (SweepResult, error) {
	if olderThan <= 0 {
		return SweepResult{}, validation(errs.New("older-than must be positive"))
	}
	cutoff := uc.clock.Now().Add(-olderThan)

	var res SweepResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		if res.ExpiredIntents, err = tx.Payments().ExpireStale(ctx, tx.DB(), cutoff); err != nil {
			return err
		}
		res.DeletedIdemKeys, err = tx.Idempotency().DeleteExpired(ctx, tx.DB())
		return err
	})
	if err != nil {
		return SweepResult{}, writeErr(err, "failed to sweep stale intents")
	}

	slog.Info("stale intents swept",
		slog.Time("cutoff", cutoff),
		slog.Int64("expired_intents", res.ExpiredIntents),
		slog.Int64("deleted_idempotency_keys", res.DeletedIdemKeys))
	return res, nil
}
