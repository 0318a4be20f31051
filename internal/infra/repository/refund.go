package repository

import (
	"context"

	"therapy-booking/internal/domain/refund"
	"therapy-booking/internal/infra"
	"therapy-booking/internal/infra/repository/converter"
	sqlc "therapy-booking/internal/infra/sqlc/generated"
	"therapy-booking/internal/pkg/pgconv"
	"therapy-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type RefundWriteQueries interface {
	CreateCancelRefund(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateCancelRefundParams) (sqlc.CancelRefunds, error)
	GetCancelRefund(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.CancelRefunds, error)
	CompleteCancelRefund(ctx context.Context, db sqlc.DBTX, arg sqlc.CompleteCancelRefundParams) (int64, error)
}

// RefundRepository stores cancel refunds with the bank account number sealed.
type RefundRepository struct {
	queries RefundWriteQueries
	sealer  shared.Sealer
}

func NewRefundRepository(queries RefundWriteQueries, sealer shared.Sealer) *RefundRepository {
	return &RefundRepository{queries: queries, sealer: sealer}
}

func (r *RefundRepository) Create(ctx context.Context, tx sqlc.DBTX, cr *refund.CancelRefund) error {
	sealed, err := r.sealer.Seal([]byte(cr.Bank().AccountNumber))
	if err != nil {
		return infra.WrapRepoErr("failed to seal bank account", err, infra.KindDBFailure)
	}
	if _, err := r.queries.CreateCancelRefund(ctx, tx, converter.RefundToInfra(cr, sealed)); err != nil {
		return infra.WrapRepoErr("failed to create cancel refund", err)
	}
	return nil
}

func (r *RefundRepository) GetByID(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*refund.CancelRefund, error) {
	row, err := r.queries.GetCancelRefund(ctx, tx, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get cancel refund", err)
	}
	account, err := r.sealer.Open(row.AccountNumberSealed)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to open bank account", err, infra.KindDBFailure)
	}
	return converter.RefundFromInfra(row, string(account)), nil
}

func (r *RefundRepository) Complete(ctx context.Context, tx sqlc.DBTX, cr *refund.CancelRefund) (bool, error) {
	n, err := r.queries.CompleteCancelRefund(ctx, tx, sqlc.CompleteCancelRefundParams{
		PayoutReference: optionalText(cr.PayoutReference()),
		CompletedAt:     pgconv.TimePtrToPgtype(cr.CompletedAt()),
		ID:              cr.ID(),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to complete cancel refund", err)
	}
	return n == 1, nil
}
