package repository

import (
	"context"
	"encoding/json"
	"time"

	"therapy-booking/internal/domain/payment"
	"therapy-booking/internal/infra"
	"therapy-booking/internal/infra/repository/converter"
	sqlc "therapy-booking/internal/infra/sqlc/generated"
	"therapy-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type PaymentWriteQueries interface {
	CreatePayment(ctx context.Context, db sqlc.DBTX, arg sqlc.CreatePaymentParams) (sqlc.Payments, error)
	GetPaymentByOrderIDForUpdate(ctx context.Context, db sqlc.DBTX, orderID string) (sqlc.Payments, error)
	UpdatePendingPaymentStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdatePendingPaymentStatusParams) (int64, error)
	LinkPaymentSession(ctx context.Context, db sqlc.DBTX, arg sqlc.LinkPaymentSessionParams) (int64, error)
	GetBookingPaymentBySession(ctx context.Context, db sqlc.DBTX, sessionID pgtype.UUID) (sqlc.Payments, error)
	RecordPaymentRefund(ctx context.Context, db sqlc.DBTX, arg sqlc.RecordPaymentRefundParams) (int64, error)
	ExpireStalePendingPayments(ctx context.Context, db sqlc.DBTX, createdBefore pgtype.Timestamptz) (int64, error)
}

type PaymentRepository struct {
	queries PaymentWriteQueries
}

func NewPaymentRepository(queries PaymentWriteQueries) *PaymentRepository {
	return &PaymentRepository{queries: queries}
}

func (r *PaymentRepository) Create(ctx context.Context, tx sqlc.DBTX, intent *payment.Intent) error {
	if _, err := r.queries.CreatePayment(ctx, tx, converter.IntentToInfra(intent)); err != nil {
		return infra.WrapRepoErr("failed to create payment", err)
	}
	return nil
}

func (r *PaymentRepository) GetByOrderIDForUpdate(ctx context.Context, tx sqlc.DBTX, orderID string) (*payment.Intent, error) {
	row, err := r.queries.GetPaymentByOrderIDForUpdate(ctx, tx, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock payment", err)
	}
	return decodePayment(row)
}

func (r *PaymentRepository) UpdatePendingStatus(ctx context.Context, tx sqlc.DBTX, intent *payment.Intent) (bool, error) {
	n, err := r.queries.UpdatePendingPaymentStatus(ctx, tx, sqlc.UpdatePendingPaymentStatusParams{
		Status:           intent.Status().String(),
		GatewayPaymentID: optionalText(intent.GatewayPaymentID()),
		PaymentMethod:    optionalText(intent.PaymentMethod()),
		StatusCode:       optionalText(intent.StatusCode()),
		OrderID:          intent.OrderID(),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to update payment status", err)
	}
	return n == 1, nil
}

func (r *PaymentRepository) LinkSession(ctx context.Context, tx sqlc.DBTX, paymentID, sessionID uuid.UUID) (bool, error) {
	n, err := r.queries.LinkPaymentSession(ctx, tx, sqlc.LinkPaymentSessionParams{
		SessionID: pgconv.UUIDToPgtype(sessionID),
		ID:        paymentID,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to link payment to session", err)
	}
	return n == 1, nil
}

func (r *PaymentRepository) BookingPaymentForSession(ctx context.Context, tx sqlc.DBTX, sessionID uuid.UUID) (*payment.Intent, error) {
	row, err := r.queries.GetBookingPaymentBySession(ctx, tx, pgconv.UUIDToPgtype(sessionID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get booking payment for session", err)
	}
	return decodePayment(row)
}

// RecordRefund writes the refund once. Metadata keys are merged into the stored jsonb.
func (r *PaymentRepository) RecordRefund(ctx context.Context, tx sqlc.DBTX, paymentID uuid.UUID, refund payment.Refund, metadata map[string]any) (bool, error) {
	if metadata == nil {
		metadata = map[string]any{}
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return false, infra.WrapRepoErr("failed to encode payment metadata", err, infra.KindDBFailure)
	}

	n, err := r.queries.RecordPaymentRefund(ctx, tx, sqlc.RecordPaymentRefundParams{
		RefundCents: pgtype.Int8{Int64: refund.Cents, Valid: true},
		RefundTier:  pgconv.StringToPgtype(refund.Tier),
		RefundedAt:  pgconv.TimeToPgtype(refund.RefundedAt),
		Metadata:    raw,
		ID:          paymentID,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to record payment refund", err)
	}
	return n == 1, nil
}

func (r *PaymentRepository) ExpireStale(ctx context.Context, tx sqlc.DBTX, createdBefore time.Time) (int64, error) {
	n, err := r.queries.ExpireStalePendingPayments(ctx, tx, pgconv.TimeToPgtype(createdBefore))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to expire stale payments", err)
	}
	return n, nil
}

func decodePayment(row sqlc.Payments) (*payment.Intent, error) {
	intent, err := converter.IntentFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode payment", err, infra.KindDBFailure)
	}
	return intent, nil
}

func optionalText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgconv.StringToPgtype(s)
}
