package readstore

import (
	"context"

	"therapy-booking/internal/domain/payment"
	"therapy-booking/internal/infra"
	"therapy-booking/internal/infra/repository/converter"
	sqlc "therapy-booking/internal/infra/sqlc/generated"
	"therapy-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type PaymentReadQueries interface {
	GetPaymentByOrderID(ctx context.Context, db sqlc.DBTX, orderID string) (sqlc.Payments, error)
	GetBookingPaymentBySession(ctx context.Context, db sqlc.DBTX, sessionID pgtype.UUID) (sqlc.Payments, error)
}

type PaymentReadStore struct {
	queries PaymentReadQueries
}

func NewPaymentReadStore(queries PaymentReadQueries) *PaymentReadStore {
	return &PaymentReadStore{
		queries: queries,
	}
}

func (r *PaymentReadStore) ByOrderID(ctx context.Context, db sqlc.DBTX, orderID string) (*payment.Intent, error) {
	row, err := r.queries.GetPaymentByOrderID(ctx, db, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find payment", err)
	}
	return decodeIntent(row)
}

// BookingPaymentBySession returns the payment that materialized the session.
func (r *PaymentReadStore) BookingPaymentBySession(ctx context.Context, db sqlc.DBTX, sessionID uuid.UUID) (*payment.Intent, error) {
	row, err := r.queries.GetBookingPaymentBySession(ctx, db, pgconv.UUIDToPgtype(sessionID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking payment", err)
	}
	return decodeIntent(row)
}

func decodeIntent(row sqlc.Payments) (*payment.Intent, error) {
	intent, err := converter.IntentFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode payment", err, infra.KindDBFailure)
	}
	return intent, nil
}
