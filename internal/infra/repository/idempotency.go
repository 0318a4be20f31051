package repository

import (
	"context"
	"time"

	"therapy-booking/internal/infra"
	sqlc "therapy-booking/internal/infra/sqlc/generated"
	"therapy-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type IdempotencyWriteQueries interface {
	TryInsertIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.TryInsertIdempotencyKeyParams) (int64, error)
	UpdateIdempotencyKeyCompleted(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateIdempotencyKeyCompletedParams) error
	DeleteProcessingIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.DeleteProcessingIdempotencyKeyParams) (int64, error)
	DeleteExpiredIdempotencyKeys(ctx context.Context, db sqlc.DBTX) (int64, error)
}

type IdempotencyRepository struct {
	queries IdempotencyWriteQueries
}

func NewIdempotencyRepository(queries IdempotencyWriteQueries) *IdempotencyRepository {
	return &IdempotencyRepository{queries: queries}
}

// TryInsert claims (key, user) for this request. An expired row is taken over.
// It reports false when a live row already exists.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, tx sqlc.DBTX, key uuid.UUID, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	params := sqlc.TryInsertIdempotencyKeyParams{
		Key:         key,
		UserID:      userID,
		Endpoint:    endpoint,
		RequestHash: requestHash,
		ExpiresAt:   pgconv.TimeToPgtype(expiresAt),
	}

	n, err := r.queries.TryInsertIdempotencyKey(ctx, tx, params)
	if err != nil {
		return false, infra.WrapRepoErr("failed to try insert idempotency key", err)
	}

	return n == 1, nil
}

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, tx sqlc.DBTX, key uuid.UUID, userID uuid.UUID, responseBodyHash string, orderID string) error {
	params := sqlc.UpdateIdempotencyKeyCompletedParams{
		Key:              key,
		UserID:           userID,
		ResponseBodyHash: pgconv.StringToPgtype(responseBodyHash),
		ResultOrderID:    pgconv.StringToPgtype(orderID),
	}

	err := r.queries.UpdateIdempotencyKeyCompleted(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update idempotency key status", err)
	}

	return nil
}

// Release drops a key whose request failed so the client can retry with it.
func (r *IdempotencyRepository) Release(ctx context.Context, tx sqlc.DBTX, key uuid.UUID, userID uuid.UUID) error {
	_, err := r.queries.DeleteProcessingIdempotencyKey(ctx, tx, sqlc.DeleteProcessingIdempotencyKeyParams{
		Key:    key,
		UserID: userID,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to release idempotency key", err)
	}
	return nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, tx sqlc.DBTX) (int64, error) {
	count, err := r.queries.DeleteExpiredIdempotencyKeys(ctx, tx)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}

	return count, nil
}
