package readstore

import (
	"context"
	"time"

	"therapy-booking/internal/infra"
	sqlc "therapy-booking/internal/infra/sqlc/generated"
	"therapy-booking/internal/pkg/pgconv"
	"therapy-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type IdempotencyReadQueries interface {
	GetIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.GetIdempotencyKeyParams) (sqlc.IdempotencyKeys, error)
}

type IdempotencyReadStore struct {
	queries IdempotencyReadQueries
	now     func() time.Time
}

func NewIdempotencyReadStore(queries IdempotencyReadQueries) *IdempotencyReadStore {
	return &IdempotencyReadStore{
		queries: queries,
		now:     time.Now,
	}
}

// Get loads the live record for (key, user).
func (r *IdempotencyReadStore) Get(ctx context.Context, tx sqlc.DBTX, key uuid.UUID, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	row, err := r.queries.GetIdempotencyKey(ctx, tx, sqlc.GetIdempotencyKeyParams{Key: key, UserID: userID})
	switch {
	case pgconv.IsNoRows(err):
		return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
	case err != nil:
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}

	record := &shared.IdempotencyRecord{
		Key:           row.Key,
		UserID:        row.UserID,
		Endpoint:      row.Endpoint,
		Status:        row.Status,
		RequestHash:   row.RequestHash,
		ResultOrderID: pgconv.StringPtrFromPgtype(row.ResultOrderID),
		ExpiresAt:     pgconv.TimeFromPgtype(row.ExpiresAt),
	}

	// An expired key is reclaimed by the next TryInsert, so it reads as absent.
	if r.now().After(record.ExpiresAt) {
		return nil, infra.WrapRepoErr("idempotency key expired", nil, infra.KindNotFound)
	}

	return record, nil
}
