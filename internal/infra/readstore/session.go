package readstore

import (
	"context"

	"therapy-booking/internal/domain/session"
	"therapy-booking/internal/infra"
	"therapy-booking/internal/infra/repository/converter"
	sqlc "therapy-booking/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type SessionReadQueries interface {
	GetTherapySession(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.TherapySessions, error)
	ListRescheduleHistory(ctx context.Context, db sqlc.DBTX, sessionID uuid.UUID) ([]sqlc.RescheduleHistory, error)
}

type SessionReadStore struct {
	queries SessionReadQueries
}

func NewSessionReadStore(queries SessionReadQueries) *SessionReadStore {
	return &SessionReadStore{
		queries: queries,
	}
}

func (r *SessionReadStore) ByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (*session.Session, error) {
	row, err := r.queries.GetTherapySession(ctx, db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find therapy session", err)
	}
	s, err := converter.SessionFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode therapy session", err, infra.KindDBFailure)
	}
	return s, nil
}

// History is ordered oldest first.
func (r *SessionReadStore) History(ctx context.Context, db sqlc.DBTX, sessionID uuid.UUID) ([]session.RescheduleEntry, error) {
	rows, err := r.queries.ListRescheduleHistory(ctx, db, sessionID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reschedule history", err)
	}
	entries := make([]session.RescheduleEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, converter.RescheduleEntryFromInfra(row))
	}
	return entries, nil
}
