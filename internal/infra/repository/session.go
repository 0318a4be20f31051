package repository

import (
	"context"

	"therapy-booking/internal/domain/session"
	"therapy-booking/internal/infra"
	"therapy-booking/internal/infra/repository/converter"
	sqlc "therapy-booking/internal/infra/sqlc/generated"
	"therapy-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type SessionWriteQueries interface {
	CreateTherapySession(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateTherapySessionParams) (sqlc.TherapySessions, error)
	GetTherapySessionForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.TherapySessions, error)
	UpdateTherapySessionStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateTherapySessionStatusParams) (int64, error)
	RescheduleTherapySession(ctx context.Context, db sqlc.DBTX, arg sqlc.RescheduleTherapySessionParams) (int64, error)
	InsertRescheduleHistory(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertRescheduleHistoryParams) error
}

type SessionRepository struct {
	queries SessionWriteQueries
}

func NewSessionRepository(queries SessionWriteQueries) *SessionRepository {
	return &SessionRepository{queries: queries}
}

func (r *SessionRepository) Create(ctx context.Context, tx sqlc.DBTX, s *session.Session) error {
	if _, err := r.queries.CreateTherapySession(ctx, tx, converter.SessionToInfra(s)); err != nil {
		return infra.WrapRepoErr("failed to create therapy session", err)
	}
	return nil
}

func (r *SessionRepository) GetForUpdate(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*session.Session, error) {
	row, err := r.queries.GetTherapySessionForUpdate(ctx, tx, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock therapy session", err)
	}
	s, err := converter.SessionFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode therapy session", err, infra.KindDBFailure)
	}
	return s, nil
}

func (r *SessionRepository) UpdateStatus(ctx context.Context, tx sqlc.DBTX, s *session.Session, expected session.Status) (bool, error) {
	params := sqlc.UpdateTherapySessionStatusParams{
		NewStatus:      s.Status().String(),
		CancelledAt:    pgconv.TimePtrToPgtype(s.CancelledAt()),
		ID:             s.ID(),
		ExpectedStatus: expected.String(),
	}
	if reason := s.CancelReason(); reason != "" {
		params.CancelReason = pgconv.StringToPgtype(reason)
	} else {
		params.CancelReason = pgtype.Text{Valid: false}
	}

	n, err := r.queries.UpdateTherapySessionStatus(ctx, tx, params)
	if err != nil {
		return false, infra.WrapRepoErr("failed to update therapy session status", err)
	}
	return n == 1, nil
}

func (r *SessionRepository) Reschedule(ctx context.Context, tx sqlc.DBTX, s *session.Session, expected session.Status) (bool, error) {
	n, err := r.queries.RescheduleTherapySession(ctx, tx, sqlc.RescheduleTherapySessionParams{
		ScheduledAt:    pgconv.TimeToPgtype(s.ScheduledAt()),
		SlotID:         pgconv.UUIDPtrToPgtype(s.SlotID()),
		ID:             s.ID(),
		ExpectedStatus: expected.String(),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to reschedule therapy session", err)
	}
	return n == 1, nil
}

func (r *SessionRepository) InsertHistory(ctx context.Context, tx sqlc.DBTX, entry session.RescheduleEntry) error {
	if err := r.queries.InsertRescheduleHistory(ctx, tx, converter.RescheduleEntryToInfra(entry)); err != nil {
		return infra.WrapRepoErr("failed to insert reschedule history", err)
	}
	return nil
}
