package repository

import (
	"context"
	"time"

	"therapy-booking/internal/domain/notification"
	"therapy-booking/internal/infra"
	"therapy-booking/internal/infra/repository/converter"
	sqlc "therapy-booking/internal/infra/sqlc/generated"
	"therapy-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	JobStatusQueued = "queued"
	JobStatusSent   = "sent"
	JobStatusFailed = "failed"
)

type NotificationWriteQueries interface {
	CreateNotification(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateNotificationParams) (uuid.UUID, error)
	GetNotification(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Notifications, error)
	MarkNotificationRead(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkNotificationReadParams) (int64, error)
	CreateNotificationJob(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateNotificationJobParams) error
	ListQueuedNotificationJobs(ctx context.Context, db sqlc.DBTX, arg sqlc.ListQueuedNotificationJobsParams) ([]sqlc.NotificationJobs, error)
	UpdateNotificationJobStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateNotificationJobStatusParams) error
}

type NotificationRepository struct {
	queries NotificationWriteQueries
}

func NewNotificationRepository(queries NotificationWriteQueries) *NotificationRepository {
	return &NotificationRepository{queries: queries}
}

func (r *NotificationRepository) Create(ctx context.Context, tx sqlc.DBTX, n notification.Notification) (uuid.UUID, error) {
	id, err := r.queries.CreateNotification(ctx, tx, converter.NotificationToInfra(n))
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create notification", err)
	}
	return id, nil
}

func (r *NotificationRepository) Get(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*notification.Notification, error) {
	row, err := r.queries.GetNotification(ctx, tx, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get notification", err)
	}
	n := converter.NotificationFromInfra(row)
	return &n, nil
}

// MarkRead only touches notifications addressed to receiverID.
func (r *NotificationRepository) MarkRead(ctx context.Context, tx sqlc.DBTX, id, receiverID uuid.UUID, at time.Time) (bool, error) {
	n, err := r.queries.MarkNotificationRead(ctx, tx, sqlc.MarkNotificationReadParams{
		ReadAt:     pgconv.TimeToPgtype(at),
		ID:         id,
		ReceiverID: receiverID,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark notification read", err)
	}
	return n == 1, nil
}

func (r *NotificationRepository) CreateJob(ctx context.Context, tx sqlc.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	params := sqlc.CreateNotificationJobParams{
		Kind:    kind,
		Topic:   topic,
		Payload: payload,
		RunAt:   pgtype.Timestamptz{Time: runAt, Valid: true},
		Status:  JobStatusQueued,
	}

	err := r.queries.CreateNotificationJob(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}

	return nil
}

// ClaimQueuedJobs locks up to limit due jobs; concurrent relays skip each other's rows.
func (r *NotificationRepository) ClaimQueuedJobs(ctx context.Context, tx sqlc.DBTX, now time.Time, limit int) ([]sqlc.NotificationJobs, error) {
	jobs, err := r.queries.ListQueuedNotificationJobs(ctx, tx, sqlc.ListQueuedNotificationJobsParams{
		RunBefore: pgconv.TimeToPgtype(now),
		BatchSize: int32(limit),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list queued notification jobs", err)
	}
	return jobs, nil
}

func (r *NotificationRepository) UpdateJobStatus(ctx context.Context, tx sqlc.DBTX, jobID uuid.UUID, status string, lastError *string) error {
	params := sqlc.UpdateNotificationJobStatusParams{
		ID:     jobID,
		Status: status,
	}

	if lastError != nil {
		params.LastError = pgtype.Text{String: *lastError, Valid: true}
	} else {
		params.LastError = pgtype.Text{Valid: false}
	}

	err := r.queries.UpdateNotificationJobStatus(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update notification job status", err)
	}

	return nil
}
