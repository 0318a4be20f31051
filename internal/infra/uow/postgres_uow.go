package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"therapy-booking/internal/domain/availability"
	"therapy-booking/internal/domain/payment"
	"therapy-booking/internal/domain/session"
	"therapy-booking/internal/infra/readstore"
	"therapy-booking/internal/infra/repository"
	sqlc "therapy-booking/internal/infra/sqlc/generated"
	"therapy-booking/internal/pkg/errs"
	"therapy-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// TxBeginner is satisfied by *pgxpool.Pool and by pgxmock pools.
type TxBeginner interface {
	sqlc.DBTX
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type PostgresUoW struct {
	pool   TxBeginner
	q      *sqlc.Queries
	sealer shared.Sealer
}

func NewPostgresUoW(pool TxBeginner, q *sqlc.Queries, sealer shared.Sealer) *PostgresUoW {
	return &PostgresUoW{
		pool:   pool,
		q:      q,
		sealer: sealer,
	}
}

// ReadCommitted is enough: every contended write is a conditional update.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return newCommandReads(u, u.pool)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{
			dbtx: pgxTx,
			uow:  u,
		}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries && isRetryableError(err) {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx sqlc.DBTX
	uow  *PostgresUoW

	// Lazy-initialized repositories
	availabilityRepo shared.AvailabilityRepository
	slotRepo         shared.SlotRepository
	sessionRepo      shared.SessionRepository
	paymentRepo      shared.PaymentRepository
	refundRepo       shared.RefundRepository
	notificationRepo shared.NotificationRepository
	idempotencyRepo  shared.IdempotencyRepository
	commandReads     shared.CommandReads
}

func (t *pgTx) DB() sqlc.DBTX {
	return t.dbtx
}

func (t *pgTx) Availability() shared.AvailabilityRepository {
	if t.availabilityRepo == nil {
		t.availabilityRepo = repository.NewAvailabilityRepository(t.uow.q)
	}
	return t.availabilityRepo
}

func (t *pgTx) Slots() shared.SlotRepository {
	if t.slotRepo == nil {
		t.slotRepo = repository.NewSlotRepository(t.uow.q)
	}
	return t.slotRepo
}

func (t *pgTx) Sessions() shared.SessionRepository {
	if t.sessionRepo == nil {
		t.sessionRepo = repository.NewSessionRepository(t.uow.q)
	}
	return t.sessionRepo
}

func (t *pgTx) Payments() shared.PaymentRepository {
	if t.paymentRepo == nil {
		t.paymentRepo = repository.NewPaymentRepository(t.uow.q)
	}
	return t.paymentRepo
}

func (t *pgTx) Refunds() shared.RefundRepository {
	if t.refundRepo == nil {
		t.refundRepo = repository.NewRefundRepository(t.uow.q, t.uow.sealer)
	}
	return t.refundRepo
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notificationRepo == nil {
		t.notificationRepo = repository.NewNotificationRepository(t.uow.q)
	}
	return t.notificationRepo
}

func (t *pgTx) Idempotency() shared.IdempotencyRepository {
	if t.idempotencyRepo == nil {
		t.idempotencyRepo = repository.NewIdempotencyRepository(t.uow.q)
	}
	return t.idempotencyRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = newCommandReads(t.uow, t.dbtx)
	}
	return t.commandReads
}

// commandReads runs every lookup on dbtx, so reads made through a Tx see its writes.
type commandReads struct {
	dbtx sqlc.DBTX

	directory    *readstore.DirectoryReadStore
	availability *readstore.AvailabilityReadStore
	payments     *readstore.PaymentReadStore
	sessions     *readstore.SessionReadStore
	idempotency  *readstore.IdempotencyReadStore
}

func newCommandReads(u *PostgresUoW, dbtx sqlc.DBTX) *commandReads {
	return &commandReads{
		dbtx:         dbtx,
		directory:    readstore.NewDirectoryReadStore(u.q),
		availability: readstore.NewAvailabilityReadStore(u.q),
		payments:     readstore.NewPaymentReadStore(u.q),
		sessions:     readstore.NewSessionReadStore(u.q),
		idempotency:  readstore.NewIdempotencyReadStore(u.q),
	}
}

func (r *commandReads) RulesByTherapist(ctx context.Context, therapistID uuid.UUID) ([]*availability.Rule, error) {
	return r.availability.RulesByTherapist(ctx, r.dbtx, therapistID)
}

func (r *commandReads) BookedStarts(ctx context.Context, therapistID uuid.UUID, date availability.Date, loc *time.Location) ([]availability.ClockTime, error) {
	return r.availability.BookedStarts(ctx, r.dbtx, therapistID, date, loc)
}

func (r *commandReads) TherapistByID(ctx context.Context, id uuid.UUID) (*shared.TherapistSnapshot, error) {
	return r.directory.TherapistByID(ctx, r.dbtx, id)
}

func (r *commandReads) TherapistByUserID(ctx context.Context, userID uuid.UUID) (*shared.TherapistSnapshot, error) {
	return r.directory.TherapistByUserID(ctx, r.dbtx, userID)
}

func (r *commandReads) PatientByID(ctx context.Context, id uuid.UUID) (*shared.PatientSnapshot, error) {
	return r.directory.PatientByID(ctx, r.dbtx, id)
}

func (r *commandReads) PatientByUserID(ctx context.Context, userID uuid.UUID) (*shared.PatientSnapshot, error) {
	return r.directory.PatientByUserID(ctx, r.dbtx, userID)
}

func (r *commandReads) PaymentByOrderID(ctx context.Context, orderID string) (*payment.Intent, error) {
	return r.payments.ByOrderID(ctx, r.dbtx, orderID)
}

func (r *commandReads) BookingPaymentForSession(ctx context.Context, sessionID uuid.UUID) (*payment.Intent, error) {
	return r.payments.BookingPaymentBySession(ctx, r.dbtx, sessionID)
}

func (r *commandReads) SessionByID(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	return r.sessions.ByID(ctx, r.dbtx, id)
}

func (r *commandReads) SessionHistory(ctx context.Context, sessionID uuid.UUID) ([]session.RescheduleEntry, error) {
	return r.sessions.History(ctx, r.dbtx, sessionID)
}

func (r *commandReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	return r.idempotency.Get(ctx, r.dbtx, key, userID)
}
