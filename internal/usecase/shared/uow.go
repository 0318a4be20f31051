package shared

import (
	"context"
	"time"

	"therapy-booking/internal/domain/availability"
	"therapy-booking/internal/domain/notification"
	"therapy-booking/internal/domain/payment"
	"therapy-booking/internal/domain/refund"
	"therapy-booking/internal/domain/session"
	sqlc "therapy-booking/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Availability() AvailabilityRepository
	Slots() SlotRepository
	Sessions() SessionRepository
	Payments() PaymentRepository
	Refunds() RefundRepository
	Notifications() NotificationRepository
	Idempotency() IdempotencyRepository
	Reads() CommandReads
	DB() sqlc.DBTX
}

// SlotReads is what slot resolution needs from storage.
type SlotReads interface {
	RulesByTherapist(ctx context.Context, therapistID uuid.UUID) ([]*availability.Rule, error)
	// BookedStarts merges booked slot rows with live sessions starting on date.
	BookedStarts(ctx context.Context, therapistID uuid.UUID, date availability.Date, loc *time.Location) ([]availability.ClockTime, error)
}

type CommandReads interface {
	SlotReads
	TherapistByID(ctx context.Context, id uuid.UUID) (*TherapistSnapshot, error)
	TherapistByUserID(ctx context.Context, userID uuid.UUID) (*TherapistSnapshot, error)
	PatientByID(ctx context.Context, id uuid.UUID) (*PatientSnapshot, error)
	PatientByUserID(ctx context.Context, userID uuid.UUID) (*PatientSnapshot, error)
	PaymentByOrderID(ctx context.Context, orderID string) (*payment.Intent, error)
	BookingPaymentForSession(ctx context.Context, sessionID uuid.UUID) (*payment.Intent, error)
	SessionByID(ctx context.Context, id uuid.UUID) (*session.Session, error)
	SessionHistory(ctx context.Context, sessionID uuid.UUID) ([]session.RescheduleEntry, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type AvailabilityRepository interface {
	DeleteByTherapist(ctx context.Context, tx sqlc.DBTX, therapistID uuid.UUID) (int64, error)
	Insert(ctx context.Context, tx sqlc.DBTX, rule *availability.Rule) error
}

type SlotRepository interface {
	// Ensure returns the slot row for (therapist, date, start), creating it when missing.
	Ensure(ctx context.Context, tx sqlc.DBTX, therapistID uuid.UUID, date availability.Date, start, end availability.ClockTime) (*availability.Slot, error)
	// Claim flips is_booked false -> true. It reports false when another writer got there first.
	Claim(ctx context.Context, tx sqlc.DBTX, slotID uuid.UUID) (bool, error)
	Release(ctx context.Context, tx sqlc.DBTX, slotID uuid.UUID) (bool, error)
	// ReleaseByStart frees a slot found by therapist, date and any stored encoding of start.
	ReleaseByStart(ctx context.Context, tx sqlc.DBTX, therapistID uuid.UUID, date availability.Date, start availability.ClockTime) (bool, error)
}

type SessionRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, s *session.Session) error
	GetForUpdate(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*session.Session, error)
	// UpdateStatus writes s's status only if the stored status is still expected.
	UpdateStatus(ctx context.Context, tx sqlc.DBTX, s *session.Session, expected session.Status) (bool, error)
	Reschedule(ctx context.Context, tx sqlc.DBTX, s *session.Session, expected session.Status) (bool, error)
	InsertHistory(ctx context.Context, tx sqlc.DBTX, entry session.RescheduleEntry) error
}

type PaymentRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, intent *payment.Intent) error
	GetByOrderIDForUpdate(ctx context.Context, tx sqlc.DBTX, orderID string) (*payment.Intent, error)
	// UpdatePendingStatus persists a settled intent only while the stored row is still PENDING.
	UpdatePendingStatus(ctx context.Context, tx sqlc.DBTX, intent *payment.Intent) (bool, error)
	// LinkSession sets session_id once; it reports false when the payment was already linked.
	LinkSession(ctx context.Context, tx sqlc.DBTX, paymentID, sessionID uuid.UUID) (bool, error)
	BookingPaymentForSession(ctx context.Context, tx sqlc.DBTX, sessionID uuid.UUID) (*payment.Intent, error)
	RecordRefund(ctx context.Context, tx sqlc.DBTX, paymentID uuid.UUID, r payment.Refund, metadata map[string]any) (bool, error)
	ExpireStale(ctx context.Context, tx sqlc.DBTX, createdBefore time.Time) (int64, error)
}

type RefundRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, r *refund.CancelRefund) error
	GetByID(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*refund.CancelRefund, error)
	Complete(ctx context.Context, tx sqlc.DBTX, r *refund.CancelRefund) (bool, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, n notification.Notification) (uuid.UUID, error)
	Get(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*notification.Notification, error)
	MarkRead(ctx context.Context, tx sqlc.DBTX, id, receiverID uuid.UUID, at time.Time) (bool, error)
	CreateJob(ctx context.Context, tx sqlc.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}

type IdempotencyRepository interface {
	// TryInsert reports whether this call now owns the key.
	TryInsert(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	UpdateStatusCompleted(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID, resultHash, orderID string) error
	Release(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID) error
	DeleteExpired(ctx context.Context, tx sqlc.DBTX) (int64, error)
}
