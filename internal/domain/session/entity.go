package session

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Session struct {
	id              uuid.UUID
	patientID       uuid.UUID
	therapistID     uuid.UUID
	slotID          *uuid.UUID
	scheduledAt     time.Time
	durationMinutes int
	sessionType     string
	status          Status
	bookedRateCents int64
	bookedByUserID  uuid.UUID
	cancelReason    string
	cancelledAt     *time.Time
	createdAt       time.Time
	updatedAt       time.Time
}

type NewParams struct {
	PatientID       uuid.UUID
	TherapistID     uuid.UUID
	SlotID          *uuid.UUID
	ScheduledAt     time.Time
	DurationMinutes int
	SessionType     string
	Status          Status
	BookedRateCents int64
	BookedByUserID  uuid.UUID
	Now             time.Time
}

// New creates a session in its initial state. Only SCHEDULED and REQUESTED are valid starting points.
func New(p NewParams) (*Session, error) {
	if p.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if strings.TrimSpace(p.SessionType) == "" {
		return nil, ErrSessionTypeEmpty
	}
	if p.Status != StatusScheduled && p.Status != StatusRequested {
		return nil, ErrInvalidTransition
	}
	return &Session{
		id:              uuid.New(),
		patientID:       p.PatientID,
		therapistID:     p.TherapistID,
		slotID:          p.SlotID,
		scheduledAt:     p.ScheduledAt,
		durationMinutes: p.DurationMinutes,
		sessionType:     strings.TrimSpace(p.SessionType),
		status:          p.Status,
		bookedRateCents: p.BookedRateCents,
		bookedByUserID:  p.BookedByUserID,
		createdAt:       p.Now,
		updatedAt:       p.Now,
	}, nil
}

type ReconstructParams struct {
	ID              uuid.UUID
	PatientID       uuid.UUID
	TherapistID     uuid.UUID
	SlotID          *uuid.UUID
	ScheduledAt     time.Time
	DurationMinutes int
	SessionType     string
	Status          Status
	BookedRateCents int64
	BookedByUserID  uuid.UUID
	CancelReason    string
	CancelledAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func Reconstruct(p ReconstructParams) *Session {
	return &Session{
		id:              p.ID,
		patientID:       p.PatientID,
		therapistID:     p.TherapistID,
		slotID:          p.SlotID,
		scheduledAt:     p.ScheduledAt,
		durationMinutes: p.DurationMinutes,
		sessionType:     p.SessionType,
		status:          p.Status,
		bookedRateCents: p.BookedRateCents,
		bookedByUserID:  p.BookedByUserID,
		cancelReason:    p.CancelReason,
		cancelledAt:     p.CancelledAt,
		createdAt:       p.CreatedAt,
		updatedAt:       p.UpdatedAt,
	}
}

// Approve confirms a requested session or settles a reschedule.
func (s *Session) Approve(now time.Time) error {
	switch s.status {
	case StatusRequested, StatusPending:
		s.status = StatusApproved
	case StatusRescheduled:
		s.status = StatusScheduled
	default:
		return ErrInvalidTransition
	}
	s.updatedAt = now
	return nil
}

func (s *Session) Complete(now time.Time) error {
	return s.close(StatusCompleted, now)
}

func (s *Session) MarkNoShow(now time.Time) error {
	return s.close(StatusNoShow, now)
}

func (s *Session) close(to Status, now time.Time) error {
	if s.status != StatusScheduled && s.status != StatusApproved {
		return ErrInvalidTransition
	}
	s.status = to
	s.updatedAt = now
	return nil
}

func (s *Session) Cancel(reason string, now time.Time) error {
	if !s.status.IsCancellable() {
		return ErrInvalidTransition
	}
	s.status = StatusCancelled
	s.cancelReason = strings.TrimSpace(reason)
	s.cancelledAt = &now
	s.updatedAt = now
	return nil
}

// Reschedule moves the session and returns the history entry for the move.
func (s *Session) Reschedule(at time.Time, slotID *uuid.UUID, by uuid.UUID, feePaymentID *uuid.UUID, now time.Time) (RescheduleEntry, error) {
	if !s.status.IsCancellable() {
		return RescheduleEntry{}, ErrInvalidTransition
	}
	entry := RescheduleEntry{
		SessionID:           s.id,
		PreviousScheduledAt: s.scheduledAt,
		NewScheduledAt:      at,
		PreviousSlotID:      s.slotID,
		NewSlotID:           slotID,
		FeePaymentID:        feePaymentID,
		RescheduledBy:       by,
		CreatedAt:           now,
	}
	s.scheduledAt = at
	s.slotID = slotID
	s.status = StatusRescheduled
	s.updatedAt = now
	return entry, nil
}

func (s *Session) ID() uuid.UUID             { return s.id }
func (s *Session) PatientID() uuid.UUID      { return s.patientID }
func (s *Session) TherapistID() uuid.UUID    { return s.therapistID }
func (s *Session) SlotID() *uuid.UUID        { return s.slotID }
func (s *Session) ScheduledAt() time.Time    { return s.scheduledAt }
func (s *Session) DurationMinutes() int      { return s.durationMinutes }
func (s *Session) SessionType() string       { return s.sessionType }
func (s *Session) Status() Status            { return s.status }
func (s *Session) BookedRateCents() int64    { return s.bookedRateCents }
func (s *Session) BookedByUserID() uuid.UUID { return s.bookedByUserID }
func (s *Session) CancelReason() string      { return s.cancelReason }
func (s *Session) CancelledAt() *time.Time   { return s.cancelledAt }
func (s *Session) CreatedAt() time.Time      { return s.createdAt }
func (s *Session) UpdatedAt() time.Time      { return s.updatedAt }

// RescheduleEntry is one row of a session's reschedule history.
type RescheduleEntry struct {
	SessionID           uuid.UUID
	PreviousScheduledAt time.Time
	NewScheduledAt      time.Time
	PreviousSlotID      *uuid.UUID
	NewSlotID           *uuid.UUID
	FeePaymentID        *uuid.UUID
	RescheduledBy       uuid.UUID
	CreatedAt           time.Time
}
