package session

import "errors"

var (
	ErrInvalidStatus     = errors.New("invalid session status")
	ErrInvalidTransition = errors.New("session status does not allow this change")
	ErrInvalidDuration   = errors.New("session duration must be positive")
	ErrSessionTypeEmpty  = errors.New("session type is required")
	ErrInvalidChannel    = errors.New("invalid booking channel")
)

type Status string

const (
	StatusRequested   Status = "REQUESTED"
	StatusPending     Status = "PENDING"
	StatusScheduled   Status = "SCHEDULED"
	StatusApproved    Status = "APPROVED"
	StatusRescheduled Status = "RESCHEDULED"
	StatusCompleted   Status = "COMPLETED"
	StatusCancelled   Status = "CANCELLED"
	StatusNoShow      Status = "NO_SHOW"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusRequested, StatusPending, StatusScheduled, StatusApproved,
		StatusRescheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// IsCancellable covers both cancellation and rescheduling.
func (s Status) IsCancellable() bool {
	switch s {
	case StatusScheduled, StatusApproved, StatusRequested, StatusRescheduled:
		return true
	default:
		return false
	}
}

func (s Status) String() string { return string(s) }

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// BookingChannel says who is placing a booking and therefore which rules apply.
type BookingChannel string

const (
	ChannelPatient   BookingChannel = "PATIENT"
	ChannelGuardian  BookingChannel = "GUARDIAN"
	ChannelTherapist BookingChannel = "THERAPIST"
)

func (c BookingChannel) IsValid() bool {
	switch c {
	case ChannelPatient, ChannelGuardian, ChannelTherapist:
		return true
	default:
		return false
	}
}

// RequiresPayment reports whether a non zero-rate booking on this channel goes through the gateway.
func (c BookingChannel) RequiresPayment() bool {
	return c == ChannelPatient || c == ChannelGuardian
}
