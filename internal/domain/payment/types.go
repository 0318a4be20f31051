package payment

import "errors"

var (
	ErrInvalidStatus  = errors.New("invalid payment status")
	ErrInvalidPurpose = errors.New("invalid payment purpose")
	ErrInvalidAmount  = errors.New("amount must be a positive number of cents")
	ErrInvalidOrderID = errors.New("invalid order id")
	ErrNotPending     = errors.New("payment is no longer pending")
	ErrAlreadyLinked  = errors.New("payment is already linked to a session")
	ErrAlreadyRefund  = errors.New("refund already recorded for payment")
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
	StatusCancelled Status = "CANCELLED"
	StatusExpired   Status = "EXPIRED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusCancelled, StatusExpired:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s != StatusPending
}

func (s Status) String() string { return string(s) }

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

type Purpose string

const (
	PurposeBooking       Purpose = "BOOKING"
	PurposeRescheduleFee Purpose = "RESCHEDULE_FEE"
)

func (p Purpose) IsValid() bool {
	return p == PurposeBooking || p == PurposeRescheduleFee
}

func (p Purpose) String() string { return string(p) }

func NewPurpose(s string) (Purpose, error) {
	p := Purpose(s)
	if !p.IsValid() {
		return "", ErrInvalidPurpose
	}
	return p, nil
}
