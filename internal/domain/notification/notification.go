package notification

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypePaymentReceived      Type = "PAYMENT_RECEIVED"
	TypePaymentReceivedAdmin Type = "PAYMENT_RECEIVED_ADMIN"
	TypeSessionBooked        Type = "SESSION_BOOKED"
	TypeSessionRequested     Type = "SESSION_REQUESTED"
	TypeSessionApproved      Type = "SESSION_APPROVED"
	TypeSessionCancelled     Type = "SESSION_CANCELLED"
	TypeSessionRescheduled   Type = "SESSION_RESCHEDULED"
	TypeSessionCompleted     Type = "SESSION_COMPLETED"
	TypeSessionNoShow        Type = "SESSION_NO_SHOW"
	TypeRefundRequested      Type = "REFUND_REQUESTED"
	TypeRefundCompleted      Type = "REFUND_COMPLETED"
	TypeBookingConflict      Type = "BOOKING_CONFLICT"
)

// Topic is the outbox topic a notification of this type is relayed on.
func (t Type) Topic() string {
	switch t {
	case TypePaymentReceived, TypePaymentReceivedAdmin, TypeBookingConflict:
		return "booking.payments"
	case TypeRefundRequested, TypeRefundCompleted:
		return "booking.refunds"
	default:
		return "booking.sessions"
	}
}

// Notification is an in-app message. Delivery happens outside this service.
type Notification struct {
	ID         uuid.UUID  `json:"id"`
	SenderID   *uuid.UUID `json:"sender_id,omitempty"`
	ReceiverID uuid.UUID  `json:"receiver_id"`
	Type       Type       `json:"type"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	IsUrgent   bool       `json:"is_urgent"`
	IsRead     bool       `json:"is_read"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func New(sender *uuid.UUID, receiver uuid.UUID, typ Type, title, message string) Notification {
	return Notification{
		SenderID:   sender,
		ReceiverID: receiver,
		Type:       typ,
		Title:      title,
		Message:    message,
	}
}

func (n Notification) Urgent() Notification {
	n.IsUrgent = true
	return n
}
