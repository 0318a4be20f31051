package payment

import (
	"time"

	"therapy-booking/internal/domain/availability"

	"github.com/google/uuid"
)

// PendingBooking is the booking a BOOKING intent pays for. It travels with the
// intent until the booking is materialized.
type PendingBooking struct {
	TherapistID     uuid.UUID
	Date            availability.Date
	Start           availability.ClockTime
	SlotID          uuid.UUID
	SessionType     string
	DurationMinutes int
}

// Refund is the outcome recorded on a payment after its session is cancelled.
type Refund struct {
	Cents      int64
	Tier       string
	RefundedAt time.Time
}

type Intent struct {
	id          uuid.UUID
	orderID     string
	purpose     Purpose
	patientID   uuid.UUID
	payerUserID uuid.UUID
	sessionID   *uuid.UUID
	amountCents int64
	currency    string
	status      Status
	booking     *PendingBooking

	gatewayPaymentID string
	paymentMethod    string
	statusCode       string
	refund           *Refund

	createdAt time.Time
	updatedAt time.Time
}

type NewIntentParams struct {
	OrderID     string
	Purpose     Purpose
	PatientID   uuid.UUID
	PayerUserID uuid.UUID
	SessionID   *uuid.UUID
	AmountCents int64
	Currency    string
	Booking     *PendingBooking
	Now         time.Time
}

func NewIntent(p NewIntentParams) (*Intent, error) {
	if !p.Purpose.IsValid() {
		return nil, ErrInvalidPurpose
	}
	if p.AmountCents <= 0 {
		return nil, ErrInvalidAmount
	}
	if !ValidOrderID(p.OrderID) {
		return nil, ErrInvalidOrderID
	}
	if p.Purpose == PurposeBooking && p.Booking == nil {
		return nil, ErrInvalidPurpose
	}
	return &Intent{
		id:          uuid.New(),
		orderID:     p.OrderID,
		purpose:     p.Purpose,
		patientID:   p.PatientID,
		payerUserID: p.PayerUserID,
		sessionID:   p.SessionID,
		amountCents: p.AmountCents,
		currency:    p.Currency,
		status:      StatusPending,
		booking:     p.Booking,
		createdAt:   p.Now,
		updatedAt:   p.Now,
	}, nil
}

type ReconstructParams struct {
	ID               uuid.UUID
	OrderID          string
	Purpose          Purpose
	PatientID        uuid.UUID
	PayerUserID      uuid.UUID
	SessionID        *uuid.UUID
	AmountCents      int64
	Currency         string
	Status           Status
	Booking          *PendingBooking
	GatewayPaymentID string
	PaymentMethod    string
	StatusCode       string
	Refund           *Refund
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func ReconstructIntent(p ReconstructParams) *Intent {
	return &Intent{
		id:               p.ID,
		orderID:          p.OrderID,
		purpose:          p.Purpose,
		patientID:        p.PatientID,
		payerUserID:      p.PayerUserID,
		sessionID:        p.SessionID,
		amountCents:      p.AmountCents,
		currency:         p.Currency,
		status:           p.Status,
		booking:          p.Booking,
		gatewayPaymentID: p.GatewayPaymentID,
		paymentMethod:    p.PaymentMethod,
		statusCode:       p.StatusCode,
		refund:           p.Refund,
		createdAt:        p.CreatedAt,
		updatedAt:        p.UpdatedAt,
	}
}

// Settle moves a pending intent to the gateway-reported status.
func (i *Intent) Settle(status Status, gatewayPaymentID, method, statusCode string, now time.Time) error {
	if i.status != StatusPending {
		return ErrNotPending
	}
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	i.status = status
	i.gatewayPaymentID = gatewayPaymentID
	i.paymentMethod = method
	i.statusCode = statusCode
	i.updatedAt = now
	return nil
}

func (i *Intent) LinkSession(sessionID uuid.UUID, now time.Time) error {
	if i.sessionID != nil {
		return ErrAlreadyLinked
	}
	i.sessionID = &sessionID
	i.updatedAt = now
	return nil
}

func (i *Intent) RecordRefund(r Refund) error {
	if i.refund != nil {
		return ErrAlreadyRefund
	}
	i.refund = &r
	i.updatedAt = r.RefundedAt
	return nil
}

func (i *Intent) IsCompleted() bool { return i.status == StatusCompleted }
func (i *Intent) IsLinked() bool    { return i.sessionID != nil }

// PaidBy reports whether userID created the intent.
func (i *Intent) PaidBy(userID uuid.UUID) bool { return i.payerUserID == userID }

func (i *Intent) ID() uuid.UUID            { return i.id }
func (i *Intent) OrderID() string          { return i.orderID }
func (i *Intent) Purpose() Purpose         { return i.purpose }
func (i *Intent) PatientID() uuid.UUID     { return i.patientID }
func (i *Intent) PayerUserID() uuid.UUID   { return i.payerUserID }
func (i *Intent) SessionID() *uuid.UUID    { return i.sessionID }
func (i *Intent) AmountCents() int64       { return i.amountCents }
func (i *Intent) Currency() string         { return i.currency }
func (i *Intent) Status() Status           { return i.status }
func (i *Intent) Booking() *PendingBooking { return i.booking }
func (i *Intent) GatewayPaymentID() string { return i.gatewayPaymentID }
func (i *Intent) PaymentMethod() string    { return i.paymentMethod }
func (i *Intent) StatusCode() string       { return i.statusCode }
func (i *Intent) Refund() *Refund          { return i.refund }
func (i *Intent) CreatedAt() time.Time     { return i.createdAt }
func (i *Intent) UpdatedAt() time.Time     { return i.updatedAt }
