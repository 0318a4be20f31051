package response

import (
	"time"

	"therapy-booking/internal/domain/payment"
	"therapy-booking/internal/usecase/queries"
	"therapy-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type PaymentResponse struct {
	ID               uuid.UUID  `json:"id"`
	OrderID          string     `json:"orderId"`
	Purpose          string     `json:"purpose"`
	Status           string     `json:"status"`
	AmountCents      int64      `json:"amountCents"`
	Currency         string     `json:"currency"`
	PatientID        uuid.UUID  `json:"patientId"`
	SessionID        *uuid.UUID `json:"sessionId,omitempty"`
	TherapistID      *uuid.UUID `json:"therapistId,omitempty"`
	BookingDate      *string    `json:"bookingDate,omitempty"`
	StartTime        *string    `json:"startTime,omitempty"`
	SessionType      string     `json:"sessionType,omitempty"`
	GatewayPaymentID string     `json:"gatewayPaymentId,omitempty"`
	PaymentMethod    string     `json:"paymentMethod,omitempty"`
	RefundCents      *int64     `json:"refundCents,omitempty"`
	RefundTier       *string    `json:"refundTier,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// InitiatePaymentResponse carries the pending intent and the fields the client
// posts to the hosted checkout. Checkout keys keep the gateway's own names.
type InitiatePaymentResponse struct {
	Payment  *PaymentResponse      `json:"payment"`
	Checkout shared.CheckoutParams `json:"checkout"`
	Replayed bool                  `json:"replayed"`
}

type BookingResponse struct {
	Payment  *PaymentResponse `json:"payment"`
	Session  *SessionResponse `json:"session"`
	Replayed bool             `json:"replayed"`
}

func FromPaymentView(v *queries.PaymentView) *PaymentResponse {
	return copyInto[PaymentResponse](v)
}

func FromIntent(i *payment.Intent) *PaymentResponse {
	return FromPaymentView(queries.ToPaymentView(i))
}

func FromInitiatePayment(i *payment.Intent, checkout shared.CheckoutParams, replayed bool) *InitiatePaymentResponse {
	return &InitiatePaymentResponse{
		Payment:  FromIntent(i),
		Checkout: checkout,
		Replayed: replayed,
	}
}
