package queries

import (
	"time"

	"github.com/google/uuid"
)

// SlotView represents one resolved start on a therapist's day
type SlotView struct {
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	SessionMinutes int    `json:"session_minutes"`
	ZeroRate       bool   `json:"zero_rate"`
	IsAvailable    bool   `json:"is_available"`
	IsBooked       bool   `json:"is_booked"`
	IsBlocked      bool   `json:"is_blocked"`
}

// DaySlotsView represents read-optimized slot data for one date
type DaySlotsView struct {
	TherapistID uuid.UUID  `json:"therapist_id"`
	Date        string     `json:"date"`
	Slots       []SlotView `json:"slots"`
	Reason      string     `json:"reason,omitempty"`
}

// RuleView represents read-optimized availability rule data
type RuleView struct {
	ID                uuid.UUID `json:"id"`
	TherapistID       uuid.UUID `json:"therapist_id"`
	DayOfWeek         *int      `json:"day_of_week,omitempty"`
	SpecificDate      *string   `json:"specific_date,omitempty"`
	StartTime         string    `json:"start_time"`
	EndTime           string    `json:"end_time"`
	SessionMinutes    int       `json:"session_minutes"`
	BreakMinutes      int       `json:"break_minutes"`
	Recurrence        string    `json:"recurrence"`
	RecurrenceDays    []int     `json:"recurrence_days,omitempty"`
	RecurrenceEndDate *string   `json:"recurrence_end_date,omitempty"`
	IsActive          bool      `json:"is_active"`
	IsZeroRate        bool      `json:"is_zero_rate"`
}

// RescheduleView represents one reschedule history row
type RescheduleView struct {
	PreviousScheduledAt time.Time  `json:"previous_scheduled_at"`
	NewScheduledAt      time.Time  `json:"new_scheduled_at"`
	FeePaymentID        *uuid.UUID `json:"fee_payment_id,omitempty"`
	RescheduledBy       uuid.UUID  `json:"rescheduled_by"`
	CreatedAt           time.Time  `json:"created_at"`
}

// SessionView represents read-optimized session data
type SessionView struct {
	ID              uuid.UUID        `json:"id"`
	PatientID       uuid.UUID        `json:"patient_id"`
	TherapistID     uuid.UUID        `json:"therapist_id"`
	SlotID          *uuid.UUID       `json:"slot_id,omitempty"`
	ScheduledAt     time.Time        `json:"scheduled_at"`
	DurationMinutes int              `json:"duration_minutes"`
	SessionType     string           `json:"session_type"`
	Status          string           `json:"status"`
	BookedRateCents int64            `json:"booked_rate_cents"`
	BookedByUserID  uuid.UUID        `json:"booked_by_user_id"`
	CancelReason    string           `json:"cancel_reason,omitempty"`
	CancelledAt     *time.Time       `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	History         []RescheduleView `json:"history"`
}

// FeeView says what moving a session would cost right now
type FeeView struct {
	Required    bool  `json:"required"`
	AmountCents int64 `json:"amount_cents"`
}

// CancellationQuoteView represents the refund a caller would get by cancelling now
type CancellationQuoteView struct {
	SessionID      uuid.UUID `json:"session_id"`
	Tier           string    `json:"tier"`
	AmountCents    int64     `json:"amount_cents"`
	RefundCents    int64     `json:"refund_cents"`
	PlatformCents  int64     `json:"platform_cents"`
	TherapistCents int64     `json:"therapist_cents"`
	RefundPercent  int64     `json:"refund_percent"`
	HoursBefore    float64   `json:"hours_before"`
	RescheduleFee  FeeView   `json:"reschedule_fee"`
}

// PaymentView represents read-optimized payment data
type PaymentView struct {
	ID               uuid.UUID  `json:"id"`
	OrderID          string     `json:"order_id"`
	Purpose          string     `json:"purpose"`
	Status           string     `json:"status"`
	AmountCents      int64      `json:"amount_cents"`
	Currency         string     `json:"currency"`
	PatientID        uuid.UUID  `json:"patient_id"`
	SessionID        *uuid.UUID `json:"session_id,omitempty"`
	TherapistID      *uuid.UUID `json:"therapist_id,omitempty"`
	BookingDate      *string    `json:"booking_date,omitempty"`
	StartTime        *string    `json:"start_time,omitempty"`
	SessionType      string     `json:"session_type,omitempty"`
	GatewayPaymentID string     `json:"gateway_payment_id,omitempty"`
	PaymentMethod    string     `json:"payment_method,omitempty"`
	RefundCents      *int64     `json:"refund_cents,omitempty"`
	RefundTier       *string    `json:"refund_tier,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
