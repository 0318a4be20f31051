//go:build unit || e2e

package builder

import (
	"strings"
	"time"

	"therapy-booking/internal/domain/availability"
	"therapy-booking/internal/domain/payment"
	"therapy-booking/internal/domain/session"
	reqdto "therapy-booking/internal/handler/dto/request"

	"github.com/google/uuid"
)

type RuleBuilder struct {
	TherapistID    uuid.UUID
	DayOfWeek      *time.Weekday
	SpecificDate   *availability.Date
	Start          string
	End            string
	SessionMinutes int
	BreakMinutes   int
	Recurrence     availability.Recurrence
	Active         bool
	ZeroRate       bool
}

// NewRuleBuilder offers three one-hour sessions every Wednesday morning.
func NewRuleBuilder(therapistID uuid.UUID) *RuleBuilder {
	wednesday := time.Wednesday
	return &RuleBuilder{
		TherapistID:    therapistID,
		DayOfWeek:      &wednesday,
		Start:          "09:00",
		End:            "12:00",
		SessionMinutes: 60,
		Recurrence:     availability.Recurrence{Kind: availability.RecurrenceNone},
		Active:         true,
	}
}

func (b *RuleBuilder) With(mutate func(*RuleBuilder)) *RuleBuilder {
	mutate(b)
	return b
}

func (b *RuleBuilder) BuildSpec() availability.RuleSpec {
	return availability.RuleSpec{
		DayOfWeek:      b.DayOfWeek,
		SpecificDate:   b.SpecificDate,
		Start:          availability.MustParseClockTime(b.Start),
		End:            availability.MustParseClockTime(b.End),
		SessionMinutes: b.SessionMinutes,
		BreakMinutes:   b.BreakMinutes,
		Recurrence:     b.Recurrence,
		Active:         b.Active,
		ZeroRate:       b.ZeroRate,
	}
}

func (b *RuleBuilder) BuildDomain() (*availability.Rule, error) {
	return availability.NewRule(b.TherapistID, b.BuildSpec())
}

type SessionBuilder struct {
	ID              uuid.UUID
	PatientID       uuid.UUID
	TherapistID     uuid.UUID
	SlotID          *uuid.UUID
	ScheduledAt     time.Time
	DurationMinutes int
	SessionType     string
	Status          session.Status
	BookedRateCents int64
	BookedByUserID  uuid.UUID
	CreatedAt       time.Time
}

func NewSessionBuilder(patientID, therapistID uuid.UUID, at time.Time) *SessionBuilder {
	return &SessionBuilder{
		ID:              uuid.New(),
		PatientID:       patientID,
		TherapistID:     therapistID,
		ScheduledAt:     at,
		DurationMinutes: 60,
		SessionType:     "individual",
		Status:          session.StatusScheduled,
		BookedRateCents: 500000,
		CreatedAt:       at.Add(-72 * time.Hour),
	}
}

func (b *SessionBuilder) With(mutate func(*SessionBuilder)) *SessionBuilder {
	mutate(b)
	return b
}

func (b *SessionBuilder) BuildDomain() *session.Session {
	return session.Reconstruct(session.ReconstructParams{
		ID:              b.ID,
		PatientID:       b.PatientID,
		TherapistID:     b.TherapistID,
		SlotID:          b.SlotID,
		ScheduledAt:     b.ScheduledAt,
		DurationMinutes: b.DurationMinutes,
		SessionType:     b.SessionType,
		Status:          b.Status,
		BookedRateCents: b.BookedRateCents,
		BookedByUserID:  b.BookedByUserID,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.CreatedAt,
	})
}

type IntentBuilder struct {
	ID          uuid.UUID
	OrderID     string
	Purpose     payment.Purpose
	PatientID   uuid.UUID
	PayerUserID uuid.UUID
	SessionID   *uuid.UUID
	AmountCents int64
	Currency    string
	Status      payment.Status
	Booking     *payment.PendingBooking
	CreatedAt   time.Time
}

func NewIntentBuilder(patientID, payerUserID uuid.UUID) *IntentBuilder {
	return &IntentBuilder{
		ID:          uuid.New(),
		OrderID:     "ORD-20260301-" + strings.ToUpper(uuid.NewString()[:8]),
		Purpose:     payment.PurposeBooking,
		PatientID:   patientID,
		PayerUserID: payerUserID,
		AmountCents: 500000,
		Currency:    "LKR",
		Status:      payment.StatusPending,
		CreatedAt:   time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (b *IntentBuilder) With(mutate func(*IntentBuilder)) *IntentBuilder {
	mutate(b)
	return b
}

func (b *IntentBuilder) BuildDomain() *payment.Intent {
	return payment.ReconstructIntent(payment.ReconstructParams{
		ID:          b.ID,
		OrderID:     b.OrderID,
		Purpose:     b.Purpose,
		PatientID:   b.PatientID,
		PayerUserID: b.PayerUserID,
		SessionID:   b.SessionID,
		AmountCents: b.AmountCents,
		Currency:    b.Currency,
		Status:      b.Status,
		Booking:     b.Booking,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.CreatedAt,
	})
}

// BuildInitiateRequestDTO is the client request that would have opened this intent.
func (b *IntentBuilder) BuildInitiateRequestDTO(therapistID uuid.UUID) reqdto.InitiatePaymentRequest {
	return reqdto.InitiatePaymentRequest{
		Channel:     string(session.ChannelPatient),
		PatientID:   b.PatientID,
		TherapistID: therapistID,
		Date:        "2026-03-04",
		StartTime:   "10:00",
		AmountCents: b.AmountCents,
		SessionType: "individual",
		Customer: reqdto.CustomerRequest{
			FirstName: "Kamala",
			LastName:  "Jayasuriya",
			Email:     "kamala@example.com",
			Phone:     "0771234567",
			Country:   "Sri Lanka",
		},
	}
}
