package response

import (
	"time"

	"therapy-booking/internal/domain/policy"
	"therapy-booking/internal/domain/refund"
	"therapy-booking/internal/domain/session"
	"therapy-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type RescheduleEntryResponse struct {
	PreviousScheduledAt time.Time  `json:"previousScheduledAt"`
	NewScheduledAt      time.Time  `json:"newScheduledAt"`
	FeePaymentID        *uuid.UUID `json:"feePaymentId,omitempty"`
	RescheduledBy       uuid.UUID  `json:"rescheduledBy"`
	CreatedAt           time.Time  `json:"createdAt"`
}

type SessionResponse struct {
	ID              uuid.UUID                 `json:"id"`
	PatientID       uuid.UUID                 `json:"patientId"`
	TherapistID     uuid.UUID                 `json:"therapistId"`
	SlotID          *uuid.UUID                `json:"slotId,omitempty"`
	ScheduledAt     time.Time                 `json:"scheduledAt"`
	DurationMinutes int                       `json:"durationMinutes"`
	SessionType     string                    `json:"sessionType"`
	Status          string                    `json:"status"`
	BookedRateCents int64                     `json:"bookedRateCents"`
	BookedByUserID  uuid.UUID                 `json:"bookedByUserId"`
	CancelReason    string                    `json:"cancelReason,omitempty"`
	CancelledAt     *time.Time                `json:"cancelledAt,omitempty"`
	CreatedAt       time.Time                 `json:"createdAt"`
	UpdatedAt       time.Time                 `json:"updatedAt"`
	History         []RescheduleEntryResponse `json:"history"`
}

type FeeResponse struct {
	Required    bool  `json:"required"`
	AmountCents int64 `json:"amountCents"`
}

type CancellationQuoteResponse struct {
	SessionID      uuid.UUID   `json:"sessionId"`
	Tier           string      `json:"tier"`
	AmountCents    int64       `json:"amountCents"`
	RefundCents    int64       `json:"refundCents"`
	PlatformCents  int64       `json:"platformCents"`
	TherapistCents int64       `json:"therapistCents"`
	RefundPercent  int64       `json:"refundPercent"`
	HoursBefore    float64     `json:"hoursBefore"`
	RescheduleFee  FeeResponse `json:"rescheduleFee"`
}

type RefundBreakdownResponse struct {
	Tier           string  `json:"tier"`
	AmountCents    int64   `json:"amountCents"`
	RefundCents    int64   `json:"refundCents"`
	PlatformCents  int64   `json:"platformCents"`
	TherapistCents int64   `json:"therapistCents"`
	HoursBefore    float64 `json:"hoursBefore"`
}

// PayoutResponse never carries the full account number.
type PayoutResponse struct {
	ID              uuid.UUID  `json:"id"`
	SessionID       uuid.UUID  `json:"sessionId"`
	Status          string     `json:"status"`
	RefundCents     int64      `json:"refundCents"`
	Tier            string     `json:"tier"`
	BankName        string     `json:"bankName"`
	BranchName      string     `json:"branchName"`
	AccountHolder   string     `json:"accountHolder"`
	MaskedAccount   string     `json:"maskedAccount"`
	PayoutReference string     `json:"payoutReference,omitempty"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

type CancelResponse struct {
	Session *SessionResponse        `json:"session"`
	Refund  RefundBreakdownResponse `json:"refund"`
	Payout  *PayoutResponse         `json:"payout,omitempty"`
}

type RescheduleResponse struct {
	Session    *SessionResponse `json:"session"`
	FeeCharged bool             `json:"feeCharged"`
	FeeCents   int64            `json:"feeCents"`
}

func FromSessionView(v *queries.SessionView) *SessionResponse {
	resp := copyInto[SessionResponse](v)
	if resp.History == nil {
		resp.History = []RescheduleEntryResponse{}
	}
	return resp
}

func FromSession(s *session.Session) *SessionResponse {
	return FromSessionView(queries.ToSessionView(s, nil))
}

func FromCancellationQuote(v *queries.CancellationQuoteView) *CancellationQuoteResponse {
	return copyInto[CancellationQuoteResponse](v)
}

func FromRefundComputation(c policy.RefundComputation) RefundBreakdownResponse {
	resp := copyInto[RefundBreakdownResponse](&c)
	resp.Tier = string(c.Tier)
	return *resp
}

func FromCancelRefund(r *refund.CancelRefund) *PayoutResponse {
	if r == nil {
		return nil
	}
	bank := r.Bank()
	return &PayoutResponse{
		ID:              r.ID(),
		SessionID:       r.SessionID(),
		Status:          string(r.Status()),
		RefundCents:     r.Computation().RefundCents,
		Tier:            string(r.Computation().Tier),
		BankName:        bank.BankName,
		BranchName:      bank.BranchName,
		AccountHolder:   bank.AccountHolder,
		MaskedAccount:   bank.MaskedAccount(),
		PayoutReference: r.PayoutReference(),
		CompletedAt:     r.CompletedAt(),
		CreatedAt:       r.CreatedAt(),
	}
}
