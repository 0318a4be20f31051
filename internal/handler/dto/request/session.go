package request

import (
	"strings"

	"therapy-booking/internal/domain/session"
	"therapy-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type RequestSessionRequest struct {
	Channel     string    `json:"channel" binding:"required,oneof=PATIENT GUARDIAN THERAPIST"`
	PatientID   uuid.UUID `json:"patientId" binding:"required"`
	TherapistID uuid.UUID `json:"therapistId" binding:"required"`
	Date        string    `json:"date" binding:"required"`
	StartTime   string    `json:"startTime" binding:"required"`
	SessionType string    `json:"sessionType" binding:"max=50"`
}

func (r RequestSessionRequest) ToInput() commands.RequestSessionInput {
	return commands.RequestSessionInput{
		Channel:     session.BookingChannel(r.Channel),
		PatientID:   r.PatientID,
		TherapistID: r.TherapistID,
		Date:        strings.TrimSpace(r.Date),
		StartTime:   strings.TrimSpace(r.StartTime),
		SessionType: r.SessionType,
	}
}

type CancelSessionRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type GuardianCancelRequest struct {
	Reason        string `json:"reason" binding:"max=500"`
	BankName      string `json:"bankName" binding:"required,max=100"`
	BranchName    string `json:"branchName" binding:"required,max=100"`
	AccountHolder string `json:"accountHolder" binding:"required,max=150"`
	AccountNumber string `json:"accountNumber" binding:"required,max=30"`
}

func (r GuardianCancelRequest) BankDetails() commands.BankDetailsInput {
	return commands.BankDetailsInput{
		BankName:      r.BankName,
		BranchName:    r.BranchName,
		AccountHolder: r.AccountHolder,
		AccountNumber: r.AccountNumber,
	}
}

type RescheduleRequest struct {
	Date       string `json:"date" binding:"required"`
	StartTime  string `json:"startTime" binding:"required"`
	FeeOrderID string `json:"feeOrderId,omitempty"`
}

func (r RescheduleRequest) ToInput() commands.RescheduleInput {
	return commands.RescheduleInput{
		Date:       strings.TrimSpace(r.Date),
		StartTime:  strings.TrimSpace(r.StartTime),
		FeeOrderID: r.FeeOrderID,
	}
}

type RescheduleFeeRequest struct {
	Customer CustomerRequest `json:"customer"`
}

type CompleteRefundRequest struct {
	PayoutReference string `json:"payoutReference" binding:"required,max=100"`
}
