package refund

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"therapy-booking/internal/domain/policy"

	"github.com/google/uuid"
)

var (
	ErrBankDetailsRequired = errors.New("bank details are required when a refund is due")
	ErrInvalidAccount      = errors.New("invalid bank account number")
	ErrAlreadyCompleted    = errors.New("refund already completed")
	ErrNothingToRefund     = errors.New("no refund is due")
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
)

var accountNumberPattern = regexp.MustCompile(`^[0-9]{6,20}$`)

type BankDetails struct {
	BankName      string
	BranchName    string
	AccountHolder string
	AccountNumber string
}

func NewBankDetails(bank, branch, holder, account string) (BankDetails, error) {
	d := BankDetails{
		BankName:      strings.TrimSpace(bank),
		BranchName:    strings.TrimSpace(branch),
		AccountHolder: strings.TrimSpace(holder),
		AccountNumber: strings.ReplaceAll(strings.TrimSpace(account), " ", ""),
	}
	if d.BankName == "" || d.BranchName == "" || d.AccountHolder == "" || d.AccountNumber == "" {
		return BankDetails{}, ErrBankDetailsRequired
	}
	if !accountNumberPattern.MatchString(d.AccountNumber) {
		return BankDetails{}, ErrInvalidAccount
	}
	return d, nil
}

// MaskedAccount keeps the last four digits.
func (d BankDetails) MaskedAccount() string {
	n := len(d.AccountNumber)
	if n <= 4 {
		return d.AccountNumber
	}
	return strings.Repeat("*", n-4) + d.AccountNumber[n-4:]
}

// CancelRefund is the bank payout owed after a guardian cancels a paid session.
type CancelRefund struct {
	id                uuid.UUID
	sessionID         uuid.UUID
	patientID         uuid.UUID
	requestedByUserID uuid.UUID
	computation       policy.RefundComputation
	bank              BankDetails
	status            Status
	payoutReference   string
	completedAt       *time.Time
	createdAt         time.Time
}

func New(sessionID, patientID, requestedBy uuid.UUID, c policy.RefundComputation, bank BankDetails, now time.Time) (*CancelRefund, error) {
	if !c.RefundDue() {
		return nil, ErrNothingToRefund
	}
	if bank.AccountNumber == "" {
		return nil, ErrBankDetailsRequired
	}
	return &CancelRefund{
		id:                uuid.New(),
		sessionID:         sessionID,
		patientID:         patientID,
		requestedByUserID: requestedBy,
		computation:       c,
		bank:              bank,
		status:            StatusPending,
		createdAt:         now,
	}, nil
}

type ReconstructParams struct {
	ID                uuid.UUID
	SessionID         uuid.UUID
	PatientID         uuid.UUID
	RequestedByUserID uuid.UUID
	Computation       policy.RefundComputation
	Bank              BankDetails
	Status            Status
	PayoutReference   string
	CompletedAt       *time.Time
	CreatedAt         time.Time
}

func Reconstruct(p ReconstructParams) *CancelRefund {
	return &CancelRefund{
		id:                p.ID,
		sessionID:         p.SessionID,
		patientID:         p.PatientID,
		requestedByUserID: p.RequestedByUserID,
		computation:       p.Computation,
		bank:              p.Bank,
		status:            p.Status,
		payoutReference:   p.PayoutReference,
		completedAt:       p.CompletedAt,
		createdAt:         p.CreatedAt,
	}
}

func (r *CancelRefund) Complete(payoutReference string, now time.Time) error {
	if r.status == StatusCompleted {
		return ErrAlreadyCompleted
	}
	r.status = StatusCompleted
	r.payoutReference = strings.TrimSpace(payoutReference)
	r.completedAt = &now
	return nil
}

func (r *CancelRefund) ID() uuid.UUID                         { return r.id }
func (r *CancelRefund) SessionID() uuid.UUID                  { return r.sessionID }
func (r *CancelRefund) PatientID() uuid.UUID                  { return r.patientID }
func (r *CancelRefund) RequestedByUserID() uuid.UUID          { return r.requestedByUserID }
func (r *CancelRefund) Computation() policy.RefundComputation { return r.computation }
func (r *CancelRefund) Bank() BankDetails                     { return r.bank }
func (r *CancelRefund) Status() Status                        { return r.status }
func (r *CancelRefund) PayoutReference() string               { return r.payoutReference }
func (r *CancelRefund) CompletedAt() *time.Time               { return r.completedAt }
func (r *CancelRefund) CreatedAt() time.Time                  { return r.createdAt }
