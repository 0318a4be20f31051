package converter

import (
	"therapy-booking/internal/domain/policy"
	"therapy-booking/internal/domain/refund"
	sqlc "therapy-booking/internal/infra/sqlc/generated"
	"therapy-booking/internal/pkg/pgconv"
)

// RefundToInfra expects the account number to be sealed by the caller.
func RefundToInfra(r *refund.CancelRefund, sealedAccount []byte) sqlc.CreateCancelRefundParams {
	c := r.Computation()
	bank := r.Bank()
	return sqlc.CreateCancelRefundParams{
		ID:                  r.ID(),
		SessionID:           r.SessionID(),
		PatientID:           r.PatientID(),
		RequestedByUserID:   r.RequestedByUserID(),
		AmountCents:         c.AmountCents,
		RefundCents:         c.RefundCents,
		TherapistCents:      c.TherapistCents,
		PlatformCents:       c.PlatformCents,
		Tier:                string(c.Tier),
		BankName:            bank.BankName,
		BranchName:          bank.BranchName,
		AccountHolder:       bank.AccountHolder,
		AccountNumberSealed: sealedAccount,
		Status:              string(r.Status()),
	}
}

func RefundFromInfra(row sqlc.CancelRefunds, accountNumber string) *refund.CancelRefund {
	return refund.Reconstruct(refund.ReconstructParams{
		ID:                row.ID,
		SessionID:         row.SessionID,
		PatientID:         row.PatientID,
		RequestedByUserID: row.RequestedByUserID,
		Computation: policy.RefundComputation{
			Tier:           policy.Tier(row.Tier),
			AmountCents:    row.AmountCents,
			RefundCents:    row.RefundCents,
			PlatformCents:  row.PlatformCents,
			TherapistCents: row.TherapistCents,
		},
		Bank: refund.BankDetails{
			BankName:      row.BankName,
			BranchName:    row.BranchName,
			AccountHolder: row.AccountHolder,
			AccountNumber: accountNumber,
		},
		Status:          refund.Status(row.Status),
		PayoutReference: textOrEmpty(row.PayoutReference),
		CompletedAt:     pgconv.TimePtrFromPgtype(row.CompletedAt),
		CreatedAt:       row.CreatedAt.Time,
	})
}
