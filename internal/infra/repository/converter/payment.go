package converter

import (
	"fmt"

	"therapy-booking/internal/domain/availability"
	"therapy-booking/internal/domain/payment"
	sqlc "therapy-booking/internal/infra/sqlc/generated"
	"therapy-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

func IntentToInfra(i *payment.Intent) sqlc.CreatePaymentParams {
	params := sqlc.CreatePaymentParams{
		ID:          i.ID(),
		OrderID:     i.OrderID(),
		Purpose:     i.Purpose().String(),
		PatientID:   i.PatientID(),
		PayerUserID: i.PayerUserID(),
		SessionID:   pgconv.UUIDPtrToPgtype(i.SessionID()),
		AmountCents: i.AmountCents(),
		Currency:    i.Currency(),
		Status:      i.Status().String(),
	}

	if b := i.Booking(); b != nil {
		params.TherapistID = pgconv.UUIDToPgtype(b.TherapistID)
		params.BookingDate = DateToInfra(b.Date)
		params.BookingStartTime = pgconv.StringToPgtype(b.Start.String())
		params.SlotID = pgconv.UUIDToPgtype(b.SlotID)
		params.SessionType = pgconv.StringToPgtype(b.SessionType)
		params.DurationMinutes = pgconv.Int32ToPgtype(int32(b.DurationMinutes))
	}

	return params
}

func IntentFromInfra(row sqlc.Payments) (*payment.Intent, error) {
	status, err := payment.NewStatus(row.Status)
	if err != nil {
		return nil, fmt.Errorf("payment %s: %w", row.OrderID, err)
	}
	purpose, err := payment.NewPurpose(row.Purpose)
	if err != nil {
		return nil, fmt.Errorf("payment %s: %w", row.OrderID, err)
	}

	p := payment.ReconstructParams{
		ID:               row.ID,
		OrderID:          row.OrderID,
		Purpose:          purpose,
		PatientID:        row.PatientID,
		PayerUserID:      row.PayerUserID,
		SessionID:        pgconv.UUIDPtrFromPgtype(row.SessionID),
		AmountCents:      row.AmountCents,
		Currency:         row.Currency,
		Status:           status,
		GatewayPaymentID: textOrEmpty(row.GatewayPaymentID),
		PaymentMethod:    textOrEmpty(row.PaymentMethod),
		StatusCode:       textOrEmpty(row.StatusCode),
		CreatedAt:        row.CreatedAt.Time,
		UpdatedAt:        row.UpdatedAt.Time,
	}

	if row.TherapistID.Valid && row.BookingDate.Valid && row.BookingStartTime.Valid {
		start, err := availability.ParseClockTime(row.BookingStartTime.String)
		if err != nil {
			return nil, fmt.Errorf("payment %s booking start: %w", row.OrderID, err)
		}
		p.Booking = &payment.PendingBooking{
			TherapistID:     row.TherapistID.Bytes,
			Date:            DateFromInfra(row.BookingDate),
			Start:           start,
			SessionType:     textOrEmpty(row.SessionType),
			DurationMinutes: int(row.DurationMinutes.Int32),
		}
		if row.SlotID.Valid {
			p.Booking.SlotID = row.SlotID.Bytes
		}
	}

	if row.RefundTier.Valid {
		p.Refund = &payment.Refund{
			Cents:      row.RefundCents.Int64,
			Tier:       row.RefundTier.String,
			RefundedAt: row.RefundedAt.Time,
		}
	}

	return payment.ReconstructIntent(p), nil
}

func textOrEmpty(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}
