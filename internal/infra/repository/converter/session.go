package converter

import (
	"fmt"

	"therapy-booking/internal/domain/session"
	sqlc "therapy-booking/internal/infra/sqlc/generated"
	"therapy-booking/internal/pkg/pgconv"
)

func SessionToInfra(s *session.Session) sqlc.CreateTherapySessionParams {
	return sqlc.CreateTherapySessionParams{
		ID:              s.ID(),
		PatientID:       s.PatientID(),
		TherapistID:     s.TherapistID(),
		SlotID:          pgconv.UUIDPtrToPgtype(s.SlotID()),
		ScheduledAt:     pgconv.TimeToPgtype(s.ScheduledAt()),
		DurationMinutes: int32(s.DurationMinutes()),
		SessionType:     s.SessionType(),
		Status:          s.Status().String(),
		BookedRateCents: s.BookedRateCents(),
		BookedByUserID:  s.BookedByUserID(),
	}
}

func SessionFromInfra(row sqlc.TherapySessions) (*session.Session, error) {
	status, err := session.NewStatus(row.Status)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", row.ID, err)
	}
	return session.Reconstruct(session.ReconstructParams{
		ID:              row.ID,
		PatientID:       row.PatientID,
		TherapistID:     row.TherapistID,
		SlotID:          pgconv.UUIDPtrFromPgtype(row.SlotID),
		ScheduledAt:     row.ScheduledAt.Time,
		DurationMinutes: int(row.DurationMinutes),
		SessionType:     row.SessionType,
		Status:          status,
		BookedRateCents: row.BookedRateCents,
		BookedByUserID:  row.BookedByUserID,
		CancelReason:    textOrEmpty(row.CancelReason),
		CancelledAt:     pgconv.TimePtrFromPgtype(row.CancelledAt),
		CreatedAt:       row.CreatedAt.Time,
		UpdatedAt:       row.UpdatedAt.Time,
	}), nil
}

func RescheduleEntryToInfra(e session.RescheduleEntry) sqlc.InsertRescheduleHistoryParams {
	return sqlc.InsertRescheduleHistoryParams{
		SessionID:           e.SessionID,
		PreviousScheduledAt: pgconv.TimeToPgtype(e.PreviousScheduledAt),
		NewScheduledAt:      pgconv.TimeToPgtype(e.NewScheduledAt),
		PreviousSlotID:      pgconv.UUIDPtrToPgtype(e.PreviousSlotID),
		NewSlotID:           pgconv.UUIDPtrToPgtype(e.NewSlotID),
		FeePaymentID:        pgconv.UUIDPtrToPgtype(e.FeePaymentID),
		RescheduledBy:       e.RescheduledBy,
	}
}

func RescheduleEntryFromInfra(row sqlc.RescheduleHistory) session.RescheduleEntry {
	return session.RescheduleEntry{
		SessionID:           row.SessionID,
		PreviousScheduledAt: row.PreviousScheduledAt.Time,
		NewScheduledAt:      row.NewScheduledAt.Time,
		PreviousSlotID:      pgconv.UUIDPtrFromPgtype(row.PreviousSlotID),
		NewSlotID:           pgconv.UUIDPtrFromPgtype(row.NewSlotID),
		FeePaymentID:        pgconv.UUIDPtrFromPgtype(row.FeePaymentID),
		RescheduledBy:       row.RescheduledBy,
		CreatedAt:           row.CreatedAt.Time,
	}
}
