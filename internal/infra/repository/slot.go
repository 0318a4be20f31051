package repository

import (
	"context"

	"therapy-booking/internal/domain/availability"
	"therapy-booking/internal/infra"
	"therapy-booking/internal/infra/repository/converter"
	sqlc "therapy-booking/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type SlotWriteQueries interface {
	UpsertAvailabilitySlot(ctx context.Context, db sqlc.DBTX, arg sqlc.UpsertAvailabilitySlotParams) (sqlc.AvailabilitySlots, error)
	ClaimAvailabilitySlot(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int64, error)
	ReleaseAvailabilitySlot(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int64, error)
	ReleaseAvailabilitySlotByStart(ctx context.Context, db sqlc.DBTX, arg sqlc.ReleaseAvailabilitySlotByStartParams) (int64, error)
}

type SlotRepository struct {
	queries SlotWriteQueries
}

func NewSlotRepository(queries SlotWriteQueries) *SlotRepository {
	return &SlotRepository{queries: queries}
}

func (r *SlotRepository) Ensure(ctx context.Context, tx sqlc.DBTX, therapistID uuid.UUID, date availability.Date, start, end availability.ClockTime) (*availability.Slot, error) {
	row, err := r.queries.UpsertAvailabilitySlot(ctx, tx, sqlc.UpsertAvailabilitySlotParams{
		TherapistID: therapistID,
		SlotDate:    converter.DateToInfra(date),
		StartTime:   start.String(),
		EndTime:     end.String(),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to ensure availability slot", err)
	}

	slot, err := converter.SlotFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode availability slot", err, infra.KindDBFailure)
	}
	return slot, nil
}

func (r *SlotRepository) Claim(ctx context.Context, tx sqlc.DBTX, slotID uuid.UUID) (bool, error) {
	n, err := r.queries.ClaimAvailabilitySlot(ctx, tx, slotID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim availability slot", err)
	}
	return n == 1, nil
}

func (r *SlotRepository) Release(ctx context.Context, tx sqlc.DBTX, slotID uuid.UUID) (bool, error) {
	n, err := r.queries.ReleaseAvailabilitySlot(ctx, tx, slotID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to release availability slot", err)
	}
	return n > 0, nil
}

func (r *SlotRepository) ReleaseByStart(ctx context.Context, tx sqlc.DBTX, therapistID uuid.UUID, date availability.Date, start availability.ClockTime) (bool, error) {
	n, err := r.queries.ReleaseAvailabilitySlotByStart(ctx, tx, sqlc.ReleaseAvailabilitySlotByStartParams{
		TherapistID: therapistID,
		SlotDate:    converter.DateToInfra(date),
		StartTimes:  start.Encodings(),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to release availability slot by start", err)
	}
	return n > 0, nil
}
