package readstore

import (
	"context"
	"time"

	"therapy-booking/internal/domain/availability"
	"therapy-booking/internal/infra"
	"therapy-booking/internal/infra/repository/converter"
	sqlc "therapy-booking/internal/infra/sqlc/generated"
	"therapy-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type AvailabilityReadQueries interface {
	ListAvailabilityRulesByTherapist(ctx context.Context, db sqlc.DBTX, therapistID uuid.UUID) ([]sqlc.AvailabilityRules, error)
	ListBookedSlotStarts(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookedSlotStartsParams) ([]string, error)
	ListSessionStartsInRange(ctx context.Context, db sqlc.DBTX, arg sqlc.ListSessionStartsInRangeParams) ([]pgtype.Timestamptz, error)
}

type AvailabilityReadStore struct {
	queries AvailabilityReadQueries
}

func NewAvailabilityReadStore(queries AvailabilityReadQueries) *AvailabilityReadStore {
	return &AvailabilityReadStore{
		queries: queries,
	}
}

func (r *AvailabilityReadStore) RulesByTherapist(ctx context.Context, db sqlc.DBTX, therapistID uuid.UUID) ([]*availability.Rule, error) {
	rows, err := r.queries.ListAvailabilityRulesByTherapist(ctx, db, therapistID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list availability rules", err)
	}

	rules := make([]*availability.Rule, 0, len(rows))
	for _, row := range rows {
		rule, err := converter.RuleFromInfra(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode availability rule", err, infra.KindDBFailure)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// BookedStarts unions booked slot rows with live session start times on date.
// Slot rows may carry older time encodings, so everything is normalized to ClockTime.
func (r *AvailabilityReadStore) BookedStarts(ctx context.Context, db sqlc.DBTX, therapistID uuid.UUID, date availability.Date, loc *time.Location) ([]availability.ClockTime, error) {
	raw, err := r.queries.ListBookedSlotStarts(ctx, db, sqlc.ListBookedSlotStartsParams{
		TherapistID: therapistID,
		SlotDate:    converter.DateToInfra(date),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booked slots", err)
	}

	from, to := date.Bounds(loc)
	sessionStarts, err := r.queries.ListSessionStartsInRange(ctx, db, sqlc.ListSessionStartsInRangeParams{
		TherapistID: therapistID,
		RangeStart:  pgconv.TimeToPgtype(from),
		RangeEnd:    pgconv.TimeToPgtype(to),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list session starts", err)
	}

	booked := availability.NormalizeStarts(raw)
	for _, ts := range sessionStarts {
		if ts.Valid {
			booked = append(booked, availability.ClockTimeOf(ts.Time, loc))
		}
	}
	return booked, nil
}
