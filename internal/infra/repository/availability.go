package repository

import (
	"context"

	"therapy-booking/internal/domain/availability"
	"therapy-booking/internal/infra"
	"therapy-booking/internal/infra/repository/converter"
	sqlc "therapy-booking/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type AvailabilityWriteQueries interface {
	DeleteAvailabilityRulesByTherapist(ctx context.Context, db sqlc.DBTX, therapistID uuid.UUID) (int64, error)
	InsertAvailabilityRule(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertAvailabilityRuleParams) (sqlc.AvailabilityRules, error)
}

type AvailabilityRepository struct {
	queries AvailabilityWriteQueries
}

func NewAvailabilityRepository(queries AvailabilityWriteQueries) *AvailabilityRepository {
	return &AvailabilityRepository{queries: queries}
}

func (r *AvailabilityRepository) DeleteByTherapist(ctx context.Context, tx sqlc.DBTX, therapistID uuid.UUID) (int64, error) {
	n, err := r.queries.DeleteAvailabilityRulesByTherapist(ctx, tx, therapistID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete availability rules", err)
	}
	return n, nil
}

func (r *AvailabilityRepository) Insert(ctx context.Context, tx sqlc.DBTX, rule *availability.Rule) error {
	if _, err := r.queries.InsertAvailabilityRule(ctx, tx, converter.RuleToInfra(rule)); err != nil {
		return infra.WrapRepoErr("failed to insert availability rule", err)
	}
	return nil
}
