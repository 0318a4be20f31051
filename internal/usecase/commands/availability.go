package commands

import (
	"context"
	"log/slog"
	"strconv"

	"therapy-booking/internal/domain/availability"
	"therapy-booking/internal/domain/user"
	"therapy-booking/internal/pkg/errs"
	"therapy-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type AvailabilityCommands interface {
	// ReplaceAvailability swaps the therapist's whole rule set in one transaction.
	ReplaceAvailability(ctx context.Context, p user.Principal, therapistID uuid.UUID, specs []availability.RuleSpec) ([]*availability.Rule, error)
}

type availabilityUseCaseImpl struct {
	uow      shared.UnitOfWork
	settings shared.BookingSettings
}

func NewAvailabilityUseCase(uow shared.UnitOfWork, settings shared.BookingSettings) AvailabilityCommands {
	return &availabilityUseCaseImpl{uow: uow, settings: settings}
}

func (uc *availabilityUseCaseImpl) ReplaceAvailability(ctx context.Context, p user.Principal, therapistID uuid.UUID, specs []availability.RuleSpec) (rules []*availability.Rule, err error) {
	ctx, span := startSpan(ctx, "AvailabilityCommands.ReplaceAvailability")
	defer func() { endSpan(span, err) }()

	therapist, err := uc.uow.CommandReads().TherapistByID(ctx, therapistID)
	if err != nil {
		return nil, lookupErr(err, "therapist")
	}
	if !shared.CanActForTherapist(p, therapist) {
		return nil, errs.Mark(errs.New("caller does not manage this calendar"), errs.ErrForbidden)
	}

	rules = make([]*availability.Rule, 0, len(specs))
	for i, spec := range specs {
		rule, rerr := availability.NewRule(therapistID, spec)
		if rerr != nil {
			return nil, validation(errs.Wrap(rerr, "rule "+strconv.Itoa(i)))
		}
		rules = append(rules, rule)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		removed, derr := tx.Availability().DeleteByTherapist(ctx, tx.DB(), therapistID)
		if derr != nil {
			return derr
		}
		for _, rule := range rules {
			if derr = tx.Availability().Insert(ctx, tx.DB(), rule); derr != nil {
				return derr
			}
			if derr = uc.materializeInstance(ctx, tx, rule); derr != nil {
				return derr
			}
		}
		slog.Info("availability replaced",
			slog.String("therapist_id", therapistID.String()),
			slog.Int64("removed", removed),
			slog.Int("inserted", len(rules)))
		return nil
	})
	if err != nil {
		return nil, writeErr(err, "failed to replace availability")
	}
	return rules, nil
}

// materializeInstance writes slot rows for a one-off dated rule. Existing rows,
// booked or not, are left as they are.
func (uc *availabilityUseCaseImpl) materializeInstance(ctx context.Context, tx shared.Tx, rule *availability.Rule) error {
	if !rule.IsExplicitInstance() || !rule.IsActive() {
		return nil
	}
	day := availability.ResolveDay(availability.ResolveInput{
		TherapistID: rule.TherapistID(),
		Date:        *rule.SpecificDate(),
		Rules:       []*availability.Rule{rule},
		Location:    uc.settings.Location,
	})
	for _, s := range day.Slots {
		if _, err := tx.Slots().Ensure(ctx, tx.DB(), rule.TherapistID(), day.Date, s.Start, s.End); err != nil {
			return err
		}
	}
	return nil
}
