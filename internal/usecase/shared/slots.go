package shared

import (
	"context"
	"time"

	"therapy-booking/internal/domain/availability"
	"therapy-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// ResolveDay loads what a therapist offers on date and what is already taken.
func ResolveDay(ctx context.Context, reads SlotReads, settings BookingSettings, therapistID uuid.UUID, date availability.Date, now time.Time) (availability.DayResolution, error) {
	rules, err := reads.RulesByTherapist(ctx, therapistID)
	if err != nil {
		return availability.DayResolution{}, errs.Wrap(err, "failed to load availability rules")
	}
	booked, err := reads.BookedStarts(ctx, therapistID, date, settings.Location)
	if err != nil {
		return availability.DayResolution{}, errs.Wrap(err, "failed to load booked starts")
	}

	return availability.ResolveDay(availability.ResolveInput{
		TherapistID: therapistID,
		Date:        date,
		Rules:       rules,
		Booked:      booked,
		Now:         now,
		LeadTime:    settings.LeadTime,
		Location:    settings.Location,
	}), nil
}
