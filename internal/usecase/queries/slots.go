package queries

import (
	"context"

	"therapy-booking/internal/domain/availability"
	"therapy-booking/internal/pkg/clock"
	"therapy-booking/internal/pkg/errs"
	"therapy-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type SlotQueries interface {
	// ResolveSlots lists every candidate start on date with its booked and blocked flags.
	ResolveSlots(ctx context.Context, therapistID uuid.UUID, date string) (*DaySlotsView, error)
	ListRules(ctx context.Context, therapistID uuid.UUID) ([]RuleView, error)
}

type slotQueriesImpl struct {
	uow      shared.UnitOfWork
	settings shared.BookingSettings
	clock    clock.Clock
}

func NewSlotQueries(uow shared.UnitOfWork, settings shared.BookingSettings, clk clock.Clock) SlotQueries {
	return &slotQueriesImpl{uow: uow, settings: settings, clock: clk}
}

func (q *slotQueriesImpl) ResolveSlots(ctx context.Context, therapistID uuid.UUID, date string) (view *DaySlotsView, err error) {
	ctx, span := startSpan(ctx, "SlotQueries.ResolveSlots")
	defer func() { endSpan(span, err) }()

	d, err := availability.ParseDate(date)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	reads := q.uow.CommandReads()
	if _, err = reads.TherapistByID(ctx, therapistID); err != nil {
		return nil, lookupErr(err, "therapist")
	}

	day, err := shared.ResolveDay(ctx, reads, q.settings, therapistID, d, q.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return toDaySlotsView(day), nil
}

func (q *slotQueriesImpl) ListRules(ctx context.Context, therapistID uuid.UUID) (views []RuleView, err error) {
	ctx, span := startSpan(ctx, "SlotQueries.ListRules")
	defer func() { endSpan(span, err) }()

	reads := q.uow.CommandReads()
	if _, err = reads.TherapistByID(ctx, therapistID); err != nil {
		return nil, lookupErr(err, "therapist")
	}
	rules, err := reads.RulesByTherapist(ctx, therapistID)
	if err != nil {
		return nil, lookupErr(err, "availability rules")
	}
	views = make([]RuleView, 0, len(rules))
	for _, r := range rules {
		views = append(views, ToRuleView(r))
	}
	return views, nil
}

func toDaySlotsView(day availability.DayResolution) *DaySlotsView {
	view := &DaySlotsView{
		TherapistID: day.TherapistID,
		Date:        day.Date.String(),
		Slots:       make([]SlotView, 0, len(day.Slots)),
		Reason:      day.Reason,
	}
	for _, s := range day.Slots {
		view.Slots = append(view.Slots, SlotView{
			StartTime:      s.Start.String(),
			EndTime:        s.End.String(),
			SessionMinutes: s.SessionMinutes,
			ZeroRate:       s.ZeroRate,
			IsAvailable:    s.IsAvailable,
			IsBooked:       s.IsBooked,
			IsBlocked:      s.IsBlocked,
		})
	}
	return view
}

// ToRuleView flattens a rule for the API. Weekdays are 0 (Sunday) to 6.
func ToRuleView(r *availability.Rule) RuleView {
	view := RuleView{
		ID:             r.ID(),
		TherapistID:    r.TherapistID(),
		StartTime:      r.Start().String(),
		EndTime:        r.End().String(),
		SessionMinutes: r.SessionMinutes(),
		BreakMinutes:   r.BreakMinutes(),
		Recurrence:     string(r.Recurrence().Kind),
		IsActive:       r.IsActive(),
		IsZeroRate:     r.IsZeroRate(),
	}
	if dow := r.DayOfWeek(); dow != nil {
		v := int(*dow)
		view.DayOfWeek = &v
	}
	if d := r.SpecificDate(); d != nil {
		v := d.String()
		view.SpecificDate = &v
	}
	for _, wd := range r.Recurrence().Days {
		view.RecurrenceDays = append(view.RecurrenceDays, int(wd))
	}
	if end := r.Recurrence().EndDate; end != nil {
		v := end.String()
		view.RecurrenceEndDate = &v
	}
	return view
}
