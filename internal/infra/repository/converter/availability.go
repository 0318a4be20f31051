package converter

import (
	"fmt"
	"time"

	"therapy-booking/internal/domain/availability"
	sqlc "therapy-booking/internal/infra/sqlc/generated"

	"github.com/jackc/pgx/v5/pgtype"
)

func RuleToInfra(r *availability.Rule) sqlc.InsertAvailabilityRuleParams {
	params := sqlc.InsertAvailabilityRuleParams{
		ID:                r.ID(),
		TherapistID:       r.TherapistID(),
		SpecificDate:      DatePtrToInfra(r.SpecificDate()),
		StartTime:         r.Start().String(),
		EndTime:           r.End().String(),
		SessionMinutes:    int32(r.SessionMinutes()),
		BreakMinutes:      int32(r.BreakMinutes()),
		Recurrence:        string(r.Recurrence().Kind),
		RecurrenceDays:    make([]int16, 0, len(r.Recurrence().Days)),
		RecurrenceEndDate: DatePtrToInfra(r.Recurrence().EndDate),
		IsActive:          r.IsActive(),
		IsZeroRate:        r.IsZeroRate(),
	}

	if dow := r.DayOfWeek(); dow != nil {
		params.DayOfWeek = pgtype.Int2{Int16: int16(*dow), Valid: true}
	}
	for _, d := range r.Recurrence().Days {
		params.RecurrenceDays = append(params.RecurrenceDays, int16(d))
	}

	return params
}

func RuleFromInfra(row sqlc.AvailabilityRules) (*availability.Rule, error) {
	start, err := availability.ParseClockTime(row.StartTime)
	if err != nil {
		return nil, fmt.Errorf("rule %s start: %w", row.ID, err)
	}
	end, err := availability.ParseClockTime(row.EndTime)
	if err != nil {
		return nil, fmt.Errorf("rule %s end: %w", row.ID, err)
	}

	spec := availability.RuleSpec{
		SpecificDate:   DatePtrFromInfra(row.SpecificDate),
		Start:          start,
		End:            end,
		SessionMinutes: int(row.SessionMinutes),
		BreakMinutes:   int(row.BreakMinutes),
		Recurrence: availability.Recurrence{
			Kind:    availability.RecurrenceKind(row.Recurrence),
			EndDate: DatePtrFromInfra(row.RecurrenceEndDate),
		},
		Active:   row.IsActive,
		ZeroRate: row.IsZeroRate,
	}
	if row.DayOfWeek.Valid {
		dow := time.Weekday(row.DayOfWeek.Int16)
		spec.DayOfWeek = &dow
	}
	for _, d := range row.RecurrenceDays {
		spec.Recurrence.Days = append(spec.Recurrence.Days, time.Weekday(d))
	}

	return availability.ReconstructRule(row.ID, row.TherapistID, spec), nil
}

func SlotFromInfra(row sqlc.AvailabilitySlots) (*availability.Slot, error) {
	start, err := availability.ParseClockTime(row.StartTime)
	if err != nil {
		return nil, fmt.Errorf("slot %s start: %w", row.ID, err)
	}
	end, err := availability.ParseClockTime(row.EndTime)
	if err != nil {
		return nil, fmt.Errorf("slot %s end: %w", row.ID, err)
	}
	return availability.ReconstructSlot(row.ID, row.TherapistID, DateFromInfra(row.SlotDate), start, end, row.IsBooked), nil
}
