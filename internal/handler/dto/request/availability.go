package request

import (
	"time"

	"therapy-booking/internal/domain/availability"
)

type ReplaceAvailabilityRequest struct {
	Rules []RuleRequest `json:"rules" binding:"omitempty,dive"`
}

// RuleRequest is one availability rule. Weekdays run 0 (Sunday) to 6.
type RuleRequest struct {
	DayOfWeek         *int    `json:"dayOfWeek,omitempty" binding:"omitempty,min=0,max=6"`
	SpecificDate      *string `json:"specificDate,omitempty"`
	StartTime         string  `json:"startTime" binding:"required"`
	EndTime           string  `json:"endTime" binding:"required"`
	SessionMinutes    int     `json:"sessionMinutes" binding:"required,min=1,max=480"`
	BreakMinutes      int     `json:"breakMinutes" binding:"min=0,max=240"`
	Recurrence        string  `json:"recurrence" binding:"omitempty,oneof=NONE DAILY WEEKLY"`
	RecurrenceDays    []int   `json:"recurrenceDays,omitempty" binding:"omitempty,dive,min=0,max=6"`
	RecurrenceEndDate *string `json:"recurrenceEndDate,omitempty"`
	IsActive          *bool   `json:"isActive,omitempty"`
	IsZeroRate        bool    `json:"isZeroRate"`
}

func (r RuleRequest) ToSpec() (availability.RuleSpec, error) {
	start, err := availability.ParseClockTime(r.StartTime)
	if err != nil {
		return availability.RuleSpec{}, err
	}
	end, err := availability.ParseClockTime(r.EndTime)
	if err != nil {
		return availability.RuleSpec{}, err
	}

	spec := availability.RuleSpec{
		Start:          start,
		End:            end,
		SessionMinutes: r.SessionMinutes,
		BreakMinutes:   r.BreakMinutes,
		Recurrence:     availability.Recurrence{Kind: availability.RecurrenceKind(r.Recurrence)},
		Active:         r.IsActive == nil || *r.IsActive,
		ZeroRate:       r.IsZeroRate,
	}
	if r.DayOfWeek != nil {
		wd := time.Weekday(*r.DayOfWeek)
		spec.DayOfWeek = &wd
	}
	if r.SpecificDate != nil {
		d, err := availability.ParseDate(*r.SpecificDate)
		if err != nil {
			return availability.RuleSpec{}, err
		}
		spec.SpecificDate = &d
	}
	for _, day := range r.RecurrenceDays {
		spec.Recurrence.Days = append(spec.Recurrence.Days, time.Weekday(day))
	}
	if r.RecurrenceEndDate != nil {
		d, err := availability.ParseDate(*r.RecurrenceEndDate)
		if err != nil {
			return availability.RuleSpec{}, err
		}
		spec.Recurrence.EndDate = &d
	}
	return spec, nil
}

func (r ReplaceAvailabilityRequest) ToSpecs() ([]availability.RuleSpec, error) {
	specs := make([]availability.RuleSpec, 0, len(r.Rules))
	for _, rule := range r.Rules {
		spec, err := rule.ToSpec()
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
