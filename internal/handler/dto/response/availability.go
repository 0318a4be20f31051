package response

import (
	"therapy-booking/internal/domain/availability"
	"therapy-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotResponse struct {
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	SessionMinutes int    `json:"sessionMinutes"`
	ZeroRate       bool   `json:"zeroRate"`
	IsAvailable    bool   `json:"isAvailable"`
	IsBooked       bool   `json:"isBooked"`
	IsBlocked      bool   `json:"isBlocked"`
}

type DaySlotsResponse struct {
	TherapistID uuid.UUID      `json:"therapistId"`
	Date        string         `json:"date"`
	Slots       []SlotResponse `json:"slots"`
	Reason      string         `json:"reason,omitempty"`
}

type RuleResponse struct {
	ID                uuid.UUID `json:"id"`
	TherapistID       uuid.UUID `json:"therapistId"`
	DayOfWeek         *int      `json:"dayOfWeek,omitempty"`
	SpecificDate      *string   `json:"specificDate,omitempty"`
	StartTime         string    `json:"startTime"`
	EndTime           string    `json:"endTime"`
	SessionMinutes    int       `json:"sessionMinutes"`
	BreakMinutes      int       `json:"breakMinutes"`
	Recurrence        string    `json:"recurrence"`
	RecurrenceDays    []int     `json:"recurrenceDays,omitempty"`
	RecurrenceEndDate *string   `json:"recurrenceEndDate,omitempty"`
	IsActive          bool      `json:"isActive"`
	IsZeroRate        bool      `json:"isZeroRate"`
}

func FromDaySlotsView(v *queries.DaySlotsView) *DaySlotsResponse {
	resp := copyInto[DaySlotsResponse](v)
	if resp.Slots == nil {
		resp.Slots = []SlotResponse{}
	}
	return resp
}

func FromRuleViews(views []queries.RuleView) []RuleResponse {
	out := make([]RuleResponse, 0, len(views))
	for i := range views {
		out = append(out, *copyInto[RuleResponse](&views[i]))
	}
	return out
}

func FromRules(rules []*availability.Rule) []RuleResponse {
	views := make([]queries.RuleView, 0, len(rules))
	for _, r := range rules {
		views = append(views, queries.ToRuleView(r))
	}
	return FromRuleViews(views)
}
