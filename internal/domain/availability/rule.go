package availability

import (
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeRange      = errors.New("start time must be before end time")
	ErrInvalidSessionLength  = errors.New("session duration must be a positive number of minutes")
	ErrInvalidBreakLength    = errors.New("break duration must not be negative")
	ErrRuleTargetRequired    = errors.New("rule needs a day of week or a specific date")
	ErrRuleTargetAmbiguous   = errors.New("rule cannot have both a day of week and a specific date")
	ErrWeeklyDaysRequired    = errors.New("weekly recurrence needs at least one day")
	ErrInvalidRecurrence     = errors.New("invalid recurrence")
	ErrRecurrenceEndsTooSoon = errors.New("recurrence end date is before the rule's first date")
)

type RecurrenceKind string

const (
	RecurrenceNone   RecurrenceKind = "NONE"
	RecurrenceDaily  RecurrenceKind = "DAILY"
	RecurrenceWeekly RecurrenceKind = "WEEKLY"
)

func (k RecurrenceKind) IsValid() bool {
	switch k {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly:
		return true
	default:
		return false
	}
}

type Recurrence struct {
	Kind    RecurrenceKind
	Days    []time.Weekday
	EndDate *Date
}

// RuleSpec is the caller-supplied shape of a rule before validation.
type RuleSpec struct {
	DayOfWeek      *time.Weekday
	SpecificDate   *Date
	Start          ClockTime
	End            ClockTime
	SessionMinutes int
	BreakMinutes   int
	Recurrence     Recurrence
	Active         bool
	ZeroRate       bool
}

// Rule is a therapist's working window template.
type Rule struct {
	id             uuid.UUID
	therapistID    uuid.UUID
	dayOfWeek      *time.Weekday
	specificDate   *Date
	start          ClockTime
	end            ClockTime
	sessionMinutes int
	breakMinutes   int
	recurrence     Recurrence
	active         bool
	zeroRate       bool
}

func NewRule(therapistID uuid.UUID, spec RuleSpec) (*Rule, error) {
	if err := validateSpec(&spec); err != nil {
		return nil, err
	}
	return ReconstructRule(uuid.New(), therapistID, spec), nil
}

func ReconstructRule(id, therapistID uuid.UUID, spec RuleSpec) *Rule {
	return &Rule{
		id:             id,
		therapistID:    therapistID,
		dayOfWeek:      spec.DayOfWeek,
		specificDate:   spec.SpecificDate,
		start:          spec.Start,
		end:            spec.End,
		sessionMinutes: spec.SessionMinutes,
		breakMinutes:   spec.BreakMinutes,
		recurrence:     spec.Recurrence,
		active:         spec.Active,
		zeroRate:       spec.ZeroRate,
	}
}

func validateSpec(spec *RuleSpec) error {
	if !spec.Start.Before(spec.End) {
		return ErrInvalidTimeRange
	}
	if spec.SessionMinutes <= 0 {
		return ErrInvalidSessionLength
	}
	if spec.BreakMinutes < 0 {
		return ErrInvalidBreakLength
	}
	if spec.Recurrence.Kind == "" {
		spec.Recurrence.Kind = RecurrenceNone
	}
	if !spec.Recurrence.Kind.IsValid() {
		return ErrInvalidRecurrence
	}
	if spec.DayOfWeek != nil && spec.SpecificDate != nil {
		return ErrRuleTargetAmbiguous
	}

	switch spec.Recurrence.Kind {
	case RecurrenceNone:
		if spec.DayOfWeek == nil && spec.SpecificDate == nil {
			return ErrRuleTargetRequired
		}
	case RecurrenceWeekly:
		if len(spec.Recurrence.Days) == 0 && spec.DayOfWeek != nil {
			spec.Recurrence.Days = []time.Weekday{*spec.DayOfWeek}
		}
		if len(spec.Recurrence.Days) == 0 {
			return ErrWeeklyDaysRequired
		}
	}

	if end := spec.Recurrence.EndDate; end != nil && spec.SpecificDate != nil && end.Before(*spec.SpecificDate) {
		return ErrRecurrenceEndsTooSoon
	}
	return nil
}

// Matches reports whether the rule contributes slots on d.
// A specific date on a recurring rule acts as its first effective date.
func (r *Rule) Matches(d Date) bool {
	if !r.active {
		return false
	}
	if end := r.recurrence.EndDate; end != nil && d.After(*end) {
		return false
	}

	switch r.recurrence.Kind {
	case RecurrenceDaily:
		return r.specificDate == nil || !d.Before(*r.specificDate)
	case RecurrenceWeekly:
		if r.specificDate != nil && d.Before(*r.specificDate) {
			return false
		}
		return slices.Contains(r.recurrence.Days, d.Weekday())
	default:
		if r.specificDate != nil {
			return *r.specificDate == d
		}
		return r.dayOfWeek != nil && *r.dayOfWeek == d.Weekday()
	}
}

// Step is the distance between consecutive slot starts.
func (r *Rule) Step() int {
	return r.sessionMinutes + r.breakMinutes
}

func (r *Rule) ID() uuid.UUID            { return r.id }
func (r *Rule) TherapistID() uuid.UUID   { return r.therapistID }
func (r *Rule) DayOfWeek() *time.Weekday { return r.dayOfWeek }
func (r *Rule) SpecificDate() *Date      { return r.specificDate }
func (r *Rule) Start() ClockTime         { return r.start }
func (r *Rule) End() ClockTime           { return r.end }
func (r *Rule) SessionMinutes() int      { return r.sessionMinutes }
func (r *Rule) BreakMinutes() int        { return r.breakMinutes }
func (r *Rule) Recurrence() Recurrence   { return r.recurrence }
func (r *Rule) IsActive() bool           { return r.active }
func (r *Rule) IsZeroRate() bool         { return r.zeroRate }
func (r *Rule) IsExplicitInstance() bool {
	return r.specificDate != nil && r.recurrence.Kind == RecurrenceNone
}
