package availability

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// SlotView is one candidate start on a resolved day.
type SlotView struct {
	Start          ClockTime
	End            ClockTime
	SessionMinutes int
	ZeroRate       bool
	IsBooked       bool
	IsBlocked      bool
	IsAvailable    bool
}

type DayResolution struct {
	TherapistID uuid.UUID
	Date        Date
	Slots       []SlotView
	Reason      string
}

type ResolveInput struct {
	TherapistID uuid.UUID
	Date        Date
	Rules       []*Rule
	Booked      []ClockTime
	Now         time.Time
	LeadTime    time.Duration
	Location    *time.Location
}

// ResolveDay expands the rules that apply on in.Date into ordered slots.
// When two rules offer the same start the earlier rule wins.
func ResolveDay(in ResolveInput) DayResolution {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	res := DayResolution{TherapistID: in.TherapistID, Date: in.Date, Slots: []SlotView{}}

	matching := make([]*Rule, 0, len(in.Rules))
	for _, r := range in.Rules {
		if r.Matches(in.Date) {
			matching = append(matching, r)
		}
	}
	if len(matching) == 0 {
		res.Reason = fmt.Sprintf("therapist has no availability on %s", in.Date.Weekday())
		return res
	}

	booked := make(map[int]bool, len(in.Booked))
	for _, b := range in.Booked {
		booked[b.Minutes()] = true
	}
	cutoff := in.Now.Add(in.LeadTime)

	seen := make(map[int]bool)
	for _, r := range matching {
		step := r.Step()
		for t := r.Start(); !t.AddMinutes(r.SessionMinutes()).After(r.End()); t = t.AddMinutes(step) {
			if seen[t.Minutes()] {
				continue
			}
			seen[t.Minutes()] = true

			v := SlotView{
				Start:          t,
				End:            t.AddMinutes(r.SessionMinutes()),
				SessionMinutes: r.SessionMinutes(),
				ZeroRate:       r.IsZeroRate(),
				IsBooked:       booked[t.Minutes()],
				IsBlocked:      t.On(in.Date, loc).Before(cutoff),
			}
			v.IsAvailable = !v.IsBooked && !v.IsBlocked
			res.Slots = append(res.Slots, v)
		}
	}

	slices.SortFunc(res.Slots, func(a, b SlotView) int {
		return a.Start.Minutes() - b.Start.Minutes()
	})
	return res
}

// Find returns the slot starting at start, if the day offers one.
func (d DayResolution) Find(start ClockTime) (SlotView, bool) {
	for _, s := range d.Slots {
		if s.Start.Equal(start) {
			return s, true
		}
	}
	return SlotView{}, false
}

func (d DayResolution) Available() []SlotView {
	out := make([]SlotView, 0, len(d.Slots))
	for _, s := range d.Slots {
		if s.IsAvailable {
			out = append(out, s)
		}
	}
	return out
}
