//go:build unit

package availability_test

import (
	"testing"
	"time"

	"therapy-booking/internal/domain/availability"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var colombo = time.FixedZone("Asia/Colombo", int((5*time.Hour + 30*time.Minute).Seconds()))

func weekday(d time.Weekday) *time.Weekday { return &d }

func mustRule(t *testing.T, spec availability.RuleSpec) *availability.Rule {
	t.Helper()
	r, err := availability.NewRule(uuid.New(), spec)
	require.NoError(t, err)
	return r
}

func mondayRule(t *testing.T) *availability.Rule {
	return mustRule(t, availability.RuleSpec{
		DayOfWeek:      weekday(time.Monday),
		Start:          availability.MustParseClockTime("09:00"),
		End:            availability.MustParseClockTime("12:00"),
		SessionMinutes: 45,
		BreakMinutes:   15,
		Active:         true,
	})
}

func starts(slots []availability.SlotView) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start.String())
	}
	return out
}

func TestResolveDay(t *testing.T) {
	monday := availability.MustParseDate("2025-03-03")
	earlier := time.Date(2025, 3, 1, 8, 0, 0, 0, colombo)

	t.Run("walks the window by session plus break", func(t *testing.T) {
		res := availability.ResolveDay(availability.ResolveInput{
			Date:     monday,
			Rules:    []*availability.Rule{mondayRule(t)},
			Now:      earlier,
			LeadTime: 3 * time.Hour,
			Location: colombo,
		})

		if diff := cmp.Diff([]string{"09:00", "10:00", "11:00"}, starts(res.Slots)); diff != "" {
			t.Errorf("starts mismatch (-want +got):\n%s", diff)
		}
		for _, s := range res.Slots {
			assert.True(t, s.IsAvailable)
			assert.Equal(t, 45, s.End.Minutes()-s.Start.Minutes())
		}
		assert.Empty(t, res.Reason)
	})

	t.Run("a booked start is reported as booked and unavailable", func(t *testing.T) {
		res := availability.ResolveDay(availability.ResolveInput{
			Date:     monday,
			Rules:    []*availability.Rule{mondayRule(t)},
			Booked:   availability.NormalizeStarts([]string{"10:00:00"}),
			Now:      earlier,
			LeadTime: 3 * time.Hour,
			Location: colombo,
		})

		slot, ok := res.Find(availability.MustParseClockTime("10:00"))
		require.True(t, ok)
		assert.True(t, slot.IsBooked)
		assert.False(t, slot.IsAvailable)
		assert.Len(t, res.Available(), 2)
	})

	t.Run("slots inside the lead-time window are blocked", func(t *testing.T) {
		now := time.Date(2025, 3, 3, 7, 30, 0, 0, colombo)
		res := availability.ResolveDay(availability.ResolveInput{
			Date:     monday,
			Rules:    []*availability.Rule{mondayRule(t)},
			Now:      now,
			LeadTime: 3 * time.Hour,
			Location: colombo,
		})

		got := map[string]bool{}
		for _, s := range res.Slots {
			got[s.Start.String()] = s.IsBlocked
		}
		want := map[string]bool{"09:00": true, "10:00": true, "11:00": false}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("blocked mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no matching rule yields an empty list with a reason", func(t *testing.T) {
		res := availability.ResolveDay(availability.ResolveInput{
			Date:     monday.AddDays(1),
			Rules:    []*availability.Rule{mondayRule(t)},
			Now:      earlier,
			Location: colombo,
		})

		assert.Empty(t, res.Slots)
		assert.Equal(t, "therapist has no availability on Tuesday", res.Reason)
	})

	t.Run("overlapping rules collapse duplicate starts and stay ordered", func(t *testing.T) {
		afternoon := mustRule(t, availability.RuleSpec{
			DayOfWeek:      weekday(time.Monday),
			Start:          availability.MustParseClockTime("14:00"),
			End:            availability.MustParseClockTime("15:00"),
			SessionMinutes: 60,
			Active:         true,
		})
		overlap := mustRule(t, availability.RuleSpec{
			Recurrence:     availability.Recurrence{Kind: availability.RecurrenceWeekly, Days: []time.Weekday{time.Monday}},
			Start:          availability.MustParseClockTime("11:00"),
			End:            availability.MustParseClockTime("12:00"),
			SessionMinutes: 60,
			Active:         true,
			ZeroRate:       true,
		})

		res := availability.ResolveDay(availability.ResolveInput{
			Date:     monday,
			Rules:    []*availability.Rule{afternoon, mondayRule(t), overlap},
			Now:      earlier,
			Location: colombo,
		})

		if diff := cmp.Diff([]string{"09:00", "10:00", "11:00", "14:00"}, starts(res.Slots)); diff != "" {
			t.Errorf("starts mismatch (-want +got):\n%s", diff)
		}
		eleven, ok := res.Find(availability.MustParseClockTime("11:00"))
		require.True(t, ok)
		assert.False(t, eleven.ZeroRate)
		assert.Equal(t, 45, eleven.SessionMinutes)
	})

	t.Run("a window shorter than one session yields nothing", func(t *testing.T) {
		short := mustRule(t, availability.RuleSpec{
			DayOfWeek:      weekday(time.Monday),
			Start:          availability.MustParseClockTime("09:00"),
			End:            availability.MustParseClockTime("09:30"),
			SessionMinutes: 45,
			Active:         true,
		})

		res := availability.ResolveDay(availability.ResolveInput{
			Date:     monday,
			Rules:    []*availability.Rule{short},
			Now:      earlier,
			Location: colombo,
		})
		assert.Empty(t, res.Slots)
		assert.Empty(t, res.Reason)
	})
}

func TestRuleMatches(t *testing.T) {
	monday := availability.MustParseDate("2025-03-03")
	end := availability.MustParseDate("2025-03-10")
	start := availability.MustParseDate("2025-03-05")

	cases := []struct {
		name string
		spec availability.RuleSpec
		date availability.Date
		want bool
	}{
		{
			name: "day of week matches",
			spec: availability.RuleSpec{DayOfWeek: weekday(time.Monday)},
			date: monday,
			want: true,
		},
		{
			name: "day of week other day",
			spec: availability.RuleSpec{DayOfWeek: weekday(time.Monday)},
			date: monday.AddDays(2),
			want: false,
		},
		{
			name: "specific date only that date",
			spec: availability.RuleSpec{SpecificDate: &monday},
			date: monday.AddDays(7),
			want: false,
		},
		{
			name: "daily until end date inclusive",
			spec: availability.RuleSpec{Recurrence: availability.Recurrence{Kind: availability.RecurrenceDaily, EndDate: &end}},
			date: end,
			want: true,
		},
		{
			name: "daily after end date",
			spec: availability.RuleSpec{Recurrence: availability.Recurrence{Kind: availability.RecurrenceDaily, EndDate: &end}},
			date: end.AddDays(1),
			want: false,
		},
		{
			name: "weekly day set",
			spec: availability.RuleSpec{Recurrence: availability.Recurrence{Kind: availability.RecurrenceWeekly, Days: []time.Weekday{time.Monday, time.Wednesday}}},
			date: monday.AddDays(2),
			want: true,
		},
		{
			name: "weekly before its first date",
			spec: availability.RuleSpec{SpecificDate: &start, Recurrence: availability.Recurrence{Kind: availability.RecurrenceWeekly, Days: []time.Weekday{time.Monday}}},
			date: monday,
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.spec.Start = availability.MustParseClockTime("09:00")
			tc.spec.End = availability.MustParseClockTime("10:00")
			tc.spec.SessionMinutes = 60
			tc.spec.Active = true
			assert.Equal(t, tc.want, mustRule(t, tc.spec).Matches(tc.date))
		})
	}

	t.Run("inactive rule never matches", func(t *testing.T) {
		r := mustRule(t, availability.RuleSpec{
			DayOfWeek:      weekday(time.Monday),
			Start:          availability.MustParseClockTime("09:00"),
			End:            availability.MustParseClockTime("10:00"),
			SessionMinutes: 60,
		})
		assert.False(t, r.Matches(monday))
	})
}

func TestNewRuleValidation(t *testing.T) {
	valid := func() availability.RuleSpec {
		return availability.RuleSpec{
			DayOfWeek:      weekday(time.Monday),
			Start:          availability.MustParseClockTime("09:00"),
			End:            availability.MustParseClockTime("12:00"),
			SessionMinutes: 45,
			BreakMinutes:   15,
			Active:         true,
		}
	}
	date := availability.MustParseDate("2025-03-03")

	cases := []struct {
		name   string
		mutate func(s *availability.RuleSpec)
		errIs  error
	}{
		{name: "start equals end", mutate: func(s *availability.RuleSpec) { s.End = s.Start }, errIs: availability.ErrInvalidTimeRange},
		{name: "zero session", mutate: func(s *availability.RuleSpec) { s.SessionMinutes = 0 }, errIs: availability.ErrInvalidSessionLength},
		{name: "negative break", mutate: func(s *availability.RuleSpec) { s.BreakMinutes = -5 }, errIs: availability.ErrInvalidBreakLength},
		{name: "no target", mutate: func(s *availability.RuleSpec) { s.DayOfWeek = nil }, errIs: availability.ErrRuleTargetRequired},
		{name: "both targets", mutate: func(s *availability.RuleSpec) { s.SpecificDate = &date }, errIs: availability.ErrRuleTargetAmbiguous},
		{name: "unknown recurrence", mutate: func(s *availability.RuleSpec) { s.Recurrence.Kind = "MONTHLY" }, errIs: availability.ErrInvalidRecurrence},
		{
			name: "weekly without days",
			mutate: func(s *availability.RuleSpec) {
				s.DayOfWeek = nil
				s.Recurrence.Kind = availability.RecurrenceWeekly
			},
			errIs: availability.ErrWeeklyDaysRequired,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := valid()
			tc.mutate(&spec)
			_, err := availability.NewRule(uuid.New(), spec)
			assert.ErrorIs(t, err, tc.errIs)
		})
	}

	t.Run("weekly defaults its day set to the rule's day", func(t *testing.T) {
		spec := valid()
		spec.Recurrence.Kind = availability.RecurrenceWeekly
		r, err := availability.NewRule(uuid.New(), spec)
		require.NoError(t, err)
		assert.Equal(t, []time.Weekday{time.Monday}, r.Recurrence().Days)
		assert.Equal(t, 60, r.Step())
	})
}

func TestParseClockTime(t *testing.T) {
	cases := map[string]string{
		"09:00":    "09:00",
		"9:00":     "09:00",
		"14:30:00": "14:30",
		"2:30 PM":  "14:30",
		"02:30 pm": "14:30",
		"12:00 AM": "00:00",
		"12:15PM":  "12:15",
		"24:00":    "24:00",
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			c, err := availability.ParseClockTime(in)
			require.NoError(t, err)
			assert.Equal(t, want, c.String())
		})
	}

	for _, bad := range []string{"", "25:00", "9am", "10:60"} {
		_, err := availability.ParseClockTime(bad)
		assert.ErrorIs(t, err, availability.ErrInvalidClockTime, bad)
	}
}

func TestClockTimeEncodings(t *testing.T) {
	got := availability.MustParseClockTime("14:05").Encodings()
	want := []string{"14:05", "14:05:00", "2:05 PM", "02:05 PM"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("encodings mismatch (-want +got):\n%s", diff)
	}
}
