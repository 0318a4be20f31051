package availability

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidClockTime = errors.New("invalid clock time")

const minutesPerDay = 24 * 60

// ClockTime is a wall-clock time of day with minute precision.
// The zero value is midnight. 24:00 is accepted as an end-of-day bound.
type ClockTime struct {
	minutes int
}

var clockLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"03:04 PM",
	"3:04PM",
	"03:04PM",
}

func NewClockTime(hour, minute int) (ClockTime, error) {
	if hour < 0 || minute < 0 || minute > 59 || hour > 24 || (hour == 24 && minute != 0) {
		return ClockTime{}, ErrInvalidClockTime
	}
	return ClockTime{minutes: hour*60 + minute}, nil
}

// ParseClockTime accepts 24-hour "HH:MM" and "HH:MM:SS" as well as 12-hour
// "H:MM AM" encodings. Seconds are truncated.
func ParseClockTime(s string) (ClockTime, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "24:00" || s == "24:00:00" {
		return ClockTime{minutes: minutesPerDay}, nil
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockTime{minutes: t.Hour()*60 + t.Minute()}, nil
		}
	}
	return ClockTime{}, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
}

func MustParseClockTime(s string) ClockTime {
	c, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c ClockTime) Hour() int    { return c.minutes / 60 }
func (c ClockTime) Minute() int  { return c.minutes % 60 }
func (c ClockTime) Minutes() int { return c.minutes }

func (c ClockTime) AddMinutes(m int) ClockTime {
	return ClockTime{minutes: c.minutes + m}
}

func (c ClockTime) Before(o ClockTime) bool { return c.minutes < o.minutes }
func (c ClockTime) After(o ClockTime) bool  { return c.minutes > o.minutes }
func (c ClockTime) Equal(o ClockTime) bool  { return c.minutes == o.minutes }

// String returns the canonical 24-hour "HH:MM" form.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Encodings lists every textual form a stored start time may have been written in,
// canonical form first.
func (c ClockTime) Encodings() []string {
	h12 := c.Hour() % 12
	if h12 == 0 {
		h12 = 12
	}
	suffix := "AM"
	if c.Hour() >= 12 && c.Hour() < 24 {
		suffix = "PM"
	}
	return []string{
		c.String(),
		fmt.Sprintf("%02d:%02d:00", c.Hour(), c.Minute()),
		fmt.Sprintf("%d:%02d %s", h12, c.Minute(), suffix),
		fmt.Sprintf("%02d:%02d %s", h12, c.Minute(), suffix),
	}
}

// On anchors the clock time to a calendar date in loc.
func (c ClockTime) On(d Date, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc).Add(time.Duration(c.minutes) * time.Minute)
}

// ClockTimeOf extracts the wall-clock time of t in loc.
func ClockTimeOf(t time.Time, loc *time.Location) ClockTime {
	t = t.In(loc)
	return ClockTime{minutes: t.Hour()*60 + t.Minute()}
}

// NormalizeStarts parses stored start times, dropping values that cannot be read.
func NormalizeStarts(raw []string) []ClockTime {
	out := make([]ClockTime, 0, len(raw))
	for _, s := range raw {
		if c, err := ParseClockTime(s); err == nil {
			out = append(out, c)
		}
	}
	return out
}
