// Package calendar holds the date arithmetic behind the week strip and the
// month grids: a location-free Day value, Sunday-start week windows, and the
// selected-day view state.
package calendar

import (
	"fmt"
	"time"

	"github.com/ouraiii/LearningJourney/internal/constants"
)

// Day is a calendar date with no time-of-day or location component. Two Day
// values are equal iff they denote the same year, month and day, so Day is
// usable as a map key.
type Day struct {
	year  int
	month time.Month
	day   int
}

// DayOf normalizes t to its calendar date in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{year: y, month: m, day: d}
}

// Date builds a Day, normalizing out-of-range values the way time.Date does
// (January 32 becomes February 1).
func Date(year int, month time.Month, day int) Day {
	return DayOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Today returns the current date in loc. A nil loc means time.Local.
func Today(loc *time.Location) Day {
	if loc == nil {
		loc = time.Local
	}
	return DayOf(time.Now().In(loc))
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return DayOf(t), nil
}

func (d Day) Year() int { return d.year }

func (d Day) Month() time.Month { return d.month }

func (d Day) DayOfMonth() int { return d.day }

func (d Day) IsZero() bool { return d == Day{} }

func (d Day) Weekday() time.Weekday { return d.utc().Weekday() }

// Time returns midnight of d in loc.
func (d Day) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

// AddDays uses calendar-correct addition, carrying across month and year ends.
func (d Day) AddDays(n int) Day {
	return DayOf(d.utc().AddDate(0, 0, n))
}

// AddMonths moves to the same day-of-month n months later, normalized by time.Date.
func (d Day) AddMonths(n int) Day {
	return DayOf(d.utc().AddDate(0, n, 0))
}

// FirstOfMonth returns the first day of d's month.
func (d Day) FirstOfMonth() Day {
	return Day{year: d.year, month: d.month, day: 1}
}

func (d Day) Before(o Day) bool { return d.utc().Before(o.utc()) }
func (d Day) After(o Day) bool { return d.utc().After(o.utc()) }

// DaysUntil returns the signed number of days from d to o.
func (d Day) DaysUntil(o Day) int {
	return int(o.utc().Sub(d.utc()).Hours() / 24)
}

func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return d.utc().Format(constants.DateFormat)
}

func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Day{}
		return nil
	}
	parsed, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// utc is the arithmetic representation; UTC has no DST gaps so day math is exact.
func (d Day) utc() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}
