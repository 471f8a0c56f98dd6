package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidDuration = errors.New("invalid goal duration")

// DayStatus is the recorded outcome of a single calendar day.
type DayStatus string

const (
	StatusUntouched DayStatus = "untouched"
	StatusLearned   DayStatus = "learned"
	StatusFreezed   DayStatus = "freezed"
)

// IsLocked reports whether a day with this status is finalized.
func (s DayStatus) IsLocked() bool {
	return s == StatusLearned || s == StatusFreezed
}

// ActionLabel is the caption of the main log button for a day in this status.
func (s DayStatus) ActionLabel() string {
	switch s {
	case StatusLearned:
		return "Learned Today"
	case StatusFreezed:
		return "Day Freezed"
	default:
		return "Log as Learned"
	}
}

func (s DayStatus) Valid() bool {
	switch s {
	case StatusUntouched, StatusLearned, StatusFreezed:
		return true
	}
	return false
}

// Duration is the time frame a goal is committed for.
type Duration string

const (
	DurationWeek  Duration = "Week"
	DurationMonth Duration = "Month"
	DurationYear  Duration = "Year"
)

// Durations lists the selectable durations in display order.
func Durations() []Duration {
	return []Duration{DurationWeek, DurationMonth, DurationYear}
}

func (d Duration) Valid() bool {
	switch d {
	case DurationWeek, DurationMonth, DurationYear:
		return true
	}
	return false
}

// ParseDuration accepts a duration name in any letter case ("week", "MONTH").
func ParseDuration(s string) (Duration, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "week":
		return DurationWeek, nil
	case "month":
		return DurationMonth, nil
	case "year":
		return DurationYear, nil
	}
	return "", fmt.Errorf("%w: %q (expected Week, Month or Year)", ErrInvalidDuration, s)
}
