package calendar

import (
	"time"

	"github.com/ouraiii/LearningJourney/internal/constants"
)

// FirstWeekday is fixed so week windows do not depend on the host locale.
const FirstWeekday = time.Sunday

// WeekStart returns the first day of the week containing d.
func WeekStart(d Day) Day {
	offset := (int(d.Weekday()) - int(FirstWeekday) + 7) % 7
	return d.AddDays(-offset)
}

// WeekWindow returns the 7 consecutive days of the week containing anchor.
func WeekWindow(anchor Day) [7]Day {
	var week [7]Day
	start := WeekStart(anchor)
	for i := range week {
		week[i] = start.AddDays(i)
	}
	return week
}

// ShiftWeek offsets current by deltaWeeks*7 days.
func ShiftWeek(current Day, deltaWeeks int) Day {
	return current.AddDays(deltaWeeks * 7)
}

// MonthLabel formats the full month name and 4-digit year, e.g. "October 2026".
func MonthLabel(d Day) string {
	return d.utc().Format(constants.MonthLabelFormat)
}

// WeekdayLabels returns the short weekday names in window order.
func WeekdayLabels() [7]string {
	var labels [7]string
	for i := range labels {
		labels[i] = time.Weekday((int(FirstWeekday) + i) % 7).String()[:3]
	}
	return labels
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return Date(year, month+1, 0).DayOfMonth()
}

// FirstWeekdayOffset is the number of blank cells before day 1 in a month grid.
func FirstWeekdayOffset(month Day) int {
	first := month.FirstOfMonth()
	return (int(first.Weekday()) - int(FirstWeekday) + 7) % 7
}

// MonthDays lists every day of month's month in order.
func MonthDays(month Day) []Day {
	first := month.FirstOfMonth()
	n := DaysIn(first.Year(), first.Month())
	days := make([]Day, n)
	for i := range days {
		days[i] = first.AddDays(i)
	}
	return days
}

// MonthGrid lays out month as week rows. Cells outside the month hold the
// zero Day.
func MonthGrid(month Day) [][7]Day {
	offset := FirstWeekdayOffset(month)
	days := MonthDays(month)
	rows := (offset + len(days) + 6) / 7

	grid := make([][7]Day, rows)
	for i, d := range days {
		cell := offset + i
		grid[cell/7][cell%7] = d
	}
	return grid
}

// MonthsFrom returns the first day of n consecutive months starting at start's month.
func MonthsFrom(start Day, n int) []Day {
	if n <= 0 {
		return nil
	}
	first := start.FirstOfMonth()
	months := make([]Day, n)
	for i := range months {
		months[i] = first.AddMonths(i)
	}
	return months
}
