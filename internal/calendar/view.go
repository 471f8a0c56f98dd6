package calendar

// View is the calendar navigation state: the reference day ("today"), the
// selected day, and the start of the 7-day window on display. Selected always
// lies inside the window.
type View struct {
	reference   Day
	selected    Day
	windowStart Day
}

// NewView selects today and shows the week containing it.
func NewView(today Day) View {
	return View{
		reference:   today,
		selected:    today,
		windowStart: WeekStart(today),
	}
}

func (v View) Reference() Day { return v.reference }

func (v View) Selected() Day { return v.selected }

func (v View) WindowStart() Day { return v.windowStart }

// Window returns the days currently on display.
func (v View) Window() [7]Day {
	return WeekWindow(v.windowStart)
}

// MonthLabel labels the month of the selected day.
func (v View) MonthLabel() string {
	return MonthLabel(v.selected)
}

// IsToday reports whether d is the reference day.
func (v View) IsToday(d Day) bool {
	return d == v.reference
}

// Contains reports whether d is inside the displayed window.
func (v View) Contains(d Day) bool {
	return !d.Before(v.windowStart) && d.Before(v.windowStart.AddDays(7))
}

// Select moves the selection to d, re-anchoring the window when d falls outside it.
func (v *View) Select(d Day) {
	v.selected = d
	if !v.Contains(d) {
		v.windowStart = WeekStart(d)
	}
}

// ShiftDays moves the selection by delta days.
func (v *View) ShiftDays(delta int) {
	v.Select(v.selected.AddDays(delta))
}

// ShiftWeek moves both the selection and the window by deltaWeeks weeks.
func (v *View) ShiftWeek(deltaWeeks int) {
	v.selected = ShiftWeek(v.selected, deltaWeeks)
	v.windowStart = WeekStart(v.selected)
}

// JumpTo is the date-picker jump: select d and show the week containing it.
func (v *View) JumpTo(d Day) {
	v.selected = d
	v.windowStart = WeekStart(d)
}

// Today resets the selection to the reference day.
func (v *View) Today() {
	v.JumpTo(v.reference)
}

// SetReference updates "today", e.g. when a session runs past midnight.
func (v *View) SetReference(d Day) {
	v.reference = d
}
