package calendar

import "testing"

func assertSelectedInWindow(t *testing.T, v View) {
	t.Helper()
	if !v.Contains(v.Selected()) {
		t.Errorf("selected %s is outside window starting %s", v.Selected(), v.WindowStart())
	}
	if v.WindowStart().Weekday() != FirstWeekday {
		t.Errorf("window starts on %s, want %s", v.WindowStart().Weekday(), FirstWeekday)
	}
}

func TestNewView(t *testing.T) {
	today := mustDay(t, "2026-10-17")
	v := NewView(today)

	if v.Selected() != today || v.Reference() != today {
		t.Errorf("NewView() selected = %s, reference = %s, want %s", v.Selected(), v.Reference(), today)
	}
	if got := v.WindowStart().String(); got != "2026-10-11" {
		t.Errorf("WindowStart() = %s, want 2026-10-11", got)
	}
	if got := v.MonthLabel(); got != "October 2026" {
		t.Errorf("MonthLabel() = %q, want %q", got, "October 2026")
	}
	if !v.IsToday(today) {
		t.Error("IsToday(today) = false")
	}
	assertSelectedInWindow(t, v)
}

func TestViewSelect(t *testing.T) {
	v := NewView(mustDay(t, "2026-10-14"))

	v.Select(mustDay(t, "2026-10-12"))
	if got := v.WindowStart().String(); got != "2026-10-11" {
		t.Errorf("selecting inside the window moved it to %s", got)
	}

	v.Select(mustDay(t, "2026-10-20"))
	if got := v.WindowStart().String(); got != "2026-10-18" {
		t.Errorf("WindowStart() = %s, want 2026-10-18", got)
	}
	assertSelectedInWindow(t, v)
}

func TestViewShiftDays(t *testing.T) {
	v := NewView(mustDay(t, "2026-10-17"))

	v.ShiftDays(1)
	if got := v.Selected().String(); got != "2026-10-18" {
		t.Errorf("Selected() = %s, want 2026-10-18", got)
	}
	if got := v.WindowStart().String(); got != "2026-10-18" {
		t.Errorf("WindowStart() = %s, want 2026-10-18", got)
	}

	v.ShiftDays(-1)
	if got := v.WindowStart().String(); got != "2026-10-11" {
		t.Errorf("WindowStart() = %s, want 2026-10-11", got)
	}
	assertSelectedInWindow(t, v)
}

func TestViewShiftWeek(t *testing.T) {
	v := NewView(mustDay(t, "2025-01-31"))

	v.ShiftWeek(1)
	if got := v.Selected().String(); got != "2025-02-07" {
		t.Errorf("Selected() = %s, want 2025-02-07", got)
	}
	if got := v.MonthLabel(); got != "February 2025" {
		t.Errorf("MonthLabel() = %q, want February 2025", got)
	}
	assertSelectedInWindow(t, v)

	v.ShiftWeek(-2)
	if got := v.Selected().String(); got != "2025-01-24" {
		t.Errorf("Selected() = %s, want 2025-01-24", got)
	}
	assertSelectedInWindow(t, v)
}

func TestViewJumpTo(t *testing.T) {
	v := NewView(mustDay(t, "2026-10-17"))

	v.JumpTo(mustDay(t, "2024-02-29"))
	if got := v.WindowStart().String(); got != "2024-02-25" {
		t.Errorf("WindowStart() = %s, want 2024-02-25", got)
	}
	if got := v.MonthLabel(); got != "February 2024" {
		t.Errorf("MonthLabel() = %q, want February 2024", got)
	}
	assertSelectedInWindow(t, v)

	v.Today()
	if v.Selected() != v.Reference() {
		t.Errorf("Today() selected %s, want %s", v.Selected(), v.Reference())
	}
	assertSelectedInWindow(t, v)
}
