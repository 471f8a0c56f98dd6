package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ouraiii/LearningJourney/internal/calendar"
	"github.com/ouraiii/LearningJourney/internal/models"
	"github.com/ouraiii/LearningJourney/internal/session"
	"github.com/ouraiii/LearningJourney/internal/storage"
)

// Saturday
var testToday = calendar.Date(2026, time.October, 17)

func setupTestModel(t *testing.T, duration models.Duration) (Model, storage.Provider, *int) {
	t.Helper()
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "journey.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	s, err := session.New("Swift", duration)
	if err != nil {
		t.Fatalf("session.New() error = %v", err)
	}
	if err := store.SaveSession(s.Snapshot()); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}

	backups := new(int)
	m := NewModel(s, store, func() calendar.Day { return testToday }, func() { *backups++ })
	return m, store, backups
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update() returned %T, want Model", next)
		}
	}
	return m
}

func TestNavigation(t *testing.T) {
	m, _, _ := setupTestModel(t, models.DurationWeek)

	tests := []struct {
		name string
		keys []tea.Msg
		want calendar.Day
	}{
		{name: "next day crosses into next week", keys: []tea.Msg{runes("l")}, want: calendar.Date(2026, time.October, 18)},
		{name: "previous day", keys: []tea.Msg{runes("h")}, want: calendar.Date(2026, time.October, 16)},
		{name: "next week", keys: []tea.Msg{runes("]")}, want: calendar.Date(2026, time.October, 24)},
		{name: "previous week across month", keys: []tea.Msg{runes("["), runes("["), runes("[")}, want: calendar.Date(2026, time.September, 26)},
		{name: "back to today", keys: []tea.Msg{runes("]"), runes("l"), runes("t")}, want: testToday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := send(t, m, tt.keys...)
			view := got.Calendar()
			if view.Selected() != tt.want {
				t.Errorf("Selected() = %s, want %s", view.Selected(), tt.want)
			}
			if !view.Contains(view.Selected()) {
				t.Errorf("Selected() %s is outside the window starting %s", view.Selected(), view.WindowStart())
			}
		})
	}
}

func TestLogLearnedPersists(t *testing.T) {
	m, store, _ := setupTestModel(t, models.DurationWeek)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.Session().StatusOf(testToday); got != models.StatusLearned {
		t.Fatalf("StatusOf(today) = %q, want learned", got)
	}

	snap, err := store.LoadActiveSession()
	if err != nil {
		t.Fatalf("LoadActiveSession() error = %v", err)
	}
	if len(snap.Entries) != 1 || snap.Entries[0].Day != testToday.String() {
		t.Errorf("stored entries = %+v", snap.Entries)
	}

	m = send(t, m, runes("f"))
	if m.errMessage != "This day is already locked" {
		t.Errorf("errMessage = %q after logging a locked day", m.errMessage)
	}
	if got := m.Session().StatusOf(testToday); got != models.StatusLearned {
		t.Errorf("StatusOf(today) = %q after rejected freeze", got)
	}
}

func TestFreezeLimit(t *testing.T) {
	m, _, _ := setupTestModel(t, models.DurationWeek)

	m = send(t, m, runes("f"), runes("h"), runes("f"), runes("h"), runes("f"))
	if got := m.Session().CountFreezed(); got != 2 {
		t.Errorf("CountFreezed() = %d, want 2", got)
	}
	want := "No Freezes Left (2 out of 2 Freezes used)"
	if m.errMessage != want {
		t.Errorf("errMessage = %q, want %q", m.errMessage, want)
	}
}

func TestCompletionThenRepeat(t *testing.T) {
	m, store, backups := setupTestModel(t, models.DurationWeek)
	firstID := m.Session().ID()

	for i := 0; i < 7; i++ {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("h"))
	}
	if m.State() != StateCompleted {
		t.Fatalf("State() = %v after 7 logged days, want StateCompleted", m.State())
	}

	m = send(t, m, runes("r"))
	if m.State() != StateWeek {
		t.Errorf("State() = %v after repeat, want StateWeek", m.State())
	}
	if m.Session().ID() == firstID || m.Session().CountLearned() != 0 {
		t.Errorf("repeat did not reset the session: %+v", m.Session().Progress())
	}
	if m.Calendar().Selected() != testToday {
		t.Errorf("Selected() = %s after repeat, want today", m.Calendar().Selected())
	}
	if *backups != 1 {
		t.Errorf("backup ran %d times, want 1", *backups)
	}

	old, err := store.GetSession(firstID)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if old.ArchivedAt == nil || !old.Completed {
		t.Errorf("previous goal = %+v, want archived and completed", old)
	}
}

func TestRepeatCancelled(t *testing.T) {
	m, _, _ := setupTestModel(t, models.DurationWeek)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	id := m.Session().ID()

	m = send(t, m, runes("r"))
	if m.State() != StateConfirmRepeat {
		t.Fatalf("State() = %v, want StateConfirmRepeat", m.State())
	}
	m = send(t, m, runes("n"))
	if m.State() != StateWeek || m.Session().ID() != id || m.Session().CountLearned() != 1 {
		t.Errorf("cancelled repeat changed the session")
	}
}

func TestConfirmGoalChange(t *testing.T) {
	m, store, _ := setupTestModel(t, models.DurationWeek)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	firstID := m.Session().ID()

	pending, changed := m.Session().ProposeUpdate("Korean", models.DurationMonth)
	if !changed {
		t.Fatal("ProposeUpdate() reported no change")
	}
	m.pending = pending
	m.previousState = StateWeek
	m.state = StateConfirmGoalChange

	m = send(t, m, runes("y"))
	if m.Session().Subject() != "Korean" || m.Session().Duration() != models.DurationMonth {
		t.Errorf("definition = %+v, want Korean/Month", m.Session().Definition())
	}
	if m.Session().CountLearned() != 0 {
		t.Error("goal change kept the old ledger")
	}

	active, err := store.LoadActiveSession()
	if err != nil {
		t.Fatalf("LoadActiveSession() error = %v", err)
	}
	if active.ID != m.Session().ID() {
		t.Errorf("active goal = %s, want %s", active.ID, m.Session().ID())
	}
	if old, _ := store.GetSession(firstID); old.ArchivedAt == nil {
		t.Error("previous goal was not archived")
	}
}

func TestDiscardGoalChange(t *testing.T) {
	m, _, _ := setupTestModel(t, models.DurationWeek)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	pending, _ := m.Session().ProposeUpdate("Korean", models.DurationMonth)
	m.pending = pending
	m.previousState = StateWeek
	m.state = StateConfirmGoalChange

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Session().Subject() != "Swift" || m.Session().CountLearned() != 1 {
		t.Errorf("discard changed the session: %+v", m.Session().Definition())
	}
	if _, ok := m.Session().Pending(); ok {
		t.Error("pending change survived discard")
	}
}

func TestTabsAndQuit(t *testing.T) {
	m, _, _ := setupTestModel(t, models.DurationWeek)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.State() != StateActivities {
		t.Errorf("State() = %v after tab, want StateActivities", m.State())
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.State() != StateHistory {
		t.Errorf("State() = %v after two shift+tabs, want StateHistory", m.State())
	}

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit did not return tea.Quit")
	}
}

func TestViewRendersWeek(t *testing.T) {
	m, _, _ := setupTestModel(t, models.DurationWeek)
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	out := m.View()
	for _, want := range []string{"Learning Swift", "October 2026", "0 out of 2 Freezes used", "Log as Learned"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
