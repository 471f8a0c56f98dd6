package session

import (
	"errors"
	"testing"
	"time"

	"github.com/ouraiii/LearningJourney/internal/calendar"
	"github.com/ouraiii/LearningJourney/internal/ledger"
	"github.com/ouraiii/LearningJourney/internal/models"
)

func day(d int) calendar.Day {
	return calendar.Date(2026, time.October, d)
}

func newSession(t *testing.T, subject string, duration models.Duration) *Session {
	t.Helper()
	s, err := New(subject, duration)
	if err != nil {
		t.Fatalf("New(%q, %q) error = %v", subject, duration, err)
	}
	return s
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		subject  string
		duration models.Duration
		wantErr  error
	}{
		{name: "defaults", subject: "Swift", duration: models.DurationWeek},
		{name: "trimmed subject", subject: "  Korean ", duration: models.DurationMonth},
		{name: "empty subject", subject: "   ", duration: models.DurationWeek, wantErr: ErrEmptySubject},
		{name: "unknown duration", subject: "Go", duration: "Decade", wantErr: models.ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.subject, tt.duration)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if s.ID() == "" {
				t.Error("New() session has no ID")
			}
			if s.IsGoalComplete() || s.CountLearned() != 0 || s.CountFreezed() != 0 {
				t.Errorf("New() session is not empty: %+v", s.Progress())
			}
		})
	}
}

func TestHeadline(t *testing.T) {
	s := newSession(t, " Korean", models.DurationWeek)
	if got := s.Headline(); got != "Learning Korean" {
		t.Errorf("Headline() = %q, want %q", got, "Learning Korean")
	}
}

func TestWeekGoalScenario(t *testing.T) {
	s := newSession(t, "Swift", models.DurationWeek)

	for d := 1; d <= 5; d++ {
		p, err := s.LogLearned(day(d))
		if err != nil {
			t.Fatalf("LogLearned(%s) error = %v", day(d), err)
		}
		if p.Completed {
			t.Fatalf("goal completed after %d days", d)
		}
	}
	if _, err := s.LogFreezed(day(6)); err != nil {
		t.Fatalf("LogFreezed() error = %v", err)
	}
	p, err := s.LogFreezed(day(7))
	if err != nil {
		t.Fatalf("LogFreezed() error = %v", err)
	}

	if !p.Completed || !s.IsGoalComplete() {
		t.Error("goal should be complete after 5 learned and 2 freezed days")
	}
	if p.Learned != 5 || p.Freezed != 2 {
		t.Errorf("Progress() = %+v, want 5 learned and 2 freezed", p)
	}
	if s.CanFreeze() {
		t.Error("CanFreeze() = true with the week limit used")
	}
	if got := s.FreezeActionLabel(); got != "No Freezes Left" {
		t.Errorf("FreezeActionLabel() = %q", got)
	}
	if got := s.FreezesUsedText(); got != "2 out of 2 Freezes used" {
		t.Errorf("FreezesUsedText() = %q", got)
	}

	if _, err := s.LogFreezed(day(8)); !errors.Is(err, ledger.ErrFreezeLimitExceeded) {
		t.Errorf("LogFreezed() past limit error = %v, want ErrFreezeLimitExceeded", err)
	}
	if _, err := s.LogLearned(day(3)); !errors.Is(err, ledger.ErrAlreadyLocked) {
		t.Errorf("LogLearned() on locked day error = %v, want ErrAlreadyLocked", err)
	}
	if got := s.StatusOf(day(3)); got != models.StatusLearned {
		t.Errorf("StatusOf() = %q after rejected log, want learned", got)
	}

	// Logging after completion is allowed and completion stays latched.
	if p, err := s.LogLearned(day(9)); err != nil || !p.Completed {
		t.Errorf("LogLearned() after completion = %+v, %v", p, err)
	}
}

func TestRepeatGoal(t *testing.T) {
	s := newSession(t, "Swift", models.DurationWeek)
	for d := 1; d <= 7; d++ {
		_, _ = s.LogLearned(day(d))
	}
	oldID := s.ID()

	s.RepeatGoal()
	if s.ID() == oldID {
		t.Error("RepeatGoal() kept the session ID")
	}
	if s.Subject() != "Swift" || s.Duration() != models.DurationWeek {
		t.Errorf("RepeatGoal() changed the definition to %+v", s.Definition())
	}
	if s.IsGoalComplete() || s.CountLearned() != 0 || s.IsLocked(day(1)) {
		t.Errorf("RepeatGoal() did not reset the session: %+v", s.Progress())
	}
	if got := s.StatusOf(day(1)); got != models.StatusUntouched {
		t.Errorf("StatusOf() = %q after repeat, want untouched", got)
	}
}

func TestStartNewGoal(t *testing.T) {
	s := newSession(t, "Swift", models.DurationWeek)
	_, _ = s.LogFreezed(day(1))

	if err := s.StartNewGoal("", models.DurationMonth); !errors.Is(err, ErrEmptySubject) {
		t.Fatalf("StartNewGoal(\"\") error = %v, want ErrEmptySubject", err)
	}
	if s.CountFreezed() != 1 {
		t.Error("rejected StartNewGoal() reset the ledger")
	}

	if err := s.StartNewGoal("Korean", models.DurationMonth); err != nil {
		t.Fatalf("StartNewGoal() error = %v", err)
	}
	if s.Subject() != "Korean" || s.FreezeLimit() != 8 || s.TargetDays() != 30 {
		t.Errorf("StartNewGoal() definition = %+v", s.Definition())
	}
	if s.CountFreezed() != 0 || !s.CanFreeze() {
		t.Error("StartNewGoal() did not reset freezes")
	}
}

func TestProposeThenDiscard(t *testing.T) {
	s := newSession(t, "Swift", models.DurationWeek)
	_, _ = s.LogLearned(day(2))

	p, changed := s.ProposeUpdate("Korean", models.DurationMonth)
	if !changed || p == nil || p.Token == "" {
		t.Fatalf("ProposeUpdate() = %+v, %v, want a pending change", p, changed)
	}
	if s.Subject() != "Swift" {
		t.Error("ProposeUpdate() applied the change")
	}

	if !s.DiscardUpdate() {
		t.Error("DiscardUpdate() = false with a pending change")
	}
	if s.Subject() != "Swift" || s.Duration() != models.DurationWeek {
		t.Errorf("definition after discard = %+v", s.Definition())
	}
	if s.StatusOf(day(2)) != models.StatusLearned {
		t.Error("DiscardUpdate() touched the ledger")
	}
	if _, err := s.CommitUpdate(""); !errors.Is(err, ErrNoPendingUpdate) {
		t.Errorf("CommitUpdate() after discard error = %v, want ErrNoPendingUpdate", err)
	}
}

func TestProposeUnchanged(t *testing.T) {
	s := newSession(t, "Swift", models.DurationWeek)
	s.ProposeUpdate("Go", models.DurationWeek)

	if p, changed := s.ProposeUpdate(" Swift ", models.DurationWeek); changed || p != nil {
		t.Errorf("ProposeUpdate(same) = %+v, %v, want no change", p, changed)
	}
	if _, ok := s.Pending(); ok {
		t.Error("an unchanged proposal should clear the pending change")
	}
}

func TestCommitUpdate(t *testing.T) {
	s := newSession(t, "Swift", models.DurationWeek)
	_, _ = s.LogLearned(day(2))
	oldID := s.ID()

	first, _ := s.ProposeUpdate("Korean", models.DurationYear)
	second, _ := s.ProposeUpdate("Korean", models.DurationMonth)

	if _, err := s.CommitUpdate(first.Token); !errors.Is(err, ErrStaleUpdateToken) {
		t.Fatalf("CommitUpdate(stale) error = %v, want ErrStaleUpdateToken", err)
	}

	progress, err := s.CommitUpdate(second.Token)
	if err != nil {
		t.Fatalf("CommitUpdate() error = %v", err)
	}
	if s.ID() == oldID || s.Subject() != "Korean" || s.Duration() != models.DurationMonth {
		t.Errorf("CommitUpdate() session = %s %+v", s.ID(), s.Definition())
	}
	if progress.Learned != 0 || progress.Target != 30 {
		t.Errorf("CommitUpdate() progress = %+v", progress)
	}
	if _, ok := s.Pending(); ok {
		t.Error("pending change survived CommitUpdate")
	}
}

func TestCommitUpdateEmptySubject(t *testing.T) {
	s := newSession(t, "Swift", models.DurationWeek)
	s.ProposeUpdate("", models.DurationWeek)

	if _, err := s.CommitUpdate(""); !errors.Is(err, ErrEmptySubject) {
		t.Errorf("CommitUpdate() error = %v, want ErrEmptySubject", err)
	}
	if s.Subject() != "Swift" {
		t.Errorf("Subject() = %q after failed commit", s.Subject())
	}
}

func TestUpdatedAtAdvancesOnLog(t *testing.T) {
	s := newSession(t, "Swift", models.DurationWeek)
	clock := time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	clock = clock.Add(time.Hour)
	_, _ = s.LogLearned(day(17))
	if !s.UpdatedAt().Equal(clock) {
		t.Errorf("UpdatedAt() = %v, want %v", s.UpdatedAt(), clock)
	}
}
