// Package session holds the live goal session: its definition, its ledger and
// the latched completion flag, together with the goal transitions (start new,
// repeat, propose/commit/discard an update).
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ouraiii/LearningJourney/internal/calendar"
	"github.com/ouraiii/LearningJourney/internal/goal"
	"github.com/ouraiii/LearningJourney/internal/ledger"
	"github.com/ouraiii/LearningJourney/internal/logger"
	"github.com/ouraiii/LearningJourney/internal/models"
)

var (
	ErrEmptySubject     = errors.New("goal subject cannot be empty")
	ErrNoPendingUpdate  = errors.New("no pending goal update")
	ErrStaleUpdateToken = errors.New("pending goal update token does not match")
)

// PendingUpdate is a proposed goal change awaiting confirmation.
type PendingUpdate struct {
	Token    string
	Subject  string
	Duration models.Duration
}

type Session struct {
	id         string
	definition models.GoalDefinition
	ledger     *ledger.Ledger
	tracker    *goal.Tracker
	pending    *PendingUpdate
	createdAt  time.Time
	updatedAt  time.Time
	now        func() time.Time
}

// New starts a fresh session for subject and duration.
func New(subject string, duration models.Duration) (*Session, error) {
	def, err := newDefinition(subject, duration)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ledger:  ledger.New(),
		tracker: goal.NewTracker(false),
		now:     time.Now,
	}
	s.begin(def)
	return s, nil
}

func newDefinition(subject string, duration models.Duration) (models.GoalDefinition, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return models.GoalDefinition{}, ErrEmptySubject
	}
	if !duration.Valid() {
		return models.GoalDefinition{}, fmt.Errorf("%w: %q", models.ErrInvalidDuration, duration)
	}
	return models.GoalDefinition{Subject: subject, Duration: duration}, nil
}

// begin opens a new goal lifetime under def with an empty ledger.
func (s *Session) begin(def models.GoalDefinition) {
	s.id = uuid.NewString()
	s.definition = def
	s.ledger.Reset()
	s.tracker.Reset()
	s.pending = nil
	s.createdAt = s.now().UTC()
	s.updatedAt = s.createdAt
}

func (s *Session) touch() {
	s.updatedAt = s.now().UTC()
}

func (s *Session) ID() string { return s.id }

func (s *Session) Definition() models.GoalDefinition { return s.definition }

func (s *Session) Subject() string { return s.definition.Subject }

func (s *Session) Duration() models.Duration { return s.definition.Duration }

func (s *Session) CreatedAt() time.Time { return s.createdAt }

func (s *Session) UpdatedAt() time.Time { return s.updatedAt }

// Headline is the title shown above the calendar, e.g. "Learning Swift".
func (s *Session) Headline() string {
	return "Learning " + s.definition.Subject
}

// StartNewGoal replaces the definition and clears all logged days.
func (s *Session) StartNewGoal(subject string, duration models.Duration) error {
	def, err := newDefinition(subject, duration)
	if err != nil {
		return err
	}
	prev := s.id
	s.begin(def)
	logger.Debug("goal started", "previous", prev, "id", s.id, "subject", def.Subject, "duration", def.Duration)
	return nil
}

// RepeatGoal keeps the definition and clears all logged days.
func (s *Session) RepeatGoal() {
	prev := s.id
	s.begin(s.definition)
	logger.Debug("goal repeated", "previous", prev, "id", s.id, "subject", s.definition.Subject)
}

// ProposeUpdate records a pending goal change when subject or duration differ
// from the current definition. Nothing is applied until CommitUpdate.
// A proposal equal to the current goal clears any pending change.
func (s *Session) ProposeUpdate(subject string, duration models.Duration) (*PendingUpdate, bool) {
	subject = strings.TrimSpace(subject)
	if subject == s.definition.Subject && duration == s.definition.Duration {
		s.pending = nil
		return nil, false
	}

	s.pending = &PendingUpdate{
		Token:    uuid.NewString(),
		Subject:  subject,
		Duration: duration,
	}
	p := *s.pending
	return &p, true
}

// Pending returns a copy of the pending change, if any.
func (s *Session) Pending() (PendingUpdate, bool) {
	if s.pending == nil {
		return PendingUpdate{}, false
	}
	return *s.pending, true
}

// CommitUpdate applies the pending change as a new goal. A non-empty token
// must match the pending proposal.
func (s *Session) CommitUpdate(token string) (goal.Progress, error) {
	if s.pending == nil {
		return goal.Progress{}, ErrNoPendingUpdate
	}
	if token != "" && token != s.pending.Token {
		return goal.Progress{}, ErrStaleUpdateToken
	}

	p := *s.pending
	if err := s.StartNewGoal(p.Subject, p.Duration); err != nil {
		return goal.Progress{}, err
	}
	return s.Progress(), nil
}

// DiscardUpdate drops the pending change and reports whether there was one.
func (s *Session) DiscardUpdate() bool {
	had := s.pending != nil
	s.pending = nil
	return had
}

func (s *Session) StatusOf(day calendar.Day) models.DayStatus {
	return s.ledger.StatusOf(day)
}

func (s *Session) IsLocked(day calendar.Day) bool {
	return s.ledger.IsLocked(day)
}

func (s *Session) CountLearned() int { return s.ledger.CountLearned() }

func (s *Session) CountFreezed() int { return s.ledger.CountFreezed() }

// LogLearned marks day as learned and returns the updated progress.
func (s *Session) LogLearned(day calendar.Day) (goal.Progress, error) {
	if err := s.ledger.LogLearned(day); err != nil {
		return s.Progress(), err
	}
	s.touch()
	s.Recompute()
	logger.Debug("day logged", "id", s.id, "day", day, "status", models.StatusLearned)
	return s.Progress(), nil
}

// LogFreezed marks day as freezed and returns the updated progress.
func (s *Session) LogFreezed(day calendar.Day) (goal.Progress, error) {
	if err := s.ledger.LogFreezed(day, s.FreezeLimit()); err != nil {
		return s.Progress(), err
	}
	s.touch()
	s.Recompute()
	logger.Debug("day logged", "id", s.id, "day", day, "status", models.StatusFreezed)
	return s.Progress(), nil
}

// Recompute re-evaluates completion against the ledger. Completion reflects
// every mutation applied before the call.
func (s *Session) Recompute() bool {
	was := s.tracker.Completed()
	done := s.tracker.Recompute(s.ledger, s.definition.Duration)
	if done && !was {
		logger.Debug("goal completed", "id", s.id, "subject", s.definition.Subject)
	}
	return done
}

func (s *Session) IsGoalComplete() bool { return s.tracker.Completed() }

func (s *Session) FreezeLimit() int { return goal.FreezeLimit(s.definition.Duration) }

func (s *Session) TargetDays() int { return goal.TargetDays(s.definition.Duration) }

func (s *Session) CanFreeze() bool {
	return s.ledger.CountFreezed() < s.FreezeLimit()
}

func (s *Session) FreezesUsedText() string {
	return goal.FreezesUsedText(s.ledger.CountFreezed(), s.FreezeLimit())
}

// FreezeActionLabel is the caption of the freeze button.
func (s *Session) FreezeActionLabel() string {
	if s.CanFreeze() {
		return "Log as Freezed"
	}
	return "No Freezes Left"
}

func (s *Session) Progress() goal.Progress {
	return s.tracker.Snapshot(s.ledger, s.definition.Duration)
}

// Entries lists the logged days in date order.
func (s *Session) Entries() []ledger.Entry {
	return s.ledger.Entries()
}
