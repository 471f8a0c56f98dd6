// Package ledger records the status of each calendar day within a goal
// session. Only Learned and Freezed days are stored; a stored day is locked
// and can only be cleared by Reset.
package ledger

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ouraiii/LearningJourney/internal/calendar"
	"github.com/ouraiii/LearningJourney/internal/models"
)

var (
	// ErrAlreadyLocked is returned when a finalized day is logged again
	ErrAlreadyLocked = errors.New("day is already locked")
	// ErrFreezeLimitExceeded is returned when no freezes are left
	ErrFreezeLimitExceeded = errors.New("freeze limit exceeded")
	// ErrInconsistentLock is returned when restoring entries whose lock flags disagree with their status
	ErrInconsistentLock = errors.New("lock set does not match ledger entries")
)

// Entry is a single recorded day.
type Entry struct {
	Day    calendar.Day
	Status models.DayStatus
}

// Ledger maps days to statuses together with the set of locked days.
// It is safe for concurrent use; each log call is an atomic check-and-set.
type Ledger struct {
	mu      sync.Mutex
	entries map[calendar.Day]models.DayStatus
	locked  map[calendar.Day]struct{}
	freezed int
	learned int
}

func New() *Ledger {
	return &Ledger{
		entries: make(map[calendar.Day]models.DayStatus),
		locked:  make(map[calendar.Day]struct{}),
	}
}

// StatusOf returns Untouched for any day not in the ledger.
func (l *Ledger) StatusOf(day calendar.Day) models.DayStatus {
	l.mu.Lock()
	defer l.mu.Unlock()

	if status, ok := l.entries[day]; ok {
		return status
	}
	return models.StatusUntouched
}

// IsLocked reports whether day has been finalized.
func (l *Ledger) IsLocked(day calendar.Day) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, ok := l.locked[day]
	return ok
}

// LogLearned marks day as Learned and locks it.
func (l *Ledger) LogLearned(day calendar.Day) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.locked[day]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyLocked, day)
	}
	l.set(day, models.StatusLearned)
	return nil
}

// LogFreezed marks day as Freezed and locks it, provided fewer than
// freezeLimit days are already freezed.
func (l *Ledger) LogFreezed(day calendar.Day, freezeLimit int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.locked[day]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyLocked, day)
	}
	if l.freezed >= freezeLimit {
		return fmt.Errorf("%w: %d of %d used", ErrFreezeLimitExceeded, l.freezed, freezeLimit)
	}
	l.set(day, models.StatusFreezed)
	return nil
}

// set must be called with mu held on an unlocked day.
func (l *Ledger) set(day calendar.Day, status models.DayStatus) {
	l.entries[day] = status
	l.locked[day] = struct{}{}
	switch status {
	case models.StatusLearned:
		l.learned++
	case models.StatusFreezed:
		l.freezed++
	}
}

// Reset clears every entry and lock.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = make(map[calendar.Day]models.DayStatus)
	l.locked = make(map[calendar.Day]struct{})
	l.learned = 0
	l.freezed = 0
}

func (l *Ledger) CountLearned() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.learned
}

func (l *Ledger) CountFreezed() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.freezed
}

// Len is the number of recorded (and therefore locked) days.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Entries returns the recorded days in date order.
func (l *Ledger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, 0, len(l.entries))
	for day, status := range l.entries {
		out = append(out, Entry{Day: day, Status: status})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Day.Before(out[j].Day)
	})
	return out
}

// Restore replaces the ledger contents with persisted entries. locked lists the
// locked days and must match the set of entries exactly.
func (l *Ledger) Restore(entries []Entry, locked []calendar.Day) error {
	next := New()
	for _, e := range entries {
		if !e.Status.IsLocked() {
			return fmt.Errorf("invalid status %q for %s", e.Status, e.Day)
		}
		if _, dup := next.entries[e.Day]; dup {
			return fmt.Errorf("duplicate entry for %s", e.Day)
		}
		next.set(e.Day, e.Status)
	}

	lockSet := make(map[calendar.Day]struct{}, len(locked))
	for _, day := range locked {
		lockSet[day] = struct{}{}
	}
	if len(lockSet) != len(next.locked) {
		return fmt.Errorf("%w: %d locked days for %d entries", ErrInconsistentLock, len(lockSet), len(next.locked))
	}
	for day := range lockSet {
		if _, ok := next.entries[day]; !ok {
			return fmt.Errorf("%w: %s is locked but has no status", ErrInconsistentLock, day)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = next.entries
	l.locked = next.locked
	l.learned = next.learned
	l.freezed = next.freezed
	return nil
}
