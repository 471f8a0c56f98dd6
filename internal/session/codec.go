package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ouraiii/LearningJourney/internal/calendar"
	"github.com/ouraiii/LearningJourney/internal/goal"
	"github.com/ouraiii/LearningJourney/internal/ledger"
	"github.com/ouraiii/LearningJourney/internal/models"
)

var ErrInvalidSnapshot = errors.New("invalid session snapshot")

// Snapshot captures the full session state for persistence. Pending updates
// are not persisted.
func (s *Session) Snapshot() models.SessionSnapshot {
	entries := s.ledger.Entries()
	snap := models.SessionSnapshot{
		ID:         s.id,
		Definition: s.definition,
		Entries:    make([]models.DayEntry, 0, len(entries)),
		Completed:  s.tracker.Completed(),
		CreatedAt:  s.createdAt,
		UpdatedAt:  s.updatedAt,
	}
	for _, e := range entries {
		snap.Entries = append(snap.Entries, models.DayEntry{
			Day:    e.Day.String(),
			Status: e.Status,
			Locked: s.ledger.IsLocked(e.Day),
		})
	}
	return snap
}

// FromSnapshot rebuilds a session, rejecting snapshots whose lock flags,
// statuses or duration are inconsistent.
func FromSnapshot(snap models.SessionSnapshot) (*Session, error) {
	if snap.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidSnapshot)
	}
	def, err := newDefinition(snap.Definition.Subject, snap.Definition.Duration)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	entries := make([]ledger.Entry, 0, len(snap.Entries))
	locked := make([]calendar.Day, 0, len(snap.Entries))
	for _, e := range snap.Entries {
		day, err := calendar.ParseDay(e.Day)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
		}
		if !e.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q for %s", ErrInvalidSnapshot, e.Status, e.Day)
		}
		if e.Locked != e.Status.IsLocked() {
			return nil, fmt.Errorf("%w: %s has status %s but locked=%t", ErrInvalidSnapshot, e.Day, e.Status, e.Locked)
		}
		if e.Status == models.StatusUntouched {
			continue
		}
		entries = append(entries, ledger.Entry{Day: day, Status: e.Status})
		locked = append(locked, day)
	}

	l := ledger.New()
	if err := l.Restore(entries, locked); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	s := &Session{
		id:         snap.ID,
		definition: def,
		ledger:     l,
		tracker:    goal.NewTracker(snap.Completed),
		createdAt:  snap.CreatedAt,
		updatedAt:  snap.UpdatedAt,
		now:        time.Now,
	}
	s.Recompute()
	return s, nil
}

// Save encodes the session as a JSON blob.
func Save(s *Session) ([]byte, error) {
	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	return data, nil
}

// Load decodes a blob produced by Save.
func Load(data []byte) (*Session, error) {
	var snap models.SessionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return FromSnapshot(snap)
}
