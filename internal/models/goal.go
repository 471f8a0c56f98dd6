package models

import "time"

// GoalDefinition is what the learner committed to
type GoalDefinition struct {
	Subject  string   `json:"subject"`
	Duration Duration `json:"duration"`
}

// DayEntry is a single day's record within a goal session
type DayEntry struct {
	Day    string    `json:"day"` // YYYY-MM-DD format
	Status DayStatus `json:"status"`
	Locked bool      `json:"locked"`
}

// SessionSnapshot is the full persisted state of one goal session
type SessionSnapshot struct {
	ID         string         `json:"id"`
	Definition GoalDefinition `json:"definition"`
	Entries    []DayEntry     `json:"entries"`
	Completed  bool           `json:"completed"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	ArchivedAt *time.Time     `json:"archived_at,omitempty"`
}

// GoalRecord is a summary row used by goal history listings
type GoalRecord struct {
	ID          string         `json:"id"`
	Definition  GoalDefinition `json:"definition"`
	LearnedDays int            `json:"learned_days"`
	FreezedDays int            `json:"freezed_days"`
	Completed   bool           `json:"completed"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	ArchivedAt  *time.Time     `json:"archived_at,omitempty"`
}

// Summarize builds a history row from a snapshot
func (s SessionSnapshot) Summarize() GoalRecord {
	rec := GoalRecord{
		ID:         s.ID,
		Definition: s.Definition,
		Completed:  s.Completed,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
		ArchivedAt: s.ArchivedAt,
	}
	for _, e := range s.Entries {
		switch e.Status {
		case StatusLearned:
			rec.LearnedDays++
		case StatusFreezed:
			rec.FreezedDays++
		}
	}
	return rec
}
