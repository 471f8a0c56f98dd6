// Package goal derives goal progress and completion from ledger counts.
package goal

import (
	"fmt"

	"github.com/ouraiii/LearningJourney/internal/models"
)

// Shown once a goal is completed.
const (
	CompletionTitle   = "Well done!"
	CompletionMessage = "Goal completed! Start learning again or set a new goal."
)

var freezeLimits = map[models.Duration]int{
	models.DurationWeek:  2,
	models.DurationMonth: 8,
	models.DurationYear:  96,
}

var targetDays = map[models.Duration]int{
	models.DurationWeek:  7,
	models.DurationMonth: 30,
	models.DurationYear:  365,
}

// FreezeLimit is the number of freezes allowed for d. Unknown durations get
// the Week value.
func FreezeLimit(d models.Duration) int {
	if n, ok := freezeLimits[d]; ok {
		return n
	}
	return freezeLimits[models.DurationWeek]
}

// TargetDays is the number of logged days needed to complete a goal of
// duration d. Unknown durations get the Week value.
func TargetDays(d models.Duration) int {
	if n, ok := targetDays[d]; ok {
		return n
	}
	return targetDays[models.DurationWeek]
}

// Counter is the read side of a ledger.
type Counter interface {
	CountLearned() int
	CountFreezed() int
}

// IsComplete reports whether learned plus freezed days reach the target.
func IsComplete(c Counter, d models.Duration) bool {
	return c.CountLearned()+c.CountFreezed() >= TargetDays(d)
}

// FreezesUsedText formats the freeze counter, e.g. "1 out of 2 Freezes used".
func FreezesUsedText(freezed, limit int) string {
	return fmt.Sprintf("%d out of %d Freezes used", freezed, limit)
}

// Progress is a point-in-time view of a goal session.
type Progress struct {
	Learned     int  `json:"learned"`
	Freezed     int  `json:"freezed"`
	FreezeLimit int  `json:"freeze_limit"`
	Target      int  `json:"target"`
	Completed   bool `json:"completed"`
}

func (p Progress) FreezesUsedText() string {
	return FreezesUsedText(p.Freezed, p.FreezeLimit)
}

func (p Progress) CanFreeze() bool {
	return p.Freezed < p.FreezeLimit
}

// Logged is the number of days counted toward the target.
func (p Progress) Logged() int {
	return p.Learned + p.Freezed
}

// Remaining is the number of days still needed, never negative.
func (p Progress) Remaining() int {
	if r := p.Target - p.Logged(); r > 0 {
		return r
	}
	return 0
}

// Tracker holds the completion flag for one session. Once complete it stays
// complete until Reset.
type Tracker struct {
	completed bool
}

// NewTracker restores a tracker with a previously persisted flag.
func NewTracker(completed bool) *Tracker {
	return &Tracker{completed: completed}
}

// Recompute re-evaluates completion against c and returns the current flag.
func (t *Tracker) Recompute(c Counter, d models.Duration) bool {
	if !t.completed && IsComplete(c, d) {
		t.completed = true
	}
	return t.completed
}

func (t *Tracker) Completed() bool { return t.completed }

func (t *Tracker) Reset() { t.completed = false }

// Snapshot builds a Progress for c under duration d.
func (t *Tracker) Snapshot(c Counter, d models.Duration) Progress {
	return Progress{
		Learned:     c.CountLearned(),
		Freezed:     c.CountFreezed(),
		FreezeLimit: FreezeLimit(d),
		Target:      TargetDays(d),
		Completed:   t.completed,
	}
}
