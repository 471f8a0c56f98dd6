package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"

	"github.com/ouraiii/LearningJourney/internal/backup"
	"github.com/ouraiii/LearningJourney/internal/calendar"
	"github.com/ouraiii/LearningJourney/internal/config"
	"github.com/ouraiii/LearningJourney/internal/goal"
	"github.com/ouraiii/LearningJourney/internal/ledger"
	"github.com/ouraiii/LearningJourney/internal/logger"
	"github.com/ouraiii/LearningJourney/internal/session"
	"github.com/ouraiii/LearningJourney/internal/storage"
)

// ErrNoActiveGoal is returned by commands that need a goal when none is stored.
var ErrNoActiveGoal = errors.New("no active goal, run 'journey goal set <subject>' first")

// ConfirmFunc asks the user a yes/no question.
type ConfirmFunc func(title, description string) (bool, error)

type Context struct {
	Store      storage.Provider
	Config     *config.Config
	ConfigPath string
	Location   *time.Location
	Now        func() time.Time
	Out        io.Writer
	Confirm    ConfirmFunc
}

// NewContext fills in the terminal defaults for anything left unset.
func NewContext(store storage.Provider, cfg *config.Config, loc *time.Location) *Context {
	if loc == nil {
		loc = time.Local
	}
	return &Context{
		Store:    store,
		Config:   cfg,
		Location: loc,
		Now:      time.Now,
		Out:      color.Output,
		Confirm:  huhConfirm,
	}
}

func huhConfirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Today is the current day in the configured timezone.
func (c *Context) Today() calendar.Day {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return calendar.DayOf(now().In(c.loc()))
}

func (c *Context) loc() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// ParseDate resolves a --date flag. Empty means today.
func (c *Context) ParseDate(s string) (calendar.Day, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "today":
		return c.Today(), nil
	case "yesterday":
		return c.Today().AddDays(-1), nil
	}
	d, err := calendar.ParseDay(s)
	if err != nil {
		return calendar.Day{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return d, nil
}

// IsSQLite reports whether the store is a SQLite file that can be backed up.
func (c *Context) IsSQLite() bool {
	_, ok := c.Store.(*storage.SQLiteStore)
	return ok
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !c.IsSQLite() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// LoadSession restores the active goal session.
func (c *Context) LoadSession() (*session.Session, error) {
	snap, err := c.Store.LoadActiveSession()
	if err != nil {
		if errors.Is(err, storage.ErrNoSession) {
			return nil, ErrNoActiveGoal
		}
		return nil, fmt.Errorf("failed to load goal: %w", err)
	}
	s, err := session.FromSnapshot(snap)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (c *Context) SaveSession(s *session.Session) error {
	if err := c.Store.SaveSession(s.Snapshot()); err != nil {
		return fmt.Errorf("failed to save goal: %w", err)
	}
	return nil
}

// ReplaceSession stores s as the active goal and archives the goal it replaced.
func (c *Context) ReplaceSession(previousID string, s *session.Session) error {
	if err := c.SaveSession(s); err != nil {
		return err
	}
	if previousID == "" || previousID == s.ID() {
		return nil
	}
	if err := c.Store.ArchiveSession(previousID); err != nil {
		return fmt.Errorf("failed to archive previous goal: %w", err)
	}
	return nil
}

// DescribeLogError turns ledger errors into the messages shown to the user.
func DescribeLogError(err error, s *session.Session, day calendar.Day) error {
	switch {
	case errors.Is(err, ledger.ErrAlreadyLocked):
		return fmt.Errorf("%s is already locked", day)
	case errors.Is(err, ledger.ErrFreezeLimitExceeded):
		return fmt.Errorf("No Freezes Left (%s)", goal.FreezesUsedText(s.CountFreezed(), s.FreezeLimit()))
	}
	return err
}
