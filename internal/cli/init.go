package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/ouraiii/LearningJourney/internal/config"
	"github.com/ouraiii/LearningJourney/internal/session"
	"github.com/ouraiii/LearningJourney/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Delete an existing SQLite database before initialization."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Fprintf(ctx.out(), "Initialized journey storage at: %s\n", ctx.Store.GetConfigPath())

	if err := c.writeConfig(ctx); err != nil {
		return err
	}

	if _, err := ctx.Store.LoadActiveSession(); err == nil {
		return nil
	} else if !errors.Is(err, storage.ErrNoSession) {
		return fmt.Errorf("failed to read active goal: %w", err)
	}

	subject, duration := ctx.Config.DefaultGoal()
	s, err := session.New(subject, duration)
	if err != nil {
		return err
	}
	if err := ctx.SaveSession(s); err != nil {
		return err
	}
	fmt.Fprintf(ctx.out(), "Started goal: %s (%s)\n", s.Headline(), s.Duration())
	return nil
}

func (c *InitCmd) reset(ctx *Context) error {
	if !ctx.IsSQLite() {
		return errors.New("--force is only supported for SQLite storage")
	}
	dbPath := ctx.Store.GetConfigPath()
	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Fprintf(ctx.out(), "Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

// writeConfig saves the effective settings when no config file exists yet.
func (c *InitCmd) writeConfig(ctx *Context) error {
	if ctx.ConfigPath == "" || ctx.Config == nil {
		return nil
	}
	path := config.ExpandPath(ctx.ConfigPath)
	if _, err := os.Stat(path); err == nil || !os.IsNotExist(err) {
		return nil
	}
	if err := ctx.Config.Save(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(ctx.out(), "Wrote config to: %s\n", path)
	return nil
}
