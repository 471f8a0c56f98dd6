package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ouraiii/LearningJourney/internal/session"
	"github.com/ouraiii/LearningJourney/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	s, err := ctx.LoadSession()
	if errors.Is(err, ErrNoActiveGoal) && ctx.Config != nil {
		s, err = session.New(ctx.Config.DefaultGoal())
		if err == nil {
			err = ctx.SaveSession(s)
		}
	}
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	m := tui.NewModel(s, ctx.Store, ctx.Today, ctx.PerformAutomaticBackup)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
