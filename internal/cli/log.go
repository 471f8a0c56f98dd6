package cli

import (
	"fmt"

	"github.com/ouraiii/LearningJourney/internal/goal"
	"github.com/ouraiii/LearningJourney/internal/models"
)

type LogCmd struct {
	Learned LogLearnedCmd `cmd:"" help:"Mark a day as learned."`
	Freezed LogFreezedCmd `cmd:"" help:"Spend a freeze on a day."`
}

type LogLearnedCmd struct {
	Date string `help:"Day to log (YYYY-MM-DD, today or yesterday)." default:"today"`
}

func (c *LogLearnedCmd) Run(ctx *Context) error {
	return logDay(ctx, c.Date, models.StatusLearned)
}

type LogFreezedCmd struct {
	Date string `help:"Day to log (YYYY-MM-DD, today or yesterday)." default:"today"`
}

func (c *LogFreezedCmd) Run(ctx *Context) error {
	return logDay(ctx, c.Date, models.StatusFreezed)
}

func logDay(ctx *Context, date string, status models.DayStatus) error {
	day, err := ctx.ParseDate(date)
	if err != nil {
		return err
	}
	s, err := ctx.LoadSession()
	if err != nil {
		return err
	}

	wasComplete := s.IsGoalComplete()
	var progress goal.Progress
	if status == models.StatusFreezed {
		progress, err = s.LogFreezed(day)
	} else {
		progress, err = s.LogLearned(day)
	}
	if err != nil {
		return DescribeLogError(err, s, day)
	}
	if err := ctx.SaveSession(s); err != nil {
		return err
	}

	fmt.Fprintf(ctx.out(), "✓ %s logged as %s\n", day, statusText(status))

	// The completion banner is shown once, on the log that completed the goal.
	if wasComplete {
		progress.Completed = false
	}
	printProgress(ctx.out(), progress)
	if wasComplete {
		colorFaint.Fprintln(ctx.out(), "Goal already completed.")
	}
	return nil
}
