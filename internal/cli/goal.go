package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gosuri/uitable"

	"github.com/ouraiii/LearningJourney/internal/constants"
	"github.com/ouraiii/LearningJourney/internal/models"
	"github.com/ouraiii/LearningJourney/internal/session"
)

type GoalCmd struct {
	Set     GoalSetCmd     `cmd:"" help:"Set a new learning goal."`
	Repeat  GoalRepeatCmd  `cmd:"" help:"Start the current goal over."`
	Show    GoalShowCmd    `cmd:"" help:"Show the active goal." default:"1"`
	History GoalHistoryCmd `cmd:"" help:"List previous goals."`
}

type GoalSetCmd struct {
	Subject  string `arg:"" help:"What you are learning."`
	Duration string `short:"d" help:"Goal duration: week, month or year." default:"week"`
	Yes      bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *GoalSetCmd) Run(ctx *Context) error {
	duration, err := models.ParseDuration(c.Duration)
	if err != nil {
		return err
	}

	s, err := ctx.LoadSession()
	if errors.Is(err, ErrNoActiveGoal) {
		s, err = session.New(c.Subject, duration)
		if err != nil {
			return err
		}
		if err := ctx.SaveSession(s); err != nil {
			return err
		}
		fmt.Fprintf(ctx.out(), "Started goal: %s (%s)\n", s.Headline(), s.Duration())
		return nil
	}
	if err != nil {
		return err
	}

	pending, changed := s.ProposeUpdate(c.Subject, duration)
	if !changed {
		fmt.Fprintf(ctx.out(), "Goal unchanged: %s (%s)\n", s.Headline(), s.Duration())
		return nil
	}

	if !c.Yes {
		ok, err := ctx.Confirm(
			"Start a new goal?",
			fmt.Sprintf("Switching to %s (%s) resets %d logged days of %s.",
				pending.Subject, pending.Duration, s.Progress().Logged(), s.Subject()),
		)
		if err != nil {
			s.DiscardUpdate()
			return err
		}
		if !ok {
			s.DiscardUpdate()
			fmt.Fprintln(ctx.out(), "Goal unchanged.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	previousID := s.ID()
	progress, err := s.CommitUpdate(pending.Token)
	if err != nil {
		return err
	}
	if err := ctx.ReplaceSession(previousID, s); err != nil {
		return err
	}

	fmt.Fprintf(ctx.out(), "✓ Started goal: %s (%s)\n", s.Headline(), s.Duration())
	printProgress(ctx.out(), progress)
	return nil
}

type GoalRepeatCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *GoalRepeatCmd) Run(ctx *Context) error {
	s, err := ctx.LoadSession()
	if err != nil {
		return err
	}

	if logged := s.Progress().Logged(); logged > 0 && !c.Yes && !s.IsGoalComplete() {
		ok, err := ctx.Confirm(
			"Repeat this goal?",
			fmt.Sprintf("Starting %s over resets %d logged days.", s.Subject(), logged),
		)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(ctx.out(), "Goal unchanged.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	previousID := s.ID()
	s.RepeatGoal()
	if err := ctx.ReplaceSession(previousID, s); err != nil {
		return err
	}

	fmt.Fprintf(ctx.out(), "✓ Repeating goal: %s (%s)\n", s.Headline(), s.Duration())
	printProgress(ctx.out(), s.Progress())
	return nil
}

type GoalShowCmd struct{}

func (c *GoalShowCmd) Run(ctx *Context) error {
	s, err := ctx.LoadSession()
	if err != nil {
		return err
	}

	printHeadline(ctx.out(), s)
	fmt.Fprintf(ctx.out(), "Started:  %s\n", s.CreatedAt().In(ctx.loc()).Format(constants.DateFormat))
	printProgress(ctx.out(), s.Progress())
	return nil
}

type GoalHistoryCmd struct {
	All bool `short:"a" help:"Include archived goals."`
}

func (c *GoalHistoryCmd) Run(ctx *Context) error {
	records, err := ctx.Store.ListSessions(c.All)
	if err != nil {
		return fmt.Errorf("failed to list goals: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(ctx.out(), "No goals found.")
		return nil
	}

	tbl := uitable.New()
	tbl.MaxColWidth = 40
	tbl.AddRow("STARTED", "SUBJECT", "DURATION", "LEARNED", "FREEZED", "STATE")
	for _, r := range records {
		tbl.AddRow(
			r.CreatedAt.In(ctx.loc()).Format(constants.DateFormat),
			r.Definition.Subject,
			string(r.Definition.Duration),
			strconv.Itoa(r.LearnedDays),
			strconv.Itoa(r.FreezedDays),
			goalState(r),
		)
	}
	fmt.Fprintln(ctx.out(), tbl)
	return nil
}

func goalState(r models.GoalRecord) string {
	switch {
	case r.Completed:
		return colorDone.Sprint("completed")
	case r.ArchivedAt != nil:
		return colorFaint.Sprint("archived")
	default:
		return colorLearned.Sprint("active")
	}
}
