package cli

import "fmt"

type StatusCmd struct {
	Date string `help:"Day to inspect (YYYY-MM-DD, today or yesterday)." default:"today"`
}

func (c *StatusCmd) Run(ctx *Context) error {
	day, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	s, err := ctx.LoadSession()
	if err != nil {
		return err
	}

	status := s.StatusOf(day)
	printHeadline(ctx.out(), s)
	fmt.Fprintf(ctx.out(), "%s  %s\n", day, statusText(status))
	if s.IsLocked(day) {
		colorFaint.Fprintf(ctx.out(), "%s (locked)\n", status.ActionLabel())
	} else {
		fmt.Fprintf(ctx.out(), "Actions: %s | %s\n", status.ActionLabel(), s.FreezeActionLabel())
	}
	fmt.Fprintln(ctx.out())
	printProgress(ctx.out(), s.Progress())
	return nil
}
