package cli

import (
	"fmt"

	"github.com/gosuri/uitable"

	"github.com/ouraiii/LearningJourney/internal/calendar"
)

type WeekCmd struct {
	Date   string `help:"Any day in the week to show." default:"today"`
	Offset int    `short:"o" help:"Shift the window by N weeks." default:"0"`
}

func (c *WeekCmd) Run(ctx *Context) error {
	anchor, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	s, err := ctx.LoadSession()
	if err != nil {
		return err
	}

	anchor = calendar.ShiftWeek(anchor, c.Offset)
	today := ctx.Today()
	labels := calendar.WeekdayLabels()

	printHeadline(ctx.out(), s)
	colorHeader.Fprintln(ctx.out(), calendar.MonthLabel(anchor))

	tbl := uitable.New()
	tbl.Separator = "  "
	for i, d := range calendar.WeekWindow(anchor) {
		marker := ""
		if d == today {
			marker = "← today"
		}
		tbl.AddRow(labels[i], d.String(), statusText(s.StatusOf(d)), marker)
	}
	fmt.Fprintln(ctx.out(), tbl)
	fmt.Fprintln(ctx.out())
	fmt.Fprintln(ctx.out(), s.FreezesUsedText())
	return nil
}
