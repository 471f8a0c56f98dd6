package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/ouraiii/LearningJourney/internal/calendar"
	"github.com/ouraiii/LearningJourney/internal/models"
	"github.com/ouraiii/LearningJourney/internal/session"
)

// cell width of one day in the month grid
const gridCell = 4

type ActivitiesCmd struct {
	Months int `short:"m" help:"Number of months to show, ending with the current one." default:"12"`
}

func (c *ActivitiesCmd) Run(ctx *Context) error {
	if c.Months < 1 {
		return fmt.Errorf("--months must be at least 1, got %d", c.Months)
	}
	s, err := ctx.LoadSession()
	if err != nil {
		return err
	}

	today := ctx.Today()
	start := today.FirstOfMonth().AddMonths(-(c.Months - 1))

	printHeadline(ctx.out(), s)
	fmt.Fprintln(ctx.out())
	for _, month := range calendar.MonthsFrom(start, c.Months) {
		printMonth(ctx.out(), s, month, today)
	}
	fmt.Fprintf(ctx.out(), "%s learned  %s freezed  %s untouched\n",
		colorLearned.Sprint(statusGlyph(models.StatusLearned)),
		colorFreezed.Sprint(statusGlyph(models.StatusFreezed)),
		colorFaint.Sprint(statusGlyph(models.StatusUntouched)))
	return nil
}

func printMonth(w io.Writer, s *session.Session, month, today calendar.Day) {
	width := gridCell * 7
	label := calendar.MonthLabel(month)
	pad := (width - len(label)) / 2
	if pad < 0 {
		pad = 0
	}
	colorHeader.Fprintf(w, "%s%s\n", strings.Repeat(" ", pad), label)

	for _, l := range calendar.WeekdayLabels() {
		colorFaint.Fprintf(w, "%-*s", gridCell, l[:2])
	}
	fmt.Fprintln(w)

	for _, row := range calendar.MonthGrid(month) {
		for _, d := range row {
			if d.IsZero() {
				fmt.Fprint(w, strings.Repeat(" ", gridCell))
				continue
			}
			printDayCell(w, s, d, today)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}

func printDayCell(w io.Writer, s *session.Session, d, today calendar.Day) {
	status := s.StatusOf(d)
	cell := fmt.Sprintf("%2d%s ", d.DayOfMonth(), statusGlyph(status))
	switch {
	case status == models.StatusLearned:
		colorLearned.Fprint(w, cell)
	case status == models.StatusFreezed:
		colorFreezed.Fprint(w, cell)
	case d == today:
		colorHeader.Fprint(w, cell)
	default:
		colorFaint.Fprint(w, cell)
	}
}
