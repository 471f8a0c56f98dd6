package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/ouraiii/LearningJourney/internal/goal"
	"github.com/ouraiii/LearningJourney/internal/models"
	"github.com/ouraiii/LearningJourney/internal/session"
)

var (
	colorHeader  = color.New(color.Bold)
	colorLearned = color.New(color.FgGreen, color.Bold)
	colorFreezed = color.New(color.FgCyan)
	colorFaint   = color.New(color.Faint)
	colorDone    = color.New(color.FgYellow, color.Bold)
	colorWarn    = color.New(color.FgYellow)
)

// statusText is the coloured one-word form of a day status.
func statusText(s models.DayStatus) string {
	switch s {
	case models.StatusLearned:
		return colorLearned.Sprint("learned")
	case models.StatusFreezed:
		return colorFreezed.Sprint("freezed")
	default:
		return colorFaint.Sprint("-")
	}
}

// statusGlyph is the single-cell marker used in the month grid.
func statusGlyph(s models.DayStatus) string {
	switch s {
	case models.StatusLearned:
		return "●"
	case models.StatusFreezed:
		return "❄"
	default:
		return "·"
	}
}

func printProgress(w io.Writer, p goal.Progress) {
	fmt.Fprintf(w, "Progress: %d/%d days (%d learned, %d freezed, %d to go)\n",
		p.Logged(), p.Target, p.Learned, p.Freezed, p.Remaining())
	fmt.Fprintf(w, "Freezes:  %s\n", p.FreezesUsedText())
	if p.Completed {
		fmt.Fprintln(w)
		colorDone.Fprintln(w, goal.CompletionTitle)
		fmt.Fprintln(w, goal.CompletionMessage)
	}
}

func printHeadline(w io.Writer, s *session.Session) {
	colorHeader.Fprintf(w, "%s", s.Headline())
	colorFaint.Fprintf(w, " (%s goal)\n", s.Duration())
}
