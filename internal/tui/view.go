package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ouraiii/LearningJourney/internal/calendar"
	"github.com/ouraiii/LearningJourney/internal/goal"
	"github.com/ouraiii/LearningJourney/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateWeek:
		content = m.viewWeek()
	case StateActivities:
		content = m.activities.View()
	case StateHistory:
		content = m.history.View()
	case StateGoalForm:
		content = docStyle.Render(m.form.View())
	case StateConfirmGoalChange:
		content = m.viewConfirmGoalChange()
	case StateConfirmRepeat:
		content = m.viewConfirmRepeat()
	case StateCompleted:
		content = m.viewCompleted()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Week", "Activities", "History"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewWeek() string {
	s := m.session
	selected := m.cal.Selected()
	status := s.StatusOf(selected)

	var b strings.Builder
	b.WriteString(titleStyle.Render(s.Headline()))
	b.WriteString(subtleStyle.Render(fmt.Sprintf("  %s goal", s.Duration())))
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render(m.cal.MonthLabel()))
	b.WriteString("\n")
	b.WriteString(m.viewWindow())
	b.WriteString("\n\n")

	b.WriteString(selected.Time(nil).Format("Monday, January 2 2006"))
	b.WriteString("\n")
	if s.IsLocked(selected) {
		b.WriteString(statusStyle(status).Render(status.ActionLabel()))
	} else {
		b.WriteString(fmt.Sprintf("[enter] %s   [f] %s", status.ActionLabel(), s.FreezeActionLabel()))
	}
	b.WriteString("\n\n")

	p := s.Progress()
	b.WriteString(fmt.Sprintf("%d/%d days  %s\n", p.Logged(), p.Target, progressBar(p, 20)))
	b.WriteString(subtleStyle.Render(p.FreezesUsedText()))

	if m.errMessage != "" {
		b.WriteString("\n\n" + dangerStyle.Render(m.errMessage))
	} else if m.message != "" {
		b.WriteString("\n\n" + warningStyle.Render(m.message))
	}

	return docStyle.Render(b.String())
}

func (m Model) viewWindow() string {
	labels := calendar.WeekdayLabels()
	var cells []string
	for i, d := range m.cal.Window() {
		cells = append(cells, m.viewDay(labels[i], d))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m Model) viewDay(label string, d calendar.Day) string {
	num := fmt.Sprintf("%d", d.DayOfMonth())
	if m.cal.IsToday(d) {
		num = todayStyle.Render(num)
	}
	status := m.session.StatusOf(d)
	mark := statusStyle(status).Render(statusMark(status))

	style := dayStyle
	if d == m.cal.Selected() {
		style = selectedDayStyle
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Center, label, num, mark))
}

func statusStyle(s models.DayStatus) lipgloss.Style {
	switch s {
	case models.StatusLearned:
		return learnedStyle
	case models.StatusFreezed:
		return freezedStyle
	}
	return subtleStyle
}

func statusMark(s models.DayStatus) string {
	switch s {
	case models.StatusLearned:
		return "●"
	case models.StatusFreezed:
		return "❄"
	}
	return "·"
}

func progressBar(p goal.Progress, width int) string {
	filled := 0
	if p.Target > 0 {
		filled = p.Logged() * width / p.Target
	}
	if filled > width {
		filled = width
	}
	return learnedStyle.Render(strings.Repeat("█", filled)) +
		subtleStyle.Render(strings.Repeat("░", width-filled))
}

func (m Model) viewConfirmGoalChange() string {
	subject, duration := "", models.Duration("")
	if m.pending != nil {
		subject, duration = m.pending.Subject, m.pending.Duration
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Start learning %s for a %s?", subject, duration)),
			fmt.Sprintf("This resets %d logged days of %s.", m.session.Progress().Logged(), m.session.Subject()),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewConfirmRepeat() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Start %s over?", m.session.Subject())),
			fmt.Sprintf("This resets %d logged days.", m.session.Progress().Logged()),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewCompleted() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			successStyle.Render(goal.CompletionTitle),
			goal.CompletionMessage,
			"",
			"[r] Repeat goal",
			"[n] New goal",
			"[esc] Close",
		),
	)
}
