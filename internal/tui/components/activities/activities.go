package activities

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ouraiii/LearningJourney/internal/calendar"
	"github.com/ouraiii/LearningJourney/internal/models"
)

const cellWidth = 4

var (
	monthStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Width(cellWidth * 7).
			Align(lipgloss.Center)

	weekdayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(cellWidth)

	untouchedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(cellWidth)

	learnedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true).
			Width(cellWidth)

	freezedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("45")).
			Width(cellWidth)

	todayStyle = untouchedStyle.
			Foreground(lipgloss.Color("205")).
			Underline(true)
)

// StatusFunc reads a day's status from the active goal.
type StatusFunc func(calendar.Day) models.DayStatus

// Model is a scrollable column of month grids.
type Model struct {
	viewport viewport.Model
	status   StatusFunc
	months   []calendar.Day
	today    calendar.Day
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.status == nil {
		return "No activity loaded."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

// SetData shows n months starting with the month of start.
func (m *Model) SetData(status StatusFunc, start calendar.Day, n int, today calendar.Day) {
	m.status = status
	m.months = calendar.MonthsFrom(start, n)
	m.today = today
	m.Render()
}

func (m *Model) Render() {
	if m.status == nil {
		m.viewport.SetContent("No activity loaded.")
		return
	}

	var b strings.Builder
	for _, month := range m.months {
		b.WriteString(m.renderMonth(month))
		b.WriteString("\n\n")
	}
	m.viewport.SetContent(b.String())
}

func (m *Model) renderMonth(month calendar.Day) string {
	lines := []string{monthStyle.Render(calendar.MonthLabel(month))}

	var header []string
	for _, l := range calendar.WeekdayLabels() {
		header = append(header, weekdayStyle.Render(l[:2]))
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, header...))

	for _, row := range calendar.MonthGrid(month) {
		var cells []string
		for _, d := range row {
			cells = append(cells, m.renderDay(d))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) renderDay(d calendar.Day) string {
	if d.IsZero() {
		return untouchedStyle.Render("")
	}
	label := fmt.Sprintf("%2d", d.DayOfMonth())
	switch m.status(d) {
	case models.StatusLearned:
		return learnedStyle.Render(label + "●")
	case models.StatusFreezed:
		return freezedStyle.Render(label + "❄")
	}
	if d == m.today {
		return todayStyle.Render(label)
	}
	return untouchedStyle.Render(label)
}
